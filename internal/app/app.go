package app

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sightline-vision/sightline/internal/arbiter"
	"github.com/sightline-vision/sightline/internal/capture"
	"github.com/sightline-vision/sightline/internal/config"
	"github.com/sightline-vision/sightline/internal/server"
	"github.com/sightline-vision/sightline/internal/speech"
	"github.com/sightline-vision/sightline/internal/status"
	"github.com/sightline-vision/sightline/internal/vision/describe"
	"github.com/sightline-vision/sightline/internal/vision/ocr"
	"github.com/sightline-vision/sightline/pkg/Logger"
)

// workerJoinTimeout bounds how long shutdown waits for worker goroutines.
const workerJoinTimeout = 2 * time.Second

// App owns every pipeline stage and its wiring.
type App struct {
	Config *config.Settings
	Logger *Logger.Logger

	Status    *status.Publisher
	Source    *capture.Source
	Detector  *ocr.TesseractDetector
	Describer describe.Describer
	Mailbox   *speech.Mailbox
	Speaker   *speech.Speaker
	Arbiter   *arbiter.Arbiter
}

// New initializes every capability in order and reports which stage failed.
// Any initialization error aborts startup; no worker is started on a
// half-built pipeline.
func New(cfg *config.Settings, logger *Logger.Logger) (*App, error) {
	a := &App{
		Config: cfg,
		Logger: logger,
		Status: status.NewPublisher(),
	}

	logger.Info("[1/4] initializing speech engine")
	synth, err := speech.NewPiper(cfg.Speech, logger.Named("piper"))
	if err != nil {
		return nil, fmt.Errorf("init speech engine: %w", err)
	}
	a.Mailbox = speech.NewMailbox()
	a.Speaker = speech.NewSpeaker(a.Mailbox, synth, cfg.Speech.MaxSpokenWords, logger.Named("speaker"))

	logger.Info("[2/4] initializing OCR engine")
	a.Detector, err = ocr.NewTesseract(cfg.OCR, logger.Named("ocr"))
	if err != nil {
		return nil, fmt.Errorf("init ocr engine: %w", err)
	}

	logger.Info("[3/4] initializing vision describer")
	a.Describer, err = describe.New(cfg.Describer, logger.Named("describe"))
	if err != nil {
		return nil, fmt.Errorf("init vision describer: %w", err)
	}

	logger.Info("[4/4] opening camera")
	a.Source = capture.New(cfg.Camera, a.Status, logger.Named("camera"))
	if err := a.Source.Open(); err != nil {
		return nil, fmt.Errorf("init camera: %w", err)
	}

	a.Arbiter = arbiter.New(
		cfg.Detection,
		a.Detector,
		a.Describer,
		a.Mailbox,
		a.Status,
		logger.Named("arbiter"),
	)

	return a, nil
}

// Run starts the worker goroutines and the dashboard server, then blocks
// until ctx is cancelled. Shutdown drains the HTTP server and joins workers
// with a bounded timeout; stragglers are abandoned.
func (a *App) Run(ctx context.Context) error {
	var wg sync.WaitGroup

	wg.Add(3)
	go func() {
		defer wg.Done()
		a.Source.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		a.Arbiter.Run(ctx, a.Source.Frames())
	}()
	go func() {
		defer wg.Done()
		a.Speaker.Run(ctx)
	}()

	if !a.Config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	server.InitializeRoutes(router, server.NewServerDependencies(a.Status, a.Logger.Named("server")))

	srv := &http.Server{
		Addr:    a.Config.Server.Addr,
		Handler: router.Handler(),
	}
	go func() {
		a.Logger.Infof("dashboard listening on %s", a.Config.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.Logger.Errorf("dashboard server: %v", err)
		}
	}()

	<-ctx.Done()
	a.Logger.Info("shutdown requested")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.Logger.Errorf("dashboard shutdown: %v", err)
	}

	if !waitTimeout(&wg, workerJoinTimeout) {
		a.Logger.Warn("workers did not stop in time, abandoning")
	}
	if err := a.Detector.Close(); err != nil {
		a.Logger.Errorf("close ocr engine: %v", err)
	}

	a.Logger.Info("system stopped")
	return nil
}

// waitTimeout waits on wg up to d; reports whether everything finished.
func waitTimeout(wg *sync.WaitGroup, d time.Duration) bool {
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return true
	case <-time.After(d):
		return false
	}
}
