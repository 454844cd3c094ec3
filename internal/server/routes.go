package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sightline-vision/sightline/internal/status"
	"github.com/sightline-vision/sightline/pkg/Logger"
)

const (
	videoFrameInterval = 33 * time.Millisecond // ~30 fps
	wsPushInterval     = 500 * time.Millisecond
)

type Dependencies struct {
	Status *status.Publisher
	Logger *Logger.Logger
}

func NewServerDependencies(pub *status.Publisher, logger *Logger.Logger) Dependencies {
	return Dependencies{Status: pub, Logger: logger}
}

// RoutesManager serves the dashboard and the live status surfaces.
type RoutesManager struct {
	deps Dependencies
}

func NewRoutesManager(deps Dependencies) *RoutesManager {
	return &RoutesManager{deps: deps}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // dashboard is unauthenticated
}

// StatusMessage is one websocket status push.
type StatusMessage struct {
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId"`
	Data      status.Snapshot `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

func InitializeRoutes(r *gin.Engine, dep Dependencies) {
	rm := NewRoutesManager(dep)

	r.GET("/", rm.handleDashboard)
	r.GET("/status", rm.handleStatus)
	r.GET("/video_feed", rm.handleVideoFeed)
	r.GET("/ws", rm.handleStatusWebSocket)
}

func (rm *RoutesManager) handleDashboard(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(dashboardHTML))
}

func (rm *RoutesManager) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, rm.deps.Status.Snapshot())
}

// handleVideoFeed streams the latest JPEG frames as an MJPEG multipart
// response until the client disconnects.
func (rm *RoutesManager) handleVideoFeed(c *gin.Context) {
	c.Writer.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary=frame")

	ticker := time.NewTicker(videoFrameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.Request.Context().Done():
			return
		case <-ticker.C:
			frame := rm.deps.Status.Frame()
			if frame == nil {
				continue
			}
			if _, err := c.Writer.Write([]byte("--frame\r\nContent-Type: image/jpeg\r\n\r\n")); err != nil {
				return
			}
			if _, err := c.Writer.Write(frame); err != nil {
				return
			}
			if _, err := c.Writer.Write([]byte("\r\n")); err != nil {
				return
			}
			c.Writer.Flush()
		}
	}
}

// handleStatusWebSocket pushes status snapshots on a fixed cadence, saving
// clients the /status polling loop.
func (rm *RoutesManager) handleStatusWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		rm.deps.Logger.Errorf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	sessionID := uuid.New()
	rm.deps.Logger.Infof("status ws connected - session %s", sessionID)

	ticker := time.NewTicker(wsPushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.Request.Context().Done():
			return
		case <-ticker.C:
			msg := StatusMessage{
				Type:      "status",
				SessionID: sessionID.String(),
				Data:      rm.deps.Status.Snapshot(),
				Timestamp: time.Now(),
			}
			if err := conn.WriteJSON(msg); err != nil {
				rm.deps.Logger.Debugf("status ws closed for session %s: %v", sessionID, err)
				return
			}
		}
	}
}
