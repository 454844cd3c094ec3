package capture

import (
	"context"
	"fmt"
	"time"

	"github.com/sightline-vision/sightline/internal/config"
	"github.com/sightline-vision/sightline/internal/status"
	"github.com/sightline-vision/sightline/internal/vision"
	"github.com/sightline-vision/sightline/pkg/Logger"
	"gocv.io/x/gocv"
)

const readBackoff = 100 * time.Millisecond

// frameQueueDepth bounds the capture->detection queue. Capture never blocks
// on detection: when the queue is full the frame is dropped, trading
// detection freshness for real-time capture.
const frameQueueDepth = 2

// Source pulls frames from a camera device, keeps the latest JPEG available
// for the presentation layer and offers each frame to the detection pipeline.
type Source struct {
	cfg    config.CameraConfig
	pub    *status.Publisher
	logger *Logger.Logger

	cam    *gocv.VideoCapture
	frames chan vision.Frame
}

func New(cfg config.CameraConfig, pub *status.Publisher, logger *Logger.Logger) *Source {
	return &Source{
		cfg:    cfg,
		pub:    pub,
		logger: logger,
		frames: make(chan vision.Frame, frameQueueDepth),
	}
}

// Frames is the bounded queue feeding the detection worker.
func (s *Source) Frames() <-chan vision.Frame {
	return s.frames
}

// Open acquires the camera device. Failure here is fatal to startup.
func (s *Source) Open() error {
	cam, err := gocv.OpenVideoCapture(s.cfg.DeviceIndex)
	if err != nil {
		return fmt.Errorf("open camera device %d: %w", s.cfg.DeviceIndex, err)
	}
	cam.Set(gocv.VideoCaptureFrameWidth, float64(s.cfg.Width))
	cam.Set(gocv.VideoCaptureFrameHeight, float64(s.cfg.Height))
	cam.Set(gocv.VideoCaptureFPS, float64(s.cfg.FPS))
	s.cam = cam
	return nil
}

// Run captures frames until ctx is cancelled. A single failed read backs off
// briefly and retries; it never terminates the loop.
func (s *Source) Run(ctx context.Context) {
	defer close(s.frames)
	defer s.cam.Close()

	img := gocv.NewMat()
	defer img.Close()

	var seq int64
	for ctx.Err() == nil {
		if ok := s.cam.Read(&img); !ok || img.Empty() {
			s.logger.Debugf("camera read failed, retrying")
			time.Sleep(readBackoff)
			continue
		}
		seq++

		buf, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, img,
			[]int{gocv.IMWriteJpegQuality, s.cfg.JPEGQuality})
		if err != nil {
			s.logger.Warnf("jpeg encode frame %d: %v", seq, err)
			continue
		}
		jpeg := make([]byte, buf.Len())
		copy(jpeg, buf.GetBytes())
		buf.Close()

		s.pub.SetFrame(jpeg)

		frame := vision.Frame{JPEG: jpeg, Seq: seq, CapturedAt: time.Now()}
		select {
		case s.frames <- frame:
		default:
			// detection is behind; drop to stay real-time
		}
	}
}
