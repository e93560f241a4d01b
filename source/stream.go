package source

import (
	"image"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/avast/retry-go/v4"
	"gocv.io/x/gocv"
)

const (
	streamOpenAttempts = 10
	streamOpenDelay    = 2 * time.Second
	streamReadBackoff  = 20 * time.Millisecond
	streamCloseTimeout = time.Second
)

// Stream is a Source over an RTSP (or any OpenCV-supported) video URL.
//
// Start spawns one reader goroutine that owns the capture handle, decodes
// frames and publishes only the newest one; the render loop polls Frame
// without ever blocking on the network. A failed read keeps the last good
// frame visible and triggers a reconnect. Close signals the reader to stop
// and waits at most streamCloseTimeout for it to release the capture
// handle: a reader parked inside a stalled network read keeps running
// detached until the read returns, then cleans up after itself. The stop
// and done channels belong to one reader run, so a later Start never
// crosses wires with a detached reader.
type Stream struct {
	name   string
	url    string
	logger *slog.Logger

	running atomic.Bool
	latest  atomic.Pointer[image.Image]
	frames  atomic.Uint64
	drops   atomic.Uint64
	stop    chan struct{}
	done    chan struct{}
}

// NewStream creates a stream source for the given URL. No connection is
// made until Start.
func NewStream(name, url string, logger *slog.Logger) *Stream {
	return &Stream{name: name, url: url, logger: logger}
}

func (s *Stream) Name() string { return s.name }

// Start launches the background reader. Opening the stream happens inside
// the reader with retries, so Start itself does not block on the network.
func (s *Stream) Start() error {
	if !s.running.CompareAndSwap(false, true) {
		return nil
	}
	stop := make(chan struct{})
	done := make(chan struct{})
	s.stop, s.done = stop, done
	go s.readLoop(stop, done)
	s.logger.Info("stream starting", "source", s.name, "url", s.url)
	return nil
}

// Frame returns the most recent decoded frame, or ErrNoFrame while the
// stream has not delivered one yet.
func (s *Stream) Frame() (image.Image, error) {
	p := s.latest.Load()
	if p == nil {
		return nil, ErrNoFrame
	}
	return *p, nil
}

// Close signals the reader goroutine to stop and waits a bounded time for
// it to release the capture handle. It never blocks longer than
// streamCloseTimeout, so switching away from a dead stream cannot stall
// the caller. The cached last frame is dropped.
func (s *Stream) Close() error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}
	close(s.stop)
	select {
	case <-s.done:
	case <-time.After(streamCloseTimeout):
		s.logger.Warn("stream reader blocked in a network read, detaching", "source", s.name)
	}
	s.latest.Store(nil)
	s.logger.Info("stream closed", "source", s.name, "frames", s.frames.Load(), "dropped_reads", s.drops.Load())
	return nil
}

func (s *Stream) readLoop(stop, done chan struct{}) {
	defer close(done)

	for !stopped(stop) {
		vc, err := s.open(stop)
		if err != nil {
			s.logger.Error("could not open stream", "source", s.name, "error", err)
			// Back off before the next round of attempts; the source stays
			// switchable the whole time.
			sleep(streamOpenDelay, stop)
			continue
		}
		s.read(vc, stop)
		if err := vc.Close(); err != nil {
			s.logger.Warn("closing capture handle", "source", s.name, "error", err)
		}
	}
}

func (s *Stream) open(stop chan struct{}) (*gocv.VideoCapture, error) {
	return retry.DoWithData(
		func() (*gocv.VideoCapture, error) {
			return gocv.OpenVideoCapture(s.url)
		},
		retry.Attempts(streamOpenAttempts),
		retry.Delay(streamOpenDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(error) bool { return !stopped(stop) }),
	)
}

// read decodes frames until the stream fails or stop is signaled.
func (s *Stream) read(vc *gocv.VideoCapture, stop chan struct{}) {
	mat := gocv.NewMat()
	defer mat.Close()

	for !stopped(stop) {
		if ok := vc.Read(&mat); !ok {
			s.logger.Warn("stream read failed, reconnecting", "source", s.name)
			return
		}
		if mat.Empty() {
			s.drops.Add(1)
			sleep(streamReadBackoff, stop)
			continue
		}
		img, err := mat.ToImage()
		if err != nil {
			s.drops.Add(1)
			s.logger.Warn("frame conversion failed", "source", s.name, "error", err)
			continue
		}
		if stopped(stop) {
			// A detached reader must not publish into a stream that has
			// already been closed or restarted.
			return
		}
		s.latest.Store(&img)
		s.frames.Add(1)
	}
}

func stopped(stop chan struct{}) bool {
	select {
	case <-stop:
		return true
	default:
		return false
	}
}

// sleep waits for d or until stop is signaled, whichever comes first.
func sleep(d time.Duration, stop chan struct{}) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-stop:
	}
}
