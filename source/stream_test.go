package source

import (
	"errors"
	"testing"
	"time"
)

// Switching away from a dead stream must not stall the caller: even when
// the reader goroutine is parked inside a network read and never reaches
// its done signal, Close has to return within its bounded wait.
func TestStreamCloseBoundedWhenReaderIsStuck(t *testing.T) {
	s := NewStream("Cam1", "rtsp://test.invalid/feed", testLogger)
	s.running.Store(true)
	s.stop = make(chan struct{})
	s.done = make(chan struct{}) // reader never closes it

	start := time.Now()
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	elapsed := time.Since(start)
	if elapsed < streamCloseTimeout {
		t.Fatalf("Close returned after %v without waiting for the reader", elapsed)
	}
	if elapsed > streamCloseTimeout+500*time.Millisecond {
		t.Fatalf("Close blocked for %v, want at most ~%v", elapsed, streamCloseTimeout)
	}
	select {
	case <-s.stop:
	default:
		t.Fatal("Close did not signal the reader to stop")
	}
	if _, err := s.Frame(); !errors.Is(err, ErrNoFrame) {
		t.Fatalf("Frame after Close: %v, want ErrNoFrame", err)
	}
}

// When the reader has already finished, Close returns immediately.
func TestStreamClosePromptWhenReaderDone(t *testing.T) {
	s := NewStream("Cam1", "rtsp://test.invalid/feed", testLogger)
	s.running.Store(true)
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	close(s.done)

	start := time.Now()
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Fatalf("Close waited %v on a finished reader", elapsed)
	}
	// Second Close is a no-op, not a second wait or a double close of stop.
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestStreamFrameBeforeStart(t *testing.T) {
	s := NewStream("Cam1", "rtsp://test.invalid/feed", testLogger)
	if _, err := s.Frame(); !errors.Is(err, ErrNoFrame) {
		t.Fatalf("Frame before Start: %v, want ErrNoFrame", err)
	}
}

// The reader's backoff sleeps must wake as soon as stop is signaled so a
// stream stuck in reconnect backoff still closes promptly.
func TestStreamSleepInterruptedByStop(t *testing.T) {
	stop := make(chan struct{})
	go func() {
		time.Sleep(20 * time.Millisecond)
		close(stop)
	}()
	start := time.Now()
	sleep(10*time.Second, stop)
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("sleep ignored stop signal, slept %v", elapsed)
	}
	if !stopped(stop) {
		t.Fatal("stopped must report true after stop is closed")
	}
}
