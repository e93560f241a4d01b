package source

import (
	"image"

	"github.com/vova616/screenshot"
)

// Screen is a Source over the live desktop: every Frame call grabs a fresh
// screenshot of the active monitor. No resource outlives the call, so
// Start and Close are no-ops.
type Screen struct{}

// NewScreen creates a desktop capture source.
func NewScreen() *Screen { return &Screen{} }

func (s *Screen) Name() string { return "Screen" }

func (s *Screen) Start() error { return nil }

func (s *Screen) Frame() (image.Image, error) {
	img, err := screenshot.CaptureScreen()
	if err != nil {
		return nil, err
	}
	return img, nil
}

func (s *Screen) Close() error { return nil }
