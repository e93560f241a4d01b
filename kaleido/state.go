package kaleido

import (
	"fmt"
	"math"
	"time"
)

// Limits bound user-adjustable scope parameters.
type Limits struct {
	MinSlices int
	MaxSlices int
	SliceStep int
	MaxSpeed  float64 // deg/s, applied symmetrically
	SpeedStep float64
}

// State carries the mutable scope parameters threaded through the tick loop:
// slice count, rotation angle/speed and the pause flag. It replaces what the
// original tool kept in module globals so the transform can be driven and
// tested without a window.
type State struct {
	lim    Limits
	Slices int
	Angle  float64 // degrees, wraps mod 360
	Speed  float64 // degrees per second, may be negative
	Paused bool
}

// NewState builds a State with the given starting values, clamped to lim.
func NewState(slices int, speed float64, lim Limits) *State {
	s := &State{lim: lim, Slices: slices, Speed: speed}
	s.clampSlices()
	s.clampSpeed()
	return s
}

// Tick advances the rotation angle by Speed over dt while running. While
// paused the angle is frozen exactly; nothing else changes.
func (s *State) Tick(dt time.Duration) {
	if s.Paused || dt <= 0 {
		return
	}
	s.Angle = wrapDegrees(s.Angle + s.Speed*dt.Seconds())
}

// TogglePause flips between Running and Paused and reports the new flag.
func (s *State) TogglePause() bool {
	s.Paused = !s.Paused
	return s.Paused
}

// AdjustSlices moves the slice count one configured step up (dir > 0) or
// down (dir < 0), clamped to the configured range. Reports whether the
// count actually changed, so callers know when to rebuild geometry.
func (s *State) AdjustSlices(dir int) bool {
	prev := s.Slices
	switch {
	case dir > 0:
		s.Slices += s.lim.SliceStep
	case dir < 0:
		s.Slices -= s.lim.SliceStep
	}
	s.clampSlices()
	return s.Slices != prev
}

// AdjustSpeed moves the rotation speed one step, clamped to ±MaxSpeed.
func (s *State) AdjustSpeed(dir int) {
	switch {
	case dir > 0:
		s.Speed += s.lim.SpeedStep
	case dir < 0:
		s.Speed -= s.lim.SpeedStep
	}
	s.clampSpeed()
}

// String summarizes the state for the HUD.
func (s *State) String() string {
	mode := "running"
	if s.Paused {
		mode = "paused"
	}
	return fmt.Sprintf("slices: %d  |  speed: %.1f°/s  |  %s", s.Slices, s.Speed, mode)
}

func (s *State) clampSlices() {
	if s.Slices < s.lim.MinSlices {
		s.Slices = s.lim.MinSlices
	}
	if s.lim.MaxSlices > 0 && s.Slices > s.lim.MaxSlices {
		s.Slices = s.lim.MaxSlices
	}
}

func (s *State) clampSpeed() {
	if s.lim.MaxSpeed <= 0 {
		return
	}
	if s.Speed > s.lim.MaxSpeed {
		s.Speed = s.lim.MaxSpeed
	}
	if s.Speed < -s.lim.MaxSpeed {
		s.Speed = -s.lim.MaxSpeed
	}
}

func wrapDegrees(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}
