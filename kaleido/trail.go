package kaleido

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
)

// Trail accumulates composited frames with an exponential fade, producing
// the afterglow effect. Each tick the buffer is covered by the background
// color at the configured fade alpha and the new frame is blended on top,
// so the contribution of a frame from k ticks ago decays by
// (1 - fade/255)^k.
//
// The buffer is allocated once at the display resolution and mutated every
// tick; Reset clears it back to the background.
type Trail struct {
	buf     *image.NRGBA
	bg      color.NRGBA
	fade    uint8
	enabled bool
}

// NewTrail allocates a trail buffer. When trails are enabled the fade alpha
// must lie strictly between 0 (no fade, unbounded smear) and 255 (instant
// clear, no trail); values at either end are a configuration error.
func NewTrail(w, h int, bg color.NRGBA, fade uint8, enabled bool) (*Trail, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("kaleido: invalid trail buffer size %dx%d", w, h)
	}
	if enabled && (fade == 0 || fade == 255) {
		return nil, fmt.Errorf("kaleido: trail fade alpha %d outside (0,255)", fade)
	}
	bg.A = 0xff
	t := &Trail{
		buf:     image.NewNRGBA(image.Rect(0, 0, w, h)),
		bg:      bg,
		fade:    fade,
		enabled: enabled,
	}
	t.Reset()
	return t, nil
}

// Enabled reports whether trail accumulation is active.
func (t *Trail) Enabled() bool { return t.enabled }

// Bounds returns the buffer rectangle.
func (t *Trail) Bounds() image.Rectangle { return t.buf.Bounds() }

// Compose advances the trail one tick and returns the display buffer.
// With trails enabled, the buffer first fades toward the background and
// frame (if non-nil) is then alpha-blended over it at the given offset.
// With trails disabled the buffer is redrawn from scratch, so nothing from
// the previous tick survives. A nil frame fades only (stream stall).
func (t *Trail) Compose(frame *image.NRGBA, at image.Point) *image.NRGBA {
	if !t.enabled {
		t.fill(t.bg)
	} else {
		draw.DrawMask(t.buf, t.buf.Bounds(),
			image.NewUniform(t.bg), image.Point{},
			image.NewUniform(color.Alpha{A: t.fade}), image.Point{},
			draw.Over)
	}
	if frame != nil {
		r := frame.Bounds().Add(at)
		draw.Draw(t.buf, r, frame, frame.Bounds().Min, draw.Over)
	}
	return t.buf
}

// Reset clears the buffer to the background color.
func (t *Trail) Reset() {
	t.fill(t.bg)
}

func (t *Trail) fill(c color.NRGBA) {
	draw.Draw(t.buf, t.buf.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}
