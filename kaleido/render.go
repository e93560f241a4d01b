package kaleido

import (
	"image"
	"image/color"
	"math"
)

// Render composites the full kaleidoscope for one frame. The source must be
// a Size x Size image (resize before calling). Every pixel inside the scope
// circle samples the source along its folded sector direction rotated by
// offsetDeg, so each of the N wedges shows the base wedge rotated into
// place, with odd wedges mirrored. Pixels outside the circle stay
// transparent.
//
// Render is a pure function of (geometry, source, offset); it never mutates
// the source and allocates a fresh output each call.
func (g *Geometry) Render(src *image.NRGBA, offsetDeg float64) (*image.NRGBA, error) {
	if err := g.checkCanvas(src); err != nil {
		return nil, err
	}
	out := image.NewNRGBA(image.Rect(0, 0, g.Size, g.Size))

	rad := offsetDeg * math.Pi / 180
	co := float32(math.Cos(rad))
	so := float32(math.Sin(rad))
	c := float32(g.Size) / 2

	for i, sec := range g.sector {
		if sec < 0 {
			continue
		}
		ux, uy := g.ux[i], g.uy[i]
		// Rotate the folded sample direction by the animation offset.
		fx := c + ux*co + uy*so
		fy := c - (uy*co - ux*so)
		px := sampleBilinear(src, float64(fx)-0.5, float64(fy)-0.5)
		o := i * 4
		out.Pix[o] = px.R
		out.Pix[o+1] = px.G
		out.Pix[o+2] = px.B
		out.Pix[o+3] = px.A
	}
	// The sector table already excludes outside pixels; the explicit clip
	// keeps the boundary exact if the table ever includes soft edges.
	_ = g.ClipCircle(out)
	return out, nil
}

// ExtractWedge applies a wedge alpha mask to a frame, producing the masked
// wedge image: pixels outside the sector become fully transparent.
func ExtractWedge(src *image.NRGBA, mask *image.Alpha) *image.NRGBA {
	b := src.Bounds()
	out := image.NewNRGBA(b)
	copy(out.Pix, src.Pix)
	mb := mask.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			var m uint8
			if image.Pt(x, y).In(mb) {
				m = mask.AlphaAt(x, y).A
			}
			o := out.PixOffset(x, y)
			out.Pix[o+3] = uint8(uint32(out.Pix[o+3]) * uint32(m) / 0xff)
		}
	}
	return out
}

// sampleBilinear samples src at a fractional pixel-center coordinate,
// clamping to the image edge.
func sampleBilinear(src *image.NRGBA, x, y float64) color.NRGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	if x > float64(w-1) {
		x = float64(w - 1)
	}
	if y > float64(h-1) {
		y = float64(h - 1)
	}
	x0, y0 := int(x), int(y)
	x1, y1 := x0+1, y0+1
	if x1 > w-1 {
		x1 = w - 1
	}
	if y1 > h-1 {
		y1 = h - 1
	}
	fx, fy := x-float64(x0), y-float64(y0)

	blend := func(o00, o10, o01, o11 int) uint8 {
		top := float64(src.Pix[o00])*(1-fx) + float64(src.Pix[o10])*fx
		bot := float64(src.Pix[o01])*(1-fx) + float64(src.Pix[o11])*fx
		return uint8(top*(1-fy) + bot*fy + 0.5)
	}
	o00 := src.PixOffset(b.Min.X+x0, b.Min.Y+y0)
	o10 := src.PixOffset(b.Min.X+x1, b.Min.Y+y0)
	o01 := src.PixOffset(b.Min.X+x0, b.Min.Y+y1)
	o11 := src.PixOffset(b.Min.X+x1, b.Min.Y+y1)
	return color.NRGBA{
		R: blend(o00, o10, o01, o11),
		G: blend(o00+1, o10+1, o01+1, o11+1),
		B: blend(o00+2, o10+2, o01+2, o11+2),
		A: blend(o00+3, o10+3, o01+3, o11+3),
	}
}
