package kaleido

import (
	"fmt"
	"image"
	"math"
)

// MinSliceCount is the smallest slice count with a non-degenerate sector.
const MinSliceCount = 2

// Geometry precomputes the per-pixel sector fold for a square scope canvas
// of a given side and slice count. For every pixel inside the circle it
// stores the sector index and the folded sampling offset from the center;
// odd sectors are reflected across their wedge's bisecting radius, which
// yields the classic mirrored kaleidoscope symmetry.
//
// Sector buckets are disjoint and exhaustive over the disc, so the N wedges
// tile the circle exactly with no gaps and no overlaps.
type Geometry struct {
	Size   int // canvas side, equals 2R
	Slices int
	Radius float64

	sector []int32 // per-pixel sector index, -1 outside the circle
	ux, uy []float32
}

// NewGeometry builds the fold tables for a size x size canvas split into
// the given number of slices. The slice count must be at least
// MinSliceCount; smaller values describe an invalid sector.
func NewGeometry(size, slices int) (*Geometry, error) {
	if size <= 0 {
		return nil, fmt.Errorf("kaleido: invalid canvas size %d", size)
	}
	if slices < MinSliceCount {
		return nil, fmt.Errorf("kaleido: slice count %d below minimum %d", slices, MinSliceCount)
	}
	g := &Geometry{
		Size:   size,
		Slices: slices,
		Radius: float64(size) / 2,
		sector: make([]int32, size*size),
		ux:     make([]float32, size*size),
		uy:     make([]float32, size*size),
	}

	theta := 2 * math.Pi / float64(slices)
	c := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			i := y*size + x
			dx := float64(x) + 0.5 - c
			dy := float64(y) + 0.5 - c
			r := math.Hypot(dx, dy)
			if r > g.Radius {
				g.sector[i] = -1
				continue
			}
			// Angle measured clockwise from the up axis, shifted by half a
			// sector so sector 0 is the wedge centered on that axis, like
			// the base wedge mask of the original effect.
			phi := math.Atan2(dx, -dy)
			q := phi + theta/2
			for q < 0 {
				q += 2 * math.Pi
			}
			sec := int(q / theta)
			if sec >= slices { // guard float rounding at the wrap seam
				sec = 0
			}
			local := q - float64(sec)*theta
			if sec%2 == 1 {
				local = theta - local
			}
			a := local - theta/2
			g.sector[i] = int32(sec)
			g.ux[i] = float32(r * math.Sin(a))
			g.uy[i] = float32(r * math.Cos(a))
		}
	}
	return g, nil
}

// SectorAngle returns the wedge angle in degrees (360/N).
func (g *Geometry) SectorAngle() float64 {
	return 360 / float64(g.Slices)
}

// SectorIndex reports which sector the pixel at (x, y) belongs to, or -1 if
// the pixel lies outside the circle or the canvas.
func (g *Geometry) SectorIndex(x, y int) int {
	if x < 0 || y < 0 || x >= g.Size || y >= g.Size {
		return -1
	}
	return int(g.sector[y*g.Size+x])
}

// Mirrored reports whether the given sector is a reflected copy. Mirroring
// alternates strictly by parity.
func (g *Geometry) Mirrored(sector int) bool {
	return sector >= 0 && sector%2 == 1
}

// SectorMask returns an alpha mask of a single wedge: fully opaque where a
// pixel belongs to the given sector (inside the circle), transparent
// elsewhere. Applying it to a frame extracts that frame's wedge.
func (g *Geometry) SectorMask(sector int) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, g.Size, g.Size))
	if sector < 0 || sector >= g.Slices {
		return mask
	}
	for i, s := range g.sector {
		if int(s) == sector {
			mask.Pix[i] = 0xff
		}
	}
	return mask
}

// ClipCircle makes every pixel outside the scope circle fully transparent,
// leaving inside pixels untouched. Idempotent.
func (g *Geometry) ClipCircle(img *image.NRGBA) error {
	if err := g.checkCanvas(img); err != nil {
		return err
	}
	for i, s := range g.sector {
		if s >= 0 {
			continue
		}
		o := i * 4
		img.Pix[o] = 0
		img.Pix[o+1] = 0
		img.Pix[o+2] = 0
		img.Pix[o+3] = 0
	}
	return nil
}

func (g *Geometry) checkCanvas(img *image.NRGBA) error {
	b := img.Bounds()
	if b.Min.X != 0 || b.Min.Y != 0 || b.Dx() != g.Size || b.Dy() != g.Size {
		return fmt.Errorf("kaleido: canvas bounds %v do not match geometry size %d", b, g.Size)
	}
	return nil
}
