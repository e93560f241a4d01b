package kaleido

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

// A uniform red source must produce a fully red disc regardless of the
// rotation offset, with an exact transparent boundary outside the circle.
func TestRenderUniformRedSource(t *testing.T) {
	const size = 64
	red := color.NRGBA{R: 0xff, A: 0xff}
	src := image.NewNRGBA(image.Rect(0, 0, size, size))
	fillNRGBA(src, red)

	g, err := NewGeometry(size, 6)
	if err != nil {
		t.Fatal(err)
	}
	for _, offset := range []float64{0, 33.3, 180, 359.9} {
		out, err := g.Render(src, offset)
		if err != nil {
			t.Fatal(err)
		}
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				got := out.NRGBAAt(x, y)
				if g.SectorIndex(x, y) >= 0 {
					if got != red {
						t.Fatalf("offset %v: inside pixel (%d,%d) = %+v, want solid red", offset, x, y, got)
					}
				} else if got.A != 0 {
					t.Fatalf("offset %v: outside pixel (%d,%d) not transparent", offset, x, y)
				}
			}
		}
	}
}

func TestRenderDeterministic(t *testing.T) {
	src := gradientSource(64)
	g, err := NewGeometry(64, 14)
	if err != nil {
		t.Fatal(err)
	}
	a, err := g.Render(src, 42)
	if err != nil {
		t.Fatal(err)
	}
	b, err := g.Render(src, 42)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Fatal("same source and offset produced different outputs")
	}
}

func TestRenderDoesNotMutateSource(t *testing.T) {
	src := gradientSource(48)
	before := append([]byte(nil), src.Pix...)
	g, err := NewGeometry(48, 6)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := g.Render(src, 17); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(before, src.Pix) {
		t.Fatal("render mutated the source frame")
	}
}

func TestRenderRejectsWrongSize(t *testing.T) {
	g, err := NewGeometry(64, 6)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := g.Render(image.NewNRGBA(image.Rect(0, 0, 32, 32)), 0); err == nil {
		t.Fatal("mismatched source size accepted")
	}
}

func TestExtractWedge(t *testing.T) {
	const size = 48
	g, err := NewGeometry(size, 6)
	if err != nil {
		t.Fatal(err)
	}
	src := image.NewNRGBA(image.Rect(0, 0, size, size))
	fillNRGBA(src, color.NRGBA{R: 1, G: 2, B: 3, A: 0xff})

	mask := g.SectorMask(0)
	wedge := ExtractWedge(src, mask)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			got := wedge.NRGBAAt(x, y)
			if g.SectorIndex(x, y) == 0 {
				if got.A != 0xff {
					t.Fatalf("sector pixel (%d,%d) lost opacity: %+v", x, y, got)
				}
			} else if got.A != 0 {
				t.Fatalf("pixel (%d,%d) outside wedge kept alpha %d", x, y, got.A)
			}
		}
	}
}

func gradientSource(size int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / size),
				G: uint8(y * 255 / size),
				B: uint8((x + y) * 255 / (2 * size)),
				A: 0xff,
			})
		}
	}
	return img
}
