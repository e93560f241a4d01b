package assets

import (
	"bytes"
	"testing"
)

func TestPatternDeterministicAndOpaque(t *testing.T) {
	a := Pattern(64)
	b := Pattern(64)
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Fatal("pattern is not deterministic")
	}
	if a.Bounds().Dx() != 64 || a.Bounds().Dy() != 64 {
		t.Fatalf("bounds: %v", a.Bounds())
	}
	for i := 3; i < len(a.Pix); i += 4 {
		if a.Pix[i] != 0xff {
			t.Fatalf("pixel %d not opaque", i/4)
		}
	}
}

func TestPatternClampsSize(t *testing.T) {
	if got := Pattern(0).Bounds().Dx(); got != 1 {
		t.Fatalf("zero size not clamped: %d", got)
	}
}
