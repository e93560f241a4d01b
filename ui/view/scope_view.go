package view

import (
	"image"

	"github.com/jkrysak/kaleidoscope/ui/images"

	. "modernc.org/tk9.0"
)

// ScopeView owns the widgets showing the composited scope output and the
// HUD line underneath it. The frame label swaps its Tk photo image every
// update; the previous photo is deleted so off-screen pixel data does not
// accumulate.
type ScopeView struct {
	frameLabel *LabelWidget
	hudLabel   *LabelWidget
	prevPhoto  *Img
	maxW, maxH int
}

// NewScopeView builds and packs the display label and HUD.
func NewScopeView(maxW, maxH int) *ScopeView {
	if maxW < 50 {
		maxW = 50
	}
	if maxH < 50 {
		maxH = 50
	}
	placeholder := image.NewNRGBA(image.Rect(0, 0, maxW, maxH))
	photo := NewPhoto(Data(images.EncodePNG(placeholder)))
	v := &ScopeView{
		frameLabel: Label(Image(photo), Borderwidth(0)),
		hudLabel:   Label(Txt("starting…"), Anchor("w")),
		prevPhoto:  photo,
		maxW:       maxW,
		maxH:       maxH,
	}
	Pack(v.frameLabel, Padx("1m"), Pady("1m"))
	Pack(v.hudLabel, Fill("x"), Padx("1m"))
	return v
}

// UpdateFrame replaces the displayed image, scaling it down if it exceeds
// the view's maximum dimensions.
func (v *ScopeView) UpdateFrame(img image.Image) {
	if v.frameLabel == nil || img == nil {
		return
	}
	scaled := images.ScaleToFit(img, v.maxW, v.maxH)
	data := images.EncodePNG(scaled)
	if len(data) == 0 {
		return
	}
	if v.prevPhoto != nil {
		v.prevPhoto.Delete()
	}
	photo := NewPhoto(Data(data))
	v.prevPhoto = photo
	v.frameLabel.Configure(Image(photo))
}

// SetHUD updates the status line under the scope.
func (v *ScopeView) SetHUD(text string) {
	if v.hudLabel == nil {
		return
	}
	v.hudLabel.Configure(Txt(text))
}
