package source

import "image"

// Static is a Source over an in-memory image, used for the generated
// fallback pattern. Start and Close are no-ops.
type Static struct {
	name string
	img  image.Image
}

// NewStatic wraps an image in a Source.
func NewStatic(name string, img image.Image) *Static {
	return &Static{name: name, img: img}
}

func (s *Static) Name() string { return s.name }

func (s *Static) Start() error { return nil }

func (s *Static) Frame() (image.Image, error) {
	if s.img == nil {
		return nil, ErrNoFrame
	}
	return s.img, nil
}

func (s *Static) Close() error { return nil }
