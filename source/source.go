// Package source provides the frame sources feeding the kaleidoscope:
// static image files, RTSP camera streams and the live desktop. A playlist
// owns the sources and keeps exactly one of them open at a time.
package source

import (
	"errors"
	"image"
)

// ErrNoFrame is returned by Frame when a source has not produced a frame
// yet (e.g. a stream that is still connecting). The render loop treats it
// as "skip this tick", never as fatal.
var ErrNoFrame = errors.New("source: no frame available")

// Source is a scoped frame supplier. Start acquires the underlying
// resource (decoder, capture handle), Frame returns the most recent frame,
// and Close releases the resource. The playlist guarantees Close on
// switch-out and on program exit.
type Source interface {
	Name() string
	Start() error
	Frame() (image.Image, error)
	Close() error
}
