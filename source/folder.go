package source

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/disintegration/imaging"

	// Register WebP decoding; imaging registers PNG/JPEG/GIF/BMP/TIFF itself.
	_ "golang.org/x/image/webp"
)

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".bmp":  true,
	".gif":  true,
	".webp": true,
}

// ImageFile is a Source backed by a single image file. The file is decoded
// on Start and cached until Close; a corrupt file surfaces its decode error
// from Start/Frame so the playlist can skip past it without failing.
type ImageFile struct {
	path string
	name string
	img  *image.NRGBA
}

// NewImageFile creates a source for the given image path.
func NewImageFile(path string) *ImageFile {
	base := filepath.Base(path)
	return &ImageFile{path: path, name: strings.TrimSuffix(base, filepath.Ext(base))}
}

func (f *ImageFile) Name() string { return f.name }

func (f *ImageFile) Start() error {
	if f.img != nil {
		return nil
	}
	img, err := imaging.Open(f.path, imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("decoding %s: %w", f.path, err)
	}
	f.img = imaging.Clone(img)
	return nil
}

func (f *ImageFile) Frame() (image.Image, error) {
	if f.img == nil {
		return nil, ErrNoFrame
	}
	return f.img, nil
}

// Close drops the cached decode so inactive images hold no pixel memory.
func (f *ImageFile) Close() error {
	f.img = nil
	return nil
}

// ScanFolder lists the supported image files in dir (sorted by name) and
// wraps each in an ImageFile source. Unsupported and hidden files are
// ignored. An unreadable directory is an error; an empty result is not.
func ScanFolder(dir string, logger *slog.Logger) ([]Source, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading image folder %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if imageExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)

	sources := make([]Source, 0, len(paths))
	for _, p := range paths {
		sources = append(sources, NewImageFile(p))
	}
	logger.Info("scanned image folder", "dir", dir, "images", len(sources))
	return sources, nil
}
