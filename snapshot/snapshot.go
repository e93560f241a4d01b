// Package snapshot writes the current scope output to timestamped PNG
// files on user request.
package snapshot

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
)

const timeLayout = "20060102_150405"

// Save writes img into dir (created if absent) as
// <source>_snap_YYYYMMDD_HHMMSS.png and returns the written path. Failures
// are returned to the caller for logging; they never stop the render loop.
func Save(img image.Image, dir, sourceName string, now time.Time) (string, error) {
	if img == nil {
		return "", fmt.Errorf("snapshot: nil image")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("snapshot: creating %s: %w", dir, err)
	}
	name := fmt.Sprintf("%s_snap_%s.png", sanitize(sourceName), now.Format(timeLayout))
	path := filepath.Join(dir, name)
	if err := imaging.Save(img, path); err != nil {
		return "", fmt.Errorf("snapshot: writing %s: %w", path, err)
	}
	return path, nil
}

func sanitize(name string) string {
	if name == "" {
		return "scope"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
