package app

import (
	"fmt"
	"log/slog"

	"github.com/jkrysak/kaleidoscope/assets"
	"github.com/jkrysak/kaleidoscope/config"
	"github.com/jkrysak/kaleidoscope/source"
)

// Source modes selectable on the command line.
const (
	ModeImages = "images"
	ModeStream = "stream"
	ModeScreen = "screen"
)

// patternSize is the canvas side of the generated fallback pattern.
const patternSize = 720

// BuildPlaylist assembles the source playlist for the chosen mode.
//
// Image mode degrades to the built-in pattern when the folder yields no
// usable images; stream mode refuses to start without at least one
// RTSP_URL_N entry, surfacing the remediation guidance from the config
// layer.
func BuildPlaylist(mode string, cfg *config.Config, logger *slog.Logger) (*source.Playlist, error) {
	var sources []source.Source
	switch mode {
	case ModeImages:
		found, err := source.ScanFolder(cfg.ImagesDir, logger)
		if err != nil {
			logger.Warn("image folder unavailable, using built-in pattern", "dir", cfg.ImagesDir, "error", err)
		}
		sources = found
		if len(sources) == 0 {
			sources = append(sources, source.NewStatic("Pattern", assets.Pattern(patternSize)))
		}
	case ModeStream:
		streams, err := config.LoadStreamSources(cfg.EnvPath)
		if err != nil {
			return nil, err
		}
		for _, sc := range streams {
			sources = append(sources, source.NewStream(sc.Name, sc.URL, logger))
		}
	case ModeScreen:
		sources = append(sources, source.NewScreen())
	default:
		return nil, fmt.Errorf("unknown mode %q (want %s, %s or %s)", mode, ModeImages, ModeStream, ModeScreen)
	}
	return source.NewPlaylist(logger, sources...)
}
