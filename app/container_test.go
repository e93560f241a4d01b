package app

import (
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/jkrysak/kaleidoscope/config"
)

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

var testLogger = slog.New(slog.NewTextHandler(discardWriter{}, nil))

func TestBuildPlaylistImagesFallsBackToPattern(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ImagesDir = t.TempDir() // empty folder
	p, err := BuildPlaylist(ModeImages, cfg, testLogger)
	if err != nil {
		t.Fatal(err)
	}
	if p.Len() != 1 || p.Active().Name() != "Pattern" {
		t.Fatalf("expected pattern fallback, got %d sources, active %q", p.Len(), p.Active().Name())
	}
	if _, err := p.Active().Frame(); err != nil {
		t.Fatalf("pattern frame: %v", err)
	}
}

func TestBuildPlaylistStreamRequiresEnv(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.EnvPath = filepath.Join(t.TempDir(), ".env")
	if _, err := BuildPlaylist(ModeStream, cfg, testLogger); err == nil {
		t.Fatal("stream mode started without .env")
	}
}

func TestBuildPlaylistUnknownMode(t *testing.T) {
	if _, err := BuildPlaylist("teapot", config.DefaultConfig(), testLogger); err == nil {
		t.Fatal("unknown mode accepted")
	}
}

func TestBuildPlaylistScreenMode(t *testing.T) {
	p, err := BuildPlaylist(ModeScreen, config.DefaultConfig(), testLogger)
	if err != nil {
		t.Fatal(err)
	}
	if p.Active().Name() != "Screen" {
		t.Fatalf("active source: %q", p.Active().Name())
	}
}
