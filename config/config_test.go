package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidateClampsSliceCount(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Slices = 1
	_ = cfg.Validate()
	if cfg.Slices != cfg.MinSlices {
		t.Fatalf("slices below minimum not clamped: got %d want %d", cfg.Slices, cfg.MinSlices)
	}

	cfg = DefaultConfig()
	cfg.Slices = 9999
	_ = cfg.Validate()
	if cfg.Slices != cfg.MaxSlices {
		t.Fatalf("slices above maximum not clamped: got %d want %d", cfg.Slices, cfg.MaxSlices)
	}
}

func TestValidateClampsFadeAlpha(t *testing.T) {
	for _, tc := range []struct {
		in   int
		want int
	}{
		{-5, 1},
		{0, 1},
		{255, 254},
		{1000, 254},
		{30, 30},
	} {
		cfg := DefaultConfig()
		cfg.TrailFadeAlpha = tc.in
		_ = cfg.Validate()
		if cfg.TrailFadeAlpha != tc.want {
			t.Errorf("fade alpha %d: got %d want %d", tc.in, cfg.TrailFadeAlpha, tc.want)
		}
	}
}

func TestValidateClampsSpeed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SpeedDegPerSec = 100000
	_ = cfg.Validate()
	if cfg.SpeedDegPerSec != cfg.MaxSpeed {
		t.Fatalf("speed not clamped to max: got %v", cfg.SpeedDegPerSec)
	}
	cfg.SpeedDegPerSec = -100000
	_ = cfg.Validate()
	if cfg.SpeedDegPerSec != -cfg.MaxSpeed {
		t.Fatalf("speed not clamped to -max: got %v", cfg.SpeedDegPerSec)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("missing config file should not be an error: %v", err)
	}
	if cfg.Slices != DefaultConfig().Slices {
		t.Fatalf("expected defaults, got slices=%d", cfg.Slices)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kaleido.json")
	cfg := DefaultConfig()
	cfg.Slices = 20
	cfg.TrailsEnabled = false
	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Slices != 20 || got.TrailsEnabled {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestLoadStreamSourcesMissingEnv(t *testing.T) {
	_, err := LoadStreamSources(filepath.Join(t.TempDir(), ".env"))
	if err == nil {
		t.Fatal("expected error for missing .env")
	}
}

func TestLoadStreamSourcesSortedAndNamed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	body := "# cameras\nRTSP_URL_12=rtsp://host/twelve\nRTSP_URL_3=rtsp://host/three\nOTHER_KEY=x\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	srcs, err := LoadStreamSources(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(srcs) < 2 {
		t.Fatalf("expected at least 2 sources, got %d", len(srcs))
	}
	// Entries from the file must appear ordered by index.
	var i3, i12 = -1, -1
	for i, s := range srcs {
		switch s.Name {
		case "Cam3":
			i3 = i
			if s.URL != "rtsp://host/three" {
				t.Errorf("Cam3 url: %q", s.URL)
			}
		case "Cam12":
			i12 = i
		}
	}
	if i3 == -1 || i12 == -1 || i3 > i12 {
		t.Fatalf("sources not sorted by index: %+v", srcs)
	}
}

func TestLoadStreamSourcesEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("UNRELATED=1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	// The process environment may legitimately carry RTSP_URL_N keys; only
	// assert the empty error when none are present.
	srcs, err := LoadStreamSources(path)
	if err == nil && len(srcs) == 0 {
		t.Fatal("no sources and no error")
	}
}
