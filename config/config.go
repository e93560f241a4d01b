package config

import (
	"encoding/json"
	"os"
)

// Config holds runtime configuration for the kaleidoscope window and the
// transform pipeline. Fields may be loaded from a JSON file and overridden
// by command-line flags.
type Config struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	// Transform parameters
	Slices         int     `json:"slices"`
	SliceStep      int     `json:"slice_step"`
	MinSlices      int     `json:"min_slices"`
	MaxSlices      int     `json:"max_slices"`
	SpeedDegPerSec float64 `json:"speed_deg_per_sec"`
	SpeedStep      float64 `json:"speed_step"`
	MaxSpeed       float64 `json:"max_speed"`

	// Trails. Higher fade alpha means shorter trails (10-35 works well).
	TrailsEnabled  bool `json:"trails_enabled"`
	TrailFadeAlpha int  `json:"trail_fade_alpha"`

	// I/O locations
	ImagesDir   string `json:"images_dir"`
	SnapshotDir string `json:"snapshot_dir"`
	EnvPath     string `json:"env_path"`

	TickMillis int  `json:"tick_millis"`
	Debug      bool `json:"debug"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Width:          900,
		Height:         700,
		Slices:         14,
		SliceStep:      2,
		MinSlices:      2,
		MaxSlices:      64,
		SpeedDegPerSec: 34.0,
		SpeedStep:      2.0,
		MaxSpeed:       360.0,
		TrailsEnabled:  true,
		TrailFadeAlpha: 30,
		ImagesDir:      "images",
		SnapshotDir:    "snapshots",
		EnvPath:        ".env",
		TickMillis:     33,
		Debug:          false,
	}
}

// Validate clamps/normalizes values to safe ranges. Out-of-range values are
// corrected at this boundary so the transform pipeline never sees them.
func (c *Config) Validate() error {
	if c.Width < 320 {
		c.Width = 320
	}
	if c.Height < 240 {
		c.Height = 240
	}
	if c.MinSlices < 2 {
		c.MinSlices = 2
	}
	if c.MaxSlices < c.MinSlices {
		c.MaxSlices = c.MinSlices
	}
	if c.SliceStep <= 0 {
		c.SliceStep = 2
	}
	if c.Slices < c.MinSlices {
		c.Slices = c.MinSlices
	}
	if c.Slices > c.MaxSlices {
		c.Slices = c.MaxSlices
	}
	if c.MaxSpeed <= 0 {
		c.MaxSpeed = 360.0
	}
	if c.SpeedStep <= 0 {
		c.SpeedStep = 2.0
	}
	if c.SpeedDegPerSec > c.MaxSpeed {
		c.SpeedDegPerSec = c.MaxSpeed
	}
	if c.SpeedDegPerSec < -c.MaxSpeed {
		c.SpeedDegPerSec = -c.MaxSpeed
	}
	// Fade alpha 0 would never fade, 255 would clear instantly; both
	// degenerate the trail blend, so clamp strictly inside.
	if c.TrailFadeAlpha < 1 {
		c.TrailFadeAlpha = 1
	}
	if c.TrailFadeAlpha > 254 {
		c.TrailFadeAlpha = 254
	}
	if c.TickMillis < 15 {
		c.TickMillis = 15
	}
	if c.TickMillis > 250 {
		c.TickMillis = 250
	}
	if c.ImagesDir == "" {
		c.ImagesDir = "images"
	}
	if c.SnapshotDir == "" {
		c.SnapshotDir = "snapshots"
	}
	if c.EnvPath == "" {
		c.EnvPath = ".env"
	}
	return nil
}

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it returns DefaultConfig(). On JSON error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return cfg, err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
