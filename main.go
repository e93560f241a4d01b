package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/jkrysak/kaleidoscope/app"
	"github.com/jkrysak/kaleidoscope/config"
	"github.com/jkrysak/kaleidoscope/debug"
)

func main() {
	mode := pflag.String("mode", app.ModeImages, `frame source kind: "images", "stream" or "screen"`)
	cfgPath := pflag.String("config", "kaleido.json", "path to the JSON config file")
	imagesDir := pflag.String("images", "", "override the image folder")
	envPath := pflag.String("env", "", "override the .env file holding RTSP_URL_N entries")
	snapDir := pflag.String("snapshots", "", "override the snapshot output folder")
	debugFlag := pflag.Bool("debug", false, "enable debug logging and memory stats")
	pflag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config %s: %v\n", *cfgPath, err)
		os.Exit(1)
	}
	if *imagesDir != "" {
		cfg.ImagesDir = *imagesDir
	}
	if *envPath != "" {
		cfg.EnvPath = *envPath
	}
	if *snapDir != "" {
		cfg.SnapshotDir = *snapDir
	}
	if *debugFlag {
		cfg.Debug = true
	}
	_ = cfg.Validate()

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := NewLogger(level)

	if cfg.Debug {
		debug.StartMemLogger(2*time.Second, logger)
	}

	playlist, err := app.BuildPlaylist(*mode, cfg, logger)
	if err != nil {
		logger.Error("no usable sources", "mode", *mode, "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	a, err := app.New(cfg, logger, playlist)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}
	if err := a.Run(); err != nil {
		logger.Error("render loop failed", "error", err)
		os.Exit(1)
	}
}
