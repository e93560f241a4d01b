package app

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"time"

	"github.com/disintegration/imaging"

	. "modernc.org/tk9.0"

	"github.com/jkrysak/kaleidoscope/config"
	"github.com/jkrysak/kaleidoscope/kaleido"
	"github.com/jkrysak/kaleidoscope/snapshot"
	"github.com/jkrysak/kaleidoscope/source"
	"github.com/jkrysak/kaleidoscope/ui/view"
)

// Background behind the scope circle and under fading trails.
var background = color.NRGBA{R: 14, G: 16, B: 20, A: 0xff}

// scopeMargin is the gap between the scope circle and the window edge.
const scopeMargin = 30

// app owns the window, the per-tick render pipeline and the keyboard
// control surface. All state lives here and is mutated only on the Tk
// event-loop thread.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	playlist *source.Playlist

	state *kaleido.State
	geom  *kaleido.Geometry
	trail *kaleido.Trail
	view  *view.ScopeView

	scopeSize  int
	lastFrame  *image.NRGBA // last good source frame, resized to the scope square
	lastOutput *image.NRGBA // last rendered composite, for snapshots
	lastTick   time.Time
	afterID    string
	fullscreen bool
}

// New assembles the application for the given source playlist. The scope
// square is sized from the configured window like the original effect:
// radius = min(w,h)/2 - margin.
func New(cfg *config.Config, logger *slog.Logger, playlist *source.Playlist) (*app, error) {
	short := cfg.Width
	if cfg.Height < short {
		short = cfg.Height
	}
	scopeSize := short - 2*scopeMargin

	geom, err := kaleido.NewGeometry(scopeSize, cfg.Slices)
	if err != nil {
		return nil, err
	}
	trail, err := kaleido.NewTrail(scopeSize, scopeSize, background, uint8(cfg.TrailFadeAlpha), cfg.TrailsEnabled)
	if err != nil {
		return nil, err
	}
	state := kaleido.NewState(cfg.Slices, cfg.SpeedDegPerSec, kaleido.Limits{
		MinSlices: cfg.MinSlices,
		MaxSlices: cfg.MaxSlices,
		SliceStep: cfg.SliceStep,
		MaxSpeed:  cfg.MaxSpeed,
		SpeedStep: cfg.SpeedStep,
	})
	return &app{
		cfg:       cfg,
		logger:    logger,
		playlist:  playlist,
		state:     state,
		geom:      geom,
		trail:     trail,
		scopeSize: scopeSize,
	}, nil
}

// Run builds the window, starts the active source and enters the Tk event
// loop. It returns when the window closes; the active source is released
// on the way out.
func (a *app) Run() error {
	App.WmTitle("Kaleidoscope")
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", a.cfg.Width, a.cfg.Height))
	WmProtocol(App, "WM_DELETE_WINDOW", a.quit)

	a.view = view.NewScopeView(a.scopeSize, a.scopeSize)
	a.bindKeys()

	if err := a.playlist.Start(); err != nil {
		return err
	}
	defer func() {
		if err := a.playlist.Close(); err != nil {
			a.logger.Warn("closing active source", "error", err)
		}
	}()

	a.logger.Info("render loop starting",
		"sources", a.playlist.Len(),
		"slices", a.state.Slices,
		"trails", a.trail.Enabled(),
		"tick_ms", a.cfg.TickMillis)

	a.lastTick = time.Now()
	a.schedule()
	App.Wait()
	return nil
}

func (a *app) bindKeys() {
	Bind(App, "<space>", Command(a.nextSource))
	Bind(App, "<Key-a>", Command(func() { a.togglePause() }))
	Bind(App, "<Right>", Command(func() { a.adjustSpeed(1) }))
	Bind(App, "<Key-plus>", Command(func() { a.adjustSpeed(1) }))
	Bind(App, "<Key-equal>", Command(func() { a.adjustSpeed(1) }))
	Bind(App, "<Left>", Command(func() { a.adjustSpeed(-1) }))
	Bind(App, "<Key-minus>", Command(func() { a.adjustSpeed(-1) }))
	Bind(App, "<Up>", Command(func() { a.adjustSlices(1) }))
	Bind(App, "<Down>", Command(func() { a.adjustSlices(-1) }))
	Bind(App, "<Key-f>", Command(a.toggleFullscreen))
	Bind(App, "<Key-p>", Command(a.saveSnapshot))
	Bind(App, "<Key-q>", Command(a.quit))
	Bind(App, "<Escape>", Command(a.quit))
}

// tick is one iteration of the render loop: advance state, poll the newest
// frame, run the transform pipeline and present the result.
func (a *app) tick() {
	now := time.Now()
	dt := now.Sub(a.lastTick)
	a.lastTick = now
	a.state.Tick(dt)

	src := a.playlist.Active()
	if img, err := src.Frame(); err == nil {
		a.lastFrame = imaging.Fill(img, a.scopeSize, a.scopeSize, imaging.Center, imaging.Lanczos)
	} else if !errors.Is(err, source.ErrNoFrame) {
		// Keep showing the previous frame; a stalled or failing source must
		// not take the loop down.
		a.logger.Warn("frame unavailable", "source", src.Name(), "error", err)
	}

	if a.lastFrame == nil {
		a.view.UpdateFrame(a.trail.Compose(nil, image.Point{}))
		a.view.SetHUD(fmt.Sprintf("Waiting for %s…", src.Name()))
		a.schedule()
		return
	}

	out, err := a.geom.Render(a.lastFrame, a.state.Angle)
	if err != nil {
		a.logger.Error("render failed", "error", err)
		a.schedule()
		return
	}
	a.lastOutput = out
	a.view.UpdateFrame(a.trail.Compose(out, image.Point{}))
	a.view.SetHUD(fmt.Sprintf("%s  |  %s  |  SPACE: switch", src.Name(), a.state))
	a.schedule()
}

func (a *app) schedule() {
	a.afterID = TclAfter(time.Duration(a.cfg.TickMillis)*time.Millisecond, a.tick)
}

func (a *app) nextSource() {
	src := a.playlist.Next()
	a.lastFrame = nil
	a.lastOutput = nil
	a.trail.Reset()
	a.view.SetHUD(fmt.Sprintf("Waiting for %s…", src.Name()))
}

func (a *app) togglePause() {
	paused := a.state.TogglePause()
	a.logger.Debug("pause toggled", "paused", paused)
}

func (a *app) adjustSpeed(dir int) {
	a.state.AdjustSpeed(dir)
}

func (a *app) adjustSlices(dir int) {
	if !a.state.AdjustSlices(dir) {
		return
	}
	geom, err := kaleido.NewGeometry(a.scopeSize, a.state.Slices)
	if err != nil {
		// Clamping keeps the count valid, so this only fires on a bug.
		a.logger.Error("geometry rebuild failed", "slices", a.state.Slices, "error", err)
		return
	}
	a.geom = geom
	a.trail.Reset()
	a.logger.Debug("slice count changed", "slices", a.state.Slices)
}

func (a *app) toggleFullscreen() {
	a.fullscreen = !a.fullscreen
	WmAttributes(App, "-fullscreen", a.fullscreen)
}

func (a *app) saveSnapshot() {
	if a.lastOutput == nil {
		a.logger.Warn("no frame rendered yet, snapshot skipped")
		return
	}
	path, err := snapshot.Save(a.lastOutput, a.cfg.SnapshotDir, a.playlist.Active().Name(), time.Now())
	if err != nil {
		a.logger.Error("snapshot failed", "error", err)
		return
	}
	a.logger.Info("saved snapshot", "path", path)
}

func (a *app) quit() {
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
		a.afterID = ""
	}
	Destroy(App)
}
