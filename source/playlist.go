package source

import (
	"errors"
	"log/slog"
)

// Playlist cycles through an ordered set of sources. Only the active source
// is open; Next closes it before starting the following one and wraps
// around past the end. A source whose Start fails is logged and skipped.
type Playlist struct {
	logger  *slog.Logger
	sources []Source
	idx     int
}

// NewPlaylist builds a playlist over the given sources. At least one source
// is required.
func NewPlaylist(logger *slog.Logger, sources ...Source) (*Playlist, error) {
	if len(sources) == 0 {
		return nil, errors.New("source: playlist needs at least one source")
	}
	return &Playlist{logger: logger, sources: sources}, nil
}

// Len returns the number of configured sources.
func (p *Playlist) Len() int { return len(p.sources) }

// Active returns the currently selected source.
func (p *Playlist) Active() Source { return p.sources[p.idx] }

// Start opens the active source, advancing past sources that fail to start.
// It fails only if no source in the playlist can be started.
func (p *Playlist) Start() error {
	for range p.sources {
		src := p.sources[p.idx]
		err := src.Start()
		if err == nil {
			return nil
		}
		p.logger.Warn("source failed to start, skipping", "source", src.Name(), "error", err)
		p.idx = (p.idx + 1) % len(p.sources)
	}
	return errors.New("source: no source in the playlist could be started")
}

// Next switches to the following source, wrapping from the last back to the
// first. The outgoing source is closed before the incoming one is started;
// candidates that fail to start are skipped. If every other source fails,
// the playlist falls back to reopening the current one.
func (p *Playlist) Next() Source {
	cur := p.sources[p.idx]
	if err := cur.Close(); err != nil {
		p.logger.Warn("closing source", "source", cur.Name(), "error", err)
	}
	for i := 1; i <= len(p.sources); i++ {
		idx := (p.idx + i) % len(p.sources)
		src := p.sources[idx]
		if err := src.Start(); err != nil {
			p.logger.Warn("source failed to start, skipping", "source", src.Name(), "error", err)
			continue
		}
		p.idx = idx
		p.logger.Info("switched source", "source", src.Name())
		return src
	}
	return cur
}

// Close releases the active source. Safe to call more than once.
func (p *Playlist) Close() error {
	return p.sources[p.idx].Close()
}
