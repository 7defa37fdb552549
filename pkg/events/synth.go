package events

import (
	"context"
	"io"
	"log/slog"
)

// Synthesizer turns a logical direction into the begin + swipe event pair.
type Synthesizer struct {
	injector Injector
	logger   *slog.Logger
}

// NewSynthesizer wraps injector. A nil logger discards output.
func NewSynthesizer(injector Injector, logger *slog.Logger) *Synthesizer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Synthesizer{injector: injector, logger: logger}
}

// Emit injects [begin, swipe] for dir, or for Opposite(dir) when reversed.
// Both events are built before either is posted; if one cannot be built
// nothing is posted. Emit reports whether the pair was injected.
func (s *Synthesizer) Emit(dir Direction, reversed bool) bool {
	var posted bool
	return s.emit(dir, reversed, &posted)
}

// emit sets *posted just before the first event is handed to the injector,
// so a caller recovering from a panic knows the swipe may have gone out.
func (s *Synthesizer) emit(dir Direction, reversed bool, posted *bool) bool {
	effective := dir
	if reversed {
		effective = Opposite(dir)
	}
	if effective != DirectionLeft && effective != DirectionRight {
		return false
	}
	if s.injector == nil {
		return false
	}

	begin, err := s.injector.Build(BeginGesture())
	if err != nil {
		s.debug("build begin gesture", "error", err)
		return false
	}
	defer begin.Release()

	swipe, err := s.injector.Build(SwipeGesture(effective))
	if err != nil {
		s.debug("build swipe gesture", "direction", effective.String(), "error", err)
		return false
	}
	defer swipe.Release()

	*posted = true
	s.injector.Post(begin)
	s.injector.Post(swipe)

	s.debug("swipe injected", "direction", effective.String(), "reversed", reversed)
	return true
}

func (s *Synthesizer) debug(msg string, args ...any) {
	if !s.logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	s.logger.Debug(msg, args...)
}
