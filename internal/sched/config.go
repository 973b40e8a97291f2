package sched

import (
	"time"

	"github.com/rs/zerolog"

	"animd/internal/catalog"
	"animd/pkg/types"
)

// Defaults applied when corresponding Config fields are unset.
const (
	defaultFrameInterval    = 16 * time.Millisecond
	defaultBackoff          = 50 * time.Millisecond
	defaultCompletionBuffer = 50 * time.Millisecond
	defaultQueuePreview     = 5
)

// Concurrency caps per quality tier.
const (
	capHigh    = 8
	capMedium  = 5
	capReduced = 3
)

// Config encapsulates all tunables for Scheduler construction.
type Config struct {
	Renderer Renderer
	Catalog  *catalog.Catalog
	Clock    Clock
	Logger   *zerolog.Logger
	Events   EventPublisher
	// FrameInterval is the rearm delay after a successful promotion.
	FrameInterval time.Duration
	// Backoff is the rearm delay while capped or waiting on delays.
	Backoff time.Duration
	// CompletionBuffer pads each animation's duration before the scheduler
	// declares it finished.
	CompletionBuffer time.Duration
	// QueuePreview bounds how many pending entries Status reports.
	QueuePreview int
}

// NewWithConfig constructs a Scheduler from Config.
func NewWithConfig(cfg Config) *Scheduler {
	s := &Scheduler{
		renderer:         cfg.Renderer,
		catalog:          cfg.Catalog,
		clock:            cfg.Clock,
		events:           cfg.Events,
		frameInterval:    cfg.FrameInterval,
		backoff:          cfg.Backoff,
		completionBuffer: cfg.CompletionBuffer,
		queuePreview:     cfg.QueuePreview,
		queue:            &animQueue{},
		active:           newActiveSet(),
		hover:            make(map[string]string),
		mode:             standardMode(),
	}
	// Apply defaults if unset
	if s.renderer == nil {
		s.renderer = NopRenderer{}
	}
	if s.catalog == nil {
		s.catalog = catalog.Default()
	}
	if s.clock == nil {
		s.clock = SystemClock()
	}
	if s.events == nil {
		s.events = noopPublisher{}
	}
	if cfg.Logger != nil {
		s.log = *cfg.Logger
	} else {
		s.log = zerolog.Nop()
	}
	if s.frameInterval <= 0 {
		s.frameInterval = defaultFrameInterval
	}
	if s.backoff <= 0 {
		s.backoff = defaultBackoff
	}
	if s.completionBuffer <= 0 {
		s.completionBuffer = defaultCompletionBuffer
	}
	if s.queuePreview <= 0 {
		s.queuePreview = defaultQueuePreview
	}
	return s
}

// New constructs a Scheduler with package defaults around the given renderer.
func New(r Renderer) *Scheduler {
	return NewWithConfig(Config{Renderer: r})
}

// standardMode is the display mode outside cinematic playback.
func standardMode() types.DisplayMode {
	return types.DisplayMode{Cinematic: false, SpeedMultiplier: 1.0, DefaultQuality: "auto"}
}

// cinematicMode trades responsiveness for presentation: faster playback at
// pinned high quality.
func cinematicMode() types.DisplayMode {
	return types.DisplayMode{Cinematic: true, SpeedMultiplier: 1.5, DefaultQuality: "high"}
}
