package proxy

import (
	"log/slog"

	"honnef.co/go/pointerproxy/config"
)

type Option func(*options)

type options struct {
	mode       Mode
	logger     *slog.Logger
	suppressor *Suppressor
	suppress   SuppressorOptions
}

func defaultOptions() options {
	return options{
		mode:   Synthesize,
		logger: logger,
		suppress: SuppressorOptions{
			Threshold:    DefaultSuppressThreshold,
			Window:       DefaultSuppressWindow,
			TouchCapable: true,
		},
	}
}

func resolveOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func WithMode(m Mode) Option {
	return func(o *options) { o.mode = m }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithSuppressor shares s instead of creating a suppressor from the
// suppression options.
func WithSuppressor(s *Suppressor) Option {
	return func(o *options) { o.suppressor = s }
}

func WithScheduler(s Scheduler) Option {
	return func(o *options) { o.suppress.Scheduler = s }
}

// WithTouchCapable declares whether the host can produce touch events at all.
func WithTouchCapable(b bool) Option {
	return func(o *options) { o.suppress.TouchCapable = b }
}

// WithConfig applies the mode and suppression settings of cfg. An invalid
// mode leaves the mode unchanged; config.Config.Validate reports it.
func WithConfig(cfg config.Config) Option {
	return func(o *options) {
		if m, err := ParseMode(cfg.Mode); err == nil {
			o.mode = m
		}
		o.suppress.Threshold = cfg.SuppressThreshold
		o.suppress.Window = cfg.SuppressWindow
		o.suppress.TouchCapable = cfg.TouchCapable
	}
}
