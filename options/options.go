package options

import (
	"log/slog"

	"map-caster/primitive"
)

// Options configures a converter.
type Options struct {
	// Allowed lists the scalar coercion categories the converter may apply.
	Allowed primitive.CategoryEnum
	// NormalizedKeys lets an input key match a field when both normalize to
	// the same identifier (e.g. "first_name" and "FirstName").
	NormalizedKeys bool
	// Logger receives debug records for values degraded to nil.
	Logger *slog.Logger
}

type Option func(*Options)

// Default returns options allowing every coercion with a discarding logger.
func Default() Options {
	return Options{
		Allowed: primitive.CategoryAll,
		Logger:  slog.New(slog.DiscardHandler),
	}
}

// Apply returns the default options with opts applied in order.
func Apply(opts ...Option) Options {
	o := Default()
	for _, opt := range opts {
		opt(&o)
	}

	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}

	return o
}

func WithCategories(allowed primitive.CategoryEnum) Option {
	return func(o *Options) {
		o.Allowed = allowed
	}
}

func WithNormalizedKeys() Option {
	return func(o *Options) {
		o.NormalizedKeys = true
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}
