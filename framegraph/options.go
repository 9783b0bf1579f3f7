package framegraph

import "log/slog"

// WithLogger installs l as the package-wide logger used for framegraph
// diagnostics (e.g. the "render pass ended implicitly" warning). It is
// equivalent to calling SetLogger directly; it exists as an Option so it
// composes with NewFramegraph's functional-options call site.
func WithLogger(l *slog.Logger) Option {
	return func(*Framegraph) {
		SetLogger(l)
	}
}

// WithPipelineCache overrides the pipeline cache a Framegraph uses,
// letting a caller share one cache across multiple frames or
// Framegraph instances instead of paying for a rebuild every frame.
func WithPipelineCache(cache *PipelineCache) Option {
	return func(fg *Framegraph) {
		fg.pipelineCache = cache
	}
}
