package dashboard

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/Spok95/lms-dashboard/internal/config"
	"github.com/Spok95/lms-dashboard/internal/lms"
	"github.com/Spok95/lms-dashboard/internal/metrics"
)

// Resolver picks the Source for one call. The credentials are re-read on
// every Resolve, so a reloaded configuration applies to the next request.
type Resolver struct {
	creds func() config.LMS
	live  func(config.LMS) Source
	demo  Source
}

func NewResolver(creds func() config.LMS, live func(config.LMS) Source, demo Source) *Resolver {
	return &Resolver{creds: creds, live: live, demo: demo}
}

func (r *Resolver) Resolve() (Source, Mode) {
	cfg := r.creds()
	if !cfg.Configured() {
		metrics.ResolverMode.WithLabelValues(string(ModeDemo)).Inc()
		return r.demo, ModeDemo
	}
	metrics.ResolverMode.WithLabelValues(string(ModeLive)).Inc()
	return r.live(cfg), ModeLive
}

// Workers is the fan-out width for per-course calls.
func (r *Resolver) Workers() int {
	return max(1, r.creds().Workers)
}

// LiveSources returns the factory used by the resolver in live mode.
// hc may be nil; the client then gets the configured timeout.
func LiveSources(hc *http.Client, log *zap.Logger) func(config.LMS) Source {
	return func(cfg config.LMS) Source {
		return NewLive(lms.New(cfg, hc, log), log)
	}
}
