package jobs

import (
	"context"
	"time"

	"github.com/Spok95/lms-dashboard/internal/ctxutil"
	"github.com/Spok95/lms-dashboard/internal/metrics"
)

type Prober interface {
	Probe(ctx context.Context) (live bool, err error)
}

// UpstreamProbe sets the upstream_up gauge: 1 after a successful live
// probe, 0 on failure or in demo mode.
func UpstreamProbe(p Prober, timeout time.Duration) Job {
	return func(ctx context.Context) error {
		ctx, cancel := ctxutil.WithTimeout(ctxutil.WithOp(ctx, "upstream_probe"), timeout)
		defer cancel()
		live, err := p.Probe(ctx)
		if err != nil || !live {
			metrics.UpstreamUp.Set(0)
			return err
		}
		metrics.UpstreamUp.Set(1)
		return nil
	}
}
