package jobs

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Spok95/lms-dashboard/internal/observability"
)

type Job func(ctx context.Context) error

type Runner struct {
	ctx context.Context
	log *zap.Logger
}

func New(ctx context.Context, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{ctx: ctx, log: log}
}

// Every runs fn on a ticker until the runner context is done. A panicking
// job is reported and the loop keeps going.
func (r *Runner) Every(interval time.Duration, name string, fn Job) {
	r.loop(interval, name, fn, false)
}

// EveryNow is Every with a first run right away, in the job goroutine.
func (r *Runner) EveryNow(interval time.Duration, name string, fn Job) {
	r.loop(interval, name, fn, true)
}

func (r *Runner) loop(interval time.Duration, name string, fn Job, now bool) {
	if interval <= 0 {
		r.log.Info("job disabled", zap.String("job", name))
		return
	}
	go func() {
		if now {
			_ = r.run(name, fn)
		}
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-r.ctx.Done():
				return
			case <-t.C:
				_ = r.run(name, fn)
			}
		}
	}()
}

// RunNow executes one iteration synchronously.
func (r *Runner) RunNow(name string, fn Job) error { return r.run(name, fn) }

func (r *Runner) run(name string, fn Job) (err error) {
	start := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic in job %s: %v", name, rec)
			observability.CaptureErr(err)
		}
		if err != nil {
			jobErrors.WithLabelValues(name).Inc()
			r.log.Warn("job failed", zap.String("job", name), zap.Error(err))
		}
		jobRuns.WithLabelValues(name).Inc()
		jobDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	}()
	return fn(r.ctx)
}
