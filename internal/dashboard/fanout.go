package dashboard

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Spok95/lms-dashboard/internal/metrics"
	"github.com/Spok95/lms-dashboard/internal/models"
)

// Policy decides what a per-course aggregation does when one course fails.
type Policy int

const (
	// FailFast fails the whole aggregation on the first course error.
	FailFast Policy = iota
	// BestEffort logs the failing course and leaves it out of the result.
	BestEffort
)

func (p Policy) String() string {
	switch p {
	case FailFast:
		return "fail_fast"
	case BestEffort:
		return "best_effort"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// fanOut calls fn once per course with at most workers calls in flight.
// Results are returned in course order whatever order the calls finish in.
func fanOut[T any](ctx context.Context, log *zap.Logger, aggregate string, policy Policy, workers int,
	courses []models.Course, fn func(context.Context, models.Course) (T, error),
) ([]T, error) {
	slots := make([]T, len(courses))
	ok := make([]bool, len(courses))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, workers))
	for i, c := range courses {
		g.Go(func() error {
			v, err := fn(gctx, c)
			if err == nil {
				slots[i], ok[i] = v, true
				return nil
			}
			if policy == FailFast {
				return fmt.Errorf("%s: course %s: %w", aggregate, c.ID, err)
			}
			// после отмены курс не пропущен, вызов просто прерван
			if gctx.Err() != nil {
				return nil
			}
			log.Warn("course skipped",
				zap.String("aggregate", aggregate),
				zap.String("course_id", c.ID),
				zap.Error(err),
			)
			metrics.SkippedCourses.WithLabelValues(aggregate).Inc()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// отменённый запрос не отдаёт частичный результат
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]T, 0, len(courses))
	for i := range slots {
		if ok[i] {
			out = append(out, slots[i])
		}
	}
	return out, nil
}
