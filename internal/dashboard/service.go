package dashboard

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Spok95/lms-dashboard/internal/models"
	"github.com/Spok95/lms-dashboard/internal/normalize"
)

const (
	// UpcomingLimit caps the upcoming activities and events lists.
	UpcomingLimit = 10
	// EventWindow is the calendar range used when the caller gives none.
	EventWindow = 30 * 24 * time.Hour
)

// Per-aggregation policies.
const (
	activitiesPolicy = FailFast
	gradesPolicy     = BestEffort
)

type Service struct {
	resolver *Resolver
	log      *zap.Logger
	now      func() time.Time
}

func New(r *Resolver, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{resolver: r, log: log, now: time.Now}
}

func (s *Service) Mode() Mode {
	_, m := s.resolver.Resolve()
	return m
}

func (s *Service) source() Source {
	src, _ := s.resolver.Resolve()
	return src
}

func (s *Service) SiteInfo(ctx context.Context) (models.SiteInfo, error) {
	return s.source().SiteInfo(ctx)
}

func (s *Service) CurrentUser(ctx context.Context) (models.User, error) {
	return s.source().CurrentUser(ctx)
}

func (s *Service) Categories(ctx context.Context) ([]models.Category, error) {
	return s.source().Categories(ctx)
}

func (s *Service) Courses(ctx context.Context) ([]models.Course, error) {
	return s.source().EnrolledCourses(ctx)
}

// Course returns one enrolled course.
func (s *Service) Course(ctx context.Context, id string) (models.Course, error) {
	cs, err := s.source().EnrolledCourses(ctx)
	if err != nil {
		return models.Course{}, err
	}
	for _, c := range cs {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Course{}, fmt.Errorf("course %s: %w", id, models.ErrNotFound)
}

func (s *Service) CourseContents(ctx context.Context, courseID string) ([]models.SectionContents, error) {
	return s.source().CourseContents(ctx, courseID)
}

func (s *Service) CourseActivities(ctx context.Context, courseID string) ([]models.Activity, error) {
	src := s.source()
	secs, err := src.CourseContents(ctx, courseID)
	if err != nil {
		return nil, err
	}
	acts := normalize.Flatten(secs)
	s.attachGrades(ctx, src, models.Course{ID: courseID}, acts)
	return acts, nil
}

// attachGrades fills grade and grademax from the course grade items. A failed
// grades lookup leaves the activities ungraded and does not fail the call.
func (s *Service) attachGrades(ctx context.Context, src Source, c models.Course, acts []models.Activity) {
	items, err := src.GradeItems(ctx, c)
	if err != nil {
		if ctx.Err() == nil {
			s.log.Debug("activity grades unavailable", zap.String("course_id", c.ID), zap.Error(err))
		}
		return
	}
	normalize.AttachGrades(acts, items)
}

// AllActivities concatenates the activities of every enrolled course in
// course order. One failing course fails the call.
func (s *Service) AllActivities(ctx context.Context) ([]models.Activity, error) {
	src := s.source()
	cs, err := src.EnrolledCourses(ctx)
	if err != nil {
		return nil, err
	}
	return s.allActivities(ctx, src, cs, true)
}

// graded=false skips the per-course grades lookup (Stats fetches grades itself).
func (s *Service) allActivities(ctx context.Context, src Source, cs []models.Course, graded bool) ([]models.Activity, error) {
	per, err := fanOut(ctx, s.log, "activities", activitiesPolicy, s.resolver.Workers(), cs,
		func(ctx context.Context, c models.Course) ([]models.Activity, error) {
			secs, err := src.CourseContents(ctx, c.ID)
			if err != nil {
				return nil, err
			}
			acts := normalize.Flatten(secs)
			if graded {
				s.attachGrades(ctx, src, c, acts)
			}
			return acts, nil
		})
	if err != nil {
		return nil, err
	}
	out := make([]models.Activity, 0)
	for _, acts := range per {
		out = append(out, acts...)
	}
	return out, nil
}

func (s *Service) UpcomingActivities(ctx context.Context) ([]models.Activity, error) {
	all, err := s.AllActivities(ctx)
	if err != nil {
		return nil, err
	}
	return Upcoming(all, s.now(), UpcomingLimit), nil
}

// Upcoming keeps the unfinished activities due after now, soonest first.
// Activities without a due date are never upcoming.
func Upcoming(all []models.Activity, now time.Time, limit int) []models.Activity {
	ts := now.Unix()
	out := make([]models.Activity, 0)
	for _, a := range all {
		if a.DueDate == nil || *a.DueDate <= ts || a.Completed {
			continue
		}
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool { return *out[i].DueDate < *out[j].DueDate })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// CalendarEvents returns the events of the enrolled courses (plus user and
// site events) starting in [from, to), ordered by start time. Zero bounds
// default to now and now+EventWindow.
func (s *Service) CalendarEvents(ctx context.Context, from, to int64) ([]models.CalendarEvent, error) {
	now := s.now()
	if from <= 0 {
		from = now.Unix()
	}
	if to <= 0 {
		to = now.Add(EventWindow).Unix()
	}
	if to <= from {
		return nil, fmt.Errorf("%w: empty event range", models.ErrInvalidInput)
	}
	src := s.source()
	cs, err := src.EnrolledCourses(ctx)
	if err != nil {
		return nil, err
	}
	evs, err := src.CalendarEvents(ctx, cs, from, to)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(evs, func(i, j int) bool { return evs[i].TimeStart < evs[j].TimeStart })
	return evs, nil
}

func (s *Service) UpcomingEvents(ctx context.Context) ([]models.CalendarEvent, error) {
	evs, err := s.CalendarEvents(ctx, 0, 0)
	if err != nil {
		return nil, err
	}
	return UpcomingEvents(evs, s.now(), UpcomingLimit), nil
}

// UpcomingEvents keeps events starting at or after now, earliest first.
func UpcomingEvents(all []models.CalendarEvent, now time.Time, limit int) []models.CalendarEvent {
	ts := now.Unix()
	out := make([]models.CalendarEvent, 0)
	for _, ev := range all {
		if ev.TimeStart >= ts {
			out = append(out, ev)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TimeStart < out[j].TimeStart })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// GradesByCourse groups grade items per enrolled course. A course whose
// grades cannot be fetched is skipped.
func (s *Service) GradesByCourse(ctx context.Context) ([]models.CourseGrades, error) {
	src := s.source()
	cs, err := src.EnrolledCourses(ctx)
	if err != nil {
		return nil, err
	}
	return s.gradesByCourse(ctx, src, cs)
}

func (s *Service) gradesByCourse(ctx context.Context, src Source, cs []models.Course) ([]models.CourseGrades, error) {
	return fanOut(ctx, s.log, "grades", gradesPolicy, s.resolver.Workers(), cs,
		func(ctx context.Context, c models.Course) (models.CourseGrades, error) {
			items, err := src.GradeItems(ctx, c)
			if err != nil {
				return models.CourseGrades{}, err
			}
			return models.CourseGrades{
				CourseID:   c.ID,
				CourseName: c.Fullname,
				Items:      items,
				Average:    average(items),
			}, nil
		})
}

// average is the rounded mean percentage of the graded items, absent when
// nothing is graded yet.
func average(items []models.GradeItem) *int {
	sum, n := 0, 0
	for _, it := range items {
		if it.Percentage != nil {
			sum += *it.Percentage
			n++
		}
	}
	if n == 0 {
		return nil
	}
	avg := int(math.Round(float64(sum) / float64(n)))
	return &avg
}

// Stats builds the summary card. Activities and grades are gathered
// concurrently; the first failure fails the card.
func (s *Service) Stats(ctx context.Context) (models.Stats, error) {
	src := s.source()
	cs, err := src.EnrolledCourses(ctx)
	if err != nil {
		return models.Stats{}, err
	}

	var (
		acts   []models.Activity
		grades []models.CourseGrades
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		acts, err = s.allActivities(gctx, src, cs, false)
		return err
	})
	g.Go(func() error {
		var err error
		grades, err = s.gradesByCourse(gctx, src, cs)
		return err
	})
	if err := g.Wait(); err != nil {
		return models.Stats{}, err
	}

	st := models.Stats{TotalCourses: len(cs)}
	for _, a := range acts {
		if a.Completed {
			st.CompletedActivities++
		}
	}
	var items []models.GradeItem
	for _, cg := range grades {
		items = append(items, cg.Items...)
	}
	if avg := average(items); avg != nil {
		st.AverageGrade = *avg
	}
	st.UpcomingDeadlines = len(Upcoming(acts, s.now(), UpcomingLimit))
	return st, nil
}

func (s *Service) SetCompletion(ctx context.Context, cmid string, completed bool) (models.WriteResult, error) {
	return s.source().SetCompletion(ctx, cmid, completed)
}

// Probe checks the upstream with a site-info call. In demo mode there is
// nothing to check and live is false.
func (s *Service) Probe(ctx context.Context) (live bool, err error) {
	src, mode := s.resolver.Resolve()
	if mode != ModeLive {
		return false, nil
	}
	if _, err := src.SiteInfo(ctx); err != nil {
		return true, err
	}
	return true, nil
}
