package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	"github.com/Spok95/lms-dashboard/internal/config"
	"github.com/Spok95/lms-dashboard/internal/demo"
	"github.com/Spok95/lms-dashboard/internal/lms"
	"github.com/Spok95/lms-dashboard/internal/metrics"
	"github.com/Spok95/lms-dashboard/internal/models"
)

func due(n int64) *int64 {
	v := day(n)
	return &v
}

func TestUpcomingFiltersAndSorts(t *testing.T) {
	all := []models.Activity{
		{ID: "plus3", DueDate: due(3)},
		{ID: "past", DueDate: due(-1)},
		{ID: "done", DueDate: due(2), Completed: true},
		{ID: "plus1", DueDate: due(1)},
		{ID: "undated"},
	}
	got := Upcoming(all, testNow, UpcomingLimit)
	if len(got) != 2 || got[0].ID != "plus1" || got[1].ID != "plus3" {
		t.Fatalf("upcoming = %+v", got)
	}
}

func TestUpcomingLimit(t *testing.T) {
	var all []models.Activity
	for i := int64(20); i > 0; i-- {
		all = append(all, models.Activity{ID: string(rune('a' + i)), DueDate: due(i)})
	}
	got := Upcoming(all, testNow, UpcomingLimit)
	if len(got) != UpcomingLimit {
		t.Fatalf("len = %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if *got[i-1].DueDate > *got[i].DueDate {
			t.Fatal("not sorted ascending")
		}
	}
}

func TestUpcomingEventsIncludesNow(t *testing.T) {
	evs := []models.CalendarEvent{
		{ID: "later", TimeStart: day(2)},
		{ID: "now", TimeStart: testNow.Unix()},
		{ID: "past", TimeStart: day(-1)},
	}
	got := UpcomingEvents(evs, testNow, UpcomingLimit)
	if len(got) != 2 || got[0].ID != "now" || got[1].ID != "later" {
		t.Fatalf("events = %+v", got)
	}
}

func TestLiveUpcomingAcrossCourses(t *testing.T) {
	svc := newLiveService(t, &fakeLMS{})

	got, err := svc.UpcomingActivities(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].ID != "52" || got[1].ID != "62" {
		t.Fatalf("upcoming = %+v", got)
	}
	if got[1].ModName != models.ModWorkshop || got[1].CourseID != "6" {
		t.Fatalf("activity = %+v", got[1])
	}
}

func TestAllActivitiesKeepsCourseOrder(t *testing.T) {
	svc := newLiveService(t, &fakeLMS{})

	acts, err := svc.AllActivities(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	var ids []string
	for _, a := range acts {
		ids = append(ids, a.ID)
	}
	if strings.Join(ids, ",") != "51,52,61,62,63" {
		t.Fatalf("order = %v", ids)
	}
}

func TestAllActivitiesFailFast(t *testing.T) {
	svc := newLiveService(t, &fakeLMS{failContents: map[string]bool{"6": true}})

	_, err := svc.AllActivities(context.Background())
	var rerr *lms.RemoteServiceError
	if !errors.As(err, &rerr) {
		t.Fatalf("want RemoteServiceError, got %v", err)
	}
	if rerr.ErrorCode != "nopermissions" {
		t.Fatalf("errorcode = %q", rerr.ErrorCode)
	}
}

func TestGradesBestEffort(t *testing.T) {
	svc := newLiveService(t, &fakeLMS{failGrades: map[string]bool{"5": true}})

	got, err := svc.GradesByCourse(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].CourseID != "6" {
		t.Fatalf("grades = %+v", got)
	}
	if len(got[0].Items) != 2 {
		t.Fatalf("items = %+v", got[0].Items)
	}
	if got[0].Average == nil || *got[0].Average != 70 {
		t.Fatalf("average = %v", got[0].Average)
	}
}

func TestGradesExcludeInvalidItems(t *testing.T) {
	svc := newLiveService(t, &fakeLMS{})

	got, err := svc.GradesByCourse(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("grades = %+v", got)
	}
	for _, cg := range got {
		for _, it := range cg.Items {
			if it.ItemName == "" || it.GradeMax <= 0 {
				t.Fatalf("invalid item emitted: %+v", it)
			}
		}
	}
	if len(got[0].Items) != 1 || *got[0].Items[0].Percentage != 90 {
		t.Fatalf("course 5 items = %+v", got[0].Items)
	}
	if got[0].CourseName != "Biology" {
		t.Fatalf("coursename = %q", got[0].CourseName)
	}
}

func TestStatsLive(t *testing.T) {
	svc := newLiveService(t, &fakeLMS{})

	st, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	want := models.Stats{TotalCourses: 2, CompletedActivities: 2, AverageGrade: 80, UpcomingDeadlines: 2}
	if st != want {
		t.Fatalf("stats = %+v, want %+v", st, want)
	}
}

func TestStatsFailsOnActivityError(t *testing.T) {
	svc := newLiveService(t, &fakeLMS{failContents: map[string]bool{"5": true}})

	if _, err := svc.Stats(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestCourseCategoryFallbackLive(t *testing.T) {
	svc := newLiveService(t, &fakeLMS{})

	c, err := svc.Course(context.Background(), "6")
	if err != nil {
		t.Fatal(err)
	}
	if c.CategoryName == nil || *c.CategoryName != "Course" {
		t.Fatalf("categoryname = %v", c.CategoryName)
	}
	if _, err := svc.Course(context.Background(), "77"); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestCalendarEventsSortedAndCoerced(t *testing.T) {
	svc := newLiveService(t, &fakeLMS{})

	evs, err := svc.CalendarEvents(context.Background(), day(-3), day(10))
	if err != nil {
		t.Fatal(err)
	}
	if len(evs) != 3 || evs[0].ID != "7" || evs[2].ID != "9" {
		t.Fatalf("events = %+v", evs)
	}
	if evs[2].EventType != models.EventCourse || *evs[2].CourseName != "Biology" {
		t.Fatalf("event = %+v", evs[2])
	}

	up, err := svc.UpcomingEvents(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(up) != 2 || up[0].ID != "8" {
		t.Fatalf("upcoming events = %+v", up)
	}

	if _, err := svc.CalendarEvents(context.Background(), day(2), day(1)); !errors.Is(err, models.ErrInvalidInput) {
		t.Fatalf("want ErrInvalidInput, got %v", err)
	}
}

func TestLiveRejectsBadIDs(t *testing.T) {
	f := &fakeLMS{}
	svc := newLiveService(t, f)

	if _, err := svc.CourseContents(context.Background(), "abc"); !errors.Is(err, models.ErrInvalidInput) {
		t.Fatalf("want ErrInvalidInput, got %v", err)
	}
	if f.calls.Load() != 0 {
		t.Fatal("bad id must not reach the web service")
	}
}

func TestDemoModeWhenUnconfigured(t *testing.T) {
	creds := func() config.LMS { return config.LMS{URL: "", Token: "  "} }
	var liveBuilt atomic.Bool
	live := func(config.LMS) Source { liveBuilt.Store(true); return nil }
	svc := New(NewResolver(creds, live, demo.New()), nil)

	if svc.Mode() != ModeDemo {
		t.Fatalf("mode = %s", svc.Mode())
	}
	ctx := context.Background()
	first, err := svc.AllActivities(ctx)
	if err != nil {
		t.Fatal(err)
	}
	second, _ := svc.AllActivities(ctx)
	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if string(a) != string(b) {
		t.Fatal("demo output differs between calls")
	}
	fixture, _ := demo.New().EnrolledCourses(ctx)
	courses, _ := svc.Courses(ctx)
	x, _ := json.Marshal(fixture)
	y, _ := json.Marshal(courses)
	if string(x) != string(y) {
		t.Fatal("demo courses differ from fixtures")
	}
	if liveBuilt.Load() {
		t.Fatal("live source built without credentials")
	}
}

func TestLiveModeLeaksNoFixtures(t *testing.T) {
	svc := newLiveService(t, &fakeLMS{})
	if svc.Mode() != ModeLive {
		t.Fatalf("mode = %s", svc.Mode())
	}
	ctx := context.Background()

	var outputs []any
	info, err := svc.SiteInfo(ctx)
	if err != nil {
		t.Fatal(err)
	}
	u, err := svc.CurrentUser(ctx)
	if err != nil {
		t.Fatal(err)
	}
	cs, err := svc.Courses(ctx)
	if err != nil {
		t.Fatal(err)
	}
	acts, err := svc.AllActivities(ctx)
	if err != nil {
		t.Fatal(err)
	}
	outputs = append(outputs, info, u, cs, acts)
	for _, o := range outputs {
		b, _ := json.Marshal(o)
		if strings.Contains(string(b), "demo.lms.local") || strings.Contains(string(b), demo.SiteName) {
			t.Fatalf("fixture data leaked: %s", b)
		}
	}
	if u.Email != "ana@lms.school.org" {
		t.Fatalf("email = %q", u.Email)
	}
}

func TestResolverFollowsReloadedCredentials(t *testing.T) {
	h := config.NewHolder(&config.Config{})
	var built atomic.Int64
	live := func(config.LMS) Source { built.Add(1); return demo.New() }
	r := NewResolver(h.LMS, live, demo.New())

	if _, m := r.Resolve(); m != ModeDemo {
		t.Fatalf("mode = %s", m)
	}
	h.Set(&config.Config{LMS: config.LMS{URL: "https://lms.example.org", Token: "t"}})
	if _, m := r.Resolve(); m != ModeLive {
		t.Fatalf("mode = %s", m)
	}
	h.Set(&config.Config{LMS: config.LMS{URL: "https://lms.example.org"}})
	if _, m := r.Resolve(); m != ModeDemo {
		t.Fatalf("mode = %s", m)
	}
	if built.Load() != 1 {
		t.Fatalf("live built %d times", built.Load())
	}
}

func TestFanOutPolicies(t *testing.T) {
	cs := []models.Course{{ID: "1"}, {ID: "2"}, {ID: "3"}, {ID: "4"}}
	boom := errors.New("boom")
	fn := func(_ context.Context, c models.Course) (string, error) {
		// later courses finish first
		switch c.ID {
		case "1":
			time.Sleep(20 * time.Millisecond)
		case "3":
			return "", boom
		}
		return c.ID, nil
	}

	got, err := fanOut(context.Background(), zap.NewNop(), "test", BestEffort, 4, cs, fn)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(got, ",") != "1,2,4" {
		t.Fatalf("best effort = %v", got)
	}

	if _, err := fanOut(context.Background(), zap.NewNop(), "test", FailFast, 4, cs, fn); !errors.Is(err, boom) {
		t.Fatalf("fail fast = %v", err)
	}
}

func TestFanOutRespectsWorkers(t *testing.T) {
	cs := make([]models.Course, 8)
	for i := range cs {
		cs[i].ID = string(rune('a' + i))
	}
	var inFlight, peak atomic.Int64
	_, err := fanOut(context.Background(), zap.NewNop(), "test", FailFast, 2, cs,
		func(context.Context, models.Course) (int, error) {
			n := inFlight.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			inFlight.Add(-1)
			return 0, nil
		})
	if err != nil {
		t.Fatal(err)
	}
	if peak.Load() > 2 {
		t.Fatalf("peak concurrency = %d", peak.Load())
	}
}

func TestStatsDemo(t *testing.T) {
	svc := New(NewResolver(func() config.LMS { return config.LMS{} }, nil, demo.New()), nil)

	st, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	want := models.Stats{TotalCourses: 3, CompletedActivities: 4, AverageGrade: 83, UpcomingDeadlines: 3}
	if st != want {
		t.Fatalf("stats = %+v, want %+v", st, want)
	}
}

func TestDemoSetCompletionLeavesFixtures(t *testing.T) {
	svc := New(NewResolver(func() config.LMS { return config.LMS{} }, nil, demo.New()), nil)
	ctx := context.Background()

	before, _ := svc.CourseActivities(ctx, "101")
	res, err := svc.SetCompletion(ctx, before[0].ID, !before[0].Completed)
	if err != nil || !res.Success {
		t.Fatalf("res=%+v err=%v", res, err)
	}
	after, _ := svc.CourseActivities(ctx, "101")
	if after[0].Completed != before[0].Completed {
		t.Fatal("demo completion toggle mutated fixtures")
	}
}

func TestActivitiesCarryModuleGrades(t *testing.T) {
	svc := newLiveService(t, &fakeLMS{})
	ctx := context.Background()

	acts, err := svc.AllActivities(ctx)
	if err != nil {
		t.Fatal(err)
	}
	byID := map[string]models.Activity{}
	for _, a := range acts {
		byID[a.ID] = a
	}
	if a := byID["51"]; a.Grade == nil || *a.Grade != 18 || a.GradeMax == nil || *a.GradeMax != 20 {
		t.Fatalf("51 = %+v", a)
	}
	if a := byID["61"]; a.Grade == nil || *a.Grade != 7 || *a.GradeMax != 10 {
		t.Fatalf("61 = %+v", a)
	}
	if a := byID["52"]; a.Grade != nil || a.GradeMax != nil {
		t.Fatalf("ungraded module got a grade: %+v", a)
	}

	// оценки необязательны: без них активности всё равно отдаются
	svc = newLiveService(t, &fakeLMS{failGrades: map[string]bool{"5": true}})
	acts, err = svc.CourseActivities(ctx, "5")
	if err != nil {
		t.Fatal(err)
	}
	if len(acts) != 2 || acts[0].Grade != nil {
		t.Fatalf("acts = %+v", acts)
	}
}

func TestDemoActivityGrades(t *testing.T) {
	svc := New(NewResolver(func() config.LMS { return config.LMS{} }, nil, demo.New()), nil)
	acts, err := svc.CourseActivities(context.Background(), "101")
	if err != nil {
		t.Fatal(err)
	}
	for _, a := range acts {
		switch a.ID {
		case "1005":
			if a.Grade == nil || *a.Grade != 18 || *a.GradeMax != 20 {
				t.Fatalf("1005 = %+v", a)
			}
		case "1006":
			if a.Grade != nil || a.GradeMax == nil || *a.GradeMax != 100 {
				t.Fatalf("1006 = %+v", a)
			}
		default:
			if a.GradeMax != nil {
				t.Fatalf("%s has no grade item: %+v", a.ID, a)
			}
		}
	}
}

// contentsDown отказывает в содержимом курсов, пока запросы оценок висят.
type contentsDown struct {
	*demo.Source
	once    sync.Once
	started chan struct{}
}

func (s *contentsDown) CourseContents(ctx context.Context, _ string) ([]models.SectionContents, error) {
	select {
	case <-s.started:
	case <-ctx.Done():
	}
	return nil, errors.New("contents unavailable")
}

func (s *contentsDown) GradeItems(ctx context.Context, _ models.Course) ([]models.GradeItem, error) {
	s.once.Do(func() { close(s.started) })
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestStatsFailureDoesNotCountCancelledGrades(t *testing.T) {
	src := &contentsDown{Source: demo.New(), started: make(chan struct{})}
	creds := func() config.LMS { return config.LMS{URL: "https://lms.example", Token: "tok", Workers: 4} }
	svc := New(NewResolver(creds, func(config.LMS) Source { return src }, demo.New()), nil)

	skipped := metrics.SkippedCourses.WithLabelValues("grades")
	before := testutil.ToFloat64(skipped)
	if _, err := svc.Stats(context.Background()); err == nil {
		t.Fatal("expected stats to fail")
	}
	if got := testutil.ToFloat64(skipped); got != before {
		t.Fatalf("cancelled grade calls counted as skipped: %v -> %v", before, got)
	}
}
