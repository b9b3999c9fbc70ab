package demo

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/Spok95/lms-dashboard/internal/models"
)

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestReadsAreStable(t *testing.T) {
	ctx := context.Background()
	src := New()

	a, _ := src.EnrolledCourses(ctx)
	b, _ := src.EnrolledCourses(ctx)
	if mustJSON(t, a) != mustJSON(t, b) {
		t.Fatal("courses differ between calls")
	}

	x, _ := src.CourseContents(ctx, "101")
	y, _ := src.CourseContents(ctx, "101")
	if mustJSON(t, x) != mustJSON(t, y) {
		t.Fatal("contents differ between calls")
	}
}

func TestCallerCannotMutateFixtures(t *testing.T) {
	ctx := context.Background()
	src := New()

	cs, _ := src.EnrolledCourses(ctx)
	cs[0].Fullname = "changed"
	*cs[0].CategoryName = "changed"

	again, _ := src.EnrolledCourses(ctx)
	if again[0].Fullname == "changed" || *again[0].CategoryName == "changed" {
		t.Fatal("fixture was mutated through a returned value")
	}

	secs, _ := src.CourseContents(ctx, "101")
	secs[0].Activities[0].Completed = true
	secs2, _ := src.CourseContents(ctx, "101")
	if secs2[0].Activities[0].Completed {
		t.Fatal("activity fixture was mutated")
	}
}

func TestSetCompletionIsNoop(t *testing.T) {
	ctx := context.Background()
	src := New()

	before, _ := src.CourseContents(ctx, "101")
	res, err := src.SetCompletion(ctx, "1003", true)
	if err != nil || !res.Success {
		t.Fatalf("res=%+v err=%v", res, err)
	}
	after, _ := src.CourseContents(ctx, "101")
	if mustJSON(t, before) != mustJSON(t, after) {
		t.Fatal("completion toggle changed the fixtures")
	}
}

func TestFixturesSatisfyContract(t *testing.T) {
	ctx := context.Background()
	src := New()

	cs, _ := src.EnrolledCourses(ctx)
	if err := models.Validate(cs); err != nil {
		t.Fatal(err)
	}
	cats, _ := src.Categories(ctx)
	if err := models.Validate(cats); err != nil {
		t.Fatal(err)
	}
	for _, c := range cs {
		secs, err := src.CourseContents(ctx, c.ID)
		if err != nil {
			t.Fatal(err)
		}
		if err := models.Validate(secs); err != nil {
			t.Fatalf("course %s: %v", c.ID, err)
		}
		items, _ := src.GradeItems(ctx, c)
		if err := models.Validate(items); err != nil {
			t.Fatalf("grades %s: %v", c.ID, err)
		}
	}
	evs, _ := src.CalendarEvents(ctx, cs, 0, 0)
	if len(evs) != 6 {
		t.Fatalf("events = %d, want 6", len(evs))
	}
	if err := models.Validate(evs); err != nil {
		t.Fatal(err)
	}
	u, _ := src.CurrentUser(ctx)
	if err := models.Validate(u); err != nil {
		t.Fatal(err)
	}
}

func TestCalendarEventsRange(t *testing.T) {
	ctx := context.Background()
	src := New()
	cs, _ := src.EnrolledCourses(ctx)

	evs, _ := src.CalendarEvents(ctx, cs, at(0), at(4))
	for _, ev := range evs {
		if ev.TimeStart < at(0) || ev.TimeStart >= at(4) {
			t.Fatalf("event %s outside range", ev.ID)
		}
	}
	if len(evs) != 3 {
		t.Fatalf("events = %d, want 3", len(evs))
	}

	// only course-less events remain when no course is given
	evs, _ = src.CalendarEvents(ctx, nil, 0, 0)
	for _, ev := range evs {
		if ev.CourseID != nil {
			t.Fatalf("event %s belongs to course %s", ev.ID, *ev.CourseID)
		}
	}
}

func TestDetailLookups(t *testing.T) {
	ctx := context.Background()
	src := New()

	q, err := src.Quiz(ctx, "101", "1005")
	if err != nil {
		t.Fatal(err)
	}
	if q.InstanceID != "601" {
		t.Fatalf("quiz = %+v", q)
	}
	if _, err := src.Quiz(ctx, "102", "1005"); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("wrong course must be not found, got %v", err)
	}
	if _, err := src.CourseContents(ctx, "999"); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}

	att, err := src.StartQuizAttempt(ctx, "101", "1005")
	if err != nil {
		t.Fatal(err)
	}
	if att.ID != "demo-attempt-601" || att.State != "inprogress" {
		t.Fatalf("attempt = %+v", att)
	}
	res, _ := src.FinishQuizAttempt(ctx, att.ID, nil)
	if res.State == nil || *res.State != "finished" {
		t.Fatalf("finish = %+v", res)
	}
	if _, err := src.AddDiscussion(ctx, "101", "1003", "s", "m"); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("book is not a forum, got %v", err)
	}
}
