package models

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestParseModName(t *testing.T) {
	cases := map[string]ModName{
		"quiz":        ModQuiz,
		" Forum ":     ModForum,
		"h5pactivity": ModH5P,
		"customcert":  ModResource,
		"":            ModResource,
	}
	for in, want := range cases {
		if got := ParseModName(in); got != want {
			t.Fatalf("ParseModName(%q) = %q, want %q", in, got, want)
		}
		if !ParseModName(in).Valid() {
			t.Fatalf("ParseModName(%q) produced an invalid value", in)
		}
	}
}

func TestParseEventType(t *testing.T) {
	cases := map[string]EventType{
		"course":   EventCourse,
		"user":     EventUser,
		"SITE":     EventSite,
		"due":      EventCourse,
		"open":     EventCourse,
		"category": EventCategory,
	}
	for in, want := range cases {
		if got := ParseEventType(in); got != want {
			t.Fatalf("ParseEventType(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidateRejectsOutOfContractValues(t *testing.T) {
	bad := []any{
		Activity{ID: "1", CourseID: "2", ModName: "customcert"},
		CalendarEvent{ID: "1", EventType: "due"},
		GradeItem{ID: "1", CourseID: "2", ItemName: "Quiz", GradeMax: 0},
		GradeItem{ID: "1", CourseID: "2", ItemName: "", GradeMax: 10},
		Course{ID: "1", Progress: intPtr(140)},
		CalendarEvent{ID: "1", EventType: EventUser, TimeDuration: -5},
	}
	for i, v := range bad {
		err := Validate(v)
		var ve validator.ValidationErrors
		if !errors.As(err, &ve) {
			t.Fatalf("case %d: expected validation errors, got %v", i, err)
		}
	}
}

func TestValidateSliceAndNested(t *testing.T) {
	ok := []SectionContents{{
		Section:    Section{ID: "s1", CourseID: "c1", Visible: true},
		Activities: []Activity{{ID: "a1", CourseID: "c1", ModName: ModPage}},
	}}
	if err := Validate(ok); err != nil {
		t.Fatal(err)
	}

	ok[0].Activities = append(ok[0].Activities, Activity{ID: "a2", CourseID: "c1", ModName: "nope"})
	err := Validate(ok)
	if err == nil {
		t.Fatal("expected nested activity to fail")
	}
	if !strings.Contains(err.Error(), "modname") {
		t.Fatalf("error should name the json field: %v", err)
	}
}

func TestOptionalFieldsAreAbsentNotNull(t *testing.T) {
	b, err := json.Marshal(Activity{ID: "1", CourseID: "2", ModName: ModURL})
	if err != nil {
		t.Fatal(err)
	}
	s := string(b)
	if strings.Contains(s, "null") {
		t.Fatalf("unexpected null in %s", s)
	}
	for _, k := range []string{`"duedate"`, `"url"`, `"grade"`} {
		if strings.Contains(s, k) {
			t.Fatalf("%s should be omitted: %s", k, s)
		}
	}
}

func intPtr(v int) *int { return &v }
