package normalize

import (
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/Spok95/lms-dashboard/internal/lms"
	"github.com/Spok95/lms-dashboard/internal/models"
)

func decode[T any](t *testing.T, s string) T {
	t.Helper()
	var v T
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		t.Fatal(err)
	}
	return v
}

func TestCourseCategoryFallback(t *testing.T) {
	raw := decode[lms.CourseRecord](t, `{"id": 12, "shortname": "BIO", "fullname": "Biology", "category": 5, "progress": 42.6}`)
	cats := CategoryNames([]models.Category{{ID: "3", Name: "Science"}})

	c, err := Course(raw, cats, true)
	if err != nil {
		t.Fatal(err)
	}
	if c.ID != "12" || c.CategoryID != "5" {
		t.Fatalf("ids = %q/%q", c.ID, c.CategoryID)
	}
	if c.CategoryName == nil || *c.CategoryName != "Course" {
		t.Fatalf("categoryname = %v, want fallback", c.CategoryName)
	}
	if c.Progress == nil || *c.Progress != 43 {
		t.Fatalf("progress = %v", c.Progress)
	}
	if !c.Enrolled {
		t.Fatal("enrolled = false")
	}
}

func TestCourseCategoryIDField(t *testing.T) {
	raw := decode[lms.CourseRecord](t, `{"id": 1, "categoryid": "3", "progress": 10}`)
	c, err := Course(raw, map[string]string{"3": "Science"}, false)
	if err != nil {
		t.Fatal(err)
	}
	if *c.CategoryName != "Science" {
		t.Fatalf("categoryname = %q", *c.CategoryName)
	}
	if c.Progress != nil {
		t.Fatal("progress must be absent for a course the user is not enrolled in")
	}
	if c.Enrolled {
		t.Fatal("enrolled defaults to false")
	}
}

func TestCourseProgressClamped(t *testing.T) {
	raw := decode[lms.CourseRecord](t, `{"id": 1, "progress": 130}`)
	c, _ := Course(raw, nil, true)
	if *c.Progress != 100 {
		t.Fatalf("progress = %d", *c.Progress)
	}
}

func TestCompletionState(t *testing.T) {
	cases := []struct {
		name string
		json string
		want bool
	}{
		{"state 0", `{"id": 1, "completiondata": {"state": 0}}`, false},
		{"state 1", `{"id": 1, "completiondata": {"state": 1}}`, true},
		{"state 2 (pass)", `{"id": 1, "completiondata": {"state": 2}}`, false},
		{"state absent", `{"id": 1, "completiondata": {}}`, false},
		{"no completion data", `{"id": 1}`, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a, err := Activity(decode[lms.ModuleRecord](t, tc.json), "s", "c", 0)
			if err != nil {
				t.Fatal(err)
			}
			if a.Completed != tc.want {
				t.Fatalf("completed = %v, want %v", a.Completed, tc.want)
			}
		})
	}
}

func TestActivityModnameAndDueDate(t *testing.T) {
	raw := decode[lms.ModuleRecord](t, `{
		"id": 77, "name": "Essay", "modname": "customcert", "visible": 0,
		"dates": [
			{"label": "Opened:", "timestamp": 100},
			{"label": "Due:", "timestamp": 200},
			{"label": "Overdue reminder", "timestamp": 300}
		]
	}`)
	a, err := Activity(raw, "4", "9", 3)
	if err != nil {
		t.Fatal(err)
	}
	if a.ModName != models.ModResource {
		t.Fatalf("modname = %q", a.ModName)
	}
	if a.DueDate == nil || *a.DueDate != 200 {
		t.Fatalf("duedate = %v", a.DueDate)
	}
	if a.Visible {
		t.Fatal("visible = true")
	}
	if a.Position != 3 || a.SectionID != "4" || a.CourseID != "9" {
		t.Fatalf("activity = %+v", a)
	}
}

func TestDueDateAbsentWithoutDueLabel(t *testing.T) {
	if d := DueDate([]lms.DateRecord{{Label: "Opens", Timestamp: ptr(lms.Int(5))}}); d != nil {
		t.Fatalf("duedate = %d", *d)
	}
	if d := DueDate([]lms.DateRecord{{Label: "DUE DATE", Timestamp: ptr(lms.Int(5))}}); d == nil || *d != 5 {
		t.Fatal("label match must be case-insensitive")
	}
}

func TestContentsPositionsAndMalformed(t *testing.T) {
	raw := decode[[]lms.SectionRecord](t, `[
		{"id": 10, "name": "General", "modules": [{"id": 1, "modname": "forum"}, {"id": 2, "modname": "page"}]},
		{"id": 11, "name": "Week 1", "visible": 1, "modules": []},
		{"id": 12, "name": "Week 2"}
	]`)
	secs, err := Contents("5", raw)
	if err != nil {
		t.Fatal(err)
	}
	for i, s := range secs {
		if s.Position != i {
			t.Fatalf("section %d position = %d", i, s.Position)
		}
		if s.Activities == nil {
			t.Fatalf("section %d activities must be an empty slice", i)
		}
	}
	acts := Flatten(secs)
	if len(acts) != 2 || acts[1].Position != 1 || acts[1].SectionID != "10" {
		t.Fatalf("activities = %+v", acts)
	}

	bad := decode[[]lms.SectionRecord](t, `[{"id": 10, "modules": [{"name": "no id"}]}]`)
	if _, err := Contents("5", bad); !errors.Is(err, ErrMalformedPayload) {
		t.Fatalf("want ErrMalformedPayload, got %v", err)
	}
}

func TestGradeItemPercentage(t *testing.T) {
	raw := decode[lms.GradeItemRecord](t, `{"id": 3, "itemname": "Quiz 1", "itemtype": "mod", "graderaw": 18, "grademax": 20}`)
	it, ok, err := GradeItem(raw, "5", "Biology")
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if it.Percentage == nil || *it.Percentage != 90 {
		t.Fatalf("percentage = %v, want 90", it.Percentage)
	}
}

func TestGradeItemExclusion(t *testing.T) {
	cases := []string{
		`{"id": 1, "itemname": "", "grademax": 10}`,
		`{"id": 2, "itemname": null, "itemtype": "course", "grademax": 100}`,
		`{"id": 3, "itemname": "Zero", "grademax": 0}`,
		`{"id": 4, "itemname": "Negative", "grademax": -1}`,
		`{"id": 5, "itemname": "No max"}`,
	}
	for _, c := range cases {
		_, ok, err := GradeItem(decode[lms.GradeItemRecord](t, c), "5", "x")
		if err != nil {
			t.Fatal(err)
		}
		if ok {
			t.Fatalf("%s must be excluded", c)
		}
	}

	// такое не декодируется из JSON, но запись может прийти и не из JSON
	for _, gm := range []float64{math.NaN(), math.Inf(-1)} {
		gid, gmax := lms.Int(6), lms.Float(gm)
		raw := lms.GradeItemRecord{ID: &gid, Itemname: "X", Grademax: &gmax}
		if _, ok, _ := GradeItem(raw, "5", "x"); ok {
			t.Fatalf("grademax %v must be excluded", gm)
		}
	}

	items, err := GradeItems(decode[[]lms.GradeItemRecord](t, `[
		{"id": 1, "itemname": "A", "grademax": 10},
		{"id": 2, "itemname": "", "grademax": 10}
	]`), "5", "x")
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].Percentage != nil {
		t.Fatalf("items = %+v", items)
	}
}

func TestAttachGradesByModule(t *testing.T) {
	items, err := GradeItems(decode[[]lms.GradeItemRecord](t, `[
		{"id": 1, "itemname": "Quiz", "itemtype": "mod", "cmid": 51, "graderaw": 18, "grademax": 20},
		{"id": 2, "itemname": "Essay", "itemtype": "mod", "cmid": 52, "grademax": 100},
		{"id": 3, "itemname": "Course total", "itemtype": "course", "graderaw": 50, "grademax": 120}
	]`), "5", "Biology")
	if err != nil {
		t.Fatal(err)
	}
	if items[0].CMID == nil || *items[0].CMID != "51" || items[2].CMID != nil {
		t.Fatalf("cmid = %v %v", items[0].CMID, items[2].CMID)
	}

	acts := []models.Activity{{ID: "51"}, {ID: "52"}, {ID: "53"}}
	AttachGrades(acts, items)
	if acts[0].Grade == nil || *acts[0].Grade != 18 || *acts[0].GradeMax != 20 {
		t.Fatalf("51 = %+v", acts[0])
	}
	if acts[1].Grade != nil || acts[1].GradeMax == nil || *acts[1].GradeMax != 100 {
		t.Fatalf("52 = %+v", acts[1])
	}
	if acts[2].Grade != nil || acts[2].GradeMax != nil {
		t.Fatalf("53 = %+v", acts[2])
	}
}

func TestEventTypeCoercion(t *testing.T) {
	raw := decode[lms.EventRecord](t, `{"id": 8, "name": "Essay due", "courseid": 5, "eventtype": "due",
		"timestart": 1000, "timeduration": -3, "modulename": "assign", "instance": 44}`)
	ev, err := Event(raw, map[string]string{"5": "Biology"})
	if err != nil {
		t.Fatal(err)
	}
	if ev.EventType != models.EventCourse {
		t.Fatalf("eventtype = %q", ev.EventType)
	}
	if ev.CourseName == nil || *ev.CourseName != "Biology" {
		t.Fatalf("coursename = %v", ev.CourseName)
	}
	if ev.ActivityID == nil || *ev.ActivityID != "44" {
		t.Fatalf("activityid = %v", ev.ActivityID)
	}
	if ev.TimeDuration != 0 {
		t.Fatalf("timeduration = %d", ev.TimeDuration)
	}
}

func TestSiteInfoAndUser(t *testing.T) {
	raw := decode[lms.SiteInfo](t, `{"sitename": "Campus", "siteurl": "https://lms.school.org", "username": "ana",
		"firstname": "Ana", "lastname": "Lima", "userid": 42, "lang": "en"}`)
	info, err := SiteInfo(raw)
	if err != nil {
		t.Fatal(err)
	}
	if info.UserID != "42" || info.Fullname != "Ana Lima" {
		t.Fatalf("info = %+v", info)
	}

	u, err := User(decode[lms.UserRecord](t, `{"id": 42, "username": "ana"}`), info.SiteURL)
	if err != nil {
		t.Fatal(err)
	}
	if u.Email != "ana@lms.school.org" {
		t.Fatalf("email = %q", u.Email)
	}
	if u.Description != nil || u.ProfileImageURL != nil {
		t.Fatal("optional fields must be absent")
	}

	if _, err := SiteInfo(lms.SiteInfo{Sitename: "x"}); !errors.Is(err, ErrMalformedPayload) {
		t.Fatalf("want ErrMalformedPayload, got %v", err)
	}
}

func TestNormalizersAreIdempotent(t *testing.T) {
	course := decode[lms.CourseRecord](t, `{"id": 12, "fullname": "Bio", "category": 5, "summary": "x", "overviewfiles": [{"fileurl": "http://img"}]}`)
	a, _ := Course(course, nil, true)
	b, _ := Course(course, nil, true)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("course not idempotent: %+v vs %+v", a, b)
	}

	contents := decode[[]lms.SectionRecord](t, `[{"id": 1, "modules": [{"id": 2, "modname": "quiz", "dates": [{"label": "Due", "timestamp": 9}]}]}]`)
	x, _ := Contents("12", contents)
	y, _ := Contents("12", contents)
	if !reflect.DeepEqual(x, y) {
		t.Fatal("contents not idempotent")
	}
}

func TestDetailNormalizers(t *testing.T) {
	book, err := Book(decode[lms.BookRecord](t, `{"id": 3, "coursemodule": 30, "name": "Handbook"}`), "5",
		decode[[]lms.FileRecord](t, `[
			{"type": "content", "filename": "structure", "content": "[]"},
			{"type": "file", "filename": "index.html", "filepath": "/7/", "fileurl": "http://f/7", "content": "Intro"}
		]`))
	if err != nil {
		t.Fatal(err)
	}
	if book.ID != "30" || book.InstanceID != "3" || len(book.Chapters) != 1 || book.Chapters[0].Title != "Intro" {
		t.Fatalf("book = %+v", book)
	}

	files := Files(decode[[]lms.FileRecord](t, `[{"type": "url", "fileurl": "http://x"}, {"type": "file", "filename": "a.pdf", "fileurl": "http://a", "filesize": 10}]`))
	if len(files) != 1 || files[0].Size != 10 {
		t.Fatalf("files = %+v", files)
	}

	if _, err := URL(decode[lms.URLRecord](t, `{"id": 1, "coursemodule": 2}`), "5"); !errors.Is(err, ErrMalformedPayload) {
		t.Fatalf("url without target must be malformed, got %v", err)
	}

	a, err := Assignment(decode[lms.AssignRecord](t, `{"id": 1, "cmid": 2, "grade": -3, "duedate": 0}`), "5")
	if err != nil {
		t.Fatal(err)
	}
	if a.GradeMax != nil || a.DueDate != nil {
		t.Fatalf("assignment = %+v", a)
	}
}

func ptr[T any](v T) *T { return &v }
