package dashboard

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Spok95/lms-dashboard/internal/config"
	"github.com/Spok95/lms-dashboard/internal/demo"
	"github.com/Spok95/lms-dashboard/internal/lms"
)

var _ Source = (*demo.Source)(nil)

var testNow = time.Unix(1_700_000_000, 0)

func day(n int64) int64 { return testNow.Unix() + n*24*60*60 }

// fakeLMS answers the web-service functions the live source uses with two
// enrolled courses (5 and 6).
type fakeLMS struct {
	failContents map[string]bool
	failGrades   map[string]bool
	calls        atomic.Int64
}

const exception = `{"exception": "required_capability_exception", "errorcode": "nopermissions", "message": "Sorry, no access"}`

func (f *fakeLMS) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.calls.Add(1)
	q := r.URL.Query()
	if q.Get("wstoken") != "tok" {
		fmt.Fprint(w, `{"exception": "moodle_exception", "errorcode": "invalidtoken", "message": "Invalid token"}`)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	switch q.Get("wsfunction") {
	case lms.FnSiteInfo:
		fmt.Fprint(w, `{"sitename": "Campus", "siteurl": "https://lms.school.org", "username": "ana",
			"firstname": "Ana", "lastname": "Lima", "fullname": "Ana Lima", "userid": 42, "lang": "en"}`)
	case lms.FnUsersByField:
		fmt.Fprint(w, `[{"id": 42, "username": "ana", "firstname": "Ana", "lastname": "Lima", "fullname": "Ana Lima"}]`)
	case lms.FnCategories:
		fmt.Fprint(w, `[{"id": 1, "name": "Science", "coursecount": 2}]`)
	case lms.FnUsersCourses:
		fmt.Fprint(w, `[
			{"id": 5, "shortname": "BIO", "fullname": "Biology", "category": 1, "progress": 50, "startdate": 1},
			{"id": 6, "shortname": "PHY", "fullname": "Physics", "category": 9, "startdate": 1}
		]`)
	case lms.FnCourseContents:
		cid := q.Get("courseid")
		if f.failContents[cid] {
			fmt.Fprint(w, exception)
			return
		}
		switch cid {
		case "5":
			fmt.Fprintf(w, `[{"id": 50, "name": "Week 1", "modules": [
				{"id": 51, "name": "Past quiz", "modname": "quiz", "dates": [{"label": "Due:", "timestamp": %d}]},
				{"id": 52, "name": "Essay", "modname": "assign", "dates": [{"label": "Due:", "timestamp": %d}]}
			]}]`, day(-1), day(1))
		case "6":
			fmt.Fprintf(w, `[{"id": 60, "name": "Week 1", "modules": [
				{"id": 61, "name": "Done lab", "modname": "assign", "completiondata": {"state": 1},
					"dates": [{"label": "Due:", "timestamp": %d}]},
				{"id": 62, "name": "Problem set", "modname": "workshop", "dates": [{"label": "Due date", "timestamp": %d}]},
				{"id": 63, "name": "Reading", "modname": "page", "completiondata": {"state": 1}}
			]}]`, day(2), day(3))
		default:
			fmt.Fprint(w, `{"exception": "dml_missing_record_exception", "errorcode": "invalidrecord", "message": "Can't find data record in database table course."}`)
		}
	case lms.FnGradeItems:
		cid := q.Get("courseid")
		if f.failGrades[cid] {
			fmt.Fprint(w, exception)
			return
		}
		switch cid {
		case "5":
			fmt.Fprint(w, `{"usergrades": [{"gradeitems": [
				{"id": 1, "itemname": "Quiz 1", "itemtype": "mod", "cmid": 51, "graderaw": 18, "grademax": 20},
				{"id": 2, "itemname": null, "itemtype": "course", "graderaw": 18, "grademax": 20}
			]}]}`)
		case "6":
			fmt.Fprint(w, `{"usergrades": [{"gradeitems": [
				{"id": 3, "itemname": "Lab", "itemtype": "mod", "cmid": 61, "graderaw": 7, "grademax": 10},
				{"id": 4, "itemname": "Exam", "itemtype": "mod", "grademax": 100}
			]}]}`)
		}
	case lms.FnCalendarEvents:
		fmt.Fprintf(w, `{"events": [
			{"id": 9, "name": "Late", "courseid": 5, "eventtype": "due", "timestart": %d},
			{"id": 8, "name": "Soon", "courseid": 6, "eventtype": "course", "timestart": %d},
			{"id": 7, "name": "Past", "eventtype": "user", "timestart": %d}
		], "warnings": []}`, day(5), day(1), day(-1))
	case lms.FnUpdateCompletion:
		fmt.Fprint(w, `{"status": true, "warnings": []}`)
	default:
		fmt.Fprintf(w, `{"exception": "webservice_access_exception", "errorcode": "accessexception", "message": "%s"}`, q.Get("wsfunction"))
	}
}

// newLiveService wires a service whose credentials point at f.
func newLiveService(t *testing.T, f *fakeLMS) *Service {
	t.Helper()
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	creds := func() config.LMS { return config.LMS{URL: srv.URL, Token: "tok", Workers: 2} }
	svc := New(NewResolver(creds, LiveSources(srv.Client(), nil), demo.New()), nil)
	svc.now = func() time.Time { return testNow }
	return svc
}
