// Package demo serves a fixed, pre-normalized dataset used whenever the LMS
// connection is not configured. Every accessor builds its values from the
// same constants, so repeated calls return identical data and callers can
// never modify the fixtures.
package demo

import (
	"time"

	"github.com/Spok95/lms-dashboard/internal/models"
)

const (
	SiteURL  = "https://demo.lms.local"
	SiteName = "Demo Academy"
	UserID   = "2"
)

const day = int64(24 * 60 * 60)

// epoch anchors every relative date; fixed for the life of the process.
var epoch = time.Now().UTC().Truncate(time.Hour).Unix()

func at(days int64) int64 { return epoch + days*day }

func s(v string) *string { return &v }
func i64(v int64) *int64 { return &v }
func f64(v float64) *float64 { return &v }
func pct(v int) *int { return &v }

func siteInfo() models.SiteInfo {
	return models.SiteInfo{
		SiteName:       SiteName,
		SiteURL:        SiteURL,
		Username:       "student",
		Firstname:      "Alex",
		Lastname:       "Morgan",
		Fullname:       "Alex Morgan",
		UserID:         UserID,
		UserPictureURL: s(SiteURL + "/theme/image.php/boost/core/1/u/f1"),
		Lang:           "en",
	}
}

func user() models.User {
	return models.User{
		ID:              UserID,
		Username:        "student",
		Firstname:       "Alex",
		Lastname:        "Morgan",
		Fullname:        "Alex Morgan",
		Email:           "student@demo.lms.local",
		ProfileImageURL: s(SiteURL + "/theme/image.php/boost/core/1/u/f1"),
		Description:     s("Second-year student exploring science and history."),
	}
}

func categories() []models.Category {
	return []models.Category{
		{ID: "1", Name: "Science", Description: s("Natural sciences"), CourseCount: 2},
		{ID: "2", Name: "Humanities", CourseCount: 1},
	}
}

func courses() []models.Course {
	return []models.Course{
		{
			ID:           "101",
			Shortname:    "BIO101",
			Fullname:     "Introduction to Biology",
			Summary:      s("Cells, genetics and the diversity of life."),
			CategoryID:   "1",
			CategoryName: s("Science"),
			StartDate:    at(-30),
			EndDate:      i64(at(60)),
			Progress:     pct(65),
			Enrolled:     true,
			ImageURL:     s(SiteURL + "/pluginfile.php/1/course/overviewfiles/biology.jpg"),
			TeacherName:  s("Dr. Rosa Patel"),
		},
		{
			ID:           "102",
			Shortname:    "PHY101",
			Fullname:     "Physics Fundamentals",
			Summary:      s("Motion, forces and energy."),
			CategoryID:   "1",
			CategoryName: s("Science"),
			StartDate:    at(-20),
			EndDate:      i64(at(70)),
			Progress:     pct(30),
			Enrolled:     true,
			TeacherName:  s("Prof. Ivan Sokolov"),
		},
		{
			ID:           "103",
			Shortname:    "HIS110",
			Fullname:     "World History",
			CategoryID:   "2",
			CategoryName: s("Humanities"),
			StartDate:    at(-45),
			Progress:     pct(80),
			Enrolled:     true,
			TeacherName:  s("Ms. Clara Nunes"),
		},
	}
}

func act(id, section, course string, pos int, name string, mod models.ModName) models.Activity {
	return models.Activity{
		ID:        id,
		SectionID: section,
		CourseID:  course,
		Position:  pos,
		Name:      name,
		ModName:   mod,
		Visible:   true,
		URL:       s(SiteURL + "/mod/" + string(mod) + "/view.php?id=" + id),
	}
}

func withDue(a models.Activity, days int64) models.Activity {
	a.DueDate = i64(at(days))
	return a
}

func done(a models.Activity) models.Activity {
	a.Completed = true
	return a
}

func contents() map[string][]models.SectionContents {
	return map[string][]models.SectionContents{
		"101": {
			{
				Section: models.Section{ID: "201", CourseID: "101", Name: "General", Visible: true, Position: 0},
				Activities: []models.Activity{
					act("1001", "201", "101", 0, "Announcements", models.ModForum),
					done(act("1002", "201", "101", 1, "Course overview", models.ModPage)),
				},
			},
			{
				Section: models.Section{ID: "202", CourseID: "101", Name: "Cells", Summary: s("Structure and function of cells."), Visible: true, Position: 1},
				Activities: []models.Activity{
					act("1003", "202", "101", 0, "Cell Biology Handbook", models.ModBook),
					done(act("1004", "202", "101", 1, "Lecture slides", models.ModResource)),
					withDue(act("1005", "202", "101", 2, "Cell structure quiz", models.ModQuiz), 3),
					withDue(act("1006", "202", "101", 3, "Lab report: Microscopy", models.ModAssign), 1),
				},
			},
		},
		"102": {
			{
				Section: models.Section{ID: "203", CourseID: "102", Name: "General", Visible: true, Position: 0},
				Activities: []models.Activity{
					act("1007", "203", "102", 0, "Welcome", models.ModLabel),
					act("1008", "203", "102", 1, "PhET simulations", models.ModURL),
				},
			},
			{
				Section: models.Section{ID: "204", CourseID: "102", Name: "Mechanics", Visible: true, Position: 1},
				Activities: []models.Activity{
					act("1009", "204", "102", 0, "Problem sets", models.ModFolder),
					withDue(act("1010", "204", "102", 1, "Kinematics worksheet", models.ModAssign), -2),
					act("1011", "204", "102", 2, "Preferred lab slot", models.ModChoice),
					done(withDue(act("1012", "204", "102", 3, "Newton's laws quiz", models.ModQuiz), 6)),
				},
			},
		},
		"103": {
			{
				Section: models.Section{ID: "205", CourseID: "103", Name: "General", Visible: true, Position: 0},
				Activities: []models.Activity{
					act("1013", "205", "103", 0, "Key terms", models.ModGlossary),
					act("1014", "205", "103", 1, "Debate: causes of WWI", models.ModForum),
				},
			},
			{
				Section: models.Section{ID: "206", CourseID: "103", Name: "Ancient civilizations", Visible: true, Position: 1},
				Activities: []models.Activity{
					done(act("1015", "206", "103", 0, "Mesopotamia reading", models.ModPage)),
					withDue(act("1016", "206", "103", 1, "Essay: Roman Republic", models.ModAssign), 10),
					act("1017", "206", "103", 2, "Timeline lesson", models.ModLesson),
				},
			},
		},
	}
}

func events() []models.CalendarEvent {
	return []models.CalendarEvent{
		{ID: "3001", Name: "Kinematics worksheet is due", CourseID: s("102"), CourseName: s("Physics Fundamentals"),
			TimeStart: at(-2), EventType: models.EventCourse, ActivityID: s("1010"), ActivityName: s("Kinematics worksheet")},
		{ID: "3002", Name: "Lab report: Microscopy is due", CourseID: s("101"), CourseName: s("Introduction to Biology"),
			TimeStart: at(1), EventType: models.EventCourse, ActivityID: s("1006"), ActivityName: s("Lab report: Microscopy")},
		{ID: "3003", Name: "Study group", Description: s("Library room 2"),
			TimeStart: at(2), TimeDuration: 2 * 60 * 60, EventType: models.EventUser},
		{ID: "3004", Name: "Cell structure quiz closes", CourseID: s("101"), CourseName: s("Introduction to Biology"),
			TimeStart: at(3), EventType: models.EventCourse, ActivityID: s("1005"), ActivityName: s("Cell structure quiz")},
		{ID: "3005", Name: "Campus maintenance window", Description: s("The site may be unavailable."),
			TimeStart: at(5), TimeDuration: 4 * 60 * 60, EventType: models.EventSite},
		{ID: "3006", Name: "Essay: Roman Republic is due", CourseID: s("103"), CourseName: s("World History"),
			TimeStart: at(10), EventType: models.EventCourse, ActivityID: s("1016"), ActivityName: s("Essay: Roman Republic")},
	}
}

func gradeItems() map[string][]models.GradeItem {
	return map[string][]models.GradeItem{
		"101": {
			{ID: "4001", CourseID: "101", CourseName: "Introduction to Biology", ItemName: "Cell structure quiz", ItemType: "mod", CMID: s("1005"),
				Grade: f64(18), GradeMax: 20, Percentage: pct(90), GradeDateGraded: i64(at(-3))},
			{ID: "4002", CourseID: "101", CourseName: "Introduction to Biology", ItemName: "Lab report: Microscopy", ItemType: "mod", CMID: s("1006"),
				GradeMax: 100},
		},
		"102": {
			{ID: "4003", CourseID: "102", CourseName: "Physics Fundamentals", ItemName: "Kinematics worksheet", ItemType: "mod", CMID: s("1010"),
				Grade: f64(7), GradeMax: 10, Percentage: pct(70), Feedback: s("Check units in question 4."), GradeDateGraded: i64(at(-1))},
			{ID: "4004", CourseID: "102", CourseName: "Physics Fundamentals", ItemName: "Newton's laws quiz", ItemType: "mod", CMID: s("1012"),
				Grade: f64(45), GradeMax: 50, Percentage: pct(90), GradeDateGraded: i64(at(-1))},
		},
		"103": {
			{ID: "4005", CourseID: "103", CourseName: "World History", ItemName: "Essay draft", ItemType: "manual",
				Grade: f64(82), GradeMax: 100, Percentage: pct(82), GradeDateGraded: i64(at(-7))},
		},
	}
}

func hdr(cmid, instance, course, name string, intro *string) models.ModuleHeader {
	return models.ModuleHeader{ID: cmid, InstanceID: instance, CourseID: course, Name: name, Intro: intro}
}

func pages() []models.PageDetail {
	return []models.PageDetail{
		{ModuleHeader: hdr("1002", "501", "101", "Course overview", nil),
			Content: "<h2>Welcome to Biology</h2><p>This course covers cells, genetics and ecology.</p>", TimeModified: i64(at(-30))},
		{ModuleHeader: hdr("1015", "502", "103", "Mesopotamia reading", s("Read before the first seminar.")),
			Content: "<p>Between the Tigris and the Euphrates the first cities appeared…</p>", TimeModified: i64(at(-40))},
	}
}

func books() []models.BookDetail {
	return []models.BookDetail{{
		ModuleHeader: hdr("1003", "511", "101", "Cell Biology Handbook", s("Reference chapters for the unit.")),
		Chapters: []models.BookChapter{
			{ID: "1", Title: "The cell membrane", URL: SiteURL + "/pluginfile.php/10/mod_book/chapter/1/index.html"},
			{ID: "2", Title: "Organelles", URL: SiteURL + "/pluginfile.php/10/mod_book/chapter/2/index.html"},
		},
	}}
}

func resources() []models.ResourceDetail {
	return []models.ResourceDetail{{
		ModuleHeader: hdr("1004", "521", "101", "Lecture slides", nil),
		Files: []models.File{{Filename: "cells-week1.pdf", URL: SiteURL + "/pluginfile.php/11/mod_resource/content/1/cells-week1.pdf",
			Size: 482133, MimeType: s("application/pdf"), TimeModified: i64(at(-28))}},
	}}
}

func urls() []models.URLDetail {
	return []models.URLDetail{{
		ModuleHeader: hdr("1008", "531", "102", "PhET simulations", s("Interactive physics simulations.")),
		ExternalURL:  "https://phet.colorado.edu/",
	}}
}

func labels() []models.LabelDetail {
	return []models.LabelDetail{{
		ModuleHeader: hdr("1007", "541", "102", "Welcome", nil),
		Content:      "<p>Welcome to Physics Fundamentals! Office hours are on Tuesdays.</p>",
	}}
}

func folders() []models.FolderDetail {
	return []models.FolderDetail{{
		ModuleHeader: hdr("1009", "551", "102", "Problem sets", nil),
		Files: []models.File{
			{Filename: "set1.pdf", URL: SiteURL + "/pluginfile.php/12/mod_folder/content/0/set1.pdf", Size: 120400, MimeType: s("application/pdf")},
			{Filename: "set2.pdf", URL: SiteURL + "/pluginfile.php/12/mod_folder/content/0/set2.pdf", Size: 98311, MimeType: s("application/pdf")},
		},
	}}
}

func choices() []models.ChoiceDetail {
	return []models.ChoiceDetail{{
		ModuleHeader: hdr("1011", "561", "102", "Preferred lab slot", s("Pick one slot.")),
		AllowUpdate:  true,
		TimeClose:    i64(at(4)),
		Options: []models.ChoiceOption{
			{ID: "1", Text: "Monday 10:00", Count: 8},
			{ID: "2", Text: "Wednesday 14:00", Count: 5, Checked: true},
			{ID: "3", Text: "Friday 09:00", Count: 11},
		},
	}}
}

func glossaries() []models.GlossaryDetail {
	return []models.GlossaryDetail{{
		ModuleHeader: hdr("1013", "571", "103", "Key terms", nil),
		Entries: []models.GlossaryEntry{
			{ID: "1", Concept: "Cuneiform", Definition: "Wedge-shaped writing on clay tablets.", Author: s("Ms. Clara Nunes")},
			{ID: "2", Concept: "Republic", Definition: "A state governed by elected representatives.", Author: s("Ms. Clara Nunes")},
		},
	}}
}

func assignments() []models.AssignmentDetail {
	return []models.AssignmentDetail{
		{ModuleHeader: hdr("1006", "581", "101", "Lab report: Microscopy", s("Submit your observations as text.")),
			DueDate: i64(at(1)), AllowSubmissionsFrom: i64(at(-7)), GradeMax: f64(100)},
		{ModuleHeader: hdr("1010", "582", "102", "Kinematics worksheet", nil),
			DueDate: i64(at(-2)), GradeMax: f64(10)},
		{ModuleHeader: hdr("1016", "583", "103", "Essay: Roman Republic", s("1500 words.")),
			DueDate: i64(at(10)), CutoffDate: i64(at(12)), GradeMax: f64(100)},
	}
}

func forums() []models.ForumDetail {
	return []models.ForumDetail{
		{ModuleHeader: hdr("1001", "591", "101", "Announcements", nil), Type: "news",
			Discussions: []models.Discussion{
				{ID: "71", PostID: "171", Subject: "Lab safety briefing", Message: "<p>Please read the safety sheet.</p>",
					Author: s("Dr. Rosa Patel"), Created: i64(at(-10)), TimeModified: i64(at(-10))},
			}},
		{ModuleHeader: hdr("1014", "592", "103", "Debate: causes of WWI", s("Argue one cause.")), Type: "general",
			Discussions: []models.Discussion{
				{ID: "72", PostID: "172", Subject: "Alliances made it inevitable", Message: "<p>The alliance system…</p>",
					Author: s("Sam Lee"), Created: i64(at(-4)), TimeModified: i64(at(-3)), Replies: 2},
			}},
	}
}

func quizzes() []models.QuizDetail {
	return []models.QuizDetail{
		{ModuleHeader: hdr("1005", "601", "101", "Cell structure quiz", nil),
			TimeOpen: i64(at(-1)), TimeClose: i64(at(3)), TimeLimit: i64(20 * 60), Attempts: 2, GradeMax: f64(20)},
		{ModuleHeader: hdr("1012", "602", "102", "Newton's laws quiz", nil),
			TimeClose: i64(at(6)), Attempts: 1, GradeMax: f64(50)},
	}
}
