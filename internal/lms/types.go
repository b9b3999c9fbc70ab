package lms

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
)

// Int decodes numbers the web service may send as JSON numbers,
// numeric strings or booleans.
type Int int64

func (i *Int) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch string(b) {
	case "null", `""`:
		return nil
	case "true":
		*i = 1
		return nil
	case "false":
		*i = 0
		return nil
	}
	s := string(bytes.Trim(b, `"`))
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		*i = Int(n)
		return nil
	}
	f, err := parseFinite(s)
	if err != nil {
		return fmt.Errorf("lms: %s is not a number", b)
	}
	*i = Int(f)
	return nil
}

func (i Int) String() string { return strconv.FormatInt(int64(i), 10) }

// Float is the fractional counterpart of Int.
type Float float64

func (f *Float) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch string(b) {
	case "null", `""`:
		return nil
	}
	v, err := parseFinite(string(bytes.Trim(b, `"`)))
	if err != nil {
		return fmt.Errorf("lms: %s is not a number", b)
	}
	*f = Float(v)
	return nil
}

// parseFinite отбрасывает "NaN" и "Inf", которые ParseFloat принимает.
func parseFinite(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, strconv.ErrSyntax
	}
	return v, nil
}

type SiteInfo struct {
	Sitename       string `json:"sitename"`
	Siteurl        string `json:"siteurl"`
	Username       string `json:"username"`
	Firstname      string `json:"firstname"`
	Lastname       string `json:"lastname"`
	Fullname       string `json:"fullname"`
	Userid         *Int   `json:"userid"`
	Userpictureurl string `json:"userpictureurl"`
	Lang           string `json:"lang"`
}

type UserRecord struct {
	ID              *Int   `json:"id"`
	Username        string `json:"username"`
	Firstname       string `json:"firstname"`
	Lastname        string `json:"lastname"`
	Fullname        string `json:"fullname"`
	Email           string `json:"email"`
	Profileimageurl string `json:"profileimageurl"`
	Description     string `json:"description"`
}

type CategoryRecord struct {
	ID          *Int   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Coursecount *Int   `json:"coursecount"`
}

type FileRecord struct {
	Type         string `json:"type"`
	Filename     string `json:"filename"`
	Filepath     string `json:"filepath"`
	Fileurl      string `json:"fileurl"`
	Filesize     *Int   `json:"filesize"`
	Mimetype     string `json:"mimetype"`
	Timemodified *Int   `json:"timemodified"`
	Content      string `json:"content"`
}

type Contact struct {
	ID       *Int   `json:"id"`
	Fullname string `json:"fullname"`
}

type CourseRecord struct {
	ID            *Int         `json:"id"`
	Shortname     string       `json:"shortname"`
	Fullname      string       `json:"fullname"`
	Summary       string       `json:"summary"`
	Category      *Int         `json:"category"`
	Categoryid    *Int         `json:"categoryid"`
	Startdate     *Int         `json:"startdate"`
	Enddate       *Int         `json:"enddate"`
	Progress      *Float       `json:"progress"`
	Courseimage   string       `json:"courseimage"`
	Overviewfiles []FileRecord `json:"overviewfiles"`
	Contacts      []Contact    `json:"contacts"`
}

type CompletionData struct {
	State *Int `json:"state"`
}

type DateRecord struct {
	Label     string `json:"label"`
	Timestamp *Int   `json:"timestamp"`
}

type ModuleRecord struct {
	ID             *Int            `json:"id"`
	Instance       *Int            `json:"instance"`
	Name           string          `json:"name"`
	Modname        string          `json:"modname"`
	Description    string          `json:"description"`
	URL            string          `json:"url"`
	Visible        *Int            `json:"visible"`
	Completiondata *CompletionData `json:"completiondata"`
	Dates          []DateRecord    `json:"dates"`
	Contents       []FileRecord    `json:"contents"`
}

type SectionRecord struct {
	ID      *Int           `json:"id"`
	Name    string         `json:"name"`
	Summary string         `json:"summary"`
	Visible *Int           `json:"visible"`
	Section *Int           `json:"section"`
	Modules []ModuleRecord `json:"modules"`
}

type EventRecord struct {
	ID           *Int   `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Courseid     *Int   `json:"courseid"`
	Timestart    *Int   `json:"timestart"`
	Timeduration *Int   `json:"timeduration"`
	Eventtype    string `json:"eventtype"`
	Instance     *Int   `json:"instance"`
	Modulename   string `json:"modulename"`
	Activityname string `json:"activityname"`
	Course       *struct {
		Fullname string `json:"fullname"`
	} `json:"course"`
}

type GradeItemRecord struct {
	ID              *Int   `json:"id"`
	Itemname        string `json:"itemname"`
	Itemtype        string `json:"itemtype"`
	Itemmodule      string `json:"itemmodule"`
	Cmid            *Int   `json:"cmid"`
	Graderaw        *Float `json:"graderaw"`
	Grademax        *Float `json:"grademax"`
	Feedback        string `json:"feedback"`
	Gradedategraded *Int   `json:"gradedategraded"`
}

type Warning struct {
	Item        string `json:"item"`
	Itemid      *Int   `json:"itemid"`
	Warningcode string `json:"warningcode"`
	Message     string `json:"message"`
}

type StatusResult struct {
	Status   bool      `json:"status"`
	Warnings []Warning `json:"warnings"`
}

// Module instance records. Every *_by_courses function returns the same
// header (instance id, course module id, name, intro) plus its own fields.

type PageRecord struct {
	ID           *Int   `json:"id"`
	Coursemodule *Int   `json:"coursemodule"`
	Name         string `json:"name"`
	Intro        string `json:"intro"`
	Content      string `json:"content"`
	Timemodified *Int   `json:"timemodified"`
}

type BookRecord struct {
	ID           *Int   `json:"id"`
	Coursemodule *Int   `json:"coursemodule"`
	Name         string `json:"name"`
	Intro        string `json:"intro"`
}

type ResourceRecord struct {
	ID           *Int         `json:"id"`
	Coursemodule *Int         `json:"coursemodule"`
	Name         string       `json:"name"`
	Intro        string       `json:"intro"`
	Contentfiles []FileRecord `json:"contentfiles"`
}

type URLRecord struct {
	ID           *Int   `json:"id"`
	Coursemodule *Int   `json:"coursemodule"`
	Name         string `json:"name"`
	Intro        string `json:"intro"`
	Externalurl  string `json:"externalurl"`
}

type LabelRecord struct {
	ID           *Int   `json:"id"`
	Coursemodule *Int   `json:"coursemodule"`
	Name         string `json:"name"`
	Intro        string `json:"intro"`
}

type FolderRecord struct {
	ID           *Int   `json:"id"`
	Coursemodule *Int   `json:"coursemodule"`
	Name         string `json:"name"`
	Intro        string `json:"intro"`
}

type ChoiceRecord struct {
	ID           *Int   `json:"id"`
	Coursemodule *Int   `json:"coursemodule"`
	Name         string `json:"name"`
	Intro        string `json:"intro"`
	Allowupdate  bool   `json:"allowupdate"`
	Timeclose    *Int   `json:"timeclose"`
}

type ChoiceOption struct {
	ID           *Int   `json:"id"`
	Text         string `json:"text"`
	Countanswers *Int   `json:"countanswers"`
	Checked      bool   `json:"checked"`
}

type GlossaryRecord struct {
	ID           *Int   `json:"id"`
	Coursemodule *Int   `json:"coursemodule"`
	Name         string `json:"name"`
	Intro        string `json:"intro"`
}

type GlossaryEntry struct {
	ID           *Int   `json:"id"`
	Concept      string `json:"concept"`
	Definition   string `json:"definition"`
	Userfullname string `json:"userfullname"`
	Timecreated  *Int   `json:"timecreated"`
}

type AssignRecord struct {
	ID                       *Int   `json:"id"`
	Cmid                     *Int   `json:"cmid"`
	Name                     string `json:"name"`
	Intro                    string `json:"intro"`
	Duedate                  *Int   `json:"duedate"`
	Allowsubmissionsfromdate *Int   `json:"allowsubmissionsfromdate"`
	Cutoffdate               *Int   `json:"cutoffdate"`
	Grade                    *Float `json:"grade"`
}

type ForumRecord struct {
	ID           *Int   `json:"id"`
	Coursemodule *Int   `json:"cmid"`
	Name         string `json:"name"`
	Intro        string `json:"intro"`
	Type         string `json:"type"`
}

type DiscussionRecord struct {
	ID           *Int   `json:"id"`
	Discussion   *Int   `json:"discussion"`
	Name         string `json:"name"`
	Subject      string `json:"subject"`
	Message      string `json:"message"`
	Userfullname string `json:"userfullname"`
	Created      *Int   `json:"created"`
	Timemodified *Int   `json:"timemodified"`
	Numreplies   *Int   `json:"numreplies"`
}

type QuizRecord struct {
	ID           *Int   `json:"id"`
	Coursemodule *Int   `json:"coursemodule"`
	Name         string `json:"name"`
	Intro        string `json:"intro"`
	Timeopen     *Int   `json:"timeopen"`
	Timeclose    *Int   `json:"timeclose"`
	Timelimit    *Int   `json:"timelimit"`
	Attempts     *Int   `json:"attempts"`
	Grade        *Float `json:"grade"`
}

type AttemptRecord struct {
	ID         *Int   `json:"id"`
	Quiz       *Int   `json:"quiz"`
	Attempt    *Int   `json:"attempt"`
	State      string `json:"state"`
	Timestart  *Int   `json:"timestart"`
	Timefinish *Int   `json:"timefinish"`
}
