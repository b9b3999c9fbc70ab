package models

// ModuleHeader is shared by every per-activity detail shape.
// ID is the course-module id (the same id Activity carries).
type ModuleHeader struct {
	ID         string  `json:"id" validate:"required"`
	InstanceID string  `json:"instanceid" validate:"required"`
	CourseID   string  `json:"courseid" validate:"required"`
	Name       string  `json:"name"`
	Intro      *string `json:"intro,omitempty"`
}

type File struct {
	Filename     string  `json:"filename"`
	URL          string  `json:"url"`
	Size         int64   `json:"size" validate:"gte=0"`
	MimeType     *string `json:"mimetype,omitempty"`
	TimeModified *int64  `json:"timemodified,omitempty"`
}

type PageDetail struct {
	ModuleHeader
	Content      string `json:"content"`
	TimeModified *int64 `json:"timemodified,omitempty"`
}

type BookChapter struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

type BookDetail struct {
	ModuleHeader
	Chapters []BookChapter `json:"chapters"`
}

type ResourceDetail struct {
	ModuleHeader
	Files []File `json:"files" validate:"dive"`
}

type URLDetail struct {
	ModuleHeader
	ExternalURL string `json:"externalurl" validate:"required"`
}

type LabelDetail struct {
	ModuleHeader
	Content string `json:"content"`
}

type FolderDetail struct {
	ModuleHeader
	Files []File `json:"files" validate:"dive"`
}

type ChoiceOption struct {
	ID      string `json:"id" validate:"required"`
	Text    string `json:"text"`
	Count   int    `json:"count" validate:"gte=0"`
	Checked bool   `json:"checked"`
}

type ChoiceDetail struct {
	ModuleHeader
	AllowUpdate bool           `json:"allowupdate"`
	TimeClose   *int64         `json:"timeclose,omitempty"`
	Options     []ChoiceOption `json:"options" validate:"dive"`
}

type GlossaryEntry struct {
	ID          string  `json:"id" validate:"required"`
	Concept     string  `json:"concept"`
	Definition  string  `json:"definition"`
	Author      *string `json:"author,omitempty"`
	TimeCreated *int64  `json:"timecreated,omitempty"`
}

type GlossaryDetail struct {
	ModuleHeader
	Entries []GlossaryEntry `json:"entries" validate:"dive"`
}

type AssignmentDetail struct {
	ModuleHeader
	DueDate              *int64   `json:"duedate,omitempty"`
	AllowSubmissionsFrom *int64   `json:"allowsubmissionsfromdate,omitempty"`
	CutoffDate           *int64   `json:"cutoffdate,omitempty"`
	GradeMax             *float64 `json:"grademax,omitempty"`
}

type Discussion struct {
	ID           string  `json:"id" validate:"required"`
	PostID       string  `json:"postid"`
	Subject      string  `json:"subject"`
	Message      string  `json:"message"`
	Author       *string `json:"author,omitempty"`
	Created      *int64  `json:"created,omitempty"`
	TimeModified *int64  `json:"timemodified,omitempty"`
	Replies      int     `json:"replies" validate:"gte=0"`
}

type ForumDetail struct {
	ModuleHeader
	Type        string       `json:"type"`
	Discussions []Discussion `json:"discussions" validate:"dive"`
}

type QuizDetail struct {
	ModuleHeader
	TimeOpen  *int64   `json:"timeopen,omitempty"`
	TimeClose *int64   `json:"timeclose,omitempty"`
	TimeLimit *int64   `json:"timelimit,omitempty"`
	Attempts  int      `json:"attempts" validate:"gte=0"`
	GradeMax  *float64 `json:"grademax,omitempty"`
}

type QuizAttempt struct {
	ID         string `json:"id" validate:"required"`
	QuizID     string `json:"quizid"`
	State      string `json:"state"`
	TimeStart  *int64 `json:"timestart,omitempty"`
	TimeFinish *int64 `json:"timefinish,omitempty"`
}

// WriteResult is returned by every write endpoint.
type WriteResult struct {
	Success  bool     `json:"success"`
	ID       *string  `json:"id,omitempty"`
	State    *string  `json:"state,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// Answer is one name/value pair submitted for a quiz attempt page.
type Answer struct {
	Name  string `json:"name" validate:"required"`
	Value string `json:"value"`
}
