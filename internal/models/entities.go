package models

// Entities are immutable values built fresh for every request. Optional
// fields are pointers with omitempty: absent, never null.

type User struct {
	ID              string  `json:"id" validate:"required"`
	Username        string  `json:"username"`
	Firstname       string  `json:"firstname"`
	Lastname        string  `json:"lastname"`
	Fullname        string  `json:"fullname"`
	Email           string  `json:"email" validate:"required"`
	ProfileImageURL *string `json:"profileimageurl,omitempty"`
	Description     *string `json:"description,omitempty"`
}

type Category struct {
	ID          string  `json:"id" validate:"required"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	CourseCount int     `json:"coursecount" validate:"gte=0"`
}

type Course struct {
	ID           string  `json:"id" validate:"required"`
	Shortname    string  `json:"shortname"`
	Fullname     string  `json:"fullname"`
	Summary      *string `json:"summary,omitempty"`
	CategoryID   string  `json:"categoryid"`
	CategoryName *string `json:"categoryname,omitempty"`
	StartDate    int64   `json:"startdate"`
	EndDate      *int64  `json:"enddate,omitempty"`
	Progress     *int    `json:"progress,omitempty" validate:"omitempty,gte=0,lte=100"`
	Enrolled     bool    `json:"enrolled"`
	ImageURL     *string `json:"imageurl,omitempty"`
	TeacherName  *string `json:"teachername,omitempty"`
}

type Section struct {
	ID       string  `json:"id" validate:"required"`
	CourseID string  `json:"courseid" validate:"required"`
	Name     string  `json:"name"`
	Summary  *string `json:"summary,omitempty"`
	Visible  bool    `json:"visible"`
	Position int     `json:"position" validate:"gte=0"`
}

// SectionContents is a section together with its activities, in source order.
type SectionContents struct {
	Section
	Activities []Activity `json:"activities" validate:"dive"`
}

type Activity struct {
	ID          string   `json:"id" validate:"required"`
	SectionID   string   `json:"sectionid"`
	CourseID    string   `json:"courseid" validate:"required"`
	Name        string   `json:"name"`
	ModName     ModName  `json:"modname" validate:"modname"`
	Description *string  `json:"description,omitempty"`
	Visible     bool     `json:"visible"`
	Position    int      `json:"position" validate:"gte=0"`
	URL         *string  `json:"url,omitempty"`
	DueDate     *int64   `json:"duedate,omitempty"`
	Completed   bool     `json:"completed"`
	Grade       *float64 `json:"grade,omitempty"`
	GradeMax    *float64 `json:"grademax,omitempty"`
}

type CalendarEvent struct {
	ID           string    `json:"id" validate:"required"`
	Name         string    `json:"name"`
	Description  *string   `json:"description,omitempty"`
	CourseID     *string   `json:"courseid,omitempty"`
	CourseName   *string   `json:"coursename,omitempty"`
	TimeStart    int64     `json:"timestart"`
	TimeDuration int64     `json:"timeduration" validate:"gte=0"`
	EventType    EventType `json:"eventtype" validate:"eventtype"`
	ActivityID   *string   `json:"activityid,omitempty"`
	ActivityName *string   `json:"activityname,omitempty"`
}

type GradeItem struct {
	ID              string   `json:"id" validate:"required"`
	CourseID        string   `json:"courseid" validate:"required"`
	CourseName      string   `json:"coursename"`
	ItemName        string   `json:"itemname" validate:"required"`
	ItemType        string   `json:"itemtype"`
	CMID            *string  `json:"cmid,omitempty"`
	Grade           *float64 `json:"grade,omitempty"`
	GradeMax        float64  `json:"grademax" validate:"gt=0"`
	Percentage      *int     `json:"percentage,omitempty"`
	Feedback        *string  `json:"feedback,omitempty"`
	GradeDateGraded *int64   `json:"gradedategraded,omitempty"`
}

type SiteInfo struct {
	SiteName       string  `json:"sitename"`
	SiteURL        string  `json:"siteurl"`
	Username       string  `json:"username"`
	Firstname      string  `json:"firstname"`
	Lastname       string  `json:"lastname"`
	Fullname       string  `json:"fullname"`
	UserID         string  `json:"userid" validate:"required"`
	UserPictureURL *string `json:"userpictureurl,omitempty"`
	Lang           string  `json:"lang"`
}

// Stats is the dashboard summary card.
type Stats struct {
	TotalCourses        int `json:"totalCourses" validate:"gte=0"`
	CompletedActivities int `json:"completedActivities" validate:"gte=0"`
	AverageGrade        int `json:"averageGrade" validate:"gte=0"`
	UpcomingDeadlines   int `json:"upcomingDeadlines" validate:"gte=0"`
}

// CourseGrades groups the gradable items of one course with their mean percentage.
type CourseGrades struct {
	CourseID   string      `json:"courseid" validate:"required"`
	CourseName string      `json:"coursename"`
	Items      []GradeItem `json:"items" validate:"dive"`
	Average    *int        `json:"average,omitempty"`
}
