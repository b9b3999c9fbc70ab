// Package dashboard answers the dashboard queries. Every operation first
// resolves a Source (live web service or demo fixtures) and then runs the
// same aggregation code over it.
package dashboard

import (
	"context"

	"github.com/Spok95/lms-dashboard/internal/models"
)

type Mode string

const (
	ModeDemo Mode = "demo"
	ModeLive Mode = "live"
)

// Source is one origin of normalized entities. Ids are the string ids of
// the boundary entities; detail lookups are keyed by course id and
// course-module id.
type Source interface {
	SiteInfo(ctx context.Context) (models.SiteInfo, error)
	CurrentUser(ctx context.Context) (models.User, error)
	Categories(ctx context.Context) ([]models.Category, error)
	EnrolledCourses(ctx context.Context) ([]models.Course, error)
	CourseContents(ctx context.Context, courseID string) ([]models.SectionContents, error)
	CalendarEvents(ctx context.Context, courses []models.Course, from, to int64) ([]models.CalendarEvent, error)
	GradeItems(ctx context.Context, course models.Course) ([]models.GradeItem, error)

	Page(ctx context.Context, courseID, cmid string) (models.PageDetail, error)
	Book(ctx context.Context, courseID, cmid string) (models.BookDetail, error)
	Resource(ctx context.Context, courseID, cmid string) (models.ResourceDetail, error)
	URL(ctx context.Context, courseID, cmid string) (models.URLDetail, error)
	Label(ctx context.Context, courseID, cmid string) (models.LabelDetail, error)
	Folder(ctx context.Context, courseID, cmid string) (models.FolderDetail, error)
	Choice(ctx context.Context, courseID, cmid string) (models.ChoiceDetail, error)
	Glossary(ctx context.Context, courseID, cmid string) (models.GlossaryDetail, error)
	Assignment(ctx context.Context, courseID, cmid string) (models.AssignmentDetail, error)
	Forum(ctx context.Context, courseID, cmid string) (models.ForumDetail, error)
	Quiz(ctx context.Context, courseID, cmid string) (models.QuizDetail, error)

	SetCompletion(ctx context.Context, cmid string, completed bool) (models.WriteResult, error)
	SaveAssignmentText(ctx context.Context, courseID, cmid, text string) (models.WriteResult, error)
	SubmitAssignment(ctx context.Context, courseID, cmid string) (models.WriteResult, error)
	AddDiscussion(ctx context.Context, courseID, cmid, subject, message string) (models.WriteResult, error)
	ReplyToPost(ctx context.Context, postID, subject, message string) (models.WriteResult, error)
	StartQuizAttempt(ctx context.Context, courseID, cmid string) (models.QuizAttempt, error)
	SaveQuizAttempt(ctx context.Context, attemptID string, answers []models.Answer) (models.WriteResult, error)
	FinishQuizAttempt(ctx context.Context, attemptID string, answers []models.Answer) (models.WriteResult, error)
}
