package demo

import (
	"context"
	"fmt"

	"github.com/Spok95/lms-dashboard/internal/models"
)

// Source answers every read from the fixtures. Writes report success and
// change nothing.
type Source struct{}

func New() *Source { return &Source{} }

func (*Source) SiteInfo(context.Context) (models.SiteInfo, error) { return siteInfo(), nil }

func (*Source) CurrentUser(context.Context) (models.User, error) { return user(), nil }

func (*Source) Categories(context.Context) ([]models.Category, error) { return categories(), nil }

func (*Source) EnrolledCourses(context.Context) ([]models.Course, error) { return courses(), nil }

func (*Source) CourseContents(_ context.Context, courseID string) ([]models.SectionContents, error) {
	secs, ok := contents()[courseID]
	if !ok {
		return nil, fmt.Errorf("course %s: %w", courseID, models.ErrNotFound)
	}
	return secs, nil
}

// CalendarEvents returns the fixture events of the given courses plus the
// ones not tied to a course, limited to [from, to).
func (*Source) CalendarEvents(_ context.Context, cs []models.Course, from, to int64) ([]models.CalendarEvent, error) {
	ids := make(map[string]bool, len(cs))
	for _, c := range cs {
		ids[c.ID] = true
	}
	out := make([]models.CalendarEvent, 0)
	for _, ev := range events() {
		if ev.CourseID != nil && !ids[*ev.CourseID] {
			continue
		}
		if ev.TimeStart < from || (to > 0 && ev.TimeStart >= to) {
			continue
		}
		out = append(out, ev)
	}
	return out, nil
}

func (*Source) GradeItems(_ context.Context, course models.Course) ([]models.GradeItem, error) {
	items := gradeItems()[course.ID]
	if items == nil {
		items = []models.GradeItem{}
	}
	return items, nil
}

func (*Source) SetCompletion(context.Context, string, bool) (models.WriteResult, error) {
	return models.WriteResult{Success: true}, nil
}

// find returns the detail of course module cmid in courseID.
func find[T any](all []T, hdr func(T) models.ModuleHeader, courseID, cmid string) (T, error) {
	for _, d := range all {
		h := hdr(d)
		if h.ID == cmid && h.CourseID == courseID {
			return d, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("module %s in course %s: %w", cmid, courseID, models.ErrNotFound)
}

func (*Source) Page(_ context.Context, courseID, cmid string) (models.PageDetail, error) {
	return find(pages(), func(d models.PageDetail) models.ModuleHeader { return d.ModuleHeader }, courseID, cmid)
}

func (*Source) Book(_ context.Context, courseID, cmid string) (models.BookDetail, error) {
	return find(books(), func(d models.BookDetail) models.ModuleHeader { return d.ModuleHeader }, courseID, cmid)
}

func (*Source) Resource(_ context.Context, courseID, cmid string) (models.ResourceDetail, error) {
	return find(resources(), func(d models.ResourceDetail) models.ModuleHeader { return d.ModuleHeader }, courseID, cmid)
}

func (*Source) URL(_ context.Context, courseID, cmid string) (models.URLDetail, error) {
	return find(urls(), func(d models.URLDetail) models.ModuleHeader { return d.ModuleHeader }, courseID, cmid)
}

func (*Source) Label(_ context.Context, courseID, cmid string) (models.LabelDetail, error) {
	return find(labels(), func(d models.LabelDetail) models.ModuleHeader { return d.ModuleHeader }, courseID, cmid)
}

func (*Source) Folder(_ context.Context, courseID, cmid string) (models.FolderDetail, error) {
	return find(folders(), func(d models.FolderDetail) models.ModuleHeader { return d.ModuleHeader }, courseID, cmid)
}

func (*Source) Choice(_ context.Context, courseID, cmid string) (models.ChoiceDetail, error) {
	return find(choices(), func(d models.ChoiceDetail) models.ModuleHeader { return d.ModuleHeader }, courseID, cmid)
}

func (*Source) Glossary(_ context.Context, courseID, cmid string) (models.GlossaryDetail, error) {
	return find(glossaries(), func(d models.GlossaryDetail) models.ModuleHeader { return d.ModuleHeader }, courseID, cmid)
}

func (*Source) Assignment(_ context.Context, courseID, cmid string) (models.AssignmentDetail, error) {
	return find(assignments(), func(d models.AssignmentDetail) models.ModuleHeader { return d.ModuleHeader }, courseID, cmid)
}

func (*Source) Forum(_ context.Context, courseID, cmid string) (models.ForumDetail, error) {
	return find(forums(), func(d models.ForumDetail) models.ModuleHeader { return d.ModuleHeader }, courseID, cmid)
}

func (*Source) Quiz(_ context.Context, courseID, cmid string) (models.QuizDetail, error) {
	return find(quizzes(), func(d models.QuizDetail) models.ModuleHeader { return d.ModuleHeader }, courseID, cmid)
}

// Writes still check that the target exists so the demo answers 404 the
// same way the live service would.

func (src *Source) SaveAssignmentText(ctx context.Context, courseID, cmid, _ string) (models.WriteResult, error) {
	if _, err := src.Assignment(ctx, courseID, cmid); err != nil {
		return models.WriteResult{}, err
	}
	return models.WriteResult{Success: true}, nil
}

func (src *Source) SubmitAssignment(ctx context.Context, courseID, cmid string) (models.WriteResult, error) {
	if _, err := src.Assignment(ctx, courseID, cmid); err != nil {
		return models.WriteResult{}, err
	}
	return models.WriteResult{Success: true}, nil
}

func (src *Source) AddDiscussion(ctx context.Context, courseID, cmid, _, _ string) (models.WriteResult, error) {
	if _, err := src.Forum(ctx, courseID, cmid); err != nil {
		return models.WriteResult{}, err
	}
	return models.WriteResult{Success: true, ID: s("demo-discussion")}, nil
}

func (*Source) ReplyToPost(context.Context, string, string, string) (models.WriteResult, error) {
	return models.WriteResult{Success: true, ID: s("demo-post")}, nil
}

func (src *Source) StartQuizAttempt(ctx context.Context, courseID, cmid string) (models.QuizAttempt, error) {
	q, err := src.Quiz(ctx, courseID, cmid)
	if err != nil {
		return models.QuizAttempt{}, err
	}
	return models.QuizAttempt{
		ID:        "demo-attempt-" + q.InstanceID,
		QuizID:    q.InstanceID,
		State:     "inprogress",
		TimeStart: i64(epoch),
	}, nil
}

func (*Source) SaveQuizAttempt(context.Context, string, []models.Answer) (models.WriteResult, error) {
	return models.WriteResult{Success: true}, nil
}

func (*Source) FinishQuizAttempt(context.Context, string, []models.Answer) (models.WriteResult, error) {
	return models.WriteResult{Success: true, State: s("finished")}, nil
}
