package dashboard

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/Spok95/lms-dashboard/internal/lms"
	"github.com/Spok95/lms-dashboard/internal/models"
	"github.com/Spok95/lms-dashboard/internal/normalize"
)

// Live reads from the web service and normalizes every record. One Live
// serves one resolved call; only the site info is remembered, since the
// current user id is needed by several calls of the same aggregation.
type Live struct {
	c   *lms.Client
	log *zap.Logger

	mu   sync.Mutex
	site *models.SiteInfo
}

var _ Source = (*Live)(nil)

func NewLive(c *lms.Client, log *zap.Logger) *Live {
	if log == nil {
		log = zap.NewNop()
	}
	return &Live{c: c, log: log}
}

func parseID(kind, s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %s id %q", models.ErrInvalidInput, kind, s)
	}
	return n, nil
}

func (l *Live) SiteInfo(ctx context.Context) (models.SiteInfo, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.site != nil {
		return *l.site, nil
	}
	raw, err := l.c.SiteInfo(ctx)
	if err != nil {
		return models.SiteInfo{}, err
	}
	info, err := normalize.SiteInfo(raw)
	if err != nil {
		return models.SiteInfo{}, err
	}
	l.site = &info
	return info, nil
}

func (l *Live) userID(ctx context.Context) (int64, error) {
	info, err := l.SiteInfo(ctx)
	if err != nil {
		return 0, err
	}
	return parseID("user", info.UserID)
}

func (l *Live) CurrentUser(ctx context.Context) (models.User, error) {
	info, err := l.SiteInfo(ctx)
	if err != nil {
		return models.User{}, err
	}
	uid, err := parseID("user", info.UserID)
	if err != nil {
		return models.User{}, err
	}
	recs, err := l.c.UserByID(ctx, uid)
	if err != nil {
		return models.User{}, err
	}
	// сервис может скрыть профиль, тогда берём то, что есть в site info
	if len(recs) == 0 {
		l.log.Debug("user profile not visible, using site info", zap.String("userid", info.UserID))
		return normalize.UserFromSiteInfo(info), nil
	}
	return normalize.User(recs[0], info.SiteURL)
}

func (l *Live) Categories(ctx context.Context) ([]models.Category, error) {
	raw, err := l.c.Categories(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Category, 0, len(raw))
	for _, r := range raw {
		c, err := normalize.Category(r)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (l *Live) EnrolledCourses(ctx context.Context) ([]models.Course, error) {
	uid, err := l.userID(ctx)
	if err != nil {
		return nil, err
	}
	raw, err := l.c.UsersCourses(ctx, uid)
	if err != nil {
		return nil, err
	}
	cats, err := l.Categories(ctx)
	if err != nil {
		return nil, err
	}
	names := normalize.CategoryNames(cats)
	out := make([]models.Course, 0, len(raw))
	for _, r := range raw {
		c, err := normalize.Course(r, names, true)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (l *Live) CourseContents(ctx context.Context, courseID string) ([]models.SectionContents, error) {
	cid, err := parseID("course", courseID)
	if err != nil {
		return nil, err
	}
	raw, err := l.c.CourseContents(ctx, cid)
	if err != nil {
		return nil, err
	}
	return normalize.Contents(courseID, raw)
}

func (l *Live) CalendarEvents(ctx context.Context, courses []models.Course, from, to int64) ([]models.CalendarEvent, error) {
	ids := make([]int64, 0, len(courses))
	for _, c := range courses {
		cid, err := parseID("course", c.ID)
		if err != nil {
			return nil, err
		}
		ids = append(ids, cid)
	}
	raw, err := l.c.CalendarEvents(ctx, ids, from, to)
	if err != nil {
		return nil, err
	}
	names := normalize.CourseNames(courses)
	out := make([]models.CalendarEvent, 0, len(raw))
	for _, r := range raw {
		ev, err := normalize.Event(r, names)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, nil
}

func (l *Live) GradeItems(ctx context.Context, course models.Course) ([]models.GradeItem, error) {
	cid, err := parseID("course", course.ID)
	if err != nil {
		return nil, err
	}
	uid, err := l.userID(ctx)
	if err != nil {
		return nil, err
	}
	raw, err := l.c.GradeItems(ctx, cid, uid)
	if err != nil {
		return nil, err
	}
	return normalize.GradeItems(raw, course.ID, course.Fullname)
}

func (l *Live) SetCompletion(ctx context.Context, cmid string, completed bool) (models.WriteResult, error) {
	mid, err := parseID("module", cmid)
	if err != nil {
		return models.WriteResult{}, err
	}
	res, err := l.c.UpdateCompletion(ctx, mid, completed)
	if err != nil {
		return models.WriteResult{}, err
	}
	return models.WriteResult{Success: res.Status, Warnings: normalize.Warnings(res.Warnings)}, nil
}

// byModule fetches the instance records of one module type in a course and
// returns the one whose course-module id is cmid.
func byModule[T any](ctx context.Context, courseID, cmid string,
	fetch func(context.Context, int64) ([]T, error), cm func(T) *lms.Int,
) (T, error) {
	var zero T
	cid, err := parseID("course", courseID)
	if err != nil {
		return zero, err
	}
	mid, err := parseID("module", cmid)
	if err != nil {
		return zero, err
	}
	recs, err := fetch(ctx, cid)
	if err != nil {
		return zero, err
	}
	for _, r := range recs {
		if v := cm(r); v != nil && int64(*v) == mid {
			return r, nil
		}
	}
	return zero, fmt.Errorf("module %s in course %s: %w", cmid, courseID, models.ErrNotFound)
}

// moduleFiles returns the contents entry list of a module, which carries
// book chapters and folder files.
func (l *Live) moduleFiles(ctx context.Context, courseID, cmid string) ([]lms.FileRecord, error) {
	cid, err := parseID("course", courseID)
	if err != nil {
		return nil, err
	}
	raw, err := l.c.CourseContents(ctx, cid)
	if err != nil {
		return nil, err
	}
	m, ok := normalize.FindModule(raw, cmid)
	if !ok {
		return nil, fmt.Errorf("module %s in course %s: %w", cmid, courseID, models.ErrNotFound)
	}
	return m.Contents, nil
}

func (l *Live) Page(ctx context.Context, courseID, cmid string) (models.PageDetail, error) {
	r, err := byModule(ctx, courseID, cmid, l.c.Pages, func(r lms.PageRecord) *lms.Int { return r.Coursemodule })
	if err != nil {
		return models.PageDetail{}, err
	}
	return normalize.Page(r, courseID)
}

func (l *Live) Book(ctx context.Context, courseID, cmid string) (models.BookDetail, error) {
	r, err := byModule(ctx, courseID, cmid, l.c.Books, func(r lms.BookRecord) *lms.Int { return r.Coursemodule })
	if err != nil {
		return models.BookDetail{}, err
	}
	files, err := l.moduleFiles(ctx, courseID, cmid)
	if err != nil {
		return models.BookDetail{}, err
	}
	return normalize.Book(r, courseID, files)
}

func (l *Live) Resource(ctx context.Context, courseID, cmid string) (models.ResourceDetail, error) {
	r, err := byModule(ctx, courseID, cmid, l.c.Resources, func(r lms.ResourceRecord) *lms.Int { return r.Coursemodule })
	if err != nil {
		return models.ResourceDetail{}, err
	}
	return normalize.Resource(r, courseID)
}

func (l *Live) URL(ctx context.Context, courseID, cmid string) (models.URLDetail, error) {
	r, err := byModule(ctx, courseID, cmid, l.c.URLs, func(r lms.URLRecord) *lms.Int { return r.Coursemodule })
	if err != nil {
		return models.URLDetail{}, err
	}
	return normalize.URL(r, courseID)
}

func (l *Live) Label(ctx context.Context, courseID, cmid string) (models.LabelDetail, error) {
	r, err := byModule(ctx, courseID, cmid, l.c.Labels, func(r lms.LabelRecord) *lms.Int { return r.Coursemodule })
	if err != nil {
		return models.LabelDetail{}, err
	}
	return normalize.Label(r, courseID)
}

func (l *Live) Folder(ctx context.Context, courseID, cmid string) (models.FolderDetail, error) {
	r, err := byModule(ctx, courseID, cmid, l.c.Folders, func(r lms.FolderRecord) *lms.Int { return r.Coursemodule })
	if err != nil {
		return models.FolderDetail{}, err
	}
	files, err := l.moduleFiles(ctx, courseID, cmid)
	if err != nil {
		return models.FolderDetail{}, err
	}
	return normalize.Folder(r, courseID, files)
}

func (l *Live) Choice(ctx context.Context, courseID, cmid string) (models.ChoiceDetail, error) {
	r, err := byModule(ctx, courseID, cmid, l.c.Choices, func(r lms.ChoiceRecord) *lms.Int { return r.Coursemodule })
	if err != nil {
		return models.ChoiceDetail{}, err
	}
	if r.ID == nil {
		return normalize.Choice(r, courseID, nil)
	}
	opts, err := l.c.ChoiceOptions(ctx, int64(*r.ID))
	if err != nil {
		return models.ChoiceDetail{}, err
	}
	return normalize.Choice(r, courseID, opts)
}

func (l *Live) Glossary(ctx context.Context, courseID, cmid string) (models.GlossaryDetail, error) {
	r, err := byModule(ctx, courseID, cmid, l.c.Glossaries, func(r lms.GlossaryRecord) *lms.Int { return r.Coursemodule })
	if err != nil {
		return models.GlossaryDetail{}, err
	}
	if r.ID == nil {
		return normalize.Glossary(r, courseID, nil)
	}
	entries, err := l.c.GlossaryEntries(ctx, int64(*r.ID))
	if err != nil {
		return models.GlossaryDetail{}, err
	}
	return normalize.Glossary(r, courseID, entries)
}

func (l *Live) Assignment(ctx context.Context, courseID, cmid string) (models.AssignmentDetail, error) {
	r, err := byModule(ctx, courseID, cmid, l.c.Assignments, func(r lms.AssignRecord) *lms.Int { return r.Cmid })
	if err != nil {
		return models.AssignmentDetail{}, err
	}
	return normalize.Assignment(r, courseID)
}

func (l *Live) Forum(ctx context.Context, courseID, cmid string) (models.ForumDetail, error) {
	r, err := byModule(ctx, courseID, cmid, l.c.Forums, func(r lms.ForumRecord) *lms.Int { return r.Coursemodule })
	if err != nil {
		return models.ForumDetail{}, err
	}
	if r.ID == nil {
		return normalize.Forum(r, courseID, nil)
	}
	discussions, err := l.c.ForumDiscussions(ctx, int64(*r.ID))
	if err != nil {
		return models.ForumDetail{}, err
	}
	return normalize.Forum(r, courseID, discussions)
}

func (l *Live) Quiz(ctx context.Context, courseID, cmid string) (models.QuizDetail, error) {
	r, err := byModule(ctx, courseID, cmid, l.c.Quizzes, func(r lms.QuizRecord) *lms.Int { return r.Coursemodule })
	if err != nil {
		return models.QuizDetail{}, err
	}
	return normalize.Quiz(r, courseID)
}

// instance resolves the module instance id behind a course-module id using
// the already normalized detail header.
func instance(h models.ModuleHeader) (int64, error) {
	return parseID("instance", h.InstanceID)
}

func (l *Live) SaveAssignmentText(ctx context.Context, courseID, cmid, text string) (models.WriteResult, error) {
	a, err := l.Assignment(ctx, courseID, cmid)
	if err != nil {
		return models.WriteResult{}, err
	}
	aid, err := instance(a.ModuleHeader)
	if err != nil {
		return models.WriteResult{}, err
	}
	warnings, err := l.c.SaveAssignmentText(ctx, aid, text)
	if err != nil {
		return models.WriteResult{}, err
	}
	return models.WriteResult{Success: len(warnings) == 0, Warnings: normalize.Warnings(warnings)}, nil
}

func (l *Live) SubmitAssignment(ctx context.Context, courseID, cmid string) (models.WriteResult, error) {
	a, err := l.Assignment(ctx, courseID, cmid)
	if err != nil {
		return models.WriteResult{}, err
	}
	aid, err := instance(a.ModuleHeader)
	if err != nil {
		return models.WriteResult{}, err
	}
	warnings, err := l.c.SubmitAssignment(ctx, aid)
	if err != nil {
		return models.WriteResult{}, err
	}
	return models.WriteResult{Success: len(warnings) == 0, Warnings: normalize.Warnings(warnings)}, nil
}

func (l *Live) AddDiscussion(ctx context.Context, courseID, cmid, subject, message string) (models.WriteResult, error) {
	r, err := byModule(ctx, courseID, cmid, l.c.Forums, func(r lms.ForumRecord) *lms.Int { return r.Coursemodule })
	if err != nil {
		return models.WriteResult{}, err
	}
	if r.ID == nil {
		return models.WriteResult{}, fmt.Errorf("%w: forum without id", normalize.ErrMalformedPayload)
	}
	did, err := l.c.AddDiscussion(ctx, int64(*r.ID), subject, message)
	if err != nil {
		return models.WriteResult{}, err
	}
	id := strconv.FormatInt(did, 10)
	return models.WriteResult{Success: true, ID: &id}, nil
}

func (l *Live) ReplyToPost(ctx context.Context, postID, subject, message string) (models.WriteResult, error) {
	pid, err := parseID("post", postID)
	if err != nil {
		return models.WriteResult{}, err
	}
	newID, err := l.c.AddPost(ctx, pid, subject, message)
	if err != nil {
		return models.WriteResult{}, err
	}
	id := strconv.FormatInt(newID, 10)
	return models.WriteResult{Success: true, ID: &id}, nil
}

func (l *Live) StartQuizAttempt(ctx context.Context, courseID, cmid string) (models.QuizAttempt, error) {
	q, err := l.Quiz(ctx, courseID, cmid)
	if err != nil {
		return models.QuizAttempt{}, err
	}
	qid, err := instance(q.ModuleHeader)
	if err != nil {
		return models.QuizAttempt{}, err
	}
	raw, err := l.c.StartAttempt(ctx, qid)
	if err != nil {
		return models.QuizAttempt{}, err
	}
	return normalize.Attempt(raw)
}

func answerData(answers []models.Answer) []lms.AnswerData {
	out := make([]lms.AnswerData, 0, len(answers))
	for _, a := range answers {
		out = append(out, lms.AnswerData{Name: a.Name, Value: a.Value})
	}
	return out
}

func (l *Live) SaveQuizAttempt(ctx context.Context, attemptID string, answers []models.Answer) (models.WriteResult, error) {
	aid, err := parseID("attempt", attemptID)
	if err != nil {
		return models.WriteResult{}, err
	}
	res, err := l.c.SaveAttempt(ctx, aid, answerData(answers))
	if err != nil {
		return models.WriteResult{}, err
	}
	return models.WriteResult{Success: res.Status, Warnings: normalize.Warnings(res.Warnings)}, nil
}

func (l *Live) FinishQuizAttempt(ctx context.Context, attemptID string, answers []models.Answer) (models.WriteResult, error) {
	aid, err := parseID("attempt", attemptID)
	if err != nil {
		return models.WriteResult{}, err
	}
	state, err := l.c.FinishAttempt(ctx, aid, answerData(answers))
	if err != nil {
		return models.WriteResult{}, err
	}
	res := models.WriteResult{Success: true}
	if state != "" {
		res.State = &state
	}
	return res, nil
}
