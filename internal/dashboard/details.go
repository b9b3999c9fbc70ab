package dashboard

import (
	"context"

	"github.com/Spok95/lms-dashboard/internal/models"
)

// Per-activity detail reads and writes go straight to the resolved source.

func (s *Service) Page(ctx context.Context, courseID, cmid string) (models.PageDetail, error) {
	return s.source().Page(ctx, courseID, cmid)
}

func (s *Service) Book(ctx context.Context, courseID, cmid string) (models.BookDetail, error) {
	return s.source().Book(ctx, courseID, cmid)
}

func (s *Service) Resource(ctx context.Context, courseID, cmid string) (models.ResourceDetail, error) {
	return s.source().Resource(ctx, courseID, cmid)
}

func (s *Service) URL(ctx context.Context, courseID, cmid string) (models.URLDetail, error) {
	return s.source().URL(ctx, courseID, cmid)
}

func (s *Service) Label(ctx context.Context, courseID, cmid string) (models.LabelDetail, error) {
	return s.source().Label(ctx, courseID, cmid)
}

func (s *Service) Folder(ctx context.Context, courseID, cmid string) (models.FolderDetail, error) {
	return s.source().Folder(ctx, courseID, cmid)
}

func (s *Service) Choice(ctx context.Context, courseID, cmid string) (models.ChoiceDetail, error) {
	return s.source().Choice(ctx, courseID, cmid)
}

func (s *Service) Glossary(ctx context.Context, courseID, cmid string) (models.GlossaryDetail, error) {
	return s.source().Glossary(ctx, courseID, cmid)
}

func (s *Service) Assignment(ctx context.Context, courseID, cmid string) (models.AssignmentDetail, error) {
	return s.source().Assignment(ctx, courseID, cmid)
}

func (s *Service) Forum(ctx context.Context, courseID, cmid string) (models.ForumDetail, error) {
	return s.source().Forum(ctx, courseID, cmid)
}

func (s *Service) Quiz(ctx context.Context, courseID, cmid string) (models.QuizDetail, error) {
	return s.source().Quiz(ctx, courseID, cmid)
}

func (s *Service) SaveAssignmentText(ctx context.Context, courseID, cmid, text string) (models.WriteResult, error) {
	return s.source().SaveAssignmentText(ctx, courseID, cmid, text)
}

func (s *Service) SubmitAssignment(ctx context.Context, courseID, cmid string) (models.WriteResult, error) {
	return s.source().SubmitAssignment(ctx, courseID, cmid)
}

func (s *Service) AddDiscussion(ctx context.Context, courseID, cmid, subject, message string) (models.WriteResult, error) {
	return s.source().AddDiscussion(ctx, courseID, cmid, subject, message)
}

func (s *Service) ReplyToPost(ctx context.Context, postID, subject, message string) (models.WriteResult, error) {
	return s.source().ReplyToPost(ctx, postID, subject, message)
}

func (s *Service) StartQuizAttempt(ctx context.Context, courseID, cmid string) (models.QuizAttempt, error) {
	return s.source().StartQuizAttempt(ctx, courseID, cmid)
}

func (s *Service) SaveQuizAttempt(ctx context.Context, attemptID string, answers []models.Answer) (models.WriteResult, error) {
	return s.source().SaveQuizAttempt(ctx, attemptID, answers)
}

func (s *Service) FinishQuizAttempt(ctx context.Context, attemptID string, answers []models.Answer) (models.WriteResult, error) {
	return s.source().FinishQuizAttempt(ctx, attemptID, answers)
}
