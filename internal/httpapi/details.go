package httpapi

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/Spok95/lms-dashboard/internal/models"
)

type detailFunc func(ctx context.Context, courseID, cmid string) (any, error)

func detail[T any](fn func(ctx context.Context, courseID, cmid string) (T, error)) detailFunc {
	return func(ctx context.Context, courseID, cmid string) (any, error) {
		return fn(ctx, courseID, cmid)
	}
}

// detailRoutes: GET /courses/:id/<modname>/:cmid
func (s *Server) detailRoutes(api fiber.Router) {
	byKind := []struct {
		kind models.ModName
		get  detailFunc
	}{
		{models.ModPage, detail(s.svc.Page)},
		{models.ModBook, detail(s.svc.Book)},
		{models.ModResource, detail(s.svc.Resource)},
		{models.ModURL, detail(s.svc.URL)},
		{models.ModLabel, detail(s.svc.Label)},
		{models.ModFolder, detail(s.svc.Folder)},
		{models.ModChoice, detail(s.svc.Choice)},
		{models.ModGlossary, detail(s.svc.Glossary)},
		{models.ModAssign, detail(s.svc.Assignment)},
		{models.ModForum, detail(s.svc.Forum)},
		{models.ModQuiz, detail(s.svc.Quiz)},
	}
	for _, d := range byKind {
		get := d.get
		api.Get("/courses/:id/"+string(d.kind)+"/:cmid", s.read(string(d.kind)+"_detail", func(c *fiber.Ctx) (any, error) {
			return get(c.UserContext(), c.Params("id"), c.Params("cmid"))
		}))
	}
}

type completionRequest struct {
	Completed *bool `json:"completed" validate:"required"`
}

type assignmentTextRequest struct {
	Text string `json:"text" validate:"required"`
}

type postRequest struct {
	Subject string `json:"subject" validate:"required,max=255"`
	Message string `json:"message" validate:"required"`
}

type answersRequest struct {
	Answers []models.Answer `json:"answers" validate:"dive"`
}

func (s *Server) writeRoutes(api fiber.Router) {
	api.Post("/activities/:cmid/completion", s.write("set_completion", func(c *fiber.Ctx) (any, error) {
		req, err := bind[completionRequest](c)
		if err != nil {
			return nil, err
		}
		return s.svc.SetCompletion(c.UserContext(), c.Params("cmid"), *req.Completed)
	}))

	api.Post("/courses/:id/assign/:cmid/text", s.write("assign_save", func(c *fiber.Ctx) (any, error) {
		req, err := bind[assignmentTextRequest](c)
		if err != nil {
			return nil, err
		}
		return s.svc.SaveAssignmentText(c.UserContext(), c.Params("id"), c.Params("cmid"), req.Text)
	}))
	api.Post("/courses/:id/assign/:cmid/submit", s.write("assign_submit", func(c *fiber.Ctx) (any, error) {
		return s.svc.SubmitAssignment(c.UserContext(), c.Params("id"), c.Params("cmid"))
	}))

	api.Post("/courses/:id/forum/:cmid/discussions", s.write("forum_discussion", func(c *fiber.Ctx) (any, error) {
		req, err := bind[postRequest](c)
		if err != nil {
			return nil, err
		}
		return s.svc.AddDiscussion(c.UserContext(), c.Params("id"), c.Params("cmid"), req.Subject, req.Message)
	}))
	api.Post("/posts/:id/replies", s.write("forum_reply", func(c *fiber.Ctx) (any, error) {
		req, err := bind[postRequest](c)
		if err != nil {
			return nil, err
		}
		return s.svc.ReplyToPost(c.UserContext(), c.Params("id"), req.Subject, req.Message)
	}))

	api.Post("/courses/:id/quiz/:cmid/attempts", s.write("quiz_start", func(c *fiber.Ctx) (any, error) {
		return s.svc.StartQuizAttempt(c.UserContext(), c.Params("id"), c.Params("cmid"))
	}))
	api.Post("/attempts/:id/save", s.write("quiz_save", func(c *fiber.Ctx) (any, error) {
		req, err := bind[answersRequest](c)
		if err != nil {
			return nil, err
		}
		defer s.locks.lock(c.Params("id"))()
		return s.svc.SaveQuizAttempt(c.UserContext(), c.Params("id"), req.Answers)
	}))
	api.Post("/attempts/:id/finish", s.write("quiz_finish", func(c *fiber.Ctx) (any, error) {
		req, err := bind[answersRequest](c)
		if err != nil {
			return nil, err
		}
		defer s.locks.lock(c.Params("id"))()
		return s.svc.FinishQuizAttempt(c.UserContext(), c.Params("id"), req.Answers)
	}))
}
