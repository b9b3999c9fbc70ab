// Package httpapi is the JSON boundary consumed by the dashboard UI.
package httpapi

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/Spok95/lms-dashboard/internal/dashboard"
	"github.com/Spok95/lms-dashboard/internal/metrics"
)

type Options struct {
	CORSOrigins []string
	// Location is used for dates in exported spreadsheets.
	Location *time.Location
}

type Server struct {
	app   *fiber.App
	svc   *dashboard.Service
	log   *zap.Logger
	opts  Options
	locks *attemptLocks
}

func New(svc *dashboard.Service, log *zap.Logger, opts Options) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	s := &Server{svc: svc, log: log, opts: opts, locks: newAttemptLocks()}
	s.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
		Immutable:             true,
		ErrorHandler:          s.errorHandler,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          60 * time.Second,
		IdleTimeout:           90 * time.Second,
	})

	s.app.Use(requestID())
	s.app.Use(requestLog(log))
	s.app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	if len(opts.CORSOrigins) > 0 {
		s.app.Use(cors.New(cors.Config{
			AllowOrigins: strings.Join(opts.CORSOrigins, ","),
			AllowMethods: "GET,POST,OPTIONS",
			AllowHeaders: "Origin, Content-Type, Accept, X-Request-ID",
		}))
	}

	s.app.Get("/healthz", s.health)
	s.app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))
	s.routes(s.app.Group("/api"))
	return s
}

// App exposes the fiber app (tests drive it with app.Test).
func (s *Server) App() *fiber.App { return s.app }

func (s *Server) Listen(addr string) error { return s.app.Listen(addr) }

func (s *Server) Shutdown(ctx context.Context) error { return s.app.ShutdownWithContext(ctx) }

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "mode": s.svc.Mode()})
}

func (s *Server) routes(api fiber.Router) {
	api.Get("/mode", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"mode": s.svc.Mode()})
	})
	api.Get("/site-info", s.read("site_info", func(c *fiber.Ctx) (any, error) {
		return s.svc.SiteInfo(c.UserContext())
	}))
	api.Get("/user", s.read("user", func(c *fiber.Ctx) (any, error) {
		return s.svc.CurrentUser(c.UserContext())
	}))
	api.Get("/categories", s.read("categories", func(c *fiber.Ctx) (any, error) {
		return s.svc.Categories(c.UserContext())
	}))
	api.Get("/courses", s.read("courses", func(c *fiber.Ctx) (any, error) {
		return s.svc.Courses(c.UserContext())
	}))
	api.Get("/courses/:id", s.read("course", func(c *fiber.Ctx) (any, error) {
		return s.svc.Course(c.UserContext(), c.Params("id"))
	}))
	api.Get("/courses/:id/contents", s.read("course_contents", func(c *fiber.Ctx) (any, error) {
		return s.svc.CourseContents(c.UserContext(), c.Params("id"))
	}))
	api.Get("/courses/:id/activities", s.read("course_activities", func(c *fiber.Ctx) (any, error) {
		return s.svc.CourseActivities(c.UserContext(), c.Params("id"))
	}))
	api.Get("/activities", s.read("activities", func(c *fiber.Ctx) (any, error) {
		return s.svc.AllActivities(c.UserContext())
	}))
	api.Get("/activities/upcoming", s.read("upcoming_activities", func(c *fiber.Ctx) (any, error) {
		return s.svc.UpcomingActivities(c.UserContext())
	}))
	api.Get("/calendar/events", s.read("calendar_events", s.calendarEvents))
	api.Get("/events/upcoming", s.read("upcoming_events", func(c *fiber.Ctx) (any, error) {
		return s.svc.UpcomingEvents(c.UserContext())
	}))
	api.Get("/grades", s.read("grades", func(c *fiber.Ctx) (any, error) {
		return s.svc.GradesByCourse(c.UserContext())
	}))
	api.Get("/grades/export", s.exportGrades)
	api.Get("/stats", s.read("stats", func(c *fiber.Ctx) (any, error) {
		return s.svc.Stats(c.UserContext())
	}))

	s.detailRoutes(api)
	s.writeRoutes(api)
}
