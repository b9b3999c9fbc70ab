package httpapi

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Spok95/lms-dashboard/internal/ctxutil"
	"github.com/Spok95/lms-dashboard/internal/export"
	"github.com/Spok95/lms-dashboard/internal/models"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// calendarEvents reads ?from=&to= as unix seconds; missing bounds fall back
// to the service defaults.
func (s *Server) calendarEvents(c *fiber.Ctx) (any, error) {
	from, err := unixQuery(c, "from")
	if err != nil {
		return nil, err
	}
	to, err := unixQuery(c, "to")
	if err != nil {
		return nil, err
	}
	return s.svc.CalendarEvents(c.UserContext(), from, to)
}

func unixQuery(c *fiber.Ctx, key string) (int64, error) {
	v := c.Query(key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s=%q", models.ErrInvalidInput, key, v)
	}
	return n, nil
}

func (s *Server) exportGrades(c *fiber.Ctx) error {
	const op = "grades_export"
	ctx := ctxutil.WithOp(c.UserContext(), op)
	c.SetUserContext(ctx)

	grades, err := s.svc.GradesByCourse(ctx)
	if err != nil {
		return s.fail(c, op, msgLoadFailed, err)
	}
	if err := models.Validate(grades); err != nil {
		return s.internal(c, op, msgLoadFailed, fmt.Errorf("contract: %w", err))
	}
	user, err := s.svc.CurrentUser(ctx)
	if err != nil {
		return s.fail(c, op, msgLoadFailed, err)
	}

	wb, err := export.NewGradesWorkbook(grades, s.opts.Location)
	if err != nil {
		return s.internal(c, op, msgLoadFailed, err)
	}
	defer func() { _ = wb.Close() }()

	name := export.GradesFilename(user.Fullname, time.Now().In(s.opts.Location).Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="grades.xlsx"; filename*=UTF-8''%s`, url.PathEscape(name)))
	if _, err := wb.WriteTo(c); err != nil {
		return s.internal(c, op, msgLoadFailed, err)
	}
	return nil
}
