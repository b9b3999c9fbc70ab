package normalize

import (
	"github.com/Spok95/lms-dashboard/internal/lms"
	"github.com/Spok95/lms-dashboard/internal/models"
)

// Event normalizes one calendar event. courseNames resolves the course name
// when the record does not embed it.
func Event(raw lms.EventRecord, courseNames map[string]string) (models.CalendarEvent, error) {
	eid, ok := id(raw.ID)
	if !ok {
		return models.CalendarEvent{}, missing("event", "id")
	}
	ev := models.CalendarEvent{
		ID:           eid,
		Name:         raw.Name,
		Description:  optString(raw.Description),
		TimeStart:    intOr(raw.Timestart, 0),
		TimeDuration: max(0, intOr(raw.Timeduration, 0)),
		EventType:    models.ParseEventType(raw.Eventtype),
		ActivityName: optString(raw.Activityname),
	}
	if raw.Courseid != nil && *raw.Courseid > 0 {
		cid := raw.Courseid.String()
		ev.CourseID = &cid
		if raw.Course != nil {
			ev.CourseName = optString(raw.Course.Fullname)
		}
		if ev.CourseName == nil {
			ev.CourseName = optString(courseNames[cid])
		}
	}
	if raw.Modulename != "" && raw.Instance != nil && *raw.Instance > 0 {
		aid := raw.Instance.String()
		ev.ActivityID = &aid
	}
	return ev, nil
}
