package normalize

import (
	"strings"

	"github.com/Spok95/lms-dashboard/internal/lms"
	"github.com/Spok95/lms-dashboard/internal/models"
)

// CompletionComplete is the completion-state code of a completed activity.
const CompletionComplete = 1

// Contents normalizes a course's sections. Section position is the index
// in the source array; activity position is the index within its section.
func Contents(courseID string, raw []lms.SectionRecord) ([]models.SectionContents, error) {
	out := make([]models.SectionContents, 0, len(raw))
	for i, rs := range raw {
		sid, ok := id(rs.ID)
		if !ok {
			return nil, missing("section", "id")
		}
		sc := models.SectionContents{
			Section: models.Section{
				ID:       sid,
				CourseID: courseID,
				Name:     rs.Name,
				Summary:  optString(rs.Summary),
				Visible:  visible(rs.Visible),
				Position: i,
			},
			Activities: make([]models.Activity, 0, len(rs.Modules)),
		}
		for j, rm := range rs.Modules {
			a, err := Activity(rm, sid, courseID, j)
			if err != nil {
				return nil, err
			}
			sc.Activities = append(sc.Activities, a)
		}
		out = append(out, sc)
	}
	return out, nil
}

func Activity(raw lms.ModuleRecord, sectionID, courseID string, position int) (models.Activity, error) {
	aid, ok := id(raw.ID)
	if !ok {
		return models.Activity{}, missing("module", "id")
	}
	return models.Activity{
		ID:          aid,
		SectionID:   sectionID,
		CourseID:    courseID,
		Name:        raw.Name,
		ModName:     models.ParseModName(raw.Modname),
		Description: optString(raw.Description),
		Visible:     visible(raw.Visible),
		Position:    position,
		URL:         optString(raw.URL),
		DueDate:     DueDate(raw.Dates),
		Completed:   Completed(raw.Completiondata),
	}, nil
}

// DueDate picks the first date whose label mentions "due".
func DueDate(dates []lms.DateRecord) *int64 {
	for _, d := range dates {
		if d.Timestamp == nil {
			continue
		}
		if strings.Contains(strings.ToLower(d.Label), "due") {
			ts := int64(*d.Timestamp)
			return &ts
		}
	}
	return nil
}

func Completed(cd *lms.CompletionData) bool {
	return cd != nil && cd.State != nil && *cd.State == CompletionComplete
}

// Flatten returns the activities of all sections in order.
func Flatten(sections []models.SectionContents) []models.Activity {
	n := 0
	for _, s := range sections {
		n += len(s.Activities)
	}
	out := make([]models.Activity, 0, n)
	for _, s := range sections {
		out = append(out, s.Activities...)
	}
	return out
}

// FindModule looks a course module up by id in raw contents.
func FindModule(raw []lms.SectionRecord, cmid string) (lms.ModuleRecord, bool) {
	for _, s := range raw {
		for _, m := range s.Modules {
			if mid, ok := id(m.ID); ok && mid == cmid {
				return m, true
			}
		}
	}
	return lms.ModuleRecord{}, false
}
