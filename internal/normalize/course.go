package normalize

import (
	"math"

	"github.com/Spok95/lms-dashboard/internal/lms"
	"github.com/Spok95/lms-dashboard/internal/models"
)

// FallbackCategoryName labels courses whose category is not in the list.
const FallbackCategoryName = "Course"

func Category(raw lms.CategoryRecord) (models.Category, error) {
	cid, ok := id(raw.ID)
	if !ok {
		return models.Category{}, missing("category", "id")
	}
	count := intOr(raw.Coursecount, 0)
	if count < 0 {
		count = 0
	}
	return models.Category{
		ID:          cid,
		Name:        raw.Name,
		Description: optString(raw.Description),
		CourseCount: int(count),
	}, nil
}

// CategoryNames indexes category names by id.
func CategoryNames(cats []models.Category) map[string]string {
	m := make(map[string]string, len(cats))
	for _, c := range cats {
		m[c.ID] = c.Name
	}
	return m
}

func Course(raw lms.CourseRecord, categories map[string]string, enrolled bool) (models.Course, error) {
	cid, ok := id(raw.ID)
	if !ok {
		return models.Course{}, missing("course", "id")
	}

	catRaw := raw.Category
	if catRaw == nil {
		catRaw = raw.Categoryid
	}
	catID, _ := id(catRaw)
	catName := FallbackCategoryName
	if n, ok := categories[catID]; ok && n != "" {
		catName = n
	}

	c := models.Course{
		ID:           cid,
		Shortname:    raw.Shortname,
		Fullname:     raw.Fullname,
		Summary:      optString(raw.Summary),
		CategoryID:   catID,
		CategoryName: &catName,
		StartDate:    intOr(raw.Startdate, 0),
		EndDate:      optTime(raw.Enddate),
		Enrolled:     enrolled,
		ImageURL:     courseImage(raw),
	}
	if enrolled && raw.Progress != nil {
		p := int(math.Round(float64(*raw.Progress)))
		p = max(0, min(100, p))
		c.Progress = &p
	}
	if len(raw.Contacts) > 0 {
		c.TeacherName = optString(raw.Contacts[0].Fullname)
	}
	return c, nil
}

func courseImage(raw lms.CourseRecord) *string {
	if img := optString(raw.Courseimage); img != nil {
		return img
	}
	for _, f := range raw.Overviewfiles {
		if u := optString(f.Fileurl); u != nil {
			return u
		}
	}
	return nil
}

// CourseNames indexes course full names by id.
func CourseNames(courses []models.Course) map[string]string {
	m := make(map[string]string, len(courses))
	for _, c := range courses {
		m[c.ID] = c.Fullname
	}
	return m
}
