package normalize

import (
	"strings"

	"github.com/Spok95/lms-dashboard/internal/lms"
	"github.com/Spok95/lms-dashboard/internal/models"
)

// GradeItem normalizes one grade item. ok is false for items that must not
// be emitted: no name or a non-positive maximum.
func GradeItem(raw lms.GradeItemRecord, courseID, courseName string) (item models.GradeItem, ok bool, err error) {
	gid, has := id(raw.ID)
	if !has {
		return models.GradeItem{}, false, missing("grade item", "id")
	}
	name := strings.TrimSpace(raw.Itemname)
	// !(x > 0) отсекает и NaN
	if name == "" || raw.Grademax == nil || !(*raw.Grademax > 0) {
		return models.GradeItem{}, false, nil
	}
	item = models.GradeItem{
		ID:              gid,
		CourseID:        courseID,
		CourseName:      courseName,
		ItemName:        name,
		ItemType:        raw.Itemtype,
		Grade:           optFloat(raw.Graderaw),
		GradeMax:        float64(*raw.Grademax),
		Feedback:        optString(raw.Feedback),
		GradeDateGraded: optTime(raw.Gradedategraded),
	}
	if cm, has := id(raw.Cmid); has {
		item.CMID = &cm
	}
	if item.Grade != nil {
		p := Percentage(*item.Grade, item.GradeMax)
		item.Percentage = &p
	}
	return item, true, nil
}

// GradeItems normalizes a course's items, dropping the ones GradeItem rejects.
func GradeItems(raw []lms.GradeItemRecord, courseID, courseName string) ([]models.GradeItem, error) {
	out := make([]models.GradeItem, 0, len(raw))
	for _, r := range raw {
		it, ok, err := GradeItem(r, courseID, courseName)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, it)
		}
	}
	return out, nil
}

// AttachGrades copies grade and grademax from module grade items onto the
// activities with the same course-module id. Activities without an item
// keep both fields absent.
func AttachGrades(acts []models.Activity, items []models.GradeItem) {
	byCM := make(map[string]models.GradeItem, len(items))
	for _, it := range items {
		if it.CMID == nil {
			continue
		}
		if _, dup := byCM[*it.CMID]; !dup {
			byCM[*it.CMID] = it
		}
	}
	for i := range acts {
		it, ok := byCM[acts[i].ID]
		if !ok {
			continue
		}
		if it.Grade != nil {
			g := *it.Grade
			acts[i].Grade = &g
		}
		gm := it.GradeMax
		acts[i].GradeMax = &gm
	}
}
