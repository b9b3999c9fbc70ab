package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Spok95/lms-dashboard/internal/models"
)

const summarySheet = "Summary"

var (
	summaryHeader = []string{"Course", "Items", "Graded", "Average %"}
	courseHeader  = []string{"Item", "Type", "Grade", "Max", "Percentage", "Graded at", "Feedback"}
)

type GradesWorkbook struct {
	File *excelize.File
}

// NewGradesWorkbook lays out a summary sheet followed by one sheet per
// course, in the order the courses are given.
func NewGradesWorkbook(grades []models.CourseGrades, loc *time.Location) (*GradesWorkbook, error) {
	if loc == nil {
		loc = time.UTC
	}
	f := excelize.NewFile()
	// стандартный Sheet1 становится сводным листом
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	for col, h := range summaryHeader {
		if err := setCell(f, summarySheet, col+1, 1, h); err != nil {
			return nil, err
		}
	}

	used := map[string]bool{"summary": true}
	for i, cg := range grades {
		graded := 0
		for _, it := range cg.Items {
			if it.Grade != nil {
				graded++
			}
		}
		row := []any{cg.CourseName, len(cg.Items), graded, nil}
		if cg.Average != nil {
			row[3] = *cg.Average
		}
		for col, v := range row {
			if err := setCell(f, summarySheet, col+1, i+2, v); err != nil {
				return nil, err
			}
		}

		name := sheetName(cg.CourseName, used)
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("new sheet %q: %w", name, err)
		}
		if err := writeCourseSheet(f, name, cg.Items, loc); err != nil {
			return nil, err
		}
		if err := ApplyDefaultExcelFormatting(f, name); err != nil {
			return nil, fmt.Errorf("format %q: %w", name, err)
		}
	}
	if err := ApplyDefaultExcelFormatting(f, summarySheet); err != nil {
		return nil, fmt.Errorf("format summary: %w", err)
	}
	f.SetActiveSheet(0)
	return &GradesWorkbook{File: f}, nil
}

func writeCourseSheet(f *excelize.File, sheet string, items []models.GradeItem, loc *time.Location) error {
	for col, h := range courseHeader {
		if err := setCell(f, sheet, col+1, 1, h); err != nil {
			return err
		}
	}
	for r, it := range items {
		row := []any{it.ItemName, it.ItemType, nil, it.GradeMax, nil, nil, nil}
		if it.Grade != nil {
			row[2] = *it.Grade
		}
		if it.Percentage != nil {
			row[4] = *it.Percentage
		}
		if it.GradeDateGraded != nil {
			row[5] = time.Unix(*it.GradeDateGraded, 0).In(loc).Format("2006-01-02 15:04")
		}
		if it.Feedback != nil {
			row[6] = *it.Feedback
		}
		for c, v := range row {
			if err := setCell(f, sheet, c+1, r+2, v); err != nil {
				return err
			}
		}
	}
	return nil
}

// setCell skips nil values so absent grades stay empty cells.
func setCell(f *excelize.File, sheet string, col, row int, v any) error {
	if v == nil {
		return nil
	}
	cell := fmt.Sprintf("%s%d", columnName(col), row)
	if err := f.SetCellValue(sheet, cell, v); err != nil {
		return fmt.Errorf("set cell %s!%s: %w", sheet, cell, err)
	}
	return nil
}

func (w *GradesWorkbook) WriteTo(out io.Writer) (int64, error) {
	return w.File.WriteTo(out)
}

func (w *GradesWorkbook) Close() error { return w.File.Close() }
