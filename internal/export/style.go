package export

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ApplyDefaultExcelFormatting applies:
// - bold header (row 1),
// - auto-filter on row 1,
// - approximate auto-width for all data columns present on the sheet.
func ApplyDefaultExcelFormatting(f *excelize.File, sheet string) error {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	cols := 0
	for _, r := range rows {
		cols = max(cols, len(r))
	}
	if cols == 0 {
		return nil
	}

	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = f.SetCellStyle(sheet, "A1", fmt.Sprintf("%s1", columnName(cols)), style)
	}
	_ = f.AutoFilter(sheet, fmt.Sprintf("A1:%s1", columnName(cols)), nil)

	widths := make([]float64, cols)
	for c := range widths {
		widths[c] = 10
	}
	for rIdx, row := range rows {
		for cIdx := 0; cIdx < cols && cIdx < len(row); cIdx++ {
			w := float64(visualLen(row[cIdx])) * 1.1
			if rIdx == 0 {
				w += 1.5
			}
			// cap to avoid overly wide columns (feedback, long names)
			widths[cIdx] = max(widths[cIdx], min(w, 60))
		}
	}
	for i := 0; i < cols; i++ {
		col := columnName(i + 1)
		_ = f.SetColWidth(sheet, col, col, widths[i])
	}
	return nil
}

// GradesFilename builds the download name, e.g. "Grades — Ana Lima — 2024-05-01.xlsx".
func GradesFilename(student, date string) string {
	base := fmt.Sprintf("Grades — %s — %s.xlsx", cleanName(student), cleanName(date))
	return sanitizeFileName(base)
}

func columnName(n int) string {
	// 1 -> A; 27 -> AA
	s := ""
	for n > 0 {
		n--
		s = string(rune('A'+(n%26))) + s
		n /= 26
	}
	return s
}

// visualLen approximates text width by counting runes, treating tabs as 4 chars.
func visualLen(s string) int {
	n := 0
	for _, r := range s {
		if r == '\t' {
			n += 4
		} else {
			n++
		}
	}
	return n
}

var invalidFileRe = regexp.MustCompile(`[\\/:*?"<>|]+`)

func sanitizeFileName(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Join(strings.Fields(s), " ")
	return invalidFileRe.ReplaceAllString(s, "_")
}

var invalidSheetRe = regexp.MustCompile(`[\[\]:*?/\\]+`)

// sheetName makes name a valid, unique worksheet title (at most 31 runes).
func sheetName(name string, used map[string]bool) string {
	base := strings.TrimSpace(invalidSheetRe.ReplaceAllString(name, " "))
	base = strings.Trim(base, "'")
	if base == "" {
		base = "Course"
	}
	base = truncateRunes(base, 31)
	candidate := base
	for i := 2; used[strings.ToLower(candidate)]; i++ {
		suffix := fmt.Sprintf(" (%d)", i)
		candidate = truncateRunes(base, 31-len(suffix)) + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n]))
}

func cleanName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "—"
	}
	return s
}
