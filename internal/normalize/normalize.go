// Package normalize maps loosely-typed web-service records onto the
// boundary entities. Every function is pure: the same input always yields
// an equal entity. Missing optional fields become absent; a missing id is
// reported as ErrMalformedPayload.
package normalize

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Spok95/lms-dashboard/internal/lms"
)

var ErrMalformedPayload = errors.New("malformed upstream payload")

func missing(entity, field string) error {
	return fmt.Errorf("%w: %s without %s", ErrMalformedPayload, entity, field)
}

func id(v *lms.Int) (string, bool) {
	if v == nil {
		return "", false
	}
	return v.String(), true
}

func optString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// optTime treats 0 as "not set", which is how the web service reports
// absent dates.
func optTime(v *lms.Int) *int64 {
	if v == nil || *v <= 0 {
		return nil
	}
	n := int64(*v)
	return &n
}

func optFloat(v *lms.Float) *float64 {
	if v == nil {
		return nil
	}
	f := float64(*v)
	return &f
}

func intOr(v *lms.Int, def int64) int64 {
	if v == nil {
		return def
	}
	return int64(*v)
}

// visible: the service omits the flag for always-visible items.
func visible(v *lms.Int) bool { return v == nil || *v != 0 }

// Percentage is round(grade / grademax * 100).
func Percentage(grade, grademax float64) int {
	return int(math.Round(grade / grademax * 100))
}
