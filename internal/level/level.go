// Package level derives a numeric nesting depth for each schedule row
// from its raw depth marker and row metadata.
package level

import (
	"regexp"
	"strings"

	"github.com/hstree/hstree/internal/schedule"
)

var (
	markerRun = regexp.MustCompile(`^-+$`)
	fourDigit = regexp.MustCompile(`^\d{4}$`)
)

// Assign computes levels for all rows in place-order, returning the same
// slice with Level populated. Rows that match no rule keep a nil level.
func Assign(rows []schedule.Row) []schedule.Row {
	for i := range rows {
		rows[i].Level = compute(&rows[i])
	}
	return rows
}

func compute(r *schedule.Row) *int {
	if isTariff(r.Remark) {
		return tariffOverride(r)
	}
	return seed(r)
}

// seed handles chapter headers and pure marker runs. Everything else
// (note rows, blanks) is left unclassified at this stage.
func seed(r *schedule.Row) *int {
	desc := strings.ToLower(strings.TrimSpace(r.Description))
	if strings.HasPrefix(desc, "chapter") {
		return intp(0)
	}
	raw := strings.TrimSpace(r.RawLevel)
	if raw != "" && markerRun.MatchString(raw) {
		return intp(len(raw))
	}
	return nil
}

// tariffOverride forces tariff-type rows onto the tree: a 4-digit HS
// code is a heading (level 1), a marker run nests one deeper than its
// length, and anything else falls back to level 1.
func tariffOverride(r *schedule.Row) *int {
	if fourDigit.MatchString(strings.TrimSpace(r.Code)) {
		return intp(1)
	}
	raw := strings.TrimSpace(r.RawLevel)
	if raw != "" && markerRun.MatchString(raw) {
		return intp(len(raw) + 1)
	}
	return intp(1)
}

func isTariff(remark string) bool {
	return strings.EqualFold(strings.TrimSpace(remark), "tariff")
}

func intp(v int) *int { return &v }
