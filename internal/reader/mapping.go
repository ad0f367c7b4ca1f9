package reader

import (
	"regexp"
	"strings"
)

// Mapping translates source column headings into the normalized field
// names the pipeline understands.
type Mapping struct {
	Columns map[string]string
}

// DefaultMapping covers the headings tariff schedule workbooks use.
func DefaultMapping() Mapping {
	return Mapping{Columns: map[string]string{
		"HS Code":                           "hs_code",
		"Item Description":                  "item_description",
		"Level":                             "level",
		"Unit":                              "unit",
		"Basic Duty (SCH)":                  "basic_duty_sch_pct",
		"Basic Duty (NTFN)":                 "basic_duty_ntfn_pct",
		"Specific Duty (Rs)":                "specific_duty_inr",
		"IGST":                              "igst_pct",
		"10% SWS":                           "sws_10pct",
		"10%SWS":                            "sws_10pct",
		"Total duty with SWS of 10% on BCD": "total_duty_sws_10pct_on_bcd",
		"Total Duty Specific":               "total_duty_specific_pct",
		"Pref. Duty (A)":                    "pref_duty_a_pct",
		"Import Policy":                     "import_policy",
		"Export Policy":                     "export_policy",
		"Non Tariff Barriers":               "non_tariff_barriers",
		"Remark":                            "remark",
	}}
}

// Merge overlays extra column translations onto the mapping.
func (m Mapping) Merge(extra map[string]string) Mapping {
	if len(extra) == 0 {
		return m
	}
	out := make(map[string]string, len(m.Columns)+len(extra))
	for k, v := range m.Columns {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return Mapping{Columns: out}
}

var (
	innerSpaceRe = regexp.MustCompile(`\s+`)
	nonWordRe    = regexp.MustCompile(`[^\w]`)
)

// Normalize resolves one source heading: trim, collapse inner
// whitespace, look up the mapping, and otherwise fall back to
// snake_case.
func (m Mapping) Normalize(header string) string {
	h := innerSpaceRe.ReplaceAllString(strings.TrimSpace(header), " ")
	if mapped, ok := m.Columns[h]; ok {
		return mapped
	}
	s := strings.ToLower(h)
	s = strings.ReplaceAll(s, " ", "_")
	return nonWordRe.ReplaceAllString(s, "_")
}
