package reader

import (
	"regexp"
	"strings"

	"github.com/hstree/hstree/internal/duty"
	"github.com/hstree/hstree/internal/policy"
	"github.com/hstree/hstree/internal/schedule"
)

var allSpaceRe = regexp.MustCompile(`\s+`)

// rowsFromTable converts a header row plus cell rows into normalized
// schedule rows: headers are mapped, cells trimmed, HS codes stripped
// of whitespace, duty cells rendered for display, and policy cells
// split from their note references. Columns the schema does not know
// are ignored; missing columns simply leave fields empty.
func rowsFromTable(headers []string, cells [][]string, m Mapping) []schedule.Row {
	fields := make([]string, len(headers))
	for i, h := range headers {
		fields[i] = m.Normalize(h)
	}

	rows := make([]schedule.Row, 0, len(cells))
	for _, cell := range cells {
		var row schedule.Row
		for i, field := range fields {
			if i >= len(cell) {
				break
			}
			setField(&row, field, strings.TrimSpace(cell[i]))
		}
		rows = append(rows, row)
	}
	return rows
}

func setField(row *schedule.Row, field, value string) {
	switch field {
	case "hs_code":
		row.Code = allSpaceRe.ReplaceAllString(value, "")
	case "item_description":
		row.Description = value
	case "level":
		row.RawLevel = value
	case "remark":
		row.Remark = value
	case "unit":
		row.Unit = value
	case "basic_duty_sch_pct":
		row.BasicDutySch = duty.Display(value)
	case "basic_duty_ntfn_pct":
		row.BasicDutyNtfn = duty.Display(value)
	case "igst_pct":
		row.IGST = duty.Display(value)
	case "sws_10pct":
		row.SWS = duty.Display(value)
	case "total_duty_sws_10pct_on_bcd":
		row.TotalDuty = duty.Display(value)
	case "pref_duty_a_pct":
		row.PrefDuty = duty.Display(value)
	case "import_policy":
		row.ImportPolicy, row.ImportPolicyRefs = policy.Extract(value)
	case "export_policy":
		row.ExportPolicy, row.ExportPolicyRefs = policy.Extract(value)
	}
}
