// Package hierarchy reconstructs the nested classification tree from an
// ordered, level-annotated row sequence.
package hierarchy

import (
	"strings"

	"github.com/hstree/hstree/internal/schedule"
)

// Options controls which columns the builder harvests from note rows.
type Options struct {
	// NoteFields lists the normalized column names whose text is
	// collected from note rows. Names a row does not carry are skipped.
	NoteFields []string
}

// DefaultOptions harvests the description column only.
func DefaultOptions() Options {
	return Options{NoteFields: []string{"item_description"}}
}

// Build runs a single forward pass over the rows and produces the
// forest. It never fails: unattachable notes are dropped and nodes with
// no open shallower ancestor are promoted to root, so a malformed
// schedule degrades instead of aborting.
func Build(rows []schedule.Row, opts Options) schedule.Forest {
	if len(opts.NoteFields) == 0 {
		opts = DefaultOptions()
	}

	var roots schedule.Forest
	// Most recently created node per depth, scoped to this call.
	open := make(map[int]*schedule.Node)

	for i := range rows {
		row := &rows[i]
		if isNoteRow(row.Remark) {
			attachNotes(row, open, opts.NoteFields)
			continue
		}

		node := newNode(row)
		depth := node.Depth()

		if depth == 0 {
			roots = append(roots, node)
		} else if parent := nearestOpenAncestor(open, depth); parent != nil {
			parent.Children = append(parent.Children, node)
		} else {
			// Discontinuity: no shallower node is open yet.
			roots = append(roots, node)
		}

		open[depth] = node
	}

	return roots
}

// attachNotes appends the row's configured note columns to the open
// level-1 node, falling back to level 0. A note before any structural
// row has no target and is dropped.
func attachNotes(row *schedule.Row, open map[int]*schedule.Node, fields []string) {
	target := open[1]
	if target == nil {
		target = open[0]
	}
	if target == nil {
		return
	}
	for _, name := range fields {
		text, ok := row.Field(name)
		if !ok {
			continue
		}
		text = strings.TrimSpace(text)
		if text != "" {
			target.Notes = append(target.Notes, text)
		}
	}
}

// nearestOpenAncestor picks the open node with the largest depth
// strictly below the given depth, or nil when none exists.
func nearestOpenAncestor(open map[int]*schedule.Node, depth int) *schedule.Node {
	best := -1
	for d := range open {
		if d < depth && d > best {
			best = d
		}
	}
	if best < 0 {
		return nil
	}
	return open[best]
}

func isNoteRow(remark string) bool {
	return strings.ToLower(strings.TrimSpace(remark)) == "notes"
}

func newNode(row *schedule.Row) *schedule.Node {
	return &schedule.Node{
		Code:             row.Code,
		Description:      row.Description,
		RawLevel:         row.RawLevel,
		Remark:           row.Remark,
		Unit:             row.Unit,
		Level:            row.Level,
		BasicDutySch:     row.BasicDutySch,
		BasicDutyNtfn:    row.BasicDutyNtfn,
		IGST:             row.IGST,
		SWS:              row.SWS,
		TotalDuty:        row.TotalDuty,
		PrefDuty:         row.PrefDuty,
		ImportPolicy:     row.ImportPolicy,
		ExportPolicy:     row.ExportPolicy,
		ImportPolicyRefs: row.ImportPolicyRefs,
		ExportPolicyRefs: row.ExportPolicyRefs,
		Notes:            []string{},
		Children:         []*schedule.Node{},
	}
}
