// Package flatten projects a classification forest into self-contained
// flat records, resolving breadcrumbs, parent linkage, and the notes and
// policy text each node inherits from its ancestors.
package flatten

import (
	"strings"

	"github.com/hstree/hstree/internal/schedule"
)

// Flatten walks the forest depth-first and emits one record per node,
// parent before children. The forest is read-only during the walk.
func Flatten(forest schedule.Forest) []schedule.FlatRecord {
	var records []schedule.FlatRecord
	for _, root := range forest {
		visit(root, nil, &records)
	}
	return records
}

func visit(node *schedule.Node, ancestors []*schedule.Node, records *[]schedule.FlatRecord) {
	*records = append(*records, project(node, ancestors))

	// Each child gets its own copy of the chain so a sibling's
	// traversal can never see another branch's ancestors.
	chain := make([]*schedule.Node, 0, len(ancestors)+1)
	chain = append(chain, ancestors...)
	chain = append(chain, node)
	for _, child := range node.Children {
		visit(child, chain, records)
	}
}

func project(node *schedule.Node, ancestors []*schedule.Node) schedule.FlatRecord {
	rec := schedule.FlatRecord{
		ID:            node.Code,
		Text:          node.Description,
		Level:         node.Level,
		Breadcrumb:    breadcrumb(node, ancestors),
		Notes:         inheritedNotes(node, ancestors),
		Unit:          node.Unit,
		Remark:        node.Remark,
		BasicDutySch:  node.BasicDutySch,
		BasicDutyNtfn: node.BasicDutyNtfn,
		IGST:          node.IGST,
		SWS:           node.SWS,
		TotalDuty:     node.TotalDuty,
		PrefDuty:      node.PrefDuty,
		ImportPolicy:  inheritPolicy(node.ImportPolicy, ancestors, importPolicy),
		ExportPolicy:  inheritPolicy(node.ExportPolicy, ancestors, exportPolicy),
	}

	if len(ancestors) > 0 {
		parent := ancestors[len(ancestors)-1]
		rec.ParentID = parent.Code
		rec.ParentText = parent.Description
	}

	return rec
}

// breadcrumb joins every ancestor description and the node's own with " > ".
func breadcrumb(node *schedule.Node, ancestors []*schedule.Node) string {
	parts := make([]string, 0, len(ancestors)+1)
	for _, anc := range ancestors {
		parts = append(parts, anc.Description)
	}
	parts = append(parts, node.Description)
	return strings.Join(parts, " > ")
}

// inheritedNotes puts the node's own notes first, then the notes of
// every level-0 or level-1 ancestor in root-to-parent order. Duplicates
// across ancestors are kept.
func inheritedNotes(node *schedule.Node, ancestors []*schedule.Node) []string {
	notes := make([]string, 0, len(node.Notes))
	notes = append(notes, node.Notes...)
	for _, anc := range ancestors {
		if anc.Level != nil && (*anc.Level == 0 || *anc.Level == 1) {
			notes = append(notes, anc.Notes...)
		}
	}
	return notes
}

// inheritPolicy keeps the node's own value when non-empty, otherwise
// scans ancestors nearest-first for the first non-empty value.
func inheritPolicy(own string, ancestors []*schedule.Node, get func(*schedule.Node) string) string {
	if own != "" {
		return own
	}
	for i := len(ancestors) - 1; i >= 0; i-- {
		if v := get(ancestors[i]); v != "" {
			return v
		}
	}
	return ""
}

func importPolicy(n *schedule.Node) string { return n.ImportPolicy }
func exportPolicy(n *schedule.Node) string { return n.ExportPolicy }
