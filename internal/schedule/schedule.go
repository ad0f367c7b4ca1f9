package schedule

// Row is one line of a normalized tariff schedule table.
type Row struct {
	Code        string // HS classification code, whitespace stripped
	Description string // Item description text
	RawLevel    string // Source depth marker, e.g. "--" (may be empty)
	Remark      string // Row-type tag: "Tariff", "notes", or free text
	Unit        string // Unit of quantity

	// Display-ready duty strings, produced by the duty package and
	// carried through the tree untouched.
	BasicDutySch  string
	BasicDutyNtfn string
	IGST          string
	SWS           string
	TotalDuty     string
	PrefDuty      string

	// Policy text with trailing note references split off.
	ImportPolicy     string
	ExportPolicy     string
	ImportPolicyRefs []string
	ExportPolicyRefs []string

	// Computed nesting depth. Nil means the level assigner could not
	// classify the row (blank separators and the like).
	Level *int
}

// Field resolves a normalized column name against the row. The second
// return is false for names this schema does not carry, so callers can
// skip columns that were configured but absent.
func (r *Row) Field(name string) (string, bool) {
	switch name {
	case "item_description", "description":
		return r.Description, true
	case "hs_code":
		return r.Code, true
	case "unit":
		return r.Unit, true
	case "remark":
		return r.Remark, true
	case "import_policy_text", "import_policy":
		return r.ImportPolicy, true
	case "export_policy_text", "export_policy":
		return r.ExportPolicy, true
	}
	return "", false
}

// Node is one classification entry in the reconstructed tree.
type Node struct {
	Code        string `json:"hs_code"`
	Description string `json:"item_description"`
	RawLevel    string `json:"raw_level,omitempty"`
	Remark      string `json:"remark,omitempty"`
	Unit        string `json:"unit,omitempty"`
	Level       *int   `json:"level"`

	BasicDutySch  string `json:"basic_duty_sch_pct_display,omitempty"`
	BasicDutyNtfn string `json:"basic_duty_ntfn_pct_display,omitempty"`
	IGST          string `json:"igst_pct_display,omitempty"`
	SWS           string `json:"sws_10pct_display,omitempty"`
	TotalDuty     string `json:"total_duty_sws_10pct_on_bcd_display,omitempty"`
	PrefDuty      string `json:"pref_duty_a_pct_display,omitempty"`

	ImportPolicy     string   `json:"import_policy_text,omitempty"`
	ExportPolicy     string   `json:"export_policy_text,omitempty"`
	ImportPolicyRefs []string `json:"import_policy_note_refs,omitempty"`
	ExportPolicyRefs []string `json:"export_policy_note_refs,omitempty"`

	Notes    []string `json:"notes"`
	Children []*Node  `json:"children"`
}

// Forest is the ordered list of root nodes for one schedule.
type Forest []*Node

// Depth returns the node's level, treating unset as 0 for attachment.
func (n *Node) Depth() int {
	if n.Level == nil {
		return 0
	}
	return *n.Level
}

// FlatRecord is one self-contained output document: a node plus the
// context it inherits from its ancestors.
type FlatRecord struct {
	ID         string   `json:"id"`
	Text       string   `json:"text"`
	Level      *int     `json:"level"`
	ParentID   string   `json:"parent_id,omitempty"`
	ParentText string   `json:"parent_text,omitempty"`
	Breadcrumb string   `json:"breadcrumb"`
	Notes      []string `json:"notes"`
	Unit       string   `json:"unit,omitempty"`
	Remark     string   `json:"remark,omitempty"`

	BasicDutySch  string `json:"basic_duty_sch"`
	BasicDutyNtfn string `json:"basic_duty_ntfn"`
	IGST          string `json:"igst"`
	SWS           string `json:"sws_10pct"`
	TotalDuty     string `json:"total_duty_sws_10pct_on_bcd"`
	PrefDuty      string `json:"pref_duty"`

	ImportPolicy string `json:"import_policy,omitempty"`
	ExportPolicy string `json:"export_policy,omitempty"`
}

// CountNodes returns the total number of nodes in the forest.
func (f Forest) CountNodes() int {
	n := 0
	var walk func(nodes []*Node)
	walk = func(nodes []*Node) {
		for _, node := range nodes {
			n++
			walk(node.Children)
		}
	}
	walk(f)
	return n
}
