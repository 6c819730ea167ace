// Package toggler holds the open/closed state of a generated documentation
// page: directory-tree rows, collapsible sections, inherited-member groups
// and folded source regions. Rendering is a projection of this state; nothing
// here reads or writes markup.
//
// A Document is single-writer. Callers that share one across goroutines must
// serialise access themselves.
package toggler

import "strings"

// Stripe is the alternating shade marker of a visible directory row.
type Stripe int

const (
	StripeNone Stripe = iota
	StripeEven
	StripeOdd
)

func (s Stripe) String() string {
	switch s {
	case StripeEven:
		return "even"
	case StripeOdd:
		return "odd"
	default:
		return ""
	}
}

// Row is one entry of the directory tree table.
type Row struct {
	ID        string   // Full element id, e.g. "row_0_2_".
	Segments  []string // Path segments parsed from the id, e.g. ["0", "2"].
	Visible   bool
	Expanded  bool // Own folder icon/arrow state, never an ancestor's.
	HasFolder bool // Whether the row renders a folder icon and arrow.
	Stripe    Stripe
}

// Level is the number of underscores in the row id. A top-level row
// ("row_0_") has level 2.
func (r *Row) Level() int {
	return len(r.Segments) + 1
}

// isDescendantOf reports whether r sits strictly below p in the tree.
func (r *Row) isDescendantOf(p *Row) bool {
	if len(r.Segments) <= len(p.Segments) {
		return false
	}
	for i, seg := range p.Segments {
		if r.Segments[i] != seg {
			return false
		}
	}
	return true
}

// Section is a collapsible block with a summary and a content rendering.
type Section struct {
	ID   string
	Open bool
}

// InheritedGroup is the set of member-table rows inherited from one base.
type InheritedGroup struct {
	ID      string
	Visible []bool // Per member row, in document order.
	Open    bool
}

// FoldRegion is a foldable block of source lines.
type FoldRegion struct {
	ID    string
	Start string
	End   string
	Open  bool
}

// Document is the explicit state table for one rendered page.
type Document struct {
	Variant Variant

	rows     []*Row
	rowIndex map[string]int

	sections     map[string]*Section
	sectionOrder []string

	groups     map[string]*InheritedGroup
	groupOrder []string

	regions     map[string]*FoldRegion
	regionOrder []string
}

// New creates an empty Document for a page of the given variant.
func New(variant Variant) *Document {
	return &Document{
		Variant:  variant,
		rowIndex: make(map[string]int),
		sections: make(map[string]*Section),
		groups:   make(map[string]*InheritedGroup),
		regions:  make(map[string]*FoldRegion),
	}
}

// RowKey normalises a row identifier to its "0_2_" form. It accepts the
// full element id ("row_0_2_") as well as the bare path with or without
// the trailing underscore.
func RowKey(id string) string {
	key := strings.TrimPrefix(strings.TrimSpace(id), "row_")
	if key != "" && !strings.HasSuffix(key, "_") {
		key += "_"
	}
	return key
}

// RowID returns the element id for a row identifier in any accepted form.
func RowID(id string) string {
	return "row_" + RowKey(id)
}

func parseSegments(key string) []string {
	trimmed := strings.TrimSuffix(key, "_")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "_")
}

// AddRow appends a row in document order. Adding an id twice replaces the
// earlier state but keeps its position.
func (d *Document) AddRow(id string, visible, expanded, hasFolder bool) *Row {
	key := RowKey(id)
	row := &Row{
		ID:        "row_" + key,
		Segments:  parseSegments(key),
		Visible:   visible,
		Expanded:  expanded,
		HasFolder: hasFolder,
	}
	if i, ok := d.rowIndex[key]; ok {
		d.rows[i] = row
		return row
	}
	d.rowIndex[key] = len(d.rows)
	d.rows = append(d.rows, row)
	return row
}

// AddSection registers a collapsible section.
func (d *Document) AddSection(id string, open bool) *Section {
	s := &Section{ID: id, Open: open}
	if _, ok := d.sections[id]; !ok {
		d.sectionOrder = append(d.sectionOrder, id)
	}
	d.sections[id] = s
	return s
}

// AddGroup registers an inherited-member group. The group counts as open
// when its first row is visible.
func (d *Document) AddGroup(id string, visible []bool) *InheritedGroup {
	g := &InheritedGroup{
		ID:      id,
		Visible: append([]bool(nil), visible...),
		Open:    len(visible) > 0 && visible[0],
	}
	if _, ok := d.groups[id]; !ok {
		d.groupOrder = append(d.groupOrder, id)
	}
	d.groups[id] = g
	return g
}

// AddRegion registers a fold region.
func (d *Document) AddRegion(id, start, end string, open bool) *FoldRegion {
	r := &FoldRegion{ID: id, Start: start, End: end, Open: open}
	if _, ok := d.regions[id]; !ok {
		d.regionOrder = append(d.regionOrder, id)
	}
	d.regions[id] = r
	return r
}

// Rows returns the directory rows in document order.
func (d *Document) Rows() []*Row { return d.rows }

// Row looks up a row by identifier in any accepted form.
func (d *Document) Row(id string) (*Row, bool) {
	i, ok := d.rowIndex[RowKey(id)]
	if !ok {
		return nil, false
	}
	return d.rows[i], true
}

// Section looks up a section by id.
func (d *Document) Section(id string) (*Section, bool) {
	s, ok := d.sections[id]
	return s, ok
}

// Sections returns the sections in registration order.
func (d *Document) Sections() []*Section {
	out := make([]*Section, 0, len(d.sectionOrder))
	for _, id := range d.sectionOrder {
		out = append(out, d.sections[id])
	}
	return out
}

// Group looks up an inherited-member group by id.
func (d *Document) Group(id string) (*InheritedGroup, bool) {
	g, ok := d.groups[id]
	return g, ok
}

// Groups returns the groups in registration order.
func (d *Document) Groups() []*InheritedGroup {
	out := make([]*InheritedGroup, 0, len(d.groupOrder))
	for _, id := range d.groupOrder {
		out = append(out, d.groups[id])
	}
	return out
}

// Region looks up a fold region by id.
func (d *Document) Region(id string) (*FoldRegion, bool) {
	r, ok := d.regions[id]
	return r, ok
}

// Regions returns the fold regions in registration order.
func (d *Document) Regions() []*FoldRegion {
	out := make([]*FoldRegion, 0, len(d.regionOrder))
	for _, id := range d.regionOrder {
		out = append(out, d.regions[id])
	}
	return out
}

// AllRegionsOpen reports whether every fold region shows its open rendering.
// A page without regions counts as all open.
func (d *Document) AllRegionsOpen() bool {
	for _, r := range d.regions {
		if !r.Open {
			return false
		}
	}
	return true
}
