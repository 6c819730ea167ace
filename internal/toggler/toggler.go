package toggler

import "strings"

// ToggleSection flips a collapsible section and returns its new open state.
// An unknown id is ignored.
func (d *Document) ToggleSection(id string) bool {
	s, ok := d.sections[id]
	if !ok {
		return false
	}
	s.Open = !s.Open
	return s.Open
}

// UpdateStriping reassigns even/odd markers by position among visible rows.
// Hidden rows carry no marker.
func (d *Document) UpdateStriping() {
	n := 0
	for _, r := range d.rows {
		if !r.Visible {
			r.Stripe = StripeNone
			continue
		}
		if n%2 == 0 {
			r.Stripe = StripeEven
		} else {
			r.Stripe = StripeOdd
		}
		n++
	}
}

// SetExpansionLevel recomputes every row for the given level. Rows above the
// level are shown expanded, rows at the level are shown collapsed and deeper
// rows are hidden. The result does not depend on prior state.
func (d *Document) SetExpansionLevel(level int) {
	for _, r := range d.rows {
		depth := strings.Count(r.ID, "_")
		switch {
		case depth < level+1:
			r.Expanded = true
			r.Visible = true
		case depth == level+1:
			r.Expanded = false
			r.Visible = true
		default:
			r.Visible = false
		}
	}
	d.UpdateStriping()
}

// ToggleFolder collapses or expands one row and returns its new expand
// state. Collapsing hides the whole subtree. Expanding shows only the direct
// children, each reset to collapsed. A row without children is marked
// expanded and nothing else changes.
func (d *Document) ToggleFolder(rowID string) bool {
	i, ok := d.rowIndex[RowKey(rowID)]
	if !ok {
		return false
	}
	parent := d.rows[i]

	var children, descendants []*Row
	for _, r := range d.rows[i+1:] {
		if !r.isDescendantOf(parent) {
			continue
		}
		descendants = append(descendants, r)
		if len(r.Segments) == len(parent.Segments)+1 {
			children = append(children, r)
		}
	}

	if len(children) > 0 && children[0].Visible {
		parent.Expanded = false
		for _, r := range descendants {
			r.Visible = false
		}
	} else {
		parent.Expanded = true
		for _, c := range children {
			c.Expanded = false
			c.Visible = true
		}
	}

	d.UpdateStriping()
	return parent.Expanded
}

// ToggleInheritedGroup hides every row of the group when its first row is
// visible and shows them all otherwise. It returns the group's new open
// state.
func (d *Document) ToggleInheritedGroup(groupID string) bool {
	g, ok := d.groups[groupID]
	if !ok {
		return false
	}
	show := len(g.Visible) == 0 || !g.Visible[0]
	for i := range g.Visible {
		g.Visible[i] = show
	}
	g.Open = show
	return g.Open
}

// FoldAll closes every region when all are open and opens every region
// otherwise. The returned value is the new aggregate state.
func (d *Document) FoldAll() bool {
	open := !d.AllRegionsOpen()
	for _, r := range d.regions {
		r.Open = open
	}
	return open
}

// FoldRegion swaps a single region between its open and closed rendering and
// returns its new open state.
func (d *Document) FoldRegion(id string) bool {
	r, ok := d.regions[id]
	if !ok {
		return false
	}
	r.Open = !r.Open
	return r.Open
}
