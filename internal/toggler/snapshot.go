package toggler

// RowState is the serialisable state of one directory row.
type RowState struct {
	ID       string `json:"id"`
	Visible  bool   `json:"visible"`
	Expanded bool   `json:"expanded"`
	Stripe   string `json:"stripe,omitempty"`
}

// ToggleState is the serialisable state of a section, group or region.
type ToggleState struct {
	ID   string `json:"id"`
	Open bool   `json:"open"`
}

// Snapshot is a read-only copy of a Document's state.
type Snapshot struct {
	Variant        string        `json:"variant"`
	Rows           []RowState    `json:"rows"`
	Sections       []ToggleState `json:"sections"`
	Groups         []ToggleState `json:"groups"`
	Regions        []ToggleState `json:"regions"`
	AllRegionsOpen bool          `json:"all_regions_open"`
}

// Snapshot copies the current state in document order.
func (d *Document) Snapshot() Snapshot {
	snap := Snapshot{
		Variant:        d.Variant.String(),
		Rows:           make([]RowState, 0, len(d.rows)),
		Sections:       make([]ToggleState, 0, len(d.sectionOrder)),
		Groups:         make([]ToggleState, 0, len(d.groupOrder)),
		Regions:        make([]ToggleState, 0, len(d.regionOrder)),
		AllRegionsOpen: d.AllRegionsOpen(),
	}
	for _, r := range d.rows {
		snap.Rows = append(snap.Rows, RowState{
			ID:       r.ID,
			Visible:  r.Visible,
			Expanded: r.Expanded,
			Stripe:   r.Stripe.String(),
		})
	}
	for _, s := range d.Sections() {
		snap.Sections = append(snap.Sections, ToggleState{ID: s.ID, Open: s.Open})
	}
	for _, g := range d.Groups() {
		snap.Groups = append(snap.Groups, ToggleState{ID: g.ID, Open: g.Open})
	}
	for _, r := range d.Regions() {
		snap.Regions = append(snap.Regions, ToggleState{ID: r.ID, Open: r.Open})
	}
	return snap
}
