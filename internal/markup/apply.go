package markup

import (
	"github.com/ziadkadry99/docview/internal/toggler"
)

// Apply projects doc onto the page. Elements the state refers to but the
// page lacks are skipped, as are state entries the page has no element for.
func (p *Page) Apply(doc *toggler.Document) {
	for _, rn := range p.rows {
		row, ok := doc.Row(rn.id)
		if !ok {
			continue
		}
		setDisplay(rn.tr, row.Visible, "")
		setClass(rn.tr, "even", row.Stripe == toggler.StripeEven)
		setClass(rn.tr, "odd", row.Stripe == toggler.StripeOdd)
		if !row.HasFolder {
			continue
		}
		if rn.icon != nil {
			setClass(rn.icon, toggler.ClassFolderOpen, row.Expanded)
			setClass(rn.icon, toggler.ClassFolderClosed, !row.Expanded)
		}
		setText(rn.arrow, toggler.Arrow(row.Expanded))
	}

	for _, sn := range p.sections {
		s, ok := doc.Section(sn.id)
		if !ok {
			continue
		}
		setDisplay(sn.content, s.Open, "")
		setDisplay(sn.summary, !s.Open, "")
		setClass(sn.container, "opened", s.Open)
		setClass(sn.container, "closed", !s.Open)
		if sn.trigger != nil {
			setAttr(sn.trigger, "src", toggler.TriggerSrc(attr(sn.trigger, "src"), s.Open))
		}
	}

	for _, gn := range p.groups {
		g, ok := doc.Group(gn.id)
		if !ok {
			continue
		}
		for i, tr := range gn.rows {
			if i < len(g.Visible) {
				setDisplay(tr, g.Visible[i], "table-row")
			}
		}
		if gn.header != nil {
			setAttr(gn.header, "src", toggler.TriggerSrc(attr(gn.header, "src"), g.Open))
		}
	}

	for _, rn := range p.regions {
		r, ok := doc.Region(rn.id)
		if !ok {
			continue
		}
		setDisplay(rn.open, r.Open, "")
		if rn.closed != nil {
			setDisplay(rn.closed, !r.Open, "")
		}
	}

	if p.foldAll != nil {
		setStyle(p.foldAll, "background-image", toggler.FoldIcon(doc.AllRegionsOpen(), doc.Variant))
	}
}
