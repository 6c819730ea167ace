package toggler

import (
	"fmt"
	"strings"
)

// Variant selects between the two relative path depths a generated page can
// live at. Root pages reference assets directly, nested pages (source
// listings two directories down) reference them through "../../".
type Variant int

const (
	VariantRoot Variant = iota
	VariantNested
)

// ParseVariant accepts "root"/"nested" or their numeric forms "0"/"1".
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "root", "0":
		return VariantRoot, nil
	case "nested", "1":
		return VariantNested, nil
	default:
		return VariantRoot, fmt.Errorf("invalid theme variant %q: must be root or nested", s)
	}
}

func (v Variant) String() string {
	if v == VariantNested {
		return "nested"
	}
	return "root"
}

// Prefix returns the relative path from a page of this variant back to the
// site root.
func (v Variant) Prefix() string {
	if v == VariantNested {
		return "../../"
	}
	return ""
}

// Folder row glyphs and classes.
const (
	GlyphExpanded  = "▼"
	GlyphCollapsed = "►"

	ClassFolderOpen   = "iconfopen"
	ClassFolderClosed = "iconfclosed"
)

// Trigger image resources for sections and inherited-member headers.
const (
	TriggerOpen   = "open.png"
	TriggerClosed = "closed.png"
)

// FolderClass returns the icon class for a row's own expand state.
func FolderClass(expanded bool) string {
	if expanded {
		return ClassFolderOpen
	}
	return ClassFolderClosed
}

// Arrow returns the arrow glyph for a row's own expand state.
func Arrow(expanded bool) string {
	if expanded {
		return GlyphExpanded
	}
	return GlyphCollapsed
}

// Trigger returns the trigger image name for an open or closed section.
func Trigger(open bool) string {
	if open {
		return TriggerOpen
	}
	return TriggerClosed
}

// TriggerSrc rewrites an existing image src to the given state, keeping any
// directory prefix. A src that carries neither state name gets the state
// name appended.
func TriggerSrc(current string, open bool) string {
	base := current
	for _, suffix := range []string{TriggerClosed, TriggerOpen} {
		if strings.HasSuffix(base, suffix) {
			base = strings.TrimSuffix(base, suffix)
			break
		}
	}
	return base + Trigger(open)
}

// FoldIcon returns the CSS background-image value for a fold glyph. Open
// regions show minus (click to fold), closed ones show plus.
func FoldIcon(open bool, v Variant) string {
	name := "plus.svg"
	if open {
		name = "minus.svg"
	}
	return fmt.Sprintf("url('%s%s')", v.Prefix(), name)
}
