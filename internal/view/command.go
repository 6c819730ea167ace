// Package view runs toggle commands against per-session copies of the
// generated documentation pages.
package view

import (
	"errors"
	"fmt"

	"github.com/ziadkadry99/docview/internal/toggler"
)

// Op names a toggle command.
type Op string

const (
	OpToggleSection Op = "toggle_section"
	OpToggleFolder  Op = "toggle_folder"
	OpSetLevel      Op = "set_level"
	OpToggleInherit Op = "toggle_inherit"
	OpFoldAll       Op = "fold_all"
	OpFoldRegion    Op = "fold_region"
	OpUpdateStripes Op = "update_stripes"
)

var (
	ErrUnknownOp     = errors.New("unknown command")
	ErrMissingTarget = errors.New("command requires a target")
	ErrInvalidLevel  = errors.New("expansion level must be at least 1")
	ErrPageNotFound  = errors.New("page not found")
)

// Command is one toggle request. Target carries the section, row, group or
// region identifier; Level is only read by set_level.
type Command struct {
	Op     Op     `json:"op"`
	Target string `json:"target,omitempty"`
	Level  int    `json:"level,omitempty"`
}

// Validate checks the command shape. It does not check that the target
// exists: commands on unknown targets are accepted and change nothing.
func (c Command) Validate() error {
	switch c.Op {
	case OpToggleSection, OpToggleFolder, OpToggleInherit, OpFoldRegion:
		if c.Target == "" {
			return fmt.Errorf("%s: %w", c.Op, ErrMissingTarget)
		}
	case OpSetLevel:
		if c.Level < 1 {
			return fmt.Errorf("%s %d: %w", c.Op, c.Level, ErrInvalidLevel)
		}
	case OpFoldAll, OpUpdateStripes:
	default:
		return fmt.Errorf("%q: %w", c.Op, ErrUnknownOp)
	}
	return nil
}

// Result is the reply to a command: the target's new state plus a snapshot
// of the whole page.
type Result struct {
	Op     Op               `json:"op"`
	Target string           `json:"target,omitempty"`
	Open   bool             `json:"open"`
	State  toggler.Snapshot `json:"state"`
}

// run dispatches a validated command onto doc.
func run(doc *toggler.Document, c Command) bool {
	switch c.Op {
	case OpToggleSection:
		return doc.ToggleSection(c.Target)
	case OpToggleFolder:
		return doc.ToggleFolder(c.Target)
	case OpSetLevel:
		doc.SetExpansionLevel(c.Level)
		return true
	case OpToggleInherit:
		return doc.ToggleInheritedGroup(c.Target)
	case OpFoldAll:
		return doc.FoldAll()
	case OpFoldRegion:
		return doc.FoldRegion(c.Target)
	case OpUpdateStripes:
		doc.UpdateStriping()
		return true
	}
	return false
}
