// Copyright © 2025 Ttyform contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: control/compound.go
// Summary: CompoundStep assembles controls into one form element.

package control

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/ttyform/form"
	"github.com/framegrace/ttyform/termbuf"
	"github.com/framegrace/ttyform/theme"
)

// CompoundStep lays several controls out on one shared line, moving focus
// between them on Enter. The focused control's help text and drawer render
// as block lines beneath the step; dependency actions hide controls by
// emptying their inline segments.
//
// A CompoundStep is itself a form element; wrap it with Step to build the
// form step it occupies.
type CompoundStep struct {
	id       form.ElementId
	controls []Control
	deps     *DependencyState

	focused  int
	done     bool
	errorMsg string

	segmentIDs []termbuf.SegmentID
	blockLines []termbuf.LineID
	blockSegs  []termbuf.SegmentID
}

// NewCompoundStep creates a compound step over shared dependency state.
func NewCompoundStep(deps *DependencyState, controls ...Control) *CompoundStep {
	return &CompoundStep{controls: controls, deps: deps, focused: -1}
}

// Step wraps this compound step as a single-element form step.
func (s *CompoundStep) Step() *form.Step {
	return form.NewStep(s)
}

// Controls returns the step's controls in declaration order.
func (s *CompoundStep) Controls() []Control { return s.controls }

// Value returns the step's visible inline text, concatenated.
func (s *CompoundStep) Value() string {
	var sb strings.Builder
	for i, ctl := range s.controls {
		if s.hidden(i) {
			continue
		}
		text, _ := ctl.Text()
		sb.WriteString(text)
	}
	return sb.String()
}

func (s *CompoundStep) SetID(id form.ElementId) {
	s.id = id
	for i, ctl := range s.controls {
		if depID, _, ok := ctl.Evaluation(); ok {
			s.deps.Register(depID, id.Step, i)
		}
	}
}

// hidden reports whether a control's dependency currently hides it.
func (s *CompoundStep) hidden(index int) bool {
	depID, action, ok := s.controls[index].Dependency()
	if !ok {
		return false
	}
	value := s.deps.Get(depID)
	if action == Hide {
		return value
	}
	return !value
}

func (s *CompoundStep) focusable(index int) bool {
	return s.controls[index].Focusable() && !s.hidden(index)
}

func (s *CompoundStep) firstFocusable() int {
	for i := range s.controls {
		if s.focusable(i) {
			return i
		}
	}
	return -1
}

func (s *CompoundStep) nextFocusable(from int) int {
	for i := from + 1; i < len(s.controls); i++ {
		if s.focusable(i) {
			return i
		}
	}
	return -1
}

func (s *CompoundStep) Render(c *form.Coordinator) error {
	// One inline segment per control, minted on the first render.
	if len(s.segmentIDs) == 0 {
		for range s.controls {
			seg, err := c.AddSegment(s.id)
			if err != nil {
				return err
			}
			s.segmentIDs = append(s.segmentIDs, seg.ID())
		}
	}

	// Publish evaluations before resolving hides, so dependencies within
	// this step see this frame's values.
	for _, ctl := range s.controls {
		if depID, eval, ok := ctl.Evaluation(); ok {
			s.deps.Update(depID, ctl.Evaluate(eval))
		}
	}

	if s.focused < 0 || !s.focusable(s.focused) {
		s.focused = s.firstFocusable()
	}

	for i, ctl := range s.controls {
		seg := c.Segment(s.id, s.segmentIDs[i])
		if s.hidden(i) {
			seg.SetText("")
			continue
		}
		text, _ := ctl.Text()
		style := tcell.StyleDefault
		if fr, ok := ctl.(FocusRenderer); ok {
			text, _, style = fr.RenderText(i == s.focused && !s.done)
		}
		seg.SetText(text)
		seg.SetStyle(style)
	}

	if err := s.renderBlockRows(c); err != nil {
		return err
	}

	if !s.done && s.focused >= 0 {
		_, offset := s.controls[s.focused].Text()
		if fr, ok := s.controls[s.focused].(FocusRenderer); ok {
			_, offset, _ = fr.RenderText(true)
		}
		if offset >= 0 {
			c.SetCursor(termbuf.Position{
				Line:    c.InlineLineID(s.id),
				Segment: s.segmentIDs[s.focused],
				Column:  offset,
			})
		}
	}
	return nil
}

type blockRow struct {
	text  string
	style tcell.Style
}

// renderBlockRows reconciles the step's help and drawer block lines with
// what the focused control currently wants shown.
func (s *CompoundStep) renderBlockRows(c *form.Coordinator) error {
	var rows []blockRow
	if !s.done && s.focused >= 0 {
		ctl := s.controls[s.focused]
		if s.errorMsg != "" {
			rows = append(rows, blockRow{text: s.errorMsg, style: theme.ErrorStyle()})
		}
		if help := ctl.Help(); help != "" {
			rows = append(rows, blockRow{text: help, style: theme.HelpStyle()})
		}
		if items, selected := ctl.Drawer(); items != nil {
			for i, item := range items {
				style := theme.DrawerStyle()
				if i == selected {
					style = theme.DrawerSelectedStyle()
				}
				rows = append(rows, blockRow{text: item, style: style})
			}
		}
	}

	for i, row := range rows {
		var seg *termbuf.Segment
		if i >= len(s.blockLines) {
			line, err := c.AddLine(s.id)
			if err != nil {
				return err
			}
			s.blockLines = append(s.blockLines, line.ID())

			seg = line.AddSegment()
			s.blockSegs = append(s.blockSegs, seg.ID())
		} else {
			line := c.Line(s.id, s.blockLines[i])
			existing, err := line.Segment(s.blockSegs[i])
			if err != nil {
				return err
			}
			seg = existing
		}
		seg.SetText(row.text)
		seg.SetStyle(row.style)
	}

	for len(s.blockLines) > len(rows) {
		last := len(s.blockLines) - 1
		if err := c.RemoveLine(s.id, s.blockLines[last]); err != nil {
			return err
		}
		s.blockLines = s.blockLines[:last]
		s.blockSegs = s.blockSegs[:last]
	}
	return nil
}

func (s *CompoundStep) UpdateLayout(*form.LayoutAccessor) {}

func (s *CompoundStep) IsInput() bool {
	return s.firstFocusable() >= 0
}

// CapturesEnter is always true: Enter moves focus between this step's own
// controls until the last one yields to the driver.
func (s *CompoundStep) CapturesEnter() bool { return true }

func (s *CompoundStep) Update(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyEnter {
		if s.focused >= 0 {
			if v, ok := s.controls[s.focused].(Validator); ok {
				if msg := v.Validate(); msg != "" {
					s.errorMsg = msg
					return false
				}
			}
		}
		s.errorMsg = ""

		next := s.nextFocusable(s.focused)
		if next < 0 {
			s.done = true
			return true
		}
		s.focused = next
		return false
	}

	s.done = false
	s.errorMsg = ""
	if s.focused >= 0 {
		s.controls[s.focused].Update(ev)
	}
	return false
}
