// Copyright © 2025 Ttyform contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: form/scenario_test.go
// Summary: Drives a three-state element through split and join transitions.

package form_test

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/ttyform/form"
	"github.com/framegrace/ttyform/termbuf"
)

// shifter renders one of three shapes and derives the transition from what it
// currently owns, like a selection control growing and shrinking a preview:
//
//	state 0: a single inline segment
//	state 1: a second inline segment inserted before the first
//	state 2: back to one inline segment, plus one private block line
type shifter struct {
	id    form.ElementId
	state int

	base  termbuf.SegmentID
	extra termbuf.SegmentID
	block termbuf.LineID

	hasBase  bool
	hasExtra bool
	hasBlock bool
}

func (s *shifter) SetID(id form.ElementId) { s.id = id }

func (s *shifter) Render(c *form.Coordinator) error {
	if !s.hasBase {
		seg, err := c.AddSegment(s.id)
		if err != nil {
			return err
		}
		seg.SetText("D0S0")
		s.base = seg.ID()
		s.hasBase = true
	}

	wantExtra := s.state == 1
	if wantExtra && !s.hasExtra {
		seg, err := c.InsertSegment(s.id, 0)
		if err != nil {
			return err
		}
		seg.SetText("D0S1")
		s.extra = seg.ID()
		s.hasExtra = true
	}
	if !wantExtra && s.hasExtra {
		if err := c.RemoveSegment(s.id, s.extra); err != nil {
			return err
		}
		s.hasExtra = false
	}

	wantBlock := s.state == 2
	if wantBlock && !s.hasBlock {
		line, err := c.AddLine(s.id)
		if err != nil {
			return err
		}
		line.AddSegment().SetText("D0S2")
		s.block = line.ID()
		s.hasBlock = true
	}
	if !wantBlock && s.hasBlock {
		if err := c.RemoveLine(s.id, s.block); err != nil {
			return err
		}
		s.hasBlock = false
	}
	return nil
}

func (s *shifter) UpdateLayout(*form.LayoutAccessor) {}
func (s *shifter) IsInput() bool                     { return false }
func (s *shifter) CapturesEnter() bool               { return false }
func (s *shifter) Update(*tcell.EventKey) bool       { return false }

func TestShapeShiftingElementSplitsAndRejoins(t *testing.T) {
	d := &shifter{}
	e1, e2 := &stub{}, &stub{}

	buf := termbuf.New(nullDriver{})
	c := form.NewCoordinator(buf)
	c.InitializeElements(form.New(form.NewStep(d, e1, e2)))

	render := func() {
		t.Helper()
		if err := d.Render(c); err != nil {
			t.Fatalf("render state %d: %v", d.state, err)
		}
	}

	render()
	addSegmentText(t, c, e1.id, "E1")
	addSegmentText(t, c, e2.id, "E2")
	wantTexts(t, buf, "D0S0E1E2")

	// state 0 -> 1: a new segment slots in before the existing one while
	// the group stays intact.
	d.state = 1
	render()
	wantTexts(t, buf, "D0S1D0S0E1E2")

	// state 1 -> 2: the block line splits the group; the literals move to
	// their own line after it.
	d.state = 2
	render()
	wantTexts(t, buf, "D0S0", "D0S2", "E1E2")
	if c.InlineLineID(e1.id) == c.InlineLineID(d.id) {
		t.Fatal("literals should have split off the shifter's line")
	}

	// state 2 -> 1: releasing the block line joins the group back.
	d.state = 1
	render()
	wantTexts(t, buf, "D0S1D0S0E1E2")
	if c.InlineLineID(e1.id) != c.InlineLineID(d.id) {
		t.Fatal("join should restore the shared inline line")
	}

	// Re-rendering without a transition changes nothing.
	render()
	wantTexts(t, buf, "D0S1D0S0E1E2")

	// A full extra cycle proves the round trip is stable.
	d.state = 2
	render()
	d.state = 0
	render()
	wantTexts(t, buf, "D0S0E1E2")
}
