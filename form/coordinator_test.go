// Copyright © 2025 Ttyform contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: form/coordinator_test.go
// Summary: Exercises segment/line allocation, splits, joins and index math.

package form_test

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/ttyform/form"
	"github.com/framegrace/ttyform/termbuf"
)

// nullDriver discards paints; coordinator tests assert on buffer state, not
// on rendered cells.
type nullDriver struct{}

func (nullDriver) Size() (int, int) { return 80, 24 }
func (nullDriver) Clear()           {}
func (nullDriver) SetContent(x, y int, mainc rune, combc []rune, style tcell.Style) {
}
func (nullDriver) ShowCursor(x, y int) {}
func (nullDriver) HideCursor()         {}
func (nullDriver) Show()               {}

// stub is an inert element; tests drive the coordinator directly.
type stub struct {
	id form.ElementId
}

func (s *stub) SetID(id form.ElementId)          { s.id = id }
func (s *stub) Render(*form.Coordinator) error   { return nil }
func (s *stub) UpdateLayout(*form.LayoutAccessor) {}
func (s *stub) IsInput() bool                    { return false }
func (s *stub) CapturesEnter() bool              { return false }
func (s *stub) Update(*tcell.EventKey) bool      { return false }

// newGroup builds one step of n stub elements sharing an inline line and
// returns the initialized coordinator with the buffer behind it.
func newGroup(t *testing.T, n int) (*form.Coordinator, *termbuf.Buffer, []*stub) {
	t.Helper()

	stubs := make([]*stub, n)
	elems := make([]form.Element, n)
	for i := range stubs {
		stubs[i] = &stub{}
		elems[i] = stubs[i]
	}

	buf := termbuf.New(nullDriver{})
	c := form.NewCoordinator(buf)
	c.InitializeElements(form.New(form.NewStep(elems...)))
	return c, buf, stubs
}

func addSegmentText(t *testing.T, c *form.Coordinator, id form.ElementId, text string) termbuf.SegmentID {
	t.Helper()
	seg, err := c.AddSegment(id)
	if err != nil {
		t.Fatalf("add segment for (%d,%d): %v", id.Step, id.Element, err)
	}
	seg.SetText(text)
	return seg.ID()
}

func bufferTexts(t *testing.T, buf *termbuf.Buffer) []string {
	t.Helper()
	ids := buf.LineIDs()
	out := make([]string, len(ids))
	for i, id := range ids {
		line, err := buf.Line(id)
		if err != nil {
			t.Fatalf("line %d: %v", id, err)
		}
		out[i] = line.Text()
	}
	return out
}

func wantTexts(t *testing.T, buf *termbuf.Buffer, want ...string) {
	t.Helper()
	got := bufferTexts(t, buf)
	if len(got) != len(want) {
		t.Fatalf("buffer lines %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("buffer lines %q, want %q", got, want)
		}
	}
}

func TestSegmentIndexFollowsPrecedingSiblings(t *testing.T) {
	c, buf, stubs := newGroup(t, 3)
	a, b, cc := stubs[0].id, stubs[1].id, stubs[2].id

	// Populate out of declaration order: the absolute index math has to
	// interleave each element's run correctly regardless.
	addSegmentText(t, c, cc, "c0")
	addSegmentText(t, c, a, "a0")
	addSegmentText(t, c, b, "b0")
	addSegmentText(t, c, a, "a1")
	addSegmentText(t, c, cc, "c1")

	wantTexts(t, buf, "a0a1b0c0c1")

	// Appending to the middle element lands between its run and C's.
	addSegmentText(t, c, b, "b1")
	wantTexts(t, buf, "a0a1b0b1c0c1")

	// Relative insertion within a run.
	seg, err := c.InsertSegment(b, 1)
	if err != nil {
		t.Fatalf("insert segment: %v", err)
	}
	seg.SetText("bX")
	wantTexts(t, buf, "a0a1b0bXb1c0c1")
}

func TestRemoveSegmentRecomputesIndices(t *testing.T) {
	c, buf, stubs := newGroup(t, 2)
	a, b := stubs[0].id, stubs[1].id

	a0 := addSegmentText(t, c, a, "a0")
	addSegmentText(t, c, a, "a1")
	addSegmentText(t, c, b, "b0")

	if err := c.RemoveSegment(a, a0); err != nil {
		t.Fatalf("remove segment: %v", err)
	}
	wantTexts(t, buf, "a1b0")

	if err := c.RemoveSegmentAt(b, 0); err != nil {
		t.Fatalf("remove segment at: %v", err)
	}
	wantTexts(t, buf, "a1")
}

func TestSplitMovesSubsequentElements(t *testing.T) {
	c, buf, stubs := newGroup(t, 3)
	a, b, cc := stubs[0].id, stubs[1].id, stubs[2].id

	addSegmentText(t, c, a, "a0")
	addSegmentText(t, c, a, "a1")
	addSegmentText(t, c, b, "b0")
	addSegmentText(t, c, cc, "c0")
	addSegmentText(t, c, cc, "c1")

	line, err := c.AddLine(b)
	if err != nil {
		t.Fatalf("add line: %v", err)
	}
	line.AddSegment().SetText("B!")

	// A and B keep the original line, B's block line follows it, C's
	// segments moved to the new line preserving order.
	wantTexts(t, buf, "a0a1b0", "B!", "c0c1")

	if c.InlineLineID(a) != c.InlineLineID(b) {
		t.Fatal("A and B should still share the original inline line")
	}
	if c.InlineLineID(cc) == c.InlineLineID(b) {
		t.Fatal("C should have moved to a new inline line")
	}
	if index, err := buf.LineIndex(c.InlineLineID(cc)); err != nil || index != 2 {
		t.Fatalf("C's inline line at index %d (%v), want 2", index, err)
	}
}

func TestSplitJoinRoundTrip(t *testing.T) {
	for _, size := range []int{2, 3, 5} {
		c, buf, stubs := newGroup(t, size)

		var want string
		for i, s := range stubs {
			text := string(rune('a' + i))
			addSegmentText(t, c, s.id, text)
			want += text
		}
		target := stubs[0].id
		before := c.InlineLineID(target)

		line, err := c.AddLine(target)
		if err != nil {
			t.Fatalf("size %d: add line: %v", size, err)
		}
		if err := c.RemoveLine(target, line.ID()); err != nil {
			t.Fatalf("size %d: remove line: %v", size, err)
		}

		wantTexts(t, buf, want)
		for _, s := range stubs {
			if c.InlineLineID(s.id) != before {
				t.Fatalf("size %d: element (%d,%d) not re-parented to the original line",
					size, s.id.Step, s.id.Element)
			}
		}

		// Ordering is fully restored: appending to the first element
		// still lands before every sibling's run.
		addSegmentText(t, c, target, "X")
		wantTexts(t, buf, "aX"+want[1:])
	}
}

func TestSplitIsNoOpWithoutSubsequentElements(t *testing.T) {
	c, buf, stubs := newGroup(t, 2)
	a, b := stubs[0].id, stubs[1].id

	addSegmentText(t, c, a, "a0")
	addSegmentText(t, c, b, "b0")

	// B is last in its group: acquiring a block line must not split.
	if _, err := c.AddLine(b); err != nil {
		t.Fatalf("add line: %v", err)
	}
	if buf.LineCount() != 2 {
		t.Fatalf("line count %d, want 2 (inline + block, no split)", buf.LineCount())
	}
	if c.InlineLineID(a) != c.InlineLineID(b) {
		t.Fatal("group membership should be unchanged")
	}
}

func TestJoinIsNoOpAtEndOfBuffer(t *testing.T) {
	c, buf, stubs := newGroup(t, 1)
	a := stubs[0].id

	addSegmentText(t, c, a, "a0")
	line, err := c.AddLine(a)
	if err != nil {
		t.Fatalf("add line: %v", err)
	}

	// Nothing follows A's section: releasing the block line must simply
	// drop it.
	if err := c.RemoveLine(a, line.ID()); err != nil {
		t.Fatalf("remove line: %v", err)
	}
	wantTexts(t, buf, "a0")
}

func TestJoinSkipsForeignBlockContent(t *testing.T) {
	c, buf, stubs := newGroup(t, 1)
	a := stubs[0].id

	addSegmentText(t, c, a, "a0")
	first, err := c.AddLine(a)
	if err != nil {
		t.Fatalf("add line: %v", err)
	}
	if _, err := c.AddLine(a); err != nil {
		t.Fatalf("add line: %v", err)
	}

	// Removing a non-final block line leaves another block line in place;
	// no join may fire against it.
	if err := c.RemoveLine(a, first.ID()); err != nil {
		t.Fatalf("remove line: %v", err)
	}
	if buf.LineCount() != 2 {
		t.Fatalf("line count %d, want 2", buf.LineCount())
	}
}

func TestBlockLinesAreOrderedAndContiguous(t *testing.T) {
	c, buf, stubs := newGroup(t, 2)
	a := stubs[0].id

	addSegmentText(t, c, a, "a0")
	addSegmentText(t, c, stubs[1].id, "b0")

	if _, err := c.AddLine(a); err != nil {
		t.Fatalf("add line: %v", err)
	}
	if _, err := c.AddLine(a); err != nil {
		t.Fatalf("add line: %v", err)
	}

	lines := c.Lines(a)
	if len(lines) != 2 {
		t.Fatalf("block line count %d, want 2", len(lines))
	}
	inlineIndex, err := buf.LineIndex(c.InlineLineID(a))
	if err != nil {
		t.Fatalf("inline line index: %v", err)
	}
	for i, line := range lines {
		index, err := buf.LineIndex(line.ID())
		if err != nil {
			t.Fatalf("block line index: %v", err)
		}
		if index != inlineIndex+1+i {
			t.Fatalf("block line %d at index %d, want %d", i, index, inlineIndex+1+i)
		}
	}
}

func TestInsertLinePositionsWithinBlock(t *testing.T) {
	c, buf, stubs := newGroup(t, 1)
	a := stubs[0].id

	addSegmentText(t, c, a, "a0")
	first, err := c.AddLine(a)
	if err != nil {
		t.Fatalf("add line: %v", err)
	}
	first.AddSegment().SetText("b1")
	last, err := c.AddLine(a)
	if err != nil {
		t.Fatalf("add line: %v", err)
	}
	last.AddSegment().SetText("b3")

	mid, err := c.InsertLine(a, 1)
	if err != nil {
		t.Fatalf("insert line: %v", err)
	}
	mid.AddSegment().SetText("b2")

	wantTexts(t, buf, "a0", "b1", "b2", "b3")
}

func TestSecondStepStartsItsOwnInlineLine(t *testing.T) {
	buf := termbuf.New(nullDriver{})
	c := form.NewCoordinator(buf)

	s1, s2, s3 := &stub{}, &stub{}, &stub{}
	c.InitializeElements(form.New(
		form.NewStep(s1, s2),
		form.NewStep(s3),
	))

	if buf.LineCount() != 2 {
		t.Fatalf("line count %d, want one inline line per step", buf.LineCount())
	}
	if c.InlineLineID(s1.id) != c.InlineLineID(s2.id) {
		t.Fatal("step members should share an inline line")
	}
	if c.InlineLineID(s3.id) == c.InlineLineID(s1.id) {
		t.Fatal("steps should not share inline lines")
	}

	// Block lines of a first-step element land before the second step's
	// inline line.
	addSegmentText(t, c, s1.id, "a0")
	addSegmentText(t, c, s2.id, "b0")
	addSegmentText(t, c, s3.id, "c0")
	if _, err := c.AddLine(s2.id); err != nil {
		t.Fatalf("add line: %v", err)
	}
	wantTexts(t, buf, "a0b0", "", "c0")
}

func TestUnknownElementPanics(t *testing.T) {
	c, _, _ := newGroup(t, 1)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for an id the coordinator never issued")
		}
	}()
	c.Segments(form.ElementId{Step: 9, Element: 9})
}
