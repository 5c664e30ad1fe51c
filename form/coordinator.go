// Copyright © 2025 Ttyform contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: form/coordinator.go
// Summary: Coordinator allocates buffer lines and segments to form elements.

package form

import (
	"fmt"
	"sort"

	"github.com/framegrace/ttyform/termbuf"
)

// elementRecord is the coordinator's bookkeeping for one element: the inline
// line it shares with siblings, its own segments on that line, and the block
// lines it owns exclusively.
type elementRecord struct {
	inlineLine termbuf.LineID
	segmentIDs []termbuf.SegmentID
	blockLines []termbuf.LineID
}

// Coordinator provides controlled access to the terminal buffer. It sits
// between a step's ordered elements and the buffer, translating each
// element's relative segment/line requests into absolute buffer indices and
// performing the inline-line splits and joins needed to keep that mapping
// valid as elements grow and shrink.
//
// The coordinator is single-threaded and not re-entrant: one render pass
// runs to completion per input event, and elements must be processed in
// ascending ElementId order within a pass.
type Coordinator struct {
	elements    map[ElementId]*elementRecord
	order       []ElementId
	inlineLines map[termbuf.LineID][]ElementId
	buf         *termbuf.Buffer
}

// NewCoordinator creates a coordinator wrapping the given buffer.
func NewCoordinator(buf *termbuf.Buffer) *Coordinator {
	return &Coordinator{
		elements:    make(map[ElementId]*elementRecord),
		inlineLines: make(map[termbuf.LineID][]ElementId),
		buf:         buf,
	}
}

// InitializeElements assigns ids and buffer lines to every element of the
// form: one inline line is minted per step and shared, in declaration order,
// by that step's elements. Must run once, before any render.
func (c *Coordinator) InitializeElements(f *Form) {
	for stepIndex, step := range f.steps {
		inline := c.buf.AddLine()

		for elementIndex, element := range step.elements {
			id := ElementId{Step: stepIndex, Element: elementIndex}
			element.SetID(id)

			c.elements[id] = &elementRecord{inlineLine: inline.ID()}
			c.order = append(c.order, id)
			c.inlineLines[inline.ID()] = append(c.inlineLines[inline.ID()], id)
		}
	}

	// Declaration order is already ascending; sort defensively so the
	// index walks below stay correct regardless of construction order.
	sort.Slice(c.order, func(i, j int) bool { return c.order[i].Less(c.order[j]) })
}

// record returns the element's bookkeeping, failing hard on an id the
// coordinator never issued.
func (c *Coordinator) record(id ElementId) *elementRecord {
	rec, ok := c.elements[id]
	if !ok {
		panic(fmt.Sprintf("form: unknown element id (%d,%d)", id.Step, id.Element))
	}
	return rec
}

// SetCursor stages the cursor at a content-relative position.
func (c *Coordinator) SetCursor(pos termbuf.Position) {
	c.buf.SetCursor(pos)
}

// HideCursor stages the cursor to be hidden.
func (c *Coordinator) HideCursor() {
	c.buf.HideCursor()
}

// ApplyChanges commits staged buffer mutations and returns the post-paint
// layout report.
func (c *Coordinator) ApplyChanges() (*termbuf.LayoutReport, error) {
	return c.buf.ApplyChanges()
}

// InlineLineID returns the element's current inline line. The value is dirty
// after any block-line mutation and should be re-read each render.
func (c *Coordinator) InlineLineID(id ElementId) termbuf.LineID {
	return c.record(id).inlineLine
}

// Segments returns the element's own inline segments in left-to-right order.
func (c *Coordinator) Segments(id ElementId) []*termbuf.Segment {
	rec := c.record(id)
	line := c.mustLine(rec.inlineLine)
	segs, err := line.Segments(rec.segmentIDs)
	if err != nil {
		panic(fmt.Sprintf("form: element (%d,%d) segments diverged from buffer: %v", id.Step, id.Element, err))
	}
	return segs
}

// Segment returns one of the element's inline segments.
func (c *Coordinator) Segment(id ElementId, segID termbuf.SegmentID) *termbuf.Segment {
	rec := c.record(id)
	line := c.mustLine(rec.inlineLine)
	seg, err := line.Segment(segID)
	if err != nil {
		panic(fmt.Sprintf("form: segment %d not held by element (%d,%d): %v", segID, id.Step, id.Element, err))
	}
	return seg
}

// AddSegment appends a new segment to the element's own run on its inline
// line and returns it for the caller to set text and style.
func (c *Coordinator) AddSegment(id ElementId) (*termbuf.Segment, error) {
	rec := c.record(id)
	line, err := c.buf.Line(rec.inlineLine)
	if err != nil {
		return nil, err
	}

	var index int
	if n := len(rec.segmentIDs); n > 0 {
		last, err := line.SegmentIndex(rec.segmentIDs[n-1])
		if err != nil {
			return nil, err
		}
		index = last + 1
	} else {
		index = c.elementSegmentIndex(id)
	}

	seg, err := line.InsertSegment(index)
	if err != nil {
		return nil, err
	}
	rec.segmentIDs = append(rec.segmentIDs, seg.ID())
	return seg, nil
}

// InsertSegment creates a new segment at the given position within the
// element's own run.
func (c *Coordinator) InsertSegment(id ElementId, index int) (*termbuf.Segment, error) {
	rec := c.record(id)
	line, err := c.buf.Line(rec.inlineLine)
	if err != nil {
		return nil, err
	}
	if index < 0 || index > len(rec.segmentIDs) {
		return nil, fmt.Errorf("%w: segment index %d of %d for element (%d,%d)",
			termbuf.ErrIndexOutOfRange, index, len(rec.segmentIDs), id.Step, id.Element)
	}

	var absolute int
	if len(rec.segmentIDs) > 0 {
		first, err := line.SegmentIndex(rec.segmentIDs[0])
		if err != nil {
			return nil, err
		}
		absolute = first + index
	} else {
		absolute = c.elementSegmentIndex(id)
	}

	seg, err := line.InsertSegment(absolute)
	if err != nil {
		return nil, err
	}
	rec.segmentIDs = append(rec.segmentIDs, 0)
	copy(rec.segmentIDs[index+1:], rec.segmentIDs[index:])
	rec.segmentIDs[index] = seg.ID()
	return seg, nil
}

// RemoveSegment removes one of the element's inline segments.
func (c *Coordinator) RemoveSegment(id ElementId, segID termbuf.SegmentID) error {
	rec := c.record(id)
	pos := -1
	for i, sid := range rec.segmentIDs {
		if sid == segID {
			pos = i
			break
		}
	}
	if pos < 0 {
		panic(fmt.Sprintf("form: segment %d not issued to element (%d,%d)", segID, id.Step, id.Element))
	}

	line, err := c.buf.Line(rec.inlineLine)
	if err != nil {
		return err
	}
	if err := line.RemoveSegment(segID); err != nil {
		return err
	}
	rec.segmentIDs = append(rec.segmentIDs[:pos], rec.segmentIDs[pos+1:]...)
	return nil
}

// RemoveSegmentAt removes the segment at the given position within the
// element's own run.
func (c *Coordinator) RemoveSegmentAt(id ElementId, index int) error {
	rec := c.record(id)
	if index < 0 || index >= len(rec.segmentIDs) {
		panic(fmt.Sprintf("form: segment index %d of %d for element (%d,%d)",
			index, len(rec.segmentIDs), id.Step, id.Element))
	}

	line, err := c.buf.Line(rec.inlineLine)
	if err != nil {
		return err
	}
	first, err := line.SegmentIndex(rec.segmentIDs[0])
	if err != nil {
		return err
	}
	if err := line.RemoveSegmentAt(first + index); err != nil {
		return err
	}
	rec.segmentIDs = append(rec.segmentIDs[:index], rec.segmentIDs[index+1:]...)
	return nil
}

// Lines returns the element's block lines in top-to-bottom order.
func (c *Coordinator) Lines(id ElementId) []*termbuf.Line {
	rec := c.record(id)
	lines, err := c.buf.Lines(rec.blockLines)
	if err != nil {
		panic(fmt.Sprintf("form: element (%d,%d) block lines diverged from buffer: %v", id.Step, id.Element, err))
	}
	return lines
}

// Line returns one of the element's block lines.
func (c *Coordinator) Line(id ElementId, lineID termbuf.LineID) *termbuf.Line {
	c.record(id)
	line, err := c.buf.Line(lineID)
	if err != nil {
		panic(fmt.Sprintf("form: line %d not held by element (%d,%d): %v", lineID, id.Step, id.Element, err))
	}
	return line
}

// AddLine gives the element a new private block line immediately after its
// existing section. Acquiring the first block line splits the inline line
// first, so block lines are never interleaved with siblings' inline content.
func (c *Coordinator) AddLine(id ElementId) (*termbuf.Line, error) {
	rec := c.record(id)

	if len(rec.blockLines) == 0 {
		if err := c.tryInlineSplit(id); err != nil {
			return nil, err
		}
	}

	var index int
	if n := len(rec.blockLines); n > 0 {
		last, err := c.buf.LineIndex(rec.blockLines[n-1])
		if err != nil {
			return nil, err
		}
		index = last + 1
	} else {
		index = c.elementLineIndex(id)
	}

	line, err := c.buf.InsertLine(index)
	if err != nil {
		return nil, err
	}
	rec.blockLines = append(rec.blockLines, line.ID())
	return line, nil
}

// InsertLine creates a new private block line at the given position within
// the element's own block.
func (c *Coordinator) InsertLine(id ElementId, index int) (*termbuf.Line, error) {
	rec := c.record(id)

	if len(rec.blockLines) == 0 {
		if err := c.tryInlineSplit(id); err != nil {
			return nil, err
		}
	}
	if index < 0 || index > len(rec.blockLines) {
		return nil, fmt.Errorf("%w: line index %d of %d for element (%d,%d)",
			termbuf.ErrIndexOutOfRange, index, len(rec.blockLines), id.Step, id.Element)
	}

	var absolute int
	if len(rec.blockLines) > 0 {
		first, err := c.buf.LineIndex(rec.blockLines[0])
		if err != nil {
			return nil, err
		}
		absolute = first + index
	} else {
		absolute = c.elementLineIndex(id)
	}

	line, err := c.buf.InsertLine(absolute)
	if err != nil {
		return nil, err
	}
	rec.blockLines = append(rec.blockLines, 0)
	copy(rec.blockLines[index+1:], rec.blockLines[index:])
	rec.blockLines[index] = line.ID()
	return line, nil
}

// RemoveLine removes one of the element's block lines. Releasing the last
// block line joins the inline line back with the section that follows.
func (c *Coordinator) RemoveLine(id ElementId, lineID termbuf.LineID) error {
	rec := c.record(id)
	pos := -1
	for i, lid := range rec.blockLines {
		if lid == lineID {
			pos = i
			break
		}
	}
	if pos < 0 {
		panic(fmt.Sprintf("form: line %d not issued to element (%d,%d)", lineID, id.Step, id.Element))
	}

	if len(rec.blockLines) == 1 {
		if err := c.tryInlineJoin(id); err != nil {
			return err
		}
	}

	if err := c.buf.RemoveLine(lineID); err != nil {
		return err
	}
	rec.blockLines = append(rec.blockLines[:pos], rec.blockLines[pos+1:]...)
	return nil
}

// RemoveLineAt removes the block line at the given position within the
// element's own block.
func (c *Coordinator) RemoveLineAt(id ElementId, index int) error {
	rec := c.record(id)
	if index < 0 || index >= len(rec.blockLines) {
		panic(fmt.Sprintf("form: line index %d of %d for element (%d,%d)",
			index, len(rec.blockLines), id.Step, id.Element))
	}
	return c.RemoveLine(id, rec.blockLines[index])
}

// tryInlineSplit gives the element exclusive use of its inline line in
// preparation for block lines: subsequent group members' segments move to a
// brand-new line inserted immediately after, and those members are
// re-registered as a fresh inline-line group. No-op when the element is
// already last in its group.
func (c *Coordinator) tryInlineSplit(id ElementId) error {
	rec := c.record(id)

	nextSegmentIndex := c.elementSegmentIndex(id) + len(rec.segmentIDs)

	lineID := rec.inlineLine
	group := c.inlineLines[lineID]
	subsequent := subsequentElements(group, id)
	if len(subsequent) == 0 {
		return nil
	}

	newLineID, err := c.splitLine(lineID, nextSegmentIndex)
	if err != nil {
		return err
	}

	// Trim the old group at the element and register the tail as the new
	// line's group.
	pos := indexOf(group, id)
	kept := make([]ElementId, pos+1)
	copy(kept, group[:pos+1])
	c.inlineLines[lineID] = kept
	c.inlineLines[newLineID] = subsequent

	for _, moved := range subsequent {
		c.elements[moved].inlineLine = newLineID
	}
	return nil
}

// splitLine inserts a new line after the given one and moves every segment
// at or past splitIndex onto it, preserving order.
func (c *Coordinator) splitLine(lineID termbuf.LineID, splitIndex int) (termbuf.LineID, error) {
	lineIndex, err := c.buf.LineIndex(lineID)
	if err != nil {
		return 0, err
	}
	newLine, err := c.buf.InsertLine(lineIndex + 1)
	if err != nil {
		return 0, err
	}

	line, err := c.buf.Line(lineID)
	if err != nil {
		return 0, err
	}
	moving := append([]termbuf.SegmentID(nil), line.SegmentIDs()[splitIndex:]...)
	for _, segID := range moving {
		if err := c.buf.MoveSegment(segID, lineID, newLine.ID()); err != nil {
			return 0, err
		}
	}
	return newLine.ID(), nil
}

// tryInlineJoin merges the inline-line group that follows the element's
// (about to collapse) section back onto the element's inline line. No-op
// when the following line is not an inline line or the buffer ends.
func (c *Coordinator) tryInlineJoin(id ElementId) error {
	rec := c.record(id)

	beforeID := rec.inlineLine
	beforeIndex, err := c.buf.LineIndex(beforeID)
	if err != nil {
		return err
	}

	// The element still holds its last block line at this point, so the
	// candidate line sits two past the inline line.
	ids := c.buf.LineIDs()
	if len(ids) <= beforeIndex+2 {
		return nil
	}
	afterID := ids[beforeIndex+2]

	group, ok := c.inlineLines[afterID]
	if !ok {
		return nil
	}

	if err := c.joinInlineLines(beforeID, afterID); err != nil {
		return err
	}

	delete(c.inlineLines, afterID)
	for _, moved := range group {
		c.elements[moved].inlineLine = beforeID
	}
	c.inlineLines[beforeID] = append(c.inlineLines[beforeID], group...)
	return nil
}

// joinInlineLines appends every segment of the second line onto the first
// and deletes the emptied second line from the buffer.
func (c *Coordinator) joinInlineLines(firstID, secondID termbuf.LineID) error {
	second, err := c.buf.Line(secondID)
	if err != nil {
		return err
	}
	moving := append([]termbuf.SegmentID(nil), second.SegmentIDs()...)
	for _, segID := range moving {
		if err := c.buf.MoveSegment(segID, secondID, firstID); err != nil {
			return err
		}
	}
	return c.buf.RemoveLine(secondID)
}

// elementSegmentIndex determines the absolute index on the inline line at
// which the element's own run begins: the sum of the segment counts of every
// group member preceding it in ElementId order. The buffer has no notion of
// ownership, so this walk is what keeps independently-updating elements
// correctly interleaved on one physical row.
func (c *Coordinator) elementSegmentIndex(id ElementId) int {
	rec := c.record(id)

	count := 0
	for _, member := range c.inlineLines[rec.inlineLine] {
		if member == id {
			break
		}
		count += len(c.elements[member].segmentIDs)
	}
	return count
}

// elementLineIndex determines the absolute buffer row at which the element's
// own section begins: over all elements up to and including it, each
// distinct inline line counts once, plus every block line. Deliberately an
// O(n) re-walk on every call; always correct, never stale.
func (c *Coordinator) elementLineIndex(id ElementId) int {
	c.record(id)

	lineCount := 0
	var lastInline termbuf.LineID = -1
	for _, member := range c.order {
		rec := c.elements[member]
		lineCount += len(rec.blockLines)

		if rec.inlineLine != lastInline {
			lineCount++
		}
		lastInline = rec.inlineLine

		if member == id {
			break
		}
	}
	return lineCount
}

// subsequentElements returns the ids after the target within a group.
func subsequentElements(group []ElementId, id ElementId) []ElementId {
	pos := indexOf(group, id)
	if pos < 0 || pos+1 >= len(group) {
		return nil
	}
	out := make([]ElementId, len(group)-pos-1)
	copy(out, group[pos+1:])
	return out
}

func indexOf(group []ElementId, id ElementId) int {
	for i, member := range group {
		if member == id {
			return i
		}
	}
	return -1
}

func (c *Coordinator) mustLine(id termbuf.LineID) *termbuf.Line {
	line, err := c.buf.Line(id)
	if err != nil {
		panic(fmt.Sprintf("form: inline line %d diverged from buffer: %v", id, err))
	}
	return line
}
