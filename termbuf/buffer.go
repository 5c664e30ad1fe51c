// Copyright © 2025 Ttyform contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: termbuf/buffer.go
// Summary: Buffer owns the ordered display lines and paints them to a driver.

package termbuf

import (
	"fmt"

	"github.com/mattn/go-runewidth"
)

// Position addresses a cursor location relative to buffer content: a column
// offset (in runes) within one segment of one line. It is resolved to
// absolute screen coordinates at apply time, so it stays valid across
// line and segment moves.
type Position struct {
	Line    LineID
	Segment SegmentID
	Column  int
}

// Buffer is an ordered sequence of display lines. Mutations are staged in
// memory; ApplyChanges paints the staged state to the screen driver and
// reports the resulting geometry.
type Buffer struct {
	lines []*Line

	nextLineID    LineID
	nextSegmentID SegmentID

	driver ScreenDriver
	cursor *Position

	dirty      bool
	lastReport *LayoutReport

	// debugLog is an optional logging function
	debugLog func(format string, args ...interface{})
}

// New creates an empty buffer painting onto the given driver.
func New(driver ScreenDriver) *Buffer {
	return &Buffer{driver: driver, dirty: true}
}

// SetDebugLog installs an optional debug logging function.
func (b *Buffer) SetDebugLog(fn func(format string, args ...interface{})) {
	b.debugLog = fn
}

func (b *Buffer) logf(format string, args ...interface{}) {
	if b.debugLog != nil {
		b.debugLog(format, args...)
	}
}

func (b *Buffer) markDirty() { b.dirty = true }

func (b *Buffer) newSegment() *Segment {
	seg := &Segment{id: b.nextSegmentID, buf: b}
	b.nextSegmentID++
	return seg
}

// AddLine appends a new, empty line to the buffer.
func (b *Buffer) AddLine() *Line {
	line := &Line{id: b.nextLineID, buf: b}
	b.nextLineID++
	b.lines = append(b.lines, line)
	b.markDirty()
	return line
}

// InsertLine creates a new, empty line at the given position.
func (b *Buffer) InsertLine(index int) (*Line, error) {
	if index < 0 || index > len(b.lines) {
		return nil, fmt.Errorf("%w: line index %d of %d", ErrIndexOutOfRange, index, len(b.lines))
	}
	line := &Line{id: b.nextLineID, buf: b}
	b.nextLineID++
	b.lines = append(b.lines, nil)
	copy(b.lines[index+1:], b.lines[index:])
	b.lines[index] = line
	b.markDirty()
	return line, nil
}

// RemoveLine removes the line with the given handle.
func (b *Buffer) RemoveLine(id LineID) error {
	index, err := b.LineIndex(id)
	if err != nil {
		return err
	}
	return b.RemoveLineAt(index)
}

// RemoveLineAt removes the line at the given position.
func (b *Buffer) RemoveLineAt(index int) error {
	if index < 0 || index >= len(b.lines) {
		return fmt.Errorf("%w: line index %d of %d", ErrIndexOutOfRange, index, len(b.lines))
	}
	b.lines = append(b.lines[:index], b.lines[index+1:]...)
	b.markDirty()
	return nil
}

// LineIndex returns the position of the given line within the buffer.
func (b *Buffer) LineIndex(id LineID) (int, error) {
	for i, line := range b.lines {
		if line.id == id {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: line %d", ErrUnknownLine, id)
}

// Line returns the line with the given handle.
func (b *Buffer) Line(id LineID) (*Line, error) {
	index, err := b.LineIndex(id)
	if err != nil {
		return nil, err
	}
	return b.lines[index], nil
}

// Lines resolves several handles at once, preserving the given order.
func (b *Buffer) Lines(ids []LineID) ([]*Line, error) {
	out := make([]*Line, 0, len(ids))
	for _, id := range ids {
		line, err := b.Line(id)
		if err != nil {
			return nil, err
		}
		out = append(out, line)
	}
	return out, nil
}

// LineIDs returns the handles of the buffer's lines in display order.
func (b *Buffer) LineIDs() []LineID {
	ids := make([]LineID, len(b.lines))
	for i, line := range b.lines {
		ids[i] = line.id
	}
	return ids
}

// LineCount returns the number of lines currently in the buffer.
func (b *Buffer) LineCount() int { return len(b.lines) }

// MoveSegment detaches a segment from one line and appends it to another,
// preserving its handle, text and style.
func (b *Buffer) MoveSegment(id SegmentID, from, to LineID) error {
	fromLine, err := b.Line(from)
	if err != nil {
		return err
	}
	toLine, err := b.Line(to)
	if err != nil {
		return err
	}
	index, err := fromLine.SegmentIndex(id)
	if err != nil {
		return err
	}
	seg := fromLine.takeSegment(index)
	toLine.segments = append(toLine.segments, seg)
	b.markDirty()
	return nil
}

// SetCursor stages a cursor position to be shown on the next apply.
func (b *Buffer) SetCursor(pos Position) {
	if b.cursor != nil && *b.cursor == pos {
		return
	}
	b.cursor = &pos
	b.markDirty()
}

// HideCursor stages the cursor to be hidden on the next apply.
func (b *Buffer) HideCursor() {
	if b.cursor == nil {
		return
	}
	b.cursor = nil
	b.markDirty()
}

// ApplyChanges paints the staged buffer state to the driver, wrapping each
// line at the screen width, and returns the rendered geometry. When
// nothing changed since the previous apply, the previous report is returned
// without repainting.
func (b *Buffer) ApplyChanges() (*LayoutReport, error) {
	if !b.dirty && b.lastReport != nil {
		return b.lastReport, nil
	}

	width, _ := b.driver.Size()
	if width <= 0 {
		width = 1
	}

	b.driver.Clear()

	report := &LayoutReport{}
	var cursorX, cursorY int
	cursorFound := b.cursor == nil

	row := 0
	for _, line := range b.lines {
		lineLayout := LineLayout{id: line.id}
		col := 0

		for _, seg := range line.segments {
			segLayout := SegmentLayout{id: seg.id}
			part := PartLayout{}

			wantCursor := b.cursor != nil && b.cursor.Line == line.id && b.cursor.Segment == seg.id
			runeIndex := 0

			for _, r := range seg.text {
				w := runewidth.RuneWidth(r)
				if col+w > width && col > 0 {
					// Wrap to the next screen row; close this part.
					segLayout.parts = append(segLayout.parts, part)
					part = PartLayout{}
					row++
					col = 0
				}
				if wantCursor && runeIndex == b.cursor.Column {
					cursorX, cursorY = col, row
					cursorFound = true
				}
				b.driver.SetContent(col, row, r, nil, seg.style)
				part.widths = append(part.widths, w)
				col += w
				runeIndex++
			}
			if wantCursor && b.cursor.Column >= runeIndex {
				cursorX, cursorY = col, row
				cursorFound = true
			}

			segLayout.parts = append(segLayout.parts, part)
			lineLayout.segments = append(lineLayout.segments, segLayout)
		}

		report.lines = append(report.lines, lineLayout)
		row++
	}

	if b.cursor != nil && !cursorFound {
		return nil, fmt.Errorf("%w: line %d segment %d", ErrDanglingCursor, b.cursor.Line, b.cursor.Segment)
	}

	if b.cursor != nil {
		b.driver.ShowCursor(cursorX, cursorY)
	} else {
		b.driver.HideCursor()
	}
	b.driver.Show()

	b.logf("termbuf: applied %d lines, %d rows", len(b.lines), row)

	b.dirty = false
	b.lastReport = report
	return report, nil
}
