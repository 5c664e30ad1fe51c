// Copyright © 2025 Ttyform contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: text/text.go
// Summary: Line/cursor text-editing model used by text-input form elements.

package text

import "strings"

// Position is a cursor location in the text model: X is the rune offset
// within logical line Y.
type Position struct {
	X, Y int
}

// Text is an editable block of text with a cursor. A single-line model
// ignores Enter and always holds exactly one line. When a wrap layout has
// been set, vertical movement and Home/End operate on visual rows rather
// than logical lines.
type Text struct {
	lines     [][]rune
	cursor    Position
	multiLine bool
	layout    []LineLayout
}

// New creates an empty text model.
func New(multiLine bool) *Text {
	return &Text{lines: [][]rune{nil}, multiLine: multiLine}
}

// Value returns the full text, logical lines joined with newlines.
func (t *Text) Value() string {
	parts := make([]string, len(t.lines))
	for i, line := range t.lines {
		parts[i] = string(line)
	}
	return strings.Join(parts, "\n")
}

// Lines returns each logical line's text.
func (t *Text) Lines() []string {
	out := make([]string, len(t.lines))
	for i, line := range t.lines {
		out[i] = string(line)
	}
	return out
}

// Cursor returns the current cursor position.
func (t *Text) Cursor() Position { return t.cursor }

// SetValue replaces the whole content and moves the cursor to the end.
func (t *Text) SetValue(value string) {
	var lines [][]rune
	if t.multiLine {
		for _, ln := range strings.Split(value, "\n") {
			lines = append(lines, []rune(ln))
		}
	} else {
		lines = [][]rune{[]rune(strings.ReplaceAll(value, "\n", " "))}
	}
	t.lines = lines
	t.cursor = Position{X: len(lines[len(lines)-1]), Y: len(lines) - 1}
	t.layout = nil
}

// SetLayout absorbs the rendered geometry of this model's lines so the next
// vertical movement follows visual rows. The layout is expected to carry one
// entry per logical line; a stale layout is ignored.
func (t *Text) SetLayout(layout []LineLayout) {
	if len(layout) != len(t.lines) {
		t.layout = nil
		return
	}
	t.layout = layout
}

// Update applies one editing key to the model.
func (t *Text) Update(key Key) {
	switch key.Kind {
	case KeyChar:
		t.insertRune(key.Rune)
	case KeyEnter:
		t.insertNewline()
	case KeyBackspace:
		t.backspace()
	case KeyDelete:
		t.deleteForward()
	case KeyLeft:
		t.moveLeft()
	case KeyRight:
		t.moveRight()
	case KeyUp:
		t.moveVertical(-1)
	case KeyDown:
		t.moveVertical(1)
	case KeyHome:
		t.moveHome()
	case KeyEnd:
		t.moveEnd()
	}
}

func (t *Text) line() []rune { return t.lines[t.cursor.Y] }

func (t *Text) insertRune(r rune) {
	line := t.line()
	line = append(line, 0)
	copy(line[t.cursor.X+1:], line[t.cursor.X:])
	line[t.cursor.X] = r
	t.lines[t.cursor.Y] = line
	t.cursor.X++
	t.layout = nil
}

func (t *Text) insertNewline() {
	if !t.multiLine {
		return
	}
	line := t.line()
	rest := append([]rune(nil), line[t.cursor.X:]...)
	t.lines[t.cursor.Y] = line[:t.cursor.X]

	t.lines = append(t.lines, nil)
	copy(t.lines[t.cursor.Y+2:], t.lines[t.cursor.Y+1:])
	t.lines[t.cursor.Y+1] = rest

	t.cursor = Position{X: 0, Y: t.cursor.Y + 1}
	t.layout = nil
}

func (t *Text) backspace() {
	if t.cursor.X > 0 {
		line := t.line()
		t.lines[t.cursor.Y] = append(line[:t.cursor.X-1], line[t.cursor.X:]...)
		t.cursor.X--
		t.layout = nil
		return
	}
	if t.cursor.Y == 0 {
		return
	}
	// Join with the previous line.
	prev := t.lines[t.cursor.Y-1]
	t.cursor = Position{X: len(prev), Y: t.cursor.Y - 1}
	t.lines[t.cursor.Y] = append(prev, t.lines[t.cursor.Y+1]...)
	t.lines = append(t.lines[:t.cursor.Y+1], t.lines[t.cursor.Y+2:]...)
	t.layout = nil
}

func (t *Text) deleteForward() {
	line := t.line()
	if t.cursor.X < len(line) {
		t.lines[t.cursor.Y] = append(line[:t.cursor.X], line[t.cursor.X+1:]...)
		t.layout = nil
		return
	}
	if t.cursor.Y+1 >= len(t.lines) {
		return
	}
	t.lines[t.cursor.Y] = append(line, t.lines[t.cursor.Y+1]...)
	t.lines = append(t.lines[:t.cursor.Y+1], t.lines[t.cursor.Y+2:]...)
	t.layout = nil
}

func (t *Text) moveLeft() {
	if t.cursor.X > 0 {
		t.cursor.X--
		return
	}
	if t.cursor.Y > 0 {
		t.cursor.Y--
		t.cursor.X = len(t.line())
	}
}

func (t *Text) moveRight() {
	if t.cursor.X < len(t.line()) {
		t.cursor.X++
		return
	}
	if t.cursor.Y+1 < len(t.lines) {
		t.cursor.Y++
		t.cursor.X = 0
	}
}

// rowStarts returns the rune offsets at which each visual row of the given
// logical line begins. Without a usable layout the line is a single row.
func (t *Text) rowStarts(lineIndex int) []int {
	if t.layout == nil || lineIndex >= len(t.layout) {
		return []int{0}
	}
	rows := t.layout[lineIndex].Rows
	if len(rows) == 0 {
		return []int{0}
	}
	starts := make([]int, len(rows))
	offset := 0
	for i, row := range rows {
		starts[i] = offset
		offset += row.RuneCount()
	}
	return starts
}

// locateRow finds the visual row of the cursor within its logical line and
// the cursor's offset within that row.
func (t *Text) locateRow() (row, offset int) {
	starts := t.rowStarts(t.cursor.Y)
	row = len(starts) - 1
	for i := 1; i < len(starts); i++ {
		if t.cursor.X < starts[i] {
			row = i - 1
			break
		}
	}
	return row, t.cursor.X - starts[row]
}

// rowSpan returns the start offset and rune length of a visual row.
func (t *Text) rowSpan(lineIndex, row int) (start, length int) {
	starts := t.rowStarts(lineIndex)
	start = starts[row]
	if row+1 < len(starts) {
		return start, starts[row+1] - start
	}
	return start, len(t.lines[lineIndex]) - start
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (t *Text) moveVertical(delta int) {
	row, offset := t.locateRow()
	starts := t.rowStarts(t.cursor.Y)

	target := row + delta
	if target >= 0 && target < len(starts) {
		start, length := t.rowSpan(t.cursor.Y, target)
		t.cursor.X = start + clamp(offset, 0, length)
		return
	}

	lineIndex := t.cursor.Y + sign(delta)
	if lineIndex < 0 || lineIndex >= len(t.lines) {
		return
	}
	targetStarts := t.rowStarts(lineIndex)
	targetRow := 0
	if delta < 0 {
		targetRow = len(targetStarts) - 1
	}
	t.cursor.Y = lineIndex
	start, length := t.rowSpan(lineIndex, targetRow)
	t.cursor.X = start + clamp(offset, 0, length)
}

func sign(v int) int {
	if v < 0 {
		return -1
	}
	return 1
}

func (t *Text) moveHome() {
	row, _ := t.locateRow()
	start, _ := t.rowSpan(t.cursor.Y, row)
	t.cursor.X = start
}

func (t *Text) moveEnd() {
	row, _ := t.locateRow()
	start, length := t.rowSpan(t.cursor.Y, row)
	t.cursor.X = start + length
}
