// Copyright © 2025 Ttyform contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: elements/text.go
// Summary: Text is a single- or multi-line text input element.

package elements

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/ttyform/form"
	"github.com/framegrace/ttyform/termbuf"
	"github.com/framegrace/ttyform/text"
)

// Text is an editable text input. Single-line inputs keep one inline segment
// updated in place; multi-line inputs own one block line per logical line of
// content, growing and shrinking their block as the content does.
type Text struct {
	id        form.ElementId
	multiLine bool

	model *text.Text

	inlineSeg  termbuf.SegmentID
	hasInline  bool
	lineIDs    []termbuf.LineID
	segmentIDs []termbuf.SegmentID
}

// NewText creates a text input element.
func NewText(multiLine bool) *Text {
	return &Text{multiLine: multiLine, model: text.New(multiLine)}
}

// Value returns the current content.
func (t *Text) Value() string { return t.model.Value() }

func (t *Text) SetID(id form.ElementId) { t.id = id }

func (t *Text) Render(c *form.Coordinator) error {
	if t.multiLine {
		return t.renderMulti(c)
	}
	return t.renderSingle(c)
}

func (t *Text) renderSingle(c *form.Coordinator) error {
	var seg *termbuf.Segment
	if t.hasInline {
		seg = c.Segment(t.id, t.inlineSeg)
	} else {
		s, err := c.AddSegment(t.id)
		if err != nil {
			return err
		}
		seg = s
		t.inlineSeg = seg.ID()
		t.hasInline = true
	}

	seg.SetText(t.model.Value())

	c.SetCursor(termbuf.Position{
		Line:    c.InlineLineID(t.id),
		Segment: t.inlineSeg,
		Column:  t.model.Cursor().X,
	})
	return nil
}

func (t *Text) renderMulti(c *form.Coordinator) error {
	lines := t.model.Lines()

	for index, lineText := range lines {
		var seg *termbuf.Segment
		if index >= len(t.lineIDs) {
			line, err := c.AddLine(t.id)
			if err != nil {
				return err
			}
			t.lineIDs = append(t.lineIDs, line.ID())

			seg = line.AddSegment()
			t.segmentIDs = append(t.segmentIDs, seg.ID())
		} else {
			line := c.Line(t.id, t.lineIDs[index])
			s, err := line.Segment(t.segmentIDs[index])
			if err != nil {
				return err
			}
			seg = s
		}
		seg.SetText(lineText)
	}

	// Release block lines past the content, last first, so the inline join
	// only triggers if the whole block collapses.
	for len(t.lineIDs) > len(lines) {
		last := len(t.lineIDs) - 1
		if err := c.RemoveLine(t.id, t.lineIDs[last]); err != nil {
			return err
		}
		t.lineIDs = t.lineIDs[:last]
		t.segmentIDs = t.segmentIDs[:last]
	}

	cursor := t.model.Cursor()
	c.SetCursor(termbuf.Position{
		Line:    t.lineIDs[cursor.Y],
		Segment: t.segmentIDs[cursor.Y],
		Column:  cursor.X,
	})
	return nil
}

func (t *Text) UpdateLayout(a *form.LayoutAccessor) {
	if t.model.Value() == "" {
		return
	}

	var lineLayouts []text.LineLayout

	appendLayout := func(segID termbuf.SegmentID) {
		segLayout := a.Segment(segID)
		if segLayout == nil {
			return
		}
		var rows []text.RowLayout
		for _, part := range segLayout.Parts() {
			rows = append(rows, text.RowLayout{Widths: append([]int(nil), part.Widths()...)})
		}
		lineLayouts = append(lineLayouts, text.NewLineLayout(rows))
	}

	if t.multiLine {
		for _, segID := range t.segmentIDs {
			appendLayout(segID)
		}
	} else {
		appendLayout(t.inlineSeg)
	}

	t.model.SetLayout(lineLayouts)
}

func (t *Text) IsInput() bool { return true }

func (t *Text) CapturesEnter() bool { return t.multiLine }

func (t *Text) Update(ev *tcell.EventKey) bool {
	var key text.Key
	switch ev.Key() {
	case tcell.KeyRune:
		key = text.Char(ev.Rune())
	case tcell.KeyEnter:
		key = text.Key{Kind: text.KeyEnter}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		key = text.Key{Kind: text.KeyBackspace}
	case tcell.KeyDelete:
		key = text.Key{Kind: text.KeyDelete}
	case tcell.KeyLeft:
		key = text.Key{Kind: text.KeyLeft}
	case tcell.KeyRight:
		key = text.Key{Kind: text.KeyRight}
	case tcell.KeyUp:
		key = text.Key{Kind: text.KeyUp}
	case tcell.KeyDown:
		key = text.Key{Kind: text.KeyDown}
	case tcell.KeyHome:
		key = text.Key{Kind: text.KeyHome}
	case tcell.KeyEnd:
		key = text.Key{Kind: text.KeyEnd}
	default:
		return false
	}

	t.model.Update(key)
	return false
}
