// Copyright © 2025 Ttyform contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: termbuf/segment.go
// Summary: Segment is a styled run of text within a buffer line.

package termbuf

import "github.com/gdamore/tcell/v2"

// SegmentID is an opaque handle to a segment. Handles are minted by the
// buffer and are never reused within a buffer's lifetime.
type SegmentID int

// Segment is a contiguous run of identically-styled text on a line. Segments
// are created through Line.AddSegment/InsertSegment and addressed by handle.
type Segment struct {
	id    SegmentID
	text  string
	style tcell.Style
	buf   *Buffer
}

// ID returns this segment's handle.
func (s *Segment) ID() SegmentID { return s.id }

// Text returns this segment's current text.
func (s *Segment) Text() string { return s.text }

// Style returns this segment's current style.
func (s *Segment) Style() tcell.Style { return s.style }

// SetText replaces this segment's text and stages a repaint.
func (s *Segment) SetText(text string) {
	if s.text == text {
		return
	}
	s.text = text
	s.buf.markDirty()
}

// SetStyle replaces this segment's style and stages a repaint.
func (s *Segment) SetStyle(style tcell.Style) {
	if s.style == style {
		return
	}
	s.style = style
	s.buf.markDirty()
}
