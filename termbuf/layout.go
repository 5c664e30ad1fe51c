// Copyright © 2025 Ttyform contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: termbuf/layout.go
// Summary: Post-paint geometry reported back to the buffer's callers.

package termbuf

// PartLayout describes one visual row a segment occupied after wrapping: the
// rendered column width of each rune painted on that row, in order.
type PartLayout struct {
	widths []int
}

// Widths returns the per-rune rendered widths for this part.
func (p *PartLayout) Widths() []int { return p.widths }

// SegmentLayout describes where one segment's text physically landed: one
// part per visual row it spanned.
type SegmentLayout struct {
	id    SegmentID
	parts []PartLayout
}

// SegmentID returns the handle of the segment this layout describes.
func (s *SegmentLayout) SegmentID() SegmentID { return s.id }

// Parts returns this segment's visual rows in top-to-bottom order.
func (s *SegmentLayout) Parts() []PartLayout { return s.parts }

// LineLayout describes the rendered geometry of one buffer line.
type LineLayout struct {
	id       LineID
	segments []SegmentLayout
}

// LineID returns the handle of the line this layout describes.
func (l *LineLayout) LineID() LineID { return l.id }

// Segments returns the per-segment layouts for this line, in line order.
func (l *LineLayout) Segments() []SegmentLayout { return l.segments }

// LayoutReport is the full post-paint geometry for one ApplyChanges call.
type LayoutReport struct {
	lines []LineLayout
}

// Lines returns the per-line layouts in buffer order.
func (r *LayoutReport) Lines() []LineLayout { return r.lines }

// Segment finds the layout for the given segment, or nil if the segment was
// not painted in this report.
func (r *LayoutReport) Segment(id SegmentID) *SegmentLayout {
	for i := range r.lines {
		for j := range r.lines[i].segments {
			if r.lines[i].segments[j].id == id {
				return &r.lines[i].segments[j]
			}
		}
	}
	return nil
}
