// Copyright © 2025 Ttyform contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: termbuf/line.go
// Summary: Line is an ordered sequence of segments in the buffer.

package termbuf

import (
	"fmt"
	"strings"
)

// LineID is an opaque handle to a buffer line. Handles are minted by the
// buffer and are never reused within a buffer's lifetime.
type LineID int

// Line is one logical display row. Its segments are painted left to right
// and wrap onto further screen rows when they exceed the screen width.
type Line struct {
	id       LineID
	segments []*Segment
	buf      *Buffer
}

// ID returns this line's handle.
func (l *Line) ID() LineID { return l.id }

// AddSegment appends a new, empty segment to this line.
func (l *Line) AddSegment() *Segment {
	seg := l.buf.newSegment()
	l.segments = append(l.segments, seg)
	l.buf.markDirty()
	return seg
}

// InsertSegment creates a new, empty segment at the given position.
func (l *Line) InsertSegment(index int) (*Segment, error) {
	if index < 0 || index > len(l.segments) {
		return nil, fmt.Errorf("%w: segment index %d of %d on line %d", ErrIndexOutOfRange, index, len(l.segments), l.id)
	}
	seg := l.buf.newSegment()
	l.segments = append(l.segments, nil)
	copy(l.segments[index+1:], l.segments[index:])
	l.segments[index] = seg
	l.buf.markDirty()
	return seg, nil
}

// RemoveSegment removes the segment with the given handle from this line.
func (l *Line) RemoveSegment(id SegmentID) error {
	index, err := l.SegmentIndex(id)
	if err != nil {
		return err
	}
	return l.RemoveSegmentAt(index)
}

// RemoveSegmentAt removes the segment at the given position.
func (l *Line) RemoveSegmentAt(index int) error {
	if index < 0 || index >= len(l.segments) {
		return fmt.Errorf("%w: segment index %d of %d on line %d", ErrIndexOutOfRange, index, len(l.segments), l.id)
	}
	l.segments = append(l.segments[:index], l.segments[index+1:]...)
	l.buf.markDirty()
	return nil
}

// SegmentIndex returns the position of the given segment within this line.
func (l *Line) SegmentIndex(id SegmentID) (int, error) {
	for i, seg := range l.segments {
		if seg.id == id {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: segment %d on line %d", ErrUnknownSegment, id, l.id)
}

// Segment returns the segment with the given handle.
func (l *Line) Segment(id SegmentID) (*Segment, error) {
	index, err := l.SegmentIndex(id)
	if err != nil {
		return nil, err
	}
	return l.segments[index], nil
}

// Segments resolves several handles at once, preserving the given order.
func (l *Line) Segments(ids []SegmentID) ([]*Segment, error) {
	out := make([]*Segment, 0, len(ids))
	for _, id := range ids {
		seg, err := l.Segment(id)
		if err != nil {
			return nil, err
		}
		out = append(out, seg)
	}
	return out, nil
}

// SegmentIDs returns the handles of this line's segments in order.
func (l *Line) SegmentIDs() []SegmentID {
	ids := make([]SegmentID, len(l.segments))
	for i, seg := range l.segments {
		ids[i] = seg.id
	}
	return ids
}

// SegmentCount returns the number of segments on this line.
func (l *Line) SegmentCount() int { return len(l.segments) }

// Text returns the concatenated text of this line's segments.
func (l *Line) Text() string {
	var sb strings.Builder
	for _, seg := range l.segments {
		sb.WriteString(seg.text)
	}
	return sb.String()
}

func (l *Line) takeSegment(index int) *Segment {
	seg := l.segments[index]
	l.segments = append(l.segments[:index], l.segments[index+1:]...)
	return seg
}
