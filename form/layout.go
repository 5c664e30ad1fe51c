// Copyright © 2025 Ttyform contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: form/layout.go
// Summary: LayoutAccessor exposes post-paint geometry to elements.

package form

import "github.com/framegrace/ttyform/termbuf"

// LayoutAccessor wraps one frame's layout report for elements to look up the
// rendered geometry of their own segments.
type LayoutAccessor struct {
	report *termbuf.LayoutReport
}

// NewLayoutAccessor wraps a layout report.
func NewLayoutAccessor(report *termbuf.LayoutReport) *LayoutAccessor {
	return &LayoutAccessor{report: report}
}

// Segment returns the rendered layout of the given segment, or nil if it was
// not part of the last paint.
func (a *LayoutAccessor) Segment(id termbuf.SegmentID) *termbuf.SegmentLayout {
	return a.report.Segment(id)
}
