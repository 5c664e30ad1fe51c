// Copyright © 2025 Ttyform contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: form/element.go
// Summary: Element contract and identity for form content.

package form

import "github.com/gdamore/tcell/v2"

// ElementId identifies one element within a form. Ids are assigned once, at
// initialization, in declaration order, and are never reused. Ordering is
// lexicographic over (step, element).
type ElementId struct {
	Step    int
	Element int
}

// Less reports whether this id orders before the other.
func (id ElementId) Less(other ElementId) bool {
	if id.Step != other.Step {
		return id.Step < other.Step
	}
	return id.Element < other.Element
}

// Element is a unit of form content which may be static or an input. The
// coordinator allocates screen real estate to elements; elements decide what
// to put there.
//
// Render may be called on a strict subset of elements on any given frame, so
// implementations must re-derive their own diff from the ids they hold
// rather than assuming they rendered last frame.
type Element interface {
	// SetID assigns this element's id. Called exactly once, at
	// initialization; the id is immutable afterward.
	SetID(id ElementId)

	// Render reflects the element's current content through the
	// coordinator. Focused inputs should report a cursor position.
	Render(c *Coordinator) error

	// UpdateLayout consumes the post-paint geometry of this element's own
	// segments, e.g. to recompute wrap boundaries before the next render.
	UpdateLayout(a *LayoutAccessor)

	// IsInput reports whether this element can receive focus.
	IsInput() bool

	// CapturesEnter reports whether this element intercepts the advance
	// key rather than yielding it to the driver.
	CapturesEnter() bool

	// Update mutates the element's content from a key event and reports
	// whether the driver should advance focus.
	Update(ev *tcell.EventKey) bool
}

// Valuer is implemented by input elements that produce a final value.
type Valuer interface {
	Value() string
}
