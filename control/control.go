// Copyright © 2025 Ttyform contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: control/control.go
// Summary: Control contract for compound-step members.

package control

import "github.com/gdamore/tcell/v2"

// Control is one member of a compound step: a prompt fragment, an input, or
// a selector. Controls render through their owning CompoundStep, which
// allocates them inline segments and drawer/help block lines.
type Control interface {
	// Focusable reports whether this control accepts focus and input.
	Focusable() bool

	// Update mutates the control's state from a key event.
	Update(ev *tcell.EventKey)

	// Help returns this control's descriptive help text, or "".
	Help() string

	// Text returns the control's rendered inline text and the cursor's
	// rune offset within it, or -1 when the control shows no cursor.
	Text() (string, int)

	// Drawer returns the rows to display beneath the step while this
	// control is focused, and which row is selected. A nil slice means no
	// drawer.
	Drawer() ([]string, int)

	// Evaluation returns the dependency this control publishes, if any.
	Evaluation() (DependencyId, Evaluation, bool)

	// Dependency returns the dependency this control reacts to, if any.
	Dependency() (DependencyId, Action, bool)

	// Evaluate tests this control's current value.
	Evaluate(e Evaluation) bool
}

// Validator is implemented by controls that can reject their current value.
// A non-empty message blocks focus from advancing past the control until the
// value changes.
type Validator interface {
	Validate() string
}

// FocusRenderer is implemented by controls whose inline presentation depends
// on whether they hold focus. The compound step prefers it over Text when
// painting; Text still supplies the control's result value.
type FocusRenderer interface {
	RenderText(focused bool) (text string, cursor int, style tcell.Style)
}
