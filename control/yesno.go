// Copyright © 2025 Ttyform contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: control/yesno.go
// Summary: YesNoInput is a boolean toggle control.

package control

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/ttyform/theme"
)

// YesNoInput renders as "prefix: Yes" or "prefix: No" and toggles with
// Up/Down. By default a No answer is omitted from the step's text once focus
// moves on; while focused it shows muted instead, so the toggle stays
// reachable.
type YesNoInput struct {
	prompt   string
	prefix   string
	omitIfNo bool
	value    bool

	evalID  DependencyId
	eval    Evaluation
	hasEval bool
}

// NewYesNoInput creates a toggle with the given help prompt and inline
// prefix.
func NewYesNoInput(prompt, prefix string) *YesNoInput {
	return &YesNoInput{prompt: prompt, prefix: prefix, omitIfNo: true}
}

// WithOmitIfNo controls whether an unfocused No answer renders at all.
func (y *YesNoInput) WithOmitIfNo(omit bool) *YesNoInput {
	y.omitIfNo = omit
	return y
}

// WithEvaluation publishes an evaluation of this control's answer ("Yes" or
// "No") under the given dependency id.
func (y *YesNoInput) WithEvaluation(id DependencyId, e Evaluation) *YesNoInput {
	y.evalID, y.eval, y.hasEval = id, e, true
	return y
}

// Value returns the current answer as "Yes" or "No".
func (y *YesNoInput) Value() string {
	if y.value {
		return "Yes"
	}
	return "No"
}

func (y *YesNoInput) Focusable() bool { return true }

func (y *YesNoInput) Update(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyUp, tcell.KeyDown:
		y.value = !y.value
	}
}

func (y *YesNoInput) Help() string { return y.prompt }

func (y *YesNoInput) Text() (string, int) {
	if y.omitIfNo && !y.value {
		return "", -1
	}
	return y.prefix + ": " + y.Value(), 0
}

// RenderText keeps an omitted No answer visible, muted, while the control
// holds focus.
func (y *YesNoInput) RenderText(focused bool) (string, int, tcell.Style) {
	if !y.value && y.omitIfNo && !focused {
		return "", -1, tcell.StyleDefault
	}

	style := tcell.StyleDefault
	if focused && y.omitIfNo && !y.value {
		style = theme.MutedStyle()
	}
	return y.prefix + ": " + y.Value(), 0, style
}

func (y *YesNoInput) Drawer() ([]string, int) { return nil, 0 }

func (y *YesNoInput) Evaluation() (DependencyId, Evaluation, bool) {
	return y.evalID, y.eval, y.hasEval
}

func (y *YesNoInput) Dependency() (DependencyId, Action, bool) {
	return 0, 0, false
}

func (y *YesNoInput) Evaluate(e Evaluation) bool {
	return e.Apply(y.Value())
}
