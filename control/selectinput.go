// Copyright © 2025 Ttyform contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: control/selectinput.go
// Summary: SelectInput cycles a fixed option list with a drawer.

package control

import "github.com/gdamore/tcell/v2"

// SelectInput renders its selected option inline and, while focused, the
// full option list in a drawer beneath the step. Up/Down cycle the
// selection, wrapping at either end.
type SelectInput struct {
	help     string
	options  []string
	selected int

	evalID  DependencyId
	eval    Evaluation
	hasEval bool
}

// NewSelectInput creates a selector over the given options.
func NewSelectInput(options ...string) *SelectInput {
	return &SelectInput{options: options}
}

// WithHelp sets the help text shown while this control is focused.
func (s *SelectInput) WithHelp(help string) *SelectInput {
	s.help = help
	return s
}

// WithEvaluation publishes an evaluation of the selected option under the
// given dependency id.
func (s *SelectInput) WithEvaluation(id DependencyId, e Evaluation) *SelectInput {
	s.evalID, s.eval, s.hasEval = id, e, true
	return s
}

// Value returns the currently selected option.
func (s *SelectInput) Value() string {
	if len(s.options) == 0 {
		return ""
	}
	return s.options[s.selected]
}

func (s *SelectInput) Focusable() bool { return true }

func (s *SelectInput) Update(ev *tcell.EventKey) {
	if len(s.options) == 0 {
		return
	}
	switch ev.Key() {
	case tcell.KeyDown:
		if s.selected+1 == len(s.options) {
			s.selected = 0
		} else {
			s.selected++
		}
	case tcell.KeyUp:
		if s.selected == 0 {
			s.selected = len(s.options) - 1
		} else {
			s.selected--
		}
	}
}

func (s *SelectInput) Help() string { return s.help }

func (s *SelectInput) Text() (string, int) {
	return s.Value(), len([]rune(s.Value()))
}

func (s *SelectInput) Drawer() ([]string, int) {
	return s.options, s.selected
}

func (s *SelectInput) Evaluation() (DependencyId, Evaluation, bool) {
	return s.evalID, s.eval, s.hasEval
}

func (s *SelectInput) Dependency() (DependencyId, Action, bool) {
	return 0, 0, false
}

func (s *SelectInput) Evaluate(e Evaluation) bool {
	return e.Apply(s.Value())
}
