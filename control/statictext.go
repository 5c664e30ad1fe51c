// Copyright © 2025 Ttyform contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: control/statictext.go
// Summary: StaticText is a fixed, non-focusable control.

package control

import "github.com/gdamore/tcell/v2"

// StaticText renders fixed text within a compound step. It can react to a
// dependency to appear or disappear with another control's value.
type StaticText struct {
	text string

	depID     DependencyId
	depAction Action
	hasDep    bool
}

// NewStaticText creates a fixed text control.
func NewStaticText(text string) *StaticText {
	return &StaticText{text: text}
}

// WithDependency makes this control react to the given dependency.
func (s *StaticText) WithDependency(id DependencyId, action Action) *StaticText {
	s.depID, s.depAction, s.hasDep = id, action, true
	return s
}

func (s *StaticText) Focusable() bool { return false }

func (s *StaticText) Update(*tcell.EventKey) {}

func (s *StaticText) Help() string { return "" }

func (s *StaticText) Text() (string, int) { return s.text, -1 }

func (s *StaticText) Drawer() ([]string, int) { return nil, 0 }

func (s *StaticText) Evaluation() (DependencyId, Evaluation, bool) {
	return 0, Evaluation{}, false
}

func (s *StaticText) Dependency() (DependencyId, Action, bool) {
	return s.depID, s.depAction, s.hasDep
}

func (s *StaticText) Evaluate(Evaluation) bool { return false }
