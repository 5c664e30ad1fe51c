// Copyright © 2025 Ttyform contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: control/textinput.go
// Summary: TextInput is a single-line text entry control.

package control

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/ttyform/text"
)

// TextInput is a prompt followed by a single-line editor. It can publish an
// evaluation of its value for other controls to depend on.
type TextInput struct {
	prompt    string
	help      string
	model     *text.Text
	required  bool
	lowercase bool

	evalID  DependencyId
	eval    Evaluation
	hasEval bool

	depID     DependencyId
	depAction Action
	hasDep    bool
}

// NewTextInput creates a text entry control with the given prompt.
func NewTextInput(prompt string) *TextInput {
	return &TextInput{prompt: prompt, model: text.New(false)}
}

// WithHelp sets the help text shown while this control is focused.
func (t *TextInput) WithHelp(help string) *TextInput {
	t.help = help
	return t
}

// WithEvaluation publishes an evaluation of this control's value under the
// given dependency id.
func (t *TextInput) WithEvaluation(id DependencyId, e Evaluation) *TextInput {
	t.evalID, t.eval, t.hasEval = id, e, true
	return t
}

// WithDependency makes this control react to the given dependency.
func (t *TextInput) WithDependency(id DependencyId, action Action) *TextInput {
	t.depID, t.depAction, t.hasDep = id, action, true
	return t
}

// WithRequired rejects an empty value when focus tries to advance past this
// control.
func (t *TextInput) WithRequired() *TextInput {
	t.required = true
	return t
}

// WithForceLowercase lowercases typed characters as they are entered.
func (t *TextInput) WithForceLowercase() *TextInput {
	t.lowercase = true
	return t
}

// Value returns the entered text, without the prompt.
func (t *TextInput) Value() string { return t.model.Value() }

func (t *TextInput) Focusable() bool { return true }

func (t *TextInput) Update(ev *tcell.EventKey) {
	var key text.Key
	switch ev.Key() {
	case tcell.KeyRune:
		r := ev.Rune()
		if t.lowercase {
			r = unicode.ToLower(r)
		}
		key = text.Char(r)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		key = text.Key{Kind: text.KeyBackspace}
	case tcell.KeyDelete:
		key = text.Key{Kind: text.KeyDelete}
	case tcell.KeyLeft:
		key = text.Key{Kind: text.KeyLeft}
	case tcell.KeyRight:
		key = text.Key{Kind: text.KeyRight}
	case tcell.KeyHome:
		key = text.Key{Kind: text.KeyHome}
	case tcell.KeyEnd:
		key = text.Key{Kind: text.KeyEnd}
	default:
		return
	}
	t.model.Update(key)
}

func (t *TextInput) Help() string { return t.help }

func (t *TextInput) Text() (string, int) {
	promptLen := len([]rune(t.prompt))
	return t.prompt + t.model.Value(), promptLen + t.model.Cursor().X
}

func (t *TextInput) Drawer() ([]string, int) { return nil, 0 }

func (t *TextInput) Evaluation() (DependencyId, Evaluation, bool) {
	return t.evalID, t.eval, t.hasEval
}

func (t *TextInput) Dependency() (DependencyId, Action, bool) {
	return t.depID, t.depAction, t.hasDep
}

func (t *TextInput) Evaluate(e Evaluation) bool {
	return e.Apply(t.model.Value())
}

// Validate rejects an empty value on required inputs.
func (t *TextInput) Validate() string {
	if t.required && t.model.Value() == "" {
		return "must not be empty"
	}
	return ""
}
