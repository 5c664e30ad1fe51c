// Copyright © 2025 Ttyform contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: control/compound_test.go
// Summary: CompoundStep rendering, focus cycling and dependency actions.

package control_test

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/ttyform/control"
	"github.com/framegrace/ttyform/form"
	"github.com/framegrace/ttyform/termbuf"
)

type nullDriver struct{}

func (nullDriver) Size() (int, int) { return 80, 24 }
func (nullDriver) Clear()           {}
func (nullDriver) SetContent(x, y int, mainc rune, combc []rune, style tcell.Style) {
}
func (nullDriver) ShowCursor(x, y int) {}
func (nullDriver) HideCursor()         {}
func (nullDriver) Show()               {}

// harness initializes a one-step form around the compound step and returns a
// render func plus the buffer to assert on.
func harness(t *testing.T, step *control.CompoundStep) (func(), *termbuf.Buffer) {
	t.Helper()
	buf := termbuf.New(nullDriver{})
	c := form.NewCoordinator(buf)
	c.InitializeElements(form.New(step.Step()))
	return func() {
		t.Helper()
		if err := step.Render(c); err != nil {
			t.Fatalf("render: %v", err)
		}
	}, buf
}

func bufferTexts(t *testing.T, buf *termbuf.Buffer) []string {
	t.Helper()
	ids := buf.LineIDs()
	out := make([]string, len(ids))
	for i, id := range ids {
		line, err := buf.Line(id)
		if err != nil {
			t.Fatalf("line %d: %v", id, err)
		}
		out[i] = line.Text()
	}
	return out
}

func wantTexts(t *testing.T, buf *termbuf.Buffer, want ...string) {
	t.Helper()
	got := bufferTexts(t, buf)
	if len(got) != len(want) {
		t.Fatalf("buffer lines %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("buffer lines %q, want %q", got, want)
		}
	}
}

func enter() *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)
}

func TestCompoundStepRendersControlsOnOneLine(t *testing.T) {
	step := control.NewCompoundStep(control.NewDependencyState(),
		control.NewTextInput("Name: "),
		control.NewStaticText(" in "),
		control.NewSelectInput("Go", "Rust"),
	)
	render, buf := harness(t, step)

	render()
	wantTexts(t, buf, "Name:  in Go")

	// Typing updates only the focused control's segment.
	step.Update(tcell.NewEventKey(tcell.KeyRune, 'k', tcell.ModNone))
	render()
	wantTexts(t, buf, "Name: k in Go")
}

func TestFocusedSelectShowsHelpAndDrawer(t *testing.T) {
	step := control.NewCompoundStep(control.NewDependencyState(),
		control.NewTextInput("Name: "),
		control.NewSelectInput("Go", "Rust").WithHelp("Pick a language"),
	)
	render, buf := harness(t, step)

	render()
	wantTexts(t, buf, "Name: Go")

	// Enter moves focus to the selector; its help and options appear as
	// block lines beneath the step.
	if step.Update(enter()) {
		t.Fatal("focus should stay inside the step")
	}
	render()
	wantTexts(t, buf, "Name: Go", "Pick a language", "Go", "Rust")

	step.Update(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))
	render()
	wantTexts(t, buf, "Name: Rust", "Pick a language", "Go", "Rust")
}

func TestEnterOnLastControlYields(t *testing.T) {
	step := control.NewCompoundStep(control.NewDependencyState(),
		control.NewTextInput("a: "),
		control.NewStaticText("|"),
		control.NewTextInput("b: ").WithHelp("second"),
	)
	render, buf := harness(t, step)
	render()

	if step.Update(enter()) {
		t.Fatal("first Enter should move focus, not yield")
	}
	render()
	wantTexts(t, buf, "a: |b: ", "second")

	if !step.Update(enter()) {
		t.Fatal("Enter on the last focusable control should yield")
	}

	// The completed step drops its help and drawer rows.
	render()
	wantTexts(t, buf, "a: |b: ")
}

func TestDependencyShowsAndHidesControl(t *testing.T) {
	seq := control.NewIDSequence()
	isGo := seq.Next()

	step := control.NewCompoundStep(control.NewDependencyState(),
		control.NewSelectInput("Go", "Rust").WithEvaluation(isGo, control.Equal("Go")),
		control.NewStaticText(" (compiled)").WithDependency(isGo, control.Show),
	)
	render, buf := harness(t, step)

	render()
	wantTexts(t, buf, "Go (compiled)", "Go", "Rust")

	step.Update(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))
	render()
	wantTexts(t, buf, "Rust", "Go", "Rust")

	if step.Value() != "Rust" {
		t.Fatalf("value %q, want Rust", step.Value())
	}

	step.Update(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone))
	render()
	if step.Value() != "Go (compiled)" {
		t.Fatalf("value %q, want \"Go (compiled)\"", step.Value())
	}
}

func TestHiddenControlIsSkippedByFocus(t *testing.T) {
	seq := control.NewIDSequence()
	wantsDetail := seq.Next()

	step := control.NewCompoundStep(control.NewDependencyState(),
		control.NewSelectInput("plain", "detailed").WithEvaluation(wantsDetail, control.Equal("detailed")),
		control.NewTextInput("detail: ").WithDependency(wantsDetail, control.Show),
		control.NewTextInput("name: "),
	)
	render, buf := harness(t, step)

	render()
	wantTexts(t, buf, "plainname: ", "plain", "detailed")

	// With the detail input hidden, Enter jumps straight from the selector
	// to the name input, and a second Enter yields.
	if step.Update(enter()) {
		t.Fatal("focus should move to the name input")
	}
	render()
	if !step.Update(enter()) {
		t.Fatal("Enter on the name input should yield")
	}
}

func TestRequiredInputBlocksAdvance(t *testing.T) {
	step := control.NewCompoundStep(control.NewDependencyState(),
		control.NewTextInput("name: ").WithRequired(),
		control.NewTextInput("role: "),
	)
	render, buf := harness(t, step)
	render()
	wantTexts(t, buf, "name: role: ")

	// Enter on the empty required input stays put and surfaces the
	// failure as a block row.
	if step.Update(enter()) {
		t.Fatal("empty required input must not advance")
	}
	render()
	wantTexts(t, buf, "name: role: ", "must not be empty")

	// Editing clears the failure row.
	step.Update(tcell.NewEventKey(tcell.KeyRune, 'k', tcell.ModNone))
	render()
	wantTexts(t, buf, "name: krole: ")

	if step.Update(enter()) {
		t.Fatal("focus should move to the role input")
	}
	if !step.Update(enter()) {
		t.Fatal("Enter on the role input should yield")
	}
}

func TestYesNoTogglesAndPublishes(t *testing.T) {
	seq := control.NewIDSequence()
	withDocs := seq.Next()

	step := control.NewCompoundStep(control.NewDependencyState(),
		control.NewYesNoInput("Include documentation?", "Docs").
			WithEvaluation(withDocs, control.Equal("Yes")),
		control.NewStaticText(" enabled").WithDependency(withDocs, control.Show),
	)
	render, buf := harness(t, step)

	// A focused No answer stays visible so it can be toggled.
	render()
	wantTexts(t, buf, "Docs: No", "Include documentation?")
	if step.Value() != "" {
		t.Fatalf("value %q, want omitted No answer", step.Value())
	}

	step.Update(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone))
	render()
	wantTexts(t, buf, "Docs: Yes enabled", "Include documentation?")
	if step.Value() != "Docs: Yes enabled" {
		t.Fatalf("value %q, want \"Docs: Yes enabled\"", step.Value())
	}
}

func TestYesNoOmittedOnceFocusLeaves(t *testing.T) {
	step := control.NewCompoundStep(control.NewDependencyState(),
		control.NewYesNoInput("Publish?", "Publish"),
	)
	render, buf := harness(t, step)
	render()
	wantTexts(t, buf, "Publish: No", "Publish?")

	if !step.Update(enter()) {
		t.Fatal("single-control step should yield on Enter")
	}
	render()
	wantTexts(t, buf, "")

	// With omission disabled the answer stays on screen.
	kept := control.NewCompoundStep(control.NewDependencyState(),
		control.NewYesNoInput("Publish?", "Publish").WithOmitIfNo(false),
	)
	renderKept, bufKept := harness(t, kept)
	renderKept()
	if !kept.Update(enter()) {
		t.Fatal("single-control step should yield on Enter")
	}
	renderKept()
	wantTexts(t, bufKept, "Publish: No")
}

func TestRevealedControlTakesFocusStop(t *testing.T) {
	seq := control.NewIDSequence()
	wantsDetail := seq.Next()

	step := control.NewCompoundStep(control.NewDependencyState(),
		control.NewSelectInput("plain", "detailed").WithEvaluation(wantsDetail, control.Equal("detailed")),
		control.NewTextInput("detail: ").WithDependency(wantsDetail, control.Show),
		control.NewTextInput("name: "),
	)
	render, buf := harness(t, step)
	render()

	// Selecting "detailed" reveals the input; it then takes a focus stop.
	step.Update(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone))
	render()
	wantTexts(t, buf, "detaileddetail: name: ", "plain", "detailed")

	if step.Update(enter()) {
		t.Fatal("focus should move to the revealed detail input")
	}
	if step.Update(enter()) {
		t.Fatal("focus should move on to the name input")
	}
	if !step.Update(enter()) {
		t.Fatal("Enter on the last control should yield")
	}
}
