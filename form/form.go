// Copyright © 2025 Ttyform contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: form/form.go
// Summary: Form drives the render/apply/layout cycle and step/focus state.

package form

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/ttyform/termbuf"
)

// ErrCanceled reports that the user aborted the form before completing it.
var ErrCanceled = errors.New("form: canceled")

// EventSource produces terminal events for the form loop. A tcell.Screen
// satisfies it directly; tests use scripted sources.
type EventSource interface {
	PollEvent() tcell.Event
}

// Form is an ordered list of steps driven through a render→apply→layout
// cycle per input event.
type Form struct {
	steps []*Step

	activeStep    int
	maxStep       int
	activeElement int
}

// New creates a form from the given steps.
func New(steps ...*Step) *Form {
	return &Form{steps: steps}
}

// Steps returns the form's steps in order.
func (f *Form) Steps() []*Step { return f.steps }

// GetElement returns the element at the given coordinates.
func (f *Form) GetElement(stepIndex, elementIndex int) Element {
	return f.steps[stepIndex].elements[elementIndex]
}

// Values collects the final values of every input element that produces one,
// in declaration order.
func (f *Form) Values() []string {
	var out []string
	for _, step := range f.steps {
		for _, element := range step.elements {
			if v, ok := element.(Valuer); ok && element.IsInput() {
				out = append(out, v.Value())
			}
		}
	}
	return out
}

// Run executes the form against the given buffer, reading events from the
// source until the user completes or cancels it. Completing the last element
// of the last step returns nil; Ctrl+C or backing out of the first element
// returns ErrCanceled.
func (f *Form) Run(buf *termbuf.Buffer, events EventSource) error {
	coordinator := NewCoordinator(buf)
	coordinator.InitializeElements(f)

	if len(f.steps) > 0 && len(f.steps[0].elements) > 0 && !f.activeElem().IsInput() {
		f.moveFocusForward()
	}

	if err := f.render(coordinator, true); err != nil {
		return err
	}

	for {
		ev := events.PollEvent()
		if ev == nil {
			return ErrCanceled
		}

		switch ev := ev.(type) {
		case *tcell.EventResize:
			// Repaint everything at the new width.
			if err := f.render(coordinator, true); err != nil {
				return err
			}
			continue
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyCtrlC:
				return ErrCanceled
			case ev.Key() == tcell.KeyEnter:
				shouldAdvance := true
				if f.activeElem().CapturesEnter() {
					shouldAdvance = f.activeElem().Update(ev)
				}
				if shouldAdvance && f.moveFocusForward() {
					return f.finish(coordinator)
				}
			case ev.Key() == tcell.KeyEscape:
				if f.moveFocusBackward() {
					return ErrCanceled
				}
			default:
				if f.activeElem().Update(ev) && f.moveFocusForward() {
					return f.finish(coordinator)
				}
			}
		}

		if err := f.render(coordinator, false); err != nil {
			return err
		}
	}
}

// finish runs one last render so completed input is on screen before the
// form returns.
func (f *Form) finish(coordinator *Coordinator) error {
	if err := f.render(coordinator, false); err != nil {
		return err
	}
	return nil
}

// moveFocusForward advances focus to the next input element, skipping
// non-inputs. Returns whether focus moved past the end of the form.
func (f *Form) moveFocusForward() bool {
	for {
		if f.activeElement+1 == len(f.steps[f.activeStep].elements) {
			if f.activeStep+1 == len(f.steps) {
				return true
			}
			f.activeStep++
			f.activeElement = 0
		} else {
			f.activeElement++
		}

		if f.activeElem().IsInput() {
			return false
		}
	}
}

// moveFocusBackward retreats focus to the previous input element, skipping
// non-inputs. Returns whether focus moved past the start of the form.
func (f *Form) moveFocusBackward() bool {
	for {
		if f.activeElement == 0 {
			if f.activeStep == 0 {
				return true
			}
			f.activeStep--
			f.activeElement = len(f.steps[f.activeStep].elements) - 1
		} else {
			f.activeElement--
		}

		if f.activeElem().IsInput() {
			return false
		}
	}
}

// render performs one frame: render the affected elements in ascending
// ElementId order, commit the buffer, then feed the layout report back to
// exactly the elements that rendered.
func (f *Form) render(coordinator *Coordinator, renderAll bool) error {
	minStep, maxStep := f.maxStep, f.activeStep
	if renderAll || f.maxStep < f.activeStep {
		minStep = 0
		maxStep = f.activeStep
	}
	newSteps := renderAll || maxStep > minStep

	coordinator.HideCursor()

	if newSteps {
		for stepIndex := minStep; stepIndex <= maxStep; stepIndex++ {
			for _, element := range f.steps[stepIndex].elements {
				if err := element.Render(coordinator); err != nil {
					return fmt.Errorf("render step %d: %w", stepIndex, err)
				}
			}
		}
	} else {
		if err := f.activeElem().Render(coordinator); err != nil {
			return fmt.Errorf("render active element: %w", err)
		}
	}

	if f.activeStep > f.maxStep {
		f.maxStep = f.activeStep
	}

	report, err := coordinator.ApplyChanges()
	if err != nil {
		return fmt.Errorf("apply changes: %w", err)
	}
	accessor := NewLayoutAccessor(report)

	if newSteps {
		for stepIndex := minStep; stepIndex <= maxStep; stepIndex++ {
			for _, element := range f.steps[stepIndex].elements {
				element.UpdateLayout(accessor)
			}
		}
	} else {
		f.activeElem().UpdateLayout(accessor)
	}

	return nil
}

func (f *Form) activeElem() Element {
	return f.steps[f.activeStep].elements[f.activeElement]
}
