// Copyright © 2025 Ttyform contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: control/dependency.go
// Summary: Cross-control visibility dependencies and their evaluation state.

package control

// DependencyId identifies one dependency relationship between controls.
type DependencyId int

// IDSequence allocates dependency identifiers. It is owned by the
// form-construction phase; sharing one sequence across a form keeps ids
// unique without process-wide state.
type IDSequence struct {
	next DependencyId
}

// NewIDSequence creates an allocator starting at zero.
func NewIDSequence() *IDSequence { return &IDSequence{} }

// Next returns a fresh, unique dependency id.
func (s *IDSequence) Next() DependencyId {
	id := s.next
	s.next++
	return id
}

// EvaluationKind selects how a source control's value is tested.
type EvaluationKind int

const (
	// EvaluationIsEmpty is true when the source's value is empty.
	EvaluationIsEmpty EvaluationKind = iota
	// EvaluationEqual is true when the source's value matches Param.
	EvaluationEqual
	// EvaluationNotEqual is true when the source's value differs from Param.
	EvaluationNotEqual
)

// Evaluation tests a source control's value.
type Evaluation struct {
	Kind  EvaluationKind
	Param string
}

// IsEmpty builds an is-empty evaluation.
func IsEmpty() Evaluation { return Evaluation{Kind: EvaluationIsEmpty} }

// Equal builds an equality evaluation.
func Equal(param string) Evaluation { return Evaluation{Kind: EvaluationEqual, Param: param} }

// NotEqual builds an inequality evaluation.
func NotEqual(param string) Evaluation { return Evaluation{Kind: EvaluationNotEqual, Param: param} }

// Apply tests a value against this evaluation.
func (e Evaluation) Apply(value string) bool {
	switch e.Kind {
	case EvaluationIsEmpty:
		return value == ""
	case EvaluationEqual:
		return value == e.Param
	case EvaluationNotEqual:
		return value != e.Param
	default:
		return false
	}
}

// Action is what a dependent control does when its source evaluates true.
type Action int

const (
	// Hide hides the target while the evaluation is true.
	Hide Action = iota
	// Show hides the target while the evaluation is false.
	Show
)

// DependencyState carries the latest evaluation results across steps and
// render frames. One instance is shared by every compound step of a form.
type DependencyState struct {
	states  map[DependencyId]bool
	sources map[DependencyId][2]int
}

// NewDependencyState creates empty dependency state.
func NewDependencyState() *DependencyState {
	return &DependencyState{
		states:  make(map[DependencyId]bool),
		sources: make(map[DependencyId][2]int),
	}
}

// Register records the (step, control) indices of a dependency's source.
func (d *DependencyState) Register(id DependencyId, step, control int) {
	d.sources[id] = [2]int{step, control}
}

// Source returns the (step, control) indices a dependency was registered to.
func (d *DependencyState) Source(id DependencyId) (step, control int, ok bool) {
	src, ok := d.sources[id]
	return src[0], src[1], ok
}

// Update stores a dependency's latest evaluation result.
func (d *DependencyState) Update(id DependencyId, value bool) {
	d.states[id] = value
}

// Get returns a dependency's latest evaluation result, false when the source
// has not evaluated yet.
func (d *DependencyState) Get(id DependencyId) bool {
	return d.states[id]
}
