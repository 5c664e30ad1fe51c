package form

// Step is one screen of the form: an ordered list of elements which initially
// share a single buffer line.
type Step struct {
	elements []Element
}

// NewStep creates a step from the given elements, in declaration order.
func NewStep(elements ...Element) *Step {
	return &Step{elements: elements}
}

// AddElement appends an element to this step.
func (s *Step) AddElement(e Element) {
	s.elements = append(s.elements, e)
}

// Elements returns this step's elements in declaration order.
func (s *Step) Elements() []Element {
	return s.elements
}
