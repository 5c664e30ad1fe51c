// Copyright © 2025 Ttyform contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: elements/literal.go
// Summary: Literal is a static text element.

package elements

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/ttyform/form"
	"github.com/framegrace/ttyform/termbuf"
)

// Literal renders fixed text once and never changes. The first line of the
// text becomes an inline segment; each further newline-separated line
// becomes a private block line.
type Literal struct {
	id       form.ElementId
	hasID    bool
	text     string
	style    tcell.Style
	rendered bool
}

// NewLiteral creates a static text element. Every newline produces a line
// break, so text ending in "\n" renders a trailing empty row.
func NewLiteral(text string) *Literal {
	return &Literal{text: text, style: tcell.StyleDefault}
}

// WithStyle sets the style the text renders with.
func (l *Literal) WithStyle(style tcell.Style) *Literal {
	l.style = style
	return l
}

// Text returns the literal's content.
func (l *Literal) Text() string { return l.text }

func (l *Literal) SetID(id form.ElementId) {
	l.id = id
	l.hasID = true
}

func (l *Literal) Render(c *form.Coordinator) error {
	if l.rendered {
		return nil
	}

	for index, lineText := range strings.Split(l.text, "\n") {
		var seg *termbuf.Segment
		if index == 0 {
			s, err := c.AddSegment(l.id)
			if err != nil {
				return err
			}
			seg = s
		} else {
			line, err := c.AddLine(l.id)
			if err != nil {
				return err
			}
			seg = line.AddSegment()
		}
		seg.SetText(lineText)
		seg.SetStyle(l.style)
	}

	l.rendered = true
	return nil
}

func (l *Literal) UpdateLayout(*form.LayoutAccessor) {}

func (l *Literal) IsInput() bool { return false }

func (l *Literal) CapturesEnter() bool { return false }

func (l *Literal) Update(*tcell.EventKey) bool { return false }
