// Copyright © 2025 Ttyform contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/ttyform-layout/main.go
// Summary: Split/join exercise: dynamic elements growing among literals.

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/framegrace/ttyform/elements"
	"github.com/framegrace/ttyform/form"
	"github.com/framegrace/ttyform/termbuf"
)

func main() {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "ttyform-layout: stdout is not a terminal")
		os.Exit(1)
	}

	f := form.New(
		form.NewStep(
			newDynamic("D0"),
			elements.NewLiteral("E0S1"),
			elements.NewLiteral("E1S1\nE1S2\nE1S3"),
			elements.NewLiteral("E2S1"),
			elements.NewLiteral("E3S1"),
			elements.NewLiteral("E4S1\nE4S2"),
			elements.NewLiteral("E5S1"),
			elements.NewLiteral("E6S1\nE6S2"),
		),
		form.NewStep(
			elements.NewLiteral("E7S1\nE7S2"),
			elements.NewLiteral("E8S1"),
			newDynamic("D1"),
			elements.NewLiteral("E9S1"),
			elements.NewLiteral("E10S1\nE10S2"),
		),
	)

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ttyform-layout: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "ttyform-layout: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	buf := termbuf.New(termbuf.NewTcellScreenDriver(screen))
	if err := f.Run(buf, screen); err != nil && !errors.Is(err, form.ErrCanceled) {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "ttyform-layout: %v\n", err)
		os.Exit(1)
	}
}

// dynamic cycles through three layout states with Left/Right: a lone inline
// segment, a second inline segment inserted before it, and a private block
// line. Walking the states forces inline-line splits and joins around the
// literal siblings.
type dynamic struct {
	id    form.ElementId
	state int
	tag   string

	status  termbuf.SegmentID
	s1      termbuf.SegmentID
	s2      termbuf.SegmentID
	line    termbuf.LineID
	hasStat bool
	hasS1   bool
	hasS2   bool
	hasLine bool
}

func newDynamic(tag string) *dynamic {
	return &dynamic{tag: tag}
}

func (d *dynamic) SetID(id form.ElementId) { d.id = id }

func (d *dynamic) Render(c *form.Coordinator) error {
	if !d.hasStat {
		seg, err := c.AddSegment(d.id)
		if err != nil {
			return err
		}
		d.status = seg.ID()
		d.hasStat = true
	}
	c.Segment(d.id, d.status).SetText(fmt.Sprintf("[state=%d]", d.state))

	switch d.state {
	case 0:
		if !d.hasS1 {
			seg, err := c.AddSegment(d.id)
			if err != nil {
				return err
			}
			seg.SetText(d.tag + "S0")
			d.s1 = seg.ID()
			d.hasS1 = true
		}
		if d.hasS2 {
			if err := c.RemoveSegment(d.id, d.s2); err != nil {
				return err
			}
			d.hasS2 = false
		}
	case 1:
		if !d.hasS2 {
			seg, err := c.InsertSegment(d.id, 0)
			if err != nil {
				return err
			}
			seg.SetText(d.tag + "S1")
			d.s2 = seg.ID()
			d.hasS2 = true
		}
		if d.hasLine {
			if err := c.RemoveLine(d.id, d.line); err != nil {
				return err
			}
			d.hasLine = false
		}
	case 2:
		if !d.hasLine {
			line, err := c.AddLine(d.id)
			if err != nil {
				return err
			}
			d.line = line.ID()
			d.hasLine = true

			line.AddSegment().SetText(d.tag + "S2")
		}
	}

	c.SetCursor(termbuf.Position{
		Line:    c.InlineLineID(d.id),
		Segment: d.s1,
		Column:  0,
	})
	return nil
}

func (d *dynamic) UpdateLayout(*form.LayoutAccessor) {}

func (d *dynamic) IsInput() bool { return true }

func (d *dynamic) CapturesEnter() bool { return false }

func (d *dynamic) Update(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyRight:
		if d.state < 2 {
			d.state++
		}
	case tcell.KeyLeft:
		if d.state > 0 {
			d.state--
		}
	}
	return false
}
