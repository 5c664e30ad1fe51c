// Copyright © 2025 Ttyform contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/ttyform-demo/main.go
// Summary: Interactive demo of a two-step form with dependencies.

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/framegrace/ttyform/control"
	"github.com/framegrace/ttyform/elements"
	"github.com/framegrace/ttyform/form"
	"github.com/framegrace/ttyform/termbuf"
)

func main() {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "ttyform-demo: stdout is not a terminal")
		os.Exit(1)
	}

	values, err := runForm()
	if err != nil {
		if errors.Is(err, form.ErrCanceled) {
			fmt.Println("canceled")
			return
		}
		fmt.Fprintf(os.Stderr, "ttyform-demo: %v\n", err)
		os.Exit(1)
	}

	for _, value := range values {
		fmt.Println(value)
	}
}

func runForm() ([]string, error) {
	deps := control.NewDependencyState()
	seq := control.NewIDSequence()
	usesGo := seq.Next()

	first := control.NewCompoundStep(deps,
		control.NewStaticText("Name: "),
		control.NewTextInput("").WithHelp("Your full name.").WithRequired(),
		control.NewStaticText("  Language: "),
		control.NewSelectInput("Go", "Rust", "Zig").
			WithHelp("Up/Down to choose.").
			WithEvaluation(usesGo, control.Equal("Go")),
		control.NewStaticText("  (nice choice)").WithDependency(usesGo, control.Show),
		control.NewStaticText("  "),
		control.NewYesNoInput("Up/Down to include generated docs.", "Docs"),
	)

	notes := form.NewStep(
		elements.NewLiteral("Notes:"),
		elements.NewText(true),
	)

	f := form.New(first.Step(), notes)

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	buf := termbuf.New(termbuf.NewTcellScreenDriver(screen))
	if err := f.Run(buf, screen); err != nil {
		return nil, err
	}
	return f.Values(), nil
}
