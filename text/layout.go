// Copyright © 2025 Ttyform contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: text/layout.go
// Summary: Rendered-row geometry fed back into the text model for wrap-aware movement.

package text

// RowLayout is one visual row of a rendered line: the rendered column width
// of each rune on that row.
type RowLayout struct {
	Widths []int
}

// RuneCount returns how many runes landed on this row.
func (r RowLayout) RuneCount() int { return len(r.Widths) }

// LineLayout is the rendered geometry of one logical line: the visual rows
// it wrapped onto, top to bottom.
type LineLayout struct {
	Rows []RowLayout
}

// NewLineLayout builds a line layout from its rows.
func NewLineLayout(rows []RowLayout) LineLayout { return LineLayout{Rows: rows} }
