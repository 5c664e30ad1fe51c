// Copyright © 2025 Ttyform contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: text/key.go
// Summary: Editing-key vocabulary consumed by the text model.

package text

// KeyKind identifies an editing operation.
type KeyKind int

const (
	KeyChar KeyKind = iota
	KeyEnter
	KeyBackspace
	KeyDelete
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
)

// Key is one editing input. Rune is meaningful only for KeyChar.
type Key struct {
	Kind KeyKind
	Rune rune
}

// Char builds a character-insertion key.
func Char(r rune) Key { return Key{Kind: KeyChar, Rune: r} }
