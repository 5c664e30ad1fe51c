// Copyright © 2025 Ttyform contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: termbuf/errors.go
// Summary: Sentinel errors for buffer operations.

package termbuf

import "errors"

// Sentinel errors for buffer operations. Callers match with errors.Is.
var (
	// ErrUnknownLine reports a line handle the buffer does not hold.
	ErrUnknownLine = errors.New("termbuf: unknown line")

	// ErrUnknownSegment reports a segment handle the line does not hold.
	ErrUnknownSegment = errors.New("termbuf: unknown segment")

	// ErrIndexOutOfRange reports a positional operation past the end of a
	// line or of the buffer.
	ErrIndexOutOfRange = errors.New("termbuf: index out of range")

	// ErrDanglingCursor reports a cursor position referring to a line or
	// segment that is no longer in the buffer at apply time.
	ErrDanglingCursor = errors.New("termbuf: cursor refers to removed content")
)
