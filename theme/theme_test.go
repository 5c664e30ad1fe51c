// Copyright © 2025 Ttyform contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: theme/theme_test.go
// Summary: Theme loading, merging and color resolution.

package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func newTheme() *Theme {
	return &Theme{sections: map[string]map[string]string{}}
}

func TestGetColorFallsBack(t *testing.T) {
	th := newTheme()

	if got := th.GetColor("form", "help_fg", tcell.ColorRed); got != tcell.ColorRed {
		t.Fatalf("missing key resolved to %v, want fallback", got)
	}

	if err := th.LoadJSON([]byte(`{"form": {"help_fg": "not-a-color"}}`)); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := th.GetColor("form", "help_fg", tcell.ColorRed); got != tcell.ColorRed {
		t.Fatalf("bad color name resolved to %v, want fallback", got)
	}
}

func TestLoadJSONMergesSections(t *testing.T) {
	th := newTheme()

	if err := th.LoadJSON([]byte(`{"form": {"help_fg": "blue", "drawer_fg": "green"}}`)); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := th.LoadJSON([]byte(`{"form": {"help_fg": "yellow"}}`)); err != nil {
		t.Fatalf("load: %v", err)
	}

	if got := th.GetColor("form", "help_fg", tcell.ColorDefault); got != tcell.ColorYellow {
		t.Fatalf("help_fg %v, want yellow", got)
	}
	if got := th.GetColor("form", "drawer_fg", tcell.ColorDefault); got != tcell.ColorGreen {
		t.Fatalf("drawer_fg %v, want green (merge must not drop siblings)", got)
	}
}

func TestLoadJSONRejectsMalformed(t *testing.T) {
	th := newTheme()
	if err := th.LoadJSON([]byte(`{"form": "oops"}`)); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.json")
	if err := os.WriteFile(path, []byte(`{"form": {"error_fg": "purple"}}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	th := newTheme()
	if err := th.LoadFile(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := th.GetColor("form", "error_fg", tcell.ColorDefault); got != tcell.ColorPurple {
		t.Fatalf("error_fg %v, want purple", got)
	}

	if err := th.LoadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
