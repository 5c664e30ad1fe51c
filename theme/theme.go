// Copyright © 2025 Ttyform contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: theme/theme.go
// Summary: Color theme with JSON-loadable overrides for form chrome.

package theme

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// Theme maps section/key pairs to tcell colors. Sections group related
// chrome (help text, drawers, validation) so overrides stay small.
type Theme struct {
	mu       sync.RWMutex
	sections map[string]map[string]string
}

var (
	defaultTheme *Theme
	once         sync.Once
)

// Get returns the process-wide theme.
func Get() *Theme {
	once.Do(func() {
		defaultTheme = &Theme{sections: map[string]map[string]string{}}
	})
	return defaultTheme
}

// LoadFile merges a JSON theme file into the theme. The file holds sections
// of color-name strings:
//
//	{"form": {"help_fg": "darkgoldenrod", "drawer_fg": "blue"}}
func (t *Theme) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("theme: read %s: %w", path, err)
	}
	return t.LoadJSON(data)
}

// LoadJSON merges JSON theme data into the theme.
func (t *Theme) LoadJSON(data []byte) error {
	var sections map[string]map[string]string
	if err := json.Unmarshal(data, &sections); err != nil {
		return fmt.Errorf("theme: parse: %w", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	for name, section := range sections {
		if t.sections[name] == nil {
			t.sections[name] = map[string]string{}
		}
		for key, value := range section {
			t.sections[name][key] = value
		}
	}
	return nil
}

// GetColor resolves a themed color, falling back when the key is absent or
// does not name a color tcell knows.
func (t *Theme) GetColor(section, key string, fallback tcell.Color) tcell.Color {
	t.mu.RLock()
	name := t.sections[section][key]
	t.mu.RUnlock()

	if name == "" {
		return fallback
	}
	color := tcell.GetColor(name)
	if color == tcell.ColorDefault {
		return fallback
	}
	return color
}

// Styles for the form chrome. Controls consume these rather than hard-coding
// colors.

// HelpStyle styles a focused control's help text.
func HelpStyle() tcell.Style {
	return tcell.StyleDefault.Foreground(Get().GetColor("form", "help_fg", tcell.ColorDarkGoldenrod))
}

// DrawerStyle styles unselected drawer rows.
func DrawerStyle() tcell.Style {
	return tcell.StyleDefault.Foreground(Get().GetColor("form", "drawer_fg", tcell.ColorBlue))
}

// DrawerSelectedStyle styles the selected drawer row.
func DrawerSelectedStyle() tcell.Style {
	return tcell.StyleDefault.Foreground(Get().GetColor("form", "drawer_selected_fg", tcell.ColorAqua))
}

// ErrorStyle styles validation failures.
func ErrorStyle() tcell.Style {
	return tcell.StyleDefault.Foreground(Get().GetColor("form", "error_fg", tcell.ColorRed))
}

// MutedStyle styles de-emphasized text.
func MutedStyle() tcell.Style {
	return tcell.StyleDefault.Foreground(Get().GetColor("form", "muted_fg", tcell.ColorGray))
}
