// Package theme provides the registry of cosmetic color palettes.
// Palettes register themselves in init() functions; the game core only ever
// sees a theme count and an index, never color values.
package theme

import (
	"fmt"
	"sort"
	"sync"
)

// Theme is a named pair of hex colors.
type Theme struct {
	ID        string // Stable identifier, e.g. "01"
	Name      string // Display name, e.g. "Sentinel Red"
	Primary   string // Timer digits, action accent, best score
	Secondary string // Borders, separators, quick-select highlight
}

var (
	themes = make(map[string]Theme)
	sorted []Theme
	mu     sync.RWMutex
)

// Register adds a theme to the registry.
// Panics if a theme with the same ID is already registered.
func Register(t Theme) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := themes[t.ID]; exists {
		panic(fmt.Sprintf("theme: %q already registered", t.ID))
	}
	themes[t.ID] = t

	sorted = sorted[:0]
	for _, th := range themes {
		sorted = append(sorted, th)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ID < sorted[j].ID
	})
}

// List returns all registered themes, sorted by ID.
func List() []Theme {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]Theme, len(sorted))
	copy(out, sorted)
	return out
}

// Count returns the number of registered themes.
func Count() int {
	mu.RLock()
	defer mu.RUnlock()
	return len(sorted)
}

// Get looks up a theme by ID.
func Get(id string) (Theme, bool) {
	mu.RLock()
	defer mu.RUnlock()
	t, ok := themes[id]
	return t, ok
}

// At returns the theme at index i in ID order, wrapping modulo the count.
// Returns the zero Theme if nothing is registered.
func At(i int) Theme {
	mu.RLock()
	defer mu.RUnlock()

	n := len(sorted)
	if n == 0 {
		return Theme{}
	}
	i %= n
	if i < 0 {
		i += n
	}
	return sorted[i]
}

// IndexOf returns the position of the theme with the given ID in ID order.
func IndexOf(id string) (int, bool) {
	mu.RLock()
	defer mu.RUnlock()

	for i, t := range sorted {
		if t.ID == id {
			return i, true
		}
	}
	return 0, false
}
