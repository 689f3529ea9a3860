// Package registry maps level IDs to factories. Level packages register
// themselves from init, so shells find levels without importing them by name.
package registry

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vovakirdan/karel-quest/internal/core"
)

// Game is a playable level as the shells see it. Implementations are pure
// simulation: no terminal, window or clock access.
type Game interface {
	// ID is stable across releases; scores are stored under it.
	ID() string
	Title() string

	// Reset starts the level over. Called before the first Step.
	Reset(cfg core.RuntimeConfig)

	// Step advances one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the latest tick into dst, overwriting every cell.
	Render(dst *core.Screen)

	State() core.GameState
}

// GameInfo describes a registered level.
type GameInfo struct {
	ID    string
	Title string
}

// Factory builds a fresh level. It fails when level data or configuration
// is invalid.
type Factory func() (Game, error)

type entry struct {
	info    GameInfo
	factory Factory
}

var (
	mu      sync.RWMutex
	entries = map[string]entry{}
)

// Register adds a level. Registering an ID twice panics.
func Register(id, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	if _, dup := entries[id]; dup {
		panic(fmt.Sprintf("registry: level %q registered twice", id))
	}
	entries[id] = entry{info: GameInfo{ID: id, Title: title}, factory: f}
}

// List returns every level sorted by ID.
func List() []GameInfo {
	mu.RLock()
	out := make([]GameInfo, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.info)
	}
	mu.RUnlock()

	slices.SortFunc(out, func(a, b GameInfo) int { return strings.Compare(a.ID, b.ID) })
	return out
}

// Lookup returns the info of a registered level.
func Lookup(id string) (GameInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()
	e, ok := entries[id]
	return e.info, ok
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	_, ok := Lookup(id)
	return ok
}

// Create builds a new instance of level id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("registry: unknown level %q", id)
	}

	g, err := e.factory()
	if err != nil {
		return nil, fmt.Errorf("registry: create %q: %w", id, err)
	}
	return g, nil
}
