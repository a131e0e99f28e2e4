// Package registry keeps the maze variants the platform can start.
// Variants register themselves in init() functions so the CLI, menu and
// SSH server can list and create them by ID.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/roommaze/internal/core"
)

// ErrUnknownVariant is returned by Create for an unregistered ID.
var ErrUnknownVariant = errors.New("registry: unknown variant")

// Game is the interface every maze variant implements.
// Games hold pure simulation state; the platform owns input, timing and drawing.
type Game interface {
	// ID is the stable identifier used on the command line and in saved runs.
	ID() string

	// Title is the display name.
	Title() string

	// Reset builds a new maze from cfg.Seed. It is called before the first
	// Step and again on every restart.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current frame into dst, which the caller has cleared.
	Render(dst *core.Screen)

	// State reports the run without advancing it.
	State() core.GameState
}

// Variant describes a registered game.
type Variant struct {
	ID      string
	Title   string
	Summary string // one line for the menu and list command
}

// Factory creates a fresh, not yet Reset, game.
type Factory func() Game

type entry struct {
	info    Variant
	factory Factory
}

var (
	mu       sync.RWMutex
	variants = make(map[string]entry)
)

// Register adds a variant. It panics on an empty or duplicate ID.
func Register(v Variant, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if v.ID == "" {
		panic("registry: variant without an ID")
	}
	if _, exists := variants[v.ID]; exists {
		panic(fmt.Sprintf("registry: variant %q already registered", v.ID))
	}
	variants[v.ID] = entry{info: v, factory: f}
}

// List returns every registered variant sorted by ID.
func List() []Variant {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Variant, 0, len(variants))
	for _, e := range variants {
		result = append(result, e.info)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Lookup returns the variant registered under id.
func Lookup(id string) (Variant, bool) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := variants[id]
	return e.info, ok
}

// Create instantiates the variant registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := variants[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownVariant, id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	_, ok := Lookup(id)
	return ok
}
