// Package registry provides a global registry for autopilot factories.
// Pilots register themselves in init() functions, so the headless
// simulator can list and build them by name.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-survivors/internal/core"
	"github.com/vovakirdan/tui-survivors/internal/games/survivors"
)

// Pilot drives a session without a human at the keyboard.
type Pilot interface {
	// ID returns a unique identifier used on the command line (e.g., "kite").
	ID() string

	// Title returns a human-readable name.
	Title() string

	// Reset prepares the pilot for a new session.
	Reset(seed int64)

	// Decide returns the input for the next frame given the current state.
	// It is only consulted while playing or choosing an upgrade.
	Decide(snap survivors.Snapshot) core.InputFrame
}

// PilotInfo contains metadata about a registered pilot.
type PilotInfo struct {
	ID    string
	Title string
}

// Factory creates a new pilot instance.
type Factory func() Pilot

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a pilot factory to the registry.
// Panics if a pilot with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: pilot %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns all registered pilots, sorted by ID.
func List() []PilotInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]PilotInfo, 0, len(factories))
	for id := range factories {
		result = append(result, PilotInfo{ID: id, Title: titles[id]})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a pilot by its ID.
func Create(id string) (Pilot, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown pilot %q", id)
	}

	return f(), nil
}

// Exists checks if a pilot with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
