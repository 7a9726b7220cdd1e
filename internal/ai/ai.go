// Package ai chooses actions for the parties the player does not control.
package ai

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/udisondev/battlecore/internal/battle"
)

// AI chooses the actions of one party each turn.
type AI interface {
	Bank() int
	Party() int
	Level() int
	// Trigger returns one action per active battler of the party.
	Trigger() []battle.Action
}

// Factory builds the AI of a level for (bank, party) of l.
type Factory func(l *battle.Logic, bank, party, level int) AI

// Registry maps AI levels to factories. It is safe for concurrent use,
// so many battles can share one registry.
type Registry struct {
	factories sync.Map // map[int]Factory
	count     atomic.Int32
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// DefaultRegistry registers the Basic AI for levels 1 to 3.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for level := 1; level <= 3; level++ {
		r.Register(level, NewBasic)
	}
	return r
}

// Register binds level to f. The last registration wins.
func (r *Registry) Register(level int, f Factory) {
	if _, loaded := r.factories.Swap(level, f); !loaded {
		r.count.Add(1)
	}
	slog.Debug("AI level registered", "level", level)
}

// Unregister removes level.
func (r *Registry) Unregister(level int) {
	if _, ok := r.factories.LoadAndDelete(level); ok {
		r.count.Add(-1)
	}
}

// Count returns the number of registered levels.
func (r *Registry) Count() int {
	return int(r.count.Load())
}

// Factory returns the factory of level.
func (r *Registry) Factory(level int) (Factory, error) {
	v, ok := r.factories.Load(level)
	if !ok {
		return nil, fmt.Errorf("AI factory not found for level %d", level)
	}
	return v.(Factory), nil
}

// Build creates one AI per AI-driven party of l, bank by bank.
func (r *Registry) Build(l *battle.Logic) ([]AI, error) {
	var out []AI
	for bank, parties := range l.Info().AILevels {
		for party := range parties {
			level, ok := l.Info().AILevel(bank, party)
			if !ok {
				continue
			}
			f, err := r.Factory(level)
			if err != nil {
				return nil, fmt.Errorf("building AI of bank %d party %d: %w", bank, party, err)
			}
			out = append(out, f(l, bank, party, level))
		}
	}
	return out, nil
}
