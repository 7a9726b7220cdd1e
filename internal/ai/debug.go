package ai

import (
	"log/slog"
	"sync/atomic"

	"github.com/udisondev/battlecore/internal/battle"
)

// traceDecisions gates the per-turn decision trace of every AI.
var traceDecisions atomic.Bool

// TraceDecisions switches the decision trace on or off for all battles.
func TraceDecisions(on bool) {
	traceDecisions.Store(on)
}

// Tracing reports whether decisions are traced.
func Tracing() bool {
	return traceDecisions.Load()
}

// traceDecision logs what an AI picked for b this turn.
func traceDecision(l *battle.Logic, level int, b *battle.Battler, actions []battle.Action) {
	if !Tracing() {
		return
	}
	slog.Debug("AI decision",
		"battleID", l.Info().BattleID,
		"turn", l.Turn(),
		"level", level,
		"battler", b.String(),
		"actions", actions)
}
