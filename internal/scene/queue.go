package scene

import (
	"github.com/udisondev/battlecore/internal/battle"
)

// ActionQueue holds the actions chosen by the player, one entry per
// active slot. An entry holds more than one action when the attack comes
// with a mega evolution.
type ActionQueue struct {
	entries [][]battle.Action
}

// Len returns the number of filled slots.
func (q *ActionQueue) Len() int { return len(q.entries) }

// Push fills the next slot. Provisional actions apply their side effects now.
func (q *ActionQueue) Push(actions ...battle.Action) {
	for _, a := range actions {
		if p, ok := a.(battle.Provisional); ok {
			p.PreApply()
		}
	}
	q.entries = append(q.entries, actions)
}

// Pop removes the last slot and reverts what its actions applied.
func (q *ActionQueue) Pop() []battle.Action {
	if len(q.entries) == 0 {
		return nil
	}
	last := q.entries[len(q.entries)-1]
	q.entries = q.entries[:len(q.entries)-1]
	for i := len(last) - 1; i >= 0; i-- {
		if p, ok := last[i].(battle.Provisional); ok {
			p.Undo()
		}
	}
	return last
}

// Cancel pops back to and including the last slot holding a real action,
// so the slots skipped with a Pass before it are freed too.
func (q *ActionQueue) Cancel() bool {
	for len(q.entries) > 0 {
		entry := q.Pop()
		if !isPass(entry) {
			return true
		}
	}
	return false
}

// Flatten returns every queued action in slot order.
func (q *ActionQueue) Flatten() []battle.Action {
	var out []battle.Action
	for _, e := range q.entries {
		out = append(out, e...)
	}
	return out
}

// Entry returns the actions of slot i.
func (q *ActionQueue) Entry(i int) []battle.Action {
	if i < 0 || i >= len(q.entries) {
		return nil
	}
	return q.entries[i]
}

// Clear empties the queue without reverting anything.
func (q *ActionQueue) Clear() { q.entries = q.entries[:0] }

func isPass(entry []battle.Action) bool {
	for _, a := range entry {
		if a.Kind() != battle.ActionPass {
			return false
		}
	}
	return true
}
