package battle

// EffectList holds the volatile effects of a battler or of the field.
// Dead effects are swept lazily.
type EffectList struct {
	effects []Effect
}

// Add appends e.
func (l *EffectList) Add(e Effect) {
	l.effects = append(l.effects, e)
}

// Replace kills every live effect with e's id, then adds e.
func (l *EffectList) Replace(e Effect) {
	l.Remove(e.ID())
	l.Add(e)
}

// Get returns the first live effect with id, or nil.
func (l *EffectList) Get(id string) Effect {
	for _, e := range l.effects {
		if !e.Dead() && e.ID() == id {
			return e
		}
	}
	return nil
}

// Has reports whether a live effect with id is present.
func (l *EffectList) Has(id string) bool {
	return l.Get(id) != nil
}

// Remove kills every live effect with id.
func (l *EffectList) Remove(id string) {
	for _, e := range l.effects {
		if !e.Dead() && e.ID() == id {
			e.Kill()
		}
	}
	l.sweep()
}

// Live returns the live effects in insertion order.
func (l *EffectList) Live() []Effect {
	l.sweep()
	out := make([]Effect, len(l.effects))
	copy(out, l.effects)
	return out
}

// Len returns the number of live effects.
func (l *EffectList) Len() int {
	l.sweep()
	return len(l.effects)
}

// Clear kills all effects.
func (l *EffectList) Clear() {
	for _, e := range l.effects {
		e.Kill()
	}
	l.effects = l.effects[:0]
}

func (l *EffectList) sweep() {
	n := 0
	for _, e := range l.effects {
		if !e.Dead() {
			l.effects[n] = e
			n++
		}
	}
	for i := n; i < len(l.effects); i++ {
		l.effects[i] = nil
	}
	l.effects = l.effects[:n]
}
