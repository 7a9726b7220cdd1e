package battle

// EffectsFor returns the effects concerned by an event touching subjects.
// Order: each subject's own effects, then the affects-allies effects of its
// alive bank mates in position order, then field effects. Every effect
// appears once. Abilities of suppressed owners are left out.
func (l *Logic) EffectsFor(subjects ...*Battler) []Effect {
	c := newCollector()
	for _, s := range subjects {
		if s == nil {
			continue
		}
		c.addAll(s.OwnEffects(), false)
		if !s.Active() {
			continue
		}
		for _, ally := range l.board[s.Bank] {
			if ally == nil || ally == s || ally.Dead() {
				continue
			}
			c.addAll(ally.OwnEffects(), true)
		}
	}
	c.addAll(l.field.Live(), false)
	return c.out
}

// BoardEffects returns the effects of every alive active battler, starting
// with firstBank and walking positions in order, then field effects.
func (l *Logic) BoardEffects(firstBank int) []Effect {
	c := newCollector()
	n := len(l.board)
	for i := 0; i < n; i++ {
		bank := (firstBank + i) % n
		for _, b := range l.board[bank] {
			if b == nil || b.Dead() {
				continue
			}
			c.addAll(b.OwnEffects(), false)
		}
	}
	c.addAll(l.field.Live(), false)
	return c.out
}

// live reports whether e may still answer hooks. An ability whose owner
// got suppressed since the effects were collected stops answering.
func live(e Effect) bool {
	if e.Dead() {
		return false
	}
	if e.Family() == FamilyAbility {
		if o := e.Owner(); o != nil && o.AbilitySuppressed() {
			return false
		}
	}
	return true
}

type collector struct {
	seen map[Effect]struct{}
	out  []Effect
}

func newCollector() *collector {
	return &collector{seen: make(map[Effect]struct{})}
}

func (c *collector) addAll(effects []Effect, alliesOnly bool) {
	for _, e := range effects {
		if alliesOnly && !e.AffectsAllies() {
			continue
		}
		c.add(e)
	}
}

func (c *collector) add(e Effect) {
	if e == nil || !live(e) {
		return
	}
	if _, ok := c.seen[e]; ok {
		return
	}
	c.seen[e] = struct{}{}
	c.out = append(c.out, e)
}

// Product multiplies the results of every effect implementing hook T.
func Product[T any](effects []Effect, f func(T) float64) float64 {
	product := 1.0
	for _, e := range effects {
		if h, ok := e.(T); ok && live(e) {
			product *= f(h)
		}
	}
	return product
}

// Notify invokes f on every live effect implementing hook T, in order.
func Notify[T any](effects []Effect, f func(T)) {
	for _, e := range effects {
		if !live(e) {
			continue
		}
		if h, ok := e.(T); ok {
			f(h)
		}
	}
}

// FirstPrevention returns the first non-nil prevention of hook T, committed.
func FirstPrevention[T any](effects []Effect, f func(T) *Prevention) *Prevention {
	for _, e := range effects {
		if !live(e) {
			continue
		}
		h, ok := e.(T)
		if !ok {
			continue
		}
		if p := f(h); p != nil {
			p.Commit()
			return p
		}
	}
	return nil
}

// Blocks reports whether some effect implementing hook T would block,
// without committing any announcement. Used to ask before acting.
func Blocks[T any](effects []Effect, f func(T) *Prevention) bool {
	for _, e := range effects {
		if !live(e) {
			continue
		}
		if h, ok := e.(T); ok {
			if p := f(h); p != nil && p.Block {
				return true
			}
		}
	}
	return false
}

// ResolvePrevention walks hook T carrying value. Replacements are fed to
// the next effect. The first blocking result ends the walk with blocked set
// and is the only one committed; otherwise every replacement is committed
// once the walk ends.
func ResolvePrevention[T any](effects []Effect, value int, f func(T, int) *Prevention) (result int, blocked bool) {
	var replaced []*Prevention
	for _, e := range effects {
		if !live(e) {
			continue
		}
		h, ok := e.(T)
		if !ok {
			continue
		}
		p := f(h, value)
		if p == nil {
			continue
		}
		if p.Block {
			p.Commit()
			return value, true
		}
		replaced = append(replaced, p)
		value = p.Value
	}
	for _, p := range replaced {
		p.Commit()
	}
	return value, false
}

// FirstOverride returns the first answer of override hook T.
func FirstOverride[T any, V any](effects []Effect, f func(T) (V, bool)) (V, bool) {
	for _, e := range effects {
		if !live(e) {
			continue
		}
		if h, ok := e.(T); ok {
			if v, ok := f(h); ok {
				return v, true
			}
		}
	}
	var zero V
	return zero, false
}

// Any reports whether some effect implementing hook T answers true.
func Any[T any](effects []Effect, f func(T) bool) bool {
	_, ok := FirstOverride(effects, func(h T) (struct{}, bool) { return struct{}{}, f(h) })
	return ok
}
