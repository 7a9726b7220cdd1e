package ability

import (
	"github.com/udisondev/battlecore/internal/battle"
	"github.com/udisondev/battlecore/internal/model"
)

func registerTriggers(r *battle.Registry) {
	register(r, trapper(func(b *battle.Battler) bool { return !b.HasAbility("shadow_tag") }), "shadow_tag")
	register(r, trapper(grounded), "arena_trap")
	register(r, trapper(func(b *battle.Battler) bool { return b.HasType(model.TypeSteel) }), "magnet_pull")

	register(r, func(id string, owner *battle.Battler) battle.Effect {
		return &Intimidate{Base: battle.NewAbility(id, owner)}
	}, "intimidate")
	register(r, func(id string, owner *battle.Battler) battle.Effect {
		return &NeutralizingGas{Base: battle.NewAbility(id, owner)}
	}, "neutralizing_gas")
	register(r, func(id string, owner *battle.Battler) battle.Effect {
		return &Trace{Base: battle.NewAbility(id, owner)}
	}, "trace")
	register(r, func(id string, owner *battle.Battler) battle.Effect {
		f := &Forecast{Base: battle.NewAbility(id, owner)}
		if owner != nil {
			f.types = append([]model.Type(nil), owner.Types...)
		}
		return f
	}, "forecast")
	register(r, func(id string, owner *battle.Battler) battle.Effect {
		return &SpeedBoost{Base: battle.NewAbility(id, owner)}
	}, "speed_boost")
	register(r, func(id string, owner *battle.Battler) battle.Effect {
		return &Truant{Base: battle.NewAbility(id, owner)}
	}, "truant")

	register(r, contactRetaliation(8, model.StatusNone), "rough_skin", "iron_barbs")
	register(r, contactRetaliation(0, model.StatusParalysis), "static")
	register(r, contactRetaliation(0, model.StatusPoison), "poison_point")
	register(r, contactRetaliation(0, model.StatusBurn), "flame_body")
	register(r, func(id string, owner *battle.Battler) battle.Effect {
		return &Aftermath{Base: battle.NewAbility(id, owner)}
	}, "aftermath")
	register(r, func(id string, owner *battle.Battler) battle.Effect {
		return &Moxie{Base: battle.NewAbility(id, owner)}
	}, "moxie")
	register(r, func(id string, owner *battle.Battler) battle.Effect {
		return &Synchronize{Base: battle.NewAbility(id, owner)}
	}, "synchronize")

	register(r, retaliateStat(model.StatAtk), "defiant")
	register(r, retaliateStat(model.StatAts), "competitive")
	register(r, stageScaling(-1), "contrary")
	register(r, stageScaling(2), "simple")

	register(r, func(id string, owner *battle.Battler) battle.Effect {
		return &Regenerator{Base: battle.NewAbility(id, owner)}
	}, "regenerator")
	register(r, func(id string, owner *battle.Battler) battle.Effect {
		return &NaturalCure{Base: battle.NewAbility(id, owner)}
	}, "natural_cure")
	register(r, func(id string, owner *battle.Battler) battle.Effect {
		return &RunAway{Base: battle.NewAbility(id, owner)}
	}, "run_away")
	register(r, func(id string, owner *battle.Battler) battle.Effect {
		return &Unburden{Base: battle.NewAbility(id, owner)}
	}, "unburden")
}

// Trapper keeps the foes matching Traps from switching out or fleeing.
type Trapper struct {
	battle.Base
	Traps func(*battle.Battler) bool
}

func trapper(traps func(*battle.Battler) bool) battle.Factory {
	return func(id string, owner *battle.Battler) battle.Effect {
		return &Trapper{Base: battle.NewAbility(id, owner), Traps: traps}
	}
}

func (t *Trapper) SwitchPrevention(h *battle.SwitchHandler, who *battle.Battler, _ *model.Move, reason battle.SwitchReason) *battle.Prevention {
	if reason == battle.SwitchReasonForce || !isFoe(t.Owner(), who) || !t.Traps(who) {
		return nil
	}
	owner := t.Owner()
	return battle.Prevent(func() {
		announce(h, owner, "%s can't escape!", who.Name)
	})
}

// Intimidate lowers the attack of every foe when its owner enters.
type Intimidate struct {
	battle.Base
}

func (i *Intimidate) OnSwitchEvent(h *battle.SwitchHandler, _, with *battle.Battler) {
	if !i.OwnedBy(with) {
		return
	}
	h.ShowAbility(with)
	stat := h.Logic().StatChangeHandler()
	for _, foe := range h.Context().Foes(with) {
		stat.StatChange(model.StatAtk, -1, foe, with, nil)
	}
}

// NeutralizingGas suppresses the ability of every other active battler
// while its owner stays on the board. Entrants are suppressed before their
// own entry effects fire.
type NeutralizingGas struct {
	battle.Base
	// spread is set once the owner's entry event filled the area.
	spread bool
}

func (n *NeutralizingGas) OnPreSwitchEvent(_ *battle.SwitchHandler, _, with *battle.Battler) {
	owner := n.Owner()
	if n.spread && with != nil && !n.OwnedBy(with) && owner.Active() && owner.Alive() {
		n.suppress(with)
	}
}

func (n *NeutralizingGas) OnSwitchEvent(h *battle.SwitchHandler, who, with *battle.Battler) {
	switch {
	case n.OwnedBy(with):
		n.spread = true
		announce(h, n.Owner(), "Neutralizing gas filled the area!")
		for _, b := range h.Context().AliveBattlers() {
			n.suppress(b)
		}
	case n.OwnedBy(who):
		n.release(h)
	}
}

func (n *NeutralizingGas) OnPostDamageDeath(h *battle.DamageHandler, _ int, target, _ *battle.Battler, _ *model.Move) {
	if n.OwnedBy(target) {
		n.release(h.Logic().SwitchHandler())
	}
}

func (n *NeutralizingGas) suppress(b *battle.Battler) {
	if b == n.Owner() || b.HasAbility(n.ID()) || b.AbilitySuppressed() {
		return
	}
	b.Effects().Add(battle.NewSuppressionMarker(b, n.Owner()))
}

// release removes the markers of its owner and lets the freed abilities
// run their entry events.
func (n *NeutralizingGas) release(h *battle.SwitchHandler) {
	n.spread = false
	owner := n.Owner()
	var freed []*battle.Battler
	for _, b := range h.Logic().AllAliveBattlers() {
		for _, e := range b.Effects().Live() {
			if m, ok := e.(*battle.SuppressionMarker); ok && m.Source == owner {
				m.Kill()
				freed = append(freed, b)
			}
		}
	}
	if len(freed) == 0 {
		return
	}
	h.Message("The effects of the neutralizing gas wore off!")
	for _, b := range freed {
		if b.AbilitySuppressed() || b.AbilityEffect() == nil {
			continue
		}
		battle.Notify([]battle.Effect{b.AbilityEffect()}, func(e battle.SwitchEvent) {
			e.OnSwitchEvent(h, b, b)
		})
	}
}

var untraceable = map[string]bool{"trace": true, "neutralizing_gas": true, "forecast": true}

// Trace copies the ability of the first foe when its owner enters.
type Trace struct {
	battle.Base
}

func (t *Trace) OnSwitchEvent(h *battle.SwitchHandler, _, with *battle.Battler) {
	if !t.OwnedBy(with) {
		return
	}
	for _, foe := range h.Context().Foes(with) {
		if foe.AbilityID == "" || untraceable[foe.AbilityID] {
			continue
		}
		h.Logic().AbilityChangeHandler().ChangeAbility(foe.AbilityID, with, with, nil)
		return
	}
}

// Forecast changes its owner's type to match the weather.
type Forecast struct {
	battle.Base
	types []model.Type
}

func (f *Forecast) OnPostWeatherChange(h *battle.WeatherChangeHandler, weather, _ model.Weather) {
	owner := f.Owner()
	next := f.types
	switch {
	case weather.Sunny():
		next = []model.Type{model.TypeFire}
	case weather.Rainy():
		next = []model.Type{model.TypeWater}
	case weather == model.WeatherHail:
		next = []model.Type{model.TypeIce}
	}
	if sameTypes(owner.Types, next) {
		return
	}
	owner.Types = next
	announce(h, owner, "%s transformed!", owner.Name)
}

func (f *Forecast) OnSwitchEvent(h *battle.SwitchHandler, who, with *battle.Battler) {
	if f.OwnedBy(who) && who != with {
		who.Types = f.types
	}
}

func sameTypes(a, b []model.Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// SpeedBoost raises its owner's speed at the end of every turn.
type SpeedBoost struct {
	battle.Base
}

func (s *SpeedBoost) OnEndTurnEvent(l *battle.Logic, _ []*battle.Battler) {
	owner := s.Owner()
	if owner.Dead() || owner.TurnCount == 0 {
		return
	}
	l.Presenter().ShowAbility(owner)
	l.StatChangeHandler().StatChange(model.StatSpd, 1, owner, owner, nil)
}

// Truant makes its owner skip every other move.
type Truant struct {
	battle.Base
	loafing bool
}

func (t *Truant) MovePreventionUser(l *battle.Logic, user *battle.Battler, _ []*battle.Battler, _ *model.Move) *battle.Prevention {
	if !t.OwnedBy(user) {
		return nil
	}
	if !t.loafing {
		t.loafing = true
		return nil
	}
	t.loafing = false
	return battle.Prevent(func() {
		announce(l.Presenter(), user, "%s is loafing around!", user.Name)
	})
}

// ContactRetaliation punishes foes making contact: Div hurts them by
// 1/Div of their max HP, Status gives them a status 30% of the time.
type ContactRetaliation struct {
	battle.Base
	Div    int
	Status model.Status
}

func contactRetaliation(div int, status model.Status) battle.Factory {
	return func(id string, owner *battle.Battler) battle.Effect {
		return &ContactRetaliation{Base: battle.NewAbility(id, owner), Div: div, Status: status}
	}
}

func (c *ContactRetaliation) OnPostDamage(h *battle.DamageHandler, _ int, target, launcher *battle.Battler, move *model.Move) {
	if !c.OwnedBy(target) || !contact(target, launcher, move) {
		return
	}
	if c.Div > 0 {
		h.ShowAbility(target)
		h.Damage(max(launcher.MaxHP/c.Div, 1), launcher, nil, nil)
		return
	}
	status := h.Logic().StatusChangeHandler()
	if h.Context().Chance(30) && status.StatusAppliable(c.Status, launcher, target, nil) {
		h.ShowAbility(target)
		status.StatusChange(c.Status, launcher, target, nil)
	}
}

func contact(target, launcher *battle.Battler, move *model.Move) bool {
	return launcher != nil && launcher != target && launcher.Alive() && move != nil && move.Has(model.FlagContact)
}

// Aftermath hurts the foe that knocked its owner out with a contact move.
type Aftermath struct {
	battle.Base
}

func (a *Aftermath) OnPostDamageDeath(h *battle.DamageHandler, _ int, target, launcher *battle.Battler, move *model.Move) {
	if !a.OwnedBy(target) || !contact(target, launcher, move) {
		return
	}
	h.ShowAbility(target)
	h.Damage(max(launcher.MaxHP/4, 1), launcher, nil, nil)
}

// Moxie raises its owner's attack each time it knocks a battler out.
type Moxie struct {
	battle.Base
}

func (m *Moxie) OnPostDamageDeath(h *battle.DamageHandler, _ int, target, launcher *battle.Battler, _ *model.Move) {
	if !m.OwnedBy(launcher) || launcher == target || launcher.Dead() {
		return
	}
	h.ShowAbility(launcher)
	h.Logic().StatChangeHandler().StatChange(model.StatAtk, 1, launcher, launcher, nil)
}

// Synchronize passes burn, poison and paralysis back to the foe causing them.
type Synchronize struct {
	battle.Base
}

func (s *Synchronize) OnPostStatusChange(h *battle.StatusChangeHandler, status model.Status, target, launcher *battle.Battler, _ *model.Move) {
	if !s.OwnedBy(target) || !isFoe(target, launcher) {
		return
	}
	switch status {
	case model.StatusBurn, model.StatusPoison, model.StatusToxic, model.StatusParalysis:
	default:
		return
	}
	if h.StatusAppliable(status, launcher, target, nil) {
		h.ShowAbility(target)
		h.StatusChange(status, launcher, target, nil)
	}
}

// RetaliateStat sharply raises Stat whenever a foe lowers one of its owner's stats.
type RetaliateStat struct {
	battle.Base
	Stat model.Stat
}

func retaliateStat(stat model.Stat) battle.Factory {
	return func(id string, owner *battle.Battler) battle.Effect {
		return &RetaliateStat{Base: battle.NewAbility(id, owner), Stat: stat}
	}
}

func (r *RetaliateStat) OnStatChangePost(h *battle.StatChangeHandler, _ model.Stat, power int, target, launcher *battle.Battler, _ *model.Move) {
	if !r.OwnedBy(target) || power >= 0 || !isFoe(target, launcher) {
		return
	}
	h.ShowAbility(target)
	h.StatChange(r.Stat, 2, target, target, nil)
}

// StageScaling multiplies every stage change its owner receives.
type StageScaling struct {
	battle.Base
	Factor int
}

func stageScaling(factor int) battle.Factory {
	return func(id string, owner *battle.Battler) battle.Effect {
		return &StageScaling{Base: battle.NewAbility(id, owner), Factor: factor}
	}
}

func (s *StageScaling) StatChangeOverride(_ *battle.StatChangeHandler, _ model.Stat, power int, target, _ *battle.Battler, _ *model.Move) (int, bool) {
	if !s.OwnedBy(target) {
		return 0, false
	}
	return power * s.Factor, true
}

// Regenerator restores a third of its owner's max HP when it switches out.
type Regenerator struct {
	battle.Base
}

func (r *Regenerator) OnSwitchEvent(_ *battle.SwitchHandler, who, with *battle.Battler) {
	if !r.OwnedBy(who) || who == with || who.Dead() {
		return
	}
	who.HP = min(who.HP+who.MaxHP/3, who.MaxHP)
}

// NaturalCure cures its owner's major status when it switches out.
type NaturalCure struct {
	battle.Base
}

func (n *NaturalCure) OnSwitchEvent(_ *battle.SwitchHandler, who, with *battle.Battler) {
	if !n.OwnedBy(who) || who == with || !who.Status.Major() {
		return
	}
	who.Status = model.StatusNone
	who.StatusCount = 0
}

// RunAway lets its owner always flee wild battles.
type RunAway struct {
	battle.Base
}

func (r *RunAway) SwitchPassthrough(_ *battle.SwitchHandler, who *battle.Battler, _ *model.Move, reason battle.SwitchReason) bool {
	return r.OwnedBy(who) && reason == battle.SwitchReasonFlee
}

// Unburden doubles its owner's speed once it lost its held item.
type Unburden struct {
	battle.Base
	active bool
}

func (u *Unburden) OnPostItemChange(_ *battle.ItemChangeHandler, item string, target, _ *battle.Battler, _ *model.Move) {
	if u.OwnedBy(target) && item == "" {
		u.active = true
	}
}

func (u *Unburden) StatModifier(_ battle.Context, b *battle.Battler, stat model.Stat) float64 {
	if !u.active || stat != model.StatSpd || !u.OwnedBy(b) {
		return 1
	}
	return 2
}
