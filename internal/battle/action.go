package battle

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/udisondev/battlecore/internal/model"
)

// ActionKind tags the Action variants.
type ActionKind int

const (
	ActionPass ActionKind = iota
	ActionAttack
	ActionItem
	ActionSwitch
	ActionMega
)

func (k ActionKind) String() string {
	switch k {
	case ActionPass:
		return "pass"
	case ActionAttack:
		return "attack"
	case ActionItem:
		return "item"
	case ActionSwitch:
		return "switch"
	case ActionMega:
		return "mega"
	default:
		return "unknown"
	}
}

// Action is a resolved decision, consumed exactly once by Logic.
type Action interface {
	Kind() ActionKind
	Execute(l *Logic)
}

// Provisional actions mutate state when queued; Undo reverts it on cancel.
type Provisional interface {
	PreApply()
	Undo()
}

// Attack uses Move from User against (TargetBank, TargetPosition).
type Attack struct {
	Move           *model.Move
	User           *Battler
	TargetBank     int
	TargetPosition int
}

func (a *Attack) Kind() ActionKind { return ActionAttack }

func (a *Attack) Execute(l *Logic) {
	l.UseMove(a.User, a.Move, a.TargetBank, a.TargetPosition)
}

func (a *Attack) String() string {
	return fmt.Sprintf("attack(%s %s -> %d:%d)", a.User, a.Move.ID(), a.TargetBank, a.TargetPosition)
}

// ItemWrapper binds a bag item to the battler it is used on.
type ItemWrapper struct {
	Item   *model.ItemData
	Target *Battler
}

// ItemAction uses a bag item. The item leaves the bag when the action is queued.
type ItemAction struct {
	Wrapper ItemWrapper
	Bag     *model.Bag
	User    *Battler

	taken bool
}

func (a *ItemAction) Kind() ActionKind { return ActionItem }

func (a *ItemAction) PreApply() {
	if a.Bag != nil && !a.taken {
		a.taken = a.Bag.Take(a.Wrapper.Item.ID)
	}
}

func (a *ItemAction) Undo() {
	if a.Bag != nil && a.taken {
		a.Bag.Put(a.Wrapper.Item.ID)
		a.taken = false
	}
}

// Execute applies the item. With a bag it applies only a copy that was
// actually taken out of it.
func (a *ItemAction) Execute(l *Logic) {
	item := a.Wrapper.Item
	if a.Bag != nil && !a.taken {
		a.PreApply()
		if !a.taken {
			l.presenter.Message(fmt.Sprintf("%s has no %s left.", a.User.Name, item.ID))
			return
		}
	}
	target := a.Wrapper.Target
	if target == nil {
		target = a.User
	}
	l.presenter.Message(fmt.Sprintf("%s used %s.", a.User.Name, item.ID))
	if item.Heal > 0 && target.Alive() {
		l.damage.Heal(target, item.Heal, nil)
	}
	if item.Cures == model.StatusCure || (item.Cures != model.StatusNone && item.Cures == target.Status) {
		l.status.StatusChange(model.StatusCure, target, a.User, nil)
	}
}

func (a *ItemAction) String() string {
	return fmt.Sprintf("item(%s %s)", a.User, a.Wrapper.Item.ID)
}

// Switch replaces Who with With.
type Switch struct {
	Who  *Battler
	With *Battler

	prevWho, prevWith bool
}

func (a *Switch) Kind() ActionKind { return ActionSwitch }

func (a *Switch) PreApply() {
	a.prevWho, a.prevWith = a.Who.Switching, a.With.Switching
	a.Who.Switching = true
	a.With.Switching = true
}

func (a *Switch) Undo() {
	a.Who.Switching = a.prevWho
	a.With.Switching = a.prevWith
}

func (a *Switch) Execute(l *Logic) {
	if !a.Who.Active() || a.With.Dead() || a.With.Active() {
		a.Undo()
		return
	}
	l.switcher.ExecuteSwitch(a.Who, a.With)
	l.switcher.ExecuteSwitchEvents(a.Who, a.With)
}

func (a *Switch) String() string {
	return fmt.Sprintf("switch(%s -> %s)", a.Who, a.With.Name)
}

// Mega evolves User before attacks resolve.
type Mega struct {
	User *Battler

	prev bool
}

func (a *Mega) Kind() ActionKind { return ActionMega }

func (a *Mega) PreApply() {
	a.prev = a.User.MegaPending
	a.User.MegaPending = true
}

func (a *Mega) Undo() { a.User.MegaPending = a.prev }

func (a *Mega) Execute(l *Logic) {
	b := a.User
	b.MegaPending = false
	if b.Dead() || b.MegaEvolved {
		return
	}
	b.MegaEvolved = true
	l.presenter.ShowAnimation("mega_evolution", b, nil)
	l.presenter.Message(fmt.Sprintf("%s has Mega Evolved!", b.Name))
	if b.MegaAbility != "" && b.MegaAbility != b.AbilityID {
		l.abilityH.ChangeAbility(b.MegaAbility, b, b, nil)
	}
}

func (a *Mega) String() string { return fmt.Sprintf("mega(%s)", a.User) }

// Pass keeps a slot aligned for a battler that takes no action.
type Pass struct{}

func (Pass) Kind() ActionKind { return ActionPass }
func (Pass) Execute(*Logic)   {}
func (Pass) String() string   { return "pass" }

// AddActions appends actions to the pending list.
func (l *Logic) AddActions(actions ...Action) {
	for _, a := range actions {
		if a != nil {
			l.actions = append(l.actions, a)
		}
	}
}

// Actions returns the pending actions in resolution order.
func (l *Logic) Actions() []Action { return l.actions }

type actionKey struct {
	action   Action
	rank     int
	priority int
	speed    int
	tie      uint64
}

func actionRank(k ActionKind) int {
	switch k {
	case ActionItem:
		return 4
	case ActionSwitch:
		return 3
	case ActionMega:
		return 2
	case ActionAttack:
		return 1
	default:
		return 0
	}
}

// SortActions orders pending actions: items, switches, megas, then attacks by
// priority and effective speed. Speed ties are broken by the battle RNG.
func (l *Logic) SortActions() {
	keys := make([]actionKey, len(l.actions))
	for i, a := range l.actions {
		k := actionKey{action: a, rank: actionRank(a.Kind()), tie: l.rng.Uint64()}
		if user := actionUser(a); user != nil {
			k.speed = l.Stat(user, model.StatSpd)
		}
		if atk, ok := a.(*Attack); ok {
			k.priority = l.MovePriority(atk.User, atk.Move)
		}
		keys[i] = k
	}
	sort.SliceStable(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.rank != b.rank {
			return a.rank > b.rank
		}
		if a.priority != b.priority {
			return a.priority > b.priority
		}
		if a.speed != b.speed {
			return a.speed > b.speed
		}
		return a.tie < b.tie
	})
	for i, k := range keys {
		l.actions[i] = k.action
	}
}

func actionUser(a Action) *Battler {
	switch v := a.(type) {
	case *Attack:
		return v.User
	case *ItemAction:
		return v.User
	case *Switch:
		return v.Who
	case *Mega:
		return v.User
	default:
		return nil
	}
}

// MovePriority returns the priority of move for user after overrides.
func (l *Logic) MovePriority(user *Battler, move *model.Move) int {
	priority := move.Data.Priority
	if p, ok := FirstOverride(l.EffectsFor(user), func(h MovePriorityChange) (int, bool) {
		return h.MovePriorityChange(l.Context(), user, priority, move)
	}); ok {
		return p
	}
	return priority
}

// PerformNextAction resolves the first pending action.
// Returns false once nothing is left or the battle cannot continue.
func (l *Logic) PerformNextAction() bool {
	if len(l.actions) == 0 {
		return false
	}
	if !l.CanBattleContinue() {
		l.actions = nil
		return false
	}
	a := l.actions[0]
	l.actions = l.actions[1:]
	slog.Debug("performing action", "battleID", l.info.BattleID, "turn", l.turn, "action", a)
	a.Execute(l)
	if l.recorder != nil {
		l.recorder.Record(l.turn, a)
	}
	Notify(l.BoardEffects(0), func(h PostActionEvent) {
		h.OnPostActionEvent(l, l.AllAliveBattlers())
	})
	return true
}
