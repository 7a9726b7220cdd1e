package battle

import (
	"fmt"

	"github.com/udisondev/battlecore/internal/model"
)

// Position of a battler waiting in its party.
const Reserve = -1

// Battler is a party member taking part in a battle.
// Active battlers are on the board at (Bank, Position).
type Battler struct {
	Name  string
	Level int
	HP    int
	MaxHP int
	Stats model.BaseStats
	Types []model.Type
	Moves []*model.Move

	AbilityID string
	ItemID    string
	// MegaAbility replaces AbilityID once the battler mega evolves.
	MegaAbility string
	// CatchRate is the capture rate of wild battlers, 0 means 45.
	CatchRate int

	Bank     int
	Position int
	Party    int
	// FromPlayerParty marks battlers the player chooses actions for.
	FromPlayerParty bool

	Status model.Status
	// StatusCount counts sleep turns left or toxic ticks taken.
	StatusCount int
	Confusion   int
	Flinched    bool
	Stages      [model.StatCount]int

	// Switching is set while a switch action involving this battler is queued.
	Switching bool
	// ItemConsumed is set once the held item was used up; ConsumedItem keeps its id.
	ItemConsumed bool
	ConsumedItem string
	MegaPending  bool
	MegaEvolved  bool

	LastMove  *model.Move
	TurnCount int
	// Bag is the inventory item actions of this battler draw from.
	Bag *model.Bag

	ability Effect
	item    Effect
	effects EffectList
}

func (b *Battler) String() string {
	return fmt.Sprintf("%s[%d:%d]", b.Name, b.Bank, b.Position)
}

// Alive reports whether the battler has HP left.
func (b *Battler) Alive() bool { return b.HP > 0 }

// Dead reports whether the battler fainted.
func (b *Battler) Dead() bool { return b.HP <= 0 }

// Active reports whether the battler stands on the board.
func (b *Battler) Active() bool { return b.Position >= 0 }

// HasType reports whether t is one of the battler's types.
func (b *Battler) HasType(t model.Type) bool {
	for _, bt := range b.Types {
		if bt == t {
			return true
		}
	}
	return false
}

// HPRate returns the remaining HP fraction.
func (b *Battler) HPRate() float64 {
	if b.MaxHP <= 0 {
		return 0
	}
	return float64(b.HP) / float64(b.MaxHP)
}

// Stage returns the combat stage of s.
func (b *Battler) Stage(s model.Stat) int { return b.Stages[s] }

// HasAbility reports whether the battler's current ability is id.
func (b *Battler) HasAbility(id string) bool { return b.AbilityID == id }

// HoldsItem reports whether the battler holds id and has not consumed it.
func (b *Battler) HoldsItem(id string) bool { return b.ItemID == id && !b.ItemConsumed }

// AbilityEffect returns the ability effect, nil while the battler is in reserve.
func (b *Battler) AbilityEffect() Effect { return b.ability }

// ItemEffect returns the held item effect, nil while the battler is in reserve.
func (b *Battler) ItemEffect() Effect { return b.item }

// Effects returns the volatile effect list.
func (b *Battler) Effects() *EffectList { return &b.effects }

// OwnEffects returns the live ability, item and volatile effects, in that order.
func (b *Battler) OwnEffects() []Effect {
	out := make([]Effect, 0, 2+b.effects.Len())
	if b.ability != nil && !b.ability.Dead() {
		out = append(out, b.ability)
	}
	if b.item != nil && !b.item.Dead() {
		out = append(out, b.item)
	}
	return append(out, b.effects.Live()...)
}

// AbilitySuppressed reports whether the suppression marker is present.
func (b *Battler) AbilitySuppressed() bool {
	return b.effects.Has(AbilitySuppressedID)
}

// UsableMoves returns the moves with PP left that are not disabled. Effects
// are not consulted, see Logic.UsableMoves.
func (b *Battler) UsableMoves() []*model.Move {
	var out []*model.Move
	for _, m := range b.Moves {
		if m.Usable() {
			out = append(out, m)
		}
	}
	return out
}

// bindEffects rebuilds the ability and item effects from the current ids.
func (b *Battler) bindEffects(r *Registry) {
	b.unbindEffects()
	if b.AbilityID != "" {
		b.ability = r.Create(FamilyAbility, b.AbilityID, b)
	}
	if b.ItemID != "" && !b.ItemConsumed {
		b.item = r.Create(FamilyItem, b.ItemID, b)
	}
}

func (b *Battler) unbindEffects() {
	if b.ability != nil {
		b.ability.Kill()
		b.ability = nil
	}
	if b.item != nil {
		b.item.Kill()
		b.item = nil
	}
}

// resetVolatile clears everything a battler loses when leaving the board.
func (b *Battler) resetVolatile() {
	b.Stages = [model.StatCount]int{}
	b.Confusion = 0
	b.Flinched = false
	b.TurnCount = 0
	b.Switching = false
	b.LastMove = nil
	b.effects.Clear()
	if b.Status == model.StatusToxic {
		b.StatusCount = 0
	}
}

// AbilitySuppressedID is the marker effect excluding an owner's ability from dispatch.
const AbilitySuppressedID = "ability_suppressed"

// SuppressionMarker is the volatile effect added by ability-suppressing effects.
type SuppressionMarker struct {
	Base
	// Source is the battler that suppressed the owner's ability.
	Source *Battler
}

// NewSuppressionMarker returns a marker bound to owner.
func NewSuppressionMarker(owner, source *Battler) *SuppressionMarker {
	return &SuppressionMarker{Base: NewBase(FamilyVolatile, AbilitySuppressedID, owner), Source: source}
}
