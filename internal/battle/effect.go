package battle

// Family separates effect kinds sharing the hook contract.
type Family int

const (
	FamilyAbility Family = iota
	FamilyItem
	// FamilyVolatile covers markers and move-induced effects held in a battler's effect list.
	FamilyVolatile
	// FamilyField covers weather, terrain and side-wide effects not owned by a battler.
	FamilyField
)

func (f Family) String() string {
	switch f {
	case FamilyAbility:
		return "ability"
	case FamilyItem:
		return "item"
	case FamilyVolatile:
		return "volatile"
	case FamilyField:
		return "field"
	default:
		return "unknown"
	}
}

// Effect is the core every pluggable behavior implements.
// Hooks are opt-in: an effect takes part in a hook by implementing the
// matching single-method interface from hooks.go. Not implementing a hook
// means the neutral default (1 for multipliers, nil for preventions and
// overrides, no-op for notifications).
type Effect interface {
	ID() string
	Family() Family
	// Owner returns the battler the effect is bound to, nil for field effects.
	Owner() *Battler
	// AffectsAllies makes the effect receive hooks on behalf of the owner's bank.
	AffectsAllies() bool
	Dead() bool
	Kill()
}

// Base is embedded by every concrete effect.
type Base struct {
	id     string
	family Family
	owner  *Battler
	allies bool
	dead   bool
}

// NewBase binds an effect identity to its owner.
func NewBase(family Family, id string, owner *Battler) Base {
	return Base{id: id, family: family, owner: owner}
}

// NewAbility returns the base of an ability effect.
func NewAbility(id string, owner *Battler) Base { return NewBase(FamilyAbility, id, owner) }

// NewItem returns the base of a held item effect.
func NewItem(id string, owner *Battler) Base { return NewBase(FamilyItem, id, owner) }

// WithAllies marks the effect as affecting the owner's allies.
func (b Base) WithAllies() Base {
	b.allies = true
	return b
}

func (b *Base) ID() string          { return b.id }
func (b *Base) Family() Family      { return b.family }
func (b *Base) Owner() *Battler     { return b.owner }
func (b *Base) AffectsAllies() bool { return b.allies }
func (b *Base) Dead() bool          { return b.dead }
func (b *Base) Kill()               { b.dead = true }

// OwnedBy reports whether the effect belongs to battler x.
func (b *Base) OwnedBy(x *Battler) bool { return x != nil && b.owner == x }

// SameBank reports whether x stands on the owner's bank.
func (b *Base) SameBank(x *Battler) bool {
	return x != nil && b.owner != nil && b.owner.Bank == x.Bank
}

// Default is the no-op effect returned for unregistered identifiers.
type Default struct {
	Base
}

// NewDefault returns an effect implementing no hook.
func NewDefault(family Family, id string, owner *Battler) *Default {
	return &Default{Base: NewBase(family, id, owner)}
}

// Prevention is a non-nil prevention hook result.
// Block stops the event; a replacement carries Value and lets the
// Handler continue with it. The announce closure runs only when the
// Handler commits to this result.
type Prevention struct {
	Block    bool
	Value    int
	announce func()
}

// Prevent blocks the event. announce may be nil.
func Prevent(announce func()) *Prevention {
	return &Prevention{Block: true, announce: announce}
}

// Replace overrides the event value (damage amount, stat power).
func Replace(value int, announce func()) *Prevention {
	return &Prevention{Value: value, announce: announce}
}

// Commit runs the deferred announcement once.
func (p *Prevention) Commit() {
	if p == nil || p.announce == nil {
		return
	}
	fn := p.announce
	p.announce = nil
	fn()
}
