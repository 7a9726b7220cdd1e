package model

// ItemKind groups bag items by how the battle scene treats them.
type ItemKind int

const (
	ItemGeneric ItemKind = iota
	ItemHealing
	// ItemBall attempts a capture instead of queuing an action.
	ItemBall
	// ItemFleeing ends a wild battle immediately.
	ItemFleeing
)

// ItemData describes a bag or held item.
type ItemData struct {
	ID   string
	Kind ItemKind
	// Heal is the amount of HP restored by healing items.
	Heal int
	// Cures is the major status removed by healing items.
	Cures Status
	// CatchRate multiplies the capture odds of balls.
	CatchRate float64
}

// Bag is an item inventory owned by one party.
type Bag struct {
	counts map[string]int
	items  map[string]*ItemData
}

// NewBag creates an empty bag.
func NewBag() *Bag {
	return &Bag{counts: make(map[string]int), items: make(map[string]*ItemData)}
}

func (b *Bag) init() {
	if b.counts == nil {
		b.counts = make(map[string]int)
	}
	if b.items == nil {
		b.items = make(map[string]*ItemData)
	}
}

// Add puts n copies of item in the bag.
func (b *Bag) Add(item *ItemData, n int) {
	b.init()
	b.items[item.ID] = item
	b.counts[item.ID] += n
}

// Take removes one copy of id. Returns false if none is left.
func (b *Bag) Take(id string) bool {
	if b.counts[id] <= 0 {
		return false
	}
	b.counts[id]--
	return true
}

// Put returns one copy of a previously held id to the bag.
func (b *Bag) Put(id string) {
	b.init()
	b.counts[id]++
}

// Count returns how many copies of id are in the bag.
func (b *Bag) Count(id string) int {
	return b.counts[id]
}

// Item returns the descriptor of id, or nil if the bag never held it.
func (b *Bag) Item(id string) *ItemData {
	return b.items[id]
}
