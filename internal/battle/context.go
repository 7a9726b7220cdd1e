package battle

import "github.com/udisondev/battlecore/internal/model"

// Context is the read-only view of a battle handed to hooks.
type Context struct {
	l *Logic
}

// Weather returns the current weather.
func (c Context) Weather() model.Weather { return c.l.weather }

// Terrain returns the current terrain.
func (c Context) Terrain() model.Terrain { return c.l.terrain }

// Turn returns the current turn number, starting at 1.
func (c Context) Turn() int { return c.l.turn }

// TrainerBattle reports whether the opposing bank belongs to a trainer.
func (c Context) TrainerBattle() bool { return c.l.info.TrainerBattle }

// Battler returns the active battler at (bank, position), or nil.
func (c Context) Battler(bank, position int) *Battler { return c.l.Battler(bank, position) }

// AliveBattlers returns every alive active battler in board order.
func (c Context) AliveBattlers() []*Battler { return c.l.AllAliveBattlers() }

// Allies returns the alive active battlers sharing b's bank, b excluded.
func (c Context) Allies(b *Battler) []*Battler { return c.l.Allies(b) }

// Foes returns the alive active battlers of the other banks.
func (c Context) Foes(b *Battler) []*Battler { return c.l.Foes(b) }

// Stat returns the effective value of stat for b.
func (c Context) Stat(b *Battler, stat model.Stat) int { return c.l.Stat(b, stat) }

// Chance rolls a percent chance on the battle RNG.
func (c Context) Chance(percent float64) bool { return c.l.Chance(percent) }
