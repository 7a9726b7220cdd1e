package battle

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/udisondev/battlecore/internal/model"
)

// Result is the outcome of a battle from bank 0's point of view.
type Result int

const (
	ResultPending Result = iota - 1
	ResultWin
	ResultFlee
	ResultLose
	ResultDraw
	ResultCaught
)

func (r Result) String() string {
	switch r {
	case ResultPending:
		return "pending"
	case ResultWin:
		return "win"
	case ResultFlee:
		return "flee"
	case ResultLose:
		return "lose"
	case ResultDraw:
		return "draw"
	case ResultCaught:
		return "caught"
	default:
		return "unknown"
	}
}

// Info describes the battle being fought.
type Info struct {
	BattleID int
	// VsType is the number of active slots per bank.
	VsType        int
	TrainerBattle bool
	// AILevels[bank][party] is the AI level driving a party, nil for the player.
	AILevels [][]*int
}

// AILevel returns the AI level of (bank, party). ok is false for player parties.
func (i Info) AILevel(bank, party int) (level int, ok bool) {
	if bank < 0 || bank >= len(i.AILevels) || party < 0 || party >= len(i.AILevels[bank]) {
		return 0, false
	}
	if l := i.AILevels[bank][party]; l != nil {
		return *l, true
	}
	return 0, false
}

// Recorder observes every resolved action.
type Recorder interface {
	Record(turn int, a Action)
}

// Config holds everything needed to build a Logic.
type Config struct {
	Info Info
	// Parties lists every battler per bank in send-out order.
	Parties   [][]*Battler
	Registry  *Registry
	Presenter Presenter
	Seed      uint64
	// MaxTurns ends the battle in a draw once reached, 0 disables the limit.
	MaxTurns   int
	Calculator DamageCalculator
	Recorder   Recorder
}

// Logic owns the battle state and resolves actions.
type Logic struct {
	info      Info
	parties   [][]*Battler
	board     [][]*Battler
	field     EffectList
	registry  *Registry
	presenter Presenter
	calc      DamageCalculator
	recorder  Recorder
	rng       *rand.Rand
	maxTurns  int

	weather      model.Weather
	weatherTurns int
	terrain      model.Terrain
	terrainTurns int
	turn         int

	actions []Action
	result  Result
	caught  *Battler
	// DebugEndOfBattle is set when the battle was forced to an end.
	DebugEndOfBattle bool

	damage   *DamageHandler
	stat     *StatChangeHandler
	status   *StatusChangeHandler
	switcher *SwitchHandler
	weatherH *WeatherChangeHandler
	terrainH *TerrainChangeHandler
	itemH    *ItemChangeHandler
	abilityH *AbilityChangeHandler
	flee     *FleeHandler
	catcher  *CatchHandler
}

// NewLogic validates cfg and sends out the leading battlers of every bank.
func NewLogic(cfg Config) (*Logic, error) {
	if cfg.Info.VsType < 1 {
		return nil, fmt.Errorf("invalid vs type %d", cfg.Info.VsType)
	}
	if len(cfg.Parties) < 2 {
		return nil, errors.New("battle needs at least two banks")
	}
	if cfg.Registry == nil {
		cfg.Registry = NewRegistry()
	}
	if cfg.Presenter == nil {
		cfg.Presenter = NopPresenter{}
	}
	if cfg.Calculator == nil {
		cfg.Calculator = &StandardDamage{}
	}

	l := &Logic{
		info:      cfg.Info,
		parties:   cfg.Parties,
		board:     make([][]*Battler, len(cfg.Parties)),
		registry:  cfg.Registry,
		presenter: cfg.Presenter,
		calc:      cfg.Calculator,
		recorder:  cfg.Recorder,
		rng:       rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
		maxTurns:  cfg.MaxTurns,
		result:    ResultPending,
	}
	h := handler{logic: l}
	l.damage = &DamageHandler{h}
	l.stat = &StatChangeHandler{h}
	l.status = &StatusChangeHandler{h}
	l.switcher = &SwitchHandler{h}
	l.weatherH = &WeatherChangeHandler{h}
	l.terrainH = &TerrainChangeHandler{h}
	l.itemH = &ItemChangeHandler{h}
	l.abilityH = &AbilityChangeHandler{h}
	l.flee = &FleeHandler{handler: h}
	l.catcher = &CatchHandler{h}

	for bank, party := range cfg.Parties {
		if len(party) == 0 {
			return nil, fmt.Errorf("bank %d has no battler", bank)
		}
		l.board[bank] = make([]*Battler, cfg.Info.VsType)
		pos := 0
		for _, b := range party {
			b.Bank = bank
			b.Position = Reserve
			_, ai := cfg.Info.AILevel(bank, b.Party)
			b.FromPlayerParty = !ai
			if b.MaxHP <= 0 {
				b.MaxHP = max(b.HP, 1)
			}
			if pos < cfg.Info.VsType && b.Alive() {
				b.Position = pos
				l.board[bank][pos] = b
				b.bindEffects(l.registry)
				pos++
			}
		}
	}
	slog.Debug("battle logic created",
		"battleID", cfg.Info.BattleID,
		"vsType", cfg.Info.VsType,
		"banks", len(cfg.Parties))
	return l, nil
}

// Info returns the battle description.
func (l *Logic) Info() Info { return l.info }

// Context returns the read-only hook view of the battle.
func (l *Logic) Context() Context { return Context{l: l} }

// Registry returns the effect registry battlers are bound with.
func (l *Logic) Registry() *Registry { return l.registry }

// Presenter returns the presentation sink, never nil.
func (l *Logic) Presenter() Presenter { return l.presenter }

// SetPresenter replaces the presentation sink. nil installs NopPresenter.
func (l *Logic) SetPresenter(p Presenter) {
	if p == nil {
		p = NopPresenter{}
	}
	l.presenter = p
}

// Field returns the field effect list.
func (l *Logic) Field() *EffectList { return &l.field }

// Turn returns the current turn number.
func (l *Logic) Turn() int { return l.turn }

// Weather returns the current weather.
func (l *Logic) Weather() model.Weather { return l.weather }

// Terrain returns the current terrain.
func (l *Logic) Terrain() model.Terrain { return l.terrain }

// Chance rolls percent on the battle RNG.
func (l *Logic) Chance(percent float64) bool {
	if percent >= 100 {
		return true
	}
	if percent <= 0 {
		return false
	}
	return l.rng.Float64()*100 < percent
}

// Roll returns a uniform integer in [0, n).
func (l *Logic) Roll(n int) int {
	if n <= 1 {
		return 0
	}
	return l.rng.IntN(n)
}

// BankCount returns the number of banks.
func (l *Logic) BankCount() int { return len(l.board) }

// Battler returns the active battler at (bank, position), or nil.
func (l *Logic) Battler(bank, position int) *Battler {
	if bank < 0 || bank >= len(l.board) || position < 0 || position >= len(l.board[bank]) {
		return nil
	}
	return l.board[bank][position]
}

// Party returns every battler of bank, active or not.
func (l *Logic) Party(bank int) []*Battler {
	if bank < 0 || bank >= len(l.parties) {
		return nil
	}
	return l.parties[bank]
}

// AllBattlers returns every battler of every bank.
func (l *Logic) AllBattlers() []*Battler {
	var out []*Battler
	for _, p := range l.parties {
		out = append(out, p...)
	}
	return out
}

// AliveBattlers returns the alive active battlers of bank.
func (l *Logic) AliveBattlers(bank int) []*Battler {
	if bank < 0 || bank >= len(l.board) {
		return nil
	}
	var out []*Battler
	for _, b := range l.board[bank] {
		if b != nil && b.Alive() {
			out = append(out, b)
		}
	}
	return out
}

// AllAliveBattlers returns the alive active battlers in board order.
func (l *Logic) AllAliveBattlers() []*Battler {
	var out []*Battler
	for bank := range l.board {
		out = append(out, l.AliveBattlers(bank)...)
	}
	return out
}

// AliveReserves returns the alive battlers of bank waiting to be sent out.
func (l *Logic) AliveReserves(bank int) []*Battler {
	var out []*Battler
	for _, b := range l.Party(bank) {
		if b.Alive() && !b.Active() {
			out = append(out, b)
		}
	}
	return out
}

// Allies returns the alive active bank mates of b.
func (l *Logic) Allies(b *Battler) []*Battler {
	var out []*Battler
	for _, x := range l.AliveBattlers(b.Bank) {
		if x != b {
			out = append(out, x)
		}
	}
	return out
}

// Foes returns the alive active battlers of the other banks.
func (l *Logic) Foes(b *Battler) []*Battler {
	var out []*Battler
	for bank := range l.board {
		if bank != b.Bank {
			out = append(out, l.AliveBattlers(bank)...)
		}
	}
	return out
}

// Stat returns the effective stat of b: base value, stage and every StatModifier.
func (l *Logic) Stat(b *Battler, stat model.Stat) int {
	value := float64(b.Stats.Get(stat)) * model.StageMultiplier(stat, b.Stages[stat])
	value *= Product(l.EffectsFor(b), func(h StatModifier) float64 {
		return h.StatModifier(l.Context(), b, stat)
	})
	if stat == model.StatSpd && b.Status == model.StatusParalysis {
		value /= 2
	}
	return max(int(value), 1)
}

// UpdateTurnCount starts a new turn.
func (l *Logic) UpdateTurnCount() {
	l.turn++
	for _, b := range l.AllAliveBattlers() {
		b.TurnCount++
	}
}

// SetResult forces the battle outcome.
func (l *Logic) SetResult(r Result) { l.result = r }

// Caught returns the battler captured during the battle, if any.
func (l *Logic) Caught() *Battler { return l.caught }

// CanBattleContinue reports whether every bank still has a battler able to fight.
func (l *Logic) CanBattleContinue() bool {
	if l.result != ResultPending {
		return false
	}
	if l.maxTurns > 0 && l.turn >= l.maxTurns {
		return false
	}
	for bank := range l.parties {
		if !l.bankAlive(bank) {
			return false
		}
	}
	return true
}

func (l *Logic) bankAlive(bank int) bool {
	for _, b := range l.parties[bank] {
		if b.Alive() {
			return true
		}
	}
	return false
}

// Result returns the outcome, deriving it from the board once the battle stopped.
func (l *Logic) Result() Result {
	if l.result != ResultPending {
		return l.result
	}
	playerAlive := l.bankAlive(0)
	foesAlive := false
	for bank := 1; bank < len(l.parties); bank++ {
		foesAlive = foesAlive || l.bankAlive(bank)
	}
	switch {
	case playerAlive && foesAlive:
		if l.maxTurns > 0 && l.turn >= l.maxTurns {
			return ResultDraw
		}
		return ResultPending
	case playerAlive:
		return ResultWin
	case foesAlive:
		return ResultLose
	default:
		return ResultDraw
	}
}

// BattlePhaseEnd runs the end of turn: weather, terrain, status residue,
// end-turn hooks, then replacement of fainted battlers.
func (l *Logic) BattlePhaseEnd() {
	l.weatherH.endTurn()
	l.terrainH.endTurn()
	for _, b := range l.AllAliveBattlers() {
		l.status.residual(b)
	}
	Notify(l.BoardEffects(0), func(h EndTurnEvent) {
		h.OnEndTurnEvent(l, l.AllAliveBattlers())
	})
	for _, b := range l.AllAliveBattlers() {
		b.Flinched = false
	}
	l.replaceFainted()
}

// replaceFainted sends the next alive reserve in place of each fainted battler.
func (l *Logic) replaceFainted() {
	for bank, row := range l.board {
		for _, b := range row {
			if b == nil || b.Alive() {
				continue
			}
			reserves := l.AliveReserves(bank)
			if len(reserves) == 0 {
				continue
			}
			with := reserves[0]
			l.switcher.ExecuteSwitch(b, with)
			l.switcher.ExecuteSwitchEvents(b, with)
		}
	}
}

// DamageHandler returns the damage mutation handler.
func (l *Logic) DamageHandler() *DamageHandler { return l.damage }

// StatChangeHandler returns the stage mutation handler.
func (l *Logic) StatChangeHandler() *StatChangeHandler { return l.stat }

// StatusChangeHandler returns the status mutation handler.
func (l *Logic) StatusChangeHandler() *StatusChangeHandler { return l.status }

// SwitchHandler returns the switch handler.
func (l *Logic) SwitchHandler() *SwitchHandler { return l.switcher }

// WeatherChangeHandler returns the weather handler.
func (l *Logic) WeatherChangeHandler() *WeatherChangeHandler { return l.weatherH }

// TerrainChangeHandler returns the terrain handler.
func (l *Logic) TerrainChangeHandler() *TerrainChangeHandler { return l.terrainH }

// ItemChangeHandler returns the held item handler.
func (l *Logic) ItemChangeHandler() *ItemChangeHandler { return l.itemH }

// AbilityChangeHandler returns the ability handler.
func (l *Logic) AbilityChangeHandler() *AbilityChangeHandler { return l.abilityH }

// FleeHandler returns the flee handler.
func (l *Logic) FleeHandler() *FleeHandler { return l.flee }

// CatchHandler returns the capture handler.
func (l *Logic) CatchHandler() *CatchHandler { return l.catcher }
