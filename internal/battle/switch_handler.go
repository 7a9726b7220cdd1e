package battle

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/udisondev/battlecore/internal/model"
)

// SwitchReason tells switch hooks why a battler wants to leave.
type SwitchReason int

const (
	SwitchReasonSwitch SwitchReason = iota
	SwitchReasonFlee
	// SwitchReasonForce is a switch the battler did not choose (roar, eject).
	SwitchReasonForce
)

// SwitchHandler owns battlers entering and leaving the board.
type SwitchHandler struct {
	handler
}

// CanSwitch reports whether who may leave the board. SwitchPassthrough
// effects of who win over any prevention; preventions are gathered from
// the whole board since trapping comes from opponents.
func (h *SwitchHandler) CanSwitch(who *Battler, move *model.Move, reason SwitchReason) bool {
	if !who.Active() {
		return false
	}
	if reason != SwitchReasonForce && who.HasType(model.TypeGhost) {
		return true
	}
	if Any(h.logic.EffectsFor(who), func(e SwitchPassthrough) bool {
		return e.SwitchPassthrough(h, who, move, reason)
	}) {
		return true
	}
	return FirstPrevention(h.logic.BoardEffects(who.Bank), func(e SwitchPrevention) *Prevention {
		return e.SwitchPrevention(h, who, move, reason)
	}) == nil
}

// ExecuteSwitch puts with in who's place. who's own effects hear about the
// switch before they are released.
func (h *SwitchHandler) ExecuteSwitch(who, with *Battler) {
	l := h.logic
	if who == with || !who.Active() || with.Active() {
		return
	}
	Notify(who.OwnEffects(), func(e SwitchEvent) {
		e.OnSwitchEvent(h, who, with)
	})
	bank, pos := who.Bank, who.Position
	if who.Alive() {
		h.Message(fmt.Sprintf("%s, come back!", who.Name))
	}
	who.unbindEffects()
	who.resetVolatile()
	who.Position = Reserve

	with.Bank = bank
	with.Position = pos
	with.resetVolatile()
	l.board[bank][pos] = with
	with.bindEffects(l.registry)
	h.Message(fmt.Sprintf("Go! %s!", with.Name))
	l.presenter.ShowHP(with)
	slog.Debug("battler switched", "battleID", l.info.BattleID, "out", who.Name, "in", with)
}

// ExecuteSwitchEvents notifies the board that with replaced who.
// Entry events at battle start pass the same battler twice.
func (h *SwitchHandler) ExecuteSwitchEvents(who, with *Battler) {
	if !with.Active() || with.Dead() {
		return
	}
	Notify(h.logic.BoardEffects(with.Bank), func(e PreSwitchEvent) {
		e.OnPreSwitchEvent(h, who, with)
	})
	Notify(h.logic.BoardEffects(with.Bank), func(e SwitchEvent) {
		e.OnSwitchEvent(h, who, with)
	})
}

// ExecuteEnterEvents runs the entry events of every active battler,
// fastest first.
func (h *SwitchHandler) ExecuteEnterEvents() {
	battlers := h.logic.AllAliveBattlers()
	speeds := make(map[*Battler]int, len(battlers))
	for _, b := range battlers {
		speeds[b] = h.logic.Stat(b, model.StatSpd)
	}
	sort.SliceStable(battlers, func(i, j int) bool {
		return speeds[battlers[i]] > speeds[battlers[j]]
	})
	for _, b := range battlers {
		h.ExecuteSwitchEvents(b, b)
	}
}
