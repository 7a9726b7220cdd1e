package battle

// handler is the part shared by every Handler: the battle it mutates and
// the presenter side effects go through.
type handler struct {
	logic *Logic
}

// Logic returns the battle the handler mutates.
func (h handler) Logic() *Logic { return h.logic }

// Context returns the read-only hook view.
func (h handler) Context() Context { return h.logic.Context() }

// Message shows text through the battle presenter.
func (h handler) Message(text string) { h.logic.presenter.Message(text) }

// ShowAbility flashes the ability banner of b.
func (h handler) ShowAbility(b *Battler) { h.logic.presenter.ShowAbility(b) }

// ShowAnimation plays a named animation.
func (h handler) ShowAnimation(name string, user *Battler, targets ...*Battler) {
	h.logic.presenter.ShowAnimation(name, user, targets)
}
