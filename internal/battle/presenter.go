package battle

// Presenter receives everything Handlers want shown to the player.
// The battle core never requires a real implementation.
type Presenter interface {
	Message(text string)
	// ShowAbility flashes the ability banner of b.
	ShowAbility(b *Battler)
	// ShowHP refreshes the HP bar of b.
	ShowHP(b *Battler)
	// ShowAnimation plays a named move or field animation.
	ShowAnimation(name string, user *Battler, targets []*Battler)
}

// NopPresenter discards every presentation request.
type NopPresenter struct{}

func (NopPresenter) Message(string)                           {}
func (NopPresenter) ShowAbility(*Battler)                     {}
func (NopPresenter) ShowHP(*Battler)                          {}
func (NopPresenter) ShowAnimation(string, *Battler, []*Battler) {}

// MessageLog collects messages, for tests and battle replays.
type MessageLog struct {
	NopPresenter
	Lines []string
}

// Message records text.
func (m *MessageLog) Message(text string) {
	m.Lines = append(m.Lines, text)
}
