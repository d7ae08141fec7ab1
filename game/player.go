package game

import "github.com/tarapoker/tarapoker/cards"

// Player is a seat at the table. The ID is the connection-scoped identity
// assigned by the transport when the player joins.
type Player struct {
	ID         string
	Name       string
	Chips      int
	CurrentBet int
	Folded     bool
	Hand       []cards.Card
}

// CanAct reports whether the player participates in turn order: seated,
// not folded, and with chips left to move.
func (p *Player) CanAct() bool {
	return !p.Folded && p.Chips > 0
}

// resetForHand clears the per-hand state while keeping the chip stack.
func (p *Player) resetForHand() {
	p.CurrentBet = 0
	p.Folded = false
	p.Hand = nil
}
