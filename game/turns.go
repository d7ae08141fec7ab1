package game

// CursorState represents the current state of the turn cursor
type CursorState string

const (
	CursorIdle           CursorState = "idle"
	CursorAwaitingAction CursorState = "awaiting_action"
	CursorRoundComplete  CursorState = "round_complete"
)

// TurnCursor is the turn-order state machine for one betting round. It
// points at the player on act and detects when the round is complete.
type TurnCursor struct {
	state  CursorState
	turnID string
}

// State returns the cursor state.
func (c *TurnCursor) State() CursorState {
	if c.state == "" {
		return CursorIdle
	}
	return c.state
}

// OnTurn returns the ID of the player on act, or "" when nobody is.
func (c *TurnCursor) OnTurn() string {
	return c.turnID
}

// CanAct reports whether playerID is the one the cursor is waiting on.
func (c *TurnCursor) CanAct(playerID string) bool {
	return c.state == CursorAwaitingAction && c.turnID == playerID
}

// Reset puts the cursor back to idle, with no hand running.
func (c *TurnCursor) Reset() {
	c.state = CursorIdle
	c.turnID = ""
}

// StartRound selects the first eligible seat in seat order. With no
// eligible seat left (everyone folded or all-in) the round completes
// immediately.
func (c *TurnCursor) StartRound(players []*Player) {
	for _, p := range players {
		if p.CanAct() {
			c.state = CursorAwaitingAction
			c.turnID = p.ID
			return
		}
	}
	c.state = CursorRoundComplete
	c.turnID = ""
}

// Advance moves the cursor after a legal action by the player on act.
// It scans forward in seat order, wrapping around, for the next eligible
// seat that still owes chips against the open bet. Coming back around to
// the seat that just acted means every other remaining player has folded
// or matched, so the round is complete.
func (c *TurnCursor) Advance(players []*Player, round *BettingRound) {
	cur := seatIndex(players, c.turnID)
	if cur == -1 {
		// Actor no longer seated (leave mid-hand); scan the whole table.
		cur = len(players) - 1
	}

	n := len(players)
	for i := 1; i <= n; i++ {
		p := players[(cur+i)%n]
		if p.ID == c.turnID {
			break
		}
		if !p.CanAct() {
			continue
		}
		if round.BetToMatch > 0 && p.CurrentBet == round.BetToMatch {
			continue
		}
		c.state = CursorAwaitingAction
		c.turnID = p.ID
		return
	}

	c.state = CursorRoundComplete
	c.turnID = ""
}

func seatIndex(players []*Player, playerID string) int {
	for i, p := range players {
		if p.ID == playerID {
			return i
		}
	}
	return -1
}
