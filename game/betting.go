package game

// BettingRound tracks the open bet for the current stage. The funds-moving
// operations validate fully before touching any state and return the number
// of chips moved from the player, which the table adds to the pot.
type BettingRound struct {
	BetToMatch int
}

// PlaceBet opens the betting for the round. Legal only while no bet is open.
func (r *BettingRound) PlaceBet(p *Player, amount int) (int, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	if r.BetToMatch != 0 {
		return 0, ErrBetAlreadyOpen
	}
	if p.Chips < amount {
		return 0, ErrInsufficientFunds
	}

	p.Chips -= amount
	p.CurrentBet = amount
	r.BetToMatch = amount
	return amount, nil
}

// Call matches the open bet. The delta is the difference between the bet to
// match and what the player already has in this round.
func (r *BettingRound) Call(p *Player) (int, error) {
	if r.BetToMatch == 0 {
		return 0, ErrNoBetToCall
	}
	delta := r.BetToMatch - p.CurrentBet
	if delta <= 0 {
		return 0, ErrNoBetToCall
	}
	if p.Chips < delta {
		return 0, ErrInsufficientFunds
	}

	p.Chips -= delta
	p.CurrentBet = r.BetToMatch
	return delta, nil
}

// Raise matches the open bet and raises it by raiseBy on top.
func (r *BettingRound) Raise(p *Player, raiseBy int) (int, error) {
	if raiseBy <= 0 {
		return 0, ErrInvalidAmount
	}
	if r.BetToMatch == 0 {
		return 0, ErrNoBetToCall
	}
	delta := (r.BetToMatch - p.CurrentBet) + raiseBy
	if p.Chips < delta {
		return 0, ErrInsufficientFunds
	}

	p.Chips -= delta
	p.CurrentBet = r.BetToMatch + raiseBy
	r.BetToMatch += raiseBy
	return delta, nil
}

// Fold marks the player folded. Chips already contributed stay in the pot.
func (r *BettingRound) Fold(p *Player) {
	p.Folded = true
}

// Settled reports whether every player still able to act has matched the
// open bet. Trivially true when no bet is open.
func (r *BettingRound) Settled(players []*Player) bool {
	for _, p := range players {
		if p.CanAct() && p.CurrentBet != r.BetToMatch {
			return false
		}
	}
	return true
}

// Reset zeroes the bet to match and every non-folded player's round
// contribution. Called when advancing to the next stage, never mid-stage.
func (r *BettingRound) Reset(players []*Player) {
	r.BetToMatch = 0
	for _, p := range players {
		if !p.Folded {
			p.CurrentBet = 0
		}
	}
}
