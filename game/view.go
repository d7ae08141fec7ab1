package game

import "github.com/tarapoker/tarapoker/cards"

// SeatView is the public projection of one seat. Hole cards never appear
// here; a viewer only ever sees their own hand on the snapshot itself.
type SeatView struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Chips      int    `json:"chips"`
	CurrentBet int    `json:"currentBet"`
	Folded     bool   `json:"folded"`
}

// Snapshot is the immutable per-viewer state published after every
// accepted action.
type Snapshot struct {
	Seats          []SeatView `json:"players"`
	CommunityCards []string   `json:"communityCards"`
	Pot            int        `json:"pot"`
	BetToMatch     int        `json:"currentBet"`
	OnTurn         string     `json:"currentPlayer,omitempty"`
	Stage          string     `json:"stage,omitempty"`
	HandActive     bool       `json:"handActive"`
	Hand           []string   `json:"hand"`
}

// Snapshot projects the table for one viewer. It is a pure read: shared
// state is never mutated per viewer. An unknown viewerID (spectator, API)
// gets the public view with an empty hand.
func (t *Table) Snapshot(viewerID string) Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	snap := Snapshot{
		Seats:          make([]SeatView, 0, len(t.players)),
		CommunityCards: cardStrings(t.community),
		Pot:            t.pot,
		BetToMatch:     t.round.BetToMatch,
		OnTurn:         t.cursor.OnTurn(),
		HandActive:     t.handActive,
		Hand:           []string{},
	}
	if t.handActive {
		snap.Stage = string(t.stages.Stage())
	}

	for _, p := range t.players {
		snap.Seats = append(snap.Seats, SeatView{
			ID:         p.ID,
			Name:       p.Name,
			Chips:      p.Chips,
			CurrentBet: p.CurrentBet,
			Folded:     p.Folded,
		})
		if p.ID == viewerID {
			snap.Hand = cardStrings(p.Hand)
		}
	}
	return snap
}

// PlayerCount returns the number of occupied seats.
func (t *Table) PlayerCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.players)
}

func cardStrings(cs []cards.Card) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.String())
	}
	return out
}
