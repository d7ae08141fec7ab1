package game

import (
	"fmt"
	"log"
	"sync"

	"github.com/sanity-io/litter"

	"github.com/tarapoker/tarapoker/cards"
)

// Table is the aggregate root of one game session: seats, deck, pot,
// community cards, and the betting/turn/stage machinery. All mutating
// operations are serialized behind one mutex, so concurrent connection
// handlers never interleave inside the state machine. A rejected action
// returns a typed error and leaves the table untouched.
type Table struct {
	mu sync.Mutex

	maxSeats      int
	startingChips int

	players   []*Player
	deck      *cards.Deck
	community []cards.Card
	pot       int

	round  BettingRound
	cursor TurnCursor
	stages StageController

	handActive bool
	comparator HandComparator
}

// NewTable creates a table with the given seat capacity and starting stack.
func NewTable(maxSeats, startingChips int) *Table {
	return &Table{
		maxSeats:      maxSeats,
		startingChips: startingChips,
		deck:          cards.NewDeck(),
	}
}

// UseDeck swaps the table's deck. Lets tests inject a deterministic one.
func (t *Table) UseDeck(deck *cards.Deck) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.deck = deck
}

// UseHandComparator installs the showdown extension point. Without one,
// a hand reaching showdown with two or more contenders stays unresolved.
func (t *Table) UseHandComparator(c HandComparator) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.comparator = c
}

// Join seats a new player with the table's starting stack. A player who
// joins while a hand is running sits the rest of it out.
func (t *Table) Join(playerID, name string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if seatIndex(t.players, playerID) != -1 {
		return ErrAlreadySeated
	}
	if len(t.players) >= t.maxSeats {
		return ErrTableFull
	}
	if name == "" {
		name = fmt.Sprintf("Player %d", len(t.players)+1)
	}

	player := &Player{
		ID:    playerID,
		Name:  name,
		Chips: t.startingChips,
	}
	if t.handActive {
		player.Folded = true
	}
	t.players = append(t.players, player)
	return nil
}

// Leave removes a seat. A leaving player folds first so turn-order and
// round-completion detection see a consistent picture; if the table
// empties, everything resets.
func (t *Table) Leave(playerID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx := seatIndex(t.players, playerID)
	if idx == -1 {
		return ErrPlayerNotFound
	}

	player := t.players[idx]
	wasOnTurn := t.cursor.OnTurn() == playerID

	if t.handActive && !player.Folded {
		player.Folded = true
	}
	if t.handActive && wasOnTurn {
		t.cursor.Advance(t.players, &t.round)
	}

	t.players = append(t.players[:idx], t.players[idx+1:]...)

	if len(t.players) == 0 {
		t.resetLocked()
		return nil
	}

	if t.handActive {
		if winner, ok := t.soleContenderLocked(); ok {
			t.resolveEliminationLocked(winner)
			return nil
		}
		if wasOnTurn && t.cursor.State() == CursorRoundComplete {
			t.advanceStagesLocked()
		}
	}
	return nil
}

// StartHand shuffles, deals two hole cards per funded seat, and opens the
// preflop round.
func (t *Table) StartHand() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.startHandLocked()
}

// Deal starts a hand when none is running. Community cards go out
// automatically when a betting round settles, so a mid-hand deal trips
// the once-per-stage guard.
func (t *Table) Deal() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.handActive {
		return t.startHandLocked()
	}
	return t.stages.MarkDealt()
}

// Bet opens the betting round.
func (t *Table) Bet(playerID string, amount int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	player, err := t.actingPlayerLocked(playerID)
	if err != nil {
		return err
	}
	delta, err := t.round.PlaceBet(player, amount)
	if err != nil {
		return err
	}
	t.pot += delta
	t.afterActionLocked()
	return nil
}

// Call matches the open bet.
func (t *Table) Call(playerID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	player, err := t.actingPlayerLocked(playerID)
	if err != nil {
		return err
	}
	delta, err := t.round.Call(player)
	if err != nil {
		return err
	}
	t.pot += delta
	t.afterActionLocked()
	return nil
}

// Raise matches the open bet and raises it by raiseBy.
func (t *Table) Raise(playerID string, raiseBy int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	player, err := t.actingPlayerLocked(playerID)
	if err != nil {
		return err
	}
	delta, err := t.round.Raise(player, raiseBy)
	if err != nil {
		return err
	}
	t.pot += delta
	t.afterActionLocked()
	return nil
}

// Fold folds the acting player. Their chips already in the pot stay there.
func (t *Table) Fold(playerID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	player, err := t.actingPlayerLocked(playerID)
	if err != nil {
		return err
	}
	t.round.Fold(player)
	t.afterActionLocked()
	return nil
}

// ResolveShowdown settles a hand parked at showdown with two or more
// contenders. It needs an installed HandComparator.
func (t *Table) ResolveShowdown() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.handActive || t.stages.Stage() != StageShowdown {
		return ErrOutOfTurn
	}
	if t.comparator == nil {
		return ErrShowdownUnavailable
	}
	t.payOutShowdownLocked()
	return nil
}

func (t *Table) startHandLocked() error {
	if t.handActive {
		return ErrStageAlreadyDealt
	}

	funded := 0
	for _, p := range t.players {
		if p.Chips > 0 {
			funded++
		}
	}
	if funded < 2 {
		return ErrNotEnoughPlayers
	}

	t.deck.Shuffle()
	t.community = nil
	t.pot = 0
	for _, p := range t.players {
		p.resetForHand()
		// busted players sit the hand out
		if p.Chips == 0 {
			p.Folded = true
		}
	}

	for i := 0; i < 2; i++ {
		for _, p := range t.players {
			if p.Folded {
				continue
			}
			card, err := t.drawLocked()
			if err != nil {
				return fmt.Errorf("dealing hole cards: %w", err)
			}
			p.Hand = append(p.Hand, card)
		}
	}

	t.stages.Reset()
	_ = t.stages.MarkDealt()
	t.round.Reset(t.players)
	t.cursor.StartRound(t.players)
	t.handActive = true
	return nil
}

// actingPlayerLocked validates identity first, then turn legality.
func (t *Table) actingPlayerLocked(playerID string) (*Player, error) {
	idx := seatIndex(t.players, playerID)
	if idx == -1 {
		return nil, ErrPlayerNotFound
	}
	if !t.handActive || !t.cursor.CanAct(playerID) {
		return nil, ErrOutOfTurn
	}
	return t.players[idx], nil
}

// afterActionLocked runs after every accepted action: elimination check,
// cursor advance, and stage advancement when the round settled.
func (t *Table) afterActionLocked() {
	if winner, ok := t.soleContenderLocked(); ok {
		t.resolveEliminationLocked(winner)
		return
	}

	t.cursor.Advance(t.players, &t.round)
	if t.cursor.State() == CursorRoundComplete {
		t.advanceStagesLocked()
	}
}

// advanceStagesLocked moves to the next stage, deals its community cards,
// and reopens betting. If nobody can act (all remaining players are
// all-in) the board runs out stage by stage until showdown.
func (t *Table) advanceStagesLocked() {
	for {
		deal, done := t.stages.Advance()
		if done {
			t.enterShowdownLocked()
			return
		}

		t.round.Reset(t.players)
		for i := 0; i < deal; i++ {
			card, err := t.drawLocked()
			if err != nil {
				// unreachable with <=6 seats; treated as fatal internal state
				t.endHandLocked()
				return
			}
			t.community = append(t.community, card)
		}
		_ = t.stages.MarkDealt()

		t.cursor.StartRound(t.players)
		if t.cursor.State() != CursorRoundComplete {
			return
		}
	}
}

func (t *Table) enterShowdownLocked() {
	if winner, ok := t.soleContenderLocked(); ok {
		t.resolveEliminationLocked(winner)
		return
	}
	t.cursor.Reset()
	if t.comparator != nil {
		t.payOutShowdownLocked()
		return
	}
	// No comparator installed: the hand parks at showdown and an external
	// resolver has to call ResolveShowdown once one is wired in.
	log.Printf("hand reached showdown with %d contenders and no comparator", len(t.contendersLocked()))
}

func (t *Table) payOutShowdownLocked() {
	contenders := t.contendersLocked()
	winners := t.comparator.CompareHands(t.community, contenders)
	if len(winners) == 0 {
		winners = contenders
	}

	share := t.pot / len(winners)
	remainder := t.pot % len(winners)
	for i, w := range winners {
		w.Chips += share
		if i == 0 {
			w.Chips += remainder
		}
	}
	t.pot = 0
	t.endHandLocked()
}

// soleContenderLocked returns the only non-folded player, if there is one.
func (t *Table) soleContenderLocked() (*Player, bool) {
	contenders := t.contendersLocked()
	if len(contenders) == 1 {
		return contenders[0], true
	}
	return nil, false
}

func (t *Table) contendersLocked() []*Player {
	var contenders []*Player
	for _, p := range t.players {
		if !p.Folded {
			contenders = append(contenders, p)
		}
	}
	return contenders
}

func (t *Table) resolveEliminationLocked(winner *Player) {
	winner.Chips += t.pot
	t.pot = 0
	t.endHandLocked()
}

// endHandLocked clears all per-hand state; chip stacks persist.
func (t *Table) endHandLocked() {
	t.handActive = false
	t.community = nil
	t.cursor.Reset()
	t.stages.Reset()
	t.round.BetToMatch = 0
	for _, p := range t.players {
		p.resetForHand()
	}
}

// resetLocked clears everything; used when the last seat empties.
func (t *Table) resetLocked() {
	t.players = nil
	t.pot = 0
	t.endHandLocked()
}

func (t *Table) drawLocked() (cards.Card, error) {
	card, err := t.deck.Draw()
	if err != nil {
		log.Printf("invariant breach, deck exhausted mid-hand; table state:\n%s",
			litter.Sdump(t.players, t.community, t.pot))
	}
	return card, err
}
