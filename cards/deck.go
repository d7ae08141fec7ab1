package cards

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"math/rand"
	"time"
)

// ErrEmptyDeck is returned by Draw when no cards remain.
var ErrEmptyDeck = errors.New("deck is empty")

// Deck is an ordered set of cards drawn from the top. Its shuffles use a
// dedicated random source so tests can inject a deterministic one.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// NewDeck creates an unshuffled 52-card deck seeded from crypto/rand.
func NewDeck() *Deck {
	return NewDeckWithSource(rand.NewSource(cryptoSeed()))
}

// NewDeckWithSource creates a deck whose shuffles draw from src.
func NewDeckWithSource(src rand.Source) *Deck {
	return &Deck{
		cards: fullSet(),
		rng:   rand.New(src),
	}
}

// fullSet returns the canonical 52-card set in a fixed order.
func fullSet() []Card {
	deck := make([]Card, 0, 52)
	for _, suit := range Suits {
		for _, rank := range Ranks {
			deck = append(deck, Card{Suit: suit, Rank: rank})
		}
	}
	return deck
}

// Shuffle repopulates the full 52-card set and permutes it uniformly
// (Fisher-Yates).
func (d *Deck) Shuffle() {
	d.cards = fullSet()
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw removes and returns the top card.
func (d *Deck) Draw() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrEmptyDeck
	}
	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, nil
}

// Remaining returns the number of undrawn cards.
func (d *Deck) Remaining() int {
	return len(d.cards)
}

func cryptoSeed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		// crypto/rand failing is effectively unheard of; keep the table playable.
		return time.Now().UnixNano()
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}
