package cards

import "fmt"

// Suit represents a card suit
type Suit string

const (
	Spades   Suit = "♠"
	Hearts   Suit = "♥"
	Diamonds Suit = "♦"
	Clubs    Suit = "♣"
)

// Suits lists the four suits in a fixed order.
var Suits = []Suit{Spades, Hearts, Diamonds, Clubs}

// Rank represents a card rank
type Rank string

const (
	Ace   Rank = "A"
	King  Rank = "K"
	Queen Rank = "Q"
	Jack  Rank = "J"
	Ten   Rank = "10"
	Nine  Rank = "9"
	Eight Rank = "8"
	Seven Rank = "7"
	Six   Rank = "6"
	Five  Rank = "5"
	Four  Rank = "4"
	Three Rank = "3"
	Two   Rank = "2"
)

// Ranks lists the thirteen ranks in a fixed order.
var Ranks = []Rank{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}

// Card represents a playing card
type Card struct {
	Suit Suit
	Rank Rank
}

// String returns the string representation of a card, e.g. "A♠"
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

// Equals checks if two cards are equal
func (c Card) Equals(other Card) bool {
	return c.Suit == other.Suit && c.Rank == other.Rank
}

// CardFromString creates a card from a string representation
// e.g., "10♠" or "10s" or "10S" -> Card{Suit: Spades, Rank: Ten}
func CardFromString(s string) (Card, error) {
	if len(s) < 2 {
		return Card{}, fmt.Errorf("invalid card shorthand: %s", s)
	}

	var suit Suit
	switch s[len(s)-1:] {
	case "♠", "s", "S":
		suit = Spades
	case "♥", "h", "H":
		suit = Hearts
	case "♦", "d", "D":
		suit = Diamonds
	case "♣", "c", "C":
		suit = Clubs
	default:
		return Card{}, fmt.Errorf("invalid card suit: %s", s[len(s)-1:])
	}

	for _, rank := range Ranks {
		if string(rank) == s[:len(s)-1] {
			return Card{Suit: suit, Rank: rank}, nil
		}
	}

	return Card{}, fmt.Errorf("invalid card rank: %s", s[:len(s)-1])
}

// MustCard creates a card from its shorthand and panics on invalid input.
func MustCard(s string) Card {
	c, err := CardFromString(s)
	if err != nil {
		panic(err)
	}
	return c
}
