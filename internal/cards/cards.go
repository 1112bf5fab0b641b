// Package cards models a standard playing card deck drawn from the same
// randomness sources as the dice.
package cards

import (
	"github.com/hexspell/roll/internal/dice"
)

// Suit is one of the four card suits.
type Suit string

const (
	Diamonds Suit = "diamonds"
	Spades   Suit = "spades"
	Hearts   Suit = "hearts"
	Clubs    Suit = "clubs"
)

// Suits lists every suit in canonical deck order.
func Suits() []Suit {
	return []Suit{Diamonds, Spades, Hearts, Clubs}
}

// Rank is the face value of a card. Numbered ranks carry their value; jack
// through ace continue the ordering at 11 through 14.
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// Ranks lists every rank from two up to ace.
func Ranks() []Rank {
	return []Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}
}

// String renders the rank name in lowercase.
func (r Rank) String() string {
	switch r {
	case Two:
		return "two"
	case Three:
		return "three"
	case Four:
		return "four"
	case Five:
		return "five"
	case Six:
		return "six"
	case Seven:
		return "seven"
	case Eight:
		return "eight"
	case Nine:
		return "nine"
	case Ten:
		return "ten"
	case Jack:
		return "jack"
	case Queen:
		return "queen"
	case King:
		return "king"
	case Ace:
		return "ace"
	}
	return "unknown"
}

// Card is a single playing card.
type Card struct {
	Rank Rank
	Suit Suit
}

// String renders the card as spoken, e.g. "queen of spades".
func (c Card) String() string {
	return c.Rank.String() + " of " + string(c.Suit)
}

// RandomCard draws a uniformly random card using src. Unlike drawing from a
// Deck, repeated calls may produce the same card.
//
// Precondition: src must be non-nil.
func RandomCard(src dice.Source) Card {
	ranks := Ranks()
	suits := Suits()
	return Card{
		Rank: ranks[src.Intn(len(ranks))],
		Suit: suits[src.Intn(len(suits))],
	}
}

// Deck is an ordered pile of cards.
type Deck struct {
	cards []Card
}

// NewDeck builds the standard 52 card deck in canonical order: suits in
// deck order, ranks two through ace within each suit.
func NewDeck() *Deck {
	cards := make([]Card, 0, 52)
	for _, s := range Suits() {
		for _, r := range Ranks() {
			cards = append(cards, Card{Rank: r, Suit: s})
		}
	}
	return &Deck{cards: cards}
}

// Len returns the number of cards remaining.
func (d *Deck) Len() int {
	return len(d.cards)
}

// Shuffle reorders the remaining cards with a Fisher-Yates walk over src.
//
// Precondition: src must be non-nil.
func (d *Deck) Shuffle(src dice.Source) {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw removes and returns the top n cards. Drawing more than remain
// returns what is left, which may be nothing.
//
// Precondition: n must be >= 0.
func (d *Deck) Draw(n int) []Card {
	if n > len(d.cards) {
		n = len(d.cards)
	}
	drawn := make([]Card, n)
	copy(drawn, d.cards[:n])
	d.cards = d.cards[n:]
	return drawn
}
