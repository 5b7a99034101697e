package service

import (
	"fmt"
	"math/rand/v2"

	"studyaid/internal/models"
)

// FlashcardView is what the page renders for the card under the cursor
type FlashcardView struct {
	Tag       string `json:"tag"`
	Front     string `json:"front"`
	Back      string `json:"back,omitempty"`
	Revealed  bool   `json:"revealed"`
	FlipLabel string `json:"flipLabel"`
	Position  int    `json:"position"`
	Total     int    `json:"total"`
	Progress  string `json:"progress"`
}

// FlashcardDeck walks a permutation of a fixed card catalog.
// It is not safe for concurrent use; PageSession serializes access.
type FlashcardDeck struct {
	cards    []models.Flashcard
	order    []int
	cursor   int
	revealed bool
	rng      *rand.Rand
}

// NewFlashcardDeck creates a deck in catalog order. A nil rng gets a randomly seeded one.
func NewFlashcardDeck(cards []models.Flashcard, rng *rand.Rand) (*FlashcardDeck, error) {
	if err := models.ValidateFlashcards(cards); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	catalog := make([]models.Flashcard, len(cards))
	copy(catalog, cards)

	order := make([]int, len(catalog))
	for i := range order {
		order[i] = i
	}
	return &FlashcardDeck{cards: catalog, order: order, rng: rng}, nil
}

// Current returns the view of the card under the cursor
func (d *FlashcardDeck) Current() FlashcardView {
	card := d.cards[d.order[d.cursor]]
	view := FlashcardView{
		Tag:       card.Tag,
		Front:     card.Front,
		Revealed:  d.revealed,
		FlipLabel: "Show Answer",
		Position:  d.cursor + 1,
		Total:     len(d.order),
		Progress:  fmt.Sprintf("Card %d of %d", d.cursor+1, len(d.order)),
	}
	if d.revealed {
		view.Back = card.Back
		view.FlipLabel = "Hide Answer"
	}
	return view
}

// Next moves forward one card, wrapping to the first
func (d *FlashcardDeck) Next() FlashcardView {
	d.cursor = (d.cursor + 1) % len(d.order)
	d.revealed = false
	return d.Current()
}

// Previous moves back one card, wrapping to the last
func (d *FlashcardDeck) Previous() FlashcardView {
	n := len(d.order)
	d.cursor = (d.cursor - 1 + n) % n
	d.revealed = false
	return d.Current()
}

// Flip toggles whether the back of the card is shown
func (d *FlashcardDeck) Flip() FlashcardView {
	d.revealed = !d.revealed
	return d.Current()
}

// Shuffle draws a new uniform permutation (Fisher–Yates) and rewinds to the first card
func (d *FlashcardDeck) Shuffle() FlashcardView {
	for i := len(d.order) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.order[i], d.order[j] = d.order[j], d.order[i]
	}
	d.cursor = 0
	d.revealed = false
	return d.Current()
}

// Order returns a copy of the current permutation
func (d *FlashcardDeck) Order() []int {
	order := make([]int, len(d.order))
	copy(order, d.order)
	return order
}

// Cursor returns the zero-based cursor position
func (d *FlashcardDeck) Cursor() int {
	return d.cursor
}
