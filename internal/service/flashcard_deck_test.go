package service

import (
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyaid/internal/models"
)

func testCards(n int) []models.Flashcard {
	cards := make([]models.Flashcard, n)
	for i := range cards {
		cards[i] = models.Flashcard{Tag: "T", Front: string(rune('A' + i)), Back: string(rune('a' + i))}
	}
	return cards
}

func newTestDeck(t *testing.T, n int) *FlashcardDeck {
	t.Helper()
	d, err := NewFlashcardDeck(testCards(n), rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	return d
}

func TestFlashcardDeckRejectsEmptyCatalog(t *testing.T) {
	_, err := NewFlashcardDeck(nil, nil)
	assert.ErrorIs(t, err, models.ErrEmptyCatalog)
}

func TestFlashcardRenderHidesBackUntilFlipped(t *testing.T) {
	d := newTestDeck(t, 3)

	view := d.Current()
	assert.Equal(t, "A", view.Front)
	assert.Empty(t, view.Back)
	assert.Equal(t, "Show Answer", view.FlipLabel)
	assert.Equal(t, "Card 1 of 3", view.Progress)

	view = d.Flip()
	assert.Equal(t, "a", view.Back)
	assert.Equal(t, "Hide Answer", view.FlipLabel)
	assert.Equal(t, 0, d.Cursor(), "flip must not move the cursor")
}

func TestFlashcardFlipTwiceRestores(t *testing.T) {
	d := newTestDeck(t, 3)
	before := d.Current().Revealed
	d.Flip()
	assert.Equal(t, before, d.Flip().Revealed)
}

func TestFlashcardNextThenPreviousRoundTrips(t *testing.T) {
	for _, n := range []int{1, 2, 5} {
		d := newTestDeck(t, n)
		for start := 0; start < n; start++ {
			for d.Cursor() != start {
				d.Next()
			}
			d.Next()
			d.Previous()
			assert.Equal(t, start, d.Cursor())
		}
	}
}

func TestFlashcardNavigationWrapsAndHides(t *testing.T) {
	d := newTestDeck(t, 3)

	d.Flip()
	view := d.Previous()
	assert.Equal(t, 2, d.Cursor())
	assert.False(t, view.Revealed)

	d.Flip()
	view = d.Next()
	assert.Equal(t, 0, d.Cursor())
	assert.False(t, view.Revealed)
}

func TestFlashcardShuffleIsPermutation(t *testing.T) {
	d := newTestDeck(t, 7)
	d.Next()
	d.Next()
	d.Flip()

	for i := 0; i < 20; i++ {
		view := d.Shuffle()
		assert.Equal(t, 0, d.Cursor())
		assert.False(t, view.Revealed)

		order := d.Order()
		sort.Ints(order)
		assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, order)
	}
}

func TestFlashcardShuffleSingleCard(t *testing.T) {
	d := newTestDeck(t, 1)
	assert.NotPanics(t, func() { d.Shuffle() })
	assert.Equal(t, []int{0}, d.Order())
}
