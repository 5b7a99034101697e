package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogIsValid(t *testing.T) {
	c := Default()

	require.NoError(t, c.Validate())
	assert.Len(t, c.Drills, 3)
	assert.NotEmpty(t, c.Flashcards)
	assert.Equal(t, TutorFallback, c.TutorDefault)
}

func TestTutorRulePriorityOrder(t *testing.T) {
	rules := TutorRules()

	require.Len(t, rules, 4)
	assert.Equal(t, []string{"reading"}, rules[0].Keywords)
	assert.Equal(t, []string{"writing"}, rules[1].Keywords)
	assert.Equal(t, []string{"math", "algebra"}, rules[2].Keywords)
	assert.Equal(t, []string{"timing", "time"}, rules[3].Keywords)
}

func TestDefaultReturnsFreshCopies(t *testing.T) {
	a := Default()
	a.Drills[0].Question = "mutated"
	a.Flashcards[0].Front = "mutated"

	b := Default()
	assert.NotEqual(t, "mutated", b.Drills[0].Question)
	assert.NotEqual(t, "mutated", b.Flashcards[0].Front)
}
