package service

import (
	"errors"
	"fmt"

	"studyaid/internal/models"
)

var (
	// ErrStaleRender is returned when a selection targets a question that is no longer shown
	ErrStaleRender = errors.New("drill question is no longer current")
	// ErrInvalidChoice is returned for a choice index outside the current item
	ErrInvalidChoice = errors.New("invalid drill choice")
)

// DrillFeedback is the result of selecting a choice
type DrillFeedback struct {
	Choice      int    `json:"choice"`
	Correct     bool   `json:"correct"`
	Verdict     string `json:"verdict"`
	Explanation string `json:"explanation"`
}

// Message joins the verdict and explanation the way the page shows them
func (f DrillFeedback) Message() string {
	return f.Verdict + " " + f.Explanation
}

// DrillView is what the page renders for the current question
type DrillView struct {
	Index      int            `json:"index"`
	ItemID     string         `json:"itemId"`
	Question   string         `json:"question"`
	Choices    []string       `json:"choices"`
	Feedback   *DrillFeedback `json:"feedback,omitempty"`
	Score      int            `json:"score"`
	Attempts   int            `json:"attempts"`
	ScoreLabel string         `json:"scoreLabel"`
}

// DrillEngine cycles through a fixed drill catalog, wrapping forever.
// It is not safe for concurrent use; PageSession serializes access.
type DrillEngine struct {
	items    []models.DrillItem
	index    int
	score    int
	feedback *DrillFeedback
}

// NewDrillEngine creates an engine over a validated copy of items
func NewDrillEngine(items []models.DrillItem) (*DrillEngine, error) {
	if err := models.ValidateDrills(items); err != nil {
		return nil, err
	}
	catalog := make([]models.DrillItem, len(items))
	copy(catalog, items)
	return &DrillEngine{items: catalog}, nil
}

func (e *DrillEngine) current() models.DrillItem {
	return e.items[e.index%len(e.items)]
}

// Current returns the view of the question on screen
func (e *DrillEngine) Current() DrillView {
	item := e.current()
	choices := make([]string, len(item.Choices))
	copy(choices, item.Choices)

	// Attempts is the index at render time: advances move it, clicks do not
	attempts := e.index
	view := DrillView{
		Index:      e.index,
		ItemID:     item.ID,
		Question:   item.Question,
		Choices:    choices,
		Score:      e.score,
		Attempts:   attempts,
		ScoreLabel: fmt.Sprintf("Score: %d / %d", e.score, attempts),
	}
	if e.feedback != nil {
		fb := *e.feedback
		view.Feedback = &fb
	}
	return view
}

// Select evaluates choice against the question shown at renderIndex.
// Every correct click scores, including repeats on the same render.
func (e *DrillEngine) Select(renderIndex, choice int) (DrillFeedback, error) {
	if renderIndex != e.index {
		return DrillFeedback{}, ErrStaleRender
	}
	item := e.current()
	if choice < 0 || choice >= len(item.Choices) {
		return DrillFeedback{}, fmt.Errorf("%w: %d", ErrInvalidChoice, choice)
	}

	fb := DrillFeedback{
		Choice:      choice,
		Correct:     choice == item.CorrectIndex,
		Verdict:     "Not quite.",
		Explanation: item.Explanation,
	}
	if fb.Correct {
		fb.Verdict = "Correct!"
		e.score++
	}
	e.feedback = &fb
	return fb, nil
}

// Advance moves to the next question, wrapping past the end of the catalog
func (e *DrillEngine) Advance() DrillView {
	e.index++
	e.feedback = nil
	return e.Current()
}
