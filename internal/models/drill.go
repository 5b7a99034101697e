package models

import (
	"errors"
	"fmt"
)

// DrillItem is a single multiple-choice practice question
type DrillItem struct {
	ID           string   `json:"id"`
	Question     string   `json:"question"`
	Choices      []string `json:"choices"`
	CorrectIndex int      `json:"correctIndex"`
	Explanation  string   `json:"explanation"`
}

// ErrEmptyCatalog is returned when an engine is built from no items
var ErrEmptyCatalog = errors.New("catalog is empty")

// Validate checks that the item has at least two choices and a correct index in range
func (d DrillItem) Validate() error {
	if len(d.Choices) < 2 {
		return fmt.Errorf("drill %q: needs at least 2 choices, has %d", d.ID, len(d.Choices))
	}
	if d.CorrectIndex < 0 || d.CorrectIndex >= len(d.Choices) {
		return fmt.Errorf("drill %q: correct index %d out of range", d.ID, d.CorrectIndex)
	}
	return nil
}

// ValidateDrills validates a whole drill catalog
func ValidateDrills(items []DrillItem) error {
	if len(items) == 0 {
		return fmt.Errorf("drills: %w", ErrEmptyCatalog)
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	return nil
}
