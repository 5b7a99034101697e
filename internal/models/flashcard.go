package models

import "fmt"

// Flashcard is a front/back study card with a topic tag
type Flashcard struct {
	Tag   string `json:"tag"`
	Front string `json:"front"`
	Back  string `json:"back"`
}

// ValidateFlashcards checks that a deck has at least one card
func ValidateFlashcards(cards []Flashcard) error {
	if len(cards) == 0 {
		return fmt.Errorf("flashcards: %w", ErrEmptyCatalog)
	}
	return nil
}
