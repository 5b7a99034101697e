package models

// Tab names a content panel on the page
type Tab struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

const (
	TabDrills     = "drills"
	TabFlashcards = "flashcards"
	TabTutor      = "tutor"
)
