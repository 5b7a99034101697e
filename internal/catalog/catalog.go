// Package catalog holds the built-in study content: drills, flashcards and
// tutor rules. Everything here is read-only; engines receive copies.
package catalog

import "studyaid/internal/models"

// Catalog bundles the content injected into each page session
type Catalog struct {
	Drills       []models.DrillItem
	Flashcards   []models.Flashcard
	TutorRules   []models.TutorRule
	TutorDefault string
}

// Default returns the reference catalog
func Default() Catalog {
	return Catalog{
		Drills:       Drills(),
		Flashcards:   Flashcards(),
		TutorRules:   TutorRules(),
		TutorDefault: TutorFallback,
	}
}

// Validate checks every section of the catalog
func (c Catalog) Validate() error {
	if err := models.ValidateDrills(c.Drills); err != nil {
		return err
	}
	return models.ValidateFlashcards(c.Flashcards)
}

// Drills returns the reference drill set
func Drills() []models.DrillItem {
	return []models.DrillItem{
		{
			ID:       "reading-main-idea",
			Question: "A passage spends four paragraphs describing how coral reefs recover after bleaching. Which choice best states its main idea?",
			Choices: []string{
				"Coral reefs are the most colorful ecosystems on Earth.",
				"Reefs can recover from bleaching under the right conditions.",
				"Bleaching is caused only by pollution.",
				"Scientists disagree about what coral eats.",
			},
			CorrectIndex: 1,
			Explanation:  "The main idea covers the **whole** passage. Every paragraph is about recovery, so the answer must mention it.",
		},
		{
			ID:       "writing-subject-verb",
			Question: "Choose the correct verb: \"The list of required materials ___ posted on the door.\"",
			Choices: []string{
				"are",
				"were",
				"is",
				"have been",
			},
			CorrectIndex: 2,
			Explanation:  "The subject is *list*, not *materials*. A singular subject takes **is**.",
		},
		{
			ID:       "math-linear-equation",
			Question: "If 3x + 7 = 22, what is the value of x?",
			Choices: []string{
				"3",
				"5",
				"7",
				"15",
			},
			CorrectIndex: 1,
			Explanation:  "Subtract 7 from both sides to get 3x = 15, then divide by 3: **x = 5**.",
		},
	}
}

// Flashcards returns the reference flashcard deck
func Flashcards() []models.Flashcard {
	return []models.Flashcard{
		{Tag: "Reading", Front: "What is an inference question really asking?", Back: "What must be true based on the text, not what could be true."},
		{Tag: "Reading", Front: "Where do main-idea clues usually live?", Back: "The first and last sentences of the passage and of each paragraph."},
		{Tag: "Writing", Front: "When do you use a semicolon?", Back: "Between two complete sentences that are closely related."},
		{Tag: "Writing", Front: "Its vs. it's?", Back: "It's = it is. Its = belonging to it."},
		{Tag: "Math", Front: "Slope-intercept form", Back: "y = mx + b, where m is the slope and b is the y-intercept."},
		{Tag: "Math", Front: "Area of a circle", Back: "A = πr²"},
		{Tag: "Strategy", Front: "Stuck on a question for over a minute?", Back: "Mark it, guess, move on, and come back if time allows."},
	}
}

// TutorRules returns the keyword rules in priority order. Order matters:
// a prompt mentioning several topics gets the first matching rule's reply.
func TutorRules() []models.TutorRule {
	return []models.TutorRule{
		{
			Keywords: []string{"reading"},
			Reply:    "For **reading**, skim the passage first for structure, then read the question and hunt for line evidence before you look at the choices.",
		},
		{
			Keywords: []string{"writing"},
			Reply:    "For **writing**, read the full sentence out loud in your head. Check subject-verb agreement, then punctuation, then concision: shorter is usually right.",
		},
		{
			Keywords: []string{"math", "algebra"},
			Reply:    "For **math**, write every step down. Plug the answer choices back in when an equation looks messy, and double-check units and signs.",
		},
		{
			Keywords: []string{"timing", "time"},
			Reply:    "For **timing**, budget about a minute per question. Skip anything that stalls you past that and circle back once the easy points are banked.",
		},
	}
}

// TutorFallback is returned when no rule matches
const TutorFallback = "Try short, focused sessions: 25 minutes of practice, 5 minutes of review. Ask me about **reading**, **writing**, **math** or **timing** for specific tips."

// TutorFailureNotice replaces a pending reply when resolution fails
const TutorFailureNotice = "Sorry, I couldn't come up with a tip right now. Please try again."
