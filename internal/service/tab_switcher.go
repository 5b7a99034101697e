package service

import "studyaid/internal/models"

// TabView reports one tab control and its panel
type TabView struct {
	Name    string `json:"name"`
	Label   string `json:"label"`
	Active  bool   `json:"active"`
	Visible bool   `json:"visible"`
}

// DefaultTabs returns the page's fixed tab set
func DefaultTabs() []models.Tab {
	return []models.Tab{
		{Name: models.TabDrills, Label: "Drills"},
		{Name: models.TabFlashcards, Label: "Flashcards"},
		{Name: models.TabTutor, Label: "Tutor"},
	}
}

// TabSwitcher shows exactly one panel for a known tab and none for an unknown one
type TabSwitcher struct {
	tabs   []models.Tab
	active string
}

// NewTabSwitcher creates a switcher with defaultTab already activated
func NewTabSwitcher(tabs []models.Tab, defaultTab string) *TabSwitcher {
	copied := make([]models.Tab, len(tabs))
	copy(copied, tabs)
	s := &TabSwitcher{tabs: copied}
	s.Activate(defaultTab)
	return s
}

// Activate switches to name and reports whether name is a known tab
func (s *TabSwitcher) Activate(name string) bool {
	s.active = name
	return s.known(name)
}

func (s *TabSwitcher) known(name string) bool {
	for _, t := range s.tabs {
		if t.Name == name {
			return true
		}
	}
	return false
}

// Active returns the most recently activated name, known or not
func (s *TabSwitcher) Active() string {
	return s.active
}

// Visible reports whether name's panel is shown
func (s *TabSwitcher) Visible(name string) bool {
	return name == s.active && s.known(name)
}

// Tabs returns every tab with its active/visible state
func (s *TabSwitcher) Tabs() []TabView {
	views := make([]TabView, len(s.tabs))
	for i, t := range s.tabs {
		on := t.Name == s.active
		views[i] = TabView{Name: t.Name, Label: t.Label, Active: on, Visible: on}
	}
	return views
}
