package models

// Theme is the page's visual mode
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ThemePreferenceKey is the preference store key holding the selected theme
const ThemePreferenceKey = "theme"

// ParseTheme returns the theme named by s, or false if s names no theme
func ParseTheme(s string) (Theme, bool) {
	switch Theme(s) {
	case ThemeLight, ThemeDark:
		return Theme(s), true
	}
	return "", false
}

// Opposite returns the other theme. Anything that is not dark flips to dark.
func (t Theme) Opposite() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// ToggleLabel names the action the toggle control performs next,
// not the current state.
func (t Theme) ToggleLabel() string {
	if t == ThemeDark {
		return "Lights On"
	}
	return "Lights Off"
}
