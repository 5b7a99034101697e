package handlers

import (
	"net/http"

	"studyaid/internal/models"
)

type themeJSON struct {
	Theme       models.Theme `json:"theme"`
	ToggleLabel string       `json:"toggleLabel"`
}

// ToggleTheme flips the page's theme and stores the new preference
func (h *PageHandler) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	page, ok := h.lookup(w, r)
	if !ok {
		return
	}

	theme := h.pages.ToggleTheme(r.Context(), page)
	h.logger.Debug("Theme toggled", "page", page.ID, "theme", theme)

	h.done(w, r, page, themeJSON{Theme: theme, ToggleLabel: theme.ToggleLabel()})
}
