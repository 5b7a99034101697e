package handlers

import (
	"errors"
	"net/http"

	"studyaid/internal/service"
)

// FlashcardAction applies next, previous, flip or shuffle to the deck
func (h *PageHandler) FlashcardAction(w http.ResponseWriter, r *http.Request) {
	page, ok := h.lookup(w, r)
	if !ok {
		return
	}

	view, err := page.Flashcard(service.CardAction(r.PathValue("action")))
	if errors.Is(err, service.ErrUnknownCardAction) {
		h.fail(w, r, http.StatusNotFound, "Unknown flashcard action", "", err)
		return
	}

	h.done(w, r, page, view)
}
