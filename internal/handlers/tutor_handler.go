package handlers

import (
	"errors"
	"net/http"
	"time"

	"studyaid/internal/service"
)

// SubmitTutorPrompt appends the prompt and a pending reply to the chat log
func (h *PageHandler) SubmitTutorPrompt(w http.ResponseWriter, r *http.Request) {
	page, ok := h.lookup(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		h.fail(w, r, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}

	user, placeholder, err := page.Chat().Submit(r.FormValue("prompt"))
	if errors.Is(err, service.ErrEmptyPrompt) {
		if wantsJSON(r) {
			respondWithJSONError(w, h.logger, http.StatusUnprocessableEntity, "Prompt is empty", "", nil)
			return
		}
		http.Redirect(w, r, pagePath(page.ID), http.StatusSeeOther)
		return
	}
	if err != nil {
		h.fail(w, r, http.StatusInternalServerError, ErrInternalServerError, "Error submitting tutor prompt", err)
		return
	}

	h.done(w, r, page, tutorSubmitJSON{
		User:        newChatMessageView(user, h.md),
		Placeholder: newChatMessageView(placeholder, h.md),
	})
}

// Events streams tutor replies for the page as server-sent events
func (h *PageHandler) Events(w http.ResponseWriter, r *http.Request) {
	// No redirect here: EventSource would follow it and open a new page
	page, err := h.pages.Get(r.PathValue("pageID"), GetVisitorID(r.Context()))
	if err != nil {
		respondWithError(w, h.logger, http.StatusNotFound, ErrPageNotFound, "", nil)
		return
	}

	// Streams outlive the server's write timeout
	if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil {
		h.logger.Debug("Could not clear write deadline for event stream", "error", err)
	}

	client := h.hub.NewClient()
	h.hub.Subscribe(client, page.ID)
	defer h.hub.CloseClient(client)

	h.hub.ServeHTTP(w, r, client)
}
