package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"studyaid/internal/service"
)

// SelectDrillChoice evaluates a choice for the drill question that was rendered
func (h *PageHandler) SelectDrillChoice(w http.ResponseWriter, r *http.Request) {
	page, ok := h.lookup(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		h.fail(w, r, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}
	renderIndex, err := strconv.Atoi(r.FormValue("render"))
	if err != nil {
		h.fail(w, r, http.StatusBadRequest, ErrInvalidFormData, "Invalid drill render index", err)
		return
	}
	choice, err := strconv.Atoi(r.FormValue("choice"))
	if err != nil {
		h.fail(w, r, http.StatusBadRequest, ErrInvalidFormData, "Invalid drill choice", err)
		return
	}

	fb, view, err := page.SelectDrill(renderIndex, choice)
	switch {
	case errors.Is(err, service.ErrStaleRender):
		// A click on a question that has already moved on is dropped
		if wantsJSON(r) {
			writeJSON(w, h.logger, http.StatusConflict, drillJSON{Drill: view})
			return
		}
		http.Redirect(w, r, pagePath(page.ID), http.StatusSeeOther)
		return
	case errors.Is(err, service.ErrInvalidChoice):
		h.fail(w, r, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	case err != nil:
		h.fail(w, r, http.StatusInternalServerError, ErrInternalServerError, "Error selecting drill choice", err)
		return
	}

	h.done(w, r, page, drillJSON{Feedback: &fb, Drill: view})
}

// NextDrill advances to the next drill question
func (h *PageHandler) NextDrill(w http.ResponseWriter, r *http.Request) {
	page, ok := h.lookup(w, r)
	if !ok {
		return
	}

	h.done(w, r, page, drillJSON{Drill: page.AdvanceDrill()})
}
