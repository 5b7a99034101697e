package handlers

import "net/http"

// ActivateTab switches the visible panel. Unknown names hide every panel.
func (h *PageHandler) ActivateTab(w http.ResponseWriter, r *http.Request) {
	page, ok := h.lookup(w, r)
	if !ok {
		return
	}

	h.done(w, r, page, page.ActivateTab(r.PathValue("name")))
}
