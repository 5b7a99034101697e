package handlers

import (
	"errors"
	"html/template"
	"net/http"

	"studyaid/internal/logger"
	"studyaid/internal/security"
	"studyaid/internal/service"
	"studyaid/internal/sse"
)

const pendingRefreshSeconds = 2

// PageHandler serves the study page and every action posted to it
type PageHandler struct {
	pages     *service.PageService
	greeting  *service.GreetingService
	backend   *service.BackendClient
	csrf      *security.CSRFGenerator
	hub       *sse.Hub
	md        *Markdown
	templates *template.Template
	logger    *logger.Logger
}

// PageHandlerOptions configures a PageHandler. Greeting may be nil, in which
// case the page has no greeting.
type PageHandlerOptions struct {
	Pages     *service.PageService
	Greeting  *service.GreetingService
	Backend   *service.BackendClient
	CSRF      *security.CSRFGenerator
	Hub       *sse.Hub
	Markdown  *Markdown
	Templates *template.Template
	Logger    *logger.Logger
}

// NewPageHandler creates a new page handler
func NewPageHandler(opts PageHandlerOptions) *PageHandler {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}
	md := opts.Markdown
	if md == nil {
		md = NewMarkdown()
	}
	return &PageHandler{
		pages:     opts.Pages,
		greeting:  opts.Greeting,
		backend:   opts.Backend,
		csrf:      opts.CSRF,
		hub:       opts.Hub,
		md:        md,
		templates: opts.Templates,
		logger:    log.With("component", "PageHandler"),
	}
}

// Home is the page-load entry point: every visit starts a fresh page session
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	page, err := h.pages.Create(r.Context(), GetVisitorID(r.Context()), GetPrefersLight(r.Context()))
	if err != nil {
		h.fail(w, r, http.StatusInternalServerError, ErrInternalServerError, "Error creating page session", err)
		return
	}

	location := pagePath(page.ID)
	if wantsJSON(r) {
		w.Header().Set("Location", location)
		writeJSON(w, h.logger, http.StatusCreated, h.pageJSON(page))
		return
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}

// ShowPage renders the current state of a page session
func (h *PageHandler) ShowPage(w http.ResponseWriter, r *http.Request) {
	page, ok := h.lookup(w, r)
	if !ok {
		return
	}

	if wantsJSON(r) {
		writeJSON(w, h.logger, http.StatusOK, h.pageJSON(page))
		return
	}

	snapshot := page.Snapshot()
	view := PageView{
		Title:         "Study Aid",
		Page:          snapshot,
		Greeting:      h.greetingText(),
		BackendStatus: h.backend.StatusLabel(),
		CSRFToken:     h.token(page.ID),
	}
	if snapshot.ChatPending {
		view.RefreshSeconds = pendingRefreshSeconds
	}

	w.Header().Set("Cache-Control", "no-store")
	if err := h.templates.ExecuteTemplate(w, "page.tmpl", view); err != nil {
		h.logger.Error("Error rendering page template", "error", err, "page", page.ID)
		http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
	}
}

// lookup resolves {pageID} for the current visitor. A missing page sends
// browsers back to the entry point and JSON clients a 404.
func (h *PageHandler) lookup(w http.ResponseWriter, r *http.Request) (*service.PageSession, bool) {
	page, err := h.pages.Get(r.PathValue("pageID"), GetVisitorID(r.Context()))
	if err == nil {
		return page, true
	}
	if !errors.Is(err, service.ErrPageNotFound) {
		h.fail(w, r, http.StatusInternalServerError, ErrInternalServerError, "Error loading page session", err)
		return nil, false
	}
	if wantsJSON(r) || r.Method != http.MethodGet {
		h.fail(w, r, http.StatusNotFound, ErrPageNotFound, "", nil)
		return nil, false
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
	return nil, false
}

// done finishes a POST action: JSON clients get v, browsers go back to the page
func (h *PageHandler) done(w http.ResponseWriter, r *http.Request, page *service.PageSession, v any) {
	if wantsJSON(r) {
		writeJSON(w, h.logger, http.StatusOK, v)
		return
	}
	http.Redirect(w, r, pagePath(page.ID), http.StatusSeeOther)
}

func (h *PageHandler) fail(w http.ResponseWriter, r *http.Request, status int, userMsg, logMsg string, err error) {
	if wantsJSON(r) {
		respondWithJSONError(w, h.logger, status, userMsg, logMsg, err)
		return
	}
	respondWithError(w, h.logger, status, userMsg, logMsg, err)
}

func (h *PageHandler) pageJSON(page *service.PageSession) pageJSON {
	snapshot := page.Snapshot()
	return pageJSON{
		PageSnapshot:  snapshot,
		Chat:          newChatMessageViews(snapshot.Chat, h.md),
		Greeting:      h.greetingText(),
		BackendStatus: h.backend.StatusLabel(),
		CSRFToken:     h.token(page.ID),
	}
}

func (h *PageHandler) greetingText() string {
	if h.greeting == nil {
		return ""
	}
	return h.greeting.Render()
}

func (h *PageHandler) token(pageID string) string {
	token, err := h.csrf.Token(pageID)
	if err != nil {
		h.logger.Error("Error generating CSRF token", "error", err, "page", pageID)
		return ""
	}
	return token
}

func pagePath(pageID string) string {
	return "/pages/" + pageID
}
