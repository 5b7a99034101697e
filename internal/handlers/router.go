package handlers

import (
	"net/http"

	"studyaid/internal/logger"
)

// NewRouter wires every route. Page routes run behind the visitor
// middleware; static files and the health check do not.
func NewRouter(pages *PageHandler, health *HealthHandler, mw *Middleware, staticPath string, log *logger.Logger) http.Handler {
	pageMux := http.NewServeMux()

	pageMux.HandleFunc("GET /{$}", pages.Home)
	pageMux.HandleFunc("GET /pages/{pageID}", pages.ShowPage)
	pageMux.HandleFunc("GET /pages/{pageID}/events", pages.Events)

	pageMux.HandleFunc("POST /pages/{pageID}/theme/toggle", mw.CSRFProtect(pages.ToggleTheme))
	pageMux.HandleFunc("POST /pages/{pageID}/drill/select", mw.CSRFProtect(pages.SelectDrillChoice))
	pageMux.HandleFunc("POST /pages/{pageID}/drill/next", mw.CSRFProtect(pages.NextDrill))
	pageMux.HandleFunc("POST /pages/{pageID}/cards/{action}", mw.CSRFProtect(pages.FlashcardAction))
	pageMux.HandleFunc("POST /pages/{pageID}/tabs/{name}", mw.CSRFProtect(pages.ActivateTab))
	pageMux.HandleFunc("POST /pages/{pageID}/tutor", mw.RateLimit(mw.CSRFProtect(pages.SubmitTutorPrompt)))

	mux := http.NewServeMux()
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticPath))))
	mux.HandleFunc("GET /healthz", health.Health)
	mux.Handle("/", mw.Visitor(pageMux))

	if log == nil {
		log = logger.NewNop()
	}
	return Logging(log)(mux)
}
