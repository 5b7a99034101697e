package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"studyaid/internal/logger"
)

func respondWithError(w http.ResponseWriter, log *logger.Logger, status int, userMsg, logMsg string, err error) {
	if err != nil && log != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		log.Warn(logMsg, "status", status, "error", err)
	}

	http.Error(w, userMsg, status)
}

// respondWithJSONError is respondWithError for clients that asked for JSON
func respondWithJSONError(w http.ResponseWriter, log *logger.Logger, status int, userMsg, logMsg string, err error) {
	if err != nil && log != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		log.Warn(logMsg, "status", status, "error", err)
	}

	writeJSON(w, log, status, map[string]string{"error": userMsg})
}

func writeJSON(w http.ResponseWriter, log *logger.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil && log != nil {
		log.Error("Error encoding JSON response", "error", err)
	}
}

// wantsJSON reports whether the client prefers a JSON view over a redirect
func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
