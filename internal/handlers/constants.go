package handlers

const (
	VisitorCookieName = "studyaid_visitor"
	CSRFFormField     = "csrf_token"
	CSRFHeader        = "X-CSRF-Token"

	// Client hint carrying the browser's color-scheme preference
	ColorSchemeHint = "Sec-CH-Prefers-Color-Scheme"

	ErrInvalidFormData     = "Invalid form data"
	ErrInvalidCSRFToken    = "Invalid CSRF token"
	ErrPageNotFound        = "Page not found"
	ErrTooManyRequests     = "Too many requests"
	ErrInternalServerError = "Internal server error"
)
