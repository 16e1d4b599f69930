package handlers

const (
	VisitorCookieName = "visitor_token"

	// ViewHeaderName reports the top-level view a composed page shows
	ViewHeaderName = "X-Shikshanam-View"

	ErrInvalidFormData     = "Invalid form data"
	ErrInvalidCSRFToken    = "Invalid or missing CSRF token"
	ErrTooManyRequests     = "Too many requests"
	ErrInternalServerError = "Internal server error"
	ErrQuizNotFound        = "Quiz not found"
)
