package handlers

import (
	"log"
	"net/http"

	"shikshanam/internal/fragment"
	"shikshanam/internal/security"
	"shikshanam/internal/service"
	"shikshanam/internal/view"
)

// AppHandler serves the composed site and the profile form
type AppHandler struct {
	composer *view.Composer
	progress *service.ProgressService
	csrf     *security.CSRFGenerator
}

// NewAppHandler creates a new app handler
func NewAppHandler(composer *view.Composer, progress *service.ProgressService, csrf *security.CSRFGenerator) *AppHandler {
	return &AppHandler{
		composer: composer,
		progress: progress,
		csrf:     csrf,
	}
}

// Home composes the page from the visitor's persisted record
func (h *AppHandler) Home(w http.ResponseWriter, r *http.Request) {
	page, err := h.composer.NewPage()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error creating page", err)
		return
	}

	h.composer.InitializeApp(r.Context(), page, h.visit(r))
	h.render(w, page)
}

// Homepage handles the logo link: the homepage is shown even when the
// visitor already has a dashboard
func (h *AppHandler) Homepage(w http.ResponseWriter, r *http.Request) {
	page, err := h.composer.NewPage()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error creating page", err)
		return
	}

	visit := h.visit(r)
	h.composer.InitializeApp(r.Context(), page, visit)
	h.composer.NavigateToHomepage(r.Context(), page, visit)
	h.render(w, page)
}

// SubmitProfile handles the Rishi Mode profile form
func (h *AppHandler) SubmitProfile(w http.ResponseWriter, r *http.Request) {
	visitorID := GetVisitorID(r.Context())

	if _, err := h.progress.SubmitProfile(r.Context(), visitorID, r.PostFormValue("name")); err != nil {
		log.Printf("Error saving profile for %s: %v", visitorID, err)
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Health reports liveness
func (h *AppHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

// visit collects the per-request composition inputs
func (h *AppHandler) visit(r *http.Request) view.Visit {
	visitorID := GetVisitorID(r.Context())

	token, err := h.csrf.GenerateToken(visitorID)
	if err != nil {
		log.Printf("Error generating CSRF token: %v", err)
	}

	return view.Visit{
		VisitorID: visitorID,
		CSRFToken: token,
		Header:    view.ParseHeaderState(r.URL),
	}
}

func (h *AppHandler) render(w http.ResponseWriter, page *fragment.Page) {
	html, err := page.HTML()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error rendering page", err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set(ViewHeaderName, view.CurrentView(page).String())
	w.Write([]byte(html))
}
