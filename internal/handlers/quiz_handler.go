package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"shikshanam/internal/models"
	"shikshanam/internal/service"
)

// QuizHandler launches quizzes and receives their completion callbacks
type QuizHandler struct {
	app      *AppHandler
	progress *service.ProgressService
	sessions *service.QuizSessions
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(app *AppHandler, progress *service.ProgressService, sessions *service.QuizSessions) *QuizHandler {
	return &QuizHandler{
		app:      app,
		progress: progress,
		sessions: sessions,
	}
}

// SessionPath is the page of an active quiz session
func SessionPath(token string) string {
	return "/quiz/session/" + token
}

// CompletionPath is where a quiz fragment reports it is finished
func CompletionPath(token string) string {
	return SessionPath(token) + "/complete"
}

// LaunchQuiz starts a quiz session and sends the visitor to it
func (h *QuizHandler) LaunchQuiz(w http.ResponseWriter, r *http.Request) {
	quiz, ok := models.LookupQuiz(models.QuizID(r.PathValue("quiz")))
	if !ok {
		http.Error(w, ErrQuizNotFound, http.StatusNotFound)
		return
	}

	visitorID := GetVisitorID(r.Context())
	if record := h.progress.Profile(r.Context(), visitorID); !record.HasName() {
		// Quizzes are launched from the dashboard only
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	session := h.sessions.Start(visitorID, quiz.ID, func(ctx context.Context) error {
		_, awarded, err := h.progress.CompleteQuiz(ctx, visitorID, quiz.ID)
		if err != nil {
			return err
		}
		if awarded {
			log.Printf("Visitor %s completed quiz %s", visitorID, quiz.ID)
		}
		return nil
	})

	http.Redirect(w, r, SessionPath(session.Token), http.StatusSeeOther)
}

// ShowQuiz renders the dashboard in quiz mode with the quiz fragment mounted
func (h *QuizHandler) ShowQuiz(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	session, err := h.sessions.Get(token, GetVisitorID(r.Context()))
	if err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	quiz, _ := models.LookupQuiz(session.Quiz)

	page, err := h.app.composer.NewPage()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error creating page", err)
		return
	}

	visit := h.app.visit(r)
	h.app.composer.InitializeApp(r.Context(), page, visit)
	if !h.app.composer.LaunchQuiz(r.Context(), page, quiz, CompletionPath(token), visit) {
		log.Printf("Quiz %s could not be loaded for session %s", quiz.ID, token)
	}
	h.app.render(w, page)
}

// CompleteQuiz runs the session's completion callback. Unknown or already
// completed sessions are ignored. Either way the app is re-initialized.
func (h *QuizHandler) CompleteQuiz(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	visitorID := GetVisitorID(r.Context())

	if _, err := h.sessions.Complete(r.Context(), token, visitorID); err != nil && !errors.Is(err, service.ErrSessionNotFound) {
		log.Printf("Error completing quiz session %s: %v", token, err)
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
