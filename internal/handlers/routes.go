package handlers

import "net/http"

// NewRouter registers every route. staticDir serves fragments and assets.
// Only view and interaction routes identify the visitor.
func NewRouter(app *AppHandler, quiz *QuizHandler, middleware *Middleware, staticDir http.FileSystem) http.Handler {
	mux := http.NewServeMux()

	// Fragments and assets
	files := http.FileServer(staticDir)
	mux.Handle("GET /sections/", files)
	mux.Handle("GET /components/", files)
	mux.Handle("GET /static/", files)

	mux.HandleFunc("GET /healthz", app.Health)

	// Views
	mux.Handle("GET /{$}", middleware.Visitor(http.HandlerFunc(app.Home)))
	mux.Handle("GET /home", middleware.Visitor(http.HandlerFunc(app.Homepage)))
	mux.Handle("GET /quiz/session/{token}", middleware.Visitor(http.HandlerFunc(quiz.ShowQuiz)))

	// Interactions
	mux.Handle("POST /profile", middleware.Visitor(middleware.RateLimit(middleware.CSRFProtect(app.SubmitProfile))))
	mux.Handle("POST /quiz/{quiz}/launch", middleware.Visitor(middleware.RateLimit(middleware.CSRFProtect(quiz.LaunchQuiz))))
	mux.Handle("POST /quiz/session/{token}/complete", middleware.Visitor(middleware.RateLimit(middleware.CSRFProtect(quiz.CompleteQuiz))))

	return Logging(mux)
}
