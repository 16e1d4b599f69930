package models

// BadgeID identifies a one-time achievement
type BadgeID string

const (
	BadgeJourneyStarted BadgeID = "journey_started"
	BadgeGunaProfiler   BadgeID = "guna_profiler"
	BadgeShivaQuiz      BadgeID = "shiva_quiz"
)

// QuizID identifies a quiz
type QuizID string

const (
	QuizGuna  QuizID = "guna"
	QuizShiva QuizID = "shiva"
)

// Points awarded per milestone
const (
	JourneyStartedPoints = 10
	QuizCompletionPoints = 50
)

// Badge describes a badge card on the dashboard
type Badge struct {
	ID          BadgeID
	Icon        string
	Title       string
	Description string
}

// Quiz describes a quiz card and where its fragment is mounted
type Quiz struct {
	ID          QuizID
	Badge       BadgeID
	ContainerID string
	Fragment    string
	Icon        string
	Title       string
	Description string
	ButtonLabel string
}

// BadgeCatalog is the fixed, ordered list of badges shown on the dashboard
var BadgeCatalog = []Badge{
	{ID: BadgeJourneyStarted, Icon: "fa-solid fa-flag", Title: "Journey Started", Description: "Began your Rishi Mode."},
	{ID: BadgeGunaProfiler, Icon: "fa-solid fa-feather-alt", Title: "Guna Profiler", Description: "Completed the Guna Profiler."},
	{ID: BadgeShivaQuiz, Icon: "fa-solid fa-om", Title: "Shiva Consciousness", Description: "Completed the Shiva Quiz."},
}

// QuizCatalog is the fixed, ordered list of quizzes
var QuizCatalog = []Quiz{
	{
		ID:          QuizGuna,
		Badge:       BadgeGunaProfiler,
		ContainerID: "guna-profiler-container",
		Fragment:    "sections/guna-profiler.html",
		Icon:        "fa-solid fa-feather-alt",
		Title:       "The Guna Profiler",
		Description: "Uncover the forces shaping your personality.",
		ButtonLabel: "Begin Profiler",
	},
	{
		ID:          QuizShiva,
		Badge:       BadgeShivaQuiz,
		ContainerID: "shiva-quiz-container",
		Fragment:    "sections/shiv-consciousness-inquiry.html",
		Icon:        "fa-solid fa-om",
		Title:       "Shiv Consciousness Quiz",
		Description: "Explore your connection to ultimate reality.",
		ButtonLabel: "Take the Quiz",
	},
}

// LookupQuiz returns the catalog entry for id
func LookupQuiz(id QuizID) (Quiz, bool) {
	for _, quiz := range QuizCatalog {
		if quiz.ID == id {
			return quiz, true
		}
	}
	return Quiz{}, false
}
