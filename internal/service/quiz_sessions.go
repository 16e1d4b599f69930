package service

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"shikshanam/internal/models"
)

// ErrSessionNotFound is returned for unknown or expired quiz sessions
var ErrSessionNotFound = errors.New("quiz session not found")

// CompletionFunc runs when the quiz fragment reports it is finished
type CompletionFunc func(ctx context.Context) error

// QuizSession is one launched quiz. Its completion callback is scoped to the
// session and reachable only through its token.
type QuizSession struct {
	Token     string
	VisitorID string
	Quiz      models.QuizID
	StartedAt time.Time
	ExpiresAt time.Time

	onComplete CompletionFunc
}

// IsExpired checks if the session has expired
func (s *QuizSession) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// QuizSessions is the in-memory registry of active quiz sessions
type QuizSessions struct {
	mu       sync.Mutex
	sessions map[string]*QuizSession
	ttl      time.Duration
}

// NewQuizSessions creates an empty registry. Sessions live for ttl.
func NewQuizSessions(ttl time.Duration) *QuizSessions {
	return &QuizSessions{
		sessions: make(map[string]*QuizSession),
		ttl:      ttl,
	}
}

// Start registers a new session for the visitor and quiz. Earlier sessions
// of the same visitor are dropped so only one quiz is active at a time.
func (r *QuizSessions) Start(visitorID string, quiz models.QuizID, onComplete CompletionFunc) *QuizSession {
	now := time.Now()
	session := &QuizSession{
		Token:      uuid.New().String(),
		VisitorID:  visitorID,
		Quiz:       quiz,
		StartedAt:  now,
		ExpiresAt:  now.Add(r.ttl),
		onComplete: onComplete,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for token, existing := range r.sessions {
		if existing.VisitorID == visitorID {
			delete(r.sessions, token)
		}
	}
	r.sessions[session.Token] = session
	return session
}

// Get returns the visitor's live session for token
func (r *QuizSessions) Get(token, visitorID string) (*QuizSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[token]
	if !ok || session.VisitorID != visitorID {
		return nil, ErrSessionNotFound
	}
	if session.IsExpired() {
		delete(r.sessions, token)
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Complete ends the session and runs its completion callback
func (r *QuizSessions) Complete(ctx context.Context, token, visitorID string) (*QuizSession, error) {
	session, err := r.Get(token, visitorID)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	delete(r.sessions, token)
	r.mu.Unlock()

	if session.onComplete == nil {
		return session, nil
	}
	return session, session.onComplete(ctx)
}

// CleanupExpired drops expired sessions and returns how many were removed
func (r *QuizSessions) CleanupExpired() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for token, session := range r.sessions {
		if session.IsExpired() {
			delete(r.sessions, token)
			removed++
		}
	}
	if removed > 0 {
		log.Printf("Removed %d expired quiz sessions", removed)
	}
	return removed
}

// Len returns the number of registered sessions
func (r *QuizSessions) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
