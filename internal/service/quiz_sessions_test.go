package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"shikshanam/internal/models"
)

func TestQuizSessionCompletionRunsCallbackOnce(t *testing.T) {
	sessions := NewQuizSessions(time.Hour)
	ctx := context.Background()

	calls := 0
	session := sessions.Start("v", models.QuizGuna, func(ctx context.Context) error {
		calls++
		return nil
	})

	if _, err := sessions.Complete(ctx, session.Token, "v"); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if _, err := sessions.Complete(ctx, session.Token, "v"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("second Complete err = %v, want ErrSessionNotFound", err)
	}
	if calls != 1 {
		t.Errorf("callback ran %d times, want 1", calls)
	}
}

func TestQuizSessionScopedToVisitor(t *testing.T) {
	sessions := NewQuizSessions(time.Hour)
	session := sessions.Start("owner", models.QuizShiva, nil)

	if _, err := sessions.Get(session.Token, "someone-else"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Get by another visitor err = %v, want ErrSessionNotFound", err)
	}
	if _, err := sessions.Complete(context.Background(), session.Token, "someone-else"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Complete by another visitor err = %v, want ErrSessionNotFound", err)
	}
	if _, err := sessions.Get(session.Token, "owner"); err != nil {
		t.Errorf("owner lost the session: %v", err)
	}
}

func TestQuizSessionStartReplacesPrevious(t *testing.T) {
	sessions := NewQuizSessions(time.Hour)

	first := sessions.Start("v", models.QuizGuna, nil)
	second := sessions.Start("v", models.QuizShiva, nil)

	if _, err := sessions.Get(first.Token, "v"); !errors.Is(err, ErrSessionNotFound) {
		t.Error("first session should be replaced")
	}
	if got, err := sessions.Get(second.Token, "v"); err != nil || got.Quiz != models.QuizShiva {
		t.Errorf("Get(second) = (%v, %v)", got, err)
	}
	if sessions.Len() != 1 {
		t.Errorf("Len() = %d, want 1", sessions.Len())
	}
}

func TestQuizSessionExpiry(t *testing.T) {
	sessions := NewQuizSessions(-time.Second)
	session := sessions.Start("v", models.QuizGuna, nil)
	sessions.Start("w", models.QuizGuna, nil)

	if _, err := sessions.Get(session.Token, "v"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expired session err = %v, want ErrSessionNotFound", err)
	}
	if removed := sessions.CleanupExpired(); removed != 1 {
		t.Errorf("CleanupExpired() = %d, want 1", removed)
	}
	if sessions.Len() != 0 {
		t.Errorf("Len() = %d, want 0", sessions.Len())
	}
}

func TestQuizSessionCallbackError(t *testing.T) {
	sessions := NewQuizSessions(time.Hour)
	boom := errors.New("boom")
	session := sessions.Start("v", models.QuizGuna, func(ctx context.Context) error { return boom })

	if _, err := sessions.Complete(context.Background(), session.Token, "v"); !errors.Is(err, boom) {
		t.Errorf("Complete err = %v, want callback error", err)
	}
}
