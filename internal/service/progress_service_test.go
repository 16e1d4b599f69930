package service

import (
	"context"
	"errors"
	"testing"

	"shikshanam/internal/models"
	"shikshanam/internal/storage"
)

func newTestProgressService() (*ProgressService, *storage.ProfileStore) {
	store := storage.NewProfileStore(storage.NewMemoryKV())
	return NewProgressService(store), store
}

func TestCompleteQuizIsIdempotent(t *testing.T) {
	svc, store := newTestProgressService()
	ctx := context.Background()

	if _, err := svc.SubmitProfile(ctx, "v", "Asha"); err != nil {
		t.Fatalf("SubmitProfile failed: %v", err)
	}
	before := store.Load(ctx, "v")

	_, awarded, err := svc.CompleteQuiz(ctx, "v", models.QuizGuna)
	if err != nil || !awarded {
		t.Fatalf("first CompleteQuiz = (%v, %v), want awarded", awarded, err)
	}
	_, awarded, err = svc.CompleteQuiz(ctx, "v", models.QuizGuna)
	if err != nil || awarded {
		t.Fatalf("second CompleteQuiz = (%v, %v), want no award", awarded, err)
	}

	after := store.Load(ctx, "v")
	if got := len(after.Gamification.Badges) - len(before.Gamification.Badges); got != 1 {
		t.Errorf("badge count grew by %d, want 1", got)
	}
	if got := after.Gamification.Points - before.Gamification.Points; got != 50 {
		t.Errorf("points grew by %d, want 50", got)
	}
	if after.QuizStatus(models.QuizGuna) != models.QuizCompleted {
		t.Error("guna quiz should be completed")
	}
	if after.QuizStatus(models.QuizShiva) != models.QuizNotStarted {
		t.Error("shiva quiz should be untouched")
	}
}

func TestCompleteQuizGuardIsBadgeMembership(t *testing.T) {
	svc, store := newTestProgressService()
	ctx := context.Background()

	record := models.NewProfileRecord()
	record.SetName("Asha")
	record.Gamification.Badges = append(record.Gamification.Badges, models.BadgeShivaQuiz)
	if err := store.Save(ctx, "v", record); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	_, awarded, err := svc.CompleteQuiz(ctx, "v", models.QuizShiva)
	if err != nil {
		t.Fatalf("CompleteQuiz failed: %v", err)
	}
	if awarded {
		t.Error("holding the badge must block the award")
	}
	if got := store.Load(ctx, "v"); got.QuizStatus(models.QuizShiva) != models.QuizNotStarted {
		t.Error("status must not change when the badge is already held")
	}
}

func TestCompleteQuizUnknown(t *testing.T) {
	svc, _ := newTestProgressService()

	_, _, err := svc.CompleteQuiz(context.Background(), "v", "tarot")
	if !errors.Is(err, ErrUnknownQuiz) {
		t.Errorf("expected ErrUnknownQuiz, got %v", err)
	}
}

func TestSubmitProfile(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantName string
	}{
		{name: "name kept", input: "Asha", wantName: "Asha"},
		{name: "trimmed", input: "  Ravi  ", wantName: "Ravi"},
		{name: "blank becomes Seeker", input: "   ", wantName: "Seeker"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := newTestProgressService()
			ctx := context.Background()

			if _, err := svc.SubmitProfile(ctx, "v", tt.input); err != nil {
				t.Fatalf("SubmitProfile failed: %v", err)
			}

			record := store.Load(ctx, "v")
			if record.DisplayName() != tt.wantName {
				t.Errorf("name = %q, want %q", record.DisplayName(), tt.wantName)
			}
			if !record.HasBadge(models.BadgeJourneyStarted) {
				t.Error("journey_started badge missing")
			}
			if record.Gamification.Points != 10 {
				t.Errorf("points = %d, want 10", record.Gamification.Points)
			}
		})
	}
}

func TestSubmitProfileAwardsJourneyOnce(t *testing.T) {
	svc, store := newTestProgressService()
	ctx := context.Background()

	if _, err := svc.SubmitProfile(ctx, "v", "Asha"); err != nil {
		t.Fatalf("first SubmitProfile failed: %v", err)
	}
	if _, err := svc.SubmitProfile(ctx, "v", "Asha R"); err != nil {
		t.Fatalf("second SubmitProfile failed: %v", err)
	}

	record := store.Load(ctx, "v")
	if record.DisplayName() != "Asha R" {
		t.Errorf("name = %q, want the latest submission", record.DisplayName())
	}
	if record.Gamification.Points != 10 {
		t.Errorf("points = %d, want 10", record.Gamification.Points)
	}
	if len(record.Gamification.Badges) != 1 {
		t.Errorf("badges = %v, want one", record.Gamification.Badges)
	}
}
