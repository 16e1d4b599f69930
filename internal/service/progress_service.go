package service

import (
	"context"
	"errors"
	"fmt"

	"shikshanam/internal/models"
	"shikshanam/internal/storage"
	"shikshanam/internal/utils"
)

// ErrUnknownQuiz is returned for quiz ids outside the catalog
var ErrUnknownQuiz = errors.New("unknown quiz")

// ProgressService applies profile and quiz milestones to a visitor's record
type ProgressService struct {
	store *storage.ProfileStore
}

// NewProgressService creates a new progress service
func NewProgressService(store *storage.ProfileStore) *ProgressService {
	return &ProgressService{store: store}
}

// Profile returns the visitor's current record
func (s *ProgressService) Profile(ctx context.Context, visitorID string) models.ProfileRecord {
	return s.store.Load(ctx, visitorID)
}

// SubmitProfile stores the visitor's name and awards the journey badge the
// first time. A blank name becomes "Seeker".
func (s *ProgressService) SubmitProfile(ctx context.Context, visitorID, rawName string) (models.ProfileRecord, error) {
	record := s.store.Load(ctx, visitorID)
	record.SetName(utils.NormalizeDisplayName(rawName))
	record.AwardBadge(models.BadgeJourneyStarted, models.JourneyStartedPoints)

	if err := s.store.Save(ctx, visitorID, record); err != nil {
		return record, err
	}
	return record, nil
}

// CompleteQuiz credits a finished quiz. Credit is granted at most once per
// quiz, guarded by whether its badge is already held. awarded reports
// whether this call granted it.
func (s *ProgressService) CompleteQuiz(ctx context.Context, visitorID string, quizID models.QuizID) (record models.ProfileRecord, awarded bool, err error) {
	quiz, ok := models.LookupQuiz(quizID)
	if !ok {
		return models.ProfileRecord{}, false, fmt.Errorf("%w: %s", ErrUnknownQuiz, quizID)
	}

	record = s.store.Load(ctx, visitorID)
	if record.HasBadge(quiz.Badge) {
		return record, false, nil
	}

	record.MarkQuizCompleted(quiz.ID)
	record.AwardBadge(quiz.Badge, models.QuizCompletionPoints)
	if err := s.store.Save(ctx, visitorID, record); err != nil {
		return record, false, err
	}
	return record, true, nil
}
