package service

import (
	"context"
	"fmt"
)

// ScoreService answers queries over finished games
type ScoreService struct {
	users  UserStore
	scores ScoreStore
}

func NewScoreService(users UserStore, scores ScoreStore) *ScoreService {
	return &ScoreService{users: users, scores: scores}
}

// All returns every score in store order
func (s *ScoreService) All(ctx context.Context) ([]ScoreForm, error) {
	scores, err := s.scores.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}
	return newScoreForms(scores), nil
}

// ByUser returns the scores of the named user
func (s *ScoreService) ByUser(ctx context.Context, userName string) ([]ScoreForm, error) {
	u, err := lookupUser(ctx, s.users, userName)
	if err != nil {
		return nil, err
	}

	scores, err := s.scores.ListByUser(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("list user scores: %w", err)
	}
	return newScoreForms(scores), nil
}
