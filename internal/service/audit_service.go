package service

import (
	"context"

	"rps_game/internal/domain"
	"rps_game/internal/logger"
)

// AuditService handles audit logging. Failures are logged and never reach the caller.
type AuditService struct {
	repo AuditStore
}

// NewAuditService creates a new audit service; a nil store disables auditing
func NewAuditService(repo AuditStore) *AuditService {
	return &AuditService{repo: repo}
}

// Log creates a new audit log entry
func (s *AuditService) Log(ctx context.Context, userID int64, action string, details map[string]interface{}) {
	if s == nil || s.repo == nil {
		return
	}

	entry := &domain.AuditLog{
		UserID:  userID,
		Action:  action,
		Details: details,
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		logger.WithContext(ctx).Error("failed to create audit log", "error", err, "action", action, "user_id", userID)
	}
}

// LogGameEnd logs the final result of a game
func (s *AuditService) LogGameEnd(ctx context.Context, g *domain.Game) {
	s.Log(ctx, g.UserID, domain.AuditActionGameEnd, map[string]interface{}{
		"game_id":       g.ID,
		"won":           g.Won(),
		"player_wins":   g.PlayerWins,
		"computer_wins": g.ComputerWins,
	})
}

// Recent returns the latest entries for a user
func (s *AuditService) Recent(ctx context.Context, userID int64, limit int) ([]*domain.AuditLog, error) {
	if s == nil || s.repo == nil {
		return []*domain.AuditLog{}, nil
	}
	logs, err := s.repo.GetByUserID(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []*domain.AuditLog{}
	}
	return logs, nil
}
