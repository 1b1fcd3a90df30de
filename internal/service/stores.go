package service

import (
	"context"

	"rps_game/internal/domain"
)

// UserStore persists users. Implemented by repository.UserRepository and memstore.
type UserStore interface {
	Create(ctx context.Context, u *domain.User) error
	GetByName(ctx context.Context, name string) (*domain.User, error)
	ListReminderTargets(ctx context.Context) ([]*domain.User, error)
}

// GameStore persists games. Update must apply fn atomically with respect to
// other updates of the same game. A score returned by fn is stored together
// with the game; when either write fails neither is kept.
type GameStore interface {
	Create(ctx context.Context, g *domain.Game) error
	GetByID(ctx context.Context, id string) (*domain.Game, error)
	ListActiveByUser(ctx context.Context, userID int64) ([]*domain.Game, error)
	Update(ctx context.Context, id string, fn func(g *domain.Game) (*domain.Score, error)) (*domain.Game, error)
	DeleteActive(ctx context.Context, id string) (bool, error)
}

type ScoreStore interface {
	List(ctx context.Context) ([]*domain.Score, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Score, error)
	Records(ctx context.Context) ([]domain.Record, error)
}

type AuditStore interface {
	Create(ctx context.Context, log *domain.AuditLog) error
	GetByUserID(ctx context.Context, userID int64, limit int) ([]*domain.AuditLog, error)
}

// RankingCache is optional; implementations fail open.
type RankingCache interface {
	Get(ctx context.Context) ([]domain.Ranking, bool)
	Set(ctx context.Context, rankings []domain.Ranking)
	Invalidate(ctx context.Context)
}

type noCache struct{}

func (noCache) Get(context.Context) ([]domain.Ranking, bool) { return nil, false }
func (noCache) Set(context.Context, []domain.Ranking)        {}
func (noCache) Invalidate(context.Context)                   {}
