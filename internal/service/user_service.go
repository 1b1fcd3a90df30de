package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"sort"
	"strings"

	"rps_game/internal/domain"
	"rps_game/internal/repository"
)

// UserService handles registration, rankings and activity lookups
type UserService struct {
	users  UserStore
	scores ScoreStore
	cache  RankingCache
	audit  *AuditService
}

func NewUserService(users UserStore, scores ScoreStore, cache RankingCache, audit *AuditService) *UserService {
	if cache == nil {
		cache = noCache{}
	}
	return &UserService{users: users, scores: scores, cache: cache, audit: audit}
}

// CreateUser registers a user with a unique name and returns a confirmation message.
func (s *UserService) CreateUser(ctx context.Context, name, email string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrInvalidUserName
	}

	email = strings.TrimSpace(email)
	if email != "" {
		addr, err := mail.ParseAddress(email)
		if err != nil {
			return "", fmt.Errorf("%w: %s", ErrInvalidEmail, email)
		}
		email = addr.Address
	}

	u := &domain.User{Name: name, Email: email}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return "", ErrUserExists
		}
		return "", fmt.Errorf("create user: %w", err)
	}

	// new users rank at 0 until they finish a game
	s.cache.Invalidate(ctx)
	s.audit.Log(ctx, u.ID, domain.AuditActionUserCreate, map[string]interface{}{"name": u.Name})
	return fmt.Sprintf("User %s created!", u.Name), nil
}

// GetUser looks a user up by name
func (s *UserService) GetUser(ctx context.Context, name string) (*domain.User, error) {
	return lookupUser(ctx, s.users, name)
}

// Rankings lists every user by win rate, best first. Users with equal win
// rates keep store order.
func (s *UserService) Rankings(ctx context.Context) ([]domain.Ranking, error) {
	if cached, ok := s.cache.Get(ctx); ok {
		return cached, nil
	}

	records, err := s.scores.Records(ctx)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}

	rankings := make([]domain.Ranking, 0, len(records))
	for _, rec := range records {
		rankings = append(rankings, domain.Ranking{UserName: rec.UserName, WinRate: rec.WinRate()})
	}
	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].WinRate > rankings[j].WinRate
	})

	s.cache.Set(ctx, rankings)
	return rankings, nil
}

// Activity returns the latest audit entries for the named user
func (s *UserService) Activity(ctx context.Context, name string, limit int) ([]*domain.AuditLog, error) {
	u, err := lookupUser(ctx, s.users, name)
	if err != nil {
		return nil, err
	}
	logs, err := s.audit.Recent(ctx, u.ID, limit)
	if err != nil {
		return nil, fmt.Errorf("load activity: %w", err)
	}
	return logs, nil
}

func lookupUser(ctx context.Context, users UserStore, name string) (*domain.User, error) {
	u, err := users.GetByName(ctx, strings.TrimSpace(name))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}
