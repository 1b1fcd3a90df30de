package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rps_game/internal/domain"
	"rps_game/internal/game"
	"rps_game/internal/logger"
	"rps_game/internal/repository"

	"github.com/google/uuid"
)

const (
	MsgNewGame      = "Good luck playing rock paper scissors!"
	MsgYourMove     = "Time to make a move!"
	MsgGameOver     = "Game already over!"
	MsgInvalidMove  = "Invalid move!"
	MsgGameDeleted  = "Game deleted!"
	MsgCannotCancel = "Cannot cancel a completed game!"
)

// GameService handles the game lifecycle and move resolution
type GameService struct {
	users   UserStore
	games   GameStore
	cache   RankingCache
	audit   *AuditService
	thrower game.Thrower
	now     func() time.Time
}

// GameServiceOption customizes a GameService
type GameServiceOption func(*GameService)

// WithThrower replaces the computer's move source
func WithThrower(t game.Thrower) GameServiceOption {
	return func(s *GameService) { s.thrower = t }
}

// WithClock replaces the clock used to date scores
func WithClock(now func() time.Time) GameServiceOption {
	return func(s *GameService) { s.now = now }
}

// WithRankingCache sets the cache invalidated when a score is recorded
func WithRankingCache(c RankingCache) GameServiceOption {
	return func(s *GameService) {
		if c != nil {
			s.cache = c
		}
	}
}

// WithAudit enables audit logging of the game lifecycle
func WithAudit(a *AuditService) GameServiceOption {
	return func(s *GameService) { s.audit = a }
}

// NewGameService creates a game service with a random computer opponent
func NewGameService(users UserStore, games GameStore, opts ...GameServiceOption) *GameService {
	s := &GameService{
		users:   users,
		games:   games,
		cache:   noCache{},
		thrower: game.RandomThrower(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewGame starts a best-of-bestOf match for the named user
func (s *GameService) NewGame(ctx context.Context, userName string, bestOf int) (*GameForm, error) {
	u, err := lookupUser(ctx, s.users, userName)
	if err != nil {
		return nil, err
	}

	g, err := domain.NewGame(u, bestOf)
	if err != nil {
		return nil, err
	}

	if err := s.games.Create(ctx, g); err != nil {
		return nil, fmt.Errorf("create game: %w", err)
	}

	GamesStarted.Inc()
	s.audit.Log(ctx, u.ID, domain.AuditActionGameStart, map[string]interface{}{"game_id": g.ID, "best_of": g.BestOf})
	logger.WithContext(ctx).Info("game started", "game_id", g.ID, "user", u.Name, "best_of", g.BestOf)

	return newGameForm(g, MsgNewGame), nil
}

// GetGame returns the current state of a game
func (s *GameService) GetGame(ctx context.Context, id string) (*GameForm, error) {
	g, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return newGameForm(g, MsgYourMove), nil
}

// History returns the round descriptions of a game in play order
func (s *GameService) History(ctx context.Context, id string) ([]string, error) {
	g, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if g.History == nil {
		return []string{}, nil
	}
	return g.History, nil
}

// UserGames returns the unfinished games of a user
func (s *GameService) UserGames(ctx context.Context, userName string) ([]*GameForm, error) {
	u, err := lookupUser(ctx, s.users, userName)
	if err != nil {
		return nil, err
	}

	games, err := s.games.ListActiveByUser(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}

	res := make([]*GameForm, 0, len(games))
	for _, g := range games {
		res = append(res, newGameForm(g, MsgYourMove))
	}
	return res, nil
}

// CancelGame deletes an unfinished game. Finished games are left untouched and
// a rejection message is returned instead of an error.
func (s *GameService) CancelGame(ctx context.Context, id string) (string, error) {
	g, err := s.load(ctx, id)
	if err != nil {
		return "", err
	}
	if g.GameOver {
		return MsgCannotCancel, nil
	}

	deleted, err := s.games.DeleteActive(ctx, id)
	if err != nil {
		return "", fmt.Errorf("delete game: %w", err)
	}
	if !deleted {
		// finished or removed since it was loaded
		if _, err := s.load(ctx, id); err != nil {
			return "", err
		}
		return MsgCannotCancel, nil
	}

	GamesCancelled.Inc()
	s.audit.Log(ctx, g.UserID, domain.AuditActionGameCancel, map[string]interface{}{"game_id": g.ID})
	return MsgGameDeleted, nil
}

// MakeMove plays one round against the computer.
func (s *GameService) MakeMove(ctx context.Context, id, rawMove string) (*GameForm, error) {
	g, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if g.GameOver {
		return newGameForm(g, MsgGameOver), nil
	}

	move, ok := game.ParseMove(rawMove)
	if !ok {
		return newGameForm(g, MsgInvalidMove), nil
	}

	var (
		round domain.Round
		score *domain.Score
	)
	updated, err := s.games.Update(ctx, id, func(g *domain.Game) (*domain.Score, error) {
		r, err := g.Play(move, s.thrower.Throw())
		if err != nil {
			return nil, err
		}
		round = r
		if !r.Finished {
			return nil, nil
		}
		score, err = g.Score(s.now())
		return score, err
	})
	switch {
	case errors.Is(err, domain.ErrGameOver):
		// another request finished the game first
		return s.stateWithMessage(ctx, id, MsgGameOver)
	case errors.Is(err, repository.ErrNotFound):
		return nil, ErrGameNotFound
	case err != nil:
		return nil, fmt.Errorf("update game: %w", err)
	}

	RoundsPlayed.WithLabelValues(string(round.Outcome)).Inc()

	if round.Finished {
		s.finish(ctx, updated, score)
	}

	return newGameForm(updated, round.Message), nil
}

// finish runs the side effects of a game whose score has just been stored.
func (s *GameService) finish(ctx context.Context, g *domain.Game, score *domain.Score) {
	s.cache.Invalidate(ctx)

	winner := "computer"
	if score.Won {
		winner = "player"
	}
	GamesFinished.WithLabelValues(winner).Inc()
	s.audit.LogGameEnd(ctx, g)
	logger.WithContext(ctx).Info("game finished", "game_id", g.ID, "user", g.UserName, "winner", winner, "rounds", score.Rounds)
}

func (s *GameService) stateWithMessage(ctx context.Context, id, message string) (*GameForm, error) {
	g, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return newGameForm(g, message), nil
}

func (s *GameService) load(ctx context.Context, id string) (*domain.Game, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrGameNotFound
	}
	g, err := s.games.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("get game: %w", err)
	}
	return g, nil
}
