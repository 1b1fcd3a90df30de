// Package memstore is an in-memory entity store with the same behavior as the
// Postgres repositories. It backs STORAGE=memory and the service tests.
package memstore

import (
	"context"
	"sync"
	"time"

	"rps_game/internal/domain"
	"rps_game/internal/repository"
)

type Store struct {
	mu sync.Mutex

	users  []*domain.User
	games  map[string]*domain.Game
	order  []string // game ids in creation order
	scores []*domain.Score
	audit  []*domain.AuditLog

	nextUserID  int64
	nextScoreID int64
	nextAuditID int64

	now func() time.Time
}

func New() *Store {
	return &Store{
		games: make(map[string]*domain.Game),
		now:   time.Now,
	}
}

func (s *Store) Users() *UserStore   { return &UserStore{s} }
func (s *Store) Games() *GameStore   { return &GameStore{s} }
func (s *Store) Scores() *ScoreStore { return &ScoreStore{s} }
func (s *Store) Audit() *AuditStore  { return &AuditStore{s} }

// Ping always succeeds; it lets the store stand in for the database in health checks.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) userByID(id int64) *domain.User {
	for _, u := range s.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (s *Store) userName(id int64) string {
	if u := s.userByID(id); u != nil {
		return u.Name
	}
	return ""
}

func cloneUser(u *domain.User) *domain.User {
	c := *u
	return &c
}

func cloneGame(g *domain.Game) *domain.Game {
	c := *g
	c.History = append([]string{}, g.History...)
	return &c
}

func cloneScore(sc *domain.Score) *domain.Score {
	c := *sc
	return &c
}

type UserStore struct{ s *Store }

func (r *UserStore) Create(ctx context.Context, u *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.users {
		if existing.Name == u.Name {
			return repository.ErrDuplicate
		}
	}
	r.s.nextUserID++
	u.ID = r.s.nextUserID
	u.CreatedAt = r.s.now()
	r.s.users = append(r.s.users, cloneUser(u))
	return nil
}

func (r *UserStore) GetByName(ctx context.Context, name string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Name == name {
			return cloneUser(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserStore) ListReminderTargets(ctx context.Context) ([]*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var res []*domain.User
	for _, u := range r.s.users {
		if !u.HasEmail() {
			continue
		}
		for _, id := range r.s.order {
			if g := r.s.games[id]; g != nil && g.UserID == u.ID && !g.GameOver {
				res = append(res, cloneUser(u))
				break
			}
		}
	}
	return res, nil
}

type GameStore struct{ s *Store }

func (r *GameStore) Create(ctx context.Context, g *domain.Game) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.games[g.ID]; ok {
		return repository.ErrDuplicate
	}
	if r.s.userByID(g.UserID) == nil {
		return repository.ErrNotFound
	}
	now := r.s.now()
	g.CreatedAt, g.UpdatedAt = now, now
	r.s.games[g.ID] = cloneGame(g)
	r.s.order = append(r.s.order, g.ID)
	return nil
}

func (r *GameStore) GetByID(ctx context.Context, id string) (*domain.Game, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	g, ok := r.s.games[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := cloneGame(g)
	c.UserName = r.s.userName(g.UserID)
	return c, nil
}

func (r *GameStore) ListActiveByUser(ctx context.Context, userID int64) ([]*domain.Game, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var res []*domain.Game
	for _, id := range r.s.order {
		g, ok := r.s.games[id]
		if !ok || g.UserID != userID || g.GameOver {
			continue
		}
		c := cloneGame(g)
		c.UserName = r.s.userName(g.UserID)
		res = append(res, c)
	}
	return res, nil
}

// Update holds the store lock while fn runs, which serializes updates to the same game.
// The game and the score returned by fn are committed together or not at all.
func (r *GameStore) Update(ctx context.Context, id string, fn func(g *domain.Game) (*domain.Score, error)) (*domain.Game, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	g, ok := r.s.games[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	work := cloneGame(g)
	work.UserName = r.s.userName(g.UserID)
	score, err := fn(work)
	if err != nil {
		return nil, err
	}
	if score != nil {
		if err := r.s.addScore(score); err != nil {
			return nil, err
		}
	}
	work.UpdatedAt = r.s.now()
	r.s.games[id] = cloneGame(work)
	return work, nil
}

func (r *GameStore) DeleteActive(ctx context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	g, ok := r.s.games[id]
	if !ok || g.GameOver {
		return false, nil
	}
	delete(r.s.games, id)
	for i, gid := range r.s.order {
		if gid == id {
			r.s.order = append(r.s.order[:i], r.s.order[i+1:]...)
			break
		}
	}
	return true, nil
}

type ScoreStore struct{ s *Store }

// addScore must be called with the lock held
func (s *Store) addScore(sc *domain.Score) error {
	for _, existing := range s.scores {
		if existing.GameID == sc.GameID {
			return repository.ErrDuplicate
		}
	}
	s.nextScoreID++
	sc.ID = s.nextScoreID
	s.scores = append(s.scores, cloneScore(sc))
	return nil
}

func (r *ScoreStore) List(ctx context.Context) ([]*domain.Score, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	res := make([]*domain.Score, 0, len(r.s.scores))
	for _, sc := range r.s.scores {
		c := cloneScore(sc)
		c.UserName = r.s.userName(sc.UserID)
		res = append(res, c)
	}
	return res, nil
}

func (r *ScoreStore) ListByUser(ctx context.Context, userID int64) ([]*domain.Score, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var res []*domain.Score
	for _, sc := range r.s.scores {
		if sc.UserID != userID {
			continue
		}
		c := cloneScore(sc)
		c.UserName = r.s.userName(sc.UserID)
		res = append(res, c)
	}
	return res, nil
}

func (r *ScoreStore) Records(ctx context.Context) ([]domain.Record, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	res := make([]domain.Record, 0, len(r.s.users))
	for _, u := range r.s.users {
		var owned []*domain.Score
		for _, sc := range r.s.scores {
			if sc.UserID == u.ID {
				owned = append(owned, sc)
			}
		}
		res = append(res, domain.Tally(u, owned))
	}
	return res, nil
}

type AuditStore struct{ s *Store }

func (r *AuditStore) Create(ctx context.Context, l *domain.AuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextAuditID++
	l.ID = r.s.nextAuditID
	l.CreatedAt = r.s.now()
	c := *l
	r.s.audit = append(r.s.audit, &c)
	return nil
}

// GetByUserID returns audit logs for a user, newest first
func (r *AuditStore) GetByUserID(ctx context.Context, userID int64, limit int) ([]*domain.AuditLog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if limit <= 0 {
		limit = 100
	}
	var res []*domain.AuditLog
	for i := len(r.s.audit) - 1; i >= 0 && len(res) < limit; i-- {
		if l := r.s.audit[i]; l.UserID == userID {
			c := *l
			res = append(res, &c)
		}
	}
	return res, nil
}
