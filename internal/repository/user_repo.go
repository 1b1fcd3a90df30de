package repository

import (
	"context"

	"rps_game/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a user. Returns ErrDuplicate when the name is taken.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO users (name, email)
		 VALUES ($1, NULLIF($2, ''))
		 RETURNING id, created_at`,
		u.Name,
		u.Email,
	).Scan(&u.ID, &u.CreatedAt)
	return mapErr(err)
}

func (r *UserRepository) GetByName(ctx context.Context, name string) (*domain.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, name, COALESCE(email, ''), created_at
		 FROM users
		 WHERE name = $1`,
		name,
	)

	var u domain.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt); err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

// ListReminderTargets returns users that have an email and at least one unfinished game
func (r *UserRepository) ListReminderTargets(ctx context.Context) ([]*domain.User, error) {
	rows, err := r.db.Query(ctx,
		`SELECT u.id, u.name, u.email, u.created_at
		 FROM users u
		 WHERE u.email IS NOT NULL AND u.email <> ''
		   AND EXISTS (SELECT 1 FROM games g WHERE g.user_id = u.id AND NOT g.game_over)
		 ORDER BY u.id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, &u)
	}
	return res, rows.Err()
}
