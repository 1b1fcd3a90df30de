package repository

import (
	"context"

	"rps_game/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ScoreRepository struct {
	db *pgxpool.Pool
}

func NewScoreRepository(db *pgxpool.Pool) *ScoreRepository {
	return &ScoreRepository{db: db}
}

// insertScore records a finished game inside tx. A second score for the
// same game returns ErrDuplicate.
func insertScore(ctx context.Context, tx pgx.Tx, s *domain.Score) error {
	err := tx.QueryRow(ctx,
		`INSERT INTO scores (game_id, user_id, date, won, rounds)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		s.GameID,
		s.UserID,
		s.Date,
		s.Won,
		s.Rounds,
	).Scan(&s.ID)
	return mapErr(err)
}

func (r *ScoreRepository) List(ctx context.Context) ([]*domain.Score, error) {
	rows, err := r.db.Query(ctx,
		`SELECT s.id, s.game_id, s.user_id, u.name, s.date, s.won, s.rounds
		 FROM scores s
		 JOIN users u ON u.id = s.user_id
		 ORDER BY s.id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanScores(rows)
}

func (r *ScoreRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Score, error) {
	rows, err := r.db.Query(ctx,
		`SELECT s.id, s.game_id, s.user_id, u.name, s.date, s.won, s.rounds
		 FROM scores s
		 JOIN users u ON u.id = s.user_id
		 WHERE s.user_id = $1
		 ORDER BY s.id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanScores(rows)
}

// Records tallies wins and losses for every user, including users without scores
func (r *ScoreRepository) Records(ctx context.Context) ([]domain.Record, error) {
	rows, err := r.db.Query(ctx,
		`SELECT u.id, u.name,
		        COUNT(s.id) FILTER (WHERE s.won) AS won,
		        COUNT(s.id) FILTER (WHERE NOT s.won) AS lost
		 FROM users u
		 LEFT JOIN scores s ON s.user_id = u.id
		 GROUP BY u.id, u.name
		 ORDER BY u.id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.Record
	for rows.Next() {
		var rec domain.Record
		if err := rows.Scan(&rec.UserID, &rec.UserName, &rec.Won, &rec.Lost); err != nil {
			return nil, err
		}
		res = append(res, rec)
	}
	return res, rows.Err()
}

func scanScores(rows pgx.Rows) ([]*domain.Score, error) {
	var res []*domain.Score
	for rows.Next() {
		var s domain.Score
		if err := rows.Scan(&s.ID, &s.GameID, &s.UserID, &s.UserName, &s.Date, &s.Won, &s.Rounds); err != nil {
			return nil, err
		}
		res = append(res, &s)
	}
	return res, rows.Err()
}
