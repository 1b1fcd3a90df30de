package repository

import (
	"context"
	"encoding/json"

	"rps_game/internal/domain"
	"rps_game/internal/game"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type GameRepository struct {
	db *pgxpool.Pool
}

func NewGameRepository(db *pgxpool.Pool) *GameRepository {
	return &GameRepository{db: db}
}

const gameColumns = `g.id, g.user_id, u.name, g.best_of, g.game_over, g.player_wins, g.computer_wins,
	g.player_move, g.computer_move, g.history, g.created_at, g.updated_at`

func (r *GameRepository) Create(ctx context.Context, g *domain.Game) error {
	historyJSON, err := json.Marshal(g.History)
	if err != nil {
		return err
	}

	err = r.db.QueryRow(ctx,
		`INSERT INTO games (id, user_id, best_of, game_over, player_wins, computer_wins,
		                    player_move, computer_move, history)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING created_at, updated_at`,
		g.ID,
		g.UserID,
		g.BestOf,
		g.GameOver,
		g.PlayerWins,
		g.ComputerWins,
		string(g.PlayerMove),
		string(g.ComputerMove),
		historyJSON,
	).Scan(&g.CreatedAt, &g.UpdatedAt)
	return mapErr(err)
}

func (r *GameRepository) GetByID(ctx context.Context, id string) (*domain.Game, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+gameColumns+`
		 FROM games g
		 JOIN users u ON u.id = g.user_id
		 WHERE g.id = $1`,
		id,
	)
	return scanGame(row)
}

// ListActiveByUser returns the user's unfinished games, oldest first
func (r *GameRepository) ListActiveByUser(ctx context.Context, userID int64) ([]*domain.Game, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+gameColumns+`
		 FROM games g
		 JOIN users u ON u.id = g.user_id
		 WHERE g.user_id = $1 AND NOT g.game_over
		 ORDER BY g.created_at`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.Game
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, g)
	}
	return res, rows.Err()
}

// Update locks the game row, applies fn and writes the result back. A score
// returned by fn is inserted in the same transaction.
// When fn returns an error nothing is written and the error is returned as is.
func (r *GameRepository) Update(ctx context.Context, id string, fn func(g *domain.Game) (*domain.Score, error)) (*domain.Game, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx,
		`SELECT `+gameColumns+`
		 FROM games g
		 JOIN users u ON u.id = g.user_id
		 WHERE g.id = $1
		 FOR UPDATE OF g`,
		id,
	)
	g, err := scanGame(row)
	if err != nil {
		return nil, err
	}

	score, err := fn(g)
	if err != nil {
		return nil, err
	}

	historyJSON, err := json.Marshal(g.History)
	if err != nil {
		return nil, err
	}

	err = tx.QueryRow(ctx,
		`UPDATE games
		 SET game_over = $2, player_wins = $3, computer_wins = $4,
		     player_move = $5, computer_move = $6, history = $7, updated_at = now()
		 WHERE id = $1
		 RETURNING updated_at`,
		g.ID,
		g.GameOver,
		g.PlayerWins,
		g.ComputerWins,
		string(g.PlayerMove),
		string(g.ComputerMove),
		historyJSON,
	).Scan(&g.UpdatedAt)
	if err != nil {
		return nil, mapErr(err)
	}

	if score != nil {
		if err := insertScore(ctx, tx, score); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return g, nil
}

// DeleteActive removes the game only while it is unfinished.
// It reports whether a row was deleted.
func (r *GameRepository) DeleteActive(ctx context.Context, id string) (bool, error) {
	result, err := r.db.Exec(ctx,
		`DELETE FROM games WHERE id = $1 AND NOT game_over`,
		id,
	)
	if err != nil {
		return false, err
	}
	return result.RowsAffected() > 0, nil
}

func scanGame(row pgx.Row) (*domain.Game, error) {
	var (
		g            domain.Game
		playerMove   string
		computerMove string
		historyBytes []byte
	)

	if err := row.Scan(
		&g.ID,
		&g.UserID,
		&g.UserName,
		&g.BestOf,
		&g.GameOver,
		&g.PlayerWins,
		&g.ComputerWins,
		&playerMove,
		&computerMove,
		&historyBytes,
		&g.CreatedAt,
		&g.UpdatedAt,
	); err != nil {
		return nil, mapErr(err)
	}

	g.PlayerMove = game.Move(playerMove)
	g.ComputerMove = game.Move(computerMove)
	g.History = []string{}
	if len(historyBytes) > 0 {
		if err := json.Unmarshal(historyBytes, &g.History); err != nil {
			return nil, err
		}
	}
	return &g, nil
}
