package domain

import (
	"errors"
	"fmt"
	"time"

	"rps_game/internal/game"

	"github.com/google/uuid"
)

// DefaultBestOf is used when a new game request omits best_of
const DefaultBestOf = 3

var (
	ErrInvalidBestOf = errors.New("best_of must be a positive odd number")
	ErrGameOver      = errors.New("game already over")
	ErrInvalidMove   = errors.New("invalid move")
)

const (
	MsgWin  = "You win!"
	MsgLose = "You lost!"
)

// Game is a best-of-N match between a user and the computer.
type Game struct {
	ID           string    `db:"id" json:"id"`
	UserID       int64     `db:"user_id" json:"user_id"`
	UserName     string    `db:"-" json:"user_name"`
	BestOf       int       `db:"best_of" json:"best_of"`
	GameOver     bool      `db:"game_over" json:"game_over"`
	PlayerWins   int       `db:"player_wins" json:"player_wins"`
	ComputerWins int       `db:"computer_wins" json:"computer_wins"`
	PlayerMove   game.Move `db:"player_move" json:"player_move"`
	ComputerMove game.Move `db:"computer_move" json:"computer_move"`
	History      []string  `db:"history" json:"history"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// NewGame validates bestOf and returns an in-progress game owned by u.
func NewGame(u *User, bestOf int) (*Game, error) {
	if bestOf < 1 || bestOf%2 == 0 {
		return nil, ErrInvalidBestOf
	}
	return &Game{
		ID:           uuid.NewString(),
		UserID:       u.ID,
		UserName:     u.Name,
		BestOf:       bestOf,
		PlayerMove:   game.Rock,
		ComputerMove: game.Rock,
		History:      []string{},
	}, nil
}

// Round describes one accepted move.
type Round struct {
	Player   game.Move
	Computer game.Move
	Outcome  game.Outcome
	Message  string
	// Finished is set on the round that ended the game.
	Finished  bool
	PlayerWon bool
}

// Descriptor is the history prefix shared by every line for the round
func (r Round) Descriptor() string {
	return fmt.Sprintf("Player: %s, Computer: %s", r.Player, r.Computer)
}

// Play applies one round. Exactly one history line is appended per call
// that returns a nil error.
func (g *Game) Play(player, computer game.Move) (Round, error) {
	if g.GameOver {
		return Round{}, ErrGameOver
	}
	if !player.Valid() || !computer.Valid() {
		return Round{}, ErrInvalidMove
	}

	g.PlayerMove = player
	g.ComputerMove = computer

	r := Round{
		Player:   player,
		Computer: computer,
		Outcome:  game.Resolve(player, computer),
		Message:  game.RoundMessage(player, computer),
	}

	switch r.Outcome {
	case game.OutcomeTie:
		g.History = append(g.History, r.Descriptor()+", Result: tie")
		return r, nil
	case game.OutcomePlayer:
		g.PlayerWins++
	case game.OutcomeComputer:
		g.ComputerWins++
	}

	switch {
	case g.majority(g.PlayerWins):
		g.finish()
		r.Finished, r.PlayerWon, r.Message = true, true, MsgWin
		g.History = append(g.History, r.Descriptor()+", Result: player win")
	case g.majority(g.ComputerWins):
		g.finish()
		r.Finished, r.Message = true, MsgLose
		g.History = append(g.History, r.Descriptor()+", Result: computer win")
	default:
		g.History = append(g.History, r.Descriptor()+", Result: "+string(r.Outcome))
	}
	return r, nil
}

// majority uses real division so that best_of=3 needs 2 wins, 5 needs 3, and so on.
func (g *Game) majority(wins int) bool {
	return float64(wins) > float64(g.BestOf)/2
}

func (g *Game) finish() {
	g.GameOver = true
}

// Won reports whether the player won a finished game
func (g *Game) Won() bool {
	return g.PlayerWins > g.ComputerWins
}

// Rounds counts decided rounds; ties are not counted
func (g *Game) Rounds() int {
	return g.PlayerWins + g.ComputerWins
}

// Score builds the score record for a finished game.
func (g *Game) Score(at time.Time) (*Score, error) {
	if !g.GameOver {
		return nil, errors.New("game is still in progress")
	}
	y, m, d := at.Date()
	return &Score{
		GameID:   g.ID,
		UserID:   g.UserID,
		UserName: g.UserName,
		Date:     time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		Won:      g.Won(),
		Rounds:   g.Rounds(),
	}, nil
}
