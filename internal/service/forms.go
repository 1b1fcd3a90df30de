package service

import "rps_game/internal/domain"

// GameForm is the outbound game state
type GameForm struct {
	ID           string `json:"id"`
	UserName     string `json:"user_name"`
	BestOf       int    `json:"best_of"`
	GameOver     bool   `json:"game_over"`
	Message      string `json:"message"`
	PlayerWins   int    `json:"player_wins"`
	PlayerMove   string `json:"player_move"`
	ComputerWins int    `json:"computer_wins"`
	ComputerMove string `json:"computer_move"`
}

func newGameForm(g *domain.Game, message string) *GameForm {
	return &GameForm{
		ID:           g.ID,
		UserName:     g.UserName,
		BestOf:       g.BestOf,
		GameOver:     g.GameOver,
		Message:      message,
		PlayerWins:   g.PlayerWins,
		PlayerMove:   string(g.PlayerMove),
		ComputerWins: g.ComputerWins,
		ComputerMove: string(g.ComputerMove),
	}
}

// ScoreForm is the outbound score record
type ScoreForm struct {
	UserName string `json:"user_name"`
	Date     string `json:"date"`
	Won      bool   `json:"won"`
	Rounds   int    `json:"rounds"`
}

func newScoreForms(scores []*domain.Score) []ScoreForm {
	res := make([]ScoreForm, 0, len(scores))
	for _, s := range scores {
		res = append(res, ScoreForm{
			UserName: s.UserName,
			Date:     s.DateString(),
			Won:      s.Won,
			Rounds:   s.Rounds,
		})
	}
	return res
}
