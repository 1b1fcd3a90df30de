package domain

import "time"

// Score is the immutable record of a finished game.
type Score struct {
	ID       int64     `db:"id" json:"id"`
	GameID   string    `db:"game_id" json:"game_id"`
	UserID   int64     `db:"user_id" json:"user_id"`
	UserName string    `db:"-" json:"user_name"`
	Date     time.Time `db:"date" json:"date"`
	Won      bool      `db:"won" json:"won"`
	Rounds   int       `db:"rounds" json:"rounds"`
}

// DateString formats the score date as a calendar day
func (s *Score) DateString() string {
	return s.Date.Format(time.DateOnly)
}
