package domain

import "time"

type User struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"user_name"`
	Email     string    `db:"email" json:"email,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// HasEmail reports whether reminders can be sent to the user
func (u *User) HasEmail() bool {
	return u.Email != ""
}

// Record tallies a user's finished games
type Record struct {
	UserID   int64
	UserName string
	Won      int
	Lost     int
}

// WinRate returns the win percentage. A user with no finished games has a
// win rate of 0 rather than an undefined value.
func (r Record) WinRate() float64 {
	return WinRate(r.Won, r.Lost)
}

func WinRate(won, lost int) float64 {
	total := won + lost
	if total == 0 {
		return 0
	}
	return float64(won) / float64(total) * 100.0
}

// Tally builds a Record from a user's scores
func Tally(u *User, scores []*Score) Record {
	rec := Record{UserID: u.ID, UserName: u.Name}
	for _, s := range scores {
		if s.Won {
			rec.Won++
		} else {
			rec.Lost++
		}
	}
	return rec
}

// Ranking is one row of the win-rate leaderboard
type Ranking struct {
	UserName string  `json:"user_name"`
	WinRate  float64 `json:"win_rate"`
}
