package game

import (
	"math/rand"
	"strings"
	"sync"
)

// Move is one rock-paper-scissors throw.
type Move string

const (
	Rock     Move = "rock"
	Paper    Move = "paper"
	Scissors Move = "scissors"
)

// Moves lists the legal throws in a fixed order.
var Moves = [...]Move{Rock, Paper, Scissors}

// beats maps a move to the move it defeats
var beats = map[Move]Move{
	Rock:     Scissors,
	Scissors: Paper,
	Paper:    Rock,
}

// ParseMove normalizes raw input to lowercase and reports whether it is a legal move.
func ParseMove(raw string) (Move, bool) {
	m := Move(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := beats[m]; !ok {
		return "", false
	}
	return m, true
}

func (m Move) Valid() bool {
	_, ok := beats[m]
	return ok
}

func (m Move) Beats(other Move) bool {
	return beats[m] == other
}

// Outcome is the result of a single round from the player's side.
type Outcome string

const (
	OutcomeTie      Outcome = "tie"
	OutcomePlayer   Outcome = "player"
	OutcomeComputer Outcome = "computer"
)

// Resolve decides a round. It is total over the legal moves: a tie iff the
// moves are equal, otherwise exactly one side wins.
func Resolve(player, computer Move) Outcome {
	switch {
	case player == computer:
		return OutcomeTie
	case player.Beats(computer):
		return OutcomePlayer
	default:
		return OutcomeComputer
	}
}

const TieMessage = "This round was a tie!"

// RoundMessage returns the fixed description of a round. Ties get TieMessage.
func RoundMessage(player, computer Move) string {
	winner, loser := player, computer
	subject := "Player"
	switch Resolve(player, computer) {
	case OutcomeTie:
		return TieMessage
	case OutcomeComputer:
		winner, loser = computer, player
		subject = "Computer"
	}
	return capitalize(string(winner)) + " beats " + string(loser) + "! " + subject + " wins this round!"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Thrower picks the computer's move for a round.
type Thrower interface {
	Throw() Move
}

// ThrowerFunc adapts a plain function to Thrower.
type ThrowerFunc func() Move

func (f ThrowerFunc) Throw() Move { return f() }

// RandomThrower draws uniformly from Moves using the process-wide source.
func RandomThrower() Thrower {
	return ThrowerFunc(func() Move {
		return Moves[rand.Intn(len(Moves))]
	})
}

type seededThrower struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// SeededThrower draws uniformly from Moves using its own seeded source.
// Useful for reproducible runs.
func SeededThrower(seed int64) Thrower {
	return &seededThrower{rnd: rand.New(rand.NewSource(seed))}
}

func (t *seededThrower) Throw() Move {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Moves[t.rnd.Intn(len(Moves))]
}
