package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RoundsPlayed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rps_rounds_total",
			Help: "Accepted rounds by outcome",
		},
		[]string{"outcome"},
	)
	GamesStarted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rps_games_started_total",
			Help: "Games created",
		},
	)
	GamesFinished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rps_games_finished_total",
			Help: "Games finished by winner",
		},
		[]string{"winner"},
	)
	GamesCancelled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rps_games_cancelled_total",
			Help: "Games deleted before completion",
		},
	)
	RemindersSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rps_reminders_total",
			Help: "Reminder emails by result",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(RoundsPlayed, GamesStarted, GamesFinished, GamesCancelled, RemindersSent)
}
