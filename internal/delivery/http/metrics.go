package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	gamesStartedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crorepati_games_started_total",
		Help: "Total number of started games.",
	})

	answerChecksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crorepati_answer_checks_total",
			Help: "Total number of answer verifications by verdict.",
		},
		[]string{"verdict"},
	)

	answersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crorepati_answers_total",
			Help: "Total number of submitted answers by verdict.",
		},
		[]string{"verdict"},
	)

	gamesFinishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crorepati_games_finished_total",
			Help: "Total number of finished games by status.",
		},
		[]string{"status"},
	)
)

func verdictLabel(correct bool) string {
	if correct {
		return "correct"
	}
	return "incorrect"
}
