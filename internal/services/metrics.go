package services

import "github.com/prometheus/client_golang/prometheus"

var (
	// votesApplied counts vote deltas committed to articles, split by sign.
	votesApplied = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "news_article_votes_applied_total",
			Help: "Total number of vote deltas applied to articles.",
		},
		[]string{"direction"},
	)

	// voteReplays counts PATCH requests served from an idempotency record.
	voteReplays = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "news_article_vote_replays_total",
			Help: "Total number of vote requests answered as idempotent replays.",
		},
	)
)

func init() {
	prometheus.MustRegister(votesApplied, voteReplays)
}

func direction(delta int64) string {
	switch {
	case delta > 0:
		return "up"
	case delta < 0:
		return "down"
	default:
		return "zero"
	}
}
