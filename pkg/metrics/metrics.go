package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TokensPurchased counts completed token purchases.
	TokensPurchased = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dao_tokens_purchased_total",
		Help: "Number of completed token purchases.",
	})

	// ProposalsCreated counts proposals by kind (normal, treasury).
	ProposalsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dao_proposals_created_total",
		Help: "Number of proposals created, by kind.",
	}, []string{"kind"})

	// VotesCast counts votes across all proposals.
	VotesCast = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dao_votes_cast_total",
		Help: "Number of votes cast.",
	})

	// ProposalsFinalized counts finalizations by outcome.
	ProposalsFinalized = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dao_proposals_finalized_total",
		Help: "Number of proposals finalized, by outcome.",
	}, []string{"status"})

	// MultisigExecutions counts privileged calls relayed through a gateway.
	MultisigExecutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dao_multisig_executions_total",
		Help: "Number of executed multisig transactions, by call name.",
	}, []string{"call"})

	// Paused exposes the panic-switch state (1 = paused).
	Paused = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "dao_paused",
		Help: "Whether the DAO is paused (1) or active (0).",
	})
)
