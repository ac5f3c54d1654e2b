package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redonshkr/gov-content-hub/internal/common"
	"github.com/redonshkr/gov-content-hub/internal/domain"
)

var (
	workflowTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workflow_transitions_total",
			Help: "Workflow intents by outcome",
		},
		[]string{"intent", "result"},
	)

	workflowHookFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workflow_hook_failures_total",
			Help: "Post-commit hook failures",
		},
		[]string{"hook"},
	)
)

func observeIntent(intent domain.Intent, err error) {
	label := string(intent)
	if !intent.Valid() {
		label = "unknown"
	}
	result := "ok"
	if err != nil {
		result = common.AsWorkflowError(err).Code()
	}
	workflowTransitionsTotal.WithLabelValues(label, result).Inc()
}
