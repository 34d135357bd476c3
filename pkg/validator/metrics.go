package validator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	validationTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "preflight_validation_total",
			Help: "Total number of validation calls",
		},
		[]string{"result"}, // accepted or rejected
	)

	validationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "preflight_validation_duration_seconds",
			Help:    "Duration of a full validation call in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		},
	)

	ruleGroupDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "preflight_rule_group_duration_seconds",
			Help:    "Duration of a single rule group evaluation in seconds",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
		},
		[]string{"group"},
	)

	ruleGroupViolations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "preflight_rule_group_violations_total",
			Help: "Total number of violations reported per rule group",
		},
		[]string{"group"},
	)

	aliasAppliedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "preflight_alias_applied_total",
			Help: "Total number of normalization writes per option",
		},
		[]string{"option"},
	)
)
