package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ModelCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_model_calls_total",
			Help: "Model-backed stage resolutions by origin (model or fallback)",
		},
		[]string{"stage", "origin"},
	)

	ModelCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "intake_model_call_duration_seconds",
			Help:    "Duration of model calls per stage, fallback included",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"stage"},
	)

	SessionsStarted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_sessions_started_total",
			Help: "Intake sessions created, by detected language",
		},
		[]string{"language"},
	)

	ProfilesCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_profiles_created_total",
			Help: "Labour profiles created, by badge and evaluation source",
		},
		[]string{"badge", "evaluation_source"},
	)
)
