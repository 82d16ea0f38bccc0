package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	seederCyclesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seeder_cycles_total",
			Help: "Total number of seeding cycles, partitioned by outcome.",
		},
		[]string{"status"}, // success / error
	)
	seederRecordsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seeder_records_created_total",
			Help: "Total number of records persisted by the seeder, partitioned by entity.",
		},
		[]string{"entity"}, // user / challenge / video
	)
	seederEmailCollisions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "seeder_email_collisions_total",
			Help: "Total number of generated users discarded due to a duplicate email.",
		},
	)
	seederEmptyCompletions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "seeder_empty_completions_total",
			Help: "Total number of synthesis steps skipped because the AI returned no content.",
		},
	)
)
