package schema

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var commits = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "ssz_mutable_commits_total",
	Help: "Number of mutable values committed, by value kind.",
}, []string{"kind"})
