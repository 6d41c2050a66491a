package execution

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	productionCacheEntries = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "execution_production_cache_entries",
		Help: "Number of block production results held per cache.",
	}, []string{"cache"})
	productionCacheEvictions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "execution_production_cache_evictions_total",
		Help: "Number of block production results pruned on slot advance.",
	}, []string{"cache"})
	productionRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "execution_block_production_requests_total",
		Help: "Number of block production requests by flow.",
	}, []string{"flow"})
)

const (
	payloadCache = "payload"
	builderCache = "builder"
)
