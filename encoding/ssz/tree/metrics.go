package tree

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	hashComputations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ssz_tree_hash_computations_total",
		Help: "Number of branch digests computed by the backing tree.",
	})
	zeroNodeHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ssz_tree_zero_node_hits_total",
		Help: "Number of default subtrees served from the zero node cache.",
	})
	batchUpdates = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ssz_tree_batch_update_leaves",
		Help:    "Number of leaves replaced per batched tree update.",
		Buckets: []float64{1, 2, 4, 8, 16, 32, 64, 128},
	})
)
