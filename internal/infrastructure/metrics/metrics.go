// Package metrics exposes the engine's usage counters through Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/wellnoosh/engine/internal/domain/quota"
)

// Recorder implements outbound.EngineMetrics on Prometheus counters.
type Recorder struct {
	swipes            *prometheus.CounterVec
	quotaRejections   *prometheus.CounterVec
	recipesCooked     prometheus.Counter
	leftoversConsumed prometheus.Counter
	groceryMutations  *prometheus.CounterVec
}

// NewRecorder registers the engine counters with the given registerer.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		swipes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "wellnoosh_swipes_total",
			Help: "Swipes recorded, by direction and subscription tier.",
		}, []string{"direction", "tier"}),
		quotaRejections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "wellnoosh_quota_rejections_total",
			Help: "Swipes rejected by the daily quota, by tier.",
		}, []string{"tier"}),
		recipesCooked: factory.NewCounter(prometheus.CounterOpts{
			Name: "wellnoosh_recipes_cooked_total",
			Help: "Recipes confirmed cooked.",
		}),
		leftoversConsumed: factory.NewCounter(prometheus.CounterOpts{
			Name: "wellnoosh_leftovers_consumed_total",
			Help: "Leftover inventory items retired by cooking.",
		}),
		groceryMutations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "wellnoosh_grocery_mutations_total",
			Help: "Grocery list mutations applied, by kind.",
		}, []string{"kind"}),
	}
}

func (r *Recorder) SwipeRecorded(direction string, tier quota.Tier) {
	r.swipes.WithLabelValues(direction, string(tier)).Inc()
}

func (r *Recorder) QuotaRejected(tier quota.Tier) {
	r.quotaRejections.WithLabelValues(string(tier)).Inc()
}

func (r *Recorder) RecipeCooked() {
	r.recipesCooked.Inc()
}

func (r *Recorder) LeftoversConsumed(count int) {
	r.leftoversConsumed.Add(float64(count))
}

func (r *Recorder) GroceryMutationApplied(kind string) {
	r.groceryMutations.WithLabelValues(kind).Inc()
}
