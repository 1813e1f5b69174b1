package estimator

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

// estimateTimeout bounds the AWS queries of one refresh.
const estimateTimeout = 5 * time.Minute

// Collector implements the prometheus.Collector interface and exposes the
// cluster cost estimate as gauges. The estimate is refreshed lazily on
// collection, at most once per cache window.
type Collector struct {
	estimator *Estimator
	cache     time.Duration

	mu          sync.Mutex
	nextRefresh time.Time

	monthlyCost    *prometheus.GaugeVec
	duration       prometheus.Gauge
	estimateErrors prometheus.Gauge
	totalEstimates prometheus.Counter
}

// NewCollector returns a Collector around the estimator. cache is how long a
// computed estimate is served before AWS is queried again.
func NewCollector(estimator *Estimator, cache time.Duration) *Collector {
	return &Collector{
		estimator: estimator,
		cache:     cache,
		monthlyCost: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "eks_cost",
			Name:      "monthly_dollars",
			Help:      "Estimated static monthly cost in USD.",
		}, []string{"cluster", "category"}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "eks_cost",
			Name:      "estimate_duration_seconds",
			Help:      "The estimate duration.",
		}),
		estimateErrors: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "eks_cost",
			Name:      "estimate_error",
			Help:      "The estimate error status.",
		}),
		totalEstimates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "eks_cost",
			Name:      "estimates_total",
			Help:      "Total cost estimates run.",
		}),
	}
}

// Describe outputs metric descriptions.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.monthlyCost.Describe(ch)
	ch <- c.duration.Desc()
	ch <- c.estimateErrors.Desc()
	ch <- c.totalEstimates.Desc()
}

// Collect refreshes the estimate when the cache window has passed and emits
// the current values.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.mu.Lock()
	if time.Now().After(c.nextRefresh) {
		c.refresh()
		c.nextRefresh = time.Now().Add(c.cache)
	}
	c.mu.Unlock()

	c.duration.Collect(ch)
	c.estimateErrors.Collect(ch)
	c.totalEstimates.Collect(ch)
	c.monthlyCost.Collect(ch)
}

// refresh recomputes the estimate. On failure the previous gauge values are
// kept and the error gauge is raised.
func (c *Collector) refresh() {
	now := time.Now()
	c.totalEstimates.Inc()

	ctx, cancel := context.WithTimeout(context.Background(), estimateTimeout)
	defer cancel()

	estimate, err := c.estimator.Estimate(ctx)
	if err != nil {
		log.WithError(err).Error("cost estimate failed")
		c.estimateErrors.Set(1)
		return
	}
	c.estimateErrors.Set(0)

	c.monthlyCost.Reset()
	for _, category := range estimate.Categories {
		c.monthlyCost.WithLabelValues(estimate.Cluster, category.Key).Set(category.Monthly)
	}
	c.monthlyCost.WithLabelValues(estimate.Cluster, "total").Set(estimate.Total())

	c.duration.Set(time.Since(now).Seconds())
}
