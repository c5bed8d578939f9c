package metrics

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"complaintfinder/internal/models"
	"complaintfinder/internal/resolver"
)

const namespace = "complaintfinder"

var (
	keywordLookupDesc = prometheus.NewDesc(
		namespace+"_keyword_lookups_total",
		"Total keyword search count by outcome, persisted across restarts",
		[]string{"keyword", "outcome"},
		nil,
	)

	searchesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "searches_total",
		Help:      "Keyword searches handled by this process, by outcome",
	}, []string{"outcome"})

	searchDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "search_duration_seconds",
		Help:      "Time spent resolving a keyword, by outcome",
		Buckets:   prometheus.DefBuckets,
	}, []string{"outcome"})

	categoryRecords = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "category_records",
		Help:      "Complaint records per category at the last refresh",
	}, []string{"category"})
)

// LookupStore persists per-keyword search counts.
type LookupStore interface {
	IncrementKeywordLookup(ctx context.Context, keyword, outcome string) error
	GetAllKeywordLookups(ctx context.Context) ([]models.KeywordLookup, error)
}

// KeywordCollector is a custom Prometheus collector that reads keyword lookup
// counts from the store on each scrape.
type KeywordCollector struct {
	store LookupStore
}

// Describe sends the metric descriptor to the channel.
func (c *KeywordCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- keywordLookupDesc
}

// Collect queries the store for all keyword lookups and emits them as counters.
func (c *KeywordCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	lookups, err := c.store.GetAllKeywordLookups(ctx)
	if err != nil {
		slog.Error("failed to collect keyword lookup metrics", "error", err)
		return
	}
	for _, l := range lookups {
		ch <- prometheus.MustNewConstMetric(
			keywordLookupDesc,
			prometheus.CounterValue,
			float64(l.Count),
			l.Keyword,
			l.Outcome,
		)
	}
}

// Recorder persists keyword lookups asynchronously.
type Recorder struct {
	store LookupStore
	wg    sync.WaitGroup
}

var (
	recorder     *Recorder
	registerOnce sync.Once
)

// Register adds the process metrics to reg. When store is non-nil the
// persisted keyword collector is registered too and lookups are recorded.
func Register(reg prometheus.Registerer, store LookupStore) error {
	for _, c := range []prometheus.Collector{searchesTotal, searchDuration, categoryRecords} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	if store != nil {
		if err := reg.Register(&KeywordCollector{store: store}); err != nil {
			return err
		}
		recorder = &Recorder{store: store}
	}
	return nil
}

// Init registers the metrics with the default registry.
// Must be called once at startup; later calls are no-ops.
func Init(store LookupStore) {
	registerOnce.Do(func() {
		if err := Register(prometheus.DefaultRegisterer, store); err != nil {
			slog.Error("failed to register metrics", "error", err)
		}
	})
}

// ObserveOutcome counts a successful resolution and records the keyword
// lookup. It has the signature of resolver.Observer.
func ObserveOutcome(keyword string, out resolver.Outcome) {
	outcome := out.Kind()
	searchesTotal.WithLabelValues(outcome).Inc()
	recordKeywordLookup(keyword, outcome)
}

// ObserveError counts a resolution that failed.
func ObserveError() {
	searchesTotal.WithLabelValues(models.OutcomeError).Inc()
}

// ObserveDuration records how long a resolution took.
func ObserveDuration(outcome string, d time.Duration) {
	searchDuration.WithLabelValues(outcome).Observe(d.Seconds())
}

// SetCategoryCounts replaces the per-category record gauge.
func SetCategoryCounts(counts map[string]int) {
	categoryRecords.Reset()
	for category, n := range counts {
		categoryRecords.WithLabelValues(category).Set(float64(n))
	}
}

// recordKeywordLookup asynchronously persists a keyword lookup outcome.
func recordKeywordLookup(keyword, outcome string) {
	r := recorder
	if r == nil {
		return
	}
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := r.store.IncrementKeywordLookup(ctx, keyword, outcome); err != nil {
			slog.Error("failed to record keyword lookup", "keyword", keyword, "outcome", outcome, "error", err)
		}
	}()
}

// Flush waits for in-flight lookup recordings to finish.
func Flush() {
	if r := recorder; r != nil {
		r.wg.Wait()
	}
}
