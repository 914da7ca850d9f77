package metrics

import (
	"io"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

const namespace = "docnav"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once          sync.Once
	fetchDuration *prom.HistogramVec
	fallbacks     prom.Counter
	buildDuration *prom.HistogramVec
	documents     prom.Gauge
	stubs         prom.Counter
	navigations   *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.fetchDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Duration of individual document retrievals",
			Buckets:   prom.DefBuckets,
		}, []string{"result"})
		pr.fallbacks = prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_fallbacks_total",
			Help:      "Retrievals satisfied by the mirrored layout",
		})
		pr.buildDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "corpus_build_duration_seconds",
			Help:      "Duration of corpus builds",
			Buckets:   prom.DefBuckets,
		}, []string{"result"})
		pr.documents = prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "corpus_documents",
			Help:      "Number of documents in the last successful corpus build",
		})
		pr.stubs = prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "corpus_stub_records_total",
			Help:      "Index entries recorded as stubs because retrieval failed",
		})
		pr.navigations = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "navigations_total",
			Help:      "Navigations by route kind and result",
		}, []string{"kind", "result"})
		reg.MustRegister(pr.fetchDuration, pr.fallbacks, pr.buildDuration, pr.documents, pr.stubs, pr.navigations)
	})
	return pr
}

func resultOf(success bool) string {
	if success {
		return string(ResultSuccess)
	}
	return string(ResultFailed)
}

func (p *PrometheusRecorder) ObserveFetch(d time.Duration, success bool) {
	if p == nil || p.fetchDuration == nil {
		return
	}
	p.fetchDuration.WithLabelValues(resultOf(success)).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncFallback() {
	if p == nil || p.fallbacks == nil {
		return
	}
	p.fallbacks.Inc()
}

func (p *PrometheusRecorder) ObserveCorpusBuild(d time.Duration, documents int, success bool) {
	if p == nil || p.buildDuration == nil {
		return
	}
	p.buildDuration.WithLabelValues(resultOf(success)).Observe(d.Seconds())
	if success {
		p.documents.Set(float64(documents))
	}
}

func (p *PrometheusRecorder) IncStubRecords(n int) {
	if p == nil || p.stubs == nil || n <= 0 {
		return
	}
	p.stubs.Add(float64(n))
}

func (p *PrometheusRecorder) IncNavigation(kind string, result ResultLabel) {
	if p == nil || p.navigations == nil {
		return
	}
	p.navigations.WithLabelValues(kind, string(result)).Inc()
}

// WriteText gathers every metric family from g and writes it in the Prometheus
// text exposition format.
func WriteText(w io.Writer, g prom.Gatherer) error {
	mfs, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
