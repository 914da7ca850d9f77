package metrics

import "time"

// ResultLabel enumerates result categories for counters.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultFailed   ResultLabel = "failed"
	ResultStale    ResultLabel = "stale"
	ResultCanceled ResultLabel = "canceled"
)

// Recorder defines observability hooks for retrieval, corpus and navigation metrics.
type Recorder interface {
	// ObserveFetch records a single retrieval against the document store.
	ObserveFetch(d time.Duration, success bool)
	// IncFallback counts retrievals that were satisfied by the mirrored layout.
	IncFallback()
	// ObserveCorpusBuild records one completed (or failed) corpus build.
	ObserveCorpusBuild(d time.Duration, documents int, success bool)
	// IncStubRecords counts index entries whose document could not be retrieved.
	IncStubRecords(n int)
	// IncNavigation counts navigations by route kind and result.
	IncNavigation(kind string, result ResultLabel)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveFetch(time.Duration, bool)            {}
func (NoopRecorder) IncFallback()                                {}
func (NoopRecorder) ObserveCorpusBuild(time.Duration, int, bool) {}
func (NoopRecorder) IncStubRecords(int)                          {}
func (NoopRecorder) IncNavigation(string, ResultLabel)           {}
