// Package metrics provides observability hooks for document retrieval, corpus
// builds and navigations.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so no nil checks are needed at call sites:
//
//	loader := content.NewLoader(fetcher, resolver, content.WithRecorder(rec))
//
// PrometheusRecorder registers its collectors with a caller supplied registry.
// WriteText renders a registry in the Prometheus text exposition format, which
// the CLI uses for its --metrics dump.
package metrics
