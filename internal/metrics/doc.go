// Package metrics records build and stage metrics for optionbook runs.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so call sites never nil-check:
//
//	g := generator.New(cfg).WithRecorder(metrics.NewPrometheusRecorder(reg))
//
// A one-shot batch tool has no scrape endpoint; the Prometheus registry is
// written to a node_exporter textfile with WriteTextfile after the run.
package metrics
