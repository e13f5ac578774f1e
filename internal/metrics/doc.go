// Package metrics provides build observability for sitebuilder.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metric calls never need nil checks:
//
//	b := build.NewBuilder(project, metrics.NoopRecorder{})
//
// When a textfile path is configured the CLI swaps in a PrometheusRecorder
// backed by its own registry and writes that registry with WriteTextfile
// after the build, for pickup by a node-exporter textfile collector.
package metrics
