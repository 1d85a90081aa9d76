// Package influxdb provides optional time-series telemetry for show runs.
//
// The client wraps the InfluxDB v2 Go client with non-blocking batched
// writes. Three measurements are recorded: channel_state (per-transition),
// show_tick (per elapsed second), and show_segment (per dispatched pattern).
//
// All write methods silently no-op when the client is disconnected, so the
// engine never blocks or fails on telemetry. Connect returns ErrDisabled
// when telemetry is switched off in configuration; callers treat that as
// a normal condition, not a failure.
package influxdb
