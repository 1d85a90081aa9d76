package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// Measurement names for show telemetry.
const (
	measurementChannel = "channel_state"
	measurementTick    = "show_tick"
	measurementSegment = "show_segment"
)

// WriteChannelState records a single channel transition.
//
// The write is non-blocking and batched. Points are flushed according to
// the configured batch size and flush interval.
//
// Parameters:
//   - name: Channel name (e.g. "tree_1")
//   - on: New channel state after the transition
func (c *Client) WriteChannelState(name string, on bool) {
	if !c.IsConnected() {
		return
	}

	state := 0
	if on {
		state = 1
	}

	point := write.NewPoint(
		measurementChannel,
		map[string]string{
			"channel": name,
		},
		map[string]interface{}{
			"on": state,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WriteShowTick records one elapsed-second progress tick for a running show.
//
// Parameters:
//   - show: Show file name
//   - elapsed: Whole seconds since show start
func (c *Client) WriteShowTick(show string, elapsed int) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		measurementTick,
		map[string]string{
			"show": show,
		},
		map[string]interface{}{
			"elapsed_seconds": elapsed,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WriteSegmentEvent records the dispatch of one timeline segment.
//
// Parameters:
//   - show: Show file name
//   - pattern: Pattern name the segment invoked
//   - start: Segment start offset in seconds
//   - duration: Segment duration in seconds
func (c *Client) WriteSegmentEvent(show, pattern string, start, duration float64) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		measurementSegment,
		map[string]string{
			"show":    show,
			"pattern": pattern,
		},
		map[string]interface{}{
			"start_seconds":    start,
			"duration_seconds": duration,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}
