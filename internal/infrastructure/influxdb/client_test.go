package influxdb

import (
	"errors"
	"testing"

	"github.com/frostline/lumencore/internal/infrastructure/config"
)

func TestConnectDisabled(t *testing.T) {
	_, err := Connect(config.InfluxDBConfig{Enabled: false})
	if !errors.Is(err, ErrDisabled) {
		t.Errorf("expected ErrDisabled, got %v", err)
	}
}

func TestConnectUnreachable(t *testing.T) {
	cfg := config.InfluxDBConfig{
		Enabled: true,
		URL:     "http://127.0.0.1:1", // nothing listening
		Token:   "token",
		Org:     "org",
		Bucket:  "bucket",
	}

	_, err := Connect(cfg)
	if !errors.Is(err, ErrConnectionFailed) {
		t.Errorf("expected ErrConnectionFailed, got %v", err)
	}
}

func TestDisconnectedWritesNoOp(t *testing.T) {
	// Zero-value client is disconnected; writes must be silent no-ops.
	c := &Client{}

	if c.IsConnected() {
		t.Fatal("zero-value client should not report connected")
	}

	c.WriteChannelState("tree_1", true)
	c.WriteShowTick("show.yaml", 5)
	c.WriteSegmentEvent("show.yaml", "blink_all", 0, 2.5)

	if err := c.Close(); err != nil {
		t.Errorf("Close on zero-value client: %v", err)
	}
}
