package mqtt

import (
	"errors"
	"strings"
	"testing"
)

func TestTopics(t *testing.T) {
	topics := Topics{}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"show status", topics.ShowStatus(), "lumencore/show/status"},
		{"show segment", topics.ShowSegment(), "lumencore/show/segment"},
		{"show tick", topics.ShowTick(), "lumencore/show/tick"},
		{"show warning", topics.ShowWarning(), "lumencore/show/warning"},
		{"system status", topics.SystemStatus(), "lumencore/system/status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestPublish_Validation(t *testing.T) {
	// A zero-value client is disconnected; validation runs before any I/O.
	c := &Client{}

	if err := c.Publish("", []byte("x"), 1, false); !errors.Is(err, ErrInvalidTopic) {
		t.Errorf("empty topic error = %v, want ErrInvalidTopic", err)
	}

	if err := c.Publish("lumencore/show/tick", []byte("x"), 3, false); !errors.Is(err, ErrInvalidQoS) {
		t.Errorf("bad QoS error = %v, want ErrInvalidQoS", err)
	}

	big := []byte(strings.Repeat("a", maxPayloadSize+1))
	if err := c.Publish("lumencore/show/tick", big, 1, false); !errors.Is(err, ErrPublishFailed) {
		t.Errorf("oversized payload error = %v, want ErrPublishFailed", err)
	}

	if err := c.Publish("lumencore/show/tick", []byte("x"), 1, false); !errors.Is(err, ErrNotConnected) {
		t.Errorf("disconnected error = %v, want ErrNotConnected", err)
	}
}

func TestIsConnected_ZeroValue(t *testing.T) {
	c := &Client{}
	if c.IsConnected() {
		t.Error("zero-value client should report disconnected")
	}
}

func TestClose_NeverConnected(t *testing.T) {
	c := &Client{}
	if err := c.Close(); err != nil {
		t.Errorf("Close() on unconnected client error = %v, want nil", err)
	}
}
