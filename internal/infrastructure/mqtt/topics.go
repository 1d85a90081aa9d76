package mqtt

import "fmt"

// Topic prefixes for the Lumen Core status plane.
//
// All topics are outbound: the show runner publishes, dashboards and home
// automation systems subscribe.
const (
	// TopicPrefixShow is the base for show progress topics.
	TopicPrefixShow = "lumencore/show"

	// TopicPrefixSystem is the base for system topics.
	TopicPrefixSystem = "lumencore/system"
)

// Topics provides builders for Lumen Core MQTT topics.
// Using these helpers ensures consistent topic naming across the codebase.
//
//	topics := mqtt.Topics{}
//	segTopic := topics.ShowSegment()
//	// Returns: "lumencore/show/segment"
type Topics struct{}

// ShowStatus returns the topic for overall show status (started/complete).
//
// Example: lumencore/show/status
func (Topics) ShowStatus() string {
	return fmt.Sprintf("%s/status", TopicPrefixShow)
}

// ShowSegment returns the topic for segment dispatch events.
//
// Example: lumencore/show/segment
func (Topics) ShowSegment() string {
	return fmt.Sprintf("%s/segment", TopicPrefixShow)
}

// ShowTick returns the topic for per-second elapsed-time ticks.
//
// Example: lumencore/show/tick
func (Topics) ShowTick() string {
	return fmt.Sprintf("%s/tick", TopicPrefixShow)
}

// ShowWarning returns the topic for runtime warnings (unknown patterns).
//
// Example: lumencore/show/warning
func (Topics) ShowWarning() string {
	return fmt.Sprintf("%s/warning", TopicPrefixShow)
}

// SystemStatus returns the system status topic used for LWT and
// online/offline announcements.
//
// Example: lumencore/system/status
func (Topics) SystemStatus() string {
	return fmt.Sprintf("%s/status", TopicPrefixSystem)
}
