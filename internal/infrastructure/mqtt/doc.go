// Package mqtt is Lumen Core's outbound MQTT status plane.
//
// The show runner publishes progress (segment dispatch, per-second ticks,
// warnings, completion) so dashboards and home automation systems can
// follow a running show. The client is strictly publish-only: Lumen Core
// subscribes to nothing and accepts no control over MQTT.
//
// # Topics
//
//	lumencore/show/status    show started / complete (retained)
//	lumencore/show/segment   segment dispatch events
//	lumencore/show/tick      per-second elapsed time
//	lumencore/show/warning   unknown-pattern warnings
//	lumencore/system/status  online/offline, LWT (retained)
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    // the status plane is optional; a show runs fine without it
//	}
//	defer client.Close()
//	client.Publish(mqtt.Topics{}.ShowSegment(), payload, 1, false)
package mqtt
