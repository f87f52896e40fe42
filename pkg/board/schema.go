package board

import "fmt"

// Redis key pattern helpers
//
// Key pattern: slate:{instance_name}:{entity}
// Channel pattern: slate:{instance_name}:{event_type}_events

// Entity names for the three persisted values.
const (
	EntityTheme       = "theme"
	EntityTabs        = "tabs"
	EntityBlackboards = "blackboards"
)

// Key returns the namespaced Redis key for an entity.
// Pattern: slate:{instance_name}:{entity}
func Key(instanceName, entity string) string {
	return fmt.Sprintf("slate:%s:%s", instanceName, entity)
}

// BoardEventsChannel returns the Pub/Sub channel on which saves are announced.
// Pattern: slate:{instance_name}:board_events
func BoardEventsChannel(instanceName string) string {
	return fmt.Sprintf("slate:%s:board_events", instanceName)
}
