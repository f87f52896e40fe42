// Package instance names workspaces. The instance name namespaces every Redis
// key, so several workspaces can share one server.
package instance

import (
	"fmt"
	"regexp"
)

// MaxNameLength is the maximum length for an instance name
const MaxNameLength = 63

// NamePattern is the regex pattern for valid instance names:
// lowercase alphanumeric, hyphens allowed (but not at start/end).
var NamePattern = regexp.MustCompile(`^[a-z0-9]([-a-z0-9]*[a-z0-9])?$`)

// ValidateName checks that name is usable as a key namespace.
// Colons are rejected since they separate key segments.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("instance name cannot be empty")
	}

	if len(name) > MaxNameLength {
		return fmt.Errorf("instance name too long: %d characters (max: %d)", len(name), MaxNameLength)
	}

	if !NamePattern.MatchString(name) {
		return fmt.Errorf("invalid instance name '%s': must be lowercase alphanumeric with hyphens (not at start/end)", name)
	}

	return nil
}
