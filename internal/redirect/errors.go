// Spawnwatch - Live Spawn Map and Scan Coordination
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spawnwatch

package redirect

import (
	"errors"
	"fmt"
)

// ErrFeatureDisabled is returned by Submit when the server runs with a fixed
// scan location.
var ErrFeatureDisabled = errors.New("location searching is turned off")

// ValidationError reports a missing or unusable coordinate.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
