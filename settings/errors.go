package settings

import "errors"

// ErrParsingSettings is returned when the environment holds malformed values.
var ErrParsingSettings = errors.New("failed to parse settings")
