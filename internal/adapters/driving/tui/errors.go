package tui

import "errors"

// ErrMissingMonitorService is returned when the monitor service is not provided.
var ErrMissingMonitorService = errors.New("tui: monitor service is required")
