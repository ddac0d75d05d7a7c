package shared

import "fmt"

var (
	// Configuration errors
	ErrConfigMissing = fmt.Errorf("client secrets file not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Authentication errors
	ErrCredentialCorrupt = fmt.Errorf("unreadable credential file")
	ErrFlowAborted       = fmt.Errorf("authorization flow aborted")
	ErrRefreshFailed     = fmt.Errorf("token refresh failed")
	ErrTimeout           = fmt.Errorf("operation timed out")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrVideoNotFound      = fmt.Errorf("video not found or private")
	ErrDuplicateVideo     = fmt.Errorf("video already in playlist")

	// Input validation errors
	ErrNoInput         = fmt.Errorf("no valid video links")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
