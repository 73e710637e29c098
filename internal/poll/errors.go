package poll

import "errors"

// Coordinator lifecycle errors
var (
	ErrCoordinatorAlreadyRunning = errors.New("coordinator is already running")
	ErrCoordinatorNotRunning     = errors.New("coordinator is not running")
)
