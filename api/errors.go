package api

import "errors"

var (
	ErrServerStopped       = errors.New("cms: the server has been stopped")
	ErrServerFailedToStart = errors.New("cms: the server failed to start")
)
