package monitor

import "errors"

var (
	ErrExceededMaxLatency  = errors.New("probe: request took too long")
	ErrIncorrectMembership = errors.New("probe: incorrect group membership result")
)
