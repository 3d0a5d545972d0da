package cms

import (
	"errors"
	"strings"
)

var (
	ErrUnknown = errors.New("cms: unknown error")

	ErrNoTransportSecurity = errors.New("cms: no transport security set (use cms.WithTLSConfig() to set)")
	ErrClientConnClosing   = errors.New("cms: the client connection is already closing or closed")

	ErrGroupNotFound    = NewErrNotFound("group")
	ErrGroupHandleTaken = NewErrAlreadyExists("group handle")

	ErrSettingNotFound = NewErrNotFound("setting")

	ErrAssignmentRejected = errors.New("cms: the group assignment was rejected")
	ErrNoDefaultUserGroup = errors.New("cms: no default user group is configured")

	ErrAddrEmpty = NewErrCannotBeEmpty("address")

	ErrUnknownGroupIndex = errors.New("cms: unknown group index")
)

// ValidationError carries the field errors of a rejected save back to
// callers of the HTTP client.
type ValidationError struct {
	Errors []FieldError
}

func (err ValidationError) Error() string {
	messages := make([]string, len(err.Errors))
	for i, fieldError := range err.Errors {
		messages[i] = fieldError.Field + ": " + fieldError.Message
	}

	return "validation failed: " + strings.Join(messages, "; ")
}
