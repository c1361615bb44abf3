// Package common defines shared constants and sentinel errors used across
// the client layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// ErrInvalidFormat is a local precondition failure; no request was sent.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrTransport covers network failures, timeouts and non-2xx responses
	// without a parseable body.
	ErrTransport = errors.New("transport failure")

	// ErrRemoteRejected is an explicit rejection reported by the backend
	// (success=false or a known error message).
	ErrRemoteRejected = errors.New("rejected by remote")

	// ErrUnknownRemote is a parseable failure with an unrecognized message.
	ErrUnknownRemote = errors.New("unknown remote error")
)
