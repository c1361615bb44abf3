// Package common contains shared constants and sentinel errors used across
// the club client.
package common

const (
	// SessionStorageKey is the durable storage key of the persisted session record.
	SessionStorageKey = "userStore"

	// AccessTokenStorageKey is the durable storage key of the cached bearer token.
	AccessTokenStorageKey = "accessToken"

	// RequestIDHeaderName carries a per-request correlation id on outbound API calls.
	RequestIDHeaderName = "X-Request-ID"
)
