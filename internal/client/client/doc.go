// Package client talks to the club backend.
//
// # Overview
//
// Client is the transport-agnostic contract for the seven backend operations
// used by the membership workflows: Login, Signup, ChangePassword,
// VerifyMember, SendMailCode, VerifyMailCode and UpdateMail. HTTPClient
// implements it as JSON over HTTP relative to a configurable base URL.
//
// Every request carries an X-Request-ID header. When a TokenStore is
// configured, a cached bearer token is attached while its exp claim is in
// the future, and an Authorization header returned by the backend replaces
// the cached value.
//
// # Error Handling
//
// Network failures wrap ErrUnavailable. Non-2xx responses become *APIError;
// an APIError without any message unwraps to common.ErrTransport. Match with
// errors.Is / errors.As.
package client
