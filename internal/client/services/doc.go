// Package services implements the membership workflows of the club client:
// roster verification, email ownership verification, registration, login,
// password change, email registration, logout and post-login guidance.
//
// Workflows fail with *FlowError, which carries the taxonomy kind (one of
// the common sentinels) and a user-facing message. UserMessage extracts the
// message for display; raw transport errors are never shown.
package services
