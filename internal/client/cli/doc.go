// Package cli provides the interactive club command-line client.
//
// It wires configuration, durable local storage, the session store, the API
// client and the membership services behind a small REPL.
//
// Key features:
//   - Signup: roster verification, email code, registration
//   - Login / Logout, with a password-change offer on the default credential
//   - Password change and email registration for the logged-in member
//   - Post-login guidance and a whoami view of the session
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
