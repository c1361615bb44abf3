// Package session holds the client's single Session Store.
//
// The store is an explicit, injectable container: callers receive a *Store
// and mutate it through SetUser, SetAuthStatus, UpdateEmail and Clear. After
// every identity mutation the identity subset is written to durable storage
// under common.SessionStorageKey. The security flags and EmailUpdated are
// kept in memory only, so a reloaded store reports their zero values until
// the next login refreshes them.
package session
