// Package cli provides the interactive profilesync command-line client.
//
// NewApp opens the local database, builds the identity service for the
// configured backend (remote API or local mock) and the connectivity
// monitor. App.Run starts the monitor in the background and blocks in a
// REPL:
//
//   - register, login, logout
//   - exists: check whether an email or username is taken
//   - profile, createprofile, updateprofile
//   - ping: one-off connection test; status: backend, connectivity, session
//
// The prompt shows the logged-in user and the monitor status.
package cli
