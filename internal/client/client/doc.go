// Package client contains the identity backends and the local database
// bootstrap.
//
// # Overview
//
// Client is the backend contract: user existence, register, login, profile
// read/create/update and a connectivity test. Two implementations exist:
//
//   - HTTPClient calls the remote JSON API (POST /register, POST /login,
//     GET|POST|PUT /profile, GET /test) and maps statuses to the error
//     taxonomy of internal/common.
//   - LocalClient serves the same contract from the SQLite-backed
//     localstore, minting session tokens with session.Codec.
//
// InitDatabase and RunMigrations open the local SQLite file and apply the
// embedded goose migrations.
//
// # Errors
//
// Failures are *common.APIError values; match them with errors.Is against the
// sentinels in internal/common (ErrUserNotFound, ErrUnavailable, ...).
package client
