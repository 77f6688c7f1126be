// Package common contains shared constants and sentinel errors used across
// profilesync components.
package common

// AccessTokenHeaderName is the HTTP header used to carry the access token on
// authenticated requests to the remote API.
const AccessTokenHeaderName = "x-access-token"

// UserIDPrefix is the leading segment of every locally generated user id.
const UserIDPrefix = "user"

// LegacyTokenPrefix is the leading segment of positional mock tokens
// (token_<userId>_<timestamp>) issued by earlier client versions.
const LegacyTokenPrefix = "token"
