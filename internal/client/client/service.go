package client

import (
	"context"

	"github.com/dmitrijs2005/profilesync/internal/client/models"
	"github.com/dmitrijs2005/profilesync/internal/client/session"
)

// Backend names reported by Client.Mode.
const (
	ModeRemote = "remote"
	ModeMock   = "mock"
)

// Client is the contract every identity backend implements. Profile calls
// carry the caller's session explicitly; implementations never read the
// persisted session slot themselves.
type Client interface {
	Mode() string

	// CheckUserExists reports whether identifier (email or username) is
	// known. The error is informational; callers treat it as "not found".
	CheckUserExists(ctx context.Context, identifier string) (bool, error)

	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)

	GetProfile(ctx context.Context, s session.Session) (*models.ProfileResponse, error)
	CreateProfile(ctx context.Context, s session.Session, p models.Profile) (*models.ProfileResponse, error)
	UpdateProfile(ctx context.Context, s session.Session, p models.Profile) (*models.ProfileResponse, error)

	// TestConnection returns nil when the backend is reachable.
	TestConnection(ctx context.Context) error
}
