package client

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/profilesync/internal/client/localstore"
	"github.com/dmitrijs2005/profilesync/internal/client/models"
	"github.com/dmitrijs2005/profilesync/internal/client/session"
	"github.com/dmitrijs2005/profilesync/internal/common"
	"github.com/dmitrijs2005/profilesync/internal/logging"
)

// Messages returned by the local profile operations.
const (
	MessageProfileCreated = "Profile created successfully"
	MessageProfileUpdated = "Profile updated successfully"
)

// LocalClient serves the whole contract from the local store. Passwords are
// compared in clear; tokens come from the session codec.
type LocalClient struct {
	store *localstore.Store
	codec *session.Codec
	log   logging.Logger
	now   func() time.Time
}

func NewLocalClient(store *localstore.Store, codec *session.Codec, log logging.Logger) *LocalClient {
	return &LocalClient{
		store: store,
		codec: codec,
		log:   log.With("backend", ModeMock),
		now:   time.Now,
	}
}

func (c *LocalClient) Mode() string { return ModeMock }

func (c *LocalClient) CheckUserExists(ctx context.Context, identifier string) (bool, error) {
	_, err := c.store.GetUser(ctx, identifier)
	if errors.Is(err, common.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (c *LocalClient) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	for _, id := range []string{req.Email, req.Username} {
		exists, err := c.CheckUserExists(ctx, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, common.NewAPIError(common.ErrUserAlreadyExists, 0, "")
		}
	}

	now := c.now().UTC()
	id, err := session.NewUserID(now)
	if err != nil {
		return nil, fmt.Errorf("failed to generate user id: %w", err)
	}
	token, _, err := c.codec.Issue(id)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	u := &models.User{
		ID:          id,
		Email:       req.Email,
		Username:    req.Username,
		Password:    req.Password,
		AccessToken: token,
		CreatedAt:   now,
	}
	if err := c.store.SaveUser(ctx, u); err != nil {
		return nil, err
	}

	c.log.Info(ctx, "user registered", "user_id", id, "username", req.Username)
	return authResponse(u), nil
}

func (c *LocalClient) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	u, err := c.store.GetUser(ctx, req.Identifier())
	if errors.Is(err, common.ErrNotFound) {
		return nil, common.NewAPIError(common.ErrUserNotFound, 0, "")
	}
	if err != nil {
		return nil, err
	}
	if subtle.ConstantTimeCompare([]byte(u.Password), []byte(req.Password)) != 1 {
		return nil, common.NewAPIError(common.ErrInvalidCredentials, 0, "")
	}

	token, issuedAt, err := c.codec.Issue(u.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	u.AccessToken = token
	u.LastLogin = issuedAt
	if err := c.store.SaveUser(ctx, u); err != nil {
		return nil, err
	}

	c.log.Info(ctx, "user logged in", "user_id", u.ID)
	return authResponse(u), nil
}

func (c *LocalClient) GetProfile(ctx context.Context, s session.Session) (*models.ProfileResponse, error) {
	userID, err := localstore.ResolveUserID(ctx, c.codec, c.store, s)
	if err != nil {
		return nil, err
	}

	p, err := c.store.GetProfile(ctx, userID)
	if errors.Is(err, common.ErrNotFound) {
		return &models.ProfileResponse{Data: models.DefaultProfile()}, nil
	}
	if err != nil {
		return nil, err
	}
	return &models.ProfileResponse{Data: *p}, nil
}

func (c *LocalClient) CreateProfile(ctx context.Context, s session.Session, p models.Profile) (*models.ProfileResponse, error) {
	return c.saveProfile(ctx, s, p, MessageProfileCreated)
}

func (c *LocalClient) UpdateProfile(ctx context.Context, s session.Session, p models.Profile) (*models.ProfileResponse, error) {
	return c.saveProfile(ctx, s, p, MessageProfileUpdated)
}

func (c *LocalClient) saveProfile(ctx context.Context, s session.Session, p models.Profile, msg string) (*models.ProfileResponse, error) {
	userID, err := localstore.ResolveUserID(ctx, c.codec, c.store, s)
	if err != nil {
		return nil, err
	}

	p = p.Normalize()
	if err := c.store.SaveProfile(ctx, userID, p); err != nil {
		return nil, err
	}
	c.log.Debug(ctx, "profile saved", "user_id", userID)
	return &models.ProfileResponse{Message: msg, Data: p}, nil
}

// TestConnection always succeeds: there is nothing to reach.
func (c *LocalClient) TestConnection(context.Context) error { return nil }

func authResponse(u *models.User) *models.AuthResponse {
	return &models.AuthResponse{
		AccessToken: u.AccessToken,
		User:        &models.UserInfo{ID: u.ID, Email: u.Email, Username: u.Username},
	}
}

var _ Client = (*LocalClient)(nil)
