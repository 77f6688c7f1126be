// Package services contains the client application services. This file
// defines the identity service: one facade over the remote or the local mock
// backend that also owns the persisted session slot and the local cache of
// users and profiles.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/profilesync/internal/client/client"
	"github.com/dmitrijs2005/profilesync/internal/client/config"
	"github.com/dmitrijs2005/profilesync/internal/client/localstore"
	"github.com/dmitrijs2005/profilesync/internal/client/models"
	"github.com/dmitrijs2005/profilesync/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/profilesync/internal/client/session"
	"github.com/dmitrijs2005/profilesync/internal/common"
	"github.com/dmitrijs2005/profilesync/internal/logging"
)

// IdentityService is what the CLI talks to.
//
// Contract:
//   - CheckUserExists and TestConnection never fail; errors read as false.
//   - Register and Login validate input before any I/O and store the new
//     token before returning.
//   - Profile operations use the stored session. Their Data is the
//     normalized profile; a missing remote "data" reads as the default
//     profile (get) or the profile sent (create/update). The remote member
//     itself is passed through unchanged in ProfileResponse.Raw.
//   - Every other failure is a *common.APIError matching one of the
//     sentinels in internal/common.
type IdentityService interface {
	Mode() string
	CheckUserExists(ctx context.Context, identifier string) bool
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	GetProfile(ctx context.Context) (*models.ProfileResponse, error)
	CreateProfile(ctx context.Context, in models.ProfileInput) (*models.ProfileResponse, error)
	UpdateProfile(ctx context.Context, in models.ProfileInput) (*models.ProfileResponse, error)
	TestConnection(ctx context.Context) bool
	Logout(ctx context.Context) error
	Session(ctx context.Context) (session.Session, error)
}

type identityService struct {
	backend  client.Client
	sessions session.Store
	store    *localstore.Store
	codec    *session.Codec
	log      logging.Logger
	now      func() time.Time
}

// NewIdentityService wires the facade over an already chosen backend.
func NewIdentityService(backend client.Client, sessions session.Store, store *localstore.Store,
	codec *session.Codec, log logging.Logger) IdentityService {
	return &identityService{
		backend:  backend,
		sessions: sessions,
		store:    store,
		codec:    codec,
		log:      log.With("service", "identity", "backend", backend.Mode()),
		now:      time.Now,
	}
}

// New picks the backend from cfg once: the local mock when UseMockAPI is
// set, the remote HTTP API otherwise. db must be migrated.
func New(cfg *config.Config, db *sql.DB, log logging.Logger) (IdentityService, error) {
	codec, err := session.NewCodec(cfg.MockTokenSecret)
	if err != nil {
		return nil, err
	}
	store := localstore.New(db)
	sessions := session.NewMetadataStore(metadata.NewSQLiteRepository(db))

	var backend client.Client
	if cfg.UseMockAPI {
		backend = client.NewLocalClient(store, codec, log)
	} else {
		backend = client.NewHTTPClient(cfg.APIBaseURL, cfg.RequestTimeout, log)
	}
	return NewIdentityService(backend, sessions, store, codec, log), nil
}

func (s *identityService) Mode() string { return s.backend.Mode() }

func (s *identityService) isRemote() bool { return s.backend.Mode() != client.ModeMock }

func (s *identityService) CheckUserExists(ctx context.Context, identifier string) bool {
	ok, err := s.backend.CheckUserExists(ctx, identifier)
	if err != nil {
		s.log.Warn(ctx, "user existence check failed, assuming absent", "identifier", identifier, "error", err)
		return false
	}
	return ok
}

func (s *identityService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	if err := validateRegister(req); err != nil {
		return nil, err
	}

	resp, err := s.backend.Register(ctx, req)
	if err != nil {
		s.log.Info(ctx, "registration failed", "username", req.Username, "code", common.Code(err))
		return nil, err
	}
	if err := s.persistSession(ctx, resp); err != nil {
		return nil, err
	}

	if s.isRemote() && resp.AccessToken != "" && resp.User != nil {
		s.mirrorRegisteredUser(ctx, req, resp)
	}
	s.log.Info(ctx, "registered", "username", req.Username, "token", resp.AccessToken != "")
	return resp, nil
}

func (s *identityService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	if err := validateLogin(req); err != nil {
		return nil, err
	}

	resp, err := s.backend.Login(ctx, req)
	if err != nil {
		s.log.Info(ctx, "login failed", "identifier", req.Identifier(), "code", common.Code(err))
		return nil, err
	}
	if err := s.persistSession(ctx, resp); err != nil {
		return nil, err
	}

	if s.isRemote() && resp.AccessToken != "" && resp.User != nil {
		s.refreshCachedUser(ctx, resp)
	}
	s.log.Info(ctx, "logged in", "identifier", req.Identifier(), "token", resp.AccessToken != "")
	return resp, nil
}

func (s *identityService) GetProfile(ctx context.Context) (*models.ProfileResponse, error) {
	sess, err := s.sessions.Load(ctx)
	if err != nil {
		return nil, err
	}
	return s.backend.GetProfile(ctx, sess)
}

func (s *identityService) CreateProfile(ctx context.Context, in models.ProfileInput) (*models.ProfileResponse, error) {
	return s.writeProfile(ctx, in, s.backend.CreateProfile)
}

func (s *identityService) UpdateProfile(ctx context.Context, in models.ProfileInput) (*models.ProfileResponse, error) {
	return s.writeProfile(ctx, in, s.backend.UpdateProfile)
}

type profileWriter func(ctx context.Context, s session.Session, p models.Profile) (*models.ProfileResponse, error)

func (s *identityService) writeProfile(ctx context.Context, in models.ProfileInput, write profileWriter) (*models.ProfileResponse, error) {
	p := in.Normalize()

	sess, err := s.sessions.Load(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := write(ctx, sess, p)
	if err != nil {
		return nil, err
	}

	if s.isRemote() {
		s.mirrorProfile(ctx, sess, p)
	}
	return resp, nil
}

func (s *identityService) TestConnection(ctx context.Context) bool {
	if err := s.backend.TestConnection(ctx); err != nil {
		s.log.Debug(ctx, "connection test failed", "error", err)
		return false
	}
	return true
}

func (s *identityService) Logout(ctx context.Context) error {
	if err := s.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	s.log.Info(ctx, "logged out")
	return nil
}

func (s *identityService) Session(ctx context.Context) (session.Session, error) {
	return s.sessions.Load(ctx)
}

// persistSession stores the token of resp, replacing whatever was held.
// A response without a token leaves the slot untouched.
func (s *identityService) persistSession(ctx context.Context, resp *models.AuthResponse) error {
	if resp.AccessToken == "" {
		s.log.Warn(ctx, "no access token in response")
		return nil
	}
	sess := session.Session{Token: resp.AccessToken, IssuedAt: s.now().UTC()}
	if resp.User != nil {
		sess.UserID = resp.User.ID
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

// mirrorRegisteredUser caches a remotely registered user locally, keeping
// the password so the mock backend can later authenticate it. Older records
// under the same email or username are replaced.
func (s *identityService) mirrorRegisteredUser(ctx context.Context, req models.RegisterRequest, resp *models.AuthResponse) {
	if resp.User.ID == "" {
		return
	}
	u := &models.User{
		ID:          resp.User.ID,
		Email:       firstNonEmpty(resp.User.Email, req.Email),
		Username:    firstNonEmpty(resp.User.Username, req.Username),
		Password:    req.Password,
		AccessToken: resp.AccessToken,
		CreatedAt:   s.now().UTC(),
	}
	if existing, err := s.store.GetUserByID(ctx, u.ID); err == nil {
		u.CreatedAt = existing.CreatedAt
		u.LastLogin = existing.LastLogin
	}
	if err := s.store.ReplaceUser(ctx, u); err != nil {
		s.log.Warn(ctx, "failed to cache registered user", "user_id", u.ID, "error", err)
	}
}

// refreshCachedUser updates token and last login of a cached user after a
// remote login. Unknown users are not added.
func (s *identityService) refreshCachedUser(ctx context.Context, resp *models.AuthResponse) {
	identifier := firstNonEmpty(resp.User.Email, resp.User.Username)
	u, err := s.store.GetUser(ctx, identifier)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			s.log.Warn(ctx, "failed to read cached user", "identifier", identifier, "error", err)
		}
		return
	}
	u.AccessToken = resp.AccessToken
	u.LastLogin = s.now().UTC()
	if err := s.store.SaveUser(ctx, u); err != nil {
		s.log.Warn(ctx, "failed to refresh cached user", "user_id", u.ID, "error", err)
	}
}

// mirrorProfile keeps a local copy of a profile accepted by the remote API.
// It is skipped when the session cannot be tied to a user id.
func (s *identityService) mirrorProfile(ctx context.Context, sess session.Session, p models.Profile) {
	userID, err := localstore.ResolveUserID(ctx, s.codec, s.store, sess)
	if err != nil {
		userID = sess.UserID
	}
	if userID == "" {
		s.log.Debug(ctx, "profile not cached, session has no user id")
		return
	}
	if err := s.store.SaveProfile(ctx, userID, p); err != nil {
		s.log.Warn(ctx, "failed to cache profile", "user_id", userID, "error", err)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
