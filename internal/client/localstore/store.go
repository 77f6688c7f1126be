// Package localstore is the persisted record store behind the local mock
// backend: user records addressable by email, username or id, and profile
// records keyed by user id.
package localstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/profilesync/internal/client/models"
	"github.com/dmitrijs2005/profilesync/internal/client/repositories/profiles"
	"github.com/dmitrijs2005/profilesync/internal/client/repositories/users"
	"github.com/dmitrijs2005/profilesync/internal/client/session"
	"github.com/dmitrijs2005/profilesync/internal/common"
	"github.com/dmitrijs2005/profilesync/internal/dbx"
)

// Store groups the user and profile repositories over one database handle.
type Store struct {
	db       *sql.DB
	users    users.Repository
	profiles profiles.Repository
}

func New(db *sql.DB) *Store {
	return &Store{
		db:       db,
		users:    users.NewSQLiteRepository(db),
		profiles: profiles.NewSQLiteRepository(db),
	}
}

// GetUser finds a user by email or username. A missing user yields
// common.ErrNotFound.
func (s *Store) GetUser(ctx context.Context, identifier string) (*models.User, error) {
	return s.users.GetByIdentifier(ctx, identifier)
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

// SaveUser upserts u by id. Lookups by email and by username read the same
// row, so both observe the change at once.
func (s *Store) SaveUser(ctx context.Context, u *models.User) error {
	if u == nil || u.ID == "" {
		return errors.New("user id is required")
	}
	return dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		return users.NewSQLiteRepository(tx).Save(ctx, u)
	})
}

// ReplaceUser saves u as the only record for its email and username: other
// rows sharing either are removed together with their profiles.
func (s *Store) ReplaceUser(ctx context.Context, u *models.User) error {
	if u == nil || u.ID == "" {
		return errors.New("user id is required")
	}
	return dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		userRepo := users.NewSQLiteRepository(tx)
		stale, err := userRepo.DeleteConflicting(ctx, u)
		if err != nil {
			return err
		}
		profileRepo := profiles.NewSQLiteRepository(tx)
		for _, id := range stale {
			if err := profileRepo.Delete(ctx, id); err != nil {
				return err
			}
		}
		return userRepo.Save(ctx, u)
	})
}

// GetProfile returns common.ErrNotFound when userID has no profile.
func (s *Store) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	return s.profiles.Get(ctx, userID)
}

// SaveProfile overwrites the whole profile of userID with its normalized form.
func (s *Store) SaveProfile(ctx context.Context, userID string, p models.Profile) error {
	if userID == "" {
		return errors.New("user id is required")
	}
	return s.profiles.Save(ctx, userID, p.Normalize())
}

// ResolveUserID maps the session token to the id of a stored user. It fails
// with common.ErrUnauthorized when there is no token, when the codec cannot
// read it, or when the user it names is unknown to the store.
func ResolveUserID(ctx context.Context, codec *session.Codec, store *Store, s session.Session) (string, error) {
	if s.IsZero() {
		return "", common.NewAPIError(common.ErrUnauthorized, 0, "access token required")
	}
	id, err := codec.UserID(s.Token)
	if err != nil {
		return "", err
	}

	if _, err := store.GetUserByID(ctx, id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", common.NewAPIError(common.ErrUnauthorized, 0, "token refers to an unknown user")
		}
		return "", fmt.Errorf("failed to resolve session user: %w", err)
	}
	return id, nil
}
