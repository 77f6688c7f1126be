// Package users persists local user records in the client database.
//
// A single row serves lookups by email, by username and by id, so an update
// through any of those paths is visible through all of them.
package users

import (
	"context"

	"github.com/dmitrijs2005/profilesync/internal/client/models"
)

// Repository reads and writes user records. Missing users are reported as
// common.ErrNotFound.
type Repository interface {
	// GetByIdentifier matches identifier against email or username.
	GetByIdentifier(ctx context.Context, identifier string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	// Save inserts the user or overwrites the row with the same id.
	Save(ctx context.Context, u *models.User) error
	// DeleteConflicting removes every other row that shares u's email or
	// username and returns the removed ids.
	DeleteConflicting(ctx context.Context, u *models.User) ([]string, error)
}
