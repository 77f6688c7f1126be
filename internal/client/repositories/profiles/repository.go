// Package profiles persists one profile record per user id.
package profiles

import (
	"context"

	"github.com/dmitrijs2005/profilesync/internal/client/models"
)

// Repository stores profiles keyed by user id. Get returns
// common.ErrNotFound when the user has no profile yet.
type Repository interface {
	Get(ctx context.Context, userID string) (*models.Profile, error)
	// Save replaces the whole profile of userID.
	Save(ctx context.Context, userID string, p models.Profile) error
	// Delete is idempotent.
	Delete(ctx context.Context, userID string) error
}
