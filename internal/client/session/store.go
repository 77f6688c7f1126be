package session

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/profilesync/internal/client/repositories/metadata"
)

// Store is the persisted scalar slot holding the current session.
type Store interface {
	Load(ctx context.Context) (Session, error)
	Save(ctx context.Context, s Session) error
	Clear(ctx context.Context) error
}

// MetadataStore keeps the session in the local metadata key/value table.
type MetadataStore struct {
	repo metadata.Repository
}

func NewMetadataStore(repo metadata.Repository) *MetadataStore {
	return &MetadataStore{repo: repo}
}

// Load returns the zero Session when nothing is stored.
func (m *MetadataStore) Load(ctx context.Context) (Session, error) {
	token, err := m.repo.Get(ctx, metadata.KeyAccessToken)
	if err != nil {
		return Session{}, err
	}
	userID, err := m.repo.Get(ctx, metadata.KeyUserID)
	if err != nil {
		return Session{}, err
	}
	issuedAt, err := m.repo.Get(ctx, metadata.KeyIssuedAt)
	if err != nil {
		return Session{}, err
	}

	s := Session{Token: string(token), UserID: string(userID)}
	if len(issuedAt) > 0 {
		if t, err := time.Parse(time.RFC3339Nano, string(issuedAt)); err == nil {
			s.IssuedAt = t
		}
	}
	return s, nil
}

// Save replaces the stored session. A token is never appended to; empty
// fields are removed from the table.
func (m *MetadataStore) Save(ctx context.Context, s Session) error {
	issuedAt := ""
	if !s.IssuedAt.IsZero() {
		issuedAt = s.IssuedAt.UTC().Format(time.RFC3339Nano)
	}

	values := []struct{ key, value string }{
		{metadata.KeyAccessToken, s.Token},
		{metadata.KeyUserID, s.UserID},
		{metadata.KeyIssuedAt, issuedAt},
	}
	for _, kv := range values {
		var err error
		if kv.value == "" {
			err = m.repo.Delete(ctx, kv.key)
		} else {
			err = m.repo.Set(ctx, kv.key, []byte(kv.value))
		}
		if err != nil {
			return fmt.Errorf("save session: %w", err)
		}
	}
	return nil
}

func (m *MetadataStore) Clear(ctx context.Context) error {
	if err := m.repo.DeleteKeys(ctx, metadata.SessionKeys...); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
