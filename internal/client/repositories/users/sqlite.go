package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/profilesync/internal/client/models"
	"github.com/dmitrijs2005/profilesync/internal/common"
	"github.com/dmitrijs2005/profilesync/internal/dbx"
)

const selectColumns = `SELECT id, email, username, password, access_token, created_at, last_login FROM users`

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) GetByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	if identifier == "" {
		return nil, common.ErrNotFound
	}
	query := selectColumns + ` WHERE email = ? OR username = ? ORDER BY created_at LIMIT 1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, identifier, identifier))
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id))
}

func (r *SQLiteRepository) Save(ctx context.Context, u *models.User) error {
	query := `INSERT INTO users (id, email, username, password, access_token, created_at, last_login)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET email = excluded.email,
			username = excluded.username,
			password = excluded.password,
			access_token = excluded.access_token,
			last_login = excluded.last_login`

	_, err := r.db.ExecContext(ctx, query,
		u.ID, u.Email, u.Username, u.Password, u.AccessToken,
		formatTime(u.CreatedAt), formatTime(u.LastLogin))
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteConflicting(ctx context.Context, u *models.User) ([]string, error) {
	const where = ` WHERE id <> ? AND ((? <> '' AND email = ?) OR (? <> '' AND username = ?))`
	args := []any{u.ID, u.Email, u.Email, u.Username, u.Username}

	rows, err := r.db.QueryContext(ctx, `SELECT id FROM users`+where, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select conflicting users: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM users`+where, args...); err != nil {
		return nil, fmt.Errorf("failed to delete conflicting users: %w", err)
	}
	return ids, nil
}

func (r *SQLiteRepository) scanOne(row *sql.Row) (*models.User, error) {
	var (
		u                    models.User
		createdAt, lastLogin string
	)
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.Password, &u.AccessToken, &createdAt, &lastLogin)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select user: %w", err)
	}

	if u.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("bad created_at for user %s: %w", u.ID, err)
	}
	if u.LastLogin, err = parseTime(lastLogin); err != nil {
		return nil, fmt.Errorf("bad last_login for user %s: %w", u.ID, err)
	}
	return &u, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}
