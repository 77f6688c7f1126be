package profiles

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/profilesync/internal/client/models"
	"github.com/dmitrijs2005/profilesync/internal/common"
	"github.com/dmitrijs2005/profilesync/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, userID string) (*models.Profile, error) {
	query := `SELECT name, birthday, height, weight, interests, gender, profile_image,
			height_unit, height_feet, height_inches
		FROM profiles WHERE user_id = ?`

	var (
		p         models.Profile
		interests string
	)
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&p.Name, &p.Birthday, &p.Height, &p.Weight, &interests, &p.Gender, &p.ProfileImage,
		&p.HeightUnit, &p.HeightFeet, &p.HeightInches)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select profile: %w", err)
	}

	p.Interests = []string{}
	if interests != "" {
		if err := json.Unmarshal([]byte(interests), &p.Interests); err != nil {
			return nil, fmt.Errorf("failed to decode interests of %s: %w", userID, err)
		}
	}
	return &p, nil
}

func (r *SQLiteRepository) Save(ctx context.Context, userID string, p models.Profile) error {
	if p.Interests == nil {
		p.Interests = []string{}
	}
	interests, err := json.Marshal(p.Interests)
	if err != nil {
		return fmt.Errorf("failed to encode interests: %w", err)
	}

	query := `INSERT INTO profiles (user_id, name, birthday, height, weight, interests, gender,
			profile_image, height_unit, height_feet, height_inches)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET name = excluded.name,
			birthday = excluded.birthday,
			height = excluded.height,
			weight = excluded.weight,
			interests = excluded.interests,
			gender = excluded.gender,
			profile_image = excluded.profile_image,
			height_unit = excluded.height_unit,
			height_feet = excluded.height_feet,
			height_inches = excluded.height_inches`

	_, err = r.db.ExecContext(ctx, query, userID,
		p.Name, p.Birthday, p.Height, p.Weight, string(interests), p.Gender,
		p.ProfileImage, p.HeightUnit, p.HeightFeet, p.HeightInches)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	return nil
}
