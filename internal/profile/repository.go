// internal/profile/repository.go

package profile

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Repository defines the member-profile store.
type Repository interface {
	CreateMember(ctx context.Context, member *Member) error
	GetMember(ctx context.Context, id string) (*Member, error)
	UpdateMember(ctx context.Context, id string, req *UpdateMemberRequest) (*Member, error)
	UpdateProfilePicture(ctx context.Context, id string, url string) error
	TouchLastActive(ctx context.Context, id string) error
}

type postgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateMember(ctx context.Context, member *Member) error {
	query := `
		INSERT INTO members (
			id, display_name, bio, date_of_birth, city, latitude, longitude,
			interests, cultural_background, language_skills, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, TRUE)
		RETURNING created_at, updated_at, last_active
	`

	err := r.db.QueryRowxContext(
		ctx, query,
		member.ID, member.DisplayName, member.Bio, member.DateOfBirth,
		member.City, member.Latitude, member.Longitude,
		member.Interests, member.CulturalBackground, member.LanguageSkills,
	).Scan(&member.CreatedAt, &member.UpdatedAt, &member.LastActive)
	if err != nil {
		return fmt.Errorf("failed to create member: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetMember(ctx context.Context, id string) (*Member, error) {
	var member Member
	err := r.db.GetContext(ctx, &member, `SELECT * FROM members WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return &member, nil
}

func (r *postgresRepository) UpdateMember(ctx context.Context, id string, req *UpdateMemberRequest) (*Member, error) {
	member, err := r.GetMember(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		member.DisplayName = *req.DisplayName
	}
	if req.Bio != nil {
		member.Bio = req.Bio
	}
	if req.City != nil {
		member.City = *req.City
	}
	if req.Latitude != nil {
		member.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		member.Longitude = *req.Longitude
	}
	if req.Interests != nil {
		member.Interests = pq.StringArray(req.Interests)
	}
	if req.CulturalBackground != nil {
		member.CulturalBackground = pq.StringArray(req.CulturalBackground)
	}
	if req.LanguageSkills != nil {
		member.LanguageSkills = LanguageSkills(req.LanguageSkills)
	}

	query := `
		UPDATE members
		SET display_name = $2, bio = $3, city = $4, latitude = $5, longitude = $6,
		    interests = $7, cultural_background = $8, language_skills = $9,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING updated_at
	`

	err = r.db.QueryRowxContext(
		ctx, query,
		member.ID, member.DisplayName, member.Bio, member.City,
		member.Latitude, member.Longitude,
		member.Interests, member.CulturalBackground, member.LanguageSkills,
	).Scan(&member.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to update member: %w", err)
	}

	return member, nil
}

func (r *postgresRepository) UpdateProfilePicture(ctx context.Context, id string, url string) error {
	_, err := r.db.ExecContext(
		ctx,
		`UPDATE members SET profile_picture = $2, updated_at = CURRENT_TIMESTAMP WHERE id = $1`,
		id, url,
	)
	return err
}

func (r *postgresRepository) TouchLastActive(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(
		ctx,
		`UPDATE members SET last_active = $2 WHERE id = $1`,
		id, time.Now(),
	)
	return err
}
