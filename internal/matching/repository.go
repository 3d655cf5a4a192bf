package matching

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// ErrProfileNotFound signals an unknown member ID.
var ErrProfileNotFound = errors.New("profile not found")

// Repository supplies profile snapshots for matching. The engine itself
// never touches storage; the service layer fetches a pool here and hands
// it over as values.
type Repository interface {
	GetProfile(ctx context.Context, id string) (*Profile, error)
	FindCandidates(ctx context.Context, requesterID string, f *PoolFilter) ([]*Profile, error)
}

// PoolFilter is the coarse SQL prefilter that bounds how many rows the
// engine has to consider. Exact distance and the cultural whitelist stay
// in the engine, where their semantics live.
type PoolFilter struct {
	MinAge int
	MaxAge int
	Limit  int
}

// languageSkillsJSON stores the language map as JSONB.
type languageSkillsJSON map[string]Proficiency

func (l *languageSkillsJSON) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("unexpected language_skills type %T", value)
	}
	return json.Unmarshal(b, l)
}

func (l languageSkillsJSON) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

// profileRow is the storage shape of a member profile.
type profileRow struct {
	ID                  string             `db:"id"`
	DisplayName         string             `db:"display_name"`
	Age                 int                `db:"age"`
	City                string             `db:"city"`
	Latitude            float64            `db:"latitude"`
	Longitude           float64            `db:"longitude"`
	Bio                 sql.NullString     `db:"bio"`
	Interests           pq.StringArray     `db:"interests"`
	CulturalBackground  pq.StringArray     `db:"cultural_background"`
	LanguageSkills      languageSkillsJSON `db:"language_skills"`
	IsVerified          bool               `db:"is_verified"`
	LastActive          time.Time          `db:"last_active"`
	SafetyScore         int                `db:"safety_score"`
	CommunityEngagement int                `db:"community_engagement"`
	PhotoURL            sql.NullString     `db:"profile_picture"`
}

func (row *profileRow) toProfile() *Profile {
	p := &Profile{
		ID:          row.ID,
		DisplayName: row.DisplayName,
		Age:         row.Age,
		Location: Location{
			City:      row.City,
			Latitude:  row.Latitude,
			Longitude: row.Longitude,
		},
		Interests:           []string(row.Interests),
		CulturalBackground:  []string(row.CulturalBackground),
		LanguageSkills:      map[string]Proficiency(row.LanguageSkills),
		IsVerified:          row.IsVerified,
		LastActive:          row.LastActive,
		SafetyScore:         row.SafetyScore,
		CommunityEngagement: row.CommunityEngagement,
	}
	if row.Bio.Valid {
		p.Bio = row.Bio.String
	}
	if row.PhotoURL.Valid {
		url := row.PhotoURL.String
		p.PhotoURL = &url
	}
	return p
}

const profileColumns = `
	m.id, m.display_name,
	DATE_PART('year', AGE(m.date_of_birth))::int AS age,
	m.city, m.latitude, m.longitude, m.bio,
	m.interests, m.cultural_background, m.language_skills,
	m.is_verified, m.last_active, m.safety_score,
	COALESCE(m.community_engagement, 0) AS community_engagement,
	m.profile_picture`

type postgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository builds the PostgreSQL-backed profile source.
func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) GetProfile(ctx context.Context, id string) (*Profile, error) {
	var row profileRow
	query := `SELECT ` + profileColumns + ` FROM members m WHERE m.id = $1`

	err := r.db.GetContext(ctx, &row, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return row.toProfile(), nil
}

func (r *postgresRepository) FindCandidates(ctx context.Context, requesterID string, f *PoolFilter) ([]*Profile, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 500
	}

	query := `
		SELECT ` + profileColumns + `
		FROM members m
		WHERE m.id != $1
		  AND m.is_active = TRUE
		  AND DATE_PART('year', AGE(m.date_of_birth)) BETWEEN $2 AND $3
		ORDER BY m.last_active DESC
		LIMIT $4
	`

	var rows []profileRow
	err := r.db.SelectContext(ctx, &rows, query, requesterID, f.MinAge, f.MaxAge, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to find candidates: %w", err)
	}

	pool := make([]*Profile, 0, len(rows))
	for i := range rows {
		pool = append(pool, rows[i].toProfile())
	}
	return pool, nil
}
