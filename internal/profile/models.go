package profile

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
)

var ErrProfileNotFound = errors.New("profile not found")

// LanguageSkills maps a language code to a proficiency level, stored as
// JSONB.
type LanguageSkills map[string]string

func (l *LanguageSkills) Scan(value interface{}) error {
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

func (l LanguageSkills) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

// Member is a community member's profile record.
type Member struct {
	ID                  string         `json:"id" db:"id"`
	DisplayName         string         `json:"display_name" db:"display_name"`
	Bio                 *string        `json:"bio,omitempty" db:"bio"`
	DateOfBirth         time.Time      `json:"date_of_birth" db:"date_of_birth"`
	City                string         `json:"city" db:"city"`
	Latitude            float64        `json:"latitude" db:"latitude"`
	Longitude           float64        `json:"longitude" db:"longitude"`
	Interests           pq.StringArray `json:"interests" db:"interests"`
	CulturalBackground  pq.StringArray `json:"cultural_background" db:"cultural_background"`
	LanguageSkills      LanguageSkills `json:"language_skills" db:"language_skills"`
	ProfilePicture      *string        `json:"profile_picture,omitempty" db:"profile_picture"`
	IsVerified          bool           `json:"is_verified" db:"is_verified"`
	IsActive            bool           `json:"is_active" db:"is_active"`
	SafetyScore         int            `json:"safety_score" db:"safety_score"`
	CommunityEngagement int            `json:"community_engagement" db:"community_engagement"`
	LastActive          time.Time      `json:"last_active" db:"last_active"`
	CreatedAt           time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at" db:"updated_at"`
}

// Age derives the member's age in whole years.
func (m *Member) Age() int {
	now := time.Now()
	age := now.Year() - m.DateOfBirth.Year()
	if now.YearDay() < m.DateOfBirth.YearDay() {
		age--
	}
	return age
}

// UpdateMemberRequest carries a partial profile update.
type UpdateMemberRequest struct {
	DisplayName        *string           `json:"display_name,omitempty" validate:"omitempty,min=2,max=100"`
	Bio                *string           `json:"bio,omitempty" validate:"omitempty,max=500"`
	City               *string           `json:"city,omitempty" validate:"omitempty,max=100"`
	Latitude           *float64          `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude          *float64          `json:"longitude,omitempty" validate:"omitempty,longitude"`
	Interests          []string          `json:"interests,omitempty" validate:"omitempty,max=20,dive,min=1,max=50"`
	CulturalBackground []string          `json:"cultural_background,omitempty" validate:"omitempty,max=5,dive,min=2,max=2"`
	LanguageSkills     map[string]string `json:"language_skills,omitempty" validate:"omitempty,dive,oneof=native fluent intermediate basic"`
}

// SetupMemberRequest creates the initial profile after signup.
type SetupMemberRequest struct {
	DisplayName        string            `json:"display_name" validate:"required,min=2,max=100"`
	DateOfBirth        string            `json:"date_of_birth" validate:"required"`
	Bio                string            `json:"bio,omitempty" validate:"omitempty,max=500"`
	City               string            `json:"city" validate:"required,max=100"`
	Latitude           float64           `json:"latitude" validate:"latitude"`
	Longitude          float64           `json:"longitude" validate:"longitude"`
	Interests          []string          `json:"interests" validate:"omitempty,max=20,dive,min=1,max=50"`
	CulturalBackground []string          `json:"cultural_background" validate:"required,min=1,max=5,dive,min=2,max=2"`
	LanguageSkills     map[string]string `json:"language_skills" validate:"omitempty,dive,oneof=native fluent intermediate basic"`
}
