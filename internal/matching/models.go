package matching

import (
	"time"
)

// LanguagePreference controls which language explanations are rendered in.
type LanguagePreference string

const (
	LanguagePortuguese LanguagePreference = "portuguese"
	LanguageEnglish    LanguagePreference = "english"
	LanguageBilingual  LanguagePreference = "bilingual"
)

// Proficiency levels for a language skill, ordered weakest to strongest.
type Proficiency string

const (
	ProficiencyBasic        Proficiency = "basic"
	ProficiencyIntermediate Proficiency = "intermediate"
	ProficiencyFluent       Proficiency = "fluent"
	ProficiencyNative       Proficiency = "native"
)

// rank maps a proficiency to a comparable weight. Unknown values rank lowest.
func (p Proficiency) rank() int {
	switch p {
	case ProficiencyNative:
		return 4
	case ProficiencyFluent:
		return 3
	case ProficiencyIntermediate:
		return 2
	case ProficiencyBasic:
		return 1
	default:
		return 0
	}
}

// Location is a member's self-reported position.
type Location struct {
	City      string  `json:"city" db:"city"`
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`
}

// Profile is the engine's read-only snapshot of a community member.
// It is borrowed from the profile store for the duration of one matching
// call and never mutated.
type Profile struct {
	ID                 string                 `json:"id"`
	DisplayName        string                 `json:"display_name"`
	Age                int                    `json:"age"`
	Location           Location               `json:"location"`
	Bio                string                 `json:"bio"`
	Interests          []string               `json:"interests"`
	CulturalBackground []string               `json:"cultural_background"`
	LanguageSkills     map[string]Proficiency `json:"language_skills"`
	IsVerified         bool                   `json:"is_verified"`
	LastActive         time.Time              `json:"last_active"`
	SafetyScore        int                    `json:"safety_score"`

	// CommunityEngagement counts events attended and contributions made.
	// Defaults to 0 for members the trust system hasn't seen yet.
	CommunityEngagement int `json:"community_engagement"`

	// Display-only extras carried through to match cards.
	PhotoURL *string `json:"photo_url,omitempty"`
}

// HasInterest reports whether the profile lists the given interest tag.
func (p *Profile) HasInterest(tag string) bool {
	for _, i := range p.Interests {
		if i == tag {
			return true
		}
	}
	return false
}

// HasBackground reports whether the profile lists the given cultural code.
func (p *Profile) HasBackground(code string) bool {
	for _, c := range p.CulturalBackground {
		if c == code {
			return true
		}
	}
	return false
}

// AgeRange is an inclusive [Min, Max] band.
type AgeRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// FilterCriteria are the per-query hard constraints supplied by the requester.
type FilterCriteria struct {
	AgeRange AgeRange `json:"age_range"`

	MaxDistanceKm float64 `json:"max_distance_km"`

	// CulturalBackgrounds restricts candidates to members sharing at least
	// one of these codes. Empty means no restriction.
	CulturalBackgrounds []string `json:"cultural_backgrounds"`

	// Interests are a soft scoring signal, never a hard filter.
	Interests []string `json:"interests"`

	VerifiedOnly bool `json:"verified_only"`

	// LanguagePreference only affects which language explanations are
	// rendered in, never filtering.
	LanguagePreference LanguagePreference `json:"language_preference"`
}

// CompatibilityBreakdown is the derived, per-query result for one pair.
// It is never persisted.
type CompatibilityBreakdown struct {
	Overall                int      `json:"overall"`
	SharedElements         []string `json:"shared_elements"`
	ConnectionReasons      []string `json:"connection_reasons"`
	RecommendedIcebreakers []string `json:"recommended_icebreakers"`
}

// FactorScores records how much each weighted factor contributed to the
// overall score. Used by the explanation generator to decide which reasons
// to render.
type FactorScores struct {
	Region       int `json:"region"`
	Interests    int `json:"interests"`
	Community    int `json:"community"`
	Verification int `json:"verification"`
}

// ScoredMatch pairs a surviving candidate with its compatibility result.
// Created fresh on every query and discarded once returned.
type ScoredMatch struct {
	Profile       *Profile               `json:"profile"`
	Compatibility CompatibilityBreakdown `json:"compatibility"`

	factors FactorScores
}

// Factors exposes the per-factor contribution for a scored match.
func (m *ScoredMatch) Factors() FactorScores {
	return m.factors
}
