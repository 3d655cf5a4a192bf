package matching

import "time"

// DTOs for the match API.

type SearchMatchesRequest struct {
	Filters MatchFiltersDTO `json:"filters" validate:"required"`
	Limit   int             `json:"limit,omitempty" validate:"omitempty,min=1,max=50"`
}

type MatchFiltersDTO struct {
	MinAge              int      `json:"min_age" validate:"required,min=18,max=120"`
	MaxAge              int      `json:"max_age" validate:"required,min=18,max=120"`
	MaxDistanceKm       float64  `json:"max_distance_km" validate:"min=0"`
	CulturalBackgrounds []string `json:"cultural_backgrounds,omitempty" validate:"omitempty,dive,min=2,max=2"`
	Interests           []string `json:"interests,omitempty" validate:"omitempty,max=20,dive,min=1,max=50"`
	VerifiedOnly        bool     `json:"verified_only"`
	LanguagePreference  string   `json:"language_preference,omitempty" validate:"omitempty,oneof=portuguese english bilingual"`
}

// toCriteria maps the wire filters onto the engine's criteria value.
func (f *MatchFiltersDTO) toCriteria() *FilterCriteria {
	pref := LanguagePreference(f.LanguagePreference)
	if pref == "" {
		pref = LanguageBilingual
	}
	return &FilterCriteria{
		AgeRange:            AgeRange{Min: f.MinAge, Max: f.MaxAge},
		MaxDistanceKm:       f.MaxDistanceKm,
		CulturalBackgrounds: f.CulturalBackgrounds,
		Interests:           f.Interests,
		VerifiedOnly:        f.VerifiedOnly,
		LanguagePreference:  pref,
	}
}

// ProfileSummary is the subset of a profile shown on a match card.
type ProfileSummary struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Age         int       `json:"age"`
	City        string    `json:"city"`
	IsVerified  bool      `json:"is_verified"`
	LastActive  time.Time `json:"last_active"`
	PhotoURL    *string   `json:"photo_url,omitempty"`
}

type MatchSummary struct {
	Profile                ProfileSummary `json:"profile"`
	OverallScore           int            `json:"overall_score"`
	SharedElements         []string       `json:"shared_elements"`
	ConnectionReasons      []string       `json:"connection_reasons"`
	RecommendedIcebreakers []string       `json:"recommended_icebreakers"`
}

type SearchMatchesResponse struct {
	Matches []MatchSummary `json:"matches"`
	Total   int            `json:"total"`
}

// Error kinds on the wire, distinct so clients can message them apart.
const (
	ErrorKindInvalidCriteria     = "invalid_criteria"
	ErrorKindRequesterIneligible = "requester_ineligible"
)

func toMatchSummary(m *ScoredMatch) MatchSummary {
	return MatchSummary{
		Profile: ProfileSummary{
			ID:          m.Profile.ID,
			DisplayName: m.Profile.DisplayName,
			Age:         m.Profile.Age,
			City:        m.Profile.Location.City,
			IsVerified:  m.Profile.IsVerified,
			LastActive:  m.Profile.LastActive,
			PhotoURL:    m.Profile.PhotoURL,
		},
		OverallScore:           m.Compatibility.Overall,
		SharedElements:         m.Compatibility.SharedElements,
		ConnectionReasons:      m.Compatibility.ConnectionReasons,
		RecommendedIcebreakers: m.Compatibility.RecommendedIcebreakers,
	}
}
