package matching

import "time"

// eligibleProfile builds a profile that clears every safety check, located
// in central London. Tests tweak individual fields from this baseline.
func eligibleProfile(id string) *Profile {
	return &Profile{
		ID:                 id,
		DisplayName:        "Member " + id,
		Age:                30,
		Location:           Location{City: "London", Latitude: 51.5074, Longitude: -0.1278},
		Interests:          []string{"fado"},
		CulturalBackground: []string{"PT"},
		LanguageSkills: map[string]Proficiency{
			"portuguese": ProficiencyNative,
			"english":    ProficiencyFluent,
		},
		IsVerified:          true,
		LastActive:          time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		SafetyScore:         8,
		CommunityEngagement: 6,
	}
}

func openCriteria() *FilterCriteria {
	return &FilterCriteria{
		AgeRange:           AgeRange{Min: 18, Max: 65},
		MaxDistanceKm:      500,
		LanguagePreference: LanguagePortuguese,
	}
}
