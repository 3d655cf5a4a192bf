package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func annotated(t *testing.T, requester, candidate *Profile, pref LanguagePreference) *ScoredMatch {
	t.Helper()

	breakdown, factors := NewCompatibilityScorer().Score(requester, candidate)
	match := &ScoredMatch{Profile: candidate, Compatibility: breakdown, factors: factors}
	NewExplanationGenerator().Annotate(requester, match, pref)
	return match
}

func TestAnnotatePortuguese(t *testing.T) {
	match := annotated(t, eligibleProfile("me"), eligibleProfile("other"), LanguagePortuguese)

	assert.Contains(t, match.Compatibility.ConnectionReasons, "Partilham herança portuguesa")
	assert.NotEmpty(t, match.Compatibility.RecommendedIcebreakers)
	for _, reason := range match.Compatibility.ConnectionReasons {
		assert.NotContains(t, reason, "You share")
	}
}

func TestAnnotateEnglish(t *testing.T) {
	match := annotated(t, eligibleProfile("me"), eligibleProfile("other"), LanguageEnglish)

	assert.Contains(t, match.Compatibility.ConnectionReasons, "You share Portuguese heritage")
}

func TestAnnotateBilingualFollowsStrongerLanguage(t *testing.T) {
	requester := eligibleProfile("me")
	requester.LanguageSkills = map[string]Proficiency{
		"portuguese": ProficiencyBasic,
		"english":    ProficiencyNative,
	}

	match := annotated(t, requester, eligibleProfile("other"), LanguageBilingual)
	assert.Contains(t, match.Compatibility.ConnectionReasons, "You share Portuguese heritage")
}

func TestAnnotateBilingualTieFavoursPortuguese(t *testing.T) {
	requester := eligibleProfile("me")
	requester.LanguageSkills = map[string]Proficiency{
		"portuguese": ProficiencyFluent,
		"english":    ProficiencyFluent,
	}

	match := annotated(t, requester, eligibleProfile("other"), LanguageBilingual)
	assert.Contains(t, match.Compatibility.ConnectionReasons, "Partilham herança portuguesa")
}

func TestAnnotateCrossCulturalReason(t *testing.T) {
	requester := eligibleProfile("me")
	other := eligibleProfile("other")
	other.CulturalBackground = []string{"BR"}

	match := annotated(t, requester, other, LanguageEnglish)
	assert.Contains(t, match.Compatibility.ConnectionReasons,
		"A chance for cross-cultural exchange between lusophone communities")
}

func TestIcebreakersCappedWithoutPadding(t *testing.T) {
	many := []string{"fado", "football", "cooking", "networking", "community_events", "brazilian_music", "language_exchange"}
	requester := eligibleProfile("me")
	requester.Interests = many
	other := eligibleProfile("other")
	other.Interests = many

	match := annotated(t, requester, other, LanguageEnglish)
	assert.Len(t, match.Compatibility.RecommendedIcebreakers, MaxIcebreakers)
}

func TestIcebreakersNoPaddingWhenLittleShared(t *testing.T) {
	requester := eligibleProfile("me")
	requester.Interests = []string{"fado"}
	requester.CulturalBackground = nil
	other := eligibleProfile("other")
	other.CulturalBackground = nil

	match := annotated(t, requester, other, LanguageEnglish)
	assert.Len(t, match.Compatibility.RecommendedIcebreakers, 1)
}

func TestIcebreakerUnknownInterestFallsBack(t *testing.T) {
	requester := eligibleProfile("me")
	requester.Interests = []string{"surfing"}
	requester.CulturalBackground = nil
	other := eligibleProfile("other")
	other.Interests = []string{"surfing"}
	other.CulturalBackground = nil

	match := annotated(t, requester, other, LanguageEnglish)
	assert.Len(t, match.Compatibility.RecommendedIcebreakers, 1)
	assert.Contains(t, match.Compatibility.RecommendedIcebreakers[0], "surfing")
}

func TestIcebreakersIncludeCulturalPlaces(t *testing.T) {
	requester := eligibleProfile("me")
	requester.Interests = nil
	other := eligibleProfile("other")
	other.Interests = nil

	match := annotated(t, requester, other, LanguageEnglish)
	assert.Contains(t, match.Compatibility.RecommendedIcebreakers, "What do you miss most about Portugal?")
}
