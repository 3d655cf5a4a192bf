package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine() Engine {
	return NewEngine(NewSafetyValidator())
}

func TestFindMatchesRejectsInvalidCriteria(t *testing.T) {
	e := newTestEngine()
	requester := eligibleProfile("me")

	cases := []*FilterCriteria{
		nil,
		{AgeRange: AgeRange{Min: 40, Max: 30}, MaxDistanceKm: 50},
		{AgeRange: AgeRange{Min: 18, Max: 65}, MaxDistanceKm: -1},
	}

	for _, criteria := range cases {
		_, err := e.FindMatches(requester, nil, criteria, 10)
		assert.ErrorIs(t, err, ErrInvalidCriteria)
	}
}

func TestFindMatchesRejectsMissingRequester(t *testing.T) {
	e := newTestEngine()

	_, err := e.FindMatches(nil, nil, openCriteria(), 10)
	assert.ErrorIs(t, err, ErrInvalidCriteria)
}

func TestFindMatchesRejectsBadCoordinates(t *testing.T) {
	e := newTestEngine()

	requester := eligibleProfile("me")
	requester.Location.Latitude = 95
	_, err := e.FindMatches(requester, nil, openCriteria(), 10)
	assert.ErrorIs(t, err, ErrInvalidCriteria)

	bad := eligibleProfile("bad")
	bad.Location.Longitude = -200
	_, err = e.FindMatches(eligibleProfile("me"), []*Profile{bad}, openCriteria(), 10)
	assert.ErrorIs(t, err, ErrInvalidCriteria)
}

func TestFindMatchesRequesterIneligible(t *testing.T) {
	e := newTestEngine()

	requester := eligibleProfile("me")
	requester.SafetyScore = 1

	_, err := e.FindMatches(requester, []*Profile{eligibleProfile("other")}, openCriteria(), 10)
	assert.ErrorIs(t, err, ErrRequesterIneligible)
	assert.NotErrorIs(t, err, ErrInvalidCriteria)
}

func TestFindMatchesEmptyPoolIsSuccess(t *testing.T) {
	e := newTestEngine()

	out, err := e.FindMatches(eligibleProfile("me"), nil, openCriteria(), 10)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestFindMatchesFullPipeline(t *testing.T) {
	e := newTestEngine()

	requester := eligibleProfile("me")
	requester.Interests = []string{"fado", "football"}

	strong := eligibleProfile("strong")
	strong.Interests = []string{"fado", "football"}
	weaker := eligibleProfile("weaker")
	ineligible := eligibleProfile("scam")
	ineligible.Bio = "wire transfer me your savings"

	out, err := e.FindMatches(requester, []*Profile{weaker, strong, ineligible}, openCriteria(), 10)
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, "strong", out[0].Profile.ID)
	for _, m := range out {
		assert.GreaterOrEqual(t, m.Compatibility.Overall, MinimumCompatibility)
		assert.NotEmpty(t, m.Compatibility.ConnectionReasons)
		assert.NotEmpty(t, m.Compatibility.RecommendedIcebreakers)
	}
}

func TestScorePairSkipsFiltering(t *testing.T) {
	e := newTestEngine()

	// A candidate outside any reasonable distance still gets scored.
	faraway := eligibleProfile("faraway")
	faraway.Location = Location{City: "São Paulo", Latitude: -23.5505, Longitude: -46.6333}

	match, err := e.ScorePair(eligibleProfile("me"), faraway, LanguageEnglish)
	require.NoError(t, err)
	assert.Equal(t, "faraway", match.Profile.ID)
	assert.Greater(t, match.Compatibility.Overall, 0)
}

func TestScorePairValidation(t *testing.T) {
	e := newTestEngine()

	_, err := e.ScorePair(eligibleProfile("me"), nil, LanguageEnglish)
	assert.ErrorIs(t, err, ErrInvalidCriteria)

	bad := eligibleProfile("bad")
	bad.Location.Latitude = 120
	_, err = e.ScorePair(eligibleProfile("me"), bad, LanguageEnglish)
	assert.ErrorIs(t, err, ErrInvalidCriteria)

	blocked := eligibleProfile("me")
	blocked.Age = 16
	_, err = e.ScorePair(blocked, eligibleProfile("other"), LanguageEnglish)
	assert.ErrorIs(t, err, ErrRequesterIneligible)
}
