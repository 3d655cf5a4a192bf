package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreSharedHeritagePair(t *testing.T) {
	s := NewCompatibilityScorer()

	// Shared PT heritage, one shared interest, strong engagement, both
	// verified: 30 + 10 + 20 + 10.
	breakdown, factors := s.Score(eligibleProfile("a"), eligibleProfile("b"))

	assert.Equal(t, RegionalMatchWeight, factors.Region)
	assert.Equal(t, InterestPointsPerMatch, factors.Interests)
	assert.Equal(t, CommunityFullWeight, factors.Community)
	assert.Equal(t, VerificationBonus, factors.Verification)
	assert.Equal(t, 70, breakdown.Overall)
	assert.Equal(t, []string{"PT"}, breakdown.SharedElements)
}

func TestScoreCrossCultural(t *testing.T) {
	s := NewCompatibilityScorer()

	pt := eligibleProfile("pt")
	br := eligibleProfile("br")
	br.CulturalBackground = []string{"BR"}

	_, factors := s.Score(pt, br)
	assert.Equal(t, CrossCulturalBonus, factors.Region)
}

func TestScoreNoHeritageDeclared(t *testing.T) {
	s := NewCompatibilityScorer()

	a := eligibleProfile("a")
	b := eligibleProfile("b")
	b.CulturalBackground = nil

	_, factors := s.Score(a, b)
	assert.Zero(t, factors.Region)
}

func TestScoreInterestCap(t *testing.T) {
	s := NewCompatibilityScorer()

	many := []string{"fado", "football", "cooking", "networking", "community_events", "brazilian_music"}
	a := eligibleProfile("a")
	a.Interests = many
	b := eligibleProfile("b")
	b.Interests = many

	_, factors := s.Score(a, b)
	assert.Equal(t, InterestWeightCap, factors.Interests)
}

func TestScoreCommunityBands(t *testing.T) {
	s := NewCompatibilityScorer()

	cases := []struct {
		a, b, want int
	}{
		{6, 6, CommunityFullWeight},
		{10, 0, CommunityFullWeight},
		{2, 2, CommunityPartialWeight},
		{3, 2, CommunityPartialWeight},
		{2, 1, 0},
		{0, 0, 0},
	}

	for _, tc := range cases {
		a := eligibleProfile("a")
		a.CommunityEngagement = tc.a
		b := eligibleProfile("b")
		b.CommunityEngagement = tc.b

		_, factors := s.Score(a, b)
		assert.Equal(t, tc.want, factors.Community, "engagement %d/%d", tc.a, tc.b)
	}
}

func TestScoreVerificationRequiresBoth(t *testing.T) {
	s := NewCompatibilityScorer()

	a := eligibleProfile("a")
	b := eligibleProfile("b")
	b.IsVerified = false

	_, factors := s.Score(a, b)
	assert.Zero(t, factors.Verification)
}

func TestScoreBounds(t *testing.T) {
	s := NewCompatibilityScorer()

	many := []string{"fado", "football", "cooking", "networking", "community_events"}
	a := eligibleProfile("a")
	a.Interests = many
	a.CommunityEngagement = 10
	b := eligibleProfile("b")
	b.Interests = many
	b.CommunityEngagement = 10

	breakdown, _ := s.Score(a, b)
	assert.Equal(t, 100, breakdown.Overall)

	stranger := &Profile{ID: "x"}
	breakdown, _ = s.Score(eligibleProfile("a"), stranger)
	assert.GreaterOrEqual(t, breakdown.Overall, 0)
}

func TestScoreDeterministic(t *testing.T) {
	s := NewCompatibilityScorer()

	b1, f1 := s.Score(eligibleProfile("a"), eligibleProfile("b"))
	b2, f2 := s.Score(eligibleProfile("a"), eligibleProfile("b"))

	assert.Equal(t, b1, b2)
	assert.Equal(t, f1, f2)
}

func TestSharedInterestsRequesterOrder(t *testing.T) {
	a := eligibleProfile("a")
	a.Interests = []string{"cooking", "fado", "football"}
	b := eligibleProfile("b")
	b.Interests = []string{"football", "cooking"}

	assert.Equal(t, []string{"cooking", "football"}, SharedInterests(a, b))
}
