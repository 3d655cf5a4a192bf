package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafetyEligibleBaseline(t *testing.T) {
	v := NewSafetyValidator()
	assert.True(t, v.IsEligible(eligibleProfile("a")))
}

func TestSafetyRejectsNil(t *testing.T) {
	v := NewSafetyValidator()
	assert.False(t, v.IsEligible(nil))
}

func TestSafetyRejectsUnderage(t *testing.T) {
	v := NewSafetyValidator()
	p := eligibleProfile("a")
	p.Age = 17
	assert.False(t, v.IsEligible(p))

	p.Age = 18
	assert.True(t, v.IsEligible(p))
}

func TestSafetyRejectsUnverified(t *testing.T) {
	v := NewSafetyValidator()
	p := eligibleProfile("a")
	p.IsVerified = false
	assert.False(t, v.IsEligible(p))
}

func TestSafetyScoreFloor(t *testing.T) {
	v := NewSafetyValidator()

	p := eligibleProfile("a")
	p.SafetyScore = 4
	assert.False(t, v.IsEligible(p))

	p.SafetyScore = 5
	assert.True(t, v.IsEligible(p))
}

func TestSafetyScoreFloorOverride(t *testing.T) {
	v := NewSafetyValidator().WithMinSafetyScore(7)

	p := eligibleProfile("a")
	p.SafetyScore = 6
	assert.False(t, v.IsEligible(p))

	p.SafetyScore = 7
	assert.True(t, v.IsEligible(p))
}

func TestSafetyBlockedPhrases(t *testing.T) {
	v := NewSafetyValidator()

	cases := map[string]bool{
		"":                                        true,
		"Fado lover from Porto, miss the ocean.":  true,
		"DM me about investment opportunities!":   false,
		"Please SEND MONEY for my ticket home":    false,
		"guaranteed returns on crypto trading":    false,
		"I promise great Investment Opportunity.": false,
	}

	for bio, want := range cases {
		p := eligibleProfile("a")
		p.Bio = bio
		assert.Equal(t, want, v.IsEligible(p), "bio: %q", bio)
	}
}

func TestSafetyExtraPhrasesFromConfig(t *testing.T) {
	v := NewSafetyValidator("pyramid scheme", "  ")

	p := eligibleProfile("a")
	p.Bio = "Join my Pyramid Scheme today"
	assert.False(t, v.IsEligible(p))
}
