package matching

import (
	"strings"
)

const (
	// MinimumAge is the age floor for appearing in any match results.
	MinimumAge = 18

	// MinimumSafetyScore is the trust-system floor (0-10 scale) a profile
	// must clear. Tuned centrally; override via NewSafetyValidator.
	MinimumSafetyScore = 5
)

// defaultBlockedPhrases are financial-solicitation and scam phrasings that
// disqualify a bio outright. The deployed list extends this via config.
var defaultBlockedPhrases = []string{
	"investment opportunities",
	"investment opportunity",
	"send money",
	"wire transfer",
	"crypto trading",
	"forex trading",
	"guaranteed returns",
	"sugar daddy",
	"sugar mommy",
	"cash app",
	"onlyfans",
}

// SafetyValidator decides whether a profile may ever appear in match
// results, independent of who is asking. Pure predicate, no side effects.
type SafetyValidator struct {
	minAge         int
	minSafetyScore int
	blockedPhrases []string
}

// NewSafetyValidator builds a validator with the default thresholds plus
// any extra blocked phrases loaded from configuration.
func NewSafetyValidator(extraPhrases ...string) *SafetyValidator {
	phrases := make([]string, 0, len(defaultBlockedPhrases)+len(extraPhrases))
	for _, p := range defaultBlockedPhrases {
		phrases = append(phrases, strings.ToLower(p))
	}
	for _, p := range extraPhrases {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			phrases = append(phrases, p)
		}
	}

	return &SafetyValidator{
		minAge:         MinimumAge,
		minSafetyScore: MinimumSafetyScore,
		blockedPhrases: phrases,
	}
}

// WithMinSafetyScore overrides the trust-score floor. Used by deployments
// that run a stricter bar than the default.
func (v *SafetyValidator) WithMinSafetyScore(score int) *SafetyValidator {
	v.minSafetyScore = score
	return v
}

// IsEligible reports whether a profile clears the safety floor: adult,
// verified, trusted, and with a bio free of disallowed content.
func (v *SafetyValidator) IsEligible(profile *Profile) bool {
	if profile == nil {
		return false
	}
	if profile.Age < v.minAge {
		return false
	}
	if !profile.IsVerified {
		return false
	}
	if profile.SafetyScore < v.minSafetyScore {
		return false
	}
	return !v.containsBlockedContent(profile.Bio)
}

func (v *SafetyValidator) containsBlockedContent(bio string) bool {
	if bio == "" {
		return false
	}
	lower := strings.ToLower(bio)
	for _, phrase := range v.blockedPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
