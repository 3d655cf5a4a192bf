package matching

// Scoring weights and thresholds. Product-tuned values carried over from
// the matching playbook; flagged for future tuning rather than re-derived.
const (
	// RegionalMatchWeight is awarded when both members share at least one
	// identical cultural-background code.
	RegionalMatchWeight = 30

	// CrossCulturalBonus rewards pairs from different lusophone backgrounds
	// when both declare at least one code.
	CrossCulturalBonus = 15

	// InterestPointsPerMatch scores each shared interest, capped at
	// InterestWeightCap.
	InterestPointsPerMatch = 10
	InterestWeightCap      = 40

	// Community-involvement bands on the pair's average engagement count.
	CommunityFullThreshold    = 5
	CommunityFullWeight       = 20
	CommunityPartialThreshold = 2
	CommunityPartialWeight    = 15

	// VerificationBonus applies when both members completed heritage
	// verification.
	VerificationBonus = 10
)

// CompatibilityScorer computes the weighted 0-100 score for one pair.
// Stateless and deterministic: identical inputs always produce identical
// output.
type CompatibilityScorer struct{}

// NewCompatibilityScorer returns a scorer with the standard weights.
func NewCompatibilityScorer() *CompatibilityScorer {
	return &CompatibilityScorer{}
}

// Score fills the score-derived fields of a CompatibilityBreakdown:
// Overall and SharedElements. Connection reasons and icebreakers are the
// explanation generator's job.
func (s *CompatibilityScorer) Score(requester, candidate *Profile) (CompatibilityBreakdown, FactorScores) {
	factors := FactorScores{
		Region:       s.regionalScore(requester, candidate),
		Interests:    s.interestScore(requester, candidate),
		Community:    s.communityScore(requester, candidate),
		Verification: s.verificationScore(requester, candidate),
	}

	overall := factors.Region + factors.Interests + factors.Community + factors.Verification
	if overall < 0 {
		overall = 0
	}
	if overall > 100 {
		overall = 100
	}

	return CompatibilityBreakdown{
		Overall:        overall,
		SharedElements: SharedBackgrounds(requester, candidate),
	}, factors
}

func (s *CompatibilityScorer) regionalScore(requester, candidate *Profile) int {
	if len(requester.CulturalBackground) == 0 || len(candidate.CulturalBackground) == 0 {
		return 0
	}
	for _, code := range requester.CulturalBackground {
		if candidate.HasBackground(code) {
			return RegionalMatchWeight
		}
	}
	// Both declare a heritage but none in common: cross-cultural exchange.
	return CrossCulturalBonus
}

func (s *CompatibilityScorer) interestScore(requester, candidate *Profile) int {
	shared := len(SharedInterests(requester, candidate))
	score := shared * InterestPointsPerMatch
	if score > InterestWeightCap {
		return InterestWeightCap
	}
	return score
}

func (s *CompatibilityScorer) communityScore(requester, candidate *Profile) int {
	avg := float64(requester.CommunityEngagement+candidate.CommunityEngagement) / 2
	switch {
	case avg >= CommunityFullThreshold:
		return CommunityFullWeight
	case avg >= CommunityPartialThreshold:
		return CommunityPartialWeight
	default:
		return 0
	}
}

func (s *CompatibilityScorer) verificationScore(requester, candidate *Profile) int {
	if requester.IsVerified && candidate.IsVerified {
		return VerificationBonus
	}
	return 0
}

// SharedInterests returns the interest tags both profiles list, in the
// requester's order.
func SharedInterests(requester, candidate *Profile) []string {
	var shared []string
	for _, tag := range requester.Interests {
		if candidate.HasInterest(tag) {
			shared = append(shared, tag)
		}
	}
	return shared
}

// SharedBackgrounds returns the cultural-background codes both profiles
// list, in the requester's order.
func SharedBackgrounds(requester, candidate *Profile) []string {
	var shared []string
	for _, code := range requester.CulturalBackground {
		if candidate.HasBackground(code) {
			shared = append(shared, code)
		}
	}
	return shared
}
