package matching

// CandidateFilter applies the hard constraints that shrink a candidate
// pool before any scoring happens. Order of survivors is not meaningful;
// the ranker imposes a total order afterwards.
type CandidateFilter struct {
	safety *SafetyValidator
}

// NewCandidateFilter builds a filter backed by the given safety validator.
func NewCandidateFilter(safety *SafetyValidator) *CandidateFilter {
	return &CandidateFilter{safety: safety}
}

// Filter returns the candidates that survive every hard constraint.
// An empty pool yields an empty result, never an error.
func (f *CandidateFilter) Filter(requester *Profile, pool []*Profile, criteria *FilterCriteria) []*Profile {
	survivors := make([]*Profile, 0, len(pool))
	for _, c := range pool {
		if f.passes(requester, c, criteria) {
			survivors = append(survivors, c)
		}
	}
	return survivors
}

func (f *CandidateFilter) passes(requester, c *Profile, criteria *FilterCriteria) bool {
	// Never match a member with themself.
	if c.ID == requester.ID {
		return false
	}

	if !f.safety.IsEligible(c) {
		return false
	}

	if c.Age < criteria.AgeRange.Min || c.Age > criteria.AgeRange.Max {
		return false
	}

	if criteria.VerifiedOnly && !c.IsVerified {
		return false
	}

	distance := DistanceKm(
		requester.Location.Latitude, requester.Location.Longitude,
		c.Location.Latitude, c.Location.Longitude,
	)
	if distance > criteria.MaxDistanceKm {
		return false
	}

	// Cultural-background whitelist: empty means no restriction.
	if len(criteria.CulturalBackgrounds) > 0 {
		matched := false
		for _, code := range criteria.CulturalBackgrounds {
			if c.HasBackground(code) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	return true
}
