package matching

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCriteria signals malformed filter criteria or an
	// out-of-range coordinate on any involved profile. Surfaced before any
	// scoring work; no partial results accompany it.
	ErrInvalidCriteria = errors.New("invalid match criteria")

	// ErrRequesterIneligible signals that the requester themself fails the
	// safety floor. Distinct from an empty result so callers can present a
	// different message than "no matches found".
	ErrRequesterIneligible = errors.New("requester not eligible for matching")
)

// Engine is the single public entry point of the matching pipeline:
// filter, score, rank, explain. Stateless and side-effect free; concurrent
// calls need no coordination.
type Engine interface {
	// FindMatches runs the full pipeline and returns ranked, annotated
	// matches. An empty slice is a valid success.
	FindMatches(requester *Profile, pool []*Profile, criteria *FilterCriteria, limit int) ([]*ScoredMatch, error)

	// ScorePair scores and annotates a single pair without filtering.
	ScorePair(requester, candidate *Profile, pref LanguagePreference) (*ScoredMatch, error)
}

type engine struct {
	safety    *SafetyValidator
	filter    *CandidateFilter
	scorer    *CompatibilityScorer
	ranker    *MatchRanker
	explainer *ExplanationGenerator
}

// NewEngine wires the pipeline around the given safety validator.
func NewEngine(safety *SafetyValidator) Engine {
	filter := NewCandidateFilter(safety)
	scorer := NewCompatibilityScorer()
	return &engine{
		safety:    safety,
		filter:    filter,
		scorer:    scorer,
		ranker:    NewMatchRanker(filter, scorer),
		explainer: NewExplanationGenerator(),
	}
}

func (e *engine) FindMatches(requester *Profile, pool []*Profile, criteria *FilterCriteria, limit int) ([]*ScoredMatch, error) {
	// All validation happens before any scoring work begins.
	if err := validateRequest(requester, pool, criteria); err != nil {
		return nil, err
	}
	if !e.safety.IsEligible(requester) {
		return nil, ErrRequesterIneligible
	}

	timer := StartSearchTimer()
	matches := e.ranker.Rank(requester, pool, criteria, limit)
	for _, m := range matches {
		e.explainer.Annotate(requester, m, criteria.LanguagePreference)
	}
	timer.Done(len(pool), len(matches))

	return matches, nil
}

func (e *engine) ScorePair(requester, candidate *Profile, pref LanguagePreference) (*ScoredMatch, error) {
	if requester == nil || candidate == nil {
		return nil, fmt.Errorf("%w: missing profile", ErrInvalidCriteria)
	}
	if !ValidCoordinates(requester.Location.Latitude, requester.Location.Longitude) ||
		!ValidCoordinates(candidate.Location.Latitude, candidate.Location.Longitude) {
		return nil, fmt.Errorf("%w: coordinates out of range", ErrInvalidCriteria)
	}
	if !e.safety.IsEligible(requester) {
		return nil, ErrRequesterIneligible
	}

	breakdown, factors := e.scorer.Score(requester, candidate)
	match := &ScoredMatch{Profile: candidate, Compatibility: breakdown, factors: factors}
	e.explainer.Annotate(requester, match, pref)
	return match, nil
}

func validateRequest(requester *Profile, pool []*Profile, criteria *FilterCriteria) error {
	if requester == nil {
		return fmt.Errorf("%w: missing requester profile", ErrInvalidCriteria)
	}
	if criteria == nil {
		return fmt.Errorf("%w: missing criteria", ErrInvalidCriteria)
	}
	if criteria.AgeRange.Min > criteria.AgeRange.Max {
		return fmt.Errorf("%w: age range min %d exceeds max %d",
			ErrInvalidCriteria, criteria.AgeRange.Min, criteria.AgeRange.Max)
	}
	if criteria.MaxDistanceKm < 0 {
		return fmt.Errorf("%w: negative max distance", ErrInvalidCriteria)
	}
	if !ValidCoordinates(requester.Location.Latitude, requester.Location.Longitude) {
		return fmt.Errorf("%w: requester coordinates out of range", ErrInvalidCriteria)
	}
	for _, c := range pool {
		if !ValidCoordinates(c.Location.Latitude, c.Location.Longitude) {
			return fmt.Errorf("%w: candidate %s coordinates out of range", ErrInvalidCriteria, c.ID)
		}
	}
	return nil
}
