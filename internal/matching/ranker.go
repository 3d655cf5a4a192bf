package matching

import (
	"sort"
	"sync"
)

const (
	// MinimumCompatibility is the hard product floor: pairs scoring below
	// it are never returned, regardless of how thin the pool is.
	MinimumCompatibility = 50

	// DefaultMatchLimit applies when the caller doesn't specify one.
	DefaultMatchLimit = 10

	// scoreWorkers bounds the goroutines scoring one pool. Per-candidate
	// work is independent, so ordering is imposed only after the fact.
	scoreWorkers = 8
)

// MatchRanker orchestrates filtering and scoring across a candidate pool,
// enforces the minimum-compatibility floor, and produces a deterministic,
// truncated ranking.
type MatchRanker struct {
	filter *CandidateFilter
	scorer *CompatibilityScorer
}

// NewMatchRanker wires a ranker from its two collaborators.
func NewMatchRanker(filter *CandidateFilter, scorer *CompatibilityScorer) *MatchRanker {
	return &MatchRanker{filter: filter, scorer: scorer}
}

// Rank returns at most limit scored matches, best first. Nothing surviving
// is a valid empty result, never an error.
func (r *MatchRanker) Rank(requester *Profile, pool []*Profile, criteria *FilterCriteria, limit int) []*ScoredMatch {
	if limit <= 0 {
		limit = DefaultMatchLimit
	}

	survivors := r.filter.Filter(requester, pool, criteria)
	scored := r.scoreAll(requester, survivors)

	kept := scored[:0]
	for _, m := range scored {
		if m.Compatibility.Overall >= MinimumCompatibility {
			kept = append(kept, m)
		}
	}

	sort.Slice(kept, func(i, j int) bool {
		a, b := kept[i], kept[j]
		if a.Compatibility.Overall != b.Compatibility.Overall {
			return a.Compatibility.Overall > b.Compatibility.Overall
		}
		// More recently active ranks first; profile ID breaks the final tie
		// so identical inputs always produce identical output.
		if !a.Profile.LastActive.Equal(b.Profile.LastActive) {
			return a.Profile.LastActive.After(b.Profile.LastActive)
		}
		return a.Profile.ID < b.Profile.ID
	})

	if len(kept) > limit {
		kept = kept[:limit]
	}
	return kept
}

// scoreAll scores survivors across a bounded worker pool. Results land in
// a fixed slot per candidate, so concurrency never affects the outcome.
func (r *MatchRanker) scoreAll(requester *Profile, survivors []*Profile) []*ScoredMatch {
	if len(survivors) == 0 {
		return nil
	}

	scored := make([]*ScoredMatch, len(survivors))

	workers := scoreWorkers
	if len(survivors) < workers {
		workers = len(survivors)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				breakdown, factors := r.scorer.Score(requester, survivors[i])
				scored[i] = &ScoredMatch{
					Profile:       survivors[i],
					Compatibility: breakdown,
					factors:       factors,
				}
				RecordCompatibilityScore(breakdown.Overall)
			}
		}()
	}
	for i := range survivors {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return scored
}
