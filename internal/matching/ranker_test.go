package matching

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestRanker() *MatchRanker {
	filter := NewCandidateFilter(NewSafetyValidator())
	return NewMatchRanker(filter, NewCompatibilityScorer())
}

func TestRankEnforcesCompatibilityFloor(t *testing.T) {
	r := newTestRanker()
	requester := eligibleProfile("me")

	// Shared heritage and both verified, but nothing else: 30 + 10 = 40,
	// below the floor even though the pool holds nobody else.
	weak := eligibleProfile("weak")
	weak.Interests = nil
	weak.CommunityEngagement = 0
	req := eligibleProfile("me")
	req.CommunityEngagement = 0

	out := r.Rank(req, []*Profile{weak}, openCriteria(), 10)
	assert.Empty(t, out)

	// The same candidate with a shared interest clears it: 30+10+10 = 50.
	weak.Interests = []string{"fado"}
	out = r.Rank(requester, []*Profile{weak}, openCriteria(), 10)
	assert.Len(t, out, 1)
	assert.GreaterOrEqual(t, out[0].Compatibility.Overall, MinimumCompatibility)
}

func TestRankOrdersByScoreDescending(t *testing.T) {
	r := newTestRanker()

	strong := eligibleProfile("strong")
	strong.Interests = []string{"fado", "football", "cooking"}

	weaker := eligibleProfile("weaker")

	requester := eligibleProfile("me")
	requester.Interests = []string{"fado", "football", "cooking"}

	out := r.Rank(requester, []*Profile{weaker, strong}, openCriteria(), 10)

	assert.Len(t, out, 2)
	assert.Equal(t, "strong", out[0].Profile.ID)
	assert.GreaterOrEqual(t, out[0].Compatibility.Overall, out[1].Compatibility.Overall)
}

func TestRankTieBreaksOnRecency(t *testing.T) {
	r := newTestRanker()

	stale := eligibleProfile("stale")
	stale.LastActive = time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	fresh := eligibleProfile("fresh")
	fresh.LastActive = time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)

	out := r.Rank(eligibleProfile("me"), []*Profile{stale, fresh}, openCriteria(), 10)

	assert.Len(t, out, 2)
	assert.Equal(t, "fresh", out[0].Profile.ID)
}

func TestRankTieBreaksOnID(t *testing.T) {
	r := newTestRanker()

	b := eligibleProfile("bbb")
	a := eligibleProfile("aaa")

	out := r.Rank(eligibleProfile("me"), []*Profile{b, a}, openCriteria(), 10)

	assert.Len(t, out, 2)
	assert.Equal(t, "aaa", out[0].Profile.ID)
}

func TestRankDeterministicAcrossRuns(t *testing.T) {
	r := newTestRanker()

	pool := make([]*Profile, 0, 30)
	for i := 0; i < 30; i++ {
		pool = append(pool, eligibleProfile(fmt.Sprintf("m%02d", i)))
	}

	first := r.Rank(eligibleProfile("me"), pool, openCriteria(), 30)
	for run := 0; run < 5; run++ {
		again := r.Rank(eligibleProfile("me"), pool, openCriteria(), 30)
		assert.Equal(t, len(first), len(again))
		for i := range first {
			assert.Equal(t, first[i].Profile.ID, again[i].Profile.ID)
		}
	}
}

func TestRankAppliesLimit(t *testing.T) {
	r := newTestRanker()

	pool := make([]*Profile, 0, 15)
	for i := 0; i < 15; i++ {
		pool = append(pool, eligibleProfile(fmt.Sprintf("m%02d", i)))
	}

	out := r.Rank(eligibleProfile("me"), pool, openCriteria(), 3)
	assert.Len(t, out, 3)

	// Zero means the default limit.
	out = r.Rank(eligibleProfile("me"), pool, openCriteria(), 0)
	assert.Len(t, out, DefaultMatchLimit)
}
