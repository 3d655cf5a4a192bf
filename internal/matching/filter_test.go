package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestFilter() *CandidateFilter {
	return NewCandidateFilter(NewSafetyValidator())
}

func TestFilterExcludesRequester(t *testing.T) {
	f := newTestFilter()
	requester := eligibleProfile("me")

	out := f.Filter(requester, []*Profile{eligibleProfile("me"), eligibleProfile("other")}, openCriteria())

	assert.Len(t, out, 1)
	assert.Equal(t, "other", out[0].ID)
}

func TestFilterEmptyPool(t *testing.T) {
	f := newTestFilter()

	out := f.Filter(eligibleProfile("me"), nil, openCriteria())
	assert.Empty(t, out)
}

func TestFilterAgeRange(t *testing.T) {
	f := newTestFilter()
	criteria := openCriteria()
	criteria.AgeRange = AgeRange{Min: 25, Max: 35}

	young := eligibleProfile("young")
	young.Age = 24
	old := eligibleProfile("old")
	old.Age = 36
	fits := eligibleProfile("fits")
	fits.Age = 25

	out := f.Filter(eligibleProfile("me"), []*Profile{young, old, fits}, criteria)

	assert.Len(t, out, 1)
	assert.Equal(t, "fits", out[0].ID)
}

func TestFilterMaxDistance(t *testing.T) {
	f := newTestFilter()
	criteria := openCriteria()
	criteria.MaxDistanceKm = 10

	nearby := eligibleProfile("nearby")
	manchester := eligibleProfile("manchester")
	manchester.Location = Location{City: "Manchester", Latitude: 53.4808, Longitude: -2.2426}

	out := f.Filter(eligibleProfile("me"), []*Profile{nearby, manchester}, criteria)

	assert.Len(t, out, 1)
	assert.Equal(t, "nearby", out[0].ID)
}

func TestFilterCulturalWhitelist(t *testing.T) {
	f := newTestFilter()

	pt := eligibleProfile("pt")
	br := eligibleProfile("br")
	br.CulturalBackground = []string{"BR"}

	// Empty whitelist means no restriction.
	out := f.Filter(eligibleProfile("me"), []*Profile{pt, br}, openCriteria())
	assert.Len(t, out, 2)

	criteria := openCriteria()
	criteria.CulturalBackgrounds = []string{"BR"}
	out = f.Filter(eligibleProfile("me"), []*Profile{pt, br}, criteria)
	assert.Len(t, out, 1)
	assert.Equal(t, "br", out[0].ID)
}

func TestFilterDropsIneligibleCandidates(t *testing.T) {
	f := newTestFilter()

	scam := eligibleProfile("scam")
	scam.Bio = "send money for a surprise"
	lowTrust := eligibleProfile("lowtrust")
	lowTrust.SafetyScore = 2
	clean := eligibleProfile("clean")

	out := f.Filter(eligibleProfile("me"), []*Profile{scam, lowTrust, clean}, openCriteria())

	assert.Len(t, out, 1)
	assert.Equal(t, "clean", out[0].ID)
}

func TestFilterIdempotent(t *testing.T) {
	f := newTestFilter()
	pool := []*Profile{eligibleProfile("a"), eligibleProfile("b")}

	once := f.Filter(eligibleProfile("me"), pool, openCriteria())
	twice := f.Filter(eligibleProfile("me"), once, openCriteria())

	assert.Equal(t, once, twice)
}
