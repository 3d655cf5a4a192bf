package matching

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrSearchRateLimited signals that a member is searching too often.
var ErrSearchRateLimited = errors.New("too many match searches, please slow down")

// ServiceConfig carries the service-layer knobs. The engine's own
// thresholds live with the engine.
type ServiceConfig struct {
	CacheTTL         time.Duration
	DefaultLimit     int
	MaxLimit         int
	PoolSize         int
	SearchRateMax    int
	SearchRateWindow time.Duration
}

// Service fetches profile snapshots, runs the engine, and handles the
// request-scoped caching and rate limiting that must not leak into the
// pure pipeline.
type Service interface {
	SearchMatches(ctx context.Context, requesterID string, req *SearchMatchesRequest) (*SearchMatchesResponse, error)
	GetCompatibility(ctx context.Context, requesterID, profileID string, pref LanguagePreference) (*MatchSummary, error)
}

type service struct {
	repo   Repository
	engine Engine
	redis  *redis.Client
	cfg    ServiceConfig
}

// NewService wires the matching service. The redis client is optional;
// without it caching and rate limiting are skipped.
func NewService(repo Repository, engine Engine, redisClient *redis.Client, cfg ServiceConfig) Service {
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = DefaultMatchLimit
	}
	if cfg.MaxLimit <= 0 {
		cfg.MaxLimit = 50
	}
	return &service{
		repo:   repo,
		engine: engine,
		redis:  redisClient,
		cfg:    cfg,
	}
}

func (s *service) SearchMatches(ctx context.Context, requesterID string, req *SearchMatchesRequest) (*SearchMatchesResponse, error) {
	if err := s.allowSearch(ctx, requesterID); err != nil {
		return nil, err
	}

	if cached := s.cachedResponse(ctx, requesterID, req); cached != nil {
		RecordSearchOutcome("cache_hit")
		return cached, nil
	}

	requester, err := s.repo.GetProfile(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	criteria := req.Filters.toCriteria()

	pool, err := s.repo.FindCandidates(ctx, requesterID, &PoolFilter{
		MinAge: criteria.AgeRange.Min,
		MaxAge: criteria.AgeRange.Max,
		Limit:  s.cfg.PoolSize,
	})
	if err != nil {
		return nil, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = s.cfg.DefaultLimit
	}
	if limit > s.cfg.MaxLimit {
		limit = s.cfg.MaxLimit
	}

	matches, err := s.engine.FindMatches(requester, pool, criteria, limit)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCriteria):
			RecordSearchOutcome("invalid_criteria")
		case errors.Is(err, ErrRequesterIneligible):
			RecordSearchOutcome("requester_ineligible")
		}
		return nil, err
	}
	RecordSearchOutcome("success")

	resp := &SearchMatchesResponse{
		Matches: make([]MatchSummary, 0, len(matches)),
		Total:   len(matches),
	}
	for _, m := range matches {
		resp.Matches = append(resp.Matches, toMatchSummary(m))
	}

	s.cacheResponse(ctx, requesterID, req, resp)
	return resp, nil
}

func (s *service) GetCompatibility(ctx context.Context, requesterID, profileID string, pref LanguagePreference) (*MatchSummary, error) {
	requester, err := s.repo.GetProfile(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	candidate, err := s.repo.GetProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}

	match, err := s.engine.ScorePair(requester, candidate, pref)
	if err != nil {
		return nil, err
	}

	summary := toMatchSummary(match)
	return &summary, nil
}

// allowSearch enforces a sliding per-user search budget in Redis.
func (s *service) allowSearch(ctx context.Context, requesterID string) error {
	if s.redis == nil || s.cfg.SearchRateMax <= 0 {
		return nil
	}

	key := "matching:rate:" + requesterID
	count, err := s.redis.Incr(ctx, key).Result()
	if err != nil {
		// Redis being down should not block matching.
		log.Printf("matching: rate-limit check failed: %v", err)
		return nil
	}
	if count == 1 {
		s.redis.Expire(ctx, key, s.cfg.SearchRateWindow)
	}
	if count > int64(s.cfg.SearchRateMax) {
		return ErrSearchRateLimited
	}
	return nil
}

func (s *service) cachedResponse(ctx context.Context, requesterID string, req *SearchMatchesRequest) *SearchMatchesResponse {
	if s.redis == nil || s.cfg.CacheTTL <= 0 {
		return nil
	}

	data, err := s.redis.Get(ctx, s.cacheKey(requesterID, req)).Bytes()
	if err != nil {
		return nil
	}

	var resp SearchMatchesResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil
	}
	return &resp
}

func (s *service) cacheResponse(ctx context.Context, requesterID string, req *SearchMatchesRequest, resp *SearchMatchesResponse) {
	if s.redis == nil || s.cfg.CacheTTL <= 0 {
		return
	}

	data, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, s.cacheKey(requesterID, req), data, s.cfg.CacheTTL).Err(); err != nil {
		log.Printf("matching: failed to cache results: %v", err)
	}
}

func (s *service) cacheKey(requesterID string, req *SearchMatchesRequest) string {
	raw, _ := json.Marshal(req)
	sum := sha256.Sum256(raw)
	return fmt.Sprintf("matching:results:%s:%s", requesterID, hex.EncodeToString(sum[:8]))
}
