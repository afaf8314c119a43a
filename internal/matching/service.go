// internal/matching/service.go
// Swipe recording, match resolution, compatibility scoring, and the
// discovery feed

package matching

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/go-redis/redis/v8"

	"github.com/kritsanan1/thai-vid-match/internal/common/utils"
	"github.com/kritsanan1/thai-vid-match/internal/config"
	"github.com/kritsanan1/thai-vid-match/internal/profile"
)

var (
	ErrSelfSwipe      = errors.New("cannot swipe on yourself")
	ErrSelfScore      = errors.New("cannot score yourself")
	ErrDuplicateSwipe = errors.New("already swiped on this user")
	ErrInvalidProfile = errors.New("profile is not scorable")
	ErrMatchNotFound  = errors.New("match not found")
	ErrInvalidRequest = errors.New("invalid request")
)

// How many candidates to pull from storage before ranking
const discoveryCandidatePool = 200

// ProfileDirectory is the slice of profile storage the matching engine
// needs. *profile.Repository satisfies it.
type ProfileDirectory interface {
	GetByUserID(ctx context.Context, userID string) (*profile.Profile, error)
	ListDiscoverable(ctx context.Context, excludeUserIDs []string, limit int) ([]*profile.Profile, error)
}

// Service defines matching business operations
type Service interface {
	RecordSwipe(ctx context.Context, swiperID string, req *SwipeRequest) (*SwipeResult, error)
	Score(ctx context.Context, subjectID, candidateID string) (*ScoreResult, error)
	GetDiscoveryFeed(ctx context.Context, userID string, limit int) ([]*RankedCandidate, error)
	GetLikedYouCount(ctx context.Context, userID string) (int64, error)
	ListMatches(ctx context.Context, userID string) ([]*Match, error)
	GetMatch(ctx context.Context, matchID string) (*Match, error)
}

type service struct {
	repo     Repository
	profiles ProfileDirectory
	scorer   *Scorer
	cache    *redis.Client
	cfg      *config.Config
}

// NewService creates a matching service. The redis client is optional;
// pass nil to disable score caching.
func NewService(repo Repository, profiles ProfileDirectory, cache *redis.Client, cfg *config.Config) Service {
	return &service{
		repo:     repo,
		profiles: profiles,
		scorer:   NewScorer(),
		cache:    cache,
		cfg:      cfg,
	}
}

// RecordSwipe persists the swipe and, on a mutual like, resolves the match.
// Re-swiping the same target is rejected rather than overwritten.
func (s *service) RecordSwipe(ctx context.Context, swiperID string, req *SwipeRequest) (*SwipeResult, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if swiperID == req.TargetID {
		return nil, ErrSelfSwipe
	}

	// Swiping a nonexistent profile is a client error, not a stored fact
	if _, err := s.profiles.GetByUserID(ctx, req.TargetID); err != nil {
		return nil, err
	}

	swipe := &SwipeAction{
		SwiperID: swiperID,
		SwipedID: req.TargetID,
		Decision: req.Decision,
	}
	if err := s.repo.CreateSwipe(ctx, swipe); err != nil {
		return nil, err
	}
	swipesTotal.WithLabelValues(swipe.Decision).Inc()

	result := &SwipeResult{Swipe: swipe}
	if swipe.Decision != DecisionLike {
		return result, nil
	}
	s.invalidateLikedYouCount(ctx, req.TargetID)

	match, err := s.resolveMatch(ctx, swipe)
	if err != nil {
		return nil, err
	}
	result.Match = match
	return result, nil
}

// resolveMatch checks whether the like is reciprocated and, if so, creates
// the match. A nil match with a nil error means no mutual like yet. The
// insert-if-absent guard makes this idempotent: when both sides' likes are
// processed concurrently, exactly one match row results and both callers
// get it back.
func (s *service) resolveMatch(ctx context.Context, swipe *SwipeAction) (*Match, error) {
	reciprocated, err := s.repo.HasLiked(ctx, swipe.SwipedID, swipe.SwiperID)
	if err != nil {
		return nil, err
	}
	if !reciprocated {
		return nil, nil
	}

	match, err := s.repo.CreateMatchIfAbsent(ctx, swipe.SwiperID, swipe.SwipedID)
	if err != nil {
		return nil, err
	}
	matchesTotal.Inc()
	return match, nil
}

// Score returns the compatibility breakdown of candidate for subject,
// served from cache when available.
func (s *service) Score(ctx context.Context, subjectID, candidateID string) (*ScoreResult, error) {
	if subjectID == candidateID {
		return nil, ErrSelfScore
	}

	cacheKey := fmt.Sprintf("compat:%s:%s", subjectID, candidateID)
	if cached := s.cachedScore(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	subject, err := s.profiles.GetByUserID(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	candidate, err := s.profiles.GetByUserID(ctx, candidateID)
	if err != nil {
		return nil, err
	}

	result, err := s.scorer.Score(subject, candidate)
	if err != nil {
		return nil, err
	}
	compatibilityScores.Observe(result.Score)

	s.storeScore(ctx, cacheKey, result)
	return result, nil
}

func (s *service) cachedScore(ctx context.Context, key string) *ScoreResult {
	if s.cache == nil {
		return nil
	}
	payload, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}
	var result ScoreResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil
	}
	return &result
}

func (s *service) storeScore(ctx context.Context, key string, result *ScoreResult) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return
	}
	// Cache is best effort; a write failure never fails the request
	s.cache.Set(ctx, key, payload, s.cfg.ScoreCacheTTL)
}

func likedYouKey(userID string) string {
	return "liked_you:" + userID
}

// GetLikedYouCount returns how many users have liked the given user,
// served from a redis counter that new likes invalidate.
func (s *service) GetLikedYouCount(ctx context.Context, userID string) (int64, error) {
	if s.cache != nil {
		if count, err := s.cache.Get(ctx, likedYouKey(userID)).Int64(); err == nil {
			return count, nil
		}
	}

	count, err := s.repo.CountLikedBy(ctx, userID)
	if err != nil {
		return 0, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, likedYouKey(userID), count, s.cfg.ScoreCacheTTL)
	}
	return count, nil
}

// invalidateLikedYouCount drops the target's cached counter so the next
// read recomputes it. Best effort, like the score cache.
func (s *service) invalidateLikedYouCount(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	s.cache.Del(ctx, likedYouKey(userID))
}

// GetDiscoveryFeed ranks discoverable candidates by compatibility with the
// given user. Already-swiped users and the user themselves are excluded;
// candidates that cannot be scored are skipped rather than failing the feed.
func (s *service) GetDiscoveryFeed(ctx context.Context, userID string, limit int) ([]*RankedCandidate, error) {
	if limit <= 0 {
		limit = s.cfg.DiscoveryLimit
	}
	if limit > s.cfg.DiscoveryMaxLimit {
		limit = s.cfg.DiscoveryMaxLimit
	}

	subject, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	swiped, err := s.repo.ListSwipedTargets(ctx, userID)
	if err != nil {
		return nil, err
	}
	exclude := append(swiped, userID)

	candidates, err := s.profiles.ListDiscoverable(ctx, exclude, discoveryCandidatePool)
	if err != nil {
		return nil, err
	}

	type scored struct {
		profile *profile.Profile
		result  *ScoreResult
	}
	ranked := []scored{}
	for _, candidate := range candidates {
		result, err := s.scorer.Score(subject, candidate)
		if err != nil {
			continue
		}
		ranked = append(ranked, scored{profile: candidate, result: result})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].result.Score != ranked[j].result.Score {
			return ranked[i].result.Score > ranked[j].result.Score
		}
		return ranked[i].profile.LastActiveAt.After(ranked[j].profile.LastActiveAt)
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	feed := make([]*RankedCandidate, 0, len(ranked))
	for _, entry := range ranked {
		feed = append(feed, buildCandidate(subject, entry.profile, entry.result))
	}
	discoveryFeedSize.Observe(float64(len(feed)))
	return feed, nil
}

func buildCandidate(subject, candidate *profile.Profile, result *ScoreResult) *RankedCandidate {
	entry := &RankedCandidate{
		UserID:          candidate.UserID,
		FullName:        candidate.FullName,
		DisplayName:     candidate.DisplayName,
		Age:             candidate.Age,
		Bio:             candidate.Bio,
		Interests:       candidate.Interests,
		ProfileImages:   candidate.ProfileImages,
		ProfileVideoURL: candidate.ProfileVideoURL,
		Verified:        candidate.IsVerified(),
		Score:           result.Score,
		CommonInterests: result.Factors.CommonInterests,
	}
	if subject.HasCoordinates() && candidate.HasCoordinates() {
		km := Distance(*subject.Latitude, *subject.Longitude, *candidate.Latitude, *candidate.Longitude)
		entry.DistanceKm = &km
	}
	return entry
}

func (s *service) ListMatches(ctx context.Context, userID string) ([]*Match, error) {
	return s.repo.ListUserMatches(ctx, userID)
}

func (s *service) GetMatch(ctx context.Context, matchID string) (*Match, error) {
	return s.repo.GetMatchByID(ctx, matchID)
}
