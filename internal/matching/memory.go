// internal/matching/memory.go
// In-memory Repository used in tests and local development

package matching

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryRepository struct {
	mu      sync.Mutex
	swipes  map[string]*SwipeAction // keyed by "swiper|swiped"
	matches map[string]*Match       // keyed by "user1|user2" in canonical order
	byID    map[string]*Match
}

// NewMemoryRepository creates an in-memory matching repository that honors
// the same uniqueness and ordering invariants as the Postgres implementation.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		swipes:  make(map[string]*SwipeAction),
		matches: make(map[string]*Match),
		byID:    make(map[string]*Match),
	}
}

func pairKey(a, b string) string {
	return a + "|" + b
}

func (r *memoryRepository) CreateSwipe(ctx context.Context, swipe *SwipeAction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := pairKey(swipe.SwiperID, swipe.SwipedID)
	if _, exists := r.swipes[key]; exists {
		return ErrDuplicateSwipe
	}

	if swipe.ID == "" {
		swipe.ID = uuid.NewString()
	}
	swipe.CreatedAt = time.Now()

	stored := *swipe
	r.swipes[key] = &stored
	return nil
}

func (r *memoryRepository) HasLiked(ctx context.Context, swiperID, swipedID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	swipe, ok := r.swipes[pairKey(swiperID, swipedID)]
	return ok && swipe.Decision == DecisionLike, nil
}

func (r *memoryRepository) CountLikedBy(ctx context.Context, swipedID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	for _, swipe := range r.swipes {
		if swipe.SwipedID == swipedID && swipe.Decision == DecisionLike {
			count++
		}
	}
	return count, nil
}

func (r *memoryRepository) ListSwipedTargets(ctx context.Context, swiperID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	targets := []string{}
	for _, swipe := range r.swipes {
		if swipe.SwiperID == swiperID {
			targets = append(targets, swipe.SwipedID)
		}
	}
	return targets, nil
}

func (r *memoryRepository) CreateMatchIfAbsent(ctx context.Context, userA, userB string) (*Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user1, user2 := canonicalPair(userA, userB)
	key := pairKey(user1, user2)

	if existing, ok := r.matches[key]; ok {
		copied := *existing
		return &copied, nil
	}

	now := time.Now()
	match := &Match{
		ID:        uuid.NewString(),
		User1ID:   user1,
		User2ID:   user2,
		Status:    MatchStatusMatched,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.matches[key] = match
	r.byID[match.ID] = match

	copied := *match
	return &copied, nil
}

func (r *memoryRepository) GetMatchByID(ctx context.Context, matchID string) (*Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	match, ok := r.byID[matchID]
	if !ok {
		return nil, ErrMatchNotFound
	}
	copied := *match
	return &copied, nil
}

func (r *memoryRepository) GetMatchByPair(ctx context.Context, userA, userB string) (*Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user1, user2 := canonicalPair(userA, userB)
	match, ok := r.matches[pairKey(user1, user2)]
	if !ok {
		return nil, ErrMatchNotFound
	}
	copied := *match
	return &copied, nil
}

func (r *memoryRepository) ListUserMatches(ctx context.Context, userID string) ([]*Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	matches := []*Match{}
	for _, match := range r.matches {
		if match.Status == MatchStatusMatched && match.Involves(userID) {
			copied := *match
			matches = append(matches, &copied)
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})
	return matches, nil
}
