// internal/ratings/memory.go
// In-memory Repository used in tests

package ratings

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryRepository struct {
	mu      sync.Mutex
	ratings []*Rating
	byKey   map[string]struct{} // "matchID|raterID"
}

// NewMemoryRepository creates an in-memory rating repository that enforces
// the one-rating-per-participant-per-match rule.
func NewMemoryRepository() Repository {
	return &memoryRepository{byKey: make(map[string]struct{})}
}

func (r *memoryRepository) Create(ctx context.Context, rating *Rating) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := rating.MatchID + "|" + rating.RaterID
	if _, exists := r.byKey[key]; exists {
		return ErrAlreadyRated
	}

	if rating.ID == "" {
		rating.ID = uuid.NewString()
	}
	rating.CreatedAt = time.Now()

	rating.UpdatedAt = rating.CreatedAt

	stored := *rating
	r.ratings = append(r.ratings, &stored)
	r.byKey[key] = struct{}{}
	return nil
}

func (r *memoryRepository) Update(ctx context.Context, matchID, raterID string, req *SubmitRatingRequest) (*Rating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rating := range r.ratings {
		if rating.MatchID != matchID || rating.RaterID != raterID {
			continue
		}
		rating.Overall = req.Overall
		rating.Communication = req.Communication
		rating.Chemistry = req.Chemistry
		rating.Respectfulness = req.Respectfulness
		rating.WouldMeetAgain = req.WouldMeetAgain
		rating.Comment = req.Comment
		rating.UpdatedAt = time.Now()

		copied := *rating
		return &copied, nil
	}
	return nil, ErrRatingNotFound
}

func (r *memoryRepository) ListByRater(ctx context.Context, raterID string) ([]*Rating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := []*Rating{}
	for _, rating := range r.ratings {
		if rating.RaterID == raterID {
			copied := *rating
			list = append(list, &copied)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

func (r *memoryRepository) GetSummary(ctx context.Context, ratedID string) (*Summary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	summary := &Summary{RatedID: ratedID}
	meetAgain := 0
	for _, rating := range r.ratings {
		if rating.RatedID != ratedID {
			continue
		}
		summary.Count++
		summary.AverageOverall += float64(rating.Overall)
		summary.AverageCommunication += float64(rating.Communication)
		summary.AverageChemistry += float64(rating.Chemistry)
		summary.AverageRespect += float64(rating.Respectfulness)
		if rating.WouldMeetAgain {
			meetAgain++
		}
	}
	if summary.Count > 0 {
		n := float64(summary.Count)
		summary.AverageOverall /= n
		summary.AverageCommunication /= n
		summary.AverageChemistry /= n
		summary.AverageRespect /= n
		summary.WouldMeetAgainRate = float64(meetAgain) / n
	}
	return summary, nil
}
