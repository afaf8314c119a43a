// internal/ratings/service.go
// Post-date rating business logic

package ratings

import (
	"context"
	"errors"
	"fmt"

	"github.com/kritsanan1/thai-vid-match/internal/common/utils"
	"github.com/kritsanan1/thai-vid-match/internal/matching"
)

var (
	ErrAlreadyRated   = errors.New("match already rated by this user")
	ErrRatingNotFound = errors.New("rating not found")
	ErrNotParticipant = errors.New("user is not part of this match")
	ErrInvalidRequest = errors.New("invalid request")
)

// MatchDirectory is the slice of the matching service ratings need to
// verify who may rate whom.
type MatchDirectory interface {
	GetMatch(ctx context.Context, matchID string) (*matching.Match, error)
}

// Service defines rating operations
type Service interface {
	SubmitRating(ctx context.Context, raterID, matchID string, req *SubmitRatingRequest) (*Rating, error)
	UpdateRating(ctx context.Context, raterID, matchID string, req *SubmitRatingRequest) (*Rating, error)
	GetHistory(ctx context.Context, raterID string) ([]*Rating, error)
	GetSummary(ctx context.Context, ratedID string) (*Summary, error)
}

type service struct {
	repo    Repository
	matches MatchDirectory
}

// NewService creates a rating service
func NewService(repo Repository, matches MatchDirectory) Service {
	return &service{repo: repo, matches: matches}
}

// SubmitRating records the rater's review of the other participant of the
// match. Only participants may rate, and only once per match.
func (s *service) SubmitRating(ctx context.Context, raterID, matchID string, req *SubmitRatingRequest) (*Rating, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	match, err := s.matches.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !match.Involves(raterID) {
		return nil, ErrNotParticipant
	}

	rating := &Rating{
		MatchID:        matchID,
		RaterID:        raterID,
		RatedID:        match.OtherUser(raterID),
		Overall:        req.Overall,
		Communication:  req.Communication,
		Chemistry:      req.Chemistry,
		Respectfulness: req.Respectfulness,
		WouldMeetAgain: req.WouldMeetAgain,
		Comment:        req.Comment,
	}
	if err := s.repo.Create(ctx, rating); err != nil {
		return nil, err
	}
	return rating, nil
}

// UpdateRating lets a participant revise an earlier rating. The row stays
// unique per (match, rater); only its scores and comment change.
func (s *service) UpdateRating(ctx context.Context, raterID, matchID string, req *SubmitRatingRequest) (*Rating, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	match, err := s.matches.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !match.Involves(raterID) {
		return nil, ErrNotParticipant
	}

	return s.repo.Update(ctx, matchID, raterID, req)
}

func (s *service) GetHistory(ctx context.Context, raterID string) ([]*Rating, error) {
	return s.repo.ListByRater(ctx, raterID)
}

func (s *service) GetSummary(ctx context.Context, ratedID string) (*Summary, error) {
	return s.repo.GetSummary(ctx, ratedID)
}
