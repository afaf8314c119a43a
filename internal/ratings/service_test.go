// internal/ratings/service_test.go

package ratings

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kritsanan1/thai-vid-match/internal/matching"
)

// matchStore adapts the matching repository to the MatchDirectory the
// rating service depends on.
type matchStore struct {
	repo matching.Repository
}

func (s *matchStore) GetMatch(ctx context.Context, matchID string) (*matching.Match, error) {
	return s.repo.GetMatchByID(ctx, matchID)
}

func newTestService(t *testing.T) (Service, *matching.Match, string, string) {
	t.Helper()

	matchRepo := matching.NewMemoryRepository()
	a := uuid.NewString()
	b := uuid.NewString()

	match, err := matchRepo.CreateMatchIfAbsent(context.Background(), a, b)
	require.NoError(t, err)

	svc := NewService(NewMemoryRepository(), &matchStore{repo: matchRepo})
	return svc, match, a, b
}

func validRequest() *SubmitRatingRequest {
	return &SubmitRatingRequest{
		Overall:        4,
		Communication:  5,
		Chemistry:      3,
		Respectfulness: 5,
		WouldMeetAgain: true,
	}
}

func TestSubmitRatingTargetsOtherParticipant(t *testing.T) {
	svc, match, a, b := newTestService(t)

	rating, err := svc.SubmitRating(context.Background(), a, match.ID, validRequest())
	require.NoError(t, err)

	assert.Equal(t, match.ID, rating.MatchID)
	assert.Equal(t, a, rating.RaterID)
	assert.Equal(t, b, rating.RatedID)
	assert.Equal(t, 4, rating.Overall)
}

func TestSubmitRatingRejectsOutsider(t *testing.T) {
	svc, match, _, _ := newTestService(t)

	_, err := svc.SubmitRating(context.Background(), uuid.NewString(), match.ID, validRequest())
	assert.ErrorIs(t, err, ErrNotParticipant)
}

func TestSubmitRatingRejectsUnknownMatch(t *testing.T) {
	svc, _, a, _ := newTestService(t)

	_, err := svc.SubmitRating(context.Background(), a, uuid.NewString(), validRequest())
	assert.ErrorIs(t, err, matching.ErrMatchNotFound)
}

func TestSubmitRatingRejectsDuplicate(t *testing.T) {
	svc, match, a, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.SubmitRating(ctx, a, match.ID, validRequest())
	require.NoError(t, err)

	_, err = svc.SubmitRating(ctx, a, match.ID, validRequest())
	assert.ErrorIs(t, err, ErrAlreadyRated)
}

func TestBothParticipantsMayRateOnce(t *testing.T) {
	svc, match, a, b := newTestService(t)
	ctx := context.Background()

	_, err := svc.SubmitRating(ctx, a, match.ID, validRequest())
	require.NoError(t, err)

	_, err = svc.SubmitRating(ctx, b, match.ID, validRequest())
	require.NoError(t, err)
}

func TestSubmitRatingRejectsOutOfRangeScores(t *testing.T) {
	svc, match, a, _ := newTestService(t)

	req := validRequest()
	req.Overall = 6

	_, err := svc.SubmitRating(context.Background(), a, match.ID, req)
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestUpdateRatingRevisesExistingRow(t *testing.T) {
	svc, match, a, b := newTestService(t)
	ctx := context.Background()

	original, err := svc.SubmitRating(ctx, a, match.ID, validRequest())
	require.NoError(t, err)

	revised := validRequest()
	revised.Overall = 2
	revised.WouldMeetAgain = false

	updated, err := svc.UpdateRating(ctx, a, match.ID, revised)
	require.NoError(t, err)

	assert.Equal(t, original.ID, updated.ID)
	assert.Equal(t, 2, updated.Overall)
	assert.False(t, updated.WouldMeetAgain)

	// Still exactly one rating by this rater, now carrying the revision
	history, err := svc.GetHistory(ctx, a)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 2, history[0].Overall)

	summary, err := svc.GetSummary(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Count)
	assert.InDelta(t, 2, summary.AverageOverall, 0.0001)
}

func TestUpdateRatingRequiresExistingRating(t *testing.T) {
	svc, match, a, _ := newTestService(t)

	_, err := svc.UpdateRating(context.Background(), a, match.ID, validRequest())
	assert.ErrorIs(t, err, ErrRatingNotFound)
}

func TestUpdateRatingRejectsOutsider(t *testing.T) {
	svc, match, a, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.SubmitRating(ctx, a, match.ID, validRequest())
	require.NoError(t, err)

	_, err = svc.UpdateRating(ctx, uuid.NewString(), match.ID, validRequest())
	assert.ErrorIs(t, err, ErrNotParticipant)
}

func TestRatingHistoryAndSummary(t *testing.T) {
	svc, match, a, b := newTestService(t)
	ctx := context.Background()

	_, err := svc.SubmitRating(ctx, a, match.ID, &SubmitRatingRequest{
		Overall:        5,
		Communication:  4,
		Chemistry:      5,
		Respectfulness: 4,
		WouldMeetAgain: true,
	})
	require.NoError(t, err)

	_, err = svc.SubmitRating(ctx, b, match.ID, &SubmitRatingRequest{
		Overall:        3,
		Communication:  2,
		Chemistry:      3,
		Respectfulness: 2,
		WouldMeetAgain: false,
	})
	require.NoError(t, err)

	history, err := svc.GetHistory(ctx, a)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, b, history[0].RatedID)

	// b received one rating from a
	summary, err := svc.GetSummary(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Count)
	assert.InDelta(t, 5, summary.AverageOverall, 0.0001)
	assert.InDelta(t, 1, summary.WouldMeetAgainRate, 0.0001)
}

func TestSummaryForUnratedUser(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	summary, err := svc.GetSummary(context.Background(), uuid.NewString())
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Count)
	assert.Zero(t, summary.AverageOverall)
}
