// internal/matching/service_test.go

package matching

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kritsanan1/thai-vid-match/internal/config"
	"github.com/kritsanan1/thai-vid-match/internal/profile"
)

func newTestService(t *testing.T) (Service, profile.Repository, Repository) {
	t.Helper()

	profiles := profile.NewMemoryRepository()
	repo := NewMemoryRepository()
	cfg := &config.Config{
		DiscoveryLimit:    10,
		DiscoveryMaxLimit: 50,
		ScoreCacheTTL:     time.Hour,
	}
	return NewService(repo, profiles, nil, cfg), profiles, repo
}

func seedProfile(t *testing.T, profiles profile.Repository, age int) string {
	t.Helper()

	id := uuid.NewString()
	p := &profile.Profile{
		UserID:             id,
		FullName:           "Test User",
		Age:                age,
		Gender:             "female",
		Interests:          []string{"music", "travel"},
		VerificationStatus: profile.VerificationUnverified,
		IsActive:           true,
		LastActiveAt:       time.Now(),
	}
	require.NoError(t, profiles.Create(context.Background(), p))
	return id
}

func TestRecordSwipeRejectsSelf(t *testing.T) {
	svc, profiles, _ := newTestService(t)
	userID := seedProfile(t, profiles, 25)

	_, err := svc.RecordSwipe(context.Background(), userID, &SwipeRequest{
		TargetID: userID,
		Decision: DecisionLike,
	})
	assert.ErrorIs(t, err, ErrSelfSwipe)
}

func TestRecordSwipeRejectsUnknownTarget(t *testing.T) {
	svc, profiles, _ := newTestService(t)
	userID := seedProfile(t, profiles, 25)

	_, err := svc.RecordSwipe(context.Background(), userID, &SwipeRequest{
		TargetID: uuid.NewString(),
		Decision: DecisionLike,
	})
	assert.ErrorIs(t, err, profile.ErrProfileNotFound)
}

func TestRecordSwipeRejectsDuplicate(t *testing.T) {
	svc, profiles, _ := newTestService(t)
	a := seedProfile(t, profiles, 25)
	b := seedProfile(t, profiles, 27)

	req := &SwipeRequest{TargetID: b, Decision: DecisionLike}
	_, err := svc.RecordSwipe(context.Background(), a, req)
	require.NoError(t, err)

	// A changed mind doesn't overwrite the recorded decision
	_, err = svc.RecordSwipe(context.Background(), a, &SwipeRequest{TargetID: b, Decision: DecisionPass})
	assert.ErrorIs(t, err, ErrDuplicateSwipe)
}

func TestRecordSwipeRejectsBadDecision(t *testing.T) {
	svc, profiles, _ := newTestService(t)
	a := seedProfile(t, profiles, 25)
	b := seedProfile(t, profiles, 27)

	_, err := svc.RecordSwipe(context.Background(), a, &SwipeRequest{TargetID: b, Decision: "superlike"})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestOneSidedLikeDoesNotMatch(t *testing.T) {
	svc, profiles, _ := newTestService(t)
	a := seedProfile(t, profiles, 25)
	b := seedProfile(t, profiles, 27)

	result, err := svc.RecordSwipe(context.Background(), a, &SwipeRequest{TargetID: b, Decision: DecisionLike})
	require.NoError(t, err)

	assert.NotNil(t, result.Swipe)
	assert.Nil(t, result.Match)
}

func TestPassNeverFormsMatch(t *testing.T) {
	svc, profiles, _ := newTestService(t)
	a := seedProfile(t, profiles, 25)
	b := seedProfile(t, profiles, 27)

	_, err := svc.RecordSwipe(context.Background(), a, &SwipeRequest{TargetID: b, Decision: DecisionLike})
	require.NoError(t, err)

	result, err := svc.RecordSwipe(context.Background(), b, &SwipeRequest{TargetID: a, Decision: DecisionPass})
	require.NoError(t, err)
	assert.Nil(t, result.Match)
}

func TestMutualLikeFormsCanonicalMatch(t *testing.T) {
	svc, profiles, _ := newTestService(t)
	a := seedProfile(t, profiles, 25)
	b := seedProfile(t, profiles, 27)

	_, err := svc.RecordSwipe(context.Background(), a, &SwipeRequest{TargetID: b, Decision: DecisionLike})
	require.NoError(t, err)

	result, err := svc.RecordSwipe(context.Background(), b, &SwipeRequest{TargetID: a, Decision: DecisionLike})
	require.NoError(t, err)

	require.NotNil(t, result.Match)
	assert.Equal(t, MatchStatusMatched, result.Match.Status)
	assert.Less(t, result.Match.User1ID, result.Match.User2ID)
	assert.True(t, result.Match.Involves(a))
	assert.True(t, result.Match.Involves(b))

	// Both participants see the same match
	aMatches, err := svc.ListMatches(context.Background(), a)
	require.NoError(t, err)
	bMatches, err := svc.ListMatches(context.Background(), b)
	require.NoError(t, err)

	require.Len(t, aMatches, 1)
	require.Len(t, bMatches, 1)
	assert.Equal(t, aMatches[0].ID, bMatches[0].ID)
}

func TestMatchResolutionIsIdempotent(t *testing.T) {
	_, _, repo := newTestService(t)
	a := uuid.NewString()
	b := uuid.NewString()

	first, err := repo.CreateMatchIfAbsent(context.Background(), a, b)
	require.NoError(t, err)

	// Reversed argument order still lands on the same row
	second, err := repo.CreateMatchIfAbsent(context.Background(), b, a)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.User1ID, second.User1ID)
	assert.Equal(t, first.User2ID, second.User2ID)
}

func TestConcurrentMatchResolutionYieldsOneMatch(t *testing.T) {
	_, _, repo := newTestService(t)
	a := uuid.NewString()
	b := uuid.NewString()

	const workers = 8
	results := make([]*Match, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			match, err := repo.CreateMatchIfAbsent(context.Background(), a, b)
			require.NoError(t, err)
			results[idx] = match
		}(i)
	}
	wg.Wait()

	for _, match := range results[1:] {
		assert.Equal(t, results[0].ID, match.ID)
	}
}

func TestScoreRejectsSelf(t *testing.T) {
	svc, profiles, _ := newTestService(t)
	userID := seedProfile(t, profiles, 25)

	_, err := svc.Score(context.Background(), userID, userID)
	assert.ErrorIs(t, err, ErrSelfScore)
}

func TestScoreThroughService(t *testing.T) {
	svc, profiles, _ := newTestService(t)
	a := seedProfile(t, profiles, 25)
	b := seedProfile(t, profiles, 27)

	result, err := svc.Score(context.Background(), a, b)
	require.NoError(t, err)

	assert.Equal(t, a, result.SubjectID)
	assert.Equal(t, b, result.CandidateID)
	assert.GreaterOrEqual(t, result.Score, 0.0)
	assert.LessOrEqual(t, result.Score, 100.0)
}

func TestLikedYouCount(t *testing.T) {
	svc, profiles, _ := newTestService(t)
	ctx := context.Background()

	target := seedProfile(t, profiles, 25)
	fanA := seedProfile(t, profiles, 26)
	fanB := seedProfile(t, profiles, 27)
	passer := seedProfile(t, profiles, 28)

	count, err := svc.GetLikedYouCount(ctx, target)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	_, err = svc.RecordSwipe(ctx, fanA, &SwipeRequest{TargetID: target, Decision: DecisionLike})
	require.NoError(t, err)
	_, err = svc.RecordSwipe(ctx, fanB, &SwipeRequest{TargetID: target, Decision: DecisionLike})
	require.NoError(t, err)

	// Passes don't count
	_, err = svc.RecordSwipe(ctx, passer, &SwipeRequest{TargetID: target, Decision: DecisionPass})
	require.NoError(t, err)

	count, err = svc.GetLikedYouCount(ctx, target)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestDiscoveryFeedExclusionsAndOrder(t *testing.T) {
	svc, profiles, _ := newTestService(t)
	ctx := context.Background()

	subject := seedProfile(t, profiles, 27)

	// Same age as subject scores highest, then increasing age gaps
	closest := seedProfile(t, profiles, 27)
	middle := seedProfile(t, profiles, 32)
	farthest := seedProfile(t, profiles, 40)
	swiped := seedProfile(t, profiles, 27)

	_, err := svc.RecordSwipe(ctx, subject, &SwipeRequest{TargetID: swiped, Decision: DecisionPass})
	require.NoError(t, err)

	feed, err := svc.GetDiscoveryFeed(ctx, subject, 10)
	require.NoError(t, err)

	require.Len(t, feed, 3)
	assert.Equal(t, closest, feed[0].UserID)
	assert.Equal(t, middle, feed[1].UserID)
	assert.Equal(t, farthest, feed[2].UserID)

	for _, entry := range feed {
		assert.NotEqual(t, subject, entry.UserID)
		assert.NotEqual(t, swiped, entry.UserID)
	}
}

func TestDiscoveryFeedRespectsLimit(t *testing.T) {
	svc, profiles, _ := newTestService(t)
	ctx := context.Background()

	subject := seedProfile(t, profiles, 27)
	for i := 0; i < 5; i++ {
		seedProfile(t, profiles, 25+i)
	}

	feed, err := svc.GetDiscoveryFeed(ctx, subject, 2)
	require.NoError(t, err)
	assert.Len(t, feed, 2)
}

func TestDiscoveryFeedSkipsUnscorableCandidates(t *testing.T) {
	svc, profiles, _ := newTestService(t)
	ctx := context.Background()

	subject := seedProfile(t, profiles, 27)
	scorable := seedProfile(t, profiles, 28)

	// Missing age makes a candidate unscorable; it is dropped, not fatal
	broken := &profile.Profile{
		UserID:       uuid.NewString(),
		FullName:     "No Age",
		Gender:       "male",
		IsActive:     true,
		LastActiveAt: time.Now(),
	}
	require.NoError(t, profiles.Create(ctx, broken))

	feed, err := svc.GetDiscoveryFeed(ctx, subject, 10)
	require.NoError(t, err)

	require.Len(t, feed, 1)
	assert.Equal(t, scorable, feed[0].UserID)
}

func TestDiscoveryFeedExcludesHiddenProfiles(t *testing.T) {
	svc, profiles, _ := newTestService(t)
	ctx := context.Background()

	subject := seedProfile(t, profiles, 27)
	visible := seedProfile(t, profiles, 28)
	hidden := seedProfile(t, profiles, 28)

	hide := false
	_, err := profiles.UpdatePreferences(ctx, hidden, &profile.UpdatePreferencesRequest{ShowOnDiscovery: &hide})
	require.NoError(t, err)

	feed, err := svc.GetDiscoveryFeed(ctx, subject, 10)
	require.NoError(t, err)

	require.Len(t, feed, 1)
	assert.Equal(t, visible, feed[0].UserID)
}
