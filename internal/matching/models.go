// internal/matching/models.go
// Swipe, match, and compatibility models

package matching

import (
	"time"
)

// Swipe decisions
const (
	DecisionLike = "like"
	DecisionPass = "pass"
)

// Match lifecycle states. Blocked is only ever set by moderation tooling.
const (
	MatchStatusPending = "pending"
	MatchStatusMatched = "matched"
	MatchStatusBlocked = "blocked"
)

// SwipeAction records one user's decision on another
type SwipeAction struct {
	ID        string    `json:"id" db:"id"`
	SwiperID  string    `json:"swiper_id" db:"swiper_id"`
	SwipedID  string    `json:"swiped_id" db:"swiped_id"`
	Decision  string    `json:"decision" db:"decision"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Match represents a mutual like between two users. User IDs are stored
// in canonical order: User1ID < User2ID.
type Match struct {
	ID        string    `json:"id" db:"id"`
	User1ID   string    `json:"user1_id" db:"user1_id"`
	User2ID   string    `json:"user2_id" db:"user2_id"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// OtherUser returns the match participant that is not the given user
func (m *Match) OtherUser(userID string) string {
	if m.User1ID == userID {
		return m.User2ID
	}
	return m.User1ID
}

// Involves reports whether the given user is part of the match
func (m *Match) Involves(userID string) bool {
	return m.User1ID == userID || m.User2ID == userID
}

// canonicalPair orders two user IDs so (a, b) and (b, a) map to the same key
func canonicalPair(a, b string) (string, string) {
	if a < b {
		return a, b
	}
	return b, a
}

// ScoreFactors breaks a compatibility score into its components
type ScoreFactors struct {
	AgeCompatibility    float64  `json:"age_compatibility"`
	InterestOverlap     float64  `json:"interest_overlap"`
	Proximity           float64  `json:"proximity"`
	ProfileCompleteness float64  `json:"profile_completeness"`
	ActivityRecency     float64  `json:"activity_recency"`
	Verification        float64  `json:"verification"`
	CommonInterests     []string `json:"common_interests"`
}

// ScoreResult is a full compatibility breakdown between two users
type ScoreResult struct {
	SubjectID   string       `json:"subject_id"`
	CandidateID string       `json:"candidate_id"`
	Score       float64      `json:"score"`
	Factors     ScoreFactors `json:"factors"`
	ComputedAt  time.Time    `json:"computed_at"`
}

// RankedCandidate is one discovery feed entry
type RankedCandidate struct {
	UserID          string   `json:"user_id"`
	FullName        string   `json:"full_name"`
	DisplayName     *string  `json:"display_name,omitempty"`
	Age             int      `json:"age"`
	Bio             *string  `json:"bio,omitempty"`
	Interests       []string `json:"interests"`
	ProfileImages   []string `json:"profile_images"`
	ProfileVideoURL *string  `json:"profile_video_url,omitempty"`
	Verified        bool     `json:"verified"`
	Score           float64  `json:"score"`
	CommonInterests []string `json:"common_interests"`
	DistanceKm      *float64 `json:"distance_km,omitempty"`
}

// SwipeRequest is the body of POST /api/v1/swipes
type SwipeRequest struct {
	TargetID string `json:"target_id" validate:"required,uuid4"`
	Decision string `json:"decision" validate:"required,oneof=like pass"`
}

// SwipeResult is returned after recording a swipe. Match is non-nil only
// when the swipe was a like and the target had already liked the swiper.
type SwipeResult struct {
	Swipe *SwipeAction `json:"swipe"`
	Match *Match       `json:"match,omitempty"`
}
