// internal/matching/repository.go
// Postgres-backed swipe and match storage

package matching

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Repository defines swipe and match storage operations
type Repository interface {
	CreateSwipe(ctx context.Context, swipe *SwipeAction) error
	HasLiked(ctx context.Context, swiperID, swipedID string) (bool, error)
	CountLikedBy(ctx context.Context, swipedID string) (int64, error)
	ListSwipedTargets(ctx context.Context, swiperID string) ([]string, error)

	// CreateMatchIfAbsent inserts a match for the pair, or returns the
	// existing one when a concurrent or earlier resolution already
	// created it. Callers pass user IDs in any order.
	CreateMatchIfAbsent(ctx context.Context, userA, userB string) (*Match, error)
	GetMatchByID(ctx context.Context, matchID string) (*Match, error)
	GetMatchByPair(ctx context.Context, userA, userB string) (*Match, error)
	ListUserMatches(ctx context.Context, userID string) ([]*Match, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a Postgres-backed matching repository
func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateSwipe(ctx context.Context, swipe *SwipeAction) error {
	if swipe.ID == "" {
		swipe.ID = uuid.NewString()
	}
	query := `
		INSERT INTO swipe_actions (id, swiper_id, swiped_id, decision)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query, swipe.ID, swipe.SwiperID, swipe.SwipedID, swipe.Decision).
		Scan(&swipe.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrDuplicateSwipe
		}
		return fmt.Errorf("failed to create swipe: %w", err)
	}
	return nil
}

func (r *postgresRepository) HasLiked(ctx context.Context, swiperID, swipedID string) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM swipe_actions
			WHERE swiper_id = $1 AND swiped_id = $2 AND decision = $3
		)`
	if err := r.db.GetContext(ctx, &exists, query, swiperID, swipedID, DecisionLike); err != nil {
		return false, fmt.Errorf("failed to check like: %w", err)
	}
	return exists, nil
}

// CountLikedBy returns how many users have liked the given user
func (r *postgresRepository) CountLikedBy(ctx context.Context, swipedID string) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM swipe_actions WHERE swiped_id = $1 AND decision = $2`
	if err := r.db.GetContext(ctx, &count, query, swipedID, DecisionLike); err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return count, nil
}

func (r *postgresRepository) ListSwipedTargets(ctx context.Context, swiperID string) ([]string, error) {
	targets := []string{}
	query := `SELECT swiped_id FROM swipe_actions WHERE swiper_id = $1`
	if err := r.db.SelectContext(ctx, &targets, query, swiperID); err != nil {
		return nil, fmt.Errorf("failed to list swiped targets: %w", err)
	}
	return targets, nil
}

func (r *postgresRepository) CreateMatchIfAbsent(ctx context.Context, userA, userB string) (*Match, error) {
	user1, user2 := canonicalPair(userA, userB)

	// ON CONFLICT DO NOTHING then read back: under a race, the loser
	// observes the winner's row and both callers see the same match.
	insert := `
		INSERT INTO matches (id, user1_id, user2_id, status)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user1_id, user2_id) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, insert, uuid.NewString(), user1, user2, MatchStatusMatched); err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	return r.GetMatchByPair(ctx, user1, user2)
}

func (r *postgresRepository) GetMatchByID(ctx context.Context, matchID string) (*Match, error) {
	var match Match
	query := `
		SELECT id, user1_id, user2_id, status, created_at, updated_at
		FROM matches WHERE id = $1`
	err := r.db.GetContext(ctx, &match, query, matchID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	return &match, nil
}

func (r *postgresRepository) GetMatchByPair(ctx context.Context, userA, userB string) (*Match, error) {
	user1, user2 := canonicalPair(userA, userB)

	var match Match
	query := `
		SELECT id, user1_id, user2_id, status, created_at, updated_at
		FROM matches WHERE user1_id = $1 AND user2_id = $2`
	err := r.db.GetContext(ctx, &match, query, user1, user2)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	return &match, nil
}

func (r *postgresRepository) ListUserMatches(ctx context.Context, userID string) ([]*Match, error) {
	matches := []*Match{}
	query := `
		SELECT id, user1_id, user2_id, status, created_at, updated_at
		FROM matches
		WHERE (user1_id = $1 OR user2_id = $1) AND status = $2
		ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &matches, query, userID, MatchStatusMatched); err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return matches, nil
}
