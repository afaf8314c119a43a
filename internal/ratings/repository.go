// internal/ratings/repository.go

package ratings

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Repository defines rating storage operations
type Repository interface {
	Create(ctx context.Context, rating *Rating) error
	Update(ctx context.Context, matchID, raterID string, req *SubmitRatingRequest) (*Rating, error)
	ListByRater(ctx context.Context, raterID string) ([]*Rating, error)
	GetSummary(ctx context.Context, ratedID string) (*Summary, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a Postgres-backed rating repository
func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, rating *Rating) error {
	if rating.ID == "" {
		rating.ID = uuid.NewString()
	}
	query := `
		INSERT INTO date_ratings (id, match_id, rater_id, rated_id, overall,
			communication, chemistry, respectfulness, would_meet_again, comment)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		rating.ID, rating.MatchID, rating.RaterID, rating.RatedID, rating.Overall,
		rating.Communication, rating.Chemistry, rating.Respectfulness,
		rating.WouldMeetAgain, rating.Comment,
	).Scan(&rating.CreatedAt, &rating.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrAlreadyRated
		}
		return fmt.Errorf("failed to create rating: %w", err)
	}
	return nil
}

// Update overwrites the caller's existing rating for the match. The row
// keyed by (match_id, rater_id) must already exist.
func (r *postgresRepository) Update(ctx context.Context, matchID, raterID string, req *SubmitRatingRequest) (*Rating, error) {
	query := `
		UPDATE date_ratings
		SET overall = $3, communication = $4, chemistry = $5, respectfulness = $6,
		    would_meet_again = $7, comment = $8, updated_at = NOW()
		WHERE match_id = $1 AND rater_id = $2
		RETURNING id, match_id, rater_id, rated_id, overall, communication,
		          chemistry, respectfulness, would_meet_again, comment, created_at, updated_at`

	var rating Rating
	err := r.db.GetContext(ctx, &rating, query, matchID, raterID,
		req.Overall, req.Communication, req.Chemistry, req.Respectfulness,
		req.WouldMeetAgain, req.Comment)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrRatingNotFound
		}
		return nil, fmt.Errorf("failed to update rating: %w", err)
	}
	return &rating, nil
}

func (r *postgresRepository) ListByRater(ctx context.Context, raterID string) ([]*Rating, error) {
	list := []*Rating{}
	query := `
		SELECT id, match_id, rater_id, rated_id, overall, communication,
		       chemistry, respectfulness, would_meet_again, comment, created_at, updated_at
		FROM date_ratings
		WHERE rater_id = $1
		ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &list, query, raterID); err != nil {
		return nil, fmt.Errorf("failed to list ratings: %w", err)
	}
	return list, nil
}

func (r *postgresRepository) GetSummary(ctx context.Context, ratedID string) (*Summary, error) {
	summary := Summary{RatedID: ratedID}
	query := `
		SELECT COUNT(*) AS count,
		       COALESCE(AVG(overall), 0) AS average_overall,
		       COALESCE(AVG(communication), 0) AS average_communication,
		       COALESCE(AVG(chemistry), 0) AS average_chemistry,
		       COALESCE(AVG(respectfulness), 0) AS average_respectfulness,
		       COALESCE(AVG(CASE WHEN would_meet_again THEN 1.0 ELSE 0.0 END), 0) AS would_meet_again_rate
		FROM date_ratings
		WHERE rated_id = $1`

	row := r.db.QueryRowContext(ctx, query, ratedID)
	err := row.Scan(&summary.Count, &summary.AverageOverall, &summary.AverageCommunication,
		&summary.AverageChemistry, &summary.AverageRespect, &summary.WouldMeetAgainRate)
	if err != nil {
		return nil, fmt.Errorf("failed to get rating summary: %w", err)
	}
	return &summary, nil
}
