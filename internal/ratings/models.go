// internal/ratings/models.go
// Post-date rating models

package ratings

import "time"

// Rating is one participant's review of a date that came out of a match.
// Each participant may rate a given match once.
type Rating struct {
	ID             string    `json:"id" db:"id"`
	MatchID        string    `json:"match_id" db:"match_id"`
	RaterID        string    `json:"rater_id" db:"rater_id"`
	RatedID        string    `json:"rated_id" db:"rated_id"`
	Overall        int       `json:"overall" db:"overall"`
	Communication  int       `json:"communication" db:"communication"`
	Chemistry      int       `json:"chemistry" db:"chemistry"`
	Respectfulness int       `json:"respectfulness" db:"respectfulness"`
	WouldMeetAgain bool      `json:"would_meet_again" db:"would_meet_again"`
	Comment        *string   `json:"comment,omitempty" db:"comment"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// SubmitRatingRequest is the body of POST /api/v1/matches/{matchId}/ratings
type SubmitRatingRequest struct {
	Overall        int     `json:"overall" validate:"required,min=1,max=5"`
	Communication  int     `json:"communication" validate:"required,min=1,max=5"`
	Chemistry      int     `json:"chemistry" validate:"required,min=1,max=5"`
	Respectfulness int     `json:"respectfulness" validate:"required,min=1,max=5"`
	WouldMeetAgain bool    `json:"would_meet_again"`
	Comment        *string `json:"comment" validate:"omitempty,max=1000"`
}

// Summary aggregates the ratings a user has received
type Summary struct {
	RatedID              string  `json:"rated_id"`
	Count                int     `json:"count"`
	AverageOverall       float64 `json:"average_overall"`
	AverageCommunication float64 `json:"average_communication"`
	AverageChemistry     float64 `json:"average_chemistry"`
	AverageRespect       float64 `json:"average_respectfulness"`
	WouldMeetAgainRate   float64 `json:"would_meet_again_rate"`
}
