// internal/matching/scorer.go
// Compatibility scoring between two profiles.
//
// A score is the sum of six factors, clamped to [0, 100]:
//
//	age compatibility    0-15
//	interest overlap     0-25
//	proximity            0-20
//	profile completeness 0-20 (candidate side)
//	activity recency     0-10 (candidate side)
//	verification         0-10 (5 per verified side)

package matching

import (
	"math"
	"time"

	"github.com/kritsanan1/thai-vid-match/internal/profile"
)

const (
	ageFactorMax          = 15.0
	interestFactorMax     = 25.0
	interestPointsPer     = 5.0
	proximityFactorMax    = 20.0
	proximityKmPerPoint   = 5.0
	completenessFactorMax = 20.0
	recencyFactorMax      = 10.0
	verificationPerSide   = 5.0
)

// Scorer computes compatibility scores. The clock is injectable so recency
// behavior is testable.
type Scorer struct {
	now func() time.Time
}

// NewScorer creates a scorer using the wall clock
func NewScorer() *Scorer {
	return &Scorer{now: time.Now}
}

// Score computes the compatibility of candidate for subject. Returns
// ErrInvalidProfile when either profile is missing an age.
func (s *Scorer) Score(subject, candidate *profile.Profile) (*ScoreResult, error) {
	if subject == nil || candidate == nil {
		return nil, ErrInvalidProfile
	}
	if subject.Age <= 0 || candidate.Age <= 0 {
		return nil, ErrInvalidProfile
	}

	factors := ScoreFactors{
		AgeCompatibility:    ageFactor(subject.Age, candidate.Age),
		ProfileCompleteness: completenessFactor(candidate),
		ActivityRecency:     recencyFactor(candidate.LastActiveAt, s.now()),
		Verification:        verificationFactor(subject, candidate),
	}
	factors.InterestOverlap, factors.CommonInterests = interestFactor(subject.Interests, candidate.Interests)
	factors.Proximity = proximityFactor(subject, candidate)

	total := factors.AgeCompatibility +
		factors.InterestOverlap +
		factors.Proximity +
		factors.ProfileCompleteness +
		factors.ActivityRecency +
		factors.Verification

	return &ScoreResult{
		SubjectID:   subject.UserID,
		CandidateID: candidate.UserID,
		Score:       clampScore(total),
		Factors:     factors,
		ComputedAt:  s.now(),
	}, nil
}

// ageFactor awards 15 points for identical ages, losing one point per
// year of difference.
func ageFactor(age1, age2 int) float64 {
	diff := math.Abs(float64(age1 - age2))
	return math.Max(0, ageFactorMax-diff)
}

// interestFactor awards 5 points per shared interest, capped at 25.
// Also returns the shared interests themselves for the breakdown.
func interestFactor(subject, candidate []string) (float64, []string) {
	candidateSet := make(map[string]struct{}, len(candidate))
	for _, interest := range candidate {
		candidateSet[interest] = struct{}{}
	}

	common := []string{}
	for _, interest := range subject {
		if _, ok := candidateSet[interest]; ok {
			common = append(common, interest)
		}
	}

	points := math.Min(interestFactorMax, interestPointsPer*float64(len(common)))
	return points, common
}

// proximityFactor awards 20 points at zero distance, losing one point per
// 5 km. Contributes nothing unless both profiles have coordinates.
func proximityFactor(subject, candidate *profile.Profile) float64 {
	if !subject.HasCoordinates() || !candidate.HasCoordinates() {
		return 0
	}
	km := Distance(*subject.Latitude, *subject.Longitude, *candidate.Latitude, *candidate.Longitude)
	return math.Max(0, proximityFactorMax-km/proximityKmPerPoint)
}

func completenessFactor(candidate *profile.Profile) float64 {
	return float64(candidate.CompletenessScore()) / 100 * completenessFactorMax
}

// recencyFactor maps the candidate's last activity onto a step curve:
// within a day earns the full 10 points, decaying to nothing past 30 days.
func recencyFactor(lastActive time.Time, now time.Time) float64 {
	if lastActive.IsZero() {
		return 0
	}
	days := now.Sub(lastActive).Hours() / 24

	var fraction float64
	switch {
	case days <= 1:
		fraction = 1.0
	case days <= 3:
		fraction = 0.8
	case days <= 7:
		fraction = 0.6
	case days <= 14:
		fraction = 0.4
	case days <= 30:
		fraction = 0.2
	default:
		fraction = 0
	}
	return recencyFactorMax * fraction
}

func verificationFactor(subject, candidate *profile.Profile) float64 {
	points := 0.0
	if subject.IsVerified() {
		points += verificationPerSide
	}
	if candidate.IsVerified() {
		points += verificationPerSide
	}
	return points
}

func clampScore(score float64) float64 {
	return math.Max(0, math.Min(100, score))
}
