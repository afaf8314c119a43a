// internal/profile/service.go
// Profile business logic

package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/kritsanan1/thai-vid-match/internal/common/utils"
	"github.com/kritsanan1/thai-vid-match/internal/config"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrProfileExists   = errors.New("profile already exists")
	ErrInvalidRequest  = errors.New("invalid request")
)

// Service defines profile business operations
type Service interface {
	SetupProfile(ctx context.Context, userID string, req *SetupProfileRequest) (*Profile, error)
	GetProfile(ctx context.Context, userID string) (*Profile, error)
	UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest) (*Profile, error)
	GetCompletion(ctx context.Context, userID string) (*CompletionResponse, error)
	RecordActivity(ctx context.Context, userID string) error

	GetPreferences(ctx context.Context, userID string) (*Preferences, error)
	UpdatePreferences(ctx context.Context, userID string, req *UpdatePreferencesRequest) (*Preferences, error)
	SetSafeMode(ctx context.Context, userID string, req *SafeModeRequest) (*Preferences, error)
}

type service struct {
	repo Repository
	cfg  *config.Config
}

// NewService creates a profile service
func NewService(repo Repository, cfg *config.Config) Service {
	return &service{repo: repo, cfg: cfg}
}

// checkConstraints applies the configured profile limits on top of the
// schema-level validator tags.
func (s *service) checkConstraints(age *int, interests []string) error {
	if age != nil && (*age < s.cfg.MinAge || *age > s.cfg.MaxAge) {
		return fmt.Errorf("%w: age must be between %d and %d", ErrInvalidRequest, s.cfg.MinAge, s.cfg.MaxAge)
	}
	if interests != nil && len(interests) > s.cfg.MaxInterests {
		return fmt.Errorf("%w: at most %d interests allowed", ErrInvalidRequest, s.cfg.MaxInterests)
	}
	return nil
}

func (s *service) SetupProfile(ctx context.Context, userID string, req *SetupProfileRequest) (*Profile, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	// Coordinates are only meaningful as a pair
	if (req.Latitude == nil) != (req.Longitude == nil) {
		return nil, fmt.Errorf("%w: latitude and longitude must be set together", ErrInvalidRequest)
	}
	if err := s.checkConstraints(&req.Age, req.Interests); err != nil {
		return nil, err
	}

	profile := &Profile{
		UserID:             userID,
		FullName:           req.FullName,
		DisplayName:        req.DisplayName,
		Age:                req.Age,
		Gender:             req.Gender,
		Bio:                req.Bio,
		Interests:          req.Interests,
		Latitude:           req.Latitude,
		Longitude:          req.Longitude,
		ProfileImages:      req.ProfileImages,
		ProfileVideoURL:    req.ProfileVideoURL,
		VerificationStatus: VerificationUnverified,
		IsActive:           true,
	}
	if err := s.repo.Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *service) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *service) UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest) (*Profile, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if (req.Latitude == nil) != (req.Longitude == nil) {
		return nil, fmt.Errorf("%w: latitude and longitude must be set together", ErrInvalidRequest)
	}
	if err := s.checkConstraints(req.Age, req.Interests); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, userID, req)
}

func (s *service) GetCompletion(ctx context.Context, userID string) (*CompletionResponse, error) {
	profile, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &CompletionResponse{Score: profile.CompletenessScore()}
	if profile.Bio == nil || *profile.Bio == "" {
		resp.Missing = append(resp.Missing, "bio")
	}
	if profile.ImageCount() < 2 {
		resp.Missing = append(resp.Missing, "profile_images")
	}
	if !profile.HasVideo() {
		resp.Missing = append(resp.Missing, "profile_video")
	}
	if len(profile.Interests) <= 3 {
		resp.Missing = append(resp.Missing, "interests")
	}
	return resp, nil
}

func (s *service) RecordActivity(ctx context.Context, userID string) error {
	return s.repo.TouchLastActive(ctx, userID)
}

func (s *service) GetPreferences(ctx context.Context, userID string) (*Preferences, error) {
	return s.repo.GetPreferences(ctx, userID)
}

func (s *service) UpdatePreferences(ctx context.Context, userID string, req *UpdatePreferencesRequest) (*Preferences, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if req.PreferredMinAge != nil && req.PreferredMaxAge != nil && *req.PreferredMinAge > *req.PreferredMaxAge {
		return nil, fmt.Errorf("%w: preferred_min_age cannot exceed preferred_max_age", ErrInvalidRequest)
	}
	return s.repo.UpdatePreferences(ctx, userID, req)
}

func (s *service) SetSafeMode(ctx context.Context, userID string, req *SafeModeRequest) (*Preferences, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return s.repo.SetSafeMode(ctx, userID, req.Enabled, req.ReminderDays)
}
