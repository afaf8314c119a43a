// internal/profile/models.go
// Profile and preference models plus request/response DTOs

package profile

import (
	"time"

	"github.com/lib/pq"
)

// Verification states for a profile
const (
	VerificationUnverified = "unverified"
	VerificationVerified   = "verified"
)

// Profile represents a user's dating profile
type Profile struct {
	UserID             string         `json:"user_id" db:"user_id"`
	FullName           string         `json:"full_name" db:"full_name"`
	DisplayName        *string        `json:"display_name,omitempty" db:"display_name"`
	Age                int            `json:"age" db:"age"`
	Gender             string         `json:"gender" db:"gender"`
	Bio                *string        `json:"bio,omitempty" db:"bio"`
	Interests          pq.StringArray `json:"interests" db:"interests"`
	Latitude           *float64       `json:"latitude,omitempty" db:"latitude"`
	Longitude          *float64       `json:"longitude,omitempty" db:"longitude"`
	ProfileImages      pq.StringArray `json:"profile_images" db:"profile_images"`
	ProfileVideoURL    *string        `json:"profile_video_url,omitempty" db:"profile_video_url"`
	VerificationStatus string         `json:"verification_status" db:"verification_status"`
	IsActive           bool           `json:"is_active" db:"is_active"`
	LastActiveAt       time.Time      `json:"last_active_at" db:"last_active_at"`
	CreatedAt          time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at" db:"updated_at"`
}

// HasCoordinates reports whether the profile carries a usable location.
// Latitude and longitude are optional but always set together.
func (p *Profile) HasCoordinates() bool {
	return p.Latitude != nil && p.Longitude != nil
}

// HasVideo reports whether the profile has an intro video
func (p *Profile) HasVideo() bool {
	return p.ProfileVideoURL != nil && *p.ProfileVideoURL != ""
}

// ImageCount returns the number of stored profile images
func (p *Profile) ImageCount() int {
	return len(p.ProfileImages)
}

// IsVerified reports whether the profile passed verification
func (p *Profile) IsVerified() bool {
	return p.VerificationStatus == VerificationVerified
}

// CompletenessScore returns a 0-100 completeness sub-score:
// 25 points each for a bio, at least 2 images, an intro video,
// and more than 3 interests.
func (p *Profile) CompletenessScore() int {
	score := 0
	if p.Bio != nil && *p.Bio != "" {
		score += 25
	}
	if p.ImageCount() >= 2 {
		score += 25
	}
	if p.HasVideo() {
		score += 25
	}
	if len(p.Interests) > 3 {
		score += 25
	}
	return score
}

// Preferences holds a user's discovery and safe-mode settings
type Preferences struct {
	UserID               string     `json:"user_id" db:"user_id"`
	PreferredMinAge      int        `json:"preferred_min_age" db:"preferred_min_age"`
	PreferredMaxAge      int        `json:"preferred_max_age" db:"preferred_max_age"`
	MaxDistanceKm        int        `json:"max_distance_km" db:"max_distance_km"`
	ShowOnDiscovery      bool       `json:"show_on_discovery" db:"show_on_discovery"`
	SafeModeEnabled      bool       `json:"safe_mode_enabled" db:"safe_mode_enabled"`
	SafeModeActivatedAt  *time.Time `json:"safe_mode_activated_at,omitempty" db:"safe_mode_activated_at"`
	SafeModeReminderDays int        `json:"safe_mode_reminder_days" db:"safe_mode_reminder_days"`
	LastSafeModeReminder *time.Time `json:"last_safe_mode_reminder,omitempty" db:"last_safe_mode_reminder"`
	CreatedAt            time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at" db:"updated_at"`
}

// SetupProfileRequest creates the initial profile after signup
type SetupProfileRequest struct {
	FullName        string   `json:"full_name" validate:"required,min=2,max=100"`
	DisplayName     *string  `json:"display_name" validate:"omitempty,min=2,max=100"`
	Age             int      `json:"age" validate:"required,min=18,max=100"`
	Gender          string   `json:"gender" validate:"required,oneof=male female non_binary prefer_not_to_say"`
	Bio             *string  `json:"bio" validate:"omitempty,max=500"`
	Interests       []string `json:"interests" validate:"omitempty,max=10,dive,min=1,max=50"`
	Latitude        *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude       *float64 `json:"longitude" validate:"omitempty,longitude"`
	ProfileImages   []string `json:"profile_images" validate:"omitempty,max=9,dive,url"`
	ProfileVideoURL *string  `json:"profile_video_url" validate:"omitempty,url"`
}

// UpdateProfileRequest represents a partial profile update
type UpdateProfileRequest struct {
	FullName        *string  `json:"full_name" validate:"omitempty,min=2,max=100"`
	DisplayName     *string  `json:"display_name" validate:"omitempty,min=2,max=100"`
	Age             *int     `json:"age" validate:"omitempty,min=18,max=100"`
	Bio             *string  `json:"bio" validate:"omitempty,max=500"`
	Interests       []string `json:"interests" validate:"omitempty,max=10,dive,min=1,max=50"`
	Latitude        *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude       *float64 `json:"longitude" validate:"omitempty,longitude"`
	ProfileImages   []string `json:"profile_images" validate:"omitempty,max=9,dive,url"`
	ProfileVideoURL *string  `json:"profile_video_url" validate:"omitempty,url"`
}

// UpdatePreferencesRequest updates discovery preferences
type UpdatePreferencesRequest struct {
	PreferredMinAge *int  `json:"preferred_min_age" validate:"omitempty,min=18,max=100"`
	PreferredMaxAge *int  `json:"preferred_max_age" validate:"omitempty,min=18,max=100"`
	MaxDistanceKm   *int  `json:"max_distance_km" validate:"omitempty,min=1,max=20000"`
	ShowOnDiscovery *bool `json:"show_on_discovery"`
}

// SafeModeRequest toggles safe mode and optionally adjusts the reminder cadence
type SafeModeRequest struct {
	Enabled      bool `json:"enabled"`
	ReminderDays *int `json:"reminder_days" validate:"omitempty,min=1,max=90"`
}

// CompletionResponse reports how complete a profile is
type CompletionResponse struct {
	Score   int      `json:"score"`
	Missing []string `json:"missing,omitempty"`
}
