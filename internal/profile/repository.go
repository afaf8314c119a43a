// internal/profile/repository.go
// Postgres-backed profile and preferences storage

package profile

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Repository defines profile storage operations
type Repository interface {
	Create(ctx context.Context, profile *Profile) error
	GetByUserID(ctx context.Context, userID string) (*Profile, error)
	Update(ctx context.Context, userID string, req *UpdateProfileRequest) (*Profile, error)
	TouchLastActive(ctx context.Context, userID string) error
	ListDiscoverable(ctx context.Context, excludeUserIDs []string, limit int) ([]*Profile, error)

	GetPreferences(ctx context.Context, userID string) (*Preferences, error)
	UpdatePreferences(ctx context.Context, userID string, req *UpdatePreferencesRequest) (*Preferences, error)
	SetSafeMode(ctx context.Context, userID string, enabled bool, reminderDays *int) (*Preferences, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a Postgres-backed profile repository
func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

const profileColumns = `user_id, full_name, display_name, age, gender, bio, interests,
	latitude, longitude, profile_images, profile_video_url, verification_status,
	is_active, last_active_at, created_at, updated_at`

func (r *postgresRepository) Create(ctx context.Context, profile *Profile) error {
	query := `
		INSERT INTO user_profiles (user_id, full_name, display_name, age, gender, bio, interests,
			latitude, longitude, profile_images, profile_video_url, verification_status, is_active, last_active_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW())
		RETURNING created_at, updated_at, last_active_at`

	err := r.db.QueryRowContext(ctx, query,
		profile.UserID, profile.FullName, profile.DisplayName, profile.Age, profile.Gender,
		profile.Bio, pq.Array(profile.Interests), profile.Latitude, profile.Longitude,
		pq.Array(profile.ProfileImages), profile.ProfileVideoURL, profile.VerificationStatus,
		profile.IsActive,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt, &profile.LastActiveAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrProfileExists
		}
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByUserID(ctx context.Context, userID string) (*Profile, error) {
	var profile Profile
	query := `SELECT ` + profileColumns + ` FROM user_profiles WHERE user_id = $1`
	err := r.db.GetContext(ctx, &profile, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &profile, nil
}

// Update applies only the fields present on the request, building the
// SET clause dynamically the same way the rest of the storage layer does.
func (r *postgresRepository) Update(ctx context.Context, userID string, req *UpdateProfileRequest) (*Profile, error) {
	setClauses := []string{}
	args := []interface{}{}
	argIdx := 1

	addSet := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argIdx))
		args = append(args, value)
		argIdx++
	}

	if req.FullName != nil {
		addSet("full_name", *req.FullName)
	}
	if req.DisplayName != nil {
		addSet("display_name", *req.DisplayName)
	}
	if req.Age != nil {
		addSet("age", *req.Age)
	}
	if req.Bio != nil {
		addSet("bio", *req.Bio)
	}
	if req.Interests != nil {
		addSet("interests", pq.Array(req.Interests))
	}
	if req.Latitude != nil {
		addSet("latitude", *req.Latitude)
	}
	if req.Longitude != nil {
		addSet("longitude", *req.Longitude)
	}
	if req.ProfileImages != nil {
		addSet("profile_images", pq.Array(req.ProfileImages))
	}
	if req.ProfileVideoURL != nil {
		addSet("profile_video_url", *req.ProfileVideoURL)
	}

	if len(setClauses) == 0 {
		return r.GetByUserID(ctx, userID)
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	args = append(args, userID)

	query := fmt.Sprintf(`UPDATE user_profiles SET %s WHERE user_id = $%d RETURNING `+profileColumns,
		strings.Join(setClauses, ", "), argIdx)

	var profile Profile
	err := r.db.GetContext(ctx, &profile, query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return &profile, nil
}

func (r *postgresRepository) TouchLastActive(ctx context.Context, userID string) error {
	query := `UPDATE user_profiles SET last_active_at = NOW() WHERE user_id = $1`
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to touch last active: %w", err)
	}
	return nil
}

// ListDiscoverable returns active profiles that are visible on discovery,
// excluding the given user IDs, most recently active first.
func (r *postgresRepository) ListDiscoverable(ctx context.Context, excludeUserIDs []string, limit int) ([]*Profile, error) {
	if excludeUserIDs == nil {
		excludeUserIDs = []string{}
	}
	query := `
		SELECT ` + prefixedProfileColumns("p") + `
		FROM user_profiles p
		LEFT JOIN user_preferences pref ON pref.user_id = p.user_id
		WHERE p.is_active = TRUE
		  AND COALESCE(pref.show_on_discovery, TRUE) = TRUE
		  AND NOT (p.user_id = ANY($1))
		ORDER BY p.last_active_at DESC
		LIMIT $2`

	profiles := []*Profile{}
	err := r.db.SelectContext(ctx, &profiles, query, pq.Array(excludeUserIDs), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list discoverable profiles: %w", err)
	}
	return profiles, nil
}

func prefixedProfileColumns(alias string) string {
	cols := strings.Split(profileColumns, ",")
	for i, c := range cols {
		cols[i] = alias + "." + strings.TrimSpace(c)
	}
	return strings.Join(cols, ", ")
}

const preferencesColumns = `user_id, preferred_min_age, preferred_max_age, max_distance_km,
	show_on_discovery, safe_mode_enabled, safe_mode_activated_at, safe_mode_reminder_days,
	last_safe_mode_reminder, created_at, updated_at`

// GetPreferences returns the stored preferences, creating a default row on first read
func (r *postgresRepository) GetPreferences(ctx context.Context, userID string) (*Preferences, error) {
	var prefs Preferences
	query := `
		INSERT INTO user_preferences (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING ` + preferencesColumns
	err := r.db.GetContext(ctx, &prefs, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get preferences: %w", err)
	}
	return &prefs, nil
}

func (r *postgresRepository) UpdatePreferences(ctx context.Context, userID string, req *UpdatePreferencesRequest) (*Preferences, error) {
	if _, err := r.GetPreferences(ctx, userID); err != nil {
		return nil, err
	}

	setClauses := []string{}
	args := []interface{}{}
	argIdx := 1

	addSet := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argIdx))
		args = append(args, value)
		argIdx++
	}

	if req.PreferredMinAge != nil {
		addSet("preferred_min_age", *req.PreferredMinAge)
	}
	if req.PreferredMaxAge != nil {
		addSet("preferred_max_age", *req.PreferredMaxAge)
	}
	if req.MaxDistanceKm != nil {
		addSet("max_distance_km", *req.MaxDistanceKm)
	}
	if req.ShowOnDiscovery != nil {
		addSet("show_on_discovery", *req.ShowOnDiscovery)
	}

	if len(setClauses) == 0 {
		return r.GetPreferences(ctx, userID)
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	args = append(args, userID)

	query := fmt.Sprintf(`UPDATE user_preferences SET %s WHERE user_id = $%d RETURNING `+preferencesColumns,
		strings.Join(setClauses, ", "), argIdx)

	var prefs Preferences
	if err := r.db.GetContext(ctx, &prefs, query, args...); err != nil {
		return nil, fmt.Errorf("failed to update preferences: %w", err)
	}
	return &prefs, nil
}

func (r *postgresRepository) SetSafeMode(ctx context.Context, userID string, enabled bool, reminderDays *int) (*Preferences, error) {
	if _, err := r.GetPreferences(ctx, userID); err != nil {
		return nil, err
	}

	var activatedAt *time.Time
	if enabled {
		now := time.Now()
		activatedAt = &now
	}

	query := `
		UPDATE user_preferences
		SET safe_mode_enabled = $2,
		    safe_mode_activated_at = $3,
		    safe_mode_reminder_days = COALESCE($4, safe_mode_reminder_days),
		    updated_at = NOW()
		WHERE user_id = $1
		RETURNING ` + preferencesColumns

	var prefs Preferences
	if err := r.db.GetContext(ctx, &prefs, query, userID, enabled, activatedAt, reminderDays); err != nil {
		return nil, fmt.Errorf("failed to set safe mode: %w", err)
	}
	return &prefs, nil
}
