// internal/profile/memory.go
// In-memory Repository used in tests and local development

package profile

import (
	"context"
	"sort"
	"sync"
	"time"
)

type memoryRepository struct {
	mu          sync.RWMutex
	profiles    map[string]*Profile
	preferences map[string]*Preferences
}

// NewMemoryRepository creates an in-memory profile repository that honors
// the same semantics as the Postgres implementation.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		profiles:    make(map[string]*Profile),
		preferences: make(map[string]*Preferences),
	}
}

func (r *memoryRepository) Create(ctx context.Context, profile *Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.profiles[profile.UserID]; exists {
		return ErrProfileExists
	}

	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now
	if profile.LastActiveAt.IsZero() {
		profile.LastActiveAt = now
	}

	stored := *profile
	r.profiles[profile.UserID] = &stored
	return nil
}

func (r *memoryRepository) GetByUserID(ctx context.Context, userID string) (*Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, ok := r.profiles[userID]
	if !ok {
		return nil, ErrProfileNotFound
	}
	copied := *profile
	return &copied, nil
}

func (r *memoryRepository) Update(ctx context.Context, userID string, req *UpdateProfileRequest) (*Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	profile, ok := r.profiles[userID]
	if !ok {
		return nil, ErrProfileNotFound
	}

	if req.FullName != nil {
		profile.FullName = *req.FullName
	}
	if req.DisplayName != nil {
		profile.DisplayName = req.DisplayName
	}
	if req.Age != nil {
		profile.Age = *req.Age
	}
	if req.Bio != nil {
		profile.Bio = req.Bio
	}
	if req.Interests != nil {
		profile.Interests = append([]string{}, req.Interests...)
	}
	if req.Latitude != nil {
		profile.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		profile.Longitude = req.Longitude
	}
	if req.ProfileImages != nil {
		profile.ProfileImages = append([]string{}, req.ProfileImages...)
	}
	if req.ProfileVideoURL != nil {
		profile.ProfileVideoURL = req.ProfileVideoURL
	}
	profile.UpdatedAt = time.Now()

	copied := *profile
	return &copied, nil
}

func (r *memoryRepository) TouchLastActive(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if profile, ok := r.profiles[userID]; ok {
		profile.LastActiveAt = time.Now()
	}
	return nil
}

func (r *memoryRepository) ListDiscoverable(ctx context.Context, excludeUserIDs []string, limit int) ([]*Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	excluded := make(map[string]struct{}, len(excludeUserIDs))
	for _, id := range excludeUserIDs {
		excluded[id] = struct{}{}
	}

	results := []*Profile{}
	for _, profile := range r.profiles {
		if !profile.IsActive {
			continue
		}
		if _, skip := excluded[profile.UserID]; skip {
			continue
		}
		if prefs, ok := r.preferences[profile.UserID]; ok && !prefs.ShowOnDiscovery {
			continue
		}
		copied := *profile
		results = append(results, &copied)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].LastActiveAt.After(results[j].LastActiveAt)
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (r *memoryRepository) getOrCreatePreferences(userID string) *Preferences {
	prefs, ok := r.preferences[userID]
	if !ok {
		now := time.Now()
		prefs = &Preferences{
			UserID:               userID,
			PreferredMinAge:      18,
			PreferredMaxAge:      100,
			MaxDistanceKm:        100,
			ShowOnDiscovery:      true,
			SafeModeReminderDays: 7,
			CreatedAt:            now,
			UpdatedAt:            now,
		}
		r.preferences[userID] = prefs
	}
	return prefs
}

func (r *memoryRepository) GetPreferences(ctx context.Context, userID string) (*Preferences, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *r.getOrCreatePreferences(userID)
	return &copied, nil
}

func (r *memoryRepository) UpdatePreferences(ctx context.Context, userID string, req *UpdatePreferencesRequest) (*Preferences, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prefs := r.getOrCreatePreferences(userID)
	if req.PreferredMinAge != nil {
		prefs.PreferredMinAge = *req.PreferredMinAge
	}
	if req.PreferredMaxAge != nil {
		prefs.PreferredMaxAge = *req.PreferredMaxAge
	}
	if req.MaxDistanceKm != nil {
		prefs.MaxDistanceKm = *req.MaxDistanceKm
	}
	if req.ShowOnDiscovery != nil {
		prefs.ShowOnDiscovery = *req.ShowOnDiscovery
	}
	prefs.UpdatedAt = time.Now()

	copied := *prefs
	return &copied, nil
}

func (r *memoryRepository) SetSafeMode(ctx context.Context, userID string, enabled bool, reminderDays *int) (*Preferences, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prefs := r.getOrCreatePreferences(userID)
	prefs.SafeModeEnabled = enabled
	if enabled {
		now := time.Now()
		prefs.SafeModeActivatedAt = &now
	} else {
		prefs.SafeModeActivatedAt = nil
	}
	if reminderDays != nil {
		prefs.SafeModeReminderDays = *reminderDays
	}
	prefs.UpdatedAt = time.Now()

	copied := *prefs
	return &copied, nil
}
