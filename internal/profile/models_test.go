// internal/profile/models_test.go

package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestCompletenessScoreEmptyProfile(t *testing.T) {
	p := &Profile{}
	assert.Equal(t, 0, p.CompletenessScore())
}

func TestCompletenessScoreFullProfile(t *testing.T) {
	p := &Profile{
		Bio:             strPtr("Coffee person, weekend hiker"),
		ProfileImages:   []string{"a.jpg", "b.jpg"},
		ProfileVideoURL: strPtr("intro.mp4"),
		Interests:       []string{"coffee", "hiking", "movies", "music"},
	}
	assert.Equal(t, 100, p.CompletenessScore())
}

func TestCompletenessScorePartial(t *testing.T) {
	cases := []struct {
		name     string
		profile  Profile
		expected int
	}{
		{"bio only", Profile{Bio: strPtr("hi")}, 25},
		{"empty bio doesn't count", Profile{Bio: strPtr("")}, 0},
		{"one image is not enough", Profile{ProfileImages: []string{"a.jpg"}}, 0},
		{"two images", Profile{ProfileImages: []string{"a.jpg", "b.jpg"}}, 25},
		{"video only", Profile{ProfileVideoURL: strPtr("v.mp4")}, 25},
		{"three interests is not enough", Profile{Interests: []string{"a", "b", "c"}}, 0},
		{"four interests", Profile{Interests: []string{"a", "b", "c", "d"}}, 25},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.profile.CompletenessScore())
		})
	}
}

func TestHasCoordinates(t *testing.T) {
	lat, lon := 13.7563, 100.5018

	assert.False(t, (&Profile{}).HasCoordinates())
	assert.False(t, (&Profile{Latitude: &lat}).HasCoordinates())
	assert.True(t, (&Profile{Latitude: &lat, Longitude: &lon}).HasCoordinates())
}

func TestIsVerified(t *testing.T) {
	assert.False(t, (&Profile{VerificationStatus: VerificationUnverified}).IsVerified())
	assert.True(t, (&Profile{VerificationStatus: VerificationVerified}).IsVerified())
}
