// internal/common/utils/validator_test.go

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateStructFieldMessages(t *testing.T) {
	type payload struct {
		Email    string `validate:"required,email"`
		TargetID string `validate:"required,uuid4"`
		Age      int    `validate:"min=18"`
	}

	err := ValidateStruct(&payload{
		Email:    "not-an-email",
		TargetID: "not-a-uuid",
		Age:      15,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Email must be a valid email")
	assert.Contains(t, err.Error(), "TargetID must be a valid UUID")
	assert.Contains(t, err.Error(), "Age must be at least 18")
}

func TestValidateStructAcceptsValidPayload(t *testing.T) {
	type payload struct {
		TargetID string `validate:"required,uuid4"`
	}

	err := ValidateStruct(&payload{TargetID: "3f2c9e0a-7b1d-4c8e-9a6f-2d5b8c1e4a7f"})
	assert.NoError(t, err)
}
