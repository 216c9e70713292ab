package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentError(t *testing.T) {
	err := NewPaymentError("GATEWAY_ERROR", "Payment gateway error", CategorySystemError, true)

	assert.Equal(t, "GATEWAY_ERROR: Payment gateway error", err.Error())
	assert.True(t, err.IsRetriable)
	assert.NotNil(t, err.Details)

	err.GatewayMessage = "502 Bad Gateway"
	assert.Equal(t, "GATEWAY_ERROR: Payment gateway error (gateway: 502 Bad Gateway)", err.Error())
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("profile_id", "profile_id is required")
	assert.Equal(t, "validation error on field 'profile_id': profile_id is required", err.Error())
}

func TestConfigurationError(t *testing.T) {
	err := NewConfigurationError("credentials", "login and password are required")
	assert.Equal(t, "configuration error on 'credentials': login and password are required", err.Error())
}

func TestErrorsUnwrapThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("purchase: %w", NewValidationError("number", "number is required"))

	var vErr *ValidationError
	require.True(t, errors.As(wrapped, &vErr))
	assert.Equal(t, "number", vErr.Field)
}
