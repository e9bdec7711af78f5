package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type coordinatePayload struct {
	Latitude  float64 `validate:"latitude"`
	Longitude float64 `validate:"longitude"`
}

func TestValidateStruct(t *testing.T) {
	require.NoError(t, ValidateStruct(coordinatePayload{Latitude: 25.2, Longitude: 55.27}))
	require.NoError(t, ValidateStruct(coordinatePayload{Latitude: 0, Longitude: 0}))

	err := ValidateStruct(coordinatePayload{Latitude: 95, Longitude: 55.27})
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "Latitude")
}

func TestValidateCoordinates(t *testing.T) {
	tests := []struct {
		name    string
		lat     float64
		lng     float64
		wantErr bool
	}{
		{"valid", 25.2, 55.27, false},
		{"equator and prime meridian", 0, 0, false},
		{"boundary values", 90, 180, false},
		{"negative boundary values", -90, -180, false},
		{"latitude too high", 90.1, 0, true},
		{"latitude too low", -90.1, 0, true},
		{"longitude too high", 0, 180.1, true},
		{"longitude too low", 0, -180.1, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateCoordinates(tc.lat, tc.lng)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateDistance(t *testing.T) {
	assert.NoError(t, ValidateDistance(0))
	assert.NoError(t, ValidateDistance(42.5))
	assert.Error(t, ValidateDistance(-0.1))
	assert.Error(t, ValidateDistance(10001))
}

func TestValidateDuration(t *testing.T) {
	assert.NoError(t, ValidateDuration(0))
	assert.NoError(t, ValidateDuration(95))
	assert.Error(t, ValidateDuration(-1))
}

func TestValidationError_Error(t *testing.T) {
	var ve ValidationError
	assert.Equal(t, "validation failed", ve.Error())

	ve.AddError("distance_km", "cannot be negative")
	assert.Contains(t, ve.Error(), "distance_km: cannot be negative")
}
