package kernel_test

import (
	"testing"

	"tracker/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const componentID = "1b4e28ba-2fa1-11d2-883f-0016d3cca427"

func TestNewUUID(t *testing.T) {
	first := kernel.NewUUID()
	second := kernel.NewUUID()

	require.NoError(t, first.Validate())
	assert.False(t, first.IsEqual(second))
	assert.Equal(t, uuid.Version(4), first.Bytes().Version())
}

func TestUUIDFromString(t *testing.T) {
	accepted := map[string]string{
		"canonical":  componentID,
		"braced":     "{" + componentID + "}",
		"urn":        "urn:uuid:" + componentID,
		"hyphenless": "1b4e28ba2fa111d2883f0016d3cca427",
	}
	for name, raw := range accepted {
		t.Run("should accept "+name+" form", func(t *testing.T) {
			id, err := kernel.UUIDFromString(raw)

			require.NoError(t, err)
			assert.Equal(t, componentID, id.String())
		})
	}

	for _, raw := range []string{"", "TAV-0042", componentID + "0", "1b4e28ba-2fa1-11d2-883f-0016d3cca42g"} {
		t.Run("should reject "+raw, func(t *testing.T) {
			_, err := kernel.UUIDFromString(raw)

			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid UUID format")
		})
	}
}

func TestUUIDFromBytes(t *testing.T) {
	t.Run("should round-trip stored bytes", func(t *testing.T) {
		original := kernel.NewUUID()
		stored := original.Bytes()

		restored, err := kernel.UUIDFromBytes(stored[:])

		require.NoError(t, err)
		assert.True(t, original.IsEqual(restored))
	})

	t.Run("should reject short slices", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes([]byte{1, 2, 3})

		require.Error(t, err)
	})

	t.Run("should reject the nil UUID", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes(make([]byte, 16))

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func TestUUID_Validate(t *testing.T) {
	var zero kernel.UUID

	require.ErrorIs(t, zero.Validate(), kernel.ErrUUIDIsNotConstructed)
	assert.Contains(t, zero.Validate().Error(), "value is required")
	assert.True(t, zero.IsEqual(kernel.UUID{}))
	assert.Equal(t, uuid.Nil.String(), zero.String())
}
