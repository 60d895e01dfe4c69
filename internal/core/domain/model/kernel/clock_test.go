package kernel_test

import (
	"testing"
	"time"

	"tracker/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
)

func TestSystemClock_Now(t *testing.T) {
	t.Run("should return current time in UTC", func(t *testing.T) {
		before := time.Now().UTC()
		now := kernel.NewSystemClock().Now()
		after := time.Now().UTC()

		assert.Equal(t, time.UTC, now.Location())
		assert.False(t, now.Before(before))
		assert.False(t, now.After(after))
	})
}

func TestFixedClock(t *testing.T) {
	start := time.Date(2025, time.March, 3, 8, 30, 0, 0, time.UTC)

	t.Run("should return the preset instant", func(t *testing.T) {
		clock := kernel.NewFixedClock(start)

		assert.Equal(t, start, clock.Now())
		assert.Equal(t, start, clock.Now())
	})

	t.Run("should move with Advance", func(t *testing.T) {
		clock := kernel.NewFixedClock(start)

		clock.Advance(90 * time.Minute)

		assert.Equal(t, start.Add(90*time.Minute), clock.Now())
	})

	t.Run("should jump with Set", func(t *testing.T) {
		clock := kernel.NewFixedClock(start)
		later := start.AddDate(0, 1, 0)

		clock.Set(later)

		assert.Equal(t, later, clock.Now())
	})

	t.Run("should satisfy Clock", func(t *testing.T) {
		var clock kernel.Clock = kernel.NewFixedClock(start)
		assert.Equal(t, start, clock.Now())
	})
}
