package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPolicyDefaults(t *testing.T) {
	t.Setenv("CANCELLATION_BUFFER_HOURS", "")
	t.Setenv("HOLD_TTL_MINUTES", "")

	assert.Equal(t, 2*time.Hour, CancellationBuffer())
	assert.Equal(t, 15*time.Minute, HoldTTL())
}

func TestPolicyOverridesFromEnvironment(t *testing.T) {
	t.Setenv("CANCELLATION_BUFFER_HOURS", "6")
	t.Setenv("HOLD_TTL_MINUTES", "5")

	assert.Equal(t, 6*time.Hour, CancellationBuffer())
	assert.Equal(t, 5*time.Minute, HoldTTL())
}

func TestPolicyIgnoresGarbageValues(t *testing.T) {
	t.Setenv("CANCELLATION_BUFFER_HOURS", "soon")

	assert.Equal(t, 2*time.Hour, CancellationBuffer())
}

func TestCancellationFeeFor(t *testing.T) {
	t.Setenv("CANCELLATION_FEE_WINDOW_HOURS", "")
	t.Setenv("CANCELLATION_FEE_PERCENT", "")

	slotStart := time.Date(2026, 9, 2, 15, 0, 0, 0, time.UTC)

	// Professional cancellations are always free.
	assert.Equal(t, float64(0), CancellationFeeFor(1000, slotStart.Add(-time.Hour), slotStart, false))

	// Early client cancellation, outside the fee window.
	assert.Equal(t, float64(0), CancellationFeeFor(1000, slotStart.Add(-48*time.Hour), slotStart, true))

	// Late client cancellation inside the 24-hour window: 50% by default.
	assert.Equal(t, float64(500), CancellationFeeFor(1000, slotStart.Add(-3*time.Hour), slotStart, true))
}

func TestCancellationFeePercentOverride(t *testing.T) {
	t.Setenv("CANCELLATION_FEE_WINDOW_HOURS", "")
	t.Setenv("CANCELLATION_FEE_PERCENT", "25")

	slotStart := time.Date(2026, 9, 2, 15, 0, 0, 0, time.UTC)

	assert.Equal(t, float64(250), CancellationFeeFor(1000, slotStart.Add(-3*time.Hour), slotStart, true))
}
