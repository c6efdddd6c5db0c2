package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanBeCancelledByClient(t *testing.T) {
	buffer := 2 * time.Hour
	slotStart := time.Date(2026, 9, 2, 15, 0, 0, 0, time.UTC)

	booking := Booking{Status: BookingConfirmed}

	// Three hours out: still inside the client's cancellation rights.
	assert.True(t, booking.CanBeCancelledByClient(slotStart.Add(-3*time.Hour), slotStart, buffer))

	// One hour out: too late.
	assert.False(t, booking.CanBeCancelledByClient(slotStart.Add(-time.Hour), slotStart, buffer))

	// Exactly at the buffer boundary: too late.
	assert.False(t, booking.CanBeCancelledByClient(slotStart.Add(-buffer), slotStart, buffer))

	pending := Booking{Status: BookingPending}
	assert.True(t, pending.CanBeCancelledByClient(slotStart.Add(-3*time.Hour), slotStart, buffer))

	completed := Booking{Status: BookingCompleted}
	assert.False(t, completed.CanBeCancelledByClient(slotStart.Add(-3*time.Hour), slotStart, buffer))
}

func TestCanBeCancelledByProfessional(t *testing.T) {
	assert.True(t, (&Booking{Status: BookingPending}).CanBeCancelledByProfessional())
	assert.True(t, (&Booking{Status: BookingConfirmed}).CanBeCancelledByProfessional())
	assert.False(t, (&Booking{Status: BookingCompleted}).CanBeCancelledByProfessional())
	assert.False(t, (&Booking{Status: BookingCancelledByClient}).CanBeCancelledByProfessional())
}

func TestTerminalStates(t *testing.T) {
	terminal := []string{BookingCompleted, BookingCancelledByClient, BookingCancelledByProfessional}
	for _, status := range terminal {
		assert.True(t, (&Booking{Status: status}).IsTerminal(), status)
	}

	assert.False(t, (&Booking{Status: BookingPending}).IsTerminal())
	assert.False(t, (&Booking{Status: BookingConfirmed}).IsTerminal())

	assert.True(t, (&Booking{Status: BookingCancelledByClient}).IsCancelled())
	assert.True(t, (&Booking{Status: BookingCancelledByProfessional}).IsCancelled())
	assert.False(t, (&Booking{Status: BookingCompleted}).IsCancelled())
}
