package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestHoldExpired(t *testing.T) {
	now := time.Date(2026, 9, 2, 12, 0, 0, 0, time.UTC)
	holder := uuid.New()

	past := now.Add(-time.Minute)
	future := now.Add(10 * time.Minute)

	lapsed := ConsultationSlot{Status: SlotHeld, HeldBy: &holder, HeldUntil: &past}
	active := ConsultationSlot{Status: SlotHeld, HeldBy: &holder, HeldUntil: &future}
	booked := ConsultationSlot{Status: SlotBooked, HeldUntil: &past}

	assert.True(t, lapsed.HoldExpired(now))
	assert.False(t, active.HoldExpired(now))
	assert.False(t, booked.HoldExpired(now))
}

func TestClaimableBy(t *testing.T) {
	now := time.Date(2026, 9, 2, 12, 0, 0, 0, time.UTC)
	holder := uuid.New()
	stranger := uuid.New()
	future := now.Add(10 * time.Minute)
	past := now.Add(-time.Minute)

	available := ConsultationSlot{Status: SlotAvailable}
	assert.True(t, available.ClaimableBy(stranger, now))

	held := ConsultationSlot{Status: SlotHeld, HeldBy: &holder, HeldUntil: &future}
	assert.True(t, held.ClaimableBy(holder, now), "holder can convert their own hold")
	assert.False(t, held.ClaimableBy(stranger, now), "active hold blocks other users")

	expired := ConsultationSlot{Status: SlotHeld, HeldBy: &holder, HeldUntil: &past}
	assert.True(t, expired.ClaimableBy(stranger, now), "lapsed hold is claimable by anyone")

	booked := ConsultationSlot{Status: SlotBooked}
	blocked := ConsultationSlot{Status: SlotBlocked}
	assert.False(t, booked.ClaimableBy(stranger, now))
	assert.False(t, blocked.ClaimableBy(stranger, now))
}

func TestClearHold(t *testing.T) {
	holder := uuid.New()
	until := time.Now().Add(5 * time.Minute)

	slot := ConsultationSlot{Status: SlotHeld, HeldBy: &holder, HeldUntil: &until}
	slot.ClearHold()

	assert.Nil(t, slot.HeldBy)
	assert.Nil(t, slot.HeldUntil)
}
