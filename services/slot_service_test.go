package services

import (
	"testing"
	"time"

	"github.com/adityavk98/consult_connect/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wednesdayPattern(professionalID uuid.UUID) models.ConsultationAvailability {
	return models.ConsultationAvailability{
		ID:                  uuid.New(),
		ProfessionalID:      professionalID,
		Wednesday:           true,
		FromTime:            "09:00",
		ToTime:              "11:00",
		SlotDurationMinutes: 60,
		ConsultationType:    models.ConsultationBoth,
		AdvanceBookingDays:  30,
	}
}

func TestDeriveSlotsTilesTheDailyWindow(t *testing.T) {
	professionalID := uuid.New()
	patterns := []models.ConsultationAvailability{wednesdayPattern(professionalID)}

	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	day := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC) // a Wednesday

	slots := DeriveSlots(professionalID, patterns, nil, day, day, now)

	require.Len(t, slots, 2)
	assert.Equal(t, time.Date(2026, 9, 2, 9, 0, 0, 0, time.UTC), slots[0].StartTime)
	assert.Equal(t, time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC), slots[0].EndTime)
	assert.Equal(t, time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC), slots[1].StartTime)
	assert.Equal(t, time.Date(2026, 9, 2, 11, 0, 0, 0, time.UTC), slots[1].EndTime)

	for _, slot := range slots {
		assert.Equal(t, models.SlotAvailable, slot.Status)
		assert.Equal(t, 60, slot.DurationMinutes)
		assert.Equal(t, float64(1000), slot.ConsultationFee, "default fee applies without pricing")
	}
}

func TestDeriveSlotsIsDeterministic(t *testing.T) {
	professionalID := uuid.New()
	patterns := []models.ConsultationAvailability{wednesdayPattern(professionalID)}

	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	day := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

	first := DeriveSlots(professionalID, patterns, nil, day, day, now)
	second := DeriveSlots(professionalID, patterns, nil, day, day, now)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
}

func TestDeriveSlotsRespectsBuffer(t *testing.T) {
	professionalID := uuid.New()
	pattern := wednesdayPattern(professionalID)
	pattern.BufferMinutes = 30

	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	day := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

	slots := DeriveSlots(professionalID, []models.ConsultationAvailability{pattern}, nil, day, day, now)

	// 09:00-10:00 fits; the next start after the buffer is 10:30 and a
	// 60-minute slot no longer fits before 11:00.
	require.Len(t, slots, 1)
	assert.Equal(t, time.Date(2026, 9, 2, 9, 0, 0, 0, time.UTC), slots[0].StartTime)
}

func TestDeriveSlotsSkipsPastStarts(t *testing.T) {
	professionalID := uuid.New()
	patterns := []models.ConsultationAvailability{wednesdayPattern(professionalID)}

	now := time.Date(2026, 9, 2, 9, 30, 0, 0, time.UTC)
	day := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

	slots := DeriveSlots(professionalID, patterns, nil, day, day, now)

	require.Len(t, slots, 1)
	assert.Equal(t, time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC), slots[0].StartTime)
}

func TestDeriveSlotsCapsSessionsPerDay(t *testing.T) {
	professionalID := uuid.New()
	pattern := wednesdayPattern(professionalID)
	maxSessions := 1
	pattern.MaxSessionsPerDay = &maxSessions

	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	day := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

	slots := DeriveSlots(professionalID, []models.ConsultationAvailability{pattern}, nil, day, day, now)

	require.Len(t, slots, 1)
}

func TestDeriveSlotsHonoursAdvanceWindow(t *testing.T) {
	professionalID := uuid.New()
	pattern := wednesdayPattern(professionalID)
	pattern.AdvanceBookingDays = 7

	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	farWednesday := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)

	slots := DeriveSlots(professionalID, []models.ConsultationAvailability{pattern}, nil, farWednesday, farWednesday, now)

	assert.Empty(t, slots)
}

func TestDeriveSlotsInactivePatternYieldsNothing(t *testing.T) {
	professionalID := uuid.New()
	pattern := wednesdayPattern(professionalID)
	pattern.Wednesday = false

	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	day := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

	slots := DeriveSlots(professionalID, []models.ConsultationAvailability{pattern}, nil, day, day, now)

	assert.Empty(t, slots)
}

func TestDeriveSlotsCollapsesOverlappingPatterns(t *testing.T) {
	professionalID := uuid.New()

	long := wednesdayPattern(professionalID)
	short := wednesdayPattern(professionalID)
	short.SlotDurationMinutes = 30

	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	day := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

	slots := DeriveSlots(professionalID, []models.ConsultationAvailability{long, short}, nil, day, day, now)

	require.NotEmpty(t, slots)
	for i := 1; i < len(slots); i++ {
		assert.False(t, slots[i].StartTime.Before(slots[i-1].EndTime),
			"slots %d and %d overlap", i-1, i)
	}
}

func TestFindDerivedSlotRoundTrip(t *testing.T) {
	professionalID := uuid.New()
	patterns := []models.ConsultationAvailability{wednesdayPattern(professionalID)}

	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	day := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

	slots := DeriveSlots(professionalID, patterns, nil, day, day, now)
	require.NotEmpty(t, slots)

	found, err := FindDerivedSlot(professionalID, patterns, nil, slots[0].ID, now)
	require.NoError(t, err)
	assert.Equal(t, slots[0].StartTime, found.StartTime)
	assert.Equal(t, slots[0].EndTime, found.EndTime)
}

func TestFindDerivedSlotUnknownID(t *testing.T) {
	professionalID := uuid.New()
	patterns := []models.ConsultationAvailability{wednesdayPattern(professionalID)}

	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	_, err := FindDerivedSlot(professionalID, patterns, nil, "ffffffffffffffffffffffffffffffff", now)
	require.Error(t, err)
	assert.Equal(t, CodeNotFound, ErrorCode(err))
}
