package services

import (
	"sort"
	"time"

	"github.com/adityavk98/consult_connect/database"
	"github.com/adityavk98/consult_connect/models"
	"github.com/adityavk98/consult_connect/utils"
	"github.com/google/uuid"
)

// DerivedSlot is a candidate consultation slot computed from a
// professional's recurring availability pattern. It is not persisted;
// its identity is a deterministic hash of the natural key, so the same
// pattern and date range always reproduce the same slots.
type DerivedSlot struct {
	ID               string    `json:"id"`
	ProfessionalID   uuid.UUID `json:"professional_id"`
	StartTime        time.Time `json:"start_time"`
	EndTime          time.Time `json:"end_time"`
	DurationMinutes  int       `json:"duration_minutes"`
	ConsultationType string    `json:"consultation_type"`
	ConsultationFee  float64   `json:"consultation_fee"`
	Status           string    `json:"status"`
}

const defaultDerivationWindowDays = 30

// timeOfDay is the wire format for pattern from/to times.
const timeOfDayLayout = "15:04"

// DeriveSlots expands the professional's availability patterns over
// [dateFrom, dateTo] into the ordered sequence of future candidate slots.
// All arithmetic is done in UTC. The function is pure: identical inputs
// yield an identical sequence, and overlapping candidates from competing
// patterns are collapsed so no two returned slots overlap in time.
func DeriveSlots(
	professionalID uuid.UUID,
	patterns []models.ConsultationAvailability,
	pricing *models.ProfessionalPricing,
	dateFrom, dateTo time.Time,
	now time.Time,
) []DerivedSlot {
	now = now.UTC()

	if dateFrom.IsZero() {
		dateFrom = now
	}
	if dateTo.IsZero() {
		dateTo = dateFrom.AddDate(0, 0, defaultDerivationWindowDays)
	}

	day := truncateToDay(dateFrom.UTC())
	lastDay := truncateToDay(dateTo.UTC())

	var candidates []DerivedSlot
	for !day.After(lastDay) {
		for i := range patterns {
			pattern := &patterns[i]

			if !pattern.ActiveOn(day.Weekday()) {
				continue
			}
			if outsideAdvanceWindow(pattern, day, now) {
				continue
			}

			fromTime, err1 := time.Parse(timeOfDayLayout, pattern.FromTime)
			toTime, err2 := time.Parse(timeOfDayLayout, pattern.ToTime)
			if err1 != nil || err2 != nil {
				// Invalid windows are rejected at pattern-save time.
				continue
			}

			windowStart := day.Add(time.Duration(fromTime.Hour())*time.Hour + time.Duration(fromTime.Minute())*time.Minute)
			windowEnd := day.Add(time.Duration(toTime.Hour())*time.Hour + time.Duration(toTime.Minute())*time.Minute)

			duration := time.Duration(pattern.SlotDurationMinutes) * time.Minute
			step := duration + time.Duration(pattern.BufferMinutes)*time.Minute

			sessions := 0
			for slotStart := windowStart; !slotStart.Add(duration).After(windowEnd); slotStart = slotStart.Add(step) {
				if pattern.MaxSessionsPerDay != nil && sessions >= *pattern.MaxSessionsPerDay {
					break
				}
				sessions++

				// No retroactive booking.
				if !slotStart.After(now) {
					continue
				}

				slotEnd := slotStart.Add(duration)
				candidates = append(candidates, DerivedSlot{
					ID:               utils.GenerateSlotID(professionalID, slotStart, slotEnd),
					ProfessionalID:   professionalID,
					StartTime:        slotStart,
					EndTime:          slotEnd,
					DurationMinutes:  pattern.SlotDurationMinutes,
					ConsultationType: pattern.ConsultationType,
					ConsultationFee:  FeeForSlot(pricing, pattern.SlotDurationMinutes, pattern.ConsultationType, nil),
					Status:           models.SlotAvailable,
				})
			}
		}
		day = day.AddDate(0, 0, 1)
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].StartTime.Equal(candidates[j].StartTime) {
			return candidates[i].EndTime.Before(candidates[j].EndTime)
		}
		return candidates[i].StartTime.Before(candidates[j].StartTime)
	})

	// Competing patterns may tile the same hours; keep the earliest slot
	// of each overlapping pair so the sequence never overlaps.
	slots := candidates[:0]
	var lastEnd time.Time
	for _, candidate := range candidates {
		if len(slots) > 0 && candidate.StartTime.Before(lastEnd) {
			continue
		}
		slots = append(slots, candidate)
		lastEnd = candidate.EndTime
	}

	return slots
}

// FindDerivedSlot re-derives the professional's slots over the full
// advance-booking window and returns the one matching slotID. This is how
// a claim validates a client-supplied slot id without pre-materialized
// rows: if the pattern changed since the listing, the id simply no longer
// resolves.
func FindDerivedSlot(
	professionalID uuid.UUID,
	patterns []models.ConsultationAvailability,
	pricing *models.ProfessionalPricing,
	slotID string,
	now time.Time,
) (*DerivedSlot, error) {
	windowDays := defaultDerivationWindowDays
	for i := range patterns {
		if patterns[i].AdvanceBookingDays > windowDays {
			windowDays = patterns[i].AdvanceBookingDays
		}
	}

	slots := DeriveSlots(professionalID, patterns, pricing, now, now.AddDate(0, 0, windowDays), now)
	for i := range slots {
		if slots[i].ID == slotID {
			return &slots[i], nil
		}
	}
	return nil, NewNotFoundError("slot not found")
}

// ListSlots is the browse view: the derived sequence with the status of
// any materialized row overlaid. Expired holds read as available again;
// booked and blocked slots stay in the listing so the calendar keeps its
// shape. A custom rate on a materialized row replaces the listed fee.
func ListSlots(
	professionalID uuid.UUID,
	patterns []models.ConsultationAvailability,
	pricing *models.ProfessionalPricing,
	dateFrom, dateTo time.Time,
	now time.Time,
) ([]DerivedSlot, error) {
	slots := DeriveSlots(professionalID, patterns, pricing, dateFrom, dateTo, now)
	if len(slots) == 0 {
		return slots, nil
	}

	var rows []models.ConsultationSlot
	err := database.DB.
		Where("professional_id = ? AND start_time >= ? AND start_time <= ?",
			professionalID, slots[0].StartTime, slots[len(slots)-1].StartTime).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*models.ConsultationSlot, len(rows))
	for i := range rows {
		byID[utils.GenerateSlotID(professionalID, rows[i].StartTime, rows[i].EndTime)] = &rows[i]
	}

	for i := range slots {
		row, ok := byID[slots[i].ID]
		if !ok {
			continue
		}
		if row.Status == models.SlotHeld && row.HoldExpired(now) {
			slots[i].Status = models.SlotAvailable
		} else {
			slots[i].Status = row.Status
		}
		if row.CustomRate != nil {
			slots[i].ConsultationFee = FeeForSlot(pricing, slots[i].DurationMinutes, slots[i].ConsultationType, row.CustomRate)
		}
	}

	return slots, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func outsideAdvanceWindow(pattern *models.ConsultationAvailability, day, now time.Time) bool {
	advanceDays := pattern.AdvanceBookingDays
	if advanceDays <= 0 {
		advanceDays = defaultDerivationWindowDays
	}
	return day.After(truncateToDay(now).AddDate(0, 0, advanceDays))
}
