package services

import (
	"github.com/adityavk98/consult_connect/models"
)

// Fallback rates used when a professional has not configured pricing yet.
var defaultDurationFees = map[int]float64{
	30:  500,
	60:  1000,
	90:  1400,
	120: 1800,
}

const (
	defaultFallbackFee  = 1000
	defaultOfflineExtra = 200
)

// FeeForSlot resolves the consultation fee for a slot as a pure function
// of the pricing snapshot, duration and type. An explicit per-slot custom
// rate replaces the duration fee but the offline surcharge still applies.
// The result is frozen into the booking at creation time and never
// recomputed.
func FeeForSlot(pricing *models.ProfessionalPricing, durationMinutes int, consultationType string, customRate *float64) float64 {
	var fee, offlineExtra float64

	if pricing != nil {
		fee = pricing.FeeForDuration(durationMinutes)
		offlineExtra = pricing.OfflineConsultationExtra
	} else {
		var ok bool
		fee, ok = defaultDurationFees[durationMinutes]
		if !ok {
			fee = defaultFallbackFee
		}
		offlineExtra = defaultOfflineExtra
	}

	if customRate != nil {
		fee = *customRate
	}

	if consultationType == models.ConsultationOffline {
		fee += offlineExtra
	}
	return fee
}

// TypeAccepted reports whether the professional's pricing settings accept
// the requested consultation type. Missing pricing accepts both.
func TypeAccepted(pricing *models.ProfessionalPricing, consultationType string) bool {
	if pricing == nil {
		return true
	}
	switch consultationType {
	case models.ConsultationOnline:
		return pricing.AcceptsOnline
	case models.ConsultationOffline:
		return pricing.AcceptsOffline
	}
	return false
}
