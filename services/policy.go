package services

import (
	"strconv"
	"time"

	config "github.com/adityavk98/consult_connect/configs"
)

const (
	defaultCancellationBufferHours  = 2
	defaultCancellationFeeWindowHrs = 24
	defaultCancellationFeePercent   = 50
	defaultHoldTTLMinutes           = 15
)

func policyInt(key string, fallback int) int {
	raw := config.Config(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

// CancellationBuffer is how long before the slot start a client loses the
// right to cancel.
func CancellationBuffer() time.Duration {
	return time.Duration(policyInt("CANCELLATION_BUFFER_HOURS", defaultCancellationBufferHours)) * time.Hour
}

// HoldTTL is the lifetime of a soft slot reservation.
func HoldTTL() time.Duration {
	return time.Duration(policyInt("HOLD_TTL_MINUTES", defaultHoldTTLMinutes)) * time.Minute
}

// CancellationFeeFor computes the fee charged for a client cancellation.
// Cancellations within the fee window before the slot start incur a
// percentage of the booked fee; earlier cancellations and professional
// cancellations are free. Collection itself is the payment system's job.
func CancellationFeeFor(consultationFee float64, now, slotStart time.Time, cancelledByClient bool) float64 {
	if !cancelledByClient {
		return 0
	}
	window := time.Duration(policyInt("CANCELLATION_FEE_WINDOW_HOURS", defaultCancellationFeeWindowHrs)) * time.Hour
	if now.Before(slotStart.Add(-window)) {
		return 0
	}
	percent := policyInt("CANCELLATION_FEE_PERCENT", defaultCancellationFeePercent)
	return consultationFee * float64(percent) / 100
}
