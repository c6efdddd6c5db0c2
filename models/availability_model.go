package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ConsultationOnline  = "online"
	ConsultationOffline = "offline"
	ConsultationBoth    = "both"
)

// AllowedSlotDurations is the closed set of consultation lengths a
// professional can offer.
var AllowedSlotDurations = []int{30, 60, 90, 120}

// ConsultationAvailability is a professional's recurring weekly template.
// Times are time-of-day strings ("15:04") interpreted in UTC; concrete
// slots are derived from this pattern on demand.
type ConsultationAvailability struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ProfessionalID uuid.UUID `gorm:"not null;index" json:"-"`

	Monday    bool `gorm:"not null;default:false" json:"monday"`
	Tuesday   bool `gorm:"not null;default:false" json:"tuesday"`
	Wednesday bool `gorm:"not null;default:false" json:"wednesday"`
	Thursday  bool `gorm:"not null;default:false" json:"thursday"`
	Friday    bool `gorm:"not null;default:false" json:"friday"`
	Saturday  bool `gorm:"not null;default:false" json:"saturday"`
	Sunday    bool `gorm:"not null;default:false" json:"sunday"`

	FromTime string `gorm:"size:5;not null" json:"from_time"`
	ToTime   string `gorm:"size:5;not null" json:"to_time"`

	SlotDurationMinutes int    `gorm:"not null;default:60" json:"slot_duration_minutes"`
	ConsultationType    string `gorm:"size:10;not null;default:'both'" json:"consultation_type"`

	BufferMinutes      int  `gorm:"not null;default:0" json:"buffer_minutes"`
	MaxSessionsPerDay  *int `json:"max_sessions_per_day"`
	AdvanceBookingDays int  `gorm:"not null;default:30" json:"advance_booking_days"`

	Professional Professional `gorm:"foreignkey:ProfessionalID" json:"-"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// ActiveOn reports whether the pattern covers the given weekday.
func (a *ConsultationAvailability) ActiveOn(day time.Weekday) bool {
	switch day {
	case time.Monday:
		return a.Monday
	case time.Tuesday:
		return a.Tuesday
	case time.Wednesday:
		return a.Wednesday
	case time.Thursday:
		return a.Thursday
	case time.Friday:
		return a.Friday
	case time.Saturday:
		return a.Saturday
	case time.Sunday:
		return a.Sunday
	}
	return false
}

// ActiveDays returns the names of the weekdays the pattern covers.
func (a *ConsultationAvailability) ActiveDays() []string {
	days := []string{}
	for d := time.Sunday; d <= time.Saturday; d++ {
		if a.ActiveOn(d) {
			days = append(days, d.String())
		}
	}
	return days
}

// HasActiveDay reports whether at least one weekday is enabled.
func (a *ConsultationAvailability) HasActiveDay() bool {
	return a.Monday || a.Tuesday || a.Wednesday || a.Thursday || a.Friday || a.Saturday || a.Sunday
}

// AllowsType reports whether the pattern supports the requested
// consultation type ("online" or "offline").
func (a *ConsultationAvailability) AllowsType(consultationType string) bool {
	if a.ConsultationType == ConsultationBoth {
		return consultationType == ConsultationOnline || consultationType == ConsultationOffline
	}
	return a.ConsultationType == consultationType
}

// IsAllowedDuration reports whether minutes is one of the permitted
// consultation lengths.
func IsAllowedDuration(minutes int) bool {
	for _, d := range AllowedSlotDurations {
		if d == minutes {
			return true
		}
	}
	return false
}
