package services

import (
	"os"
	"sync"
	"testing"
	"time"

	"github.com/adityavk98/consult_connect/database"
	"github.com/adityavk98/consult_connect/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// These tests exercise the slot-claim transaction against a real
// Postgres, because the row locking and duplicate-key translation they
// depend on cannot be reproduced in-process. They are skipped unless
// TEST_DATABASE_URL points at a disposable database.
func setupTestDB(t *testing.T) {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		DisableNestedTransaction:                 true,
		TranslateError:                           true,
	})
	require.NoError(t, err)
	database.DB = db

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Professional{},
		&models.ConsultationAvailability{},
		&models.ProfessionalPricing{},
		&models.ConsultationSlot{},
		&models.Booking{},
		&models.Review{},
		&models.ReviewSummary{},
	))
	require.NoError(t, db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_one_active_booking_per_slot
		ON bookings (slot_id)
		WHERE status NOT IN ('cancelled_by_client', 'cancelled_by_professional')`).Error)

	t.Cleanup(func() {
		db.Exec("DELETE FROM reviews")
		db.Exec("DELETE FROM review_summaries")
		db.Exec("DELETE FROM bookings")
		db.Exec("DELETE FROM consultation_slots")
		db.Exec("DELETE FROM professional_pricings")
		db.Exec("DELETE FROM consultation_availabilities")
		db.Exec("DELETE FROM professionals")
		db.Exec("DELETE FROM users")
	})
}

func seedBookableProfessional(t *testing.T) (clientID, professionalID uuid.UUID, patterns []models.ConsultationAvailability) {
	t.Helper()

	client := models.User{ID: uuid.New(), FullName: "Test Client", Email: uuid.NewString() + "@example.com", Password: "x", Role: "client"}
	professionalUser := models.User{ID: uuid.New(), FullName: "Test Professional", Email: uuid.NewString() + "@example.com", Password: "x", Role: "professional"}
	require.NoError(t, database.DB.Create(&client).Error)
	require.NoError(t, database.DB.Create(&professionalUser).Error)

	professional := models.Professional{
		UserID:             professionalUser.ID,
		VerificationStatus: models.VerificationVerified,
	}
	require.NoError(t, database.DB.Create(&professional).Error)

	pattern := models.ConsultationAvailability{
		ProfessionalID:      professionalUser.ID,
		Monday:              true,
		Tuesday:             true,
		Wednesday:           true,
		Thursday:            true,
		Friday:              true,
		Saturday:            true,
		Sunday:              true,
		FromTime:            "00:00",
		ToTime:              "23:00",
		SlotDurationMinutes: 60,
		ConsultationType:    models.ConsultationBoth,
		AdvanceBookingDays:  30,
	}
	require.NoError(t, database.DB.Create(&pattern).Error)

	return client.ID, professionalUser.ID, []models.ConsultationAvailability{pattern}
}

func futureSlotID(t *testing.T, professionalID uuid.UUID, patterns []models.ConsultationAvailability, now time.Time) string {
	t.Helper()

	slots := DeriveSlots(professionalID, patterns, nil, now, now.AddDate(0, 0, 2), now)
	require.NotEmpty(t, slots)

	// Pick a slot comfortably past the cancellation buffer.
	for _, slot := range slots {
		if slot.StartTime.After(now.Add(26 * time.Hour)) {
			return slot.ID
		}
	}
	t.Fatal("no slot found beyond the cancellation buffer")
	return ""
}

func TestCreateBookingClaimsSlot(t *testing.T) {
	setupTestDB(t)
	clientID, professionalID, patterns := seedBookableProfessional(t)

	now := time.Now().UTC()
	slotID := futureSlotID(t, professionalID, patterns, now)

	booking, err := CreateBooking(clientID, professionalID, CreateBookingInput{
		SlotID:           slotID,
		ConsultationType: models.ConsultationOnline,
	}, now)
	require.NoError(t, err)
	assert.Equal(t, models.BookingPending, booking.Status)
	assert.Equal(t, float64(1000), booking.ConsultationFee)

	var slot models.ConsultationSlot
	require.NoError(t, database.DB.First(&slot, "id = ?", booking.SlotID).Error)
	assert.Equal(t, models.SlotBooked, slot.Status)
}

func TestBookingFeeIsImmutable(t *testing.T) {
	setupTestDB(t)
	clientID, professionalID, patterns := seedBookableProfessional(t)

	pricing := models.ProfessionalPricing{
		ProfessionalID: professionalID,
		Fee30Min:       500, Fee60Min: 1200, Fee90Min: 1400, Fee120Min: 1800,
		OfflineConsultationExtra: 200,
		AcceptsOnline:            true,
		AcceptsOffline:           true,
	}
	require.NoError(t, database.DB.Create(&pricing).Error)

	now := time.Now().UTC()
	slotID := futureSlotID(t, professionalID, patterns, now)

	booking, err := CreateBooking(clientID, professionalID, CreateBookingInput{
		SlotID:           slotID,
		ConsultationType: models.ConsultationOnline,
	}, now)
	require.NoError(t, err)
	assert.Equal(t, float64(1200), booking.ConsultationFee)

	// Raising the rate later never touches existing bookings.
	require.NoError(t, database.DB.Model(&pricing).Update("fee_60_min", 5000).Error)

	var reloaded models.Booking
	require.NoError(t, database.DB.First(&reloaded, "id = ?", booking.ID).Error)
	assert.Equal(t, float64(1200), reloaded.ConsultationFee)
}

func TestCreateBookingDoubleClaimConflicts(t *testing.T) {
	setupTestDB(t)
	clientID, professionalID, patterns := seedBookableProfessional(t)

	otherClient := models.User{ID: uuid.New(), FullName: "Second Client", Email: uuid.NewString() + "@example.com", Password: "x", Role: "client"}
	require.NoError(t, database.DB.Create(&otherClient).Error)

	now := time.Now().UTC()
	slotID := futureSlotID(t, professionalID, patterns, now)

	_, err := CreateBooking(clientID, professionalID, CreateBookingInput{
		SlotID:           slotID,
		ConsultationType: models.ConsultationOnline,
	}, now)
	require.NoError(t, err)

	_, err = CreateBooking(otherClient.ID, professionalID, CreateBookingInput{
		SlotID:           slotID,
		ConsultationType: models.ConsultationOnline,
	}, now)
	require.Error(t, err)
	assert.Equal(t, CodeConflict, ErrorCode(err))
}

func TestCreateBookingConcurrentClaims(t *testing.T) {
	setupTestDB(t)
	_, professionalID, patterns := seedBookableProfessional(t)

	now := time.Now().UTC()
	slotID := futureSlotID(t, professionalID, patterns, now)

	const racers = 5
	clients := make([]uuid.UUID, racers)
	for i := range clients {
		u := models.User{ID: uuid.New(), FullName: "Racer", Email: uuid.NewString() + "@example.com", Password: "x", Role: "client"}
		require.NoError(t, database.DB.Create(&u).Error)
		clients[i] = u.ID
	}

	var wg sync.WaitGroup
	results := make([]error, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = CreateBooking(clients[i], professionalID, CreateBookingInput{
				SlotID:           slotID,
				ConsultationType: models.ConsultationOnline,
			}, now)
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range results {
		if err == nil {
			successes++
		} else {
			assert.Equal(t, CodeConflict, ErrorCode(err))
		}
	}
	assert.Equal(t, 1, successes, "exactly one concurrent claim must win")
}

func TestCancelBookingReleasesSlot(t *testing.T) {
	setupTestDB(t)
	clientID, professionalID, patterns := seedBookableProfessional(t)

	now := time.Now().UTC()
	slotID := futureSlotID(t, professionalID, patterns, now)

	booking, err := CreateBooking(clientID, professionalID, CreateBookingInput{
		SlotID:           slotID,
		ConsultationType: models.ConsultationOnline,
	}, now)
	require.NoError(t, err)

	cancelled, err := CancelBooking(clientID, booking.ID, "changed my mind", now)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelledByClient, cancelled.Status)
	assert.NotNil(t, cancelled.CancelledAt)

	var slot models.ConsultationSlot
	require.NoError(t, database.DB.First(&slot, "id = ?", booking.SlotID).Error)
	assert.Equal(t, models.SlotAvailable, slot.Status)

	// The freed slot can be claimed again.
	_, err = CreateBooking(clientID, professionalID, CreateBookingInput{
		SlotID:           slotID,
		ConsultationType: models.ConsultationOnline,
	}, now)
	require.NoError(t, err)
}

func TestBookingLifecycleCompletion(t *testing.T) {
	setupTestDB(t)
	clientID, professionalID, patterns := seedBookableProfessional(t)

	now := time.Now().UTC()
	slotID := futureSlotID(t, professionalID, patterns, now)

	booking, err := CreateBooking(clientID, professionalID, CreateBookingInput{
		SlotID:           slotID,
		ConsultationType: models.ConsultationOnline,
	}, now)
	require.NoError(t, err)

	// Only the assigned professional may confirm.
	_, err = ConfirmBooking(clientID, booking.ID, ConfirmBookingInput{}, now)
	require.Error(t, err)
	assert.Equal(t, CodeUnauthorized, ErrorCode(err))

	confirmed, err := ConfirmBooking(professionalID, booking.ID, ConfirmBookingInput{
		MeetingLink: "https://meet.example.com/abc",
	}, now)
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, confirmed.Status)
	require.NotNil(t, confirmed.MeetingLink)

	// Completing bumps the consultation counter.
	completed, err := CompleteBooking(professionalID, booking.ID, now)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCompleted, completed.Status)

	var professional models.Professional
	require.NoError(t, database.DB.First(&professional, "user_id = ?", professionalID).Error)
	assert.Equal(t, 1, professional.TotalConsultations)

	// Terminal bookings cannot be cancelled.
	_, err = CancelBooking(clientID, booking.ID, "too late", now)
	require.Error(t, err)
	assert.Equal(t, CodeInvalidState, ErrorCode(err))

	// A completed consultation unlocks reviewing.
	review, err := CreateReview(clientID, professionalID, 5, "very helpful")
	require.NoError(t, err)
	assert.Equal(t, 5, review.Rating)

	summary, err := GetReviewSummary(professionalID)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.TotalReviews)
	assert.Equal(t, float64(5), summary.AverageRating)

	// One review per client-professional pair.
	_, err = CreateReview(clientID, professionalID, 4, "second thoughts")
	require.Error(t, err)
	assert.Equal(t, CodeConflict, ErrorCode(err))
}
