package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/adityavk98/consult_connect/database"
	"github.com/adityavk98/consult_connect/models"
	"github.com/adityavk98/consult_connect/notifications"
)

// SendConsultationReminders emails both parties of every confirmed
// booking starting in roughly one hour. The window matches the cron
// cadence so each booking is picked up exactly once.
func SendConsultationReminders() {
	log.Println("Running job: SendConsultationReminders...")

	now := time.Now()
	lowerBound := now.Add(60 * time.Minute)
	upperBound := now.Add(65 * time.Minute)

	var upcomingBookings []models.Booking
	err := database.DB.
		Preload("Client").
		Preload("Professional.User").
		Preload("Slot").
		Joins("JOIN consultation_slots ON bookings.slot_id = consultation_slots.id").
		Where("bookings.status = ? AND consultation_slots.start_time BETWEEN ? AND ?",
			models.BookingConfirmed, lowerBound, upperBound).
		Find(&upcomingBookings).Error
	if err != nil {
		log.Printf("Error checking for upcoming consultations: %v", err)
		return
	}

	if len(upcomingBookings) == 0 {
		return
	}

	for _, booking := range upcomingBookings {
		log.Printf("Sending reminder for booking ID: %s", booking.ID)

		emailSubject := "Reminder: Your Consultation Starts in 1 Hour!"
		emailBody := fmt.Sprintf(
			"<h1>Consultation Reminder</h1><p>Hi there,</p><p>This is a friendly reminder that your consultation is scheduled to start in one hour at %s.</p>",
			booking.Slot.StartTime.Format(time.Kitchen),
		)
		if booking.ConsultationType == models.ConsultationOnline && booking.MeetingLink != nil {
			emailBody += fmt.Sprintf("<p><b>Meeting Link:</b> <a href='%s'>Join Consultation</a></p>", *booking.MeetingLink)
		} else if booking.ConsultationAddress != "" {
			emailBody += fmt.Sprintf("<p><b>Address:</b> %s</p>", booking.ConsultationAddress)
		}

		go notifications.SendEmail(booking.Client.FullName, booking.Client.Email, emailSubject, emailBody)
		go notifications.SendEmail(booking.Professional.User.FullName, booking.Professional.User.Email, emailSubject, emailBody)
	}
}
