package database

import (
	"fmt"
	"log"

	config "github.com/adityavk98/consult_connect/configs"
	"github.com/adityavk98/consult_connect/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	dsn := config.Config("DATABASE_URL")

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt:                              false,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		DisableNestedTransaction:                 true,
		TranslateError:                           true,
	})
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}

	fmt.Println("✅ Database connected successfully")
}

func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Professional{},
		&models.ConsultationAvailability{},
		&models.ProfessionalPricing{},
		&models.ConsultationSlot{},
		&models.Booking{},
		&models.Review{},
		&models.ReviewSummary{},
	)
	if err != nil {
		log.Fatalf("🔥 Failed to migrate database: %v", err)
	}

	// At most one non-cancelled booking per slot. GORM tags cannot express
	// a partial index, so the storage-level backstop is created directly.
	err = DB.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_one_active_booking_per_slot
		ON bookings (slot_id)
		WHERE status NOT IN ('cancelled_by_client', 'cancelled_by_professional')`).Error
	if err != nil {
		log.Fatalf("🔥 Failed to create active-booking index: %v", err)
	}

	fmt.Println("✅ Database migration successful")
}

func SeedAdmin() {
	adminEmail := config.Config("ADMIN_EMAIL")
	adminPassword := config.Config("ADMIN_PASSWORD")

	var count int64
	err := DB.Model(&models.User{}).Where("email = ?", adminEmail).Count(&count).Error
	if err != nil {
		log.Fatalf("🔥 Failed to check for admin user: %v", err)
		return
	}

	if count > 0 {
		log.Println("Admin user already exists.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("🔥 Failed to hash admin password: %v", err)
		return
	}

	adminUser := models.User{
		FullName: config.Config("ADMIN_FULL_NAME"),
		Email:    adminEmail,
		Password: string(hashedPassword),
		Role:     "admin",
	}

	if err := DB.Create(&adminUser).Error; err != nil {
		log.Fatalf("🔥 Failed to seed admin user: %v", err)
		return
	}

	log.Println("✅ Admin user seeded successfully")
}
