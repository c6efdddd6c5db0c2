package jobs

import (
	"log"
	"time"

	"github.com/adityavk98/consult_connect/services"
)

// ReleaseExpiredHolds sweeps lapsed slot holds back into the available
// pool. The claim path also expires holds lazily, so this job only keeps
// public listings fresh between claims.
func ReleaseExpiredHolds() {
	released, err := services.ReleaseExpiredHolds(time.Now())
	if err != nil {
		log.Printf("Error releasing expired holds: %v", err)
		return
	}
	if released > 0 {
		log.Printf("✅ Released %d expired slot holds", released)
	}
}
