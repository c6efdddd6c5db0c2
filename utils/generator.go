package utils

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GenerateSlotID derives a stable slot identity from the natural key
// (professional, start, end). The same inputs always produce the same id,
// so slot listings and booking requests agree without persisting every
// future slot. Timestamps are normalized to UTC before hashing.
func GenerateSlotID(professionalID uuid.UUID, startTime, endTime time.Time) string {
	raw := fmt.Sprintf("%s-%s-%s",
		professionalID.String(),
		startTime.UTC().Format(time.RFC3339),
		endTime.UTC().Format(time.RFC3339),
	)
	sum := md5.Sum([]byte(raw))
	return hex.EncodeToString(sum[:])
}
