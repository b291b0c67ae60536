package agreement

import (
	"fmt"
	"time"
)

// GenerateNumber derives the agreement number from the creation date and
// the owning property id, e.g. "AG-20240305-0007". Uniqueness is enforced
// by the index on the column.
func GenerateNumber(at time.Time, propertyID uint) string {
	return fmt.Sprintf("AG-%s-%04d", at.Format("20060102"), propertyID)
}
