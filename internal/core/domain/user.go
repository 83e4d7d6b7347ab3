package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Squat        int       `json:"squat"`
	Bench        int       `json:"bench"`
	Dead         int       `json:"dead"`
	Tier         string    `json:"tier"`
	CreatedAt    time.Time `json:"created_at"`
}

// TierFor maps a three-lift total (squat + bench + deadlift) to a tier name.
// Thresholds are the product's fixed ladder.
func TierFor(squat, bench, dead int) string {
	total := squat + bench + dead
	switch {
	case total >= 500:
		return "expert"
	case total >= 400:
		return "advanced"
	case total >= 250:
		return "Intermediate"
	default:
		return "Beginner"
	}
}
