package domain

import (
	"time"

	"github.com/google/uuid"
)

// WorkoutLog records one use of a routine. Listing joins the routine's name,
// description and exercises so the client does not need follow-up requests.
type WorkoutLog struct {
	ID                 uuid.UUID     `json:"id"`
	UserID             uuid.UUID     `json:"user_id"`
	RoutineID          uuid.UUID     `json:"routine_id"`
	UsedAt             time.Time     `json:"used_at"`
	RoutineName        string        `json:"routine_name,omitempty"`
	RoutineDescription string        `json:"routine_description,omitempty"`
	Exercises          []RoutineItem `json:"exercises,omitempty"`
}
