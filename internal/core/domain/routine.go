package domain

import (
	"time"

	"github.com/google/uuid"
)

type Routine struct {
	ID          uuid.UUID     `json:"id"`
	UserID      uuid.UUID     `json:"user_id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Public      bool          `json:"public"`
	Equipment   []RoutineItem `json:"equipment"`
	Author      string        `json:"author,omitempty"`
	AuthorTier  string        `json:"tier,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}

type RoutineItem struct {
	ID        uuid.UUID `json:"-"`
	RoutineID uuid.UUID `json:"-"`
	Name      string    `json:"name"`
	Sets      int       `json:"sets"`
	Reps      int       `json:"reps"`
	Weight    float64   `json:"weight"`
}
