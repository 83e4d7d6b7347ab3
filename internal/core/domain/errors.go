package domain

import (
	"errors"
	"strings"
)

var (
	// Auth. Handlers map these to the HTTP statuses the middleware contract
	// fixes: missing/invalid access credential 401, a refresh secret that
	// matches no session 403 (terminal), a vanished principal 401.
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidAccessToken = errors.New("invalid access token")
	ErrInvalidSession     = errors.New("invalid session")
	ErrUserNotFound       = errors.New("user not found")

	ErrGymNotFound     = errors.New("gym not found")
	ErrRoutineNotFound = errors.New("routine not found")
	ErrLogNotFound     = errors.New("log not found")

	ErrInternal = errors.New("internal server error")
)

// MissingEquipmentError reports which equipment a routine needs but the
// chosen gym does not have.
type MissingEquipmentError struct {
	Equipment []string
}

func (e *MissingEquipmentError) Error() string {
	return "gym is missing equipment: " + strings.Join(e.Equipment, ", ")
}
