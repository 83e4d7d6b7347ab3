package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/healcome/fitness/internal/core/domain"
	"github.com/healcome/fitness/internal/core/ports"
)

type RoutineHandler struct {
	service ports.RoutineService
}

func NewRoutineHandler(service ports.RoutineService) *RoutineHandler {
	return &RoutineHandler{service: service}
}

type routineItemRequest struct {
	Name   string  `json:"name"`
	Sets   int     `json:"sets"`
	Reps   int     `json:"reps"`
	Weight float64 `json:"weight"`
}

type saveRoutineRequest struct {
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Public      bool                 `json:"public"`
	Equipment   []routineItemRequest `json:"equipment"`
}

type useRoutineRequest struct {
	RoutineID uuid.UUID `json:"routineId"`
	GymID     uuid.UUID `json:"gymId"`
}

func (req saveRoutineRequest) toInput() ports.SaveRoutineInput {
	input := ports.SaveRoutineInput{
		Name:        req.Name,
		Description: req.Description,
		Public:      req.Public,
	}
	for _, item := range req.Equipment {
		input.Equipment = append(input.Equipment, ports.RoutineItemInput{
			Name:   item.Name,
			Sets:   item.Sets,
			Reps:   item.Reps,
			Weight: item.Weight,
		})
	}
	return input
}

func (h *RoutineHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	filter := r.URL.Query().Get("filter")
	if filter == "" {
		filter = "mine"
	}

	page, limit := pagination(r)
	routines, total, err := h.service.List(r.Context(), userID, filter, page, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list routines")
		return
	}
	if routines == nil {
		routines = []*domain.Routine{}
	}
	writePage(w, routines, page, limit, total)
}

func (h *RoutineHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	var req saveRoutineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	routine, err := h.service.Create(r.Context(), userID, req.toInput())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, routine)
}

func (h *RoutineHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid routine id")
		return
	}

	var req saveRoutineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	routine, err := h.service.Update(r.Context(), userID, id, req.toInput())
	if err != nil {
		if errors.Is(err, domain.ErrRoutineNotFound) {
			writeError(w, http.StatusNotFound, "routine not found")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, routine)
}

func (h *RoutineHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid routine id")
		return
	}

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		if errors.Is(err, domain.ErrRoutineNotFound) {
			writeError(w, http.StatusNotFound, "routine not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete routine")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "routine deleted successfully"})
}

func (h *RoutineHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	if err := h.service.DeleteAll(r.Context(), userID); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete routines")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "routines deleted successfully"})
}

// Use logs a workout with a routine at a gym; 400 names the equipment the
// gym lacks.
func (h *RoutineHandler) Use(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	var req useRoutineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.service.Use(r.Context(), userID, req.RoutineID, req.GymID)
	if err != nil {
		var missing *domain.MissingEquipmentError
		switch {
		case errors.As(err, &missing):
			writeError(w, http.StatusBadRequest, missing.Error())
		case errors.Is(err, domain.ErrRoutineNotFound):
			writeError(w, http.StatusNotFound, "routine not found")
		case errors.Is(err, domain.ErrGymNotFound):
			writeError(w, http.StatusNotFound, "gym not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to use routine")
		}
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": "routine used successfully"})
}
