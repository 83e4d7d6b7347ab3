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

type GymHandler struct {
	service ports.GymService
}

func NewGymHandler(service ports.GymService) *GymHandler {
	return &GymHandler{service: service}
}

type createGymRequest struct {
	Name      string   `json:"name"`
	Equipment []string `json:"equipment"`
	Notes     string   `json:"notes"`
}

type updateGymRequest struct {
	Name      *string  `json:"name"`
	Equipment []string `json:"equipment"`
	Notes     *string  `json:"notes"`
}

func (h *GymHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	page, limit := pagination(r)
	gyms, total, err := h.service.List(r.Context(), userID, page, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if gyms == nil {
		gyms = []*domain.Gym{}
	}
	writePage(w, gyms, page, limit, total)
}

func (h *GymHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	var req createGymRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	gym, err := h.service.Create(r.Context(), userID, ports.CreateGymInput{
		Name:      req.Name,
		Equipment: req.Equipment,
		Notes:     req.Notes,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, gym)
}

func (h *GymHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid gym id")
		return
	}

	var req updateGymRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	gym, err := h.service.Update(r.Context(), userID, id, ports.UpdateGymInput{
		Name:      req.Name,
		Equipment: req.Equipment,
		Notes:     req.Notes,
	})
	if err != nil {
		if errors.Is(err, domain.ErrGymNotFound) {
			writeError(w, http.StatusNotFound, "gym not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, gym)
}

func (h *GymHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid gym id")
		return
	}

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		if errors.Is(err, domain.ErrGymNotFound) {
			writeError(w, http.StatusNotFound, "gym not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "gym deleted successfully"})
}

func (h *GymHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	if err := h.service.DeleteAll(r.Context(), userID); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete all gyms")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "all gyms deleted successfully"})
}
