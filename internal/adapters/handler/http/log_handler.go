package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/healcome/fitness/internal/core/domain"
	"github.com/healcome/fitness/internal/core/ports"
)

type WorkoutLogHandler struct {
	service ports.WorkoutLogService
}

func NewWorkoutLogHandler(service ports.WorkoutLogService) *WorkoutLogHandler {
	return &WorkoutLogHandler{service: service}
}

func (h *WorkoutLogHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	page, limit := pagination(r)
	logs, total, err := h.service.List(r.Context(), userID, page, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list logs")
		return
	}
	if logs == nil {
		logs = []*domain.WorkoutLog{}
	}
	writePage(w, logs, page, limit, total)
}

func (h *WorkoutLogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing user context")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid log id")
		return
	}

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		if errors.Is(err, domain.ErrLogNotFound) {
			writeError(w, http.StatusNotFound, "log not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete log")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "log deleted successfully"})
}
