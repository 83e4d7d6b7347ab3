package http

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
)

type errorResponse struct {
	Error string `json:"error"`
}

// pageResponse is the envelope every paginated list endpoint returns.
type pageResponse struct {
	Data        any `json:"data"`
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	TotalItems  int `json:"totalItems"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func writePage(w http.ResponseWriter, data any, page, limit, total int) {
	writeJSON(w, http.StatusOK, pageResponse{
		Data:        data,
		CurrentPage: page,
		TotalPages:  int(math.Ceil(float64(total) / float64(limit))),
		TotalItems:  total,
	})
}

func pagination(r *http.Request) (page, limit int) {
	page, limit = 1, 10
	if p := r.URL.Query().Get("page"); p != "" {
		if n, err := atoiPositive(p); err == nil {
			page = n
		}
	}
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := atoiPositive(l); err == nil {
			limit = n
		}
	}
	return page, limit
}

func atoiPositive(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, errors.New("not positive")
	}
	return n, nil
}
