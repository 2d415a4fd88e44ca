package session

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/apoteket/stocktake-backend/internal/apperr"
)

// Handler exposes session lifecycle HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/sessions", func(r chi.Router) {
		r.Post("/", h.createSession)
		r.Post("/{id}/complete", h.completeCheck)
		r.Post("/{id}/confirm", h.confirmReview)
	})
}

func (h *Handler) createSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	result, err := h.service.CreateSession(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, map[string]interface{}{
		"message":      "Stocktake session created successfully",
		"session_id":   result.SessionID,
		"linked_files": result.LinkedFiles,
	})
}

func (h *Handler) completeCheck(w http.ResponseWriter, r *http.Request) {
	sess, err := h.service.CompleteCheck(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"message": "Stocktake completed successfully",
		"session": sess,
	})
}

func (h *Handler) confirmReview(w http.ResponseWriter, r *http.Request) {
	sess, err := h.service.ConfirmReview(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"message": "Review confirmed successfully",
		"session": sess,
	})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		status = http.StatusBadRequest
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindConflict:
		status = http.StatusConflict
	}
	respond(w, status, map[string]string{"error": err.Error()})
}
