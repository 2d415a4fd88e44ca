package stockcheck

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/apoteket/stocktake-backend/internal/apperr"
)

// Handler exposes stock check HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/stock-checks", func(r chi.Router) {
		r.Post("/", h.recordCheck)
		r.Post("/batch", h.recordBatch) // ?atomic=true for all-or-nothing
	})
	r.Get("/api/v1/stock-data", h.stockData) // ?location=...&session_id=...
}

func (h *Handler) recordCheck(w http.ResponseWriter, r *http.Request) {
	var input CheckInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	check, err := h.service.RecordCheck(r.Context(), input)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"stock_check": check,
	})
}

func (h *Handler) recordBatch(w http.ResponseWriter, r *http.Request) {
	var inputs []CheckInput
	if err := json.NewDecoder(r.Body).Decode(&inputs); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if r.URL.Query().Get("atomic") == "true" {
		if err := h.service.RecordBatchAtomic(r.Context(), inputs); err != nil {
			respondError(w, err)
			return
		}
		respond(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"saved":   len(inputs),
			"failed":  0,
		})
		return
	}

	result, err := h.service.RecordBatch(r.Context(), inputs)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"success": result.Failed == 0,
		"saved":   result.Saved,
		"failed":  result.Failed,
	})
}

func (h *Handler) stockData(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.StockData(r.Context(),
		r.URL.Query().Get("location"), r.URL.Query().Get("session_id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, data)
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
