package catalog

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/apoteket/stocktake-backend/internal/apperr"
)

// maxUploadBytes bounds a whole multipart upload request.
const maxUploadBytes = 10 << 20 // 10MB

// Handler exposes catalog HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/uploads", func(r chi.Router) {
		r.Post("/", h.upload)
		r.Get("/", h.listFiles)
		r.Get("/{id}", h.getFile)
		r.Delete("/{id}", h.deleteFile)
	})
	r.Get("/api/v1/locations", h.locations)
}

func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart request"})
		return
	}
	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		respond(w, http.StatusBadRequest, map[string]string{"error": "no files submitted"})
		return
	}

	uploads := make([]UploadInput, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			respond(w, http.StatusBadRequest, map[string]string{"error": "failed to read " + fh.Filename})
			return
		}
		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			respond(w, http.StatusBadRequest, map[string]string{"error": "failed to read " + fh.Filename})
			return
		}
		uploads = append(uploads, UploadInput{Filename: fh.Filename, Content: content})
	}

	results, err := h.service.IngestBatch(r.Context(), uploads)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"files":   results,
	})
}

func (h *Handler) listFiles(w http.ResponseWriter, r *http.Request) {
	files, err := h.service.ListFiles(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{"files": files})
}

func (h *Handler) getFile(w http.ResponseWriter, r *http.Request) {
	file, err := h.service.GetFile(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, file)
}

func (h *Handler) deleteFile(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteFile(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) locations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.service.Locations(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{"locations": locations})
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
