package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/DukeRupert/carecrm/internal/service"
)

// PhotoHandler serves customer photo thumbnails.
type PhotoHandler struct {
	photoService service.PhotoService
	logger       *slog.Logger
}

// NewPhotoHandler creates a new PhotoHandler.
func NewPhotoHandler(photoService service.PhotoService, logger *slog.Logger) *PhotoHandler {
	return &PhotoHandler{
		photoService: photoService,
		logger:       logger,
	}
}

// RegisterRoutes registers photo routes.
func (h *PhotoHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /customers/{id}/photo", h.Thumbnail)
}

// Thumbnail writes the customer's JPEG thumbnail.
func (h *PhotoHandler) Thumbnail(w http.ResponseWriter, r *http.Request) {
	thumb, err := h.photoService.Thumbnail(r.Context(), r.PathValue("id"))
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", thumb.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(thumb.Data)))
	w.Header().Set("Cache-Control", "private, max-age=300")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(thumb.Data); err != nil {
		h.logger.Warn("failed to write thumbnail", "error", err)
	}
}
