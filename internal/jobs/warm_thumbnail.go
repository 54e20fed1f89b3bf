// Package jobs holds the background job handlers run by the worker.
package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/DukeRupert/carecrm/internal/domain"
	"github.com/DukeRupert/carecrm/internal/service"
	"github.com/DukeRupert/carecrm/internal/worker"
)

// WarmThumbnailHandler generates and caches a customer's photo thumbnail
// ahead of the report page asking for it.
type WarmThumbnailHandler struct {
	photoService service.PhotoService
	logger       *slog.Logger
}

// NewWarmThumbnailHandler creates a new handler for thumbnail warm-up jobs.
func NewWarmThumbnailHandler(photoService service.PhotoService, logger *slog.Logger) *WarmThumbnailHandler {
	return &WarmThumbnailHandler{
		photoService: photoService,
		logger:       logger,
	}
}

// Type returns the job type identifier.
func (h *WarmThumbnailHandler) Type() string {
	return worker.JobTypeWarmThumbnail
}

// Handle executes the warm-up job.
func (h *WarmThumbnailHandler) Handle(ctx context.Context, payload []byte) error {
	var p worker.WarmThumbnailPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return worker.NewPermanentError(fmt.Errorf("invalid payload: %w", err))
	}
	if p.CustomerID == "" {
		return worker.NewPermanentError(fmt.Errorf("invalid payload: missing customer_id"))
	}

	thumb, err := h.photoService.Thumbnail(ctx, p.CustomerID)
	if err != nil {
		switch domain.ErrorCode(err) {
		case domain.ENOTFOUND:
			// No photo on file; nothing to warm.
			return nil
		case domain.EUNAVAIL:
			return err
		default:
			return worker.NewPermanentError(err)
		}
	}

	h.logger.Debug("thumbnail warmed", "customer_id", p.CustomerID, "cached", thumb.Cached, "bytes", len(thumb.Data))
	return nil
}
