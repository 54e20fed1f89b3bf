package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/DukeRupert/carecrm/internal/domain"
	"github.com/DukeRupert/carecrm/internal/metrics"
	"github.com/DukeRupert/carecrm/internal/repository"
	"github.com/DukeRupert/carecrm/internal/storage"
	"github.com/disintegration/imaging"
)

const (
	// ThumbnailSize is the edge length in pixels of the square avatar shown
	// in report headers and roster lists.
	ThumbnailSize = 160

	// ThumbnailJPEGQuality is the JPEG quality for thumbnails (0-100).
	ThumbnailJPEGQuality = 85

	// MaxPhotoSize bounds how much of an original photo is read.
	MaxPhotoSize = 20 << 20
)

// Thumbnail is an encoded customer photo thumbnail.
type Thumbnail struct {
	Data        []byte
	ContentType string
	Cached      bool
}

// PhotoService defines the interface for customer photo thumbnails.
type PhotoService interface {
	// Thumbnail returns the customer's square JPEG thumbnail, generating and
	// caching it on first use.
	Thumbnail(ctx context.Context, customerID string) (*Thumbnail, error)
}

// photoService implements PhotoService.
type photoService struct {
	queries repository.Querier
	storage storage.Storage
	logger  *slog.Logger
}

// NewPhotoService creates a new PhotoService.
func NewPhotoService(queries repository.Querier, store storage.Storage, logger *slog.Logger) PhotoService {
	return &photoService{
		queries: queries,
		storage: store,
		logger:  logger,
	}
}

func (s *photoService) Thumbnail(ctx context.Context, customerID string) (*Thumbnail, error) {
	const op = "PhotoService.Thumbnail"

	id, err := parseID(op, "customer", customerID)
	if err != nil {
		return nil, err
	}

	customer, err := s.queries.GetCustomer(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound(op, "customer", customerID)
		}
		s.logger.Error("failed to get customer", "error", err, "op", op, "customer_id", customerID)
		return nil, domain.Unavailable(err, op, "Failed to retrieve customer")
	}
	if !customer.PhotoKey.Valid || customer.PhotoKey.String == "" {
		return nil, domain.NotFound(op, "photo", customerID)
	}

	key := storage.ThumbnailKey(id.String(), ThumbnailSize)
	if data, err := s.readObject(ctx, key, 0); err == nil {
		metrics.ThumbnailServed(true)
		return &Thumbnail{Data: data, ContentType: "image/jpeg", Cached: true}, nil
	} else if !storage.IsNotFound(err) {
		s.logger.Warn("thumbnail cache read failed", "error", err, "op", op, "key", key)
	}

	original, err := s.readObject(ctx, customer.PhotoKey.String, MaxPhotoSize)
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, domain.NotFound(op, "photo", customerID)
		}
		s.logger.Error("failed to read photo", "error", err, "op", op, "customer_id", customerID)
		return nil, domain.Unavailable(err, op, "Failed to retrieve photo")
	}

	data, err := GenerateThumbnail(bytes.NewReader(original), ThumbnailSize)
	if err != nil {
		s.logger.Error("failed to generate thumbnail", "error", err, "op", op, "customer_id", customerID)
		return nil, domain.Internal(err, op, "Failed to process photo")
	}

	// A failed cache write only costs a regeneration next time.
	if err := s.storage.Put(ctx, key, bytes.NewReader(data), storage.PutOptions{
		ContentType: "image/jpeg",
		Overwrite:   true,
	}); err != nil {
		s.logger.Warn("failed to cache thumbnail", "error", err, "op", op, "key", key)
	}

	metrics.ThumbnailServed(false)
	return &Thumbnail{Data: data, ContentType: "image/jpeg"}, nil
}

func (s *photoService) readObject(ctx context.Context, key string, maxSize int64) ([]byte, error) {
	rc, _, err := s.storage.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var r io.Reader = rc
	if maxSize > 0 {
		r = io.LimitReader(rc, maxSize+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if maxSize > 0 && int64(len(data)) > maxSize {
		return nil, storage.ErrTooLarge
	}
	return data, nil
}

// GenerateThumbnail decodes an image, honoring EXIF orientation, and returns
// a size x size center crop encoded as JPEG.
func GenerateThumbnail(data io.Reader, size int) ([]byte, error) {
	img, err := imaging.Decode(data, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	thumb := imaging.Fill(img, size, size, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(ThumbnailJPEGQuality)); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
