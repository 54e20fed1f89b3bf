package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DukeRupert/carecrm/internal/domain"
	"github.com/DukeRupert/carecrm/internal/service"
)

func TestPhotoHandler_Thumbnail(t *testing.T) {
	photos := &mockPhotoService{
		ThumbnailFunc: func(_ context.Context, customerID string) (*service.Thumbnail, error) {
			if customerID != "a" {
				return nil, domain.NotFound("op", "photo", customerID)
			}
			return &service.Thumbnail{Data: []byte("jpeg-bytes"), ContentType: "image/jpeg"}, nil
		},
	}
	h := NewPhotoHandler(photos, discardLogger())
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/customers/a/photo", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/jpeg", rec.Header().Get("Content-Type"))
	assert.Equal(t, "10", rec.Header().Get("Content-Length"))
	assert.Equal(t, "jpeg-bytes", rec.Body.String())

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/customers/b/photo", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
