package storage

import (
	"mime"
	"path/filepath"
	"strings"
)

// photoTypes are the photo formats the thumbnailer can decode.
var photoTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true, // Some systems use this instead of image/jpeg
	"image/png":  true,
	"image/gif":  true,
	"image/bmp":  true,
	"image/tiff": true,
}

// DetectContentType returns providedType when set, otherwise the MIME type
// for the key's extension, otherwise "application/octet-stream".
func DetectContentType(providedType, key string) string {
	if providedType != "" {
		return providedType
	}
	ext := strings.ToLower(filepath.Ext(key))
	if contentType := mime.TypeByExtension(ext); contentType != "" {
		return contentType
	}
	return "application/octet-stream"
}

// IsPhotoType reports whether a content type is a decodable photo format.
func IsPhotoType(contentType string) bool {
	return photoTypes[baseType(contentType)]
}

func baseType(contentType string) string {
	t, _, _ := strings.Cut(contentType, ";")
	return strings.TrimSpace(strings.ToLower(t))
}
