package service

import (
	"fmt"
	"strings"
	"time"

	apperrors "powercup-backend/internal/errors"

	"github.com/gabriel-vasile/mimetype"
)

// posterFormats maps the accepted poster content types to their object extension
var posterFormats = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpeg",
	"image/webp": "webp",
}

// Poster is a sniffed tournament poster ready for upload
type Poster struct {
	Data        []byte
	ContentType string
	Extension   string
}

// inspectPoster detects the poster format from its content, ignoring any client supplied type
func inspectPoster(data []byte, maxBytes int64) (*Poster, error) {
	if len(data) == 0 {
		return nil, apperrors.ErrPosterRequired
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, apperrors.ErrPosterTooLarge
	}

	detected := mimetype.Detect(data)
	if !strings.HasPrefix(detected.String(), "image/") {
		return nil, apperrors.ErrInvalidImage
	}
	for contentType, ext := range posterFormats {
		if detected.Is(contentType) {
			return &Poster{Data: data, ContentType: contentType, Extension: ext}, nil
		}
	}
	return nil, apperrors.ErrInvalidImageFormat
}

// posterObjectName builds the bucket key for a poster uploaded at the given time
func posterObjectName(at time.Time, ext string) string {
	return fmt.Sprintf("TO_%d_poster.%s", at.Unix(), ext)
}
