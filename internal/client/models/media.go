package models

import (
	"fmt"
	"mime"
	"path/filepath"
	"strings"
)

// DefaultImageMIME is used when the type cannot be inferred from the URI.
const DefaultImageMIME = "image/jpeg"

// MediaRef points at a locally selected image.
type MediaRef struct {
	URI  string
	MIME string
	Name string
}

// NewMediaRef builds a reference with the MIME type inferred from the URI
// extension. Non-image or unknown extensions fall back to DefaultImageMIME.
func NewMediaRef(uri string) MediaRef {
	return MediaRef{URI: uri, MIME: InferImageMIME(uri)}
}

func InferImageMIME(uri string) string {
	ext := strings.ToLower(filepath.Ext(strings.SplitN(uri, "?", 2)[0]))
	if ext == "" {
		return DefaultImageMIME
	}
	t := mime.TypeByExtension(ext)
	if t == "" {
		return DefaultImageMIME
	}
	t, _, _ = strings.Cut(t, ";")
	if !strings.HasPrefix(t, "image/") {
		return DefaultImageMIME
	}
	return t
}

// AttachmentName is the synthesized filename of the attachment at position i.
func AttachmentName(i int) string {
	return fmt.Sprintf("image_%d.jpg", i)
}
