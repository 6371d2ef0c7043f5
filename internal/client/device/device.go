// Package device describes the capability providers a screen may ask for:
// location, the photo library and the camera. Each call either returns a
// value, ErrPermissionDenied, or ErrCanceled when the user backs out.
package device

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/grievdesk/internal/client/models"
)

var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrCanceled         = errors.New("canceled by user")
)

type Locator interface {
	CurrentAddress(ctx context.Context) (string, error)
}

type MediaPicker interface {
	// PickFromLibrary returns one or more selected images.
	PickFromLibrary(ctx context.Context) ([]models.MediaRef, error)
	Capture(ctx context.Context) (models.MediaRef, error)
}

type MediaOpener interface {
	Open(ctx context.Context, ref models.MediaRef) (io.ReadCloser, error)
}

// FormatCoordinates renders a raw position the way the profile screen
// stores it when no street address is available.
func FormatCoordinates(lat, lon float64) string {
	return fmt.Sprintf("Lat: %s, Lon: %s",
		strconv.FormatFloat(lat, 'f', -1, 64),
		strconv.FormatFloat(lon, 'f', -1, 64))
}

// ParseCoordinates reads a "lat,lon" pair.
func ParseCoordinates(s string) (lat, lon float64, ok bool) {
	a, b, found := strings.Cut(s, ",")
	if !found {
		return 0, 0, false
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(a), 64)
	if err != nil || lat < -90 || lat > 90 {
		return 0, 0, false
	}
	lon, err = strconv.ParseFloat(strings.TrimSpace(b), 64)
	if err != nil || lon < -180 || lon > 180 {
		return 0, 0, false
	}
	return lat, lon, true
}
