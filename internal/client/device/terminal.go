package device

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/grievdesk/internal/client/models"
)

// StaticLocator answers with a fixed address. A "lat,lon" pair is rendered
// as coordinates. An empty address behaves like a denied location permission.
type StaticLocator struct {
	Address string
}

func (l StaticLocator) CurrentAddress(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if l.Address == "" {
		return "", ErrPermissionDenied
	}
	if lat, lon, ok := ParseCoordinates(l.Address); ok {
		return FormatCoordinates(lat, lon), nil
	}
	return l.Address, nil
}

// PromptFunc asks the user for one line of input.
type PromptFunc func(ctx context.Context, label string) (string, error)

// FilePicker selects images by file path typed at a prompt. The camera is a
// single path prompt.
type FilePicker struct {
	Prompt PromptFunc
}

func (p FilePicker) PickFromLibrary(ctx context.Context) ([]models.MediaRef, error) {
	line, err := p.Prompt(ctx, "Image paths (comma separated)")
	if err != nil {
		return nil, err
	}

	var out []models.MediaRef
	for _, part := range strings.Split(line, ",") {
		path := strings.TrimSpace(part)
		if path == "" {
			continue
		}
		ref, err := fileRef(path)
		if err != nil {
			return nil, err
		}
		out = append(out, ref)
	}
	if len(out) == 0 {
		return nil, ErrCanceled
	}
	return out, nil
}

func (p FilePicker) Capture(ctx context.Context) (models.MediaRef, error) {
	line, err := p.Prompt(ctx, "Captured image path")
	if err != nil {
		return models.MediaRef{}, err
	}
	path := strings.TrimSpace(line)
	if path == "" {
		return models.MediaRef{}, ErrCanceled
	}
	return fileRef(path)
}

func fileRef(path string) (models.MediaRef, error) {
	info, err := os.Stat(localPath(path))
	if err != nil {
		return models.MediaRef{}, fmt.Errorf("image %s: %w", path, err)
	}
	if info.IsDir() {
		return models.MediaRef{}, fmt.Errorf("image %s: is a directory", path)
	}
	return models.NewMediaRef(path), nil
}

func localPath(uri string) string {
	return strings.TrimPrefix(uri, "file://")
}

// FileOpener reads media refs that point at local files.
type FileOpener struct{}

func (FileOpener) Open(_ context.Context, ref models.MediaRef) (io.ReadCloser, error) {
	f, err := os.Open(localPath(ref.URI))
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	return f, nil
}
