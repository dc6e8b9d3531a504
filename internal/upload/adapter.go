package upload

import (
	"context"
	"fmt"
	"log/slog"
	"mime/multipart"

	"github.com/rfallows/campgrounds/internal/dependencies/clock"
	"github.com/rfallows/campgrounds/internal/model"
)

// Adapter streams submitted file parts to the object store and records
// the returned locators. A submission with zero files is valid.
type Adapter struct {
	store  ObjectStore
	clock  clock.Clock
	logger *slog.Logger
}

// NewAdapter creates an upload adapter
func NewAdapter(store ObjectStore, clock clock.Clock, logger *slog.Logger) *Adapter {
	return &Adapter{
		store:  store,
		clock:  clock,
		logger: logger,
	}
}

// UploadAll uploads every file part in order and returns one image
// locator per part. The operation is atomic from the caller's
// perspective: if any part fails, objects already stored in this attempt
// are deleted and an error is returned.
func (a *Adapter) UploadAll(ctx context.Context, files []*multipart.FileHeader) ([]model.Image, error) {
	if len(files) == 0 {
		return nil, nil
	}

	images := make([]model.Image, 0, len(files))
	for _, fh := range files {
		img, err := a.uploadOne(ctx, fh)
		if err != nil {
			a.Cleanup(ctx, images)
			return nil, fmt.Errorf("uploading %s: %w", fh.Filename, err)
		}
		images = append(images, img)
	}

	return images, nil
}

// Cleanup deletes previously uploaded objects, best effort. Used to
// compensate when an upload batch or a later persistence step fails.
func (a *Adapter) Cleanup(ctx context.Context, images []model.Image) {
	for _, img := range images {
		if err := a.store.Delete(ctx, img.Key); err != nil {
			a.logger.Warn("orphaned object not cleaned up",
				slog.String("key", img.Key),
				slog.String("error", err.Error()),
			)
		}
	}
}

func (a *Adapter) uploadOne(ctx context.Context, fh *multipart.FileHeader) (model.Image, error) {
	f, err := fh.Open()
	if err != nil {
		return model.Image{}, err
	}
	defer f.Close()

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := newStorageKey(a.clock.Now())
	url, err := a.store.Put(ctx, key, contentType, f)
	if err != nil {
		return model.Image{}, err
	}

	return model.Image{URL: url, Key: key}, nil
}
