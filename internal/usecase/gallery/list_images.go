package gallery

import (
	"context"
	"path"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
)

type Object struct {
	Key          string
	Size         int64
	LastModified time.Time
}

type Image struct {
	Key          string    `json:"key"`
	URL          string    `json:"url"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// Store lists stored objects and signs download links for them.
type Store interface {
	List(ctx context.Context) ([]Object, error)
	SignedURL(ctx context.Context, key string) (string, error)
}

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

func IsImage(key string) bool {
	return imageExtensions[strings.ToLower(path.Ext(key))]
}

type ListImages struct {
	store   Store
	timeout time.Duration
	log     *zap.Logger
}

func NewListImages(store Store, timeout time.Duration, log *zap.Logger) *ListImages {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ListImages{store: store, timeout: timeout, log: log}
}

// Execute returns the gallery images newest first. Without a store the
// gallery is empty.
func (uc *ListImages) Execute(ctx context.Context) ([]Image, error) {
	if uc.store == nil {
		return []Image{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	objects, err := uc.store.List(ctx)
	if err != nil {
		uc.log.Error("gallery listing failed", zap.Error(err))
		return nil, err
	}

	images := make([]Image, 0, len(objects))
	for _, o := range objects {
		if !IsImage(o.Key) {
			continue
		}

		url, err := uc.store.SignedURL(ctx, o.Key)
		if err != nil {
			uc.log.Warn("could not sign gallery image", zap.String("key", o.Key), zap.Error(err))
			continue
		}

		images = append(images, Image{
			Key:          o.Key,
			URL:          url,
			Size:         o.Size,
			LastModified: o.LastModified,
		})
	}

	sort.SliceStable(images, func(i, j int) bool {
		return images[i].LastModified.After(images[j].LastModified)
	})
	return images, nil
}
