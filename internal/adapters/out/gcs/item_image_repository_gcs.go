// internal/adapters/out/gcs/item_image_repository_gcs.go
package gcs

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/grpc/codes"
	grpcstatus "google.golang.org/grpc/status"
)

// ItemImageRepositoryGCS stores item image binaries in GCS.
//
// Object layout: "{itemId}/{timestamp}_{fileName}". The returned object
// path is what the item doc stores in its images array; the catalog query
// resolves it to a public URL on read.
type ItemImageRepositoryGCS struct {
	Client *storage.Client
	Bucket string
}

func NewItemImageRepositoryGCS(client *storage.Client, bucket string) *ItemImageRepositoryGCS {
	b := strings.TrimSpace(bucket)
	if b == "" {
		b = defaultItemImageBucket
	}
	return &ItemImageRepositoryGCS{Client: client, Bucket: b}
}

func (r *ItemImageRepositoryGCS) bucket() string {
	b := strings.TrimSpace(r.Bucket)
	if b == "" {
		return defaultItemImageBucket
	}
	return b
}

// Upload writes data and returns the object path to store on the item.
func (r *ItemImageRepositoryGCS) Upload(ctx context.Context, itemID, fileName, contentType string, data []byte) (string, error) {
	if r == nil || r.Client == nil {
		return "", errors.New("item_image_repository_gcs: storage client is nil")
	}
	itemID = strings.TrimSpace(itemID)
	if itemID == "" {
		return "", errors.New("item_image_repository_gcs: itemID is empty")
	}
	if len(data) == 0 {
		return "", errors.New("item_image_repository_gcs: empty payload")
	}

	name := path.Base(strings.TrimSpace(fileName))
	if name == "" || name == "." || name == "/" {
		name = "image"
	}
	objectPath := fmt.Sprintf("%s/%d_%s", itemID, time.Now().UTC().UnixMilli(), name)

	w := r.Client.Bucket(r.bucket()).Object(objectPath).NewWriter(ctx)
	if ct := strings.TrimSpace(contentType); ct != "" {
		w.ContentType = ct
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("item_image_repository_gcs: write failed: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("item_image_repository_gcs: close failed: %w", err)
	}
	return objectPath, nil
}

// Delete removes an object. A missing object is treated as already deleted.
func (r *ItemImageRepositoryGCS) Delete(ctx context.Context, objectPath string) error {
	if r == nil || r.Client == nil {
		return errors.New("item_image_repository_gcs: storage client is nil")
	}
	objectPath = strings.TrimLeft(strings.TrimSpace(objectPath), "/")
	if objectPath == "" {
		return errors.New("item_image_repository_gcs: objectPath is empty")
	}

	err := r.Client.Bucket(r.bucket()).Object(objectPath).Delete(ctx)
	if err == nil || errors.Is(err, storage.ErrObjectNotExist) {
		return nil
	}
	if grpcstatus.Code(err) == codes.NotFound {
		return nil
	}
	return err
}
