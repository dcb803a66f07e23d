// internal/adapters/out/gcs/item_image_url_resolver.go
package gcs

import (
	"strings"

	gcscommon "storefront/internal/adapters/out/gcs/common"
)

// Default bucket for item images (public).
// env ITEM_IMAGE_BUCKET が空のときのフォールバック。
const defaultItemImageBucket = "storefront_item_images"

// ItemImageURLResolver turns stored image references into browser URLs for
// catalog responses. Stored values can be:
// - http(s)://... (returned as-is)
// - https://storage.googleapis.com/... (bucket/object parsed out)
// - objectPath (treated as object path within the configured bucket)
type ItemImageURLResolver struct {
	Bucket string
}

func NewItemImageURLResolver(bucket string) *ItemImageURLResolver {
	return &ItemImageURLResolver{Bucket: strings.TrimSpace(bucket)}
}

func (r *ItemImageURLResolver) PublicURL(objectPath string) string {
	p := strings.TrimSpace(objectPath)
	if p == "" {
		return ""
	}

	// already absolute URL
	if strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
		return p
	}

	// if it's a GCS URL, use its bucket/object
	if b, obj, ok := gcscommon.ParseGCSURL(p); ok {
		return gcscommon.GCSPublicURL(b, obj, defaultItemImageBucket)
	}

	b := strings.TrimSpace(r.Bucket)
	if b == "" {
		b = defaultItemImageBucket
	}
	return gcscommon.GCSPublicURL(b, strings.TrimLeft(p, "/"), defaultItemImageBucket)
}
