// Package objectstore abstracts the cloud bucket holding original media
// and thumbnails. Clients upload and download directly via time-boxed
// presigned URLs; the server only touches bytes for small maintenance
// operations.
package objectstore

import (
	"context"
	"time"
)

// URL lifetimes. Upload URLs are short because the client requests one
// immediately before the PUT; download URLs live longer so a rendered
// gallery stays usable.
const (
	UploadURLTTL   = 15 * time.Minute
	DownloadURLTTL = time.Hour
)

// ObjectStore stores binary assets keyed by an opaque path string
type ObjectStore interface {
	// PresignUpload returns a URL that allows one PUT of the given
	// content type to key, valid for UploadURLTTL
	PresignUpload(ctx context.Context, key string, contentType string) (string, error)

	// PresignDownload returns a URL that allows GETs of key, valid
	// for DownloadURLTTL
	PresignDownload(ctx context.Context, key string) (string, error)

	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
