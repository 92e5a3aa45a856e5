package storage

import (
	"time"

	"github.com/wildhavenhq/media/model"
)

const (
	StorageProviderLocal = "local"
	StorageProviderS3    = "s3"
)

// PresignTTL is how long a minted upload URL stays valid. Expiry is enforced
// by the object store, not by this process.
const PresignTTL = time.Hour

// Storer saves, deletes and presigns raw blobs. Save returns the relative
// file key on every provider so callers cannot tell providers apart from the
// key shape. Implementations must be safe for concurrent use.
type Storer interface {
	Save(model.UploadFileData) (string, error)
	Delete(fileKey string) error
	PresignUpload(fileKey, contentType string) (string, error)
}
