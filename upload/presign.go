package upload

import (
	"fmt"
	"strings"

	"github.com/wildhavenhq/media/model"
	"github.com/wildhavenhq/media/storage"
)

// RequestPresignedUpload issues a time-limited PUT URL so the client can
// send bytes straight to the object store. Classification and the size gate
// run before anything is generated; a local-disk backend rejects the request
// outright instead of silently falling back.
func (s *Service) RequestPresignedUpload(filename string, fileSize int64, mimeType string) (model.PresignedGrant, error) {
	var grant model.PresignedGrant

	category, err := Classify(mimeType)
	if err != nil {
		return grant, err
	}

	if limit := SizeLimit(category); fileSize > limit {
		return grant, fmt.Errorf("%w: %d bytes is over the %d byte limit for %s",
			ErrSizeExceeded, fileSize, limit, category)
	}

	fileKey := GenerateKey(category, mimeType, filename)

	url, err := s.store.PresignUpload(fileKey, mimeType)
	if err != nil {
		return grant, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}

	grant = model.PresignedGrant{
		UploadURL: url,
		FileKey:   fileKey,
		ExpiresIn: int(storage.PresignTTL.Seconds()),
		MimeType:  mimeType,
		Category:  string(category),
	}

	s.log.Info().
		Str("key", fileKey).
		Str("filename", filename).
		Int("expiresIn", grant.ExpiresIn).
		Msg("presigned upload url issued")

	return grant, nil
}

// ConfirmPresignedUpload finalizes bookkeeping after the client finished its
// direct PUT. The bytes never passed through this process, so the reported
// size and MIME type are taken on trust; only the key shape and the category
// ceiling are checked. The descriptor matches the synchronous path except
// for the content hash, which requires the bytes.
func (s *Service) ConfirmPresignedUpload(fileKey string, fileSize int64, mimeType, originalFilename string) (model.StoredObject, error) {
	var obj model.StoredObject

	segment, name, found := strings.Cut(fileKey, "/")
	if !found || name == "" || !validCategory(Category(segment)) {
		return obj, fmt.Errorf("%w: malformed file key %q", ErrUnsupportedType, fileKey)
	}
	category := Category(segment)

	if declared, err := Classify(mimeType); err != nil {
		return obj, err
	} else if declared != category {
		return obj, fmt.Errorf("%w: %s does not belong in %s", ErrUnsupportedType, mimeType, category)
	}

	if limit := SizeLimit(category); fileSize > limit {
		return obj, fmt.Errorf("%w: %d bytes is over the %d byte limit for %s",
			ErrSizeExceeded, fileSize, limit, category)
	}

	obj = model.StoredObject{
		Key:              fileKey,
		OriginalFilename: originalFilename,
		Size:             fileSize,
		MimeType:         mimeType,
		Category:         string(category),
	}

	s.log.Info().
		Str("key", fileKey).
		Int64("size", fileSize).
		Str("category", string(category)).
		Msg("presigned upload confirmed")

	return obj, nil
}
