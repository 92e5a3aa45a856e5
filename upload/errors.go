package upload

import "errors"

var (
	// ErrUnsupportedType the declared MIME type is outside every category
	// allow-list, or the byte content does not match the declared type.
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrSizeExceeded the upload is larger than its category ceiling.
	ErrSizeExceeded = errors.New("file size exceeded")

	// ErrStorageFailure the storage backend could not complete a write or
	// a presign. The underlying cause is wrapped for operator logs.
	ErrStorageFailure = errors.New("storage failure")
)
