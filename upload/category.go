package upload

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Category determines the size ceiling and the allowed MIME set of an upload.
type Category string

const (
	CategoryImages    Category = "images"
	CategoryVideos    Category = "videos"
	CategoryAudio     Category = "audio"
	CategoryDocuments Category = "documents"
)

// Per-category size ceilings in bytes.
const (
	MaxImageSize    = 50 * 1024 * 1024
	MaxVideoSize    = 200 * 1024 * 1024
	MaxAudioSize    = 100 * 1024 * 1024
	MaxDocumentSize = 25 * 1024 * 1024
)

var imageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
	"image/bmp":  true,
	"image/tiff": true,
	"image/avif": true,
}

var videoTypes = map[string]bool{
	"video/mp4":  true,
	"video/avi":  true,
	"video/mov":  true,
	"video/wmv":  true,
	"video/webm": true,
	"video/mkv":  true,
	"video/flv":  true,
}

var audioTypes = map[string]bool{
	"audio/mpeg": true,
	"audio/mp3":  true,
	"audio/wav":  true,
	"audio/ogg":  true,
	"audio/m4a":  true,
	"audio/aac":  true,
	"audio/flac": true,
	"audio/webm": true,
}

var documentTypes = map[string]bool{
	"application/pdf":    true,
	"text/plain":         true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// extensions maps a MIME type to the canonical extension stored on disk. The
// stored extension never comes from the client-supplied filename when a table
// entry exists.
var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"image/bmp":  ".bmp",
	"image/tiff": ".tiff",
	"image/avif": ".avif",
	"video/mp4":  ".mp4",
	"video/avi":  ".avi",
	"video/mov":  ".mov",
	"video/wmv":  ".wmv",
	"video/webm": ".webm",
	"video/mkv":  ".mkv",
	"video/flv":  ".flv",
	"audio/mpeg": ".mp3",
	"audio/mp3":  ".mp3",
	"audio/wav":  ".wav",
	"audio/ogg":  ".ogg",
	"audio/m4a":  ".m4a",
	"audio/aac":  ".aac",
	"audio/flac": ".flac",
	"audio/webm": ".webm",
	"application/pdf":    ".pdf",
	"text/plain":         ".txt",
	"application/msword": ".doc",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
}

// Classify maps a declared MIME type to its category. Any MIME value outside
// the four closed allow-lists fails with ErrUnsupportedType listing the
// allowed set.
func Classify(mimeType string) (Category, error) {
	switch {
	case imageTypes[mimeType]:
		return CategoryImages, nil
	case videoTypes[mimeType]:
		return CategoryVideos, nil
	case audioTypes[mimeType]:
		return CategoryAudio, nil
	case documentTypes[mimeType]:
		return CategoryDocuments, nil
	}

	return "", fmt.Errorf("%w: %q is not allowed, allowed types: %s",
		ErrUnsupportedType, mimeType, strings.Join(AllowedTypes(), ", "))
}

// SizeLimit returns the byte ceiling for a category.
func SizeLimit(c Category) int64 {
	switch c {
	case CategoryImages:
		return MaxImageSize
	case CategoryVideos:
		return MaxVideoSize
	case CategoryAudio:
		return MaxAudioSize
	default:
		return MaxDocumentSize
	}
}

// AllowedTypes returns every accepted MIME type sorted, used in error
// messages sent back to callers.
func AllowedTypes() []string {
	var all []string
	for _, m := range []map[string]bool{imageTypes, videoTypes, audioTypes, documentTypes} {
		for k := range m {
			all = append(all, k)
		}
	}
	sort.Strings(all)
	return all
}

// IsAllowed reports whether a MIME type belongs to any category allow-list.
func IsAllowed(mimeType string) bool {
	return imageTypes[mimeType] || videoTypes[mimeType] ||
		audioTypes[mimeType] || documentTypes[mimeType]
}

// Extension returns the canonical extension for a MIME type. The original
// filename's suffix is used only when the table has no entry.
func Extension(mimeType, originalName string) string {
	if ext, ok := extensions[mimeType]; ok {
		return ext
	}
	return strings.ToLower(filepath.Ext(originalName))
}

// GenerateKey produces the storage key "<category>/<uuid><ext>". The random
// identifier is never derived from client input, so a client cannot steer a
// key into another object or out of the category tree.
func GenerateKey(c Category, mimeType, originalName string) string {
	return fmt.Sprintf("%s/%s%s", c, uuid.NewString(), Extension(mimeType, originalName))
}
