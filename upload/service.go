package upload

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/wildhavenhq/media/logger"
	"github.com/wildhavenhq/media/model"
	"github.com/wildhavenhq/media/storage"
)

// UploadRequest carries one untrusted upload through a single call. Nothing
// in it is persisted by this service.
type UploadRequest struct {
	File     io.Reader
	Filename string
	MimeType string
	// CategoryHint overrides classification when the caller already knows
	// the category. It must still be one of the four categories.
	CategoryHint Category
}

// Service validates, names and persists uploads. It holds no state between
// calls beyond the storage backend client, so concurrent uploads are
// independent.
type Service struct {
	store storage.Storer
	log   *logger.Logger
}

func New(store storage.Storer, log *logger.Logger) *Service {
	return &Service{store: store, log: log}
}

// Upload runs the full synchronous pipeline: classify, size gate, secure
// key, content validation, persist, and for audio a best-effort metadata
// pass. The returned descriptor has the same shape on every storage
// provider and on the presigned path.
func (s *Service) Upload(req UploadRequest) (model.StoredObject, error) {
	var obj model.StoredObject

	if req.File == nil || req.Filename == "" {
		return obj, errors.New("no file provided")
	}

	content, err := io.ReadAll(req.File)
	if err != nil {
		return obj, fmt.Errorf("reading upload: %w", err)
	}

	return s.upload(content, req)
}

// UploadWithThumbnail behaves like Upload and additionally stores a bounded
// JPEG thumbnail for image uploads under "thumbnails/". Thumbnail failures
// never fail the upload.
func (s *Service) UploadWithThumbnail(req UploadRequest) (model.StoredObject, error) {
	var obj model.StoredObject

	if req.File == nil || req.Filename == "" {
		return obj, errors.New("no file provided")
	}

	content, err := io.ReadAll(req.File)
	if err != nil {
		return obj, fmt.Errorf("reading upload: %w", err)
	}

	obj, err = s.upload(content, req)
	if err != nil || obj.Category != string(CategoryImages) {
		return obj, err
	}

	thumb, err := Thumbnail(content, thumbnailWidth)
	if err != nil {
		s.log.Warn().Err(err).Str("key", obj.Key).Msg("thumbnail generation failed")
		return obj, nil
	}

	thumbKey := fmt.Sprintf("thumbnails/%s.jpg", uuid.NewString())
	data := model.UploadFileData{
		FileKey:  thumbKey,
		File:     bytes.NewReader(thumb),
		Size:     int64(len(thumb)),
		MimeType: "image/jpeg",
	}
	if _, err := s.store.Save(data); err != nil {
		s.log.Warn().Err(err).Str("key", obj.Key).Msg("thumbnail save failed")
		return obj, nil
	}

	obj.ThumbnailKey = thumbKey
	return obj, nil
}

func (s *Service) upload(content []byte, req UploadRequest) (model.StoredObject, error) {
	var obj model.StoredObject

	if req.MimeType == "" {
		return obj, fmt.Errorf("%w: no mime type declared", ErrUnsupportedType)
	}

	category := req.CategoryHint
	if category == "" {
		var err error
		if category, err = Classify(req.MimeType); err != nil {
			return obj, err
		}
	} else if !validCategory(category) {
		return obj, fmt.Errorf("%w: unknown category %q", ErrUnsupportedType, category)
	}

	size := int64(len(content))
	if limit := SizeLimit(category); size > limit {
		return obj, fmt.Errorf("%w: %d bytes is over the %d byte limit for %s",
			ErrSizeExceeded, size, limit, category)
	}

	fileKey := GenerateKey(category, req.MimeType, req.Filename)

	// stage to a temp file for content validation and metadata extraction,
	// removed on every path
	tmp, err := os.CreateTemp("", "upload-*"+Extension(req.MimeType, req.Filename))
	if err != nil {
		return obj, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return obj, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}
	if err := tmp.Close(); err != nil {
		return obj, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}

	if err := s.validateContent(tmpName, req.MimeType, category); err != nil {
		return obj, err
	}

	data := model.UploadFileData{
		FileKey:  fileKey,
		File:     bytes.NewReader(content),
		Size:     size,
		MimeType: req.MimeType,
	}
	if _, err := s.store.Save(data); err != nil {
		return obj, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}

	obj = model.StoredObject{
		Key:              fileKey,
		OriginalFilename: req.Filename,
		Size:             size,
		MimeType:         req.MimeType,
		Category:         string(category),
		ContentHash:      fmt.Sprintf("%x", sha256.Sum256(content)),
	}

	if category == CategoryAudio {
		meta, err := ExtractAudioMetadata(tmpName)
		if err != nil {
			s.log.Warn().Err(err).Str("key", fileKey).Msg("audio metadata extraction failed")
		} else {
			obj.AudioMetadata = &meta
		}
	}

	s.log.Info().
		Str("key", fileKey).
		Str("filename", req.Filename).
		Str("mimeType", req.MimeType).
		Str("category", string(category)).
		Int64("size", size).
		Msg("file uploaded")

	return obj, nil
}

// Delete removes an object from the active storage backend.
func (s *Service) Delete(fileKey string) error {
	if err := s.store.Delete(fileKey); err != nil {
		return fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}

	s.log.Info().Str("key", fileKey).Msg("file deleted")
	return nil
}

// AudioMetadata reads best-effort metadata from an existing local audio
// file. Extraction failures are logged and return an empty record.
func (s *Service) AudioMetadata(path string) model.AudioMetadata {
	meta, err := ExtractAudioMetadata(path)
	if err != nil {
		s.log.Warn().Err(err).Str("path", path).Msg("audio metadata extraction failed")
	}
	return meta
}

func validCategory(c Category) bool {
	switch c {
	case CategoryImages, CategoryVideos, CategoryAudio, CategoryDocuments:
		return true
	}
	return false
}
