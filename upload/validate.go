package upload

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// validateContent confirms the staged bytes actually match the declared MIME
// type. Images must fully decode, audio must parse as a known container,
// everything else is sniffed against the allow-list.
func (s *Service) validateContent(path, declaredMime string, category Category) error {
	switch category {
	case CategoryImages:
		return s.validateImage(path, declaredMime)
	case CategoryAudio:
		return s.validateAudio(path, declaredMime)
	default:
		return s.sniffContent(path, declaredMime)
	}
}

func (s *Service) validateImage(path, declaredMime string) error {
	// no Go decoder for avif, sniff the container bytes instead
	if declaredMime == "image/avif" {
		return s.sniffContent(path, declaredMime)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}
	defer f.Close()

	if _, _, err := image.Decode(f); err != nil {
		return fmt.Errorf("%w: content does not decode as %s", ErrUnsupportedType, declaredMime)
	}

	return nil
}

func (s *Service) validateAudio(path, declaredMime string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".aac", ".webm":
		// raw ADTS and webm have no container parser here
		return s.sniffContent(path, declaredMime)
	case ".mp3", ".wav":
		meta, err := probeAudio(path)
		if err != nil {
			return fmt.Errorf("%w: %s content is not a valid audio stream", ErrUnsupportedType, declaredMime)
		}
		if meta.Duration <= 0 {
			return fmt.Errorf("%w: audio stream has no playable duration", ErrUnsupportedType)
		}
		return nil
	default:
		if _, err := probeAudio(path); err != nil {
			return fmt.Errorf("%w: %s content is not a valid audio stream", ErrUnsupportedType, declaredMime)
		}
		return nil
	}
}

// sniffContent compares the detected binary type with the declared one. An
// inconclusive detection is a soft pass so an exotic but allow-listed format
// never hard-fails an upload.
func (s *Service) sniffContent(path, declaredMime string) error {
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}

	if mt.Is("application/octet-stream") {
		s.log.Warn().
			Str("declared", declaredMime).
			Str("path", filepath.Base(path)).
			Msg("content sniffing inconclusive, accepting declared type")
		return nil
	}

	if mt.Is(declaredMime) || IsAllowed(mt.String()) {
		return nil
	}

	// formats whose canonical detected name differs from the declared
	// shorthand (video/avi vs video/x-msvideo and friends)
	if declared := Extension(declaredMime, ""); declared != "" &&
		strings.EqualFold(mt.Extension(), declared) {
		return nil
	}

	return fmt.Errorf("%w: detected %s does not match declared %s",
		ErrUnsupportedType, mt.String(), declaredMime)
}
