package upload

import (
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/wildhavenhq/media/config"
	"github.com/wildhavenhq/media/logger"
)

func TestRequestPresignedUpload(t *testing.T) {
	svc := New(newFakeStore(), logger.Get(config.AppConfig{}))

	grant, err := svc.RequestPresignedUpload("keynote.mp4", 80*1024*1024, "video/mp4")
	if err != nil {
		t.Fatal(err)
	}

	re := regexp.MustCompile(`^videos/[0-9a-f-]+\.mp4$`)
	if !re.MatchString(grant.FileKey) {
		t.Errorf("file key %q does not match expected shape", grant.FileKey)
	}
	if !strings.Contains(grant.UploadURL, grant.FileKey) {
		t.Errorf("upload url %q is not scoped to the file key", grant.UploadURL)
	}
	if grant.ExpiresIn != 3600 {
		t.Errorf("expected 3600s expiry got %d", grant.ExpiresIn)
	}
	if grant.Category != "videos" {
		t.Errorf("expected category videos got %s", grant.Category)
	}
	if grant.MimeType != "video/mp4" {
		t.Errorf("expected mime video/mp4 got %s", grant.MimeType)
	}
}

func TestRequestPresignedUploadLocalMode(t *testing.T) {
	svc, _ := testService(t)

	_, err := svc.RequestPresignedUpload("big.mp4", 1024, "video/mp4")
	if !errors.Is(err, ErrStorageFailure) {
		t.Fatalf("local mode must reject presigning with ErrStorageFailure, got %v", err)
	}
}

func TestRequestPresignedUploadGates(t *testing.T) {
	svc := New(newFakeStore(), logger.Get(config.AppConfig{}))

	if _, err := svc.RequestPresignedUpload("x.zip", 10, "application/zip"); !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("expected ErrUnsupportedType got %v", err)
	}

	tooBig := SizeLimit(CategoryVideos) + 1
	if _, err := svc.RequestPresignedUpload("x.mp4", tooBig, "video/mp4"); !errors.Is(err, ErrSizeExceeded) {
		t.Errorf("expected ErrSizeExceeded got %v", err)
	}
}

func TestConfirmPresignedUpload(t *testing.T) {
	svc := New(newFakeStore(), logger.Get(config.AppConfig{}))

	grant, err := svc.RequestPresignedUpload("talk.mp4", 5*1024*1024, "video/mp4")
	if err != nil {
		t.Fatal(err)
	}

	obj, err := svc.ConfirmPresignedUpload(grant.FileKey, 5*1024*1024, "video/mp4", "talk.mp4")
	if err != nil {
		t.Fatal(err)
	}

	if obj.Key != grant.FileKey {
		t.Errorf("confirmation must keep the issued key, got %s", obj.Key)
	}
	if obj.Category != "videos" || obj.Size != 5*1024*1024 || obj.MimeType != "video/mp4" {
		t.Errorf("unexpected descriptor %+v", obj)
	}
	if obj.OriginalFilename != "talk.mp4" {
		t.Errorf("expected original filename kept, got %s", obj.OriginalFilename)
	}
	// the bytes never passed through this process
	if obj.ContentHash != "" {
		t.Errorf("unexpected content hash %q", obj.ContentHash)
	}
}

func TestConfirmPresignedUploadRejects(t *testing.T) {
	svc := New(newFakeStore(), logger.Get(config.AppConfig{}))

	if _, err := svc.ConfirmPresignedUpload("no-slash", 10, "video/mp4", "x.mp4"); !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("malformed key: expected ErrUnsupportedType got %v", err)
	}
	if _, err := svc.ConfirmPresignedUpload("cache/abc.mp4", 10, "video/mp4", "x.mp4"); !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("unknown category segment: expected ErrUnsupportedType got %v", err)
	}
	if _, err := svc.ConfirmPresignedUpload("videos/abc.mp4", 10, "audio/mpeg", "x.mp4"); !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("category mismatch: expected ErrUnsupportedType got %v", err)
	}
	tooBig := SizeLimit(CategoryVideos) + 1
	if _, err := svc.ConfirmPresignedUpload("videos/abc.mp4", tooBig, "video/mp4", "x.mp4"); !errors.Is(err, ErrSizeExceeded) {
		t.Errorf("over ceiling: expected ErrSizeExceeded got %v", err)
	}
}
