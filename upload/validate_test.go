package upload

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"os"
	"path/filepath"
	"testing"
)

func stage(t *testing.T, name string, content []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestValidateImageFormats(t *testing.T) {
	svc, _ := testService(t)

	var gifBuf bytes.Buffer
	pal := image.NewPaletted(image.Rect(0, 0, 8, 8), []color.Color{color.Black, color.White})
	if err := gif.Encode(&gifBuf, pal, nil); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		mime    string
		content []byte
	}{
		{"a.jpg", "image/jpeg", genJPEG(t, 16, 16, 0)},
		{"a.png", "image/png", genPNG(t, 16, 16)},
		{"a.gif", "image/gif", gifBuf.Bytes()},
	}

	for _, tt := range tests {
		path := stage(t, tt.name, tt.content)
		if err := svc.validateContent(path, tt.mime, CategoryImages); err != nil {
			t.Errorf("%s: expected valid image, got %v", tt.mime, err)
		}
	}
}

func TestValidateImageRejectsText(t *testing.T) {
	svc, _ := testService(t)

	path := stage(t, "a.jpg", []byte("plain text pretending to be a jpeg"))
	err := svc.validateContent(path, "image/jpeg", CategoryImages)
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType got %v", err)
	}
}

func TestValidateImageRejectsWrongFormat(t *testing.T) {
	svc, _ := testService(t)

	// a png declared as jpeg still decodes, a zip does not
	path := stage(t, "a.jpg", []byte("PK\x03\x04not really an archive either"))
	if err := svc.validateContent(path, "image/jpeg", CategoryImages); !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType got %v", err)
	}
}

func TestSniffDocument(t *testing.T) {
	svc, _ := testService(t)

	pdf := []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< >>\n%%EOF\n")
	path := stage(t, "paper.pdf", pdf)
	if err := svc.validateContent(path, "application/pdf", CategoryDocuments); err != nil {
		t.Errorf("expected valid pdf, got %v", err)
	}

	text := stage(t, "notes.txt", []byte("field notes from the reserve"))
	if err := svc.validateContent(text, "text/plain", CategoryDocuments); err != nil {
		t.Errorf("expected valid text, got %v", err)
	}
}

func TestSniffRejectsDisallowedContent(t *testing.T) {
	svc, _ := testService(t)

	// a real zip header declared as pdf: detected type is outside every
	// allow-list
	zip := append([]byte("PK\x03\x04"), make([]byte, 64)...)
	path := stage(t, "paper.pdf", zip)
	err := svc.validateContent(path, "application/pdf", CategoryDocuments)
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType got %v", err)
	}
}
