package booklet

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xFF
	}

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create %s: %v", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("Failed to encode PNG: %v", err)
	}
}

func TestPDF(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "generated_image_1.png"), 64, 64)
	writePNG(t, filepath.Join(dir, "generated_image_2.png"), 64, 64)

	data, err := PDF(dir, "Dinosaurs")
	if err != nil {
		t.Fatalf("PDF returned error: %v", err)
	}

	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("Output does not look like a PDF document")
	}
	if len(data) < 1000 {
		t.Errorf("PDF suspiciously small: %d bytes", len(data))
	}
}

func TestPDF_NoImages(t *testing.T) {
	if _, err := PDF(t.TempDir(), "Empty"); err == nil {
		t.Error("Expected error for a bundle with no images")
	}
}

func TestPDF_MissingDir(t *testing.T) {
	if _, err := PDF(filepath.Join(t.TempDir(), "nope"), "Gone"); err == nil {
		t.Error("Expected error for a missing bundle directory")
	}
}

func TestPDF_IgnoresNonPNG(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "generated_image_1.png"), 32, 32)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not an image"), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	if _, err := PDF(dir, "Mixed"); err != nil {
		t.Errorf("PDF returned error with stray non-image file: %v", err)
	}
}

func TestSortByIndex(t *testing.T) {
	names := []string{
		"generated_image_10.png",
		"generated_image_2.png",
		"generated_image_1.png",
	}
	sortByIndex(names)

	want := []string{
		"generated_image_1.png",
		"generated_image_2.png",
		"generated_image_10.png",
	}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("sortByIndex = %v, want %v", names, want)
	}
}
