package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func encodeSolid(t *testing.T, w, h int, asPNG bool) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := range w {
		for y := range h {
			img.Set(x, y, color.RGBA{0, 128, 255, 255})
		}
	}
	var buf bytes.Buffer
	var err error
	if asPNG {
		err = png.Encode(&buf, img)
	} else {
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90})
	}
	if err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
	return buf.Bytes()
}

func TestNormalizeJPEG(t *testing.T) {
	photo, err := Normalize(bytes.NewReader(encodeSolid(t, 120, 80, false)))
	if err != nil {
		t.Fatalf("Normalize JPEG: %v", err)
	}
	if photo.MIME != "image/jpeg" {
		t.Errorf("expected image/jpeg, got %s", photo.MIME)
	}
	if len(photo.Data) == 0 {
		t.Error("expected non-empty data")
	}
}

func TestNormalizePNGConvertsToJPEG(t *testing.T) {
	photo, err := Normalize(bytes.NewReader(encodeSolid(t, 120, 80, true)))
	if err != nil {
		t.Fatalf("Normalize PNG: %v", err)
	}
	if photo.MIME != "image/jpeg" {
		t.Errorf("expected image/jpeg output, got %s", photo.MIME)
	}
}

func TestNormalizeDownscales(t *testing.T) {
	photo, err := Normalize(bytes.NewReader(encodeSolid(t, 1600, 900, false)))
	if err != nil {
		t.Fatalf("Normalize large photo: %v", err)
	}

	img, _, err := image.Decode(bytes.NewReader(photo.Data))
	if err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() > MaxDimension || bounds.Dy() > MaxDimension {
		t.Errorf("expected max %d per side, got %dx%d", MaxDimension, bounds.Dx(), bounds.Dy())
	}
	// Aspect ratio roughly preserved (16:9).
	if bounds.Dx() != MaxDimension {
		t.Errorf("expected width %d, got %d", MaxDimension, bounds.Dx())
	}
}

func TestNormalizeKeepsSmallPhotos(t *testing.T) {
	photo, err := Normalize(bytes.NewReader(encodeSolid(t, 60, 40, false)))
	if err != nil {
		t.Fatalf("Normalize small photo: %v", err)
	}

	img, _, err := image.Decode(bytes.NewReader(photo.Data))
	if err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	if img.Bounds().Dx() != 60 || img.Bounds().Dy() != 40 {
		t.Errorf("small photo must not be resized: got %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestNormalizeRejectsNonImages(t *testing.T) {
	if _, err := Normalize(bytes.NewReader([]byte("not a photo"))); err == nil {
		t.Error("expected error for non-image data")
	}
}

func TestNormalizeRejectsGIF(t *testing.T) {
	if _, err := Normalize(bytes.NewReader([]byte("GIF89a..."))); err == nil {
		t.Error("expected error for GIF")
	}
}
