package ocr

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func testImage() image.Image {
	img := image.NewGray(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.White)
		}
	}
	return img
}

func TestNormalizeImage_PNGPassthrough(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, testImage()); err != nil {
		t.Fatal(err)
	}
	in := buf.Bytes()

	out, err := NormalizeImage(in)
	if err != nil {
		t.Fatalf("NormalizeImage() error = %v", err)
	}
	if !bytes.Equal(in, out) {
		t.Error("PNG input should pass through untouched")
	}
}

func TestNormalizeImage_BMP(t *testing.T) {
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, testImage()); err != nil {
		t.Fatal(err)
	}

	out, err := NormalizeImage(buf.Bytes())
	if err != nil {
		t.Fatalf("NormalizeImage() error = %v", err)
	}
	if !isPNG(out) {
		t.Error("BMP input should come back as PNG")
	}
}

func TestNormalizeImage_TIFF(t *testing.T) {
	var buf bytes.Buffer
	if err := tiff.Encode(&buf, testImage(), nil); err != nil {
		t.Fatal(err)
	}

	out, err := NormalizeImage(buf.Bytes())
	if err != nil {
		t.Fatalf("NormalizeImage() error = %v", err)
	}
	if !isPNG(out) {
		t.Error("TIFF input should come back as PNG")
	}
}

func TestNormalizeImage_Garbage(t *testing.T) {
	if _, err := NormalizeImage([]byte("definitely not an image")); err == nil {
		t.Error("NormalizeImage() expected error for non-image input")
	}
}

func TestParseRoster(t *testing.T) {
	text := "21CS001 Asha Verma asha@example.edu\n" +
		"21CS002 Rahul Iyer\n" +
		"\n" +
		"21EC001 meera@example.edu Meera Nair\n"

	roster, err := ParseRoster(text)
	if err != nil {
		t.Fatalf("ParseRoster() error = %v", err)
	}
	if roster.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", roster.Len())
	}

	first := roster.Records[0]
	if first.Roll != "21CS001" || first.Name != "Asha Verma" || first.Email != "asha@example.edu" {
		t.Errorf("Records[0] = %+v", first)
	}
	if roster.Records[1].Email != "" || roster.Records[1].Name != "Rahul Iyer" {
		t.Errorf("Records[1] = %+v", roster.Records[1])
	}
	// Email token recognized regardless of position
	third := roster.Records[2]
	if third.Email != "meera@example.edu" || third.Name != "Meera Nair" {
		t.Errorf("Records[2] = %+v", third)
	}
	if roster.Source.Format != "ocr" {
		t.Errorf("Format = %q, want ocr", roster.Source.Format)
	}
}

func TestParseRoster_HeaderLine(t *testing.T) {
	text := "Roll Name Email\n21CS001 Asha Verma asha@example.edu\n"

	roster, err := ParseRoster(text)
	if err != nil {
		t.Fatalf("ParseRoster() error = %v", err)
	}
	if roster.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 (header skipped)", roster.Len())
	}
	if got := roster.Headers(); len(got) != 3 || got[0] != "Roll" {
		t.Errorf("Headers() = %v", got)
	}
}

func TestParseRoster_Empty(t *testing.T) {
	for _, text := range []string{"", "\n\n", "Roll Name Email\n"} {
		if _, err := ParseRoster(text); err != ErrNoRoster {
			t.Errorf("ParseRoster(%q) error = %v, want ErrNoRoster", text, err)
		}
	}
}
