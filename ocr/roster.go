package ocr

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"strings"

	_ "image/jpeg" // JPEG decoding

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/tsawler/cohort/model"
)

// ErrNoRoster is returned when the recognized text yields no records.
var ErrNoRoster = errors.New("ocr: recognized text contains no roster rows")

// NormalizeImage decodes a scanned roster image (PNG, JPEG, TIFF or BMP)
// and re-encodes it as PNG for the recognition engine. PNG input is passed
// through untouched.
func NormalizeImage(data []byte) ([]byte, error) {
	if isPNG(data) {
		return data, nil
	}

	img, err := decodeImage(data)
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding PNG: %w", err)
	}
	return buf.Bytes(), nil
}

func isPNG(data []byte) bool {
	return len(data) >= 4 && data[0] == 0x89 && data[1] == 'P' && data[2] == 'N' && data[3] == 'G'
}

// decodeImage tries the stdlib decoders first, then the extended formats.
func decodeImage(data []byte) (image.Image, error) {
	if img, _, err := image.Decode(bytes.NewReader(data)); err == nil {
		return img, nil
	}
	if img, err := tiff.Decode(bytes.NewReader(data)); err == nil {
		return img, nil
	}
	if img, err := bmp.Decode(bytes.NewReader(data)); err == nil {
		return img, nil
	}
	return nil, fmt.Errorf("unsupported image format")
}

// ParseRoster turns recognized roster text into records, one line per
// student. The first whitespace-separated token of a line is the roll
// number; a token containing "@" is the email; everything else joins into
// the name. A leading header line mentioning the roll column is skipped.
// Lines whose first token yields no branch code and looks nothing like a
// roll number still become records; cleanup is the caller's concern.
func ParseRoster(text string) (*model.Roster, error) {
	roster := model.NewRoster()
	roster.Source.Format = "ocr"

	for i, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if i == 0 && looksLikeHeader(fields) {
			roster.Source.Headers = fields
			continue
		}

		rec := model.Record{Roll: fields[0]}
		var nameParts []string
		for _, tok := range fields[1:] {
			if rec.Email == "" && strings.Contains(tok, "@") {
				rec.Email = tok
				continue
			}
			nameParts = append(nameParts, tok)
		}
		rec.Name = strings.Join(nameParts, " ")
		roster.Add(rec)
	}

	if roster.IsEmpty() {
		return nil, ErrNoRoster
	}
	return roster, nil
}

// looksLikeHeader reports whether a line of tokens reads as column names
// rather than a student row, keyed off a roll column in first position.
func looksLikeHeader(fields []string) bool {
	return strings.HasPrefix(strings.ToLower(fields[0]), "roll")
}

// ReadRoster recognizes a scanned roster image and parses the text into
// records. The client must come from New; with the stub build this always
// fails with ErrOCRNotEnabled.
func ReadRoster(c *Client, imageData []byte) (*model.Roster, error) {
	normalized, err := NormalizeImage(imageData)
	if err != nil {
		return nil, err
	}

	text, err := c.RecognizeImage(normalized)
	if err != nil {
		return nil, err
	}

	return ParseRoster(text)
}
