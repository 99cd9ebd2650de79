// Package imaging shrinks uploaded pictures before they are stored.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // Register PNG decoder
	"net/http"

	"golang.org/x/image/draw"
)

var ErrUnsupportedFormat = errors.New("imaging: only JPEG and PNG images are supported")

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// DetectType sniffs the content type and rejects anything but JPEG and PNG.
func DetectType(data []byte) (string, error) {
	ct := http.DetectContentType(data)
	if !allowedTypes[ct] {
		return ct, ErrUnsupportedFormat
	}
	return ct, nil
}

// Compress fits the image inside maxDimension x maxDimension, keeping the
// aspect ratio, and re-encodes it as JPEG. Smaller images are not upscaled.
func Compress(data []byte, maxDimension int, quality int) ([]byte, error) {
	if _, err := DetectType(data); err != nil {
		return nil, err
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}

	bounds := img.Bounds()
	width, height := fit(bounds.Dx(), bounds.Dy(), maxDimension)

	resized := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(resized, resized.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

func fit(width, height, limit int) (int, int) {
	if width <= limit && height <= limit {
		return width, height
	}
	if width > height {
		h := height * limit / width
		if h < 1 {
			h = 1
		}
		return limit, h
	}
	w := width * limit / height
	if w < 1 {
		w = 1
	}
	return w, limit
}
