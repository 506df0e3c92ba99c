// Package imagedata turns image files into self-contained data URLs small
// enough to embed in the catalog document.
//
// Images are decoded, auto-oriented from EXIF, shrunk to fit a square of
// MaxDimension and re-encoded: PNG stays PNG (keeps transparency), every
// other format becomes JPEG.
package imagedata

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"io"
	"os"
	"strings"

	"github.com/disintegration/imaging"
)

// Options controls resizing and encoding.
type Options struct {
	MaxDimension int
	Quality      int // JPEG quality, 1-100
}

// DefaultOptions matches the configuration defaults.
func DefaultOptions() Options {
	return Options{MaxDimension: 512, Quality: 75}
}

// FromFile reads the image at path and returns it as a data URL.
func FromFile(path string, opts Options) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening image: %w", err)
	}
	defer func() { _ = f.Close() }()
	return FromReader(f, opts)
}

// FromReader decodes an image from r and returns it as a data URL.
func FromReader(r io.Reader, opts Options) (string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading image: %w", err)
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	if opts.MaxDimension > 0 {
		b := img.Bounds()
		if b.Dx() > opts.MaxDimension || b.Dy() > opts.MaxDimension {
			img = imaging.Fit(img, opts.MaxDimension, opts.MaxDimension, imaging.Lanczos)
		}
	}

	var buf bytes.Buffer
	mime := "image/jpeg"
	if format == "png" {
		mime = "image/png"
		err = imaging.Encode(&buf, img, imaging.PNG)
	} else {
		quality := opts.Quality
		if quality < 1 || quality > 100 {
			quality = DefaultOptions().Quality
		}
		err = imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality))
	}
	if err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}

	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// IsDataURL reports whether s looks like a base64 image data URL.
func IsDataURL(s string) bool {
	return strings.HasPrefix(s, "data:image/") && strings.Contains(s, ";base64,")
}

// Decode splits a base64 data URL into its MIME type and payload.
func Decode(dataURL string) (string, []byte, error) {
	if !IsDataURL(dataURL) {
		return "", nil, fmt.Errorf("not an image data URL")
	}
	header, payload, _ := strings.Cut(strings.TrimPrefix(dataURL, "data:"), ";base64,")
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decoding payload: %w", err)
	}
	return header, data, nil
}
