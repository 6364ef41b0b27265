// Package qr generates QR code images for short URLs.
package qr

import (
	"fmt"
	"os"

	"github.com/skip2/go-qrcode"
)

const (
	defaultSize = 256
	minSize     = 128
	maxSize     = 1024
)

// Option adjusts QR generation.
type Option func(*options)

type options struct {
	size  int
	level qrcode.RecoveryLevel
}

// WithSize sets the image size in pixels. Values outside 128-1024 are an
// error, not clamped.
func WithSize(size int) Option {
	return func(o *options) { o.size = size }
}

// WithRecoveryLevel sets the error-correction level (qrcode.Low through
// qrcode.Highest). Default is qrcode.Medium.
func WithRecoveryLevel(level qrcode.RecoveryLevel) Option {
	return func(o *options) { o.level = level }
}

// Encode renders shortURL as a PNG QR code.
func Encode(shortURL string, option ...Option) ([]byte, error) {
	o := options{size: defaultSize, level: qrcode.Medium}
	for _, opt := range option {
		opt(&o)
	}
	if o.size < minSize || o.size > maxSize {
		return nil, fmt.Errorf("qr size %d out of range: must be between %d and %d", o.size, minSize, maxSize)
	}
	return qrcode.Encode(shortURL, o.level, o.size)
}

// WriteFile renders shortURL as a PNG QR code at path.
func WriteFile(shortURL, path string, option ...Option) error {
	png, err := Encode(shortURL, option...)
	if err != nil {
		return err
	}
	return os.WriteFile(path, png, 0o644)
}
