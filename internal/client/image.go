package client

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// MaxImageSize is the largest inline image accepted.
const MaxImageSize = 8 << 20

var (
	ErrImageTooLarge   = errors.New("image exceeds size limit")
	ErrUnsupportedType = errors.New("unsupported image type")
	ErrEmptyImage      = errors.New("image is empty")
)

// Image is inline image data with its MIME type.
type Image struct {
	Data     []byte
	MIMEType string
}

var imageTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/webp": true,
	"image/gif":  true,
	"image/heic": true,
	"image/heif": true,
}

var extensionTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
	".gif":  "image/gif",
	".heic": "image/heic",
	".heif": "image/heif",
}

// LoadImage reads an image file from disk. The MIME type comes from the
// extension, or from content sniffing when the extension is unknown.
func LoadImage(path string) (*Image, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if info.Size() > MaxImageSize {
		return nil, fmt.Errorf("%w: %s is %d bytes", ErrImageTooLarge, filepath.Base(path), info.Size())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}

	mimeType := extensionTypes[strings.ToLower(filepath.Ext(path))]
	return NewImage(data, mimeType)
}

// DecodeImage builds an Image from base64 data. A data URL prefix
// ("data:image/png;base64,") is accepted and overrides mimeType.
func DecodeImage(encoded, mimeType string) (*Image, error) {
	encoded = strings.TrimSpace(encoded)
	if rest, ok := strings.CutPrefix(encoded, "data:"); ok {
		header, payload, found := strings.Cut(rest, ",")
		if !found {
			return nil, fmt.Errorf("malformed data URL")
		}
		mimeType = strings.TrimSuffix(header, ";base64")
		encoded = payload
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return NewImage(data, mimeType)
}

// NewImage validates raw image bytes. An empty mimeType is sniffed.
func NewImage(data []byte, mimeType string) (*Image, error) {
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}
	if len(data) > MaxImageSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrImageTooLarge, len(data))
	}

	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	if !imageTypes[mimeType] {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, mimeType)
	}

	return &Image{Data: data, MIMEType: mimeType}, nil
}
