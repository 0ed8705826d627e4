// Package imagery shrinks photos before they are uploaded: it bounds their dimensions and re-encodes them as
// JPEG, stepping the quality down until the file fits the size target.
package imagery

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	_ "golang.org/x/image/webp" // enable decoding of WEBP images

	"github.com/silinternational/intake-api/api"
	"github.com/silinternational/intake-api/domain"
	"github.com/silinternational/intake-api/log"
	"github.com/silinternational/intake-api/photos"
)

const (
	minQuality  = 40
	qualityStep = 10
)

// Compressor implements photos.Compressor
type Compressor struct {
	// MaxDimension bounds both width and height, in pixels
	MaxDimension int

	// MaxBytes is the target size of the encoded photo. It is a target, not a limit: if the lowest quality
	// is still too big, that encoding is used.
	MaxBytes int

	Quality int

	// MaxInputBytes rejects oversized input before it is decoded
	MaxInputBytes int
}

// New returns a Compressor configured from the environment
func New() Compressor {
	return Compressor{
		MaxDimension:  domain.Env.PhotoMaxDimension,
		MaxBytes:      domain.Env.PhotoMaxBytes,
		Quality:       domain.Env.PhotoJPEGQuality,
		MaxInputBytes: domain.Env.MaxFileSize,
	}
}

func (c Compressor) Compress(ctx context.Context, f photos.File) (photos.File, error) {
	if c.MaxInputBytes > 0 && len(f.Content) > c.MaxInputBytes {
		err := fmt.Errorf("file too large (%d bytes), max is %d bytes", len(f.Content), c.MaxInputBytes)
		return photos.File{}, api.NewAppError(err, api.ErrorStoreFileTooLarge, api.CategoryUser)
	}

	if _, err := ValidateContentType(f.Content); err != nil {
		return photos.File{}, api.NewAppError(err, api.ErrorStoreFileBadContentType, api.CategoryUser)
	}

	img, err := imaging.Decode(bytes.NewReader(f.Content), imaging.AutoOrientation(true))
	if err != nil {
		err = errors.Wrapf(err, "decoding %s", f.Name)
		return photos.File{}, api.NewAppError(err, api.ErrorUnableToReadFile, api.CategoryUser)
	}

	img = c.fit(img)

	content, quality, err := c.encode(ctx, img)
	if err != nil {
		return photos.File{}, api.NewAppError(err, api.ErrorPhotoCompression, api.CategoryInternal)
	}
	log.Debugf("compressed %s from %d to %d bytes at quality %d", f.Name, len(f.Content), len(content), quality)

	return photos.File{
		Name:        changeFileExtension(f.Name, "image/jpeg"),
		ContentType: "image/jpeg",
		Content:     content,
	}, nil
}

// fit scales the image down, keeping its aspect ratio, so neither side exceeds MaxDimension
func (c Compressor) fit(img image.Image) image.Image {
	if c.MaxDimension <= 0 {
		return img
	}
	b := img.Bounds()
	if b.Dx() <= c.MaxDimension && b.Dy() <= c.MaxDimension {
		return img
	}
	return imaging.Fit(img, c.MaxDimension, c.MaxDimension, imaging.Lanczos)
}

// encode writes the image as JPEG, lowering the quality until it fits MaxBytes or the minimum is reached
func (c Compressor) encode(ctx context.Context, img image.Image) ([]byte, int, error) {
	quality := c.Quality
	if quality <= 0 || quality > 100 {
		quality = 82
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, quality, errors.Wrap(err, "compression cancelled")
		}

		buf := new(bytes.Buffer)
		if err := imaging.Encode(buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
			return nil, quality, errors.Wrapf(err, "encoding jpeg at quality %d", quality)
		}

		if c.MaxBytes <= 0 || buf.Len() <= c.MaxBytes || quality <= minQuality {
			return buf.Bytes(), quality, nil
		}

		quality -= qualityStep
		if quality < minQuality {
			quality = minQuality
		}
	}
}

// ValidateContentType sniffs the content and returns its type if it is an allowed image type
func ValidateContentType(content []byte) (string, error) {
	detectedType := http.DetectContentType(content)
	if domain.IsStringInSlice(detectedType, domain.AllowedFileUploadTypes) {
		return detectedType, nil
	}
	return "", fmt.Errorf("invalid file type %s", detectedType)
}

// changeFileExtension makes the file extension match the given content type
func changeFileExtension(name, contentType string) string {
	ext, err := mime.ExtensionsByType(contentType)
	if err != nil || len(ext) < 1 {
		return name
	}
	want := ext[0]
	for _, e := range ext {
		if e == ".jpg" {
			want = e
		}
	}
	return strings.TrimSuffix(name, filepath.Ext(name)) + want
}
