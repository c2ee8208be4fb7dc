package ioutils

import (
	"bytes"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoder registration
	"net/http"

	"golang.org/x/image/draw"
)

// CoverOptions controls how cover art is prepared before embedding.
type CoverOptions struct {
	// Resize shrinks images larger than MaxSize on either side.
	Resize bool

	// MaxSize is the maximum width and height in pixels.
	MaxSize int

	// ConvertToJPEG re-encodes the image as JPEG.
	ConvertToJPEG bool
}

// ImageService prepares cover art for ID3 embedding.
//
// Example usage:
//
//	svc := NewImageService(CoverOptions{Resize: true, MaxSize: 1000, ConvertToJPEG: true})
//	data, mime, err := svc.Prepare(artwork)
type ImageService struct {
	opts CoverOptions
}

// NewImageService creates a new ImageService.
func NewImageService(opts CoverOptions) *ImageService {
	return &ImageService{opts: opts}
}

// Prepare applies the configured resize/conversion and returns the image
// bytes with their MIME type.
//
// When no processing is configured, or the image cannot be decoded, the
// original bytes are returned unchanged with a sniffed MIME type: a cover
// that cannot be re-encoded is still worth embedding.
func (s *ImageService) Prepare(data []byte) ([]byte, string) {
	mime := http.DetectContentType(data)
	if !s.opts.Resize && !s.opts.ConvertToJPEG {
		return data, mime
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return data, mime
	}

	if s.opts.Resize && s.opts.MaxSize > 0 {
		img = fit(img, s.opts.MaxSize, s.opts.MaxSize)
	} else if mime == "image/jpeg" {
		// Already JPEG and nothing to resize.
		return data, mime
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return data, mime
	}
	return buf.Bytes(), "image/jpeg"
}

// fit scales img down to fit within maxWidth x maxHeight, keeping the aspect
// ratio. Smaller images are returned as is.
//
// The Catmull-Rom algorithm is used for high-quality resizing.
func fit(img image.Image, maxWidth, maxHeight int) image.Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width <= maxWidth && height <= maxHeight {
		return img
	}

	ratio := float64(width) / float64(height)
	if float64(maxWidth)/float64(maxHeight) > ratio {
		// Height is the limiting factor
		width = int(float64(maxHeight) * ratio)
		height = maxHeight
	} else {
		// Width is the limiting factor
		height = int(float64(maxWidth) / ratio)
		width = maxWidth
	}

	dst := image.NewRGBA(image.Rect(0, 0, max(width, 1), max(height, 1)))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
