package imaging

import (
	"bytes"
	"errors"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

const (
	DefaultMaxSide = 1600
	defaultQuality = 80
	maxUploadBytes = 10 << 20
)

var ErrTooLarge = errors.New("image exceeds upload limit")

// WebPEncoder decodes JPEG, PNG or WebP uploads, downscales them so the
// longest side fits MaxSide, and re-encodes them as lossy WebP.
type WebPEncoder struct {
	MaxSide int
	Quality float32
}

func NewWebPEncoder() *WebPEncoder {
	return &WebPEncoder{MaxSide: DefaultMaxSide, Quality: defaultQuality}
}

func (e *WebPEncoder) ContentType() string { return "image/webp" }

func (e *WebPEncoder) Extension() string { return ".webp" }

func (e *WebPEncoder) Encode(r io.Reader) ([]byte, error) {
	raw, err := io.ReadAll(io.LimitReader(r, maxUploadBytes+1))
	if err != nil {
		return nil, err
	}
	if len(raw) > maxUploadBytes {
		return nil, ErrTooLarge
	}

	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}

	img := Fit(src, e.MaxSide)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: e.Quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Fit scales src down, preserving aspect ratio, so neither side exceeds
// maxSide. Smaller images are returned as is.
func Fit(src image.Image, maxSide int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSide <= 0 || (w <= maxSide && h <= maxSide) {
		return src
	}

	if w >= h {
		h = h * maxSide / w
		w = maxSide
	} else {
		w = w * maxSide / h
		h = maxSide
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
