package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"net/http"

	"golang.org/x/image/draw"

	_ "image/png"

	_ "golang.org/x/image/webp"
)

// MaxDimension is the maximum width or height for stored product photos.
const MaxDimension = 1600

// JPEGQuality is the compression quality for the re-encoded output.
const JPEGQuality = 85

// allowedMIME lists input formats accepted after byte sniffing. WebP is
// decode-only; output is always JPEG.
var allowedMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// Normalize validates image data by sniffing the actual bytes (the client's
// declared Content-Type is not trusted), shrinks anything larger than
// MaxDimension and re-encodes as JPEG. Returns the bytes to store.
func Normalize(data []byte) ([]byte, error) {
	detected := http.DetectContentType(data)
	if !allowedMIME[detected] {
		return nil, fmt.Errorf("unsupported image format %s", detected)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	img = shrink(img, MaxDimension)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("encoding JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

// shrink resizes img so neither dimension exceeds maxDim, preserving aspect
// ratio. Images already within bounds are returned unchanged.
func shrink(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxDim && h <= maxDim {
		return img
	}

	newW, newH := maxDim, maxDim
	if w > h {
		newH = max(1, int(float64(h)*float64(maxDim)/float64(w)))
	} else {
		newW = max(1, int(float64(w)*float64(maxDim)/float64(h)))
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
