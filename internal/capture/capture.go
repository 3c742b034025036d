package capture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/kbinani/screenshot"
	"golang.org/x/image/draw"
)

// maxUploadWidth bounds the encoded snapshot size; frames wider than this
// are downscaled before upload. OCR accuracy on UI text is unaffected at
// this resolution.
const maxUploadWidth = 2560

// Provider takes a full-screen raster snapshot on demand. Capture is
// blocking and comparatively fast; callers run it off the UI tick.
type Provider interface {
	Capture() (image.Image, error)
}

// ScreenProvider captures the primary display
type ScreenProvider struct{}

// NewScreenProvider creates a capture provider for the primary display
func NewScreenProvider() *ScreenProvider {
	return &ScreenProvider{}
}

// Capture grabs the primary display's current full frame
func (p *ScreenProvider) Capture() (image.Image, error) {
	if screenshot.NumActiveDisplays() == 0 {
		return nil, errors.New("no active display")
	}
	img, err := screenshot.CaptureDisplay(0)
	if err != nil {
		return nil, fmt.Errorf("capture display: %w", err)
	}
	return img, nil
}

// EncodePNG renders the frame as PNG bytes, downscaling oversized frames
// to keep uploads bounded.
func EncodePNG(img image.Image) ([]byte, error) {
	img = clampWidth(img, maxUploadWidth)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// SaveSnapshot persists encoded capture bytes under dir with a
// timestamped name. Snapshots are ephemeral debugging artifacts, not
// durable state.
func SaveSnapshot(dir string, data []byte) (string, error) {
	name := fmt.Sprintf("snap_%d_%s.png", time.Now().Unix(), uuid.NewString()[:8])
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("save snapshot: %w", err)
	}
	return path, nil
}

func clampWidth(img image.Image, maxWidth int) image.Image {
	b := img.Bounds()
	if b.Dx() <= maxWidth {
		return img
	}
	h := b.Dy() * maxWidth / b.Dx()
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
