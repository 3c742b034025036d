package ocr

import (
	"context"
	"image"
)

// Extractor is the text-extraction provider contract: one image in, plain
// text out. An empty string is the "no readable content" signal, not an
// error; errors are reserved for engine failures.
type Extractor interface {
	ExtractText(ctx context.Context, img image.Image) (string, error)
}
