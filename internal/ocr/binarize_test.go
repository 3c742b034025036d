package ocr

import (
	"image"
	"image/color"
	"testing"
)

func grayImage(values ...uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, len(values), 1))
	for i, v := range values {
		img.SetGray(i, 0, color.Gray{Y: v})
	}
	return img
}

func TestBinarizeThreshold(t *testing.T) {
	img := Binarize(grayImage(0, 139, 140, 255))

	cases := []struct {
		x    int
		want color.Color
	}{
		{0, color.Black},
		{1, color.Black}, // 139 is below the cutoff
		{2, color.White}, // 140 is at the cutoff
		{3, color.White},
	}
	for _, tc := range cases {
		got := img.At(tc.x, 0)
		gr, gg, gb, _ := got.RGBA()
		wr, wg, wb, _ := tc.want.RGBA()
		if gr != wr || gg != wg || gb != wb {
			t.Errorf("pixel %d: got %v, want %v", tc.x, got, tc.want)
		}
	}
}

func TestBinarizeIdempotent(t *testing.T) {
	src := grayImage(10, 100, 139, 140, 200, 255)

	once := Binarize(src)
	twice := Binarize(once)

	if !once.Bounds().Eq(twice.Bounds()) {
		t.Fatalf("bounds changed: %v vs %v", once.Bounds(), twice.Bounds())
	}
	for x := once.Bounds().Min.X; x < once.Bounds().Max.X; x++ {
		if once.ColorIndexAt(x, 0) != twice.ColorIndexAt(x, 0) {
			t.Fatalf("pixel %d changed on second pass", x)
		}
	}
}

func TestBinarizeColorInput(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.RGBA{R: 20, G: 20, B: 20, A: 255})    // dark gray
	img.Set(1, 0, color.RGBA{R: 240, G: 240, B: 240, A: 255}) // light gray

	out := Binarize(img)
	if out.ColorIndexAt(0, 0) != 0 {
		t.Error("dark pixel should map to black")
	}
	if out.ColorIndexAt(1, 0) != 1 {
		t.Error("light pixel should map to white")
	}
}

func TestBinarizeProducesTwoTonePalette(t *testing.T) {
	out := Binarize(grayImage(0, 255))
	if len(out.Palette) != 2 {
		t.Fatalf("expected 2-color palette, got %d colors", len(out.Palette))
	}
}
