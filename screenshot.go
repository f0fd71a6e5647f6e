package flat2d

import (
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Screenshot writes the current contents of img to dir as a PNG named
// <timestamp>_<label>.png and returns its path. It reads pixels back from the
// GPU, so it must be called from ebiten.Game.Draw, after the frame's passes.
func Screenshot(img *ebiten.Image, dir, label string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("flat2d: screenshot: mkdir %s: %w", dir, err)
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	pixels := make([]byte, 4*w*h)
	img.ReadPixels(pixels)

	path := filepath.Join(dir, fmt.Sprintf("%s_%s.png", time.Now().Format("20060102_150405"), fileLabel(label)))
	if err := writePNG(path, unpremultiply(pixels, w, h)); err != nil {
		return "", fmt.Errorf("flat2d: screenshot: %w", err)
	}
	Logger().Info("flat2d: screenshot saved", slog.String("path", path))
	return path, nil
}

// unpremultiply converts premultiplied RGBA pixels, as read back from ebiten,
// to a straight-alpha image.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i+3 < len(pixels) && i+3 < len(img.Pix); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = r, g, b, a
	}
	return img
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// fileLabel keeps letters, digits, '-' and '.'; anything else becomes '_'.
func fileLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "frame"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, label)
}
