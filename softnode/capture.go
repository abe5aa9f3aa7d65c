package softnode

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Snapshot copies the surface into a straight-alpha image with every pixel
// forced opaque, the way a window's framebuffer would show it.
func (s *Surface) Snapshot() *image.NRGBA {
	b := s.Target.Bounds()
	img := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		src := s.Target.Pix[y*s.Target.Stride:]
		dst := img.Pix[y*img.Stride:]
		for x := 0; x < b.Dx()*4; x += 4 {
			dst[x] = src[x]
			dst[x+1] = src[x+1]
			dst[x+2] = src[x+2]
			dst[x+3] = 0xFF
		}
	}
	return img
}

// Capture writes a snapshot of the surface as a PNG into dir, named with a
// timestamp and label, and returns the path written.
func (s *Surface) Capture(dir, label string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("capture: mkdir %s: %w", dir, err)
	}
	stamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.png", stamp, captureName(label)))
	if err := saveSnapshot(path, s.Snapshot()); err != nil {
		return "", fmt.Errorf("capture: %w", err)
	}
	return path, nil
}

// Captures are written often during scripted runs; speed beats size.
var snapshotEncoder = png.Encoder{CompressionLevel: png.BestSpeed}

func saveSnapshot(path string, img *image.NRGBA) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err := snapshotEncoder.Encode(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	return nil
}

// captureName turns a free-form label into a file-name fragment. Anything
// other than ASCII letters, digits, '-' and '.' becomes '_'.
func captureName(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '.':
			return r
		}
		return '_'
	}, label)
}
