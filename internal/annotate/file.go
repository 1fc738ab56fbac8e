package annotate

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"runtime"

	"github.com/mj1618/axquery/internal/platform"
)

// Load decodes a PNG image from path.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// Save encodes img to path as PNG.
func Save(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// CaptureScreen grabs the screen rectangle [x, y, w, h] into a PNG at path
// using the macOS screencapture tool.
func CaptureScreen(ctx context.Context, rect [4]int, path string) error {
	if runtime.GOOS != "darwin" {
		return fmt.Errorf("screen capture: %w", platform.ErrUnsupported)
	}
	region := fmt.Sprintf("%d,%d,%d,%d", rect[0], rect[1], rect[2], rect[3])
	out, err := exec.CommandContext(ctx, "screencapture", "-x", "-t", "png", "-R", region, path).CombinedOutput()
	if err != nil {
		return fmt.Errorf("screencapture: %w: %s", err, out)
	}
	return nil
}
