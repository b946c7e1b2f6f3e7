// Package capture writes the color attachment of a render target to an
// image file.
package capture

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/bmp"

	"geogl/internal/util"
	"geogl/pkg/graphics"
)

// ErrNotReadable is returned for framebuffers whose backend cannot read
// pixels back to host memory.
var ErrNotReadable = errors.New("capture: framebuffer is not readable")

// Encode reads fb back and encodes it to w in the named format ("png" or
// "bmp")
func Encode(w io.Writer, fb graphics.Framebuffer, format string) error {
	if format != "png" && format != "bmp" {
		return fmt.Errorf("capture: unsupported format %q", format)
	}
	img, err := Read(fb)
	if err != nil {
		return err
	}
	return encode(w, img, format)
}

func encode(w io.Writer, img image.Image, format string) error {
	if format == "bmp" {
		return bmp.Encode(w, img)
	}
	return png.Encode(w, img)
}

// Read returns a copy of the color attachment
func Read(fb graphics.Framebuffer) (*image.RGBA, error) {
	pr, ok := fb.(graphics.PixelReader)
	if !ok {
		return nil, ErrNotReadable
	}
	return pr.ReadPixels()
}

// Save writes the color attachment to path. The extension picks the
// format: .png or .bmp.
func Save(fb graphics.Framebuffer, path string) error {
	var format string
	switch ext := util.LowerExt(path); ext {
	case ".png":
		format = "png"
	case ".bmp":
		format = "bmp"
	default:
		return fmt.Errorf("capture: unsupported file extension %q", ext)
	}

	img, err := Read(fb)
	if err != nil {
		return err
	}
	if err := util.CreateParentDir(path); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	err = encode(f, img, format)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("capture: writing %s: %w", path, err)
	}
	return nil
}
