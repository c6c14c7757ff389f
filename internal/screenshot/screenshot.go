// Package screenshot exports the display as PNG image.
package screenshot

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"github.com/retroenv/chip8vm/internal/display"
	"golang.org/x/image/draw"
)

// Image returns the visible display area scaled by the given factor.
func Image(rows []display.Row, scale int) *image.Gray {
	src := image.NewGray(image.Rect(0, 0, display.Width, display.Height))
	for y := range display.Height {
		for x := range display.Width {
			if display.Pixel(rows, x, y) {
				src.SetGray(x, y, color.Gray{Y: 0xFF})
			}
		}
	}
	if scale <= 1 {
		return src
	}

	dst := image.NewGray(image.Rect(0, 0, display.Width*scale, display.Height*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// Encode writes the scaled display as PNG image.
func Encode(w io.Writer, rows []display.Row, scale int) error {
	if err := png.Encode(w, Image(rows, scale)); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

// Save writes the scaled display as PNG file.
func Save(path string, rows []display.Row, scale int) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating screenshot file %s: %w", path, err)
	}

	if err := Encode(file, rows, scale); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing screenshot file %s: %w", path, err)
	}
	return nil
}
