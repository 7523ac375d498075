// Package imgio reads and writes images as normalized floating-point rasters.
//
// Decoding supports PNG, JPEG and GIF from the standard library plus TIFF,
// BMP and WebP from golang.org/x/image. Gray images are min-max normalized
// to [0, 1]; color images are split into R, G and B channels scaled to
// [0, 1] without normalization. Output is 16-bit PNG with samples clamped
// to [0, 1].
package imgio

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"

	"github.com/cwbudde/algo-deblur/dsp/core"
	"github.com/cwbudde/algo-deblur/dsp/raster"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrUnsupportedImage is returned for undecodable or empty images.
var ErrUnsupportedImage = errors.New("imgio: unsupported image")

const maxSample = 0xffff

// DecodeGray decodes an image, converts it to 16-bit luminance and
// normalizes it to [0, 1].
func DecodeGray(r io.Reader) (*raster.Image, error) {
	src, err := decode(r)
	if err != nil {
		return nil, err
	}
	b := src.Bounds()
	gray := image.NewGray16(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(gray, gray.Bounds(), src, b.Min, draw.Src)

	img := raster.New(b.Dy(), b.Dx())
	for r := range img.Rows {
		row := img.Row(r)
		for c := range row {
			row[c] = float64(gray.Gray16At(c, r).Y) / maxSample
		}
	}
	raster.Normalize(img)
	return img, nil
}

// DecodeChannels decodes an image into its R, G and B channels in [0, 1].
func DecodeChannels(r io.Reader) ([]*raster.Image, error) {
	src, err := decode(r)
	if err != nil {
		return nil, err
	}
	b := src.Bounds()
	rgba := image.NewNRGBA64(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), src, b.Min, draw.Src)

	channels := []*raster.Image{
		raster.New(b.Dy(), b.Dx()),
		raster.New(b.Dy(), b.Dx()),
		raster.New(b.Dy(), b.Dx()),
	}
	for r := range b.Dy() {
		for c := range b.Dx() {
			px := rgba.NRGBA64At(c, r)
			channels[0].Set(r, c, float64(px.R)/maxSample)
			channels[1].Set(r, c, float64(px.G)/maxSample)
			channels[2].Set(r, c, float64(px.B)/maxSample)
		}
	}
	return channels, nil
}

func decode(r io.Reader) (image.Image, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedImage, err)
	}
	if src.Bounds().Empty() {
		return nil, fmt.Errorf("%w: empty bounds", ErrUnsupportedImage)
	}
	return src, nil
}

// EncodeGray writes img as a 16-bit grayscale PNG.
func EncodeGray(w io.Writer, img *raster.Image) error {
	if img.Empty() {
		return raster.ErrEmptyImage
	}
	out := image.NewGray16(image.Rect(0, 0, img.Cols, img.Rows))
	for r := range img.Rows {
		for c, v := range img.Row(r) {
			out.SetGray16(c, r, color.Gray16{Y: quantize(v)})
		}
	}
	return png.Encode(w, out)
}

// EncodeChannels writes three equally sized channels as a 16-bit RGB PNG.
func EncodeChannels(w io.Writer, channels []*raster.Image) error {
	if len(channels) != 3 {
		return fmt.Errorf("%w: %d channels, want 3", raster.ErrSizeMismatch, len(channels))
	}
	for _, ch := range channels {
		if ch.Empty() {
			return raster.ErrEmptyImage
		}
		if !ch.SameSize(channels[0]) {
			return fmt.Errorf("%w: channel %v vs %v", raster.ErrSizeMismatch, ch.Size(), channels[0].Size())
		}
	}

	rows, cols := channels[0].Rows, channels[0].Cols
	out := image.NewNRGBA64(image.Rect(0, 0, cols, rows))
	for r := range rows {
		for c := range cols {
			out.SetNRGBA64(c, r, color.NRGBA64{
				R: quantize(channels[0].At(r, c)),
				G: quantize(channels[1].At(r, c)),
				B: quantize(channels[2].At(r, c)),
				A: maxSample,
			})
		}
	}
	return png.Encode(w, out)
}

func quantize(v float64) uint16 {
	return uint16(core.Clamp(v, 0, 1)*maxSample + 0.5)
}

// LoadGray reads a file with DecodeGray.
func LoadGray(path string) (*raster.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeGray(f)
}

// LoadChannels reads a file with DecodeChannels.
func LoadChannels(path string) ([]*raster.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeChannels(f)
}

// SaveGray writes img to path as a 16-bit grayscale PNG.
func SaveGray(path string, img *raster.Image) error {
	return save(path, func(w io.Writer) error { return EncodeGray(w, img) })
}

// SaveChannels writes R, G, B channels to path as a 16-bit PNG.
func SaveChannels(path string, channels []*raster.Image) error {
	return save(path, func(w io.Writer) error { return EncodeChannels(w, channels) })
}

func save(path string, encode func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
