package media

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// MaxSourcePixels caps the decoded size of an input image.
const MaxSourcePixels = 50_000_000

// CompressOptions bounds the output image. MaxWidth/MaxHeight form a box the
// image is fitted into; Quality is the JPEG quality (1-100).
type CompressOptions struct {
	MaxWidth  int
	MaxHeight int
	Quality   int
}

var (
	// ThumbnailPreset is used for catalog entity images.
	ThumbnailPreset = CompressOptions{MaxWidth: 800, MaxHeight: 800, Quality: 70}
	// LibraryPreset is used for media library uploads.
	LibraryPreset = CompressOptions{MaxWidth: 1920, MaxHeight: 1920, Quality: 70}
)

// PresetByName resolves a preset name, defaulting to LibraryPreset.
func PresetByName(name string) (CompressOptions, error) {
	switch name {
	case "", "library":
		return LibraryPreset, nil
	case "thumbnail":
		return ThumbnailPreset, nil
	}
	return CompressOptions{}, fmt.Errorf("unknown preset %q", name)
}

// Compressed is a re-encoded JPEG and its final dimensions.
type Compressed struct {
	Data   []byte
	Width  int
	Height int
}

// Compress decodes r, scales it down to fit opts and re-encodes it as JPEG.
// Images already within the bounds keep their size. The header is checked
// against MaxSourcePixels before any pixel data is decoded.
func Compress(r io.Reader, opts CompressOptions) (Compressed, error) {
	var head bytes.Buffer
	cfg, _, err := image.DecodeConfig(io.TeeReader(r, &head))
	if err != nil {
		return Compressed{}, fmt.Errorf("%w: decode: %v", ErrCompress, err)
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxSourcePixels {
		return Compressed{}, fmt.Errorf("%w: image is %dx%d, over the %d pixel limit", ErrCompress, cfg.Width, cfg.Height, MaxSourcePixels)
	}

	src, _, err := image.Decode(io.MultiReader(&head, r))
	if err != nil {
		return Compressed{}, fmt.Errorf("%w: decode: %v", ErrCompress, err)
	}

	b := src.Bounds()
	w, h := FitWithin(b.Dx(), b.Dy(), opts.MaxWidth, opts.MaxHeight)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	// JPEG has no alpha; transparent pixels end up white.
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	if w == b.Dx() && h == b.Dy() {
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Over)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	}

	quality := opts.Quality
	if quality <= 0 || quality > 100 {
		quality = 70
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: quality}); err != nil {
		return Compressed{}, fmt.Errorf("%w: encode: %v", ErrCompress, err)
	}
	return Compressed{Data: buf.Bytes(), Width: w, Height: h}, nil
}

// FitWithin returns the largest size with the aspect ratio of w×h that fits in
// maxW×maxH, never larger than w×h. A non-positive bound is ignored.
func FitWithin(w, h, maxW, maxH int) (int, int) {
	if w <= 0 || h <= 0 {
		return w, h
	}
	scale := 1.0
	if maxW > 0 && w > maxW {
		scale = float64(maxW) / float64(w)
	}
	if maxH > 0 && h > maxH {
		if s := float64(maxH) / float64(h); s < scale {
			scale = s
		}
	}
	if scale >= 1 {
		return w, h
	}
	nw := int(float64(w)*scale + 0.5)
	nh := int(float64(h)*scale + 0.5)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	return nw, nh
}
