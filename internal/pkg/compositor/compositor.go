package compositor

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/disintegration/imaging"
)

const (
	DefaultTileSize  = 300
	DefaultMaxPixels = 100_000_000
)

// ErrCanvasTooLarge is returned before allocating a canvas above the pixel limit.
var ErrCanvasTooLarge = errors.New("canvas exceeds pixel limit")

// Compositor pastes fixed-size tiles onto a transparent canvas.
// Every tile lands on the same origin, so later tiles cover earlier ones.
type Compositor struct {
	tileSize    int
	maxPixels   int64
	origin      image.Point
	compression png.CompressionLevel
}

type Option func(*Compositor)

func WithTileSize(size int) Option {
	return func(c *Compositor) {
		if size > 0 {
			c.tileSize = size
		}
	}
}

// WithMaxPixels caps width*height of a canvas. Non-positive values keep the default.
func WithMaxPixels(max int64) Option {
	return func(c *Compositor) {
		if max > 0 {
			c.maxPixels = max
		}
	}
}

func WithCompression(level png.CompressionLevel) Option {
	return func(c *Compositor) {
		c.compression = level
	}
}

func New(opts ...Option) *Compositor {
	c := &Compositor{
		tileSize:    DefaultTileSize,
		maxPixels:   DefaultMaxPixels,
		compression: png.DefaultCompression,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Compositor) TileSize() int {
	return c.tileSize
}

func (c *Compositor) MaxPixels() int64 {
	return c.maxPixels
}

// NewCanvas allocates a fully transparent width x height canvas.
func (c *Compositor) NewCanvas(width, height int) (*image.NRGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("canvas size must be positive, got %dx%d", width, height)
	}
	if int64(width) > c.maxPixels/int64(height) {
		return nil, fmt.Errorf("%w: %dx%d, limit %d pixels", ErrCanvasTooLarge, width, height, c.maxPixels)
	}
	return imaging.New(width, height, color.NRGBA{}), nil
}

// Decode reads any registered image format and returns it as NRGBA.
func (c *Compositor) Decode(r io.Reader) (*image.NRGBA, error) {
	img, err := imaging.Decode(r)
	if err != nil {
		return nil, err
	}
	return imaging.Clone(img), nil
}

// Tile stretches img to tileSize x tileSize, ignoring its aspect ratio.
func (c *Compositor) Tile(img image.Image) *image.NRGBA {
	return imaging.Resize(img, c.tileSize, c.tileSize, imaging.Lanczos)
}

// Paste composites tile over canvas at the origin using the tile's own alpha
// as the mask and returns canvas, which is modified in place. Only the tile
// rectangle is blended; pixels where the tile is fully transparent are left
// exactly as they were.
func (c *Compositor) Paste(canvas *image.NRGBA, tile image.Image) *image.NRGBA {
	src := imaging.Clone(tile)
	rect := src.Bounds().Add(c.origin).Intersect(canvas.Bounds())
	if rect.Empty() {
		return canvas
	}

	blended := imaging.Overlay(imaging.Crop(canvas, rect), src, c.origin.Sub(rect.Min), 1.0)

	for y := 0; y < rect.Dy(); y++ {
		for x := 0; x < rect.Dx(); x++ {
			sx, sy := rect.Min.X-c.origin.X+x, rect.Min.Y-c.origin.Y+y
			if src.Pix[src.PixOffset(sx, sy)+3] == 0 {
				continue
			}
			d := canvas.PixOffset(rect.Min.X+x, rect.Min.Y+y)
			b := blended.PixOffset(x, y)
			copy(canvas.Pix[d:d+4:d+4], blended.Pix[b:b+4:b+4])
		}
	}
	return canvas
}

// Add decodes one upload, tiles it and pastes it onto canvas.
func (c *Compositor) Add(canvas *image.NRGBA, r io.Reader) (*image.NRGBA, error) {
	img, err := c.Decode(r)
	if err != nil {
		return nil, err
	}
	return c.Paste(canvas, c.Tile(img)), nil
}

// Encode writes canvas as a single-frame PNG.
func (c *Compositor) Encode(w io.Writer, canvas image.Image) error {
	return imaging.Encode(w, canvas, imaging.PNG, imaging.PNGCompressionLevel(c.compression))
}

// ParseCompression maps a config name to a PNG compression level.
func ParseCompression(name string) (png.CompressionLevel, error) {
	switch name {
	case "", "default":
		return png.DefaultCompression, nil
	case "no", "none":
		return png.NoCompression, nil
	case "best_speed":
		return png.BestSpeed, nil
	case "best_compression":
		return png.BestCompression, nil
	default:
		return 0, fmt.Errorf("unknown png compression %q", name)
	}
}
