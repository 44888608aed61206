package level

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/png"
	"io"
	"math"
	"os"

	_ "golang.org/x/image/bmp"

	"levelengine/internal/mathutil"
	"levelengine/internal/pixel"
)

// Bitmap is a decoded level image. Pixels are stored as packed 0xCCFFWW
// values in row-major order; X grows east and Y grows south.
type Bitmap struct {
	Width  int
	Height int
	Pix    []uint32
}

// NewBitmap creates an all-open bitmap
func NewBitmap(width, height int) *Bitmap {
	return &Bitmap{Width: width, Height: height, Pix: make([]uint32, width*height)}
}

// FromImage converts any image into a bitmap
func FromImage(img image.Image) *Bitmap {
	b := img.Bounds()
	bm := NewBitmap(b.Dx(), b.Dy())
	for y := 0; y < bm.Height; y++ {
		for x := 0; x < bm.Width; x++ {
			bm.Pix[y*bm.Width+x] = pixel.FromColor(img.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return bm
}

// Decode reads a PNG, GIF or BMP level
func Decode(r io.Reader) (*Bitmap, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode level image: %w", err)
	}
	bm := FromImage(img)
	if bm.Width < 3 || bm.Height < 3 {
		return nil, fmt.Errorf("%s level is %dx%d, need at least 3x3: %w", format, bm.Width, bm.Height, ErrMalformedLevel)
	}
	return bm, nil
}

// LoadBitmap reads a level image from disk
func LoadBitmap(path string) (*Bitmap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open level %s: %w", path, err)
	}
	defer f.Close()

	bm, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", path, err)
	}
	return bm, nil
}

// InBounds reports whether (x, y) addresses a pixel
func (bm *Bitmap) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < bm.Width && y < bm.Height
}

// At returns the packed pixel, or 0 outside the bitmap
func (bm *Bitmap) At(x, y int) uint32 {
	if !bm.InBounds(x, y) {
		return 0
	}
	return bm.Pix[y*bm.Width+x]
}

// Set stores a packed pixel
func (bm *Bitmap) Set(x, y int, p uint32) {
	if bm.InBounds(x, y) {
		bm.Pix[y*bm.Width+x] = p
	}
}

// Tile decodes the pixel at (x, y)
func (bm *Bitmap) Tile(x, y int) pixel.Tile {
	return pixel.Decode(bm.At(x, y))
}

// Solid reports whether (x, y) is a wall. Out of bounds is not solid.
func (bm *Bitmap) Solid(x, y int) bool {
	return bm.InBounds(x, y) && bm.Tile(x, y).Solid
}

// TileCenter returns the world position of a tile's centre
func TileCenter(x, y int, tileSize float64) mathutil.Vec2 {
	return mathutil.Vec2{X: (float64(x) + 0.5) * tileSize, Y: (float64(y) + 0.5) * tileSize}
}

// TileAt returns the tile containing a world position
func TileAt(p mathutil.Vec2, tileSize float64) (x, y int) {
	return int(math.Floor(p.X / tileSize)), int(math.Floor(p.Y / tileSize))
}
