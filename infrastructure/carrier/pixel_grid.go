package carrier

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"stegano/domain/stego"

	"golang.org/x/image/bmp"
)

const (
	FormatPNG = "png"
	FormatBMP = "bmp"
)

// PixelGrid stores one payload byte per pixel, addressed row-major.
type PixelGrid struct {
	img    *image.NRGBA
	format string
}

// NewPixelGrid copies src into an editable NRGBA buffer. Straight (non
// premultiplied) alpha keeps translucent pixels lossless through re-encoding.
func NewPixelGrid(src image.Image, format string) (*PixelGrid, error) {
	if format != FormatPNG && format != FormatBMP {
		return nil, fmt.Errorf("%w: image format %q is not lossless", stego.ErrUnsupportedFormat, format)
	}
	bounds := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), src, bounds.Min, draw.Src)

	return &PixelGrid{
		img:    dst,
		format: format,
	}, nil
}

func DecodePixelGrid(data []byte) (*PixelGrid, error) {
	src, format, decodeErr := image.Decode(bytes.NewReader(data))
	if decodeErr != nil {
		return nil, fmt.Errorf("%w: %v", stego.ErrUnsupportedFormat, decodeErr)
	}
	return NewPixelGrid(src, format)
}

func (g *PixelGrid) Width() int {
	return g.img.Rect.Dx()
}

func (g *PixelGrid) Height() int {
	return g.img.Rect.Dy()
}

func (g *PixelGrid) Format() string {
	return g.format
}

func (g *PixelGrid) UnitCount() int {
	return g.Width() * g.Height()
}

func (g *PixelGrid) BitsPerUnit() int {
	return 8
}

func (g *PixelGrid) Pixel(addr int) (Pixel, error) {
	idx, idxErr := g.offset(addr)
	if idxErr != nil {
		return Pixel{}, idxErr
	}
	pix := g.img.Pix
	return Pixel{
		R: pix[idx+0],
		G: pix[idx+1],
		B: pix[idx+2],
		A: pix[idx+3],
	}, nil
}

func (g *PixelGrid) SetPixel(addr int, p Pixel) error {
	idx, idxErr := g.offset(addr)
	if idxErr != nil {
		return idxErr
	}
	pix := g.img.Pix
	pix[idx+0] = p.R
	pix[idx+1] = p.G
	pix[idx+2] = p.B
	pix[idx+3] = p.A
	return nil
}

func (g *PixelGrid) UnitValue(addr int) (byte, error) {
	p, pixelErr := g.Pixel(addr)
	if pixelErr != nil {
		return 0, pixelErr
	}
	return DecodeUnit(p), nil
}

func (g *PixelGrid) SetUnitValue(addr int, value byte) error {
	p, pixelErr := g.Pixel(addr)
	if pixelErr != nil {
		return pixelErr
	}
	return g.SetPixel(addr, EncodeUnit(p, value))
}

// Geometry keys everything off the dimensions: the seeds are W*H+W and
// the password reads "WxH=W*H".
func (g *PixelGrid) Geometry() stego.Geometry {
	w, h := g.Width(), g.Height()
	units := w * h
	return stego.Geometry{
		IndexSeed: uint64(units + w),
		Password:  fmt.Sprintf("%dx%d=%d", w, h, units),
		PadSeed:   uint32(units + w),
	}
}

func (g *PixelGrid) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	var encodeErr error
	switch g.format {
	case FormatBMP:
		encodeErr = bmp.Encode(&buf, g.img)
	default:
		encodeErr = png.Encode(&buf, g.img)
	}
	if encodeErr != nil {
		return nil, fmt.Errorf("could not encode %s carrier: %w", g.format, encodeErr)
	}
	return buf.Bytes(), nil
}

func (g *PixelGrid) offset(addr int) (int, error) {
	if addr < 0 || addr >= g.UnitCount() {
		return 0, fmt.Errorf("pixel address %d out of range [0,%d)", addr, g.UnitCount())
	}
	w := g.Width()
	return g.img.PixOffset(addr%w, addr/w), nil
}
