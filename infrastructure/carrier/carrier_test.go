package carrier

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"image/png"
	"stegano/domain/stego"
	"testing"

	"golang.org/x/image/bmp"
)

func buildWave(channels, bitsPerSample uint16, samples []byte) []byte {
	header := make([]byte, samplesOffset)
	copy(header[0:], "RIFF")
	binary.LittleEndian.PutUint32(header[4:], uint32(samplesOffset-8+len(samples)))
	copy(header[8:], "WAVE")
	copy(header[12:], "fmt ")
	binary.LittleEndian.PutUint32(header[16:], 18)
	binary.LittleEndian.PutUint16(header[20:], 1)
	binary.LittleEndian.PutUint16(header[channelsOffset:], channels)
	binary.LittleEndian.PutUint32(header[24:], 8000)
	binary.LittleEndian.PutUint16(header[bitsPerSampleOffset:], bitsPerSample)
	copy(header[38:], "data")
	binary.LittleEndian.PutUint32(header[dataLengthOffset:], uint32(len(samples)))
	return append(header, samples...)
}

func buildImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 7), G: uint8(y * 13), B: uint8(x + y), A: 255})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	return buf.Bytes()
}

func TestEncodeUnit_PacksValue(t *testing.T) {
	got := EncodeUnit(Pixel{R: 0xAC, G: 0x37, B: 0x0F, A: 0x80}, 0xD3)
	want := Pixel{R: 0xAF, G: 0x32, B: 0x0B, A: 0x80}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
	if v := DecodeUnit(got); v != 0xD3 {
		t.Fatalf("expected 0xD3, got %#x", v)
	}
}

func TestEncodeUnit_AllValuesRoundTrip(t *testing.T) {
	base := Pixel{R: 0xFF, G: 0x00, B: 0x55, A: 0xFF}
	for v := 0; v < 256; v++ {
		p := EncodeUnit(base, byte(v))
		if DecodeUnit(p) != byte(v) {
			t.Fatalf("value %d did not survive", v)
		}
		if p.R&0xFC != base.R&0xFC || p.G&0xF8 != base.G&0xF8 || p.B&0xF8 != base.B&0xF8 {
			t.Fatalf("value %d touched high bits: %+v", v, p)
		}
	}
}

func TestPixelGrid_GeometryAndAddressing(t *testing.T) {
	grid, err := NewPixelGrid(buildImage(10, 10), FormatPNG)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if grid.UnitCount() != 100 || grid.BitsPerUnit() != 8 {
		t.Fatalf("unexpected shape: %d units, %d bits", grid.UnitCount(), grid.BitsPerUnit())
	}

	g := grid.Geometry()
	if g.IndexSeed != 110 || g.PadSeed != 110 || g.Password != "10x10=100" {
		t.Fatalf("unexpected geometry: %+v", g)
	}

	// address 23 is x=3, y=2
	p, _ := grid.Pixel(23)
	if p.R != 21 || p.G != 26 || p.B != 5 {
		t.Fatalf("unexpected pixel at 23: %+v", p)
	}

	if _, err := grid.UnitValue(100); err == nil {
		t.Fatal("expected out of range error")
	}
}

func TestPixelGrid_RoundTripsThroughContainers(t *testing.T) {
	for _, format := range []string{FormatPNG, FormatBMP} {
		t.Run(format, func(t *testing.T) {
			img := buildImage(8, 5)
			var buf bytes.Buffer
			var err error
			if format == FormatBMP {
				err = bmp.Encode(&buf, img)
			} else {
				err = png.Encode(&buf, img)
			}
			if err != nil {
				t.Fatalf("encode: %v", err)
			}

			medium, parseErr := NewParser().Parse(buf.Bytes())
			if parseErr != nil {
				t.Fatalf("parse: %v", parseErr)
			}
			for addr := 0; addr < medium.UnitCount(); addr++ {
				if err := medium.SetUnitValue(addr, byte(addr*37)); err != nil {
					t.Fatalf("set %d: %v", addr, err)
				}
			}
			out, bytesErr := medium.Bytes()
			if bytesErr != nil {
				t.Fatalf("bytes: %v", bytesErr)
			}

			reparsed, err := NewParser().Parse(out)
			if err != nil {
				t.Fatalf("reparse: %v", err)
			}
			if reparsed.(*PixelGrid).Format() != format {
				t.Fatalf("expected format %s, got %s", format, reparsed.(*PixelGrid).Format())
			}
			for addr := 0; addr < reparsed.UnitCount(); addr++ {
				v, _ := reparsed.UnitValue(addr)
				if v != byte(addr*37) {
					t.Fatalf("address %d: expected %d, got %d", addr, byte(addr*37), v)
				}
			}
		})
	}
}

func TestPixelGrid_RejectsLossyFormat(t *testing.T) {
	if _, err := NewPixelGrid(buildImage(2, 2), "jpeg"); !errors.Is(err, stego.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestSampleArray_CountsSamples(t *testing.T) {
	a, err := ParseSampleArray(buildWave(1, 16, make([]byte, 20)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.UnitCount() != 10 || a.BitsPerUnit() != 1 {
		t.Fatalf("expected 10 one-bit units, got %d of %d bits", a.UnitCount(), a.BitsPerUnit())
	}
	g := a.Geometry()
	if g.IndexSeed != 10 || g.PadSeed != 10 || g.Password != "16" {
		t.Fatalf("unexpected geometry: %+v", g)
	}
}

func TestSampleArray_StereoDividesByChannels(t *testing.T) {
	a, err := ParseSampleArray(buildWave(2, 8, make([]byte, 20)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.UnitCount() != 10 {
		t.Fatalf("expected 10 samples, got %d", a.UnitCount())
	}
}

func TestSampleArray_ClampsToPresentBytes(t *testing.T) {
	data := buildWave(1, 16, make([]byte, 8))
	binary.LittleEndian.PutUint32(data[dataLengthOffset:], 1000)
	a, err := ParseSampleArray(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.UnitCount() != 4 {
		t.Fatalf("expected 4 samples, got %d", a.UnitCount())
	}
}

func TestSampleArray_RejectsUnsupported(t *testing.T) {
	cases := map[string][]byte{
		"12-bit":    buildWave(1, 12, make([]byte, 20)),
		"mono zero": buildWave(0, 16, make([]byte, 20)),
		"truncated": buildWave(1, 16, nil)[:0x20],
	}
	for name, data := range cases {
		if _, err := ParseSampleArray(data); !errors.Is(err, stego.ErrUnsupportedFormat) {
			t.Fatalf("%s: expected ErrUnsupportedFormat, got %v", name, err)
		}
	}
}

func TestSampleArray_TouchesOnlyLowBit(t *testing.T) {
	for _, bits := range []uint16{8, 16, 24, 32} {
		width := int(bits / 8)
		samples := bytes.Repeat([]byte{0xAA}, width*6)
		data := buildWave(1, bits, samples)

		a, err := ParseSampleArray(data)
		if err != nil {
			t.Fatalf("%d bits: %v", bits, err)
		}
		for addr := 0; addr < a.UnitCount(); addr++ {
			if err := a.SetUnitValue(addr, byte(addr%2)); err != nil {
				t.Fatalf("%d bits: set: %v", bits, err)
			}
		}
		out, _ := a.Bytes()

		if !bytes.Equal(out[:samplesOffset], data[:samplesOffset]) {
			t.Fatalf("%d bits: header changed", bits)
		}
		for i := 0; i < 6; i++ {
			off := samplesOffset + i*width
			if out[off] != 0xAA|byte(i%2) && out[off] != 0xAA&^1|byte(i%2) {
				t.Fatalf("%d bits: sample %d low byte %#x", bits, i, out[off])
			}
			if !bytes.Equal(out[off+1:off+width], data[off+1:off+width]) {
				t.Fatalf("%d bits: sample %d high bytes changed", bits, i)
			}
		}
		if data[samplesOffset] != 0xAA {
			t.Fatalf("%d bits: input buffer mutated", bits)
		}
	}
}

func TestParser_DetectsMedium(t *testing.T) {
	p := NewParser()
	if m, err := p.Parse(buildWave(1, 8, make([]byte, 4))); err != nil {
		t.Fatalf("wave: %v", err)
	} else if _, ok := m.(*SampleArray); !ok {
		t.Fatalf("expected *SampleArray, got %T", m)
	}
	if m, err := p.Parse(encodePNG(t, buildImage(3, 3))); err != nil {
		t.Fatalf("png: %v", err)
	} else if _, ok := m.(*PixelGrid); !ok {
		t.Fatalf("expected *PixelGrid, got %T", m)
	}
	for _, data := range [][]byte{nil, []byte("not a carrier at all")} {
		if _, err := p.Parse(data); !errors.Is(err, stego.ErrUnsupportedFormat) {
			t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
		}
	}
}
