package carrier

import (
	"encoding/binary"
	"fmt"
	"slices"
	"stegano/domain/stego"
	"strconv"
)

const (
	channelsOffset      = 0x16
	bitsPerSampleOffset = 0x22
	dataLengthOffset    = 0x2A
	samplesOffset       = 0x2E
)

// SampleArray exposes the least significant bit of every PCM sample of a
// canonical WAV file.
type SampleArray struct {
	data          []byte
	channels      int
	bitsPerSample int
	samples       []uint32
}

// ParseSampleArray reads the fixed preamble and every sample. The input is
// copied and never modified.
func ParseSampleArray(data []byte) (*SampleArray, error) {
	if len(data) < samplesOffset {
		return nil, fmt.Errorf("%w: wav preamble truncated at %d bytes", stego.ErrUnsupportedFormat, len(data))
	}

	channels := int(binary.LittleEndian.Uint16(data[channelsOffset:]))
	bitsPerSample := int(binary.LittleEndian.Uint16(data[bitsPerSampleOffset:]))
	dataLength := int(binary.LittleEndian.Uint32(data[dataLengthOffset:]))

	if channels == 0 {
		return nil, fmt.Errorf("%w: wav declares zero channels", stego.ErrUnsupportedFormat)
	}
	switch bitsPerSample {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d bits per sample", stego.ErrUnsupportedFormat, bitsPerSample)
	}

	width := bitsPerSample / 8
	total := (dataLength / channels) / width
	if present := (len(data) - samplesOffset) / width; total > present {
		total = present
	}

	a := &SampleArray{
		data:          slices.Clone(data),
		channels:      channels,
		bitsPerSample: bitsPerSample,
		samples:       make([]uint32, total),
	}
	for i := range a.samples {
		a.samples[i] = readSample(a.data, samplesOffset+i*width, bitsPerSample)
	}
	return a, nil
}

func readSample(data []byte, off, bits int) uint32 {
	switch bits {
	case 8:
		return uint32(data[off])
	case 16:
		return uint32(binary.LittleEndian.Uint16(data[off:]))
	case 24:
		return uint32(data[off]) | uint32(data[off+1])<<8 | uint32(data[off+2])<<16
	default:
		return binary.LittleEndian.Uint32(data[off:])
	}
}

func writeSample(data []byte, off, bits int, v uint32) {
	switch bits {
	case 8:
		data[off] = byte(v)
	case 16:
		binary.LittleEndian.PutUint16(data[off:], uint16(v))
	case 24:
		data[off] = byte(v)
		data[off+1] = byte(v >> 8)
		data[off+2] = byte(v >> 16)
	default:
		binary.LittleEndian.PutUint32(data[off:], v)
	}
}

func (a *SampleArray) Channels() int {
	return a.channels
}

func (a *SampleArray) BitsPerSample() int {
	return a.bitsPerSample
}

func (a *SampleArray) Sample(addr int) (uint32, error) {
	if addr < 0 || addr >= len(a.samples) {
		return 0, fmt.Errorf("sample address %d out of range [0,%d)", addr, len(a.samples))
	}
	return a.samples[addr], nil
}

func (a *SampleArray) UnitCount() int {
	return len(a.samples)
}

func (a *SampleArray) BitsPerUnit() int {
	return 1
}

func (a *SampleArray) UnitValue(addr int) (byte, error) {
	s, sampleErr := a.Sample(addr)
	if sampleErr != nil {
		return 0, sampleErr
	}
	return byte(s & 1), nil
}

func (a *SampleArray) SetUnitValue(addr int, value byte) error {
	s, sampleErr := a.Sample(addr)
	if sampleErr != nil {
		return sampleErr
	}
	a.samples[addr] = (s &^ 1) | uint32(value&1)
	return nil
}

// Geometry keys the stream and pad off the sample count; the password is
// the bit depth in decimal.
func (a *SampleArray) Geometry() stego.Geometry {
	total := len(a.samples)
	return stego.Geometry{
		IndexSeed: uint64(total),
		Password:  strconv.Itoa(a.bitsPerSample),
		PadSeed:   uint32(total),
	}
}

func (a *SampleArray) Bytes() ([]byte, error) {
	out := slices.Clone(a.data)
	width := a.bitsPerSample / 8
	for i, s := range a.samples {
		writeSample(out, samplesOffset+i*width, a.bitsPerSample, s)
	}
	return out, nil
}
