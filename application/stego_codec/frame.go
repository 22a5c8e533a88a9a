package stego_codec

import (
	"bytes"
	"errors"
	"fmt"
	"stegano/application"
	"stegano/domain/stego"
	"strconv"
)

const (
	terminator     = 0x00
	sizeSeparator  = '#'
	maxLengthDigit = 19
)

func textFrame(ciphertext string) []byte {
	frame := make([]byte, 0, len(ciphertext)+1)
	frame = append(frame, ciphertext...)
	return append(frame, terminator)
}

// fileFrame lays out "<decimal length>#<name>\x00<ciphered content>".
func fileFrame(name string, ciphered []byte) []byte {
	length := strconv.Itoa(len(ciphered))
	frame := make([]byte, 0, len(length)+len(name)+2+len(ciphered))
	frame = append(frame, length...)
	frame = append(frame, sizeSeparator)
	frame = append(frame, name...)
	frame = append(frame, terminator)
	return append(frame, ciphered...)
}

func fileOverhead(name string, contentLength int) int {
	return 2 + len(name) + len(strconv.Itoa(contentLength))
}

func validateFileName(name string) error {
	if bytes.IndexByte([]byte(name), terminator) >= 0 {
		return fmt.Errorf("%w: file name contains a zero byte", stego.ErrInvalidPayload)
	}
	return nil
}

// frameWriter spreads every frame byte over 8/BitsPerUnit units,
// least significant chunk first.
type frameWriter struct {
	medium application.CarrierMedium
	stream application.IndexStream
	bits   int
}

func newFrameWriter(medium application.CarrierMedium, stream application.IndexStream) *frameWriter {
	return &frameWriter{
		medium: medium,
		stream: stream,
		bits:   medium.BitsPerUnit(),
	}
}

func (w *frameWriter) Write(frame []byte) error {
	mask := byte(0xFF >> (8 - w.bits))
	for _, b := range frame {
		for shift := 0; shift < 8; shift += w.bits {
			addr, nextErr := w.stream.Next()
			if nextErr != nil {
				return nextErr
			}
			if setErr := w.medium.SetUnitValue(addr, (b>>shift)&mask); setErr != nil {
				return setErr
			}
		}
	}
	return nil
}

type frameReader struct {
	medium application.CarrierMedium
	stream application.IndexStream
	bits   int
	// bytes still addressable by the stream
	remaining int
}

func newFrameReader(medium application.CarrierMedium, stream application.IndexStream) *frameReader {
	return &frameReader{
		medium:    medium,
		stream:    stream,
		bits:      medium.BitsPerUnit(),
		remaining: capacityBytes(medium),
	}
}

func (r *frameReader) ReadByte() (byte, error) {
	if r.remaining <= 0 {
		return 0, fmt.Errorf("%w: carrier exhausted", stego.ErrPayloadNotFound)
	}
	mask := byte(0xFF >> (8 - r.bits))
	var b byte
	for shift := 0; shift < 8; shift += r.bits {
		addr, nextErr := r.stream.Next()
		if nextErr != nil {
			if errors.Is(nextErr, stego.ErrAddressSpaceExhausted) {
				return 0, fmt.Errorf("%w: %v", stego.ErrPayloadNotFound, nextErr)
			}
			return 0, nextErr
		}
		v, valueErr := r.medium.UnitValue(addr)
		if valueErr != nil {
			return 0, valueErr
		}
		b |= (v & mask) << shift
	}
	r.remaining--
	return b, nil
}

// ReadUntil reads bytes up to, not including, the delimiter.
func (r *frameReader) ReadUntil(delimiter byte) ([]byte, error) {
	var out []byte
	for {
		b, readErr := r.ReadByte()
		if readErr != nil {
			return nil, readErr
		}
		if b == delimiter {
			return out, nil
		}
		out = append(out, b)
	}
}

func (r *frameReader) ReadN(n int) ([]byte, error) {
	if n > r.remaining {
		return nil, fmt.Errorf("%w: length %d exceeds remaining capacity %d", stego.ErrPayloadNotFound, n, r.remaining)
	}
	out := make([]byte, n)
	for i := range out {
		b, readErr := r.ReadByte()
		if readErr != nil {
			return nil, readErr
		}
		out[i] = b
	}
	return out, nil
}

// ReadLength parses the decimal prefix of a file frame.
func (r *frameReader) ReadLength() (int, error) {
	var digits []byte
	for {
		b, readErr := r.ReadByte()
		if readErr != nil {
			return 0, readErr
		}
		if b == sizeSeparator {
			break
		}
		if b < '0' || b > '9' || len(digits) == maxLengthDigit {
			return 0, fmt.Errorf("%w: unexpected byte %#x in length prefix", stego.ErrPayloadNotFound, b)
		}
		digits = append(digits, b)
	}
	if len(digits) == 0 {
		return 0, fmt.Errorf("%w: empty length prefix", stego.ErrPayloadNotFound)
	}
	n, parseErr := strconv.Atoi(string(digits))
	if parseErr != nil {
		return 0, fmt.Errorf("%w: %v", stego.ErrPayloadNotFound, parseErr)
	}
	if n > r.remaining {
		return 0, fmt.Errorf("%w: length %d exceeds remaining capacity %d", stego.ErrPayloadNotFound, n, r.remaining)
	}
	return n, nil
}

// fileFrameSlack is the capacity a file frame must leave unused. Pixel
// carriers, one byte per unit, keep one byte spare; sample carriers may fill up.
func fileFrameSlack(bitsPerUnit int) int {
	if bitsPerUnit == 8 {
		return 1
	}
	return 0
}

func capacityBytes(medium application.CarrierMedium) int {
	return medium.UnitCount() * medium.BitsPerUnit() / 8
}
