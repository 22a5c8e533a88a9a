package carrier

// Pixel is one addressable image unit.
type Pixel struct {
	R, G, B, A uint8
}

// EncodeUnit packs v into the low bits of a pixel: 2 bits in red,
// 3 in green, 3 in blue. Alpha and the high bits stay untouched.
func EncodeUnit(p Pixel, v byte) Pixel {
	p.R = (p.R & 0xFC) | ((v >> 6) & 0x03)
	p.G = (p.G & 0xF8) | ((v >> 3) & 0x07)
	p.B = (p.B & 0xF8) | (v & 0x07)
	return p
}

func DecodeUnit(p Pixel) byte {
	return (p.B & 0x07) | ((p.G & 0x07) << 3) | ((p.R & 0x03) << 6)
}
