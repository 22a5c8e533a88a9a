package pad_cipher

import "stegano/application"

const (
	stepOffset     = 0x13793A1F2
	stepMultiplier = 0xFF7AB
	// consecutive zero low bytes tolerated before the state is perturbed
	maxRerolls = 256
	perturb    = 0x9E3779B9
)

// PadCipher XORs data with a deterministic pad of non-zero bytes derived
// from a 32-bit seed. The pad is cached and only ever extended, so one value
// can cipher several buffers of different lengths. Not safe for concurrent use.
type PadCipher struct {
	state uint32
	pad   []byte
}

func NewPadCipher(seed uint32) application.FileCipher {
	return &PadCipher{
		state: seed,
	}
}

// Apply returns data XOR pad. It is an involution.
func (c *PadCipher) Apply(data []byte) []byte {
	c.extend(len(data))
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = b ^ c.pad[i]
	}
	return out
}

// Pad returns a copy of the first n pad bytes.
func (c *PadCipher) Pad(n int) []byte {
	c.extend(n)
	return append([]byte(nil), c.pad[:n]...)
}

func (c *PadCipher) extend(n int) {
	for len(c.pad) < n {
		c.pad = append(c.pad, c.next())
	}
}

func (c *PadCipher) next() byte {
	for rerolls := 0; ; rerolls++ {
		c.state = step(c.state)
		if b := byte(c.state); b != 0 {
			return b
		}
		if rerolls == maxRerolls {
			c.state ^= perturb
			rerolls = 0
		}
	}
}

func step(x uint32) uint32 {
	return uint32(stepOffset + uint64(x>>5)*stepMultiplier)
}
