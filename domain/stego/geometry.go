package stego

// Geometry is the key material derived from a carrier's shape.
// Encode and decode rebuild it from the same carrier, so nothing is stored.
type Geometry struct {
	// IndexSeed seeds the unit addressing strategies.
	IndexSeed uint64
	// Password feeds the text cipher key derivation.
	Password string
	// PadSeed is the initial state of the file pad cipher.
	PadSeed uint32
}
