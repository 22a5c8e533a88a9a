package application

import "stegano/domain/stego"

// CarrierMedium is a mutable carrier whose units each hold BitsPerUnit payload bits.
// Concurrency: NOT safe; callers serialize operations per instance.
type CarrierMedium interface {
	UnitCount() int
	// BitsPerUnit is the number of payload bits a single unit stores (8 or 1).
	BitsPerUnit() int
	UnitValue(addr int) (byte, error)
	SetUnitValue(addr int, value byte) error
	Geometry() stego.Geometry
	// Bytes serializes the medium back into its container format.
	Bytes() ([]byte, error)
}

type CarrierParser interface {
	Parse(data []byte) (CarrierMedium, error)
}
