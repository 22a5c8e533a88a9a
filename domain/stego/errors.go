package stego

import "errors"

var (
	ErrUnsupportedFormat     = errors.New("unsupported carrier format")
	ErrCapacityExceeded      = errors.New("payload exceeds carrier capacity")
	ErrAddressSpaceExhausted = errors.New("carrier address space exhausted")
	ErrPayloadNotFound       = errors.New("payload not found")
	ErrInvalidPayload        = errors.New("invalid payload")
)
