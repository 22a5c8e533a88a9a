package stego_codec

import (
	"context"
	"errors"
	"fmt"
	"stegano/application"
	"stegano/application/logging"
	"stegano/domain/stego"
)

// Report describes how much a carrier can hold.
type Report struct {
	Units       int
	BitsPerUnit int
	// CapacityBytes is the largest frame, overhead included, the carrier can take.
	CapacityBytes int
	// MaxTextBytes bounds the ciphertext, not the plaintext.
	MaxTextBytes int
}

// MaxFileBytes is the largest file content that fits next to name.
func (r Report) MaxFileBytes(name string) int {
	// a one digit length is the smallest possible overhead
	limit := r.CapacityBytes - fileFrameSlack(r.BitsPerUnit)
	for n := limit - 3 - len(name); n > 0; n-- {
		if n+fileOverhead(name, n) <= limit {
			return n
		}
	}
	return 0
}

// Codec hides and reveals framed payloads in carrier media. Each call parses
// its own copy of the carrier, so a Codec may be shared between goroutines.
type Codec struct {
	streams application.IndexStreamFactory
	parser  application.CarrierParser
	ciphers application.PayloadCipherFactory
	logger  logging.Logger
}

func NewCodec(
	streams application.IndexStreamFactory,
	parser application.CarrierParser,
	ciphers application.PayloadCipherFactory,
	logger logging.Logger,
) *Codec {
	return &Codec{
		streams: streams,
		parser:  parser,
		ciphers: ciphers,
		logger:  logger,
	}
}

func (c *Codec) EncodeText(
	ctx context.Context,
	carrier []byte,
	text string,
	strategy stego.Strategy,
) ([]byte, error) {
	medium, parseErr := c.parser.Parse(carrier)
	if parseErr != nil {
		return nil, parseErr
	}
	geometry := medium.Geometry()

	cipher, cipherErr := c.ciphers.Text(geometry.Password)
	if cipherErr != nil {
		return nil, cipherErr
	}
	ciphertext, encryptErr := cipher.Encrypt(text)
	if encryptErr != nil {
		return nil, encryptErr
	}

	frame := textFrame(ciphertext)
	if fitErr := fits(medium, len(ciphertext), 1); fitErr != nil {
		return nil, fitErr
	}

	c.logger.Printf("hiding %s of text in %d units using %s", HumanSize(int64(len(frame))), medium.UnitCount(), strategy)
	return c.embed(ctx, medium, strategy, frame)
}

func (c *Codec) DecodeText(ctx context.Context, carrier []byte, strategy stego.Strategy) (string, error) {
	medium, parseErr := c.parser.Parse(carrier)
	if parseErr != nil {
		return "", parseErr
	}
	geometry := medium.Geometry()

	reader, readerErr := c.reader(ctx, medium, strategy)
	if readerErr != nil {
		return "", readerErr
	}
	ciphertext, readErr := reader.ReadUntil(terminator)
	if readErr != nil {
		return "", readErr
	}

	cipher, cipherErr := c.ciphers.Text(geometry.Password)
	if cipherErr != nil {
		return "", cipherErr
	}
	text, decryptErr := cipher.Decrypt(string(ciphertext))
	if decryptErr != nil {
		return "", decryptErr
	}
	c.logger.Printf("revealed %s of text", HumanSize(int64(len(text))))
	return text, nil
}

func (c *Codec) EncodeFile(
	ctx context.Context,
	carrier []byte,
	file []byte,
	name string,
	strategy stego.Strategy,
) ([]byte, error) {
	if nameErr := validateFileName(name); nameErr != nil {
		return nil, nameErr
	}
	medium, parseErr := c.parser.Parse(carrier)
	if parseErr != nil {
		return nil, parseErr
	}
	overhead := fileOverhead(name, len(file)) + fileFrameSlack(medium.BitsPerUnit())
	if fitErr := fits(medium, len(file), overhead); fitErr != nil {
		return nil, fitErr
	}

	ciphered := c.ciphers.File(medium.Geometry().PadSeed).Apply(file)
	frame := fileFrame(name, ciphered)

	c.logger.Printf("hiding %s (%s) in %d units using %s", name, HumanSize(int64(len(file))), medium.UnitCount(), strategy)
	return c.embed(ctx, medium, strategy, frame)
}

func (c *Codec) DecodeFile(ctx context.Context, carrier []byte, strategy stego.Strategy) (*stego.HiddenFile, error) {
	medium, parseErr := c.parser.Parse(carrier)
	if parseErr != nil {
		return nil, parseErr
	}

	reader, readerErr := c.reader(ctx, medium, strategy)
	if readerErr != nil {
		return nil, readerErr
	}
	length, lengthErr := reader.ReadLength()
	if lengthErr != nil {
		return nil, lengthErr
	}
	name, nameErr := reader.ReadUntil(terminator)
	if nameErr != nil {
		return nil, nameErr
	}
	ciphered, contentErr := reader.ReadN(length)
	if contentErr != nil {
		return nil, contentErr
	}

	content := c.ciphers.File(medium.Geometry().PadSeed).Apply(ciphered)
	c.logger.Printf("revealed %s (%s)", string(name), HumanSize(int64(len(content))))
	return stego.NewHiddenFile(string(name), content), nil
}

// Capacity parses the carrier and reports its limits without touching it.
func (c *Codec) Capacity(carrier []byte) (Report, error) {
	medium, parseErr := c.parser.Parse(carrier)
	if parseErr != nil {
		return Report{}, parseErr
	}
	capacity := capacityBytes(medium)
	return Report{
		Units:         medium.UnitCount(),
		BitsPerUnit:   medium.BitsPerUnit(),
		CapacityBytes: capacity,
		MaxTextBytes:  max(capacity-1, 0),
	}, nil
}

func (c *Codec) embed(
	ctx context.Context,
	medium application.CarrierMedium,
	strategy stego.Strategy,
	frame []byte,
) ([]byte, error) {
	stream, streamErr := c.streams.Create(ctx, strategy, medium.UnitCount(), medium.Geometry().IndexSeed)
	if streamErr != nil {
		return nil, streamErr
	}
	if writeErr := newFrameWriter(medium, stream).Write(frame); writeErr != nil {
		return nil, fmt.Errorf("could not write frame: %w", writeErr)
	}
	out, bytesErr := medium.Bytes()
	if bytesErr != nil {
		return nil, bytesErr
	}
	c.logger.Printf("carrier written: %s", HumanSize(int64(len(out))))
	return out, nil
}

func (c *Codec) reader(
	ctx context.Context,
	medium application.CarrierMedium,
	strategy stego.Strategy,
) (*frameReader, error) {
	stream, streamErr := c.streams.Create(ctx, strategy, medium.UnitCount(), medium.Geometry().IndexSeed)
	if streamErr != nil {
		if errors.Is(streamErr, stego.ErrAddressSpaceExhausted) {
			return nil, fmt.Errorf("%w: %v", stego.ErrPayloadNotFound, streamErr)
		}
		return nil, streamErr
	}
	return newFrameReader(medium, stream), nil
}

func fits(medium application.CarrierMedium, payload, overhead int) error {
	capacity := capacityBytes(medium)
	if payload+overhead > capacity {
		return fmt.Errorf("%w: %d bytes plus %d bytes of framing, carrier holds %d",
			stego.ErrCapacityExceeded, payload, overhead, capacity)
	}
	return nil
}
