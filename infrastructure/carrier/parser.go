package carrier

import (
	"bytes"
	"fmt"
	"stegano/application"
	"stegano/domain/stego"
)

// Parser picks the medium from the container signature: RIFF/WAVE goes to
// SampleArray, anything image.Decode recognises goes to PixelGrid.
type Parser struct {
}

func NewParser() application.CarrierParser {
	return &Parser{}
}

func (p *Parser) Parse(data []byte) (application.CarrierMedium, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty carrier", stego.ErrUnsupportedFormat)
	}
	if isWave(data) {
		samples, samplesErr := ParseSampleArray(data)
		if samplesErr != nil {
			return nil, samplesErr
		}
		return samples, nil
	}

	grid, gridErr := DecodePixelGrid(data)
	if gridErr != nil {
		return nil, gridErr
	}
	return grid, nil
}

func isWave(data []byte) bool {
	return len(data) >= 12 &&
		bytes.Equal(data[0:4], []byte("RIFF")) &&
		bytes.Equal(data[8:12], []byte("WAVE"))
}
