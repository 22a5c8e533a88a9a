package cryptography

import (
	"stegano/application"
	"stegano/infrastructure/cryptography/pad_cipher"
	"stegano/infrastructure/cryptography/text_cipher"
)

// PayloadCipherFactory hands out a fresh cipher per encode or decode call.
type PayloadCipherFactory struct {
}

func NewPayloadCipherFactory() application.PayloadCipherFactory {
	return &PayloadCipherFactory{}
}

func (f *PayloadCipherFactory) Text(password string) (application.TextCipher, error) {
	return text_cipher.NewAesCbc(password)
}

func (f *PayloadCipherFactory) File(seed uint32) application.FileCipher {
	return pad_cipher.NewPadCipher(seed)
}
