package text_cipher

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha1"
	"encoding/base64"
	"fmt"
	"stegano/application"
	"stegano/domain/stego"
	"stegano/infrastructure/cryptography/mem"

	"golang.org/x/crypto/pbkdf2"
)

const (
	keyLength  = 16
	iterations = 1000
)

var salt = []byte{1, 2, 3, 4, 5, 6, 7, 8}

// AesCbc encrypts text with AES-128-CBC under a PBKDF2-SHA1 key derived from
// the carrier password. The IV is all zeroes and padding is PKCS#7, so equal
// plaintexts in equal carriers yield equal ciphertexts.
type AesCbc struct {
	block cipher.Block
}

func NewAesCbc(password string) (application.TextCipher, error) {
	key := pbkdf2.Key([]byte(password), salt, iterations, keyLength, sha1.New)
	defer mem.ZeroBytes(key)
	block, blockErr := aes.NewCipher(key)
	if blockErr != nil {
		return nil, fmt.Errorf("could not create text cipher: %w", blockErr)
	}
	return &AesCbc{
		block: block,
	}, nil
}

// Encrypt returns standard base64, which never contains a zero byte.
func (c *AesCbc) Encrypt(plaintext string) (string, error) {
	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(c.block, make([]byte, aes.BlockSize)).CryptBlocks(out, padded)
	return base64.StdEncoding.EncodeToString(out), nil
}

// Decrypt reports stego.ErrPayloadNotFound for anything that is not a
// well-formed ciphertext under this key.
func (c *AesCbc) Decrypt(ciphertext string) (string, error) {
	raw, decodeErr := base64.StdEncoding.DecodeString(ciphertext)
	if decodeErr != nil {
		return "", fmt.Errorf("%w: %v", stego.ErrPayloadNotFound, decodeErr)
	}
	if len(raw) == 0 || len(raw)%aes.BlockSize != 0 {
		return "", fmt.Errorf("%w: ciphertext length %d", stego.ErrPayloadNotFound, len(raw))
	}

	out := make([]byte, len(raw))
	cipher.NewCBCDecrypter(c.block, make([]byte, aes.BlockSize)).CryptBlocks(out, raw)
	plain, unpadErr := pkcs7Unpad(out, aes.BlockSize)
	if unpadErr != nil {
		return "", unpadErr
	}
	return string(plain), nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(bytes.Clone(data), bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, fmt.Errorf("%w: bad padding", stego.ErrPayloadNotFound)
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, fmt.Errorf("%w: bad padding", stego.ErrPayloadNotFound)
		}
	}
	return data[:len(data)-n], nil
}
