package application

// TextCipher turns text into a printable, zero-free ciphertext and back.
type TextCipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// FileCipher is an involution: applying it twice restores the input.
type FileCipher interface {
	Apply(data []byte) []byte
}

type PayloadCipherFactory interface {
	Text(password string) (TextCipher, error)
	File(seed uint32) FileCipher
}
