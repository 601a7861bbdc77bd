package aescbc

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"errors"
)

var zipMagic = []byte("PK")

// Decrypt opens a salt||iv||ciphertext envelope produced by Encrypt.
// Keys derived with SHA-256 are tried first, then SHA-1 so archives
// written by older releases still open. The plaintext must carry the
// zip signature, which catches passwords that survive the padding
// check by chance.
func Decrypt(data []byte, password string) ([]byte, error) {
	if len(data) < SaltLen+IVLen+aes.BlockSize {
		return nil, &ErrNotEncrypted{}
	}

	salt := data[:SaltLen]
	iv := data[SaltLen : SaltLen+IVLen]
	ciphertext := data[SaltLen+IVLen:]
	if len(ciphertext)%aes.BlockSize != 0 {
		return nil, &ErrNotEncrypted{}
	}

	for _, derive := range []func(string, []byte) []byte{DeriveKey, DeriveKeyLegacy} {
		plaintext, err := decryptWith(derive(password, salt), iv, ciphertext)
		if err == nil && bytes.HasPrefix(plaintext, zipMagic) {
			return plaintext, nil
		}
	}

	return nil, &ErrWrongPassword{}
}

func decryptWith(key, iv, ciphertext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)
	return unpad(plaintext, block.BlockSize())
}

var errBadPadding = errors.New("bad padding")

func unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, errBadPadding
	}
	n := int(data[len(data)-1])
	if n < 1 || n > blockSize {
		return nil, errBadPadding
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, errBadPadding
		}
	}
	return data[:len(data)-n], nil
}
