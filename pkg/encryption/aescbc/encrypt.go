package aescbc

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	crypto_rand "crypto/rand"
)

// Encrypt seals data under a password. The envelope layout is
// salt(16) || iv(16) || AES-256-CBC ciphertext with PKCS#7 padding.
func Encrypt(data []byte, password string) ([]byte, error) {
	salt := make([]byte, SaltLen)
	if _, err := crypto_rand.Read(salt); err != nil {
		return nil, err
	}
	iv := make([]byte, IVLen)
	if _, err := crypto_rand.Read(iv); err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(DeriveKey(password, salt))
	if err != nil {
		return nil, err
	}

	padded := pad(data, block.BlockSize())
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	out := make([]byte, 0, SaltLen+IVLen+len(ciphertext))
	out = append(out, salt...)
	out = append(out, iv...)
	out = append(out, ciphertext...)
	return out, nil
}

func pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(n)}, n)...)
}
