package auth

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
)

// EncryptToken encrypts data with AES-256-CBC and PKCS7 padding. The random
// IV is prepended to the ciphertext and the whole blob is base64 encoded.
func EncryptToken(data string, key []byte) (string, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("auth: build cipher: %w", err)
	}
	iv := make([]byte, aes.BlockSize)
	if _, err := rand.Read(iv); err != nil {
		return "", fmt.Errorf("auth: random iv: %w", err)
	}
	padded := pkcs7Pad([]byte(data), aes.BlockSize)
	out := make([]byte, len(iv)+len(padded))
	copy(out, iv)
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out[len(iv):], padded)
	return base64.StdEncoding.EncodeToString(out), nil
}

// DecryptToken reverses EncryptToken.
func DecryptToken(encoded string, key []byte) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("auth: decode token: %w", err)
	}
	if len(raw) < aes.BlockSize || len(raw)%aes.BlockSize != 0 {
		return "", errors.New("auth: ciphertext length invalid")
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("auth: build cipher: %w", err)
	}
	iv, body := raw[:aes.BlockSize], raw[aes.BlockSize:]
	plain := make([]byte, len(body))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plain, body)
	return pkcs7Unpad(plain, aes.BlockSize)
}

// NewOpaqueToken returns a fresh random token encrypted under a throwaway
// key. The key is discarded, so the token is opaque to everyone including
// the server.
func NewOpaqueToken() (string, error) {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return "", fmt.Errorf("auth: random key: %w", err)
	}
	seed := make([]byte, 16)
	if _, err := rand.Read(seed); err != nil {
		return "", fmt.Errorf("auth: random token: %w", err)
	}
	return EncryptToken(hex.EncodeToString(seed), key)
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(data []byte, blockSize int) (string, error) {
	if len(data) == 0 {
		return "", errors.New("auth: empty plaintext")
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return "", errors.New("auth: bad padding")
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return "", errors.New("auth: bad padding")
		}
	}
	return string(data[:len(data)-n]), nil
}
