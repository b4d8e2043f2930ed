// File: internal/secrets/cipher.go
package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/iyunix/go-mindster/internal/domain"
)

// KeySize is the AES-256 key length in bytes.
const KeySize = 32

// Cipher encrypts provider API keys at rest with AES-256-GCM.
// A token is base64(nonce || ciphertext || tag).
type Cipher struct {
	aead cipher.AEAD
}

// NewCipher builds a Cipher from a raw 32-byte key.
func NewCipher(key []byte) (*Cipher, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("encryption key must be %d bytes, got %d", KeySize, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &Cipher{aead: aead}, nil
}

// NewCipherFromHex parses a 64-character hex key.
func NewCipherFromHex(hexKey string) (*Cipher, error) {
	if len(hexKey) != KeySize*2 {
		return nil, fmt.Errorf("encryption key must be %d hex characters", KeySize*2)
	}
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, errors.New("encryption key must be hex-encoded")
	}
	return NewCipher(key)
}

// Encrypt seals plaintext under a fresh random nonce.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", domain.NewCryptoError("encrypt", err)
	}
	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt opens a token produced by Encrypt. Tampered, truncated or foreign-key
// tokens fail the integrity check and are reported as crypto errors.
func (c *Cipher) Decrypt(token string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return "", domain.NewCryptoError("decrypt", errors.New("token is not valid base64"))
	}
	nonceSize := c.aead.NonceSize()
	if len(data) < nonceSize+c.aead.Overhead() {
		return "", domain.NewCryptoError("decrypt", errors.New("token too short"))
	}
	nonce, sealed := data[:nonceSize], data[nonceSize:]
	plaintext, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", domain.NewCryptoError("decrypt", err)
	}
	return string(plaintext), nil
}

func (c *Cipher) String() string { return "secrets.Cipher{key:[REDACTED]}" }

// GoString keeps %#v from dumping key schedule state.
func (c *Cipher) GoString() string { return c.String() }
