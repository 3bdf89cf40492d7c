// Package encryption seals message payloads before they reach the disk.
package encryption

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

// KeySize is the size in bytes of the derived message key.
const KeySize = 32

// BlobVersion is prepended to every sealed payload and authenticated as AAD.
const BlobVersion byte = 0x01

// BlobOverhead is 1 (version) + 24 (nonce) + 16 (tag).
const BlobOverhead = 1 + chacha20poly1305.NonceSizeX + chacha20poly1305.Overhead

// UnreadableText replaces a payload that can no longer be decrypted.
const UnreadableText = "[unreadable message]"

var hkdfInfoMessages = []byte("chat-relay.messages.v1")

type Cipher interface {
	Encrypt(plaintext []byte) ([]byte, error)
	Decrypt(blob []byte) ([]byte, error)
}

// MessageCipher encrypts with XChaCha20-Poly1305 and a random nonce per call.
//
//	[Version: 1 byte] [Nonce: 24 bytes] [Ciphertext+Tag: N+16 bytes]
type MessageCipher struct {
	aead cipher.AEAD
}

var _ Cipher = (*MessageCipher)(nil)

// NewMessageCipher derives the message key from secret with HKDF-SHA256.
func NewMessageCipher(secret string) (*MessageCipher, error) {
	if secret == "" {
		return nil, fmt.Errorf("message secret is empty")
	}
	reader := hkdf.New(sha256.New, []byte(secret), nil, hkdfInfoMessages)
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("HKDF key derivation failed: %w", err)
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("creating XChaCha20-Poly1305 cipher: %w", err)
	}
	return &MessageCipher{aead: aead}, nil
}

func (c *MessageCipher) Encrypt(plaintext []byte) ([]byte, error) {
	var nonce [chacha20poly1305.NonceSizeX]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("generating random nonce: %w", err)
	}
	output := make([]byte, 1+chacha20poly1305.NonceSizeX, BlobOverhead+len(plaintext))
	output[0] = BlobVersion
	copy(output[1:], nonce[:])
	return c.aead.Seal(output, nonce[:], plaintext, []byte{BlobVersion}), nil
}

func (c *MessageCipher) Decrypt(blob []byte) ([]byte, error) {
	if len(blob) < BlobOverhead {
		return nil, fmt.Errorf("encrypted blob is %d bytes, minimum is %d", len(blob), BlobOverhead)
	}
	if blob[0] != BlobVersion {
		return nil, fmt.Errorf("encrypted blob version %d is not supported", blob[0])
	}
	nonce := blob[1 : 1+chacha20poly1305.NonceSizeX]
	ciphertext := blob[1+chacha20poly1305.NonceSizeX:]
	plaintext, err := c.aead.Open(nil, nonce, ciphertext, blob[:1])
	if err != nil {
		return nil, fmt.Errorf("AEAD decryption failed: %w", err)
	}
	return plaintext, nil
}

// DecryptText never fails: unreadable blobs become UnreadableText.
func DecryptText(c Cipher, blob []byte) (string, bool) {
	plaintext, err := c.Decrypt(blob)
	if err != nil {
		return UnreadableText, false
	}
	return string(plaintext), true
}
