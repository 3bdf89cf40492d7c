package encryption

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMessageCipher_RoundTrip(t *testing.T) {
	req := require.New(t)
	c, err := NewMessageCipher("correct horse battery staple")
	req.NoError(err)

	for _, plaintext := range []string{"", "hi", "Un été avec un badger", string(make([]byte, 4096))} {
		blob, err := c.Encrypt([]byte(plaintext))
		req.NoError(err)
		req.Len(blob, BlobOverhead+len(plaintext))

		decrypted, err := c.Decrypt(blob)
		req.NoError(err)
		req.Equal(plaintext, string(decrypted))
	}
}

func TestMessageCipher_Random_Nonce_Per_Message(t *testing.T) {
	req := require.New(t)
	c, err := NewMessageCipher("secret")
	req.NoError(err)

	first, err := c.Encrypt([]byte("same text"))
	req.NoError(err)
	second, err := c.Encrypt([]byte("same text"))
	req.NoError(err)

	req.NotEqual(first, second)
}

func TestDecryptText_Returns_Sentinel_On_Corruption(t *testing.T) {
	req := require.New(t)
	c, err := NewMessageCipher("secret")
	req.NoError(err)
	other, err := NewMessageCipher("another secret")
	req.NoError(err)

	blob, err := c.Encrypt([]byte("hello"))
	req.NoError(err)

	tampered := append([]byte(nil), blob...)
	tampered[len(tampered)-1] ^= 0xFF

	tests := []struct {
		name string
		blob []byte
	}{
		{"Tampered ciphertext", tampered},
		{"Truncated blob", blob[:5]},
		{"Unknown version", append([]byte{0x09}, blob[1:]...)},
		{"Nil blob", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, ok := DecryptText(c, tt.blob)
			require.False(t, ok)
			require.Equal(t, UnreadableText, text)
		})
	}

	// And a wrong key is unreadable as well
	text, ok := DecryptText(other, blob)
	req.False(ok)
	req.Equal(UnreadableText, text)
}

func TestNewMessageCipher_Rejects_Empty_Secret(t *testing.T) {
	_, err := NewMessageCipher("")
	require.Error(t, err)
}
