package msgcrypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha1" //nolint:gosec // fixed by the mobile app, see package doc
	"encoding/base64"
	"encoding/hex"
	"errors"
	"io"
)

const (
	// KeySize is the AES key length in bytes.
	KeySize = 16
	// IVSize is the CBC initialization vector length in bytes.
	IVSize = aes.BlockSize
)

var (
	ErrInvalidIV         = errors.New("invalid iv: must be 16 bytes")
	ErrInvalidCiphertext = errors.New("invalid ciphertext")
	ErrInvalidPadding    = errors.New("invalid padding")
)

// appEncoding is the app's Base64 alphabet: standard Base64 with '+'
// replaced by '-', '/' by '.', and '=' padding by '_'.
var appEncoding = base64.NewEncoding(
	"ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-.",
).WithPadding('_')

// DeriveKey derives the 128-bit message key from a password. The key is a
// pure function of the password: the first 32 characters of the lowercase
// hex SHA-1 digest, decoded back to 16 raw bytes.
func DeriveKey(password string) []byte {
	sum := sha1.Sum([]byte(password)) //nolint:gosec // see package doc
	digest := hex.EncodeToString(sum[:])
	key, _ := hex.DecodeString(digest[:KeySize*2])
	return key
}

// NewIV returns 16 cryptographically random bytes for use as a CBC
// initialization vector.
func NewIV() ([]byte, error) {
	iv := make([]byte, IVSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, err
	}
	return iv, nil
}

// IVHex renders an IV as the 32-character lowercase hex string transmitted
// alongside the ciphertext.
func IVHex(iv []byte) string {
	return hex.EncodeToString(iv)
}

// Encrypt encrypts plaintext with a password-derived key and the given IV,
// returning the app-encoded ciphertext. The result is deterministic for
// identical (plaintext, password, iv).
func Encrypt(plaintext, password string, iv []byte) (string, error) {
	if len(iv) != IVSize {
		return "", ErrInvalidIV
	}

	block, err := aes.NewCipher(DeriveKey(password))
	if err != nil {
		return "", err
	}

	data := pad([]byte(plaintext))
	ciphertext := make([]byte, len(data))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, data)

	return Encode(ciphertext), nil
}

// Decrypt is the inverse of Encrypt.
func Decrypt(encoded, password string, iv []byte) (string, error) {
	if len(iv) != IVSize {
		return "", ErrInvalidIV
	}

	ciphertext, err := Decode(encoded)
	if err != nil {
		return "", errors.Join(ErrInvalidCiphertext, err)
	}
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return "", ErrInvalidCiphertext
	}

	block, err := aes.NewCipher(DeriveKey(password))
	if err != nil {
		return "", err
	}

	data := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(data, ciphertext)

	plaintext, err := unpad(data)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

// Encode applies the app's Base64 variant. Encoding no bytes yields the
// empty string.
func Encode(b []byte) string {
	return appEncoding.EncodeToString(b)
}

// Decode reverses Encode.
func Decode(s string) ([]byte, error) {
	return appEncoding.DecodeString(s)
}

// pad applies PKCS#7 padding to a full block boundary. Input already on a
// boundary still receives one complete padding block, matching the app's
// decryptor which always strips a final pad.
func pad(b []byte) []byte {
	n := aes.BlockSize - len(b)%aes.BlockSize
	out := make([]byte, len(b)+n)
	copy(out, b)
	for i := len(b); i < len(out); i++ {
		out[i] = byte(n)
	}
	return out
}

func unpad(b []byte) ([]byte, error) {
	if len(b) == 0 || len(b)%aes.BlockSize != 0 {
		return nil, ErrInvalidPadding
	}
	n := int(b[len(b)-1])
	if n == 0 || n > aes.BlockSize || n > len(b) {
		return nil, ErrInvalidPadding
	}
	for _, c := range b[len(b)-n:] {
		if int(c) != n {
			return nil, ErrInvalidPadding
		}
	}
	return b[:len(b)-n], nil
}
