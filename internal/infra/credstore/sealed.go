package credstore

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/yanqian/unsplash-go/pkg/unsplash"
)

const sealInfo = "unsplash-credentials"

// Sealed encrypts values before handing them to the wrapped store. Keys are
// stored in the clear.
type Sealed struct {
	inner unsplash.CredentialStore
	aead  cipher.AEAD
}

// NewSealed derives an AES-256 key from passphrase and wraps inner.
func NewSealed(inner unsplash.CredentialStore, passphrase string) (*Sealed, error) {
	if inner == nil {
		return nil, errors.New("sealed store needs a backend")
	}
	if passphrase == "" {
		return nil, errors.New("encryption key cannot be empty")
	}
	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(passphrase), nil, []byte(sealInfo)), key); err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &Sealed{inner: inner, aead: gcm}, nil
}

func (s *Sealed) Get(ctx context.Context, key string) (string, bool, error) {
	encoded, ok, err := s.inner.Get(ctx, key)
	if err != nil || !ok {
		return "", ok, err
	}
	plaintext, err := s.open(encoded)
	if err != nil {
		return "", false, fmt.Errorf("decrypt credential %q: %w", key, err)
	}
	return plaintext, true, nil
}

func (s *Sealed) Set(ctx context.Context, key, value string) error {
	sealed, err := s.seal(value)
	if err != nil {
		return fmt.Errorf("encrypt credential %q: %w", key, err)
	}
	return s.inner.Set(ctx, key, sealed)
}

func (s *Sealed) Clear(ctx context.Context, key string) error {
	return s.inner.Clear(ctx, key)
}

func (s *Sealed) seal(plaintext string) (string, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}
	payload := s.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.RawURLEncoding.EncodeToString(payload), nil
}

func (s *Sealed) open(encoded string) (string, error) {
	payload, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return "", err
	}
	nonceSize := s.aead.NonceSize()
	if len(payload) < nonceSize {
		return "", errors.New("invalid credential payload")
	}
	nonce, ciphertext := payload[:nonceSize], payload[nonceSize:]
	plaintext, err := s.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

var _ unsplash.CredentialStore = (*Sealed)(nil)
