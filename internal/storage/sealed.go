package storage

import (
	"context"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

// sealedPrefix tags values written by SealedStore.
const sealedPrefix = "sealed.v1."

var hkdfInfo = []byte("easycar token store v1")

// ErrUnsealed is the cause reported when a stored value cannot be opened
// with the configured secret.
var ErrUnsealed = errors.New("sealed value cannot be opened")

// SealedStore encrypts values at rest with ChaCha20-Poly1305. The key is
// derived from a secret with HKDF-SHA256 and the storage key is bound as
// additional data, so a value copied under another key does not open.
type SealedStore struct {
	inner TokenStore
	aead  cipher.AEAD
}

// NewSealedStore wraps inner with authenticated encryption.
func NewSealedStore(inner TokenStore, secret []byte) (*SealedStore, error) {
	if len(secret) == 0 {
		return nil, errors.New("sealed store: secret is required")
	}

	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, hkdfInfo), key); err != nil {
		return nil, fmt.Errorf("sealed store: derive key: %w", err)
	}

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("sealed store: %w", err)
	}

	return &SealedStore{inner: inner, aead: aead}, nil
}

// Get retrieves and opens a value.
func (s *SealedStore) Get(ctx context.Context, key string) (string, bool, error) {
	raw, ok, err := s.inner.Get(ctx, key)
	if err != nil || !ok {
		return "", ok, err
	}

	plain, err := s.open(key, raw)
	if err != nil {
		return "", false, storageError("get", key, err)
	}
	return plain, true, nil
}

// Set seals and stores a value.
func (s *SealedStore) Set(ctx context.Context, key, value string) error {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return storageError("set", key, err)
	}

	sealed := s.aead.Seal(nonce, nonce, []byte(value), []byte(key))
	return s.inner.Set(ctx, key, sealedPrefix+base64.RawURLEncoding.EncodeToString(sealed))
}

// Remove deletes a key.
func (s *SealedStore) Remove(ctx context.Context, key string) error {
	return s.inner.Remove(ctx, key)
}

// Unwrap returns the wrapped store.
func (s *SealedStore) Unwrap() TokenStore {
	return s.inner
}

// Close closes the wrapped store.
func (s *SealedStore) Close() error {
	return s.inner.Close()
}

func (s *SealedStore) open(key, raw string) (string, error) {
	encoded, ok := strings.CutPrefix(raw, sealedPrefix)
	if !ok {
		return "", ErrUnsealed
	}
	data, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil || len(data) < s.aead.NonceSize() {
		return "", ErrUnsealed
	}

	nonce, ciphertext := data[:s.aead.NonceSize()], data[s.aead.NonceSize():]
	plain, err := s.aead.Open(nil, nonce, ciphertext, []byte(key))
	if err != nil {
		return "", ErrUnsealed
	}
	return string(plain), nil
}
