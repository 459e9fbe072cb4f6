package middleware

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/techseo/pkg/domain"
	"github.com/aretw0/techseo/pkg/ports"
	"golang.org/x/oauth2"
)

// EnvelopeType marks a stored token whose AccessToken holds the ciphertext.
const EnvelopeType = "encrypted"

// EncryptionConfig holds the keys for encryption and decryption.
type EncryptionConfig struct {
	// ActiveKey is the key used for encrypting new data.
	// Must be 32 bytes for AES-256.
	ActiveKey []byte

	// FallbackKeys is a list of old keys to try when decryption fails.
	// This enables zero-downtime key rotation.
	FallbackKeys [][]byte
}

type encryptionMiddleware struct {
	ports.TokenStore
	config EncryptionConfig
}

// NewEncryptionMiddleware creates a middleware that encrypts the OAuth token
// using AES-GCM (Envelope Encryption). The selected site is stored as is.
func NewEncryptionMiddleware(config EncryptionConfig) Middleware {
	if len(config.ActiveKey) != 32 {
		panic("active key must be 32 bytes (AES-256)")
	}
	return func(next ports.TokenStore) ports.TokenStore {
		return &encryptionMiddleware{
			TokenStore: next,
			config:     config,
		}
	}
}

func (m *encryptionMiddleware) SaveToken(ctx context.Context, token *oauth2.Token) error {
	if token == nil {
		return domain.ErrNilToken
	}
	plainText, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	ciphertext, err := encrypt(plainText, m.config.ActiveKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt token: %w", err)
	}

	// The envelope hides every field of the real token.
	envelope := &oauth2.Token{
		AccessToken: base64.StdEncoding.EncodeToString(ciphertext),
		TokenType:   EnvelopeType,
	}
	return m.TokenStore.SaveToken(ctx, envelope)
}

func (m *encryptionMiddleware) LoadToken(ctx context.Context) (*oauth2.Token, error) {
	envelope, err := m.TokenStore.LoadToken(ctx)
	if err != nil {
		return nil, err
	}

	// Fail secure: a plain token under a configured key is rejected.
	if envelope.TokenType != EnvelopeType {
		return nil, errors.New("token is missing encrypted data envelope")
	}

	ciphertext, err := base64.StdEncoding.DecodeString(envelope.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ciphertext base64: %w", err)
	}

	plainText, err := decryptWithRotation(ciphertext, m.config.ActiveKey, m.config.FallbackKeys)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt token: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(plainText, &token); err != nil {
		return nil, fmt.Errorf("failed to unmarshal decrypted token: %w", err)
	}
	return &token, nil
}

// Helpers

func encrypt(plaintext []byte, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func decryptWithRotation(ciphertext []byte, activeKey []byte, fallbackKeys [][]byte) ([]byte, error) {
	if plain, err := decrypt(ciphertext, activeKey); err == nil {
		return plain, nil
	}

	for _, key := range fallbackKeys {
		if plain, err := decrypt(ciphertext, key); err == nil {
			return plain, nil
		}
	}

	return nil, errors.New("decryption failed with all available keys")
}

func decrypt(ciphertext []byte, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}

	nonce := ciphertext[:gcm.NonceSize()]
	ciphertextBytes := ciphertext[gcm.NonceSize():]

	return gcm.Open(nil, nonce, ciphertextBytes, nil)
}
