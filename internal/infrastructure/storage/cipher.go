package storage

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/elegacy/elegacy-backend/internal/domain/ports"
)

var (
	ErrCiphertextTooShort = errors.New("ciphertext shorter than nonce")
)

// NoopCipher é a transformação identidade, usada quando nenhuma chave de
// criptografia está configurada. Criptografia em repouso é opcional.
type NoopCipher struct{}

func (NoopCipher) Encrypt(plaintext []byte) ([]byte, error)  { return plaintext, nil }
func (NoopCipher) Decrypt(ciphertext []byte) ([]byte, error) { return ciphertext, nil }

// ChaChaCipher implementa ports.Cipher com ChaCha20-Poly1305 (AEAD).
// A chave de 32 bytes é derivada por SHA-256 da chave configurada, então
// qualquer string serve como segredo.
type ChaChaCipher struct {
	key [32]byte
}

// NewChaChaCipher cria um cipher a partir da chave configurada
func NewChaChaCipher(secret string) *ChaChaCipher {
	return &ChaChaCipher{key: sha256.Sum256([]byte(secret))}
}

// NewCipher seleciona a transformação conforme a configuração:
// chave vazia resulta na transformação identidade.
func NewCipher(secret string) ports.Cipher {
	if secret == "" {
		return NoopCipher{}
	}
	return NewChaChaCipher(secret)
}

func (c *ChaChaCipher) Encrypt(plaintext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(c.key[:])
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	// nonce prefixado ao ciphertext
	return aead.Seal(nonce, nonce, plaintext, nil), nil
}

func (c *ChaChaCipher) Decrypt(ciphertext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(c.key[:])
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	if len(ciphertext) < aead.NonceSize() {
		return nil, ErrCiphertextTooShort
	}

	nonce, sealed := ciphertext[:aead.NonceSize()], ciphertext[aead.NonceSize():]
	return aead.Open(nil, nonce, sealed, nil)
}
