// Package cryptox seals small values at rest with XChaCha20-Poly1305.
//
// A sealed value is nonce || ciphertext; the nonce is random per call, so
// sealing the same plaintext twice yields different output.
package cryptox

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/contractlens/internal/common"
	"golang.org/x/crypto/chacha20poly1305"
)

// KeySize is the length of a device key in bytes.
const KeySize = chacha20poly1305.KeySize

var ErrInvalidKey = errors.New("invalid key size")

// Seal encrypts plaintext under key, binding it to aad (may be nil).
func Seal(key, plaintext, aad []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}

	nonce := common.GenerateRandByteArray(aead.NonceSize())
	out := make([]byte, 0, len(nonce)+len(plaintext)+aead.Overhead())
	out = append(out, nonce...)
	return aead.Seal(out, nonce, plaintext, aad), nil
}

// Open reverses Seal. Tampered data, a wrong key or a different aad fail.
func Open(key, sealed, aad []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	if len(sealed) < aead.NonceSize()+aead.Overhead() {
		return nil, errors.New("sealed value too short")
	}

	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	return aead.Open(nil, nonce, ciphertext, aad)
}

// LoadOrCreateKey reads a device key from path, creating a fresh random one
// with 0600 permissions when the file does not exist yet. The new key is
// written to a temporary file first and then linked into place, so readers
// never see a partial key.
func LoadOrCreateKey(path string) ([]byte, error) {
	key, err := os.ReadFile(path)
	if err == nil {
		if len(key) != KeySize {
			return nil, fmt.Errorf("%w: %s holds %d bytes", ErrInvalidKey, path, len(key))
		}
		return key, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read key: %w", err)
	}

	key = common.GenerateRandByteArray(KeySize)
	if err := publishKey(path, key); err != nil {
		if errors.Is(err, os.ErrExist) {
			// another process won the race
			return LoadOrCreateKey(path)
		}
		return nil, err
	}
	return key, nil
}

func publishKey(path string, key []byte) error {
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create key: %w", err)
	}
	tmp := f.Name()
	defer os.Remove(tmp)

	if err := f.Chmod(0o600); err != nil {
		_ = f.Close()
		return fmt.Errorf("create key: %w", err)
	}
	if _, err := f.Write(key); err != nil {
		_ = f.Close()
		return fmt.Errorf("write key: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("write key: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write key: %w", err)
	}

	// Link fails with ErrExist instead of replacing a key someone else
	// already published.
	if err := os.Link(tmp, path); err != nil {
		if errors.Is(err, os.ErrExist) {
			return err
		}
		if err := os.Rename(tmp, path); err != nil {
			return fmt.Errorf("install key: %w", err)
		}
	}
	return nil
}
