package session

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/contractlens/internal/common"
	"github.com/dmitrijs2005/contractlens/internal/cryptox"
)

// SealedStorage encrypts both halves of the record before handing them to
// the wrapped Storage. Each value is bound to its key name, so a token
// cannot be swapped into the user slot.
type SealedStorage struct {
	inner Storage
	key   []byte
}

func NewSealedStorage(inner Storage, key []byte) (*SealedStorage, error) {
	if len(key) != cryptox.KeySize {
		return nil, fmt.Errorf("%w: got %d bytes", cryptox.ErrInvalidKey, len(key))
	}
	k := make([]byte, len(key))
	copy(k, key)
	return &SealedStorage{inner: inner, key: k}, nil
}

func (s *SealedStorage) open(name string, sealed []byte) ([]byte, error) {
	if len(sealed) == 0 {
		return nil, nil
	}
	plain, err := cryptox.Open(s.key, sealed, []byte(name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", common.ErrMalformedLocalData, name, err)
	}
	return plain, nil
}

func (s *SealedStorage) Load(ctx context.Context) (Record, error) {
	rec, err := s.inner.Load(ctx)
	if err != nil || rec.Empty() {
		return Record{}, err
	}

	token, err := s.open(common.SessionTokenKey, rec.Token)
	if err != nil {
		return Record{}, err
	}
	user, err := s.open(common.SessionUserKey, rec.User)
	if err != nil {
		common.WipeByteArray(token)
		return Record{}, err
	}
	return Record{Token: token, User: user}, nil
}

func (s *SealedStorage) Save(ctx context.Context, rec Record) error {
	token, err := cryptox.Seal(s.key, rec.Token, []byte(common.SessionTokenKey))
	if err != nil {
		return fmt.Errorf("seal token: %w", err)
	}
	user, err := cryptox.Seal(s.key, rec.User, []byte(common.SessionUserKey))
	if err != nil {
		return fmt.Errorf("seal user: %w", err)
	}
	return s.inner.Save(ctx, Record{Token: token, User: user})
}

func (s *SealedStorage) Remove(ctx context.Context) error {
	return s.inner.Remove(ctx)
}
