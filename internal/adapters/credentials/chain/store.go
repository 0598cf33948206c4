// Package chain tries a primary credential store and falls back to a second one.
package chain

import (
	"context"
	"errors"
	"fmt"

	filestore "github.com/bnema/ihaveaplan/internal/adapters/credentials/file"
	passstore "github.com/bnema/ihaveaplan/internal/adapters/credentials/pass"
	"github.com/bnema/ihaveaplan/internal/ports"
)

type Store struct {
	primary  ports.CredentialStore
	fallback ports.CredentialStore
}

var _ ports.CredentialStore = (*Store)(nil)

var (
	errNilPrimaryStore  = errors.New("primary credential store is nil")
	errNilFallbackStore = errors.New("fallback credential store is nil")
)

func NewStore(primary ports.CredentialStore, fallback ports.CredentialStore) (*Store, error) {
	if primary == nil {
		return nil, errNilPrimaryStore
	}
	if fallback == nil {
		return nil, errNilFallbackStore
	}

	return &Store{primary: primary, fallback: fallback}, nil
}

// NewPassFirstWithFileFallback prefers pass and keeps owner-only files under fileRoot otherwise.
func NewPassFirstWithFileFallback(fileRoot string) (*Store, error) {
	return NewStore(passstore.NewStore(), filestore.NewStore(fileRoot))
}

func (s *Store) Put(ctx context.Context, ref string, value string) error {
	err := s.primary.Put(ctx, ref, value)
	if err == nil || isContextError(err) {
		return err
	}

	if fallbackErr := s.fallback.Put(ctx, ref, value); fallbackErr != nil {
		return fmt.Errorf("primary store put: %w; fallback store put: %w", err, fallbackErr)
	}
	return nil
}

// Get reports domain.ErrCredentialMissing only when neither store can supply ref.
func (s *Store) Get(ctx context.Context, ref string) (string, error) {
	value, err := s.primary.Get(ctx, ref)
	if err == nil || isContextError(err) {
		return value, err
	}

	value, fallbackErr := s.fallback.Get(ctx, ref)
	if fallbackErr != nil {
		return "", fmt.Errorf("primary store get: %w; fallback store get: %w", err, fallbackErr)
	}
	return value, nil
}

// Delete clears ref from both stores so a stale copy cannot shadow a new key.
func (s *Store) Delete(ctx context.Context, ref string) error {
	err := s.primary.Delete(ctx, ref)
	if isContextError(err) {
		return err
	}

	fallbackErr := s.fallback.Delete(ctx, ref)
	switch {
	case err == nil || fallbackErr == nil:
		return nil
	default:
		return fmt.Errorf("primary store delete: %w; fallback store delete: %w", err, fallbackErr)
	}
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
