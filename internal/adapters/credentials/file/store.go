// Package file keeps API credentials as owner-only files under a root directory.
package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bnema/ihaveaplan/internal/domain"
	"github.com/bnema/ihaveaplan/internal/ports"
)

const (
	storeDirMode       = 0o700
	credentialFileMode = 0o600
	tempFilePattern    = ".credential-*.tmp"
)

type Store struct {
	root string
	mu   sync.RWMutex
}

var _ ports.CredentialStore = (*Store)(nil)

func NewStore(root string) *Store {
	return &Store{root: filepath.Clean(root)}
}

func (s *Store) Put(ctx context.Context, ref string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.pathForRef(ref)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), storeDirMode); err != nil {
		return fmt.Errorf("create credential directory: %w", err)
	}

	temp, err := os.CreateTemp(filepath.Dir(path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp credential %q: %w", ref, err)
	}
	tempName := temp.Name()
	defer func() { _ = os.Remove(tempName) }()

	if err := temp.Chmod(credentialFileMode); err != nil {
		_ = temp.Close()
		return fmt.Errorf("chmod temp credential %q: %w", ref, err)
	}
	if _, err := temp.WriteString(value); err != nil {
		_ = temp.Close()
		return fmt.Errorf("write credential %q: %w", ref, err)
	}
	if err := temp.Close(); err != nil {
		return fmt.Errorf("close temp credential %q: %w", ref, err)
	}
	if err := os.Rename(tempName, path); err != nil {
		return fmt.Errorf("replace credential %q: %w", ref, err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, ref string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path, err := s.pathForRef(ref)
	if err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("credential file %q: %w", ref, domain.ErrCredentialMissing)
		}
		return "", fmt.Errorf("read credential %q: %w", ref, err)
	}

	return string(data), nil
}

// Delete succeeds when nothing is stored under ref.
func (s *Store) Delete(ctx context.Context, ref string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.pathForRef(ref)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete credential %q: %w", ref, err)
	}

	return nil
}

func (s *Store) pathForRef(ref string) (string, error) {
	trimmed := strings.TrimSpace(ref)
	if trimmed == "" {
		return "", &domain.ValidationError{Field: "credential_ref", Reason: "is empty"}
	}

	cleaned := filepath.Clean(trimmed)
	if filepath.IsAbs(cleaned) || cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", &domain.ValidationError{Field: "credential_ref", Reason: fmt.Sprintf("%q escapes the credential directory", ref)}
	}

	return filepath.Join(s.root, cleaned), nil
}
