package ports

import "context"

// CredentialStore keeps API credentials outside the settings file.
// Get returns domain.ErrCredentialMissing when nothing is stored under ref.
type CredentialStore interface {
	Get(ctx context.Context, ref string) (string, error)
	Put(ctx context.Context, ref string, value string) error
	Delete(ctx context.Context, ref string) error
}
