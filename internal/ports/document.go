package ports

import (
	"context"
	"io"

	"github.com/bnema/ihaveaplan/internal/domain"
)

// DocumentSource checks and opens knowledge files before upload.
type DocumentSource interface {
	Inspect(ctx context.Context, path string) (domain.KnowledgeFile, error)
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}
