package ports

import (
	"context"
	"io"

	"github.com/bnema/ihaveaplan/internal/domain"
)

// ConversationBackend drives one prompt/response exchange on a thread.
type ConversationBackend interface {
	CreateThread(ctx context.Context) (string, error)
	DeleteThread(ctx context.Context, threadID string) error
	PostMessage(ctx context.Context, threadID string, content string) error
	StartRun(ctx context.Context, req domain.StartRunRequest) (domain.Run, error)
	GetRun(ctx context.Context, threadID string, runID string) (domain.Run, error)
	ListMessages(ctx context.Context, req domain.ListMessagesRequest) ([]domain.Message, error)
}

// KnowledgeBackend manages the persona and the documents it searches.
// Delete methods return an error matching domain.ErrNotFound for ids the
// backend does not know. List methods page with the id of the last item seen.
type KnowledgeBackend interface {
	UploadFile(ctx context.Context, name string, content io.Reader) (string, error)
	DeleteFile(ctx context.Context, fileID string) error
	ListFiles(ctx context.Context, after string) (domain.Page, error)

	CreateVectorStore(ctx context.Context, req domain.VectorStoreRequest) (string, error)
	DeleteVectorStore(ctx context.Context, vectorStoreID string) error
	ListVectorStores(ctx context.Context, after string) (domain.Page, error)

	CreateAssistant(ctx context.Context, params domain.PersonaParams, vectorStoreIDs []string) (string, error)
	UpdateAssistant(ctx context.Context, assistantID string, params domain.PersonaParams, vectorStoreIDs []string) error
	DeleteAssistant(ctx context.Context, assistantID string) error
	ListAssistants(ctx context.Context, after string) (domain.Page, error)

	ListModels(ctx context.Context) ([]string, error)
}

type AssistantBackend interface {
	ConversationBackend
	KnowledgeBackend
}
