package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/ihaveaplan/internal/domain"
	"github.com/bnema/ihaveaplan/internal/logger"
	"github.com/bnema/ihaveaplan/internal/ports"
)

type PurgeReport struct {
	Assistants   int
	Files        int
	VectorStores int
}

func (r PurgeReport) Total() int {
	return r.Assistants + r.Files + r.VectorStores
}

// LifecycleService owns the remote knowledge file, its vector index and the
// persona built on top of them.
type LifecycleService struct {
	backend   ports.KnowledgeBackend
	settings  ports.SettingsRepository
	documents ports.DocumentSource
	log       *logger.Logger
}

func NewLifecycleService(backend ports.KnowledgeBackend, settings ports.SettingsRepository, documents ports.DocumentSource, log *logger.Logger) *LifecycleService {
	if log == nil {
		log = logger.Nop()
	}

	return &LifecycleService{
		backend:   backend,
		settings:  settings,
		documents: documents,
		log:       log,
	}
}

func (s *LifecycleService) UploadKnowledgeFile(ctx context.Context, path string) (string, error) {
	file, err := s.documents.Inspect(ctx, path)
	if err != nil {
		return "", err
	}

	content, err := s.documents.Open(ctx, file.Path)
	if err != nil {
		return "", fmt.Errorf("open knowledge file: %w", err)
	}
	defer func() { _ = content.Close() }()

	fileID, err := s.backend.UploadFile(ctx, file.Name, content)
	if err != nil {
		return "", domain.Upstream("upload file", err)
	}

	s.log.Info("knowledge file uploaded", "file_id", fileID, "name", file.Name, "bytes", file.Size, "pages", file.Pages)
	return fileID, nil
}

func (s *LifecycleService) BuildIndex(ctx context.Context, fileID string, expiryDays int) (string, error) {
	if fileID == "" {
		return "", &domain.ValidationError{Field: "file", Reason: "no file uploaded"}
	}
	if expiryDays < 1 {
		expiryDays = domain.DefaultIndexExpiryDays
	}

	indexID, err := s.backend.CreateVectorStore(ctx, domain.VectorStoreRequest{
		Name:         domain.DefaultVectorStoreName,
		FileIDs:      []string{fileID},
		ExpiryAnchor: domain.ExpiryAnchorLastActive,
		ExpiryDays:   expiryDays,
	})
	if err != nil {
		return "", domain.Upstream("create vector store", err)
	}

	s.log.Info("knowledge index created", "vector_store_id", indexID, "file_id", fileID, "expiry_days", expiryDays)
	return indexID, nil
}

func (s *LifecycleService) CreatePersona(ctx context.Context, params domain.PersonaParams, handle domain.PersonaHandle) (string, error) {
	if err := validatePersona(params, handle); err != nil {
		return "", err
	}

	assistantID, err := s.backend.CreateAssistant(ctx, params, []string{handle.VectorStoreID})
	if err != nil {
		return "", domain.Upstream("create assistant", err)
	}

	s.log.Info("persona created", "assistant_id", assistantID, "model", params.Model)
	return assistantID, nil
}

func (s *LifecycleService) UpdatePersona(ctx context.Context, params domain.PersonaParams, handle domain.PersonaHandle) error {
	if handle.AssistantID == "" {
		return &domain.ValidationError{Field: "assistant", Reason: "no persona to update"}
	}
	if err := validatePersona(params, handle); err != nil {
		return err
	}

	if err := s.backend.UpdateAssistant(ctx, handle.AssistantID, params, []string{handle.VectorStoreID}); err != nil {
		return domain.Upstream("update assistant", err)
	}

	s.log.Info("persona updated", "assistant_id", handle.AssistantID, "model", params.Model)
	return nil
}

// Teardown deletes whichever resources the handle names. Resources already
// gone on the backend are not an error.
func (s *LifecycleService) Teardown(ctx context.Context, handle domain.PersonaHandle) error {
	steps := []struct {
		op     string
		id     string
		delete func(context.Context, string) error
	}{
		{op: "delete assistant", id: handle.AssistantID, delete: s.backend.DeleteAssistant},
		{op: "delete vector store", id: handle.VectorStoreID, delete: s.backend.DeleteVectorStore},
		{op: "delete file", id: handle.FileID, delete: s.backend.DeleteFile},
	}

	var errs []error
	for _, step := range steps {
		if step.id == "" {
			continue
		}
		if err := step.delete(ctx, step.id); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				s.log.Debug("resource already gone", "op", step.op, "id", step.id)
				continue
			}
			errs = append(errs, domain.Upstream(step.op, err))
		}
	}

	return errors.Join(errs...)
}

// PurgeAll removes every assistant, file and vector store the credential can
// see, not only the ones this tool created.
func (s *LifecycleService) PurgeAll(ctx context.Context) (PurgeReport, error) {
	var report PurgeReport

	collections := []struct {
		name   string
		list   func(context.Context, string) (domain.Page, error)
		delete func(context.Context, string) error
		count  *int
	}{
		{name: "assistants", list: s.backend.ListAssistants, delete: s.backend.DeleteAssistant, count: &report.Assistants},
		{name: "files", list: s.backend.ListFiles, delete: s.backend.DeleteFile, count: &report.Files},
		{name: "vector stores", list: s.backend.ListVectorStores, delete: s.backend.DeleteVectorStore, count: &report.VectorStores},
	}

	for _, c := range collections {
		deleted, err := drain(ctx, c.list, c.delete)
		*c.count = deleted
		if err != nil {
			return report, fmt.Errorf("purge %s: %w", c.name, err)
		}
		s.log.Info("purged remote collection", "collection", c.name, "deleted", deleted)
	}

	return report, nil
}

// drain deletes a paginated collection. The last entry of each page is the
// cursor for the next one, so it is deleted only after that page is fetched.
func drain(ctx context.Context, list func(context.Context, string) (domain.Page, error), remove func(context.Context, string) error) (int, error) {
	deleted := 0
	del := func(id string) error {
		if err := remove(ctx, id); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil
			}
			return domain.Upstream("delete "+id, err)
		}
		deleted++
		return nil
	}

	page, err := list(ctx, "")
	if err != nil {
		return 0, domain.Upstream("list", err)
	}

	for len(page.IDs) > 0 {
		last := page.LastID()
		for _, id := range page.IDs[:len(page.IDs)-1] {
			if err := del(id); err != nil {
				return deleted, err
			}
		}

		if !page.HasMore {
			return deleted, del(last)
		}

		next, err := list(ctx, last)
		if err != nil {
			return deleted, domain.Upstream("list", err)
		}
		if err := del(last); err != nil {
			return deleted, err
		}
		page = next
	}

	return deleted, nil
}

// EnsurePersona uploads path, indexes it and points the persona at the new
// index, creating the persona when none exists yet. The previous file and
// index are removed once the settings reference the new ones.
func (s *LifecycleService) EnsurePersona(ctx context.Context, path string) (domain.PersonaHandle, error) {
	settings, err := s.settings.Load(ctx)
	if err != nil {
		return domain.PersonaHandle{}, fmt.Errorf("load settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return domain.PersonaHandle{}, err
	}
	previous := settings.Persona

	fileID, err := s.UploadKnowledgeFile(ctx, path)
	if err != nil {
		return domain.PersonaHandle{}, err
	}
	next := domain.PersonaHandle{AssistantID: previous.AssistantID, FileID: fileID}

	next.VectorStoreID, err = s.BuildIndex(ctx, fileID, settings.IndexExpiry)
	if err != nil {
		return domain.PersonaHandle{}, s.rollback(ctx, domain.PersonaHandle{FileID: fileID}, err)
	}

	params := settings.PersonaParams()
	if next.AssistantID != "" {
		err := s.UpdatePersona(ctx, params, next)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			s.log.Warn("stored persona no longer exists, creating a new one", "assistant_id", next.AssistantID)
			next.AssistantID = ""
		case err != nil:
			return domain.PersonaHandle{}, s.rollback(ctx, domain.PersonaHandle{FileID: next.FileID, VectorStoreID: next.VectorStoreID}, err)
		}
	}
	created := domain.PersonaHandle{FileID: next.FileID, VectorStoreID: next.VectorStoreID}
	if next.AssistantID == "" {
		next.AssistantID, err = s.CreatePersona(ctx, params, next)
		if err != nil {
			return domain.PersonaHandle{}, s.rollback(ctx, next, err)
		}
		created.AssistantID = next.AssistantID
	}

	settings.Persona = next
	if err := s.settings.Save(ctx, settings); err != nil {
		err = fmt.Errorf("save persona handle: %w", err)
		if created.AssistantID == "" {
			s.restorePersona(ctx, params, next.AssistantID, previous.VectorStoreID)
		}
		return domain.PersonaHandle{}, s.rollback(ctx, created, err)
	}

	stale := domain.PersonaHandle{}
	if previous.FileID != next.FileID {
		stale.FileID = previous.FileID
	}
	if previous.VectorStoreID != next.VectorStoreID {
		stale.VectorStoreID = previous.VectorStoreID
	}
	if err := s.Teardown(ctx, stale); err != nil {
		s.log.Warn("remove previous knowledge failed", "error", err)
	}

	return next, nil
}

// ClearPersona tears down the resources referenced by the settings and
// forgets them.
func (s *LifecycleService) ClearPersona(ctx context.Context) (domain.PersonaHandle, error) {
	settings, err := s.settings.Load(ctx)
	if err != nil {
		return domain.PersonaHandle{}, fmt.Errorf("load settings: %w", err)
	}

	handle := settings.Persona
	if handle.IsZero() {
		return handle, nil
	}

	if err := s.Teardown(ctx, handle); err != nil {
		return handle, err
	}

	settings.Persona = domain.PersonaHandle{}
	if err := s.settings.Save(ctx, settings); err != nil {
		return handle, fmt.Errorf("save cleared persona handle: %w", err)
	}

	return handle, nil
}

func (s *LifecycleService) rollback(ctx context.Context, created domain.PersonaHandle, cause error) error {
	if created.IsZero() {
		return cause
	}

	cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), threadReleaseTimeout)
	defer cancel()

	if err := s.Teardown(cleanupCtx, created); err != nil {
		s.log.Warn("rollback of partial upload failed", "error", err)
	}
	return cause
}

// restorePersona points a kept assistant back at the index the settings
// still reference.
func (s *LifecycleService) restorePersona(ctx context.Context, params domain.PersonaParams, assistantID string, vectorStoreID string) {
	restoreCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), threadReleaseTimeout)
	defer cancel()

	vectorStoreIDs := []string{}
	if vectorStoreID != "" {
		vectorStoreIDs = append(vectorStoreIDs, vectorStoreID)
	}
	if err := s.backend.UpdateAssistant(restoreCtx, assistantID, params, vectorStoreIDs); err != nil {
		s.log.Warn("restore persona index failed", "assistant_id", assistantID, "error", err)
	}
}

func validatePersona(params domain.PersonaParams, handle domain.PersonaHandle) error {
	if handle.FileID == "" {
		return &domain.ValidationError{Field: "file", Reason: "no file uploaded"}
	}
	if handle.VectorStoreID == "" {
		return &domain.ValidationError{Field: "vector_store", Reason: "no knowledge index built"}
	}
	if params.Model == "" {
		return &domain.ValidationError{Field: "model", Reason: "must not be empty"}
	}
	if params.Temperature < domain.MinTemperature || params.Temperature > domain.MaxTemperature {
		return &domain.ValidationError{Field: "temperature", Reason: fmt.Sprintf("%.2f is outside [%.0f, %.0f]", params.Temperature, domain.MinTemperature, domain.MaxTemperature)}
	}
	return nil
}
