package application

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/bnema/ihaveaplan/internal/domain"
)

// fakeKnowledgeBackend keeps remote collections in memory and pages them
// with an "after" cursor like the real API.
type fakeKnowledgeBackend struct {
	mu       sync.Mutex
	pageSize int
	seq      int

	assistants   []string
	files        []string
	vectorStores []string

	deleted     []string
	uploads     map[string]string
	indexes     []domain.VectorStoreRequest
	personas    map[string]domain.PersonaParams
	personaVSID map[string][]string

	failOn map[string]error
}

func newFakeKnowledgeBackend() *fakeKnowledgeBackend {
	return &fakeKnowledgeBackend{
		pageSize:    20,
		uploads:     map[string]string{},
		personas:    map[string]domain.PersonaParams{},
		personaVSID: map[string][]string{},
		failOn:      map[string]error{},
	}
}

func (f *fakeKnowledgeBackend) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s-%d", prefix, f.seq)
}

func (f *fakeKnowledgeBackend) fail(op string) error {
	return f.failOn[op]
}

func (f *fakeKnowledgeBackend) UploadFile(_ context.Context, name string, content io.Reader) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("upload"); err != nil {
		return "", err
	}
	data, err := io.ReadAll(content)
	if err != nil {
		return "", err
	}
	id := f.nextID("file")
	f.files = append(f.files, id)
	f.uploads[id] = name + ":" + string(data)
	return id, nil
}

func (f *fakeKnowledgeBackend) DeleteFile(_ context.Context, id string) error {
	return f.remove(&f.files, id, "delete-file")
}

func (f *fakeKnowledgeBackend) ListFiles(_ context.Context, after string) (domain.Page, error) {
	return f.page(f.files, after)
}

func (f *fakeKnowledgeBackend) CreateVectorStore(_ context.Context, req domain.VectorStoreRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("create-vector-store"); err != nil {
		return "", err
	}
	id := f.nextID("vs")
	f.vectorStores = append(f.vectorStores, id)
	f.indexes = append(f.indexes, req)
	return id, nil
}

func (f *fakeKnowledgeBackend) DeleteVectorStore(_ context.Context, id string) error {
	return f.remove(&f.vectorStores, id, "delete-vector-store")
}

func (f *fakeKnowledgeBackend) ListVectorStores(_ context.Context, after string) (domain.Page, error) {
	return f.page(f.vectorStores, after)
}

func (f *fakeKnowledgeBackend) CreateAssistant(_ context.Context, params domain.PersonaParams, vectorStoreIDs []string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("create-assistant"); err != nil {
		return "", err
	}
	id := f.nextID("asst")
	f.assistants = append(f.assistants, id)
	f.personas[id] = params
	f.personaVSID[id] = vectorStoreIDs
	return id, nil
}

func (f *fakeKnowledgeBackend) UpdateAssistant(_ context.Context, id string, params domain.PersonaParams, vectorStoreIDs []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("update-assistant"); err != nil {
		return err
	}
	if !slices.Contains(f.assistants, id) {
		return &domain.UpstreamError{Op: "update assistant", StatusCode: 404, Err: domain.ErrNotFound}
	}
	f.personas[id] = params
	f.personaVSID[id] = vectorStoreIDs
	return nil
}

func (f *fakeKnowledgeBackend) DeleteAssistant(_ context.Context, id string) error {
	return f.remove(&f.assistants, id, "delete-assistant")
}

func (f *fakeKnowledgeBackend) ListAssistants(_ context.Context, after string) (domain.Page, error) {
	return f.page(f.assistants, after)
}

func (f *fakeKnowledgeBackend) ListModels(context.Context) ([]string, error) {
	return []string{domain.DefaultModel}, nil
}

func (f *fakeKnowledgeBackend) remove(collection *[]string, id string, op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail(op); err != nil {
		return err
	}
	f.deleted = append(f.deleted, id)
	idx := slices.Index(*collection, id)
	if idx < 0 {
		return &domain.UpstreamError{Op: op, StatusCode: 404, Err: domain.ErrNotFound}
	}
	*collection = slices.Delete(*collection, idx, idx+1)
	return nil
}

func (f *fakeKnowledgeBackend) page(collection []string, after string) (domain.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	start := 0
	if after != "" {
		idx := slices.Index(collection, after)
		if idx < 0 {
			return domain.Page{}, fmt.Errorf("cursor %s not found", after)
		}
		start = idx + 1
	}
	end := min(start+f.pageSize, len(collection))
	return domain.Page{
		IDs:     slices.Clone(collection[start:end]),
		HasMore: end < len(collection),
	}, nil
}

func (f *fakeKnowledgeBackend) seed(collection *[]string, prefix string, n int) {
	for i := 0; i < n; i++ {
		*collection = append(*collection, f.nextID(prefix))
	}
}

type fakeDocuments struct {
	files map[string]string
}

func (d fakeDocuments) Inspect(_ context.Context, path string) (domain.KnowledgeFile, error) {
	content, ok := d.files[path]
	if !ok {
		return domain.KnowledgeFile{}, &domain.ValidationError{Field: "file", Reason: path + " does not exist"}
	}
	return domain.KnowledgeFile{Path: path, Name: path, Size: int64(len(content)), Pages: 1}, nil
}

func (d fakeDocuments) Open(_ context.Context, path string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(d.files[path])), nil
}

type memorySettings struct {
	mu       sync.Mutex
	settings domain.Settings
	saves    int
	saveErr  error
}

func newMemorySettings() *memorySettings {
	return &memorySettings{settings: domain.DefaultSettings()}
}

func (m *memorySettings) Load(context.Context) (domain.Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.settings, nil
}

func (m *memorySettings) Save(_ context.Context, settings domain.Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.settings = settings
	m.saves++
	return nil
}
