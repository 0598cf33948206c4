package openai

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/bnema/ihaveaplan/internal/domain"
)

const filePurpose = "assistants"

type expiresAfter struct {
	Anchor string `json:"anchor"`
	Days   int    `json:"days"`
}

type vectorStoreRequest struct {
	Name         string        `json:"name"`
	FileIDs      []string      `json:"file_ids"`
	ExpiresAfter *expiresAfter `json:"expires_after,omitempty"`
}

type assistantTool struct {
	Type string `json:"type"`
}

type assistantRequest struct {
	Model         string          `json:"model"`
	Name          string          `json:"name,omitempty"`
	Description   string          `json:"description,omitempty"`
	Instructions  string          `json:"instructions,omitempty"`
	Temperature   float64         `json:"temperature"`
	Tools         []assistantTool `json:"tools"`
	ToolResources toolResources   `json:"tool_resources"`
}

type toolResources struct {
	FileSearch fileSearchResources `json:"file_search"`
}

type fileSearchResources struct {
	VectorStoreIDs []string `json:"vector_store_ids"`
}

func newAssistantRequest(params domain.PersonaParams, vectorStoreIDs []string) assistantRequest {
	if vectorStoreIDs == nil {
		vectorStoreIDs = []string{}
	}

	return assistantRequest{
		Model:         params.Model,
		Name:          params.Name,
		Description:   params.Description,
		Instructions:  params.Instructions,
		Temperature:   params.Temperature,
		Tools:         []assistantTool{{Type: "file_search"}},
		ToolResources: toolResources{FileSearch: fileSearchResources{VectorStoreIDs: vectorStoreIDs}},
	}
}

// UploadFile streams content as a multipart upload.
func (c *Client) UploadFile(ctx context.Context, name string, content io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	pr, pw := io.Pipe()
	form := multipart.NewWriter(pw)
	go func() {
		pw.CloseWithError(writeUploadForm(form, name, content))
	}()

	reqCtx, cancel := c.requestContext(ctx)
	defer cancel()

	req, err := c.newRequest(reqCtx, http.MethodPost, "files", nil, pr)
	if err != nil {
		_ = pr.CloseWithError(err)
		return "", fmt.Errorf("upload file: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	var out objectResponse
	err = c.do(req, "upload file", &out)
	_ = pr.Close()
	if err != nil {
		return "", err
	}
	return out.ID, nil
}

func writeUploadForm(form *multipart.Writer, name string, content io.Reader) error {
	if err := form.WriteField("purpose", filePurpose); err != nil {
		return fmt.Errorf("write purpose field: %w", err)
	}
	part, err := form.CreateFormFile("file", name)
	if err != nil {
		return fmt.Errorf("create file part: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return fmt.Errorf("copy file content: %w", err)
	}
	return form.Close()
}

func (c *Client) DeleteFile(ctx context.Context, fileID string) error {
	return c.doJSON(ctx, "delete file", http.MethodDelete, escapePath("files/%s", fileID), nil, nil, nil)
}

func (c *Client) ListFiles(ctx context.Context, after string) (domain.Page, error) {
	return c.list(ctx, "list files", "files", after)
}

func (c *Client) CreateVectorStore(ctx context.Context, req domain.VectorStoreRequest) (string, error) {
	body := vectorStoreRequest{Name: req.Name, FileIDs: req.FileIDs}
	if req.ExpiryDays > 0 {
		body.ExpiresAfter = &expiresAfter{Anchor: req.ExpiryAnchor, Days: req.ExpiryDays}
	}

	var out objectResponse
	if err := c.doJSON(ctx, "create vector store", http.MethodPost, "vector_stores", nil, body, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

func (c *Client) DeleteVectorStore(ctx context.Context, vectorStoreID string) error {
	return c.doJSON(ctx, "delete vector store", http.MethodDelete, escapePath("vector_stores/%s", vectorStoreID), nil, nil, nil)
}

func (c *Client) ListVectorStores(ctx context.Context, after string) (domain.Page, error) {
	return c.list(ctx, "list vector stores", "vector_stores", after)
}

func (c *Client) CreateAssistant(ctx context.Context, params domain.PersonaParams, vectorStoreIDs []string) (string, error) {
	var out objectResponse
	if err := c.doJSON(ctx, "create assistant", http.MethodPost, "assistants", nil, newAssistantRequest(params, vectorStoreIDs), &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

func (c *Client) UpdateAssistant(ctx context.Context, assistantID string, params domain.PersonaParams, vectorStoreIDs []string) error {
	return c.doJSON(ctx, "update assistant", http.MethodPost, escapePath("assistants/%s", assistantID), nil, newAssistantRequest(params, vectorStoreIDs), nil)
}

func (c *Client) DeleteAssistant(ctx context.Context, assistantID string) error {
	return c.doJSON(ctx, "delete assistant", http.MethodDelete, escapePath("assistants/%s", assistantID), nil, nil, nil)
}

func (c *Client) ListAssistants(ctx context.Context, after string) (domain.Page, error) {
	return c.list(ctx, "list assistants", "assistants", after)
}

func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	var envelope listEnvelope
	if err := c.doJSON(ctx, "list models", http.MethodGet, "models", nil, nil, &envelope); err != nil {
		return nil, err
	}

	models := make([]string, 0, len(envelope.Data))
	for _, item := range envelope.Data {
		models = append(models, item.ID)
	}
	return models, nil
}
