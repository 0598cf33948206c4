package openai

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/bnema/ihaveaplan/internal/domain"
)

type objectResponse struct {
	ID string `json:"id"`
}

type runResponse struct {
	ID        string `json:"id"`
	ThreadID  string `json:"thread_id"`
	Status    string `json:"status"`
	LastError *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"last_error"`
	IncompleteDetails *struct {
		Reason string `json:"reason"`
	} `json:"incomplete_details"`
}

func (r runResponse) toDomain() domain.Run {
	run := domain.Run{ID: r.ID, ThreadID: r.ThreadID, Status: domain.RunStatus(r.Status)}
	switch {
	case r.LastError != nil && r.LastError.Message != "":
		run.LastError = r.LastError.Message
	case r.IncompleteDetails != nil:
		run.LastError = r.IncompleteDetails.Reason
	}
	return run
}

type messageListResponse struct {
	Data []struct {
		ID      string `json:"id"`
		Role    string `json:"role"`
		Content []struct {
			Type string `json:"type"`
			Text *struct {
				Value string `json:"value"`
			} `json:"text"`
		} `json:"content"`
	} `json:"data"`
}

func (c *Client) CreateThread(ctx context.Context) (string, error) {
	var out objectResponse
	if err := c.doJSON(ctx, "create thread", http.MethodPost, "threads", nil, struct{}{}, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

func (c *Client) DeleteThread(ctx context.Context, threadID string) error {
	return c.doJSON(ctx, "delete thread", http.MethodDelete, escapePath("threads/%s", threadID), nil, nil, nil)
}

func (c *Client) PostMessage(ctx context.Context, threadID string, content string) error {
	body := map[string]string{"role": "user", "content": content}
	return c.doJSON(ctx, "post message", http.MethodPost, escapePath("threads/%s/messages", threadID), nil, body, nil)
}

func (c *Client) StartRun(ctx context.Context, req domain.StartRunRequest) (domain.Run, error) {
	body := map[string]string{"assistant_id": req.AssistantID}
	if req.Instructions != "" {
		body["instructions"] = req.Instructions
	}

	var out runResponse
	if err := c.doJSON(ctx, "start run", http.MethodPost, escapePath("threads/%s/runs", req.ThreadID), nil, body, &out); err != nil {
		return domain.Run{}, err
	}
	run := out.toDomain()
	if run.ThreadID == "" {
		run.ThreadID = req.ThreadID
	}
	return run, nil
}

func (c *Client) GetRun(ctx context.Context, threadID string, runID string) (domain.Run, error) {
	var out runResponse
	if err := c.doJSON(ctx, "get run", http.MethodGet, escapePath("threads/%s/runs/%s", threadID, runID), nil, nil, &out); err != nil {
		return domain.Run{}, err
	}
	return out.toDomain(), nil
}

func (c *Client) ListMessages(ctx context.Context, req domain.ListMessagesRequest) ([]domain.Message, error) {
	query := url.Values{}
	if req.Limit > 0 {
		query.Set("limit", fmt.Sprint(req.Limit))
	}
	if req.Order != "" {
		query.Set("order", string(req.Order))
	}

	var out messageListResponse
	if err := c.doJSON(ctx, "list messages", http.MethodGet, escapePath("threads/%s/messages", req.ThreadID), query, nil, &out); err != nil {
		return nil, err
	}

	messages := make([]domain.Message, 0, len(out.Data))
	for _, item := range out.Data {
		message := domain.Message{ID: item.ID, Role: item.Role}
		for _, part := range item.Content {
			if part.Type == "text" && part.Text != nil {
				message.Texts = append(message.Texts, part.Text.Value)
			}
		}
		messages = append(messages, message)
	}
	return messages, nil
}
