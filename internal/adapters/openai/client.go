// Package openai talks to the OpenAI Assistants v2 REST API.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bnema/ihaveaplan/internal/domain"
	"github.com/bnema/ihaveaplan/internal/ports"
)

const (
	DefaultBaseURL = "https://api.openai.com/v1/"

	assistantsBeta        = "assistants=v2"
	maxResponseBytes      = 8 << 20
	maxErrorBodyBytes     = 64 << 10
	defaultRequestTimeout = 60 * time.Second
	listPageSize          = 100
)

type Client struct {
	BaseURL        string
	APIKey         string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
}

var _ ports.AssistantBackend = (*Client)(nil)

func NewClient(baseURL string, apiKey string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{BaseURL: baseURL, APIKey: apiKey, HTTPClient: httpClient}
}

// Factory adapts NewClient to ports.BackendFactory.
func Factory(baseURL string, httpClient *http.Client) ports.BackendFactory {
	return func(apiKey string) ports.AssistantBackend {
		return NewClient(baseURL, apiKey, httpClient)
	}
}

type apiErrorEnvelope struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

type listEnvelope struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
	HasMore bool `json:"has_more"`
}

func (c *Client) doJSON(ctx context.Context, op string, method string, path string, query url.Values, body any, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		payload = bytes.NewReader(data)
	}

	reqCtx, cancel := c.requestContext(ctx)
	defer cancel()

	req, err := c.newRequest(reqCtx, method, path, query, payload)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.do(req, op, out)
}

func (c *Client) newRequest(ctx context.Context, method string, path string, query url.Values, body io.Reader) (*http.Request, error) {
	endpoint, err := buildAPIURL(c.BaseURL, path)
	if err != nil {
		return nil, err
	}
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	return req, nil
}

func (c *Client) do(req *http.Request, op string, out any) error {
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("OpenAI-Beta", assistantsBeta)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return &domain.UpstreamError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return decodeAPIError(op, resp.StatusCode, io.LimitReader(resp.Body, maxErrorBodyBytes))
	}

	body := io.LimitReader(resp.Body, maxResponseBytes)
	if out == nil {
		_, _ = io.Copy(io.Discard, body)
		return nil
	}
	if err := json.NewDecoder(body).Decode(out); err != nil {
		return &domain.UpstreamError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func decodeAPIError(op string, status int, body io.Reader) error {
	message := http.StatusText(status)
	if data, _ := io.ReadAll(body); len(bytes.TrimSpace(data)) > 0 {
		var envelope apiErrorEnvelope
		if err := json.Unmarshal(data, &envelope); err == nil && envelope.Error.Message != "" {
			message = envelope.Error.Message
		} else {
			message = strings.TrimSpace(string(data))
		}
	}

	cause := errors.New(message)
	if status == http.StatusNotFound {
		cause = fmt.Errorf("%w: %s", domain.ErrNotFound, message)
	}
	return &domain.UpstreamError{Op: op, StatusCode: status, Err: cause}
}

func (c *Client) list(ctx context.Context, op string, path string, after string) (domain.Page, error) {
	query := url.Values{}
	query.Set("limit", fmt.Sprint(listPageSize))
	if after != "" {
		query.Set("after", after)
	}

	var envelope listEnvelope
	if err := c.doJSON(ctx, op, http.MethodGet, path, query, nil, &envelope); err != nil {
		return domain.Page{}, err
	}

	page := domain.Page{IDs: make([]string, 0, len(envelope.Data)), HasMore: envelope.HasMore}
	for _, item := range envelope.Data {
		page.IDs = append(page.IDs, item.ID)
	}
	return page, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	timeout := c.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

func buildAPIURL(baseURL string, path string) (string, error) {
	if baseURL == "" {
		return "", errors.New("api base url is required")
	}
	if path == "" {
		return "", errors.New("api path is required")
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse api base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("api base url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("api base url host is required")
	}
	if !strings.HasSuffix(parsed.Path, "/") {
		parsed.Path += "/"
	}

	endpoint, err := parsed.Parse(strings.TrimPrefix(path, "/"))
	if err != nil {
		return "", fmt.Errorf("parse api path: %w", err)
	}
	return endpoint.String(), nil
}

func escapePath(format string, ids ...string) string {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = url.PathEscape(id)
	}
	return fmt.Sprintf(format, args...)
}
