package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Emirhan-Denizyol/llm-memory-assistant/internal/domain"
	"github.com/Emirhan-Denizyol/llm-memory-assistant/internal/ports"
	"golang.org/x/time/rate"
)

const (
	APIKeyHeader          = "X-API-Key"
	DefaultBaseURL        = "http://127.0.0.1:8000"
	DefaultRequestTimeout = 30 * time.Second

	chatPath         = "/api/chat"
	memoryPath       = "/api/memory"
	maxResponseBytes = 1 << 20
	userAgent        = "jetlink-cli"
)

type Client struct {
	BaseURL        string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
	Credentials    ports.CredentialSource
	// Limiter, when set, throttles every outgoing request.
	Limiter *rate.Limiter
}

var _ ports.BackendGateway = (*Client)(nil)

func (c *Client) Chat(ctx context.Context, req domain.ChatRequest) (domain.ChatTurnResult, error) {
	var payload chatResponse
	if err := c.do(ctx, http.MethodPost, chatPath, nil, toChatRequest(req), &payload); err != nil {
		return domain.ChatTurnResult{}, fmt.Errorf("chat: %w", err)
	}

	return payload.toDomain(), nil
}

func (c *Client) AddMemory(ctx context.Context, req domain.MemoryWriteRequest) (domain.MemoryRecord, error) {
	if !req.Scope.Persistent() {
		return domain.MemoryRecord{}, fmt.Errorf("add memory: %w: %q", domain.ErrInvalidScope, req.Scope)
	}

	var item memoryItem
	if err := c.do(ctx, http.MethodPost, memoryPath+"/"+string(req.Scope), nil, toMemoryWriteRequest(req), &item); err != nil {
		return domain.MemoryRecord{}, fmt.Errorf("add %s memory: %w", req.Scope, err)
	}

	return item.toDomain(), nil
}

func (c *Client) SearchMemory(ctx context.Context, query domain.SearchQuery) (domain.MemoryPage, error) {
	body := searchRequest{
		UserID:    query.UserID,
		Q:         query.Query,
		Scope:     string(query.Scope),
		SessionID: string(query.SessionID),
		TopK:      query.TopK,
	}

	var payload listResponse
	if err := c.do(ctx, http.MethodPost, memoryPath+"/search", nil, body, &payload); err != nil {
		return domain.MemoryPage{}, fmt.Errorf("search memory: %w", err)
	}

	return payload.toDomain(), nil
}

func (c *Client) ListMemories(ctx context.Context, query domain.ListQuery) (domain.MemoryPage, error) {
	if !query.Scope.Persistent() {
		return domain.MemoryPage{}, fmt.Errorf("list memories: %w: %q", domain.ErrInvalidScope, query.Scope)
	}

	values := url.Values{}
	values.Set("user_id", query.UserID)
	if query.Page > 0 {
		values.Set("page", strconv.Itoa(query.Page))
	}
	if query.PageSize > 0 {
		values.Set("page_size", strconv.Itoa(query.PageSize))
	}
	if query.SessionID != "" {
		values.Set("session_id", string(query.SessionID))
	}
	if query.Query != "" {
		values.Set("q", query.Query)
	}

	var payload listResponse
	if err := c.do(ctx, http.MethodGet, memoryPath+"/"+string(query.Scope), values, nil, &payload); err != nil {
		return domain.MemoryPage{}, fmt.Errorf("list %s memories: %w", query.Scope, err)
	}

	return payload.toDomain(), nil
}

func (c *Client) DeleteMemory(ctx context.Context, scope domain.Scope, id int64) (int, error) {
	if !scope.Persistent() {
		return 0, fmt.Errorf("delete memory: %w: %q", domain.ErrInvalidScope, scope)
	}

	var payload deleteResponse
	path := fmt.Sprintf("%s/%s/%d", memoryPath, scope, id)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil, &payload); err != nil {
		return 0, fmt.Errorf("delete %s memory %d: %w", scope, id, err)
	}

	return payload.Deleted, nil
}

func (c *Client) ClearMemory(ctx context.Context, query domain.ClearQuery) (int, error) {
	if query.Scope == domain.ScopeAny {
		return 0, fmt.Errorf("clear memory: %w: scope is required", domain.ErrInvalidScope)
	}

	values := url.Values{}
	values.Set("scope", string(query.Scope))
	if query.UserID != "" {
		values.Set("user_id", query.UserID)
	}
	if query.SessionID != "" {
		values.Set("session_id", string(query.SessionID))
	}

	var payload deleteResponse
	if err := c.do(ctx, http.MethodPost, memoryPath+"/clear", values, nil, &payload); err != nil {
		return 0, fmt.Errorf("clear %s memory: %w", query.Scope, err)
	}

	return payload.Deleted, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return fmt.Errorf("wait for rate limiter: %w", err)
		}
	}

	endpoint, err := c.buildURL(path, query)
	if err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	apiKey, err := c.apiKey(ctx)
	if err != nil {
		return err
	}

	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(requestCtx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if apiKey != "" {
		req.Header.Set(APIKeyHeader, apiKey)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("perform request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return decodeAPIError(resp.StatusCode, data)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

func (c *Client) apiKey(ctx context.Context) (string, error) {
	if c.Credentials == nil {
		return "", nil
	}

	key, err := c.Credentials.Lookup(ctx)
	if err != nil {
		return "", fmt.Errorf("resolve api key: %w", err)
	}

	return strings.TrimSpace(key), nil
}

func (c *Client) buildURL(path string, query url.Values) (string, error) {
	base := strings.TrimSpace(c.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}

	parsed, err := url.Parse(strings.TrimRight(base, "/") + path)
	if err != nil {
		return "", fmt.Errorf("parse backend url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return "", errors.New("backend url must be absolute")
	}
	if len(query) > 0 {
		parsed.RawQuery = query.Encode()
	}

	return parsed.String(), nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := c.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return context.WithTimeout(ctx, timeout)
}
