package api

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zhubert/supportchat/internal/errors"
	"github.com/zhubert/supportchat/internal/logger"
)

const (
	// DefaultTimeout bounds a single call when no context deadline is set.
	DefaultTimeout = 60 * time.Second

	// DefaultUserID is sent with every chat request unless overridden.
	DefaultUserID = 1

	// RequestIDHeader carries a fresh identifier on every outbound call.
	RequestIDHeader = "X-Request-ID"

	// maxErrorBody caps how much of a failed response is kept in the error.
	maxErrorBody = 512
)

// Client talks to the chat service over HTTP. It is safe for concurrent use.
type Client struct {
	baseURL    string
	userID     int
	httpClient *http.Client
	log        *slog.Logger
	requestID  func() string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-call timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithUserID sets the user_id sent with chat requests.
func WithUserID(id int) Option {
	return func(c *Client) { c.userID = id }
}

// WithRequestIDs replaces the request id generator.
func WithRequestIDs(gen func() string) Option {
	return func(c *Client) { c.requestID = gen }
}

// NewClient creates a client rooted at baseURL, e.g. "http://localhost:8000".
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userID:     DefaultUserID,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		log:        logger.WithComponent("api"),
		requestID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the service root the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SendMessage posts a user message. An empty sessionID asks the service to
// mint a new session, whose id is returned in the response.
func (c *Client) SendMessage(ctx context.Context, text string, sessionID SessionID) (*ChatResponse, error) {
	const op = errors.Op("api.SendMessage")
	req := ChatRequest{Message: text, UserID: c.userID, SessionID: sessionID}
	var resp ChatResponse
	if err := c.do(ctx, op, http.MethodPost, "/api/chat", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListSessions returns the persisted sessions in the order the service lists them.
func (c *Client) ListSessions(ctx context.Context) ([]ConversationSummary, error) {
	const op = errors.Op("api.ListSessions")
	var list SessionList
	if err := c.do(ctx, op, http.MethodGet, "/api/sessions", nil, &list); err != nil {
		return nil, err
	}
	if list.Sessions == nil {
		return []ConversationSummary{}, nil
	}
	return list.Sessions, nil
}

// GetSession returns the full message history of one session.
func (c *Client) GetSession(ctx context.Context, id SessionID) ([]Message, error) {
	const op = errors.Op("api.GetSession")
	var detail SessionDetail
	if err := c.do(ctx, op, http.MethodGet, sessionPath(id), nil, &detail); err != nil {
		return nil, err
	}
	if detail.Messages == nil {
		return []Message{}, nil
	}
	return detail.Messages, nil
}

// DeleteSession removes a session on the service.
func (c *Client) DeleteSession(ctx context.Context, id SessionID) error {
	return c.do(ctx, errors.Op("api.DeleteSession"), http.MethodDelete, sessionPath(id), nil, nil)
}

// Health reports the service's own view of its health.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var status HealthStatus
	if err := c.do(ctx, errors.Op("api.Health"), http.MethodGet, "/api/health", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func sessionPath(id SessionID) string {
	return "/api/sessions/" + url.PathEscape(id.String())
}

// do performs one request. A nil out discards the response body.
func (c *Client) do(ctx context.Context, op errors.Op, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return errors.E(op, errors.KindValidation, "failed to encode request", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return errors.E(op, errors.KindValidation, "failed to build request", err)
	}
	reqID := c.requestID()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, reqID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log := c.log.With("method", method, "path", path, "requestID", reqID)
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("request failed", "error", err, "elapsed", time.Since(start))
		if isTimeout(err) {
			return errors.RequestTimedOut(op, err)
		}
		return errors.NetworkFailed(op, err)
	}
	defer resp.Body.Close()
	log.Debug("request completed", "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return errors.ServiceStatus(op, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if isTimeout(err) {
			return errors.RequestTimedOut(op, err)
		}
		log.Warn("malformed response body", "error", err)
		return errors.DecodeFailed(op, err)
	}
	return nil
}

func isTimeout(err error) bool {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return stderrors.As(err, &netErr) && netErr.Timeout()
}
