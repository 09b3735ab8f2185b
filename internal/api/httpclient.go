package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/devpal/newbase/internal/logging"
	"github.com/devpal/newbase/internal/models"
	"github.com/devpal/newbase/internal/netx"
)

// HTTPClient is the production Client: JSON envelope over HTTP against a
// fixed base URL. Each invocation runs the reachability probe first and
// classifies every transport failure before returning it.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	checker netx.Checker
	tokens  TokenSource
	log     logging.Logger
}

// NewHTTPClient builds a client for the given base URL. The checker gates
// every call; tokens may be nil for unauthenticated use.
func NewHTTPClient(baseURL string, timeout time.Duration, checker netx.Checker, tokens TokenSource, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		checker: checker,
		tokens:  tokens,
		log:     log.With("component", "api"),
	}
}

func (c *HTTPClient) Login(ctx context.Context, req LoginRequest) (*Envelope[models.User], error) {
	return call[models.User](ctx, c, http.MethodPost, pathLogin, req)
}

func (c *HTTPClient) Register(ctx context.Context, req RegisterRequest) (*Envelope[Empty], error) {
	return call[Empty](ctx, c, http.MethodPost, pathRegister, req)
}

func (c *HTTPClient) ForgotPassword(ctx context.Context, email string) (*Envelope[Empty], error) {
	return call[Empty](ctx, c, http.MethodPost, pathForgotPassword, ForgotPasswordRequest{Email: email})
}

func (c *HTTPClient) GetProfile(ctx context.Context) (*Envelope[models.User], error) {
	return call[models.User](ctx, c, http.MethodGet, pathGetProfile, nil)
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, user models.User) (*Envelope[Empty], error) {
	return call[Empty](ctx, c, http.MethodPost, pathUpdateProfile, user)
}

func (c *HTTPClient) ListNotifications(ctx context.Context) (*Envelope[[]models.Notification], error) {
	return call[[]models.Notification](ctx, c, http.MethodGet, pathNotifications, nil)
}

func (c *HTTPClient) MarkNotificationRead(ctx context.Context, id string) (*Envelope[Empty], error) {
	return call[Empty](ctx, c, http.MethodPost, pathMarkRead, MarkReadRequest{NotificationID: id})
}

// call runs one remote operation end to end: reachability probe, request
// build, dispatch, classification, envelope decode. Business-level failures
// stay inside the returned envelope; everything else comes back as *Error.
func call[T any](ctx context.Context, c *HTTPClient, method, path string, body any) (*Envelope[T], error) {
	if !c.checker.IsReachable(ctx) {
		c.log.Warn(ctx, "skipping request, endpoint unreachable", "path", path)
		return nil, NoConnectivity()
	}

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, Unexpected(fmt.Errorf("encode request: %w", err))
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+path, reqBody)
	if err != nil {
		return nil, Unexpected(err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token, err := c.tokens.AuthToken(ctx); err == nil && token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error(ctx, "request failed", "path", path, "err", err)
		return nil, classifyTransport(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, Unexpected(fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Error(ctx, "server error", "path", path, "status", resp.StatusCode)
		return nil, Server(resp.StatusCode, raw)
	}

	var env Envelope[T]
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, Unexpected(fmt.Errorf("decode envelope: %w", err))
	}
	return &env, nil
}

// classifyTransport maps a raw transport error onto the closed taxonomy.
func classifyTransport(err error) error {
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return Timeout(err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return Timeout(err)
	}
	return Unexpected(err)
}
