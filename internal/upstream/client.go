package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/vivahlink/console/internal/config"
	ierr "github.com/vivahlink/console/internal/errors"
	"github.com/vivahlink/console/internal/logger"
	"github.com/vivahlink/console/internal/types"
)

const writeRetryAttempts = 3

// Client issues authenticated calls against the platform REST backend. All
// repository implementations go through it; it owns token attachment,
// session-expiry handling and the retry policy.
type Client interface {
	Get(ctx context.Context, path string, query map[string]string, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Patch(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string, out any) error
	PostMultipart(ctx context.Context, path string, fields map[string]string, files []File, out any) error
	ImageURL(rel string) string
}

// SessionExpiredHook runs when the backend rejects the session (401) or the
// token's own expiry has passed. It tears down session state exactly once
// per expiry.
type SessionExpiredHook func()

type client struct {
	baseURL      string
	imageBaseURL string

	// GETs are idempotent and retried transparently; writes retry through
	// doWrite with explicit bounds.
	getClient   *retryablehttp.Client
	writeClient *http.Client

	onSessionExpired SessionExpiredHook
	log              *logger.Logger
}

type Option func(*client)

// WithSessionExpiredHook registers the 401 teardown hook.
func WithSessionExpiredHook(hook SessionExpiredHook) Option {
	return func(c *client) {
		c.onSessionExpired = hook
	}
}

func NewClient(cfg *config.Configuration, log *logger.Logger, opts ...Option) Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = cfg.Upstream.MaxRetries
	rc.RetryWaitMin = 500 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.HTTPClient.Timeout = cfg.Upstream.Timeout
	rc.Logger = log.GetRetryableHTTPLogger()
	// Hand the final response back instead of a "giving up" error, so a
	// persistent 5xx still maps to a server error rather than a network one.
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	c := &client{
		baseURL:      strings.TrimRight(cfg.Upstream.BaseURL, "/"),
		imageBaseURL: strings.TrimRight(cfg.Upstream.ImageBaseURL, "/"),
		getClient:    rc,
		writeClient:  &http.Client{Timeout: cfg.Upstream.Timeout},
		log:          log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *client) Get(ctx context.Context, path string, query map[string]string, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		values := url.Values{}
		for k, v := range query {
			values.Set(k, v)
		}
		u += "?" + values.Encode()
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to build upstream request").
			Mark(ierr.ErrInternal)
	}
	c.attachHeaders(ctx, req.Header)

	resp, err := c.getClient.Do(req)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Could not reach the platform backend").
			Mark(ierr.ErrNetwork)
	}
	return c.handleResponse(ctx, resp, out)
}

func (c *client) Post(ctx context.Context, path string, body, out any) error {
	return c.doWrite(ctx, http.MethodPost, path, body, out)
}

func (c *client) Put(ctx context.Context, path string, body, out any) error {
	return c.doWrite(ctx, http.MethodPut, path, body, out)
}

func (c *client) Patch(ctx context.Context, path string, body, out any) error {
	return c.doWrite(ctx, http.MethodPatch, path, body, out)
}

func (c *client) Delete(ctx context.Context, path string, out any) error {
	return c.doWrite(ctx, http.MethodDelete, path, nil, out)
}

// ImageURL resolves a relative /uploads path against the image base URL.
// Absolute URLs pass through untouched.
func (c *client) ImageURL(rel string) string {
	if rel == "" {
		return ""
	}
	if strings.HasPrefix(rel, "http://") || strings.HasPrefix(rel, "https://") {
		return rel
	}
	return c.imageBaseURL + "/" + strings.TrimLeft(rel, "/")
}

// doWrite performs a mutating call with bounded retry. Only network failures
// and 5xx responses are retried; everything the backend classified (4xx) is
// terminal. The backend is idempotent per entity id, which is what makes
// re-sending the identical request safe.
func (c *client) doWrite(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return ierr.WithError(err).
				WithHint("Failed to encode request payload").
				Mark(ierr.ErrInternal)
		}
	}

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
		if err != nil {
			return backoff.Permanent(ierr.WithError(err).
				WithHint("Failed to build upstream request").
				Mark(ierr.ErrInternal))
		}
		req.Header.Set("Content-Type", "application/json")
		c.attachHeaders(ctx, req.Header)

		resp, err := c.writeClient.Do(req)
		if err != nil {
			return ierr.WithError(err).
				WithHint("Could not reach the platform backend").
				Mark(ierr.ErrNetwork)
		}

		if err := c.handleResponse(ctx, resp, out); err != nil {
			if ierr.IsRetryable(err) {
				return err
			}
			return backoff.Permanent(err)
		}
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(time.Second), writeRetryAttempts-1),
		ctx,
	)
	return backoff.Retry(operation, policy)
}

func (c *client) attachHeaders(ctx context.Context, h http.Header) {
	if token := types.GetSessionToken(ctx); token != "" {
		h.Set(types.HeaderAuthorization, "Bearer "+token)
	}
	if requestID := types.GetRequestID(ctx); requestID != "" {
		h.Set(types.HeaderRequestID, requestID)
	}
}

// handleResponse maps the response onto the error taxonomy and decodes the
// body into out on success.
func (c *client) handleResponse(ctx context.Context, resp *http.Response, out any) error {
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to read upstream response").
			Mark(ierr.ErrNetwork)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil || len(raw) == 0 {
			return nil
		}
		if err := json.Unmarshal(raw, out); err != nil {
			return ierr.WithError(err).
				WithHint("Unexpected upstream response shape").
				Mark(ierr.ErrInternal)
		}
		return nil
	}

	message := serverMessage(raw)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		c.log.WithContext(ctx).Warnw("upstream rejected session", "status", resp.StatusCode)
		if c.onSessionExpired != nil {
			c.onSessionExpired()
		}
		return ierr.NewError("session expired").
			WithHint("Your session has expired, please sign in again").
			Mark(ierr.ErrPermissionDenied)

	case resp.StatusCode == http.StatusNotFound:
		return ierr.NewError(message).
			WithHint(messageOr(message, "The requested record was not found")).
			Mark(ierr.ErrNotFound)

	case resp.StatusCode == http.StatusConflict:
		return ierr.NewError(message).
			WithHint(messageOr(message, "The record is in a conflicting state")).
			Mark(ierr.ErrInvalidOperation)

	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return ierr.NewError(message).
			WithHint(messageOr(message, "The request was rejected by the backend")).
			WithReportableDetails(map[string]interface{}{"status": resp.StatusCode}).
			Mark(ierr.ErrValidation)

	default:
		return ierr.NewErrorf("upstream returned %d", resp.StatusCode).
			WithHint("The platform backend failed, please try again").
			Mark(ierr.ErrServer)
	}
}

// serverMessage extracts the backend's human-readable message, tolerating
// both {"message": ...} and {"error": {"message": ...}} shapes.
func serverMessage(raw []byte) string {
	var nested struct {
		Message string `json:"message"`
		Error   struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &nested); err == nil {
		if nested.Error.Message != "" {
			return nested.Error.Message
		}
		if nested.Message != "" {
			return nested.Message
		}
	}
	return "upstream request failed"
}

func messageOr(message, fallback string) string {
	if message != "" && message != "upstream request failed" {
		return message
	}
	return fallback
}
