package api

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

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL   = "http://127.0.0.1:8080/api"
	defaultUserAgent = "tally/0.1"
	defaultTimeout   = 15 * time.Second
	errorBodyLimit   = 4 << 10
)

// ErrNotFound is matched by a StatusError for HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrNoPayload is returned when a success response lacks the payload member.
var ErrNoPayload = errors.New("response has no payload")

// StatusError is a non-2xx response.
type StatusError struct {
	Method  string
	Path    string
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("api %s %s returned status %d", e.Method, e.Path, e.Status)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is lets errors.Is(err, ErrNotFound) match 404 responses.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// Options configures a Client. Zero values select defaults.
type Options struct {
	Token     string
	Timeout   time.Duration
	RateLimit float64 // requests per second; 0 disables limiting
	UserAgent string
	Logger    logrus.FieldLogger
	HTTP      *http.Client
}

// Client talks to the backend API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	token     string
	limiter   *rate.Limiter
	log       logrus.FieldLogger
}

// NewClient builds a Client for baseURL, e.g. http://127.0.0.1:8080/api.
func NewClient(baseURL string, opts Options) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	httpClient := opts.HTTP
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	limit := rate.Inf
	burst := 1
	if opts.RateLimit > 0 {
		limit = rate.Limit(opts.RateLimit)
		burst = max(1, int(opts.RateLimit))
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Client{
		baseURL:   base,
		http:      httpClient,
		userAgent: userAgent,
		token:     strings.TrimSpace(opts.Token),
		limiter:   rate.NewLimiter(limit, burst),
		log:       log,
	}, nil
}

// BaseURL returns the normalised base URL.
func (c *Client) BaseURL() string { return c.baseURL.String() }

type envelope struct {
	Payload json.RawMessage `json:"payload"`
}

// call sends body as JSON to path and decodes the envelope payload into
// dest. With a nil dest an empty body is accepted.
func (c *Client) call(ctx context.Context, method, path string, body, dest any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	reqURL := c.resolve(path)
	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	log := c.log.WithFields(logrus.Fields{"request_id": requestID, "method": method, "path": path})
	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.WithError(err).Debug("request failed")
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	log = log.WithFields(logrus.Fields{"status": resp.StatusCode, "elapsed": time.Since(started).Round(time.Millisecond)})

	if resp.StatusCode >= 400 {
		serr := &StatusError{Method: method, Path: path, Status: resp.StatusCode, Message: errorMessage(resp.Body)}
		log.Warn(serr.Message)
		return serr
	}
	log.Debug("request complete")

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		if dest == nil {
			return nil
		}
		return fmt.Errorf("decode response: %w", ErrNoPayload)
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if env.Payload == nil {
		return fmt.Errorf("decode response: %w", ErrNoPayload)
	}
	if dest == nil {
		return nil
	}
	if err := json.Unmarshal(env.Payload, dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) resolve(path string) string {
	u := *c.baseURL
	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + strings.TrimPrefix(path, "/")
	return u.String()
}

// errorMessage extracts a readable message from an error body. JSON bodies
// with message or error members are unwrapped; anything else is trimmed text.
func errorMessage(body io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(body, errorBodyLimit))
	var parsed struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Payload *struct {
			Message string `json:"message"`
		} `json:"payload"`
	}
	if json.Unmarshal(raw, &parsed) == nil {
		switch {
		case parsed.Message != "":
			return parsed.Message
		case parsed.Error != "":
			return parsed.Error
		case parsed.Payload != nil && parsed.Payload.Message != "":
			return parsed.Payload.Message
		}
	}
	return strings.TrimSpace(string(raw))
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_base %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api_base %q: missing host", raw)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
