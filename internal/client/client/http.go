package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/dmitrijs2005/suimirror/internal/client/models"
	"github.com/dmitrijs2005/suimirror/internal/client/notify"
	"github.com/dmitrijs2005/suimirror/internal/logging"
)

const requestIDHeader = "X-Request-Id"

type HTTPGatewayOptions struct {
	// BaseURL is the panel root, e.g. http://127.0.0.1:2095/app.
	BaseURL string
	// Token, when set, is sent as a bearer token on every request.
	Token string
	// HTTPClient defaults to a 15s-timeout client. A cookie jar is attached
	// when the client has none, so the login session survives between calls.
	HTTPClient *http.Client
	// Notifier receives an error notice for every failed call.
	Notifier notify.Notifier
	Logger   logging.Logger
	// RequestsPerSecond caps outgoing requests, retries included. Zero means
	// 10 per second; a negative value disables the limit.
	RequestsPerSecond float64
}

// HTTPGateway talks to the panel over HTTP. GET parameters travel in the
// query string, POST bodies are form-encoded. Idempotent GETs are retried on
// network errors, 429 and 5xx; POSTs are never retried.
type HTTPGateway struct {
	baseURL    string
	token      string
	httpClient *http.Client
	notifier   notify.Notifier
	log        logging.Logger
	limiter    *rate.Limiter
	maxAttempts int
	baseDelay  time.Duration
	maxDelay   time.Duration
}

func NewHTTPGateway(opts HTTPGatewayOptions) (*HTTPGateway, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("base url is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}

	var hc http.Client
	if opts.HTTPClient != nil {
		hc = *opts.HTTPClient
	} else {
		hc.Timeout = 15 * time.Second
	}
	if hc.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, err
		}
		hc.Jar = jar
	}

	notifier := opts.Notifier
	if notifier == nil {
		notifier = notify.Discard{}
	}
	var log logging.Logger = logging.Nop()
	if opts.Logger != nil {
		log = opts.Logger
	}

	limit := rate.Limit(opts.RequestsPerSecond)
	switch {
	case opts.RequestsPerSecond == 0:
		limit = 10
	case opts.RequestsPerSecond < 0:
		limit = rate.Inf
	}

	return &HTTPGateway{
		baseURL:    baseURL,
		token:      strings.TrimSpace(opts.Token),
		httpClient: &hc,
		notifier:   notifier,
		log:        log,
		limiter:    rate.NewLimiter(limit, 10),
		maxAttempts: 3,
		baseDelay:  100 * time.Millisecond,
		maxDelay:   2 * time.Second,
	}, nil
}

func (g *HTTPGateway) Get(ctx context.Context, action string, params url.Values) (models.Envelope, error) {
	return g.call(ctx, http.MethodGet, action, params)
}

func (g *HTTPGateway) Post(ctx context.Context, action string, form url.Values) (models.Envelope, error) {
	return g.call(ctx, http.MethodPost, action, form)
}

func (g *HTTPGateway) call(ctx context.Context, method, action string, values url.Values) (models.Envelope, error) {
	requestID := uuid.NewString()
	log := g.log.With("action", action, "method", method, "request_id", requestID)

	env, err := g.do(ctx, method, action, values, requestID)
	if err != nil {
		log.Warn(ctx, "api call failed", "err", err)
		g.notifier.Notify(notify.Notice{Level: notify.LevelError, Message: failureText(err)})
		return env, err
	}
	log.Debug(ctx, "api call succeeded")
	return env, nil
}

func (g *HTTPGateway) do(ctx context.Context, method, action string, values url.Values, requestID string) (models.Envelope, error) {
	endpoint := g.baseURL + "/api/" + action
	var body string
	if method == http.MethodGet {
		if len(values) > 0 {
			endpoint += "?" + values.Encode()
		}
	} else {
		body = values.Encode()
	}

	for attempt := 0; ; attempt++ {
		if err := g.limiter.Wait(ctx); err != nil {
			return models.Envelope{}, err
		}

		var bodyReader io.Reader
		if method != http.MethodGet {
			bodyReader = strings.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
		if err != nil {
			return models.Envelope{}, err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set(requestIDHeader, requestID)
		if method != http.MethodGet {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
		if g.token != "" {
			req.Header.Set("Authorization", "Bearer "+g.token)
		}

		retryable := method == http.MethodGet && attempt < g.maxAttempts-1

		resp, err := g.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return models.Envelope{}, ctx.Err()
			}
			if retryable {
				if waitErr := waitWithContext(ctx, g.retryDelay(attempt+1, "")); waitErr != nil {
					return models.Envelope{}, waitErr
				}
				continue
			}
			return models.Envelope{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		payload, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			return models.Envelope{}, fmt.Errorf("%w: %v", ErrUnavailable, readErr)
		}

		if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
			return decodeEnvelope(action, payload)
		}

		if (resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500) && retryable {
			if waitErr := waitWithContext(ctx, g.retryDelay(attempt+1, resp.Header.Get("Retry-After"))); waitErr != nil {
				return models.Envelope{}, waitErr
			}
			continue
		}

		return models.Envelope{}, statusError(resp.StatusCode, payload)
	}
}

func decodeEnvelope(action string, payload []byte) (models.Envelope, error) {
	var env models.Envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return models.Envelope{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if !env.Success {
		return env, &RejectedError{Action: action, Msg: env.Msg}
	}
	return env, nil
}

func statusError(code int, payload []byte) error {
	e := &StatusError{StatusCode: code, Body: strings.TrimSpace(string(payload))}
	if len(e.Body) > 256 {
		e.Body = e.Body[:256]
	}
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		e.kind = ErrUnauthorized
	case code == http.StatusTooManyRequests || code >= 500:
		e.kind = ErrUnavailable
	default:
		e.kind = ErrRejected
	}
	return e
}

func failureText(err error) string {
	var rejected *RejectedError
	if errors.As(err, &rejected) && rejected.Msg != "" {
		return rejected.Msg
	}
	return err.Error()
}

func (g *HTTPGateway) retryDelay(attempt int, retryAfter string) time.Duration {
	if secs, err := strconv.Atoi(strings.TrimSpace(retryAfter)); err == nil && secs >= 0 {
		d := time.Duration(secs) * time.Second
		if d > g.maxDelay {
			return g.maxDelay
		}
		return d
	}
	d := g.baseDelay << (attempt - 1)
	if d > g.maxDelay || d <= 0 {
		return g.maxDelay
	}
	return d
}

func waitWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
