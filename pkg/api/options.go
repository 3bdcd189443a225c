package api

import (
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// RetryPolicy bounds retries of idempotent requests after transport
// failures. Delay doubles per attempt starting from BaseDelay.
type RetryPolicy struct {
	// MaxRetries is the number of retries after the initial attempt.
	MaxRetries int
	// BaseDelay is the delay before the first retry.
	BaseDelay time.Duration
}

// DefaultRetryPolicy retries idempotent requests twice with a 250ms base.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxRetries: 2, BaseDelay: 250 * time.Millisecond}
}

// Option configures the API client.
type Option func(*API)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(a *API) {
		if c != nil {
			a.httpClient = c
		}
	}
}

// WithTimeout sets the HTTP timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(a *API) {
		a.httpClient.Timeout = timeout
	}
}

// WithLogger sets the operational logger.
func WithLogger(log *slog.Logger) Option {
	return func(a *API) {
		if log != nil {
			a.log = log
		}
	}
}

// WithUserAgent sets the User-Agent header on outgoing requests.
func WithUserAgent(ua string) Option {
	return func(a *API) {
		a.userAgent = ua
	}
}

// WithRetry sets the retry policy. A zero MaxRetries disables retries.
func WithRetry(policy RetryPolicy) Option {
	return func(a *API) {
		a.retry = policy
	}
}

// CallOption configures a single call.
type CallOption func(*callOptions)

type callOptions struct {
	query  url.Values
	header http.Header
}

func newCallOptions(opts []CallOption) *callOptions {
	co := &callOptions{query: url.Values{}, header: http.Header{}}
	for _, opt := range opts {
		opt(co)
	}
	return co
}

// WithQuery adds a query parameter to the request URL.
func WithQuery(key, value string) CallOption {
	return func(co *callOptions) {
		co.query.Add(key, value)
	}
}

// WithQueryValues merges a set of query parameters into the request URL.
func WithQueryValues(values url.Values) CallOption {
	return func(co *callOptions) {
		for k, vs := range values {
			for _, v := range vs {
				co.query.Add(k, v)
			}
		}
	}
}

// WithHeader adds a request header.
func WithHeader(key, value string) CallOption {
	return func(co *callOptions) {
		co.header.Add(key, value)
	}
}
