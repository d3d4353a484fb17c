package client

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	DefaultURL     = "https://api.veryfi.com/api/"
	DefaultVersion = "v8"

	DefaultTimeout = 120 * time.Second
)

const userAgent = "veryfi-go/1.0.0"

type RequestConfig struct {
	Client *http.Client

	Timeout time.Duration

	URL     string
	Version string

	ClientID     string
	ClientSecret string

	Username string
	APIKey   string

	Limiter *rate.Limiter
}

type RequestOption func(*RequestConfig)

func newRequestConfig(opts ...RequestOption) *RequestConfig {
	c := &RequestConfig{
		Client: &http.Client{
			Timeout: DefaultTimeout,
		},

		URL:     DefaultURL,
		Version: DefaultVersion,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.Timeout > 0 {
		// copy so a caller-provided client is left untouched
		client := *c.Client
		client.Timeout = c.Timeout

		c.Client = &client
	}

	return c
}

func WithURL(url string) RequestOption {
	return func(c *RequestConfig) {
		c.URL = url
	}
}

func WithVersion(version string) RequestOption {
	return func(c *RequestConfig) {
		c.Version = version
	}
}

func WithCredentials(clientID, username, apiKey string) RequestOption {
	return func(c *RequestConfig) {
		c.ClientID = clientID
		c.Username = username
		c.APIKey = apiKey
	}
}

func WithClientSecret(secret string) RequestOption {
	return func(c *RequestConfig) {
		c.ClientSecret = secret
	}
}

func WithClient(client *http.Client) RequestOption {
	return func(c *RequestConfig) {
		c.Client = client
	}
}

func WithTimeout(timeout time.Duration) RequestOption {
	return func(c *RequestConfig) {
		c.Timeout = timeout
	}
}

func WithLimiter(limiter *rate.Limiter) RequestOption {
	return func(c *RequestConfig) {
		c.Limiter = limiter
	}
}

func (c *RequestConfig) endpoint(path string) string {
	return strings.TrimRight(c.URL, "/") + "/" + c.Version + "/partner" + path
}

// Signature computes the request signature the API expects alongside
// X-Veryfi-Request-Timestamp: a base64 HMAC-SHA256 over the timestamp and
// the request parameters, keys in sorted order. The same HMAC validates
// webhook notifications.
func Signature(secret string, params map[string]any, timestamp string) string {
	keys := make([]string, 0, len(params))

	for k := range params {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	payload := "timestamp:" + timestamp

	for _, k := range keys {
		payload += fmt.Sprintf(",%s:%v", k, params[k])
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))

	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
