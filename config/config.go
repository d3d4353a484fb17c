package config

import (
	"bytes"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/veryfi/veryfi-go/pkg/client"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"
)

type Config struct {
	URL     string
	Version string

	Timeout time.Duration

	ClientID     string
	ClientSecret string

	Username string
	APIKey   string

	limiter *rate.Limiter

	telemetry bool
}

type configFile struct {
	URL     string `yaml:"url"`
	Version string `yaml:"version"`

	Timeout string `yaml:"timeout"`

	Credentials credentialConfig `yaml:"credentials"`

	RateLimit *int `yaml:"rate_limit"`

	Telemetry bool `yaml:"telemetry"`
}

type credentialConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`

	Username string `yaml:"username"`
	APIKey   string `yaml:"api_key"`
}

func Parse(path string) (*Config, error) {
	file, err := parseFile(path)

	if err != nil {
		return nil, err
	}

	if file.Credentials.ClientID == "" {
		return nil, errors.New("missing credentials.client_id")
	}

	if file.Credentials.Username == "" {
		return nil, errors.New("missing credentials.username")
	}

	if file.Credentials.APIKey == "" {
		return nil, errors.New("missing credentials.api_key")
	}

	c := &Config{
		URL:     file.URL,
		Version: file.Version,

		ClientID:     file.Credentials.ClientID,
		ClientSecret: file.Credentials.ClientSecret,

		Username: file.Credentials.Username,
		APIKey:   file.Credentials.APIKey,

		limiter: createLimiter(file.RateLimit),

		telemetry: file.Telemetry,
	}

	if file.Timeout != "" {
		timeout, err := time.ParseDuration(file.Timeout)

		if err != nil {
			return nil, err
		}

		c.Timeout = timeout
	}

	return c, nil
}

func parseFile(path string) (*configFile, error) {
	data, err := os.ReadFile(path)

	if err != nil {
		return nil, err
	}

	data = []byte(os.ExpandEnv(string(data)))

	var config configFile

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func createLimiter(limit *int) *rate.Limiter {
	if limit == nil {
		return nil
	}

	return rate.NewLimiter(rate.Limit(*limit), *limit)
}

func (c *Config) Options() []client.RequestOption {
	options := []client.RequestOption{}

	if c.telemetry {
		options = append(options, client.WithClient(&http.Client{
			Timeout: client.DefaultTimeout,

			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}))
	}

	if c.URL != "" {
		options = append(options, client.WithURL(c.URL))
	}

	if c.Version != "" {
		options = append(options, client.WithVersion(c.Version))
	}

	if c.Timeout > 0 {
		options = append(options, client.WithTimeout(c.Timeout))
	}

	if c.ClientSecret != "" {
		options = append(options, client.WithClientSecret(c.ClientSecret))
	}

	if c.limiter != nil {
		options = append(options, client.WithLimiter(c.limiter))
	}

	return options
}

func (c *Config) Client() *client.Client {
	return client.New(c.ClientID, c.Username, c.APIKey, c.Options()...)
}
