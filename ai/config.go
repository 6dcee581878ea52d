// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ai

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	DefaultHost            = "http://localhost:11434/v1"
	DefaultEmbeddingModel  = "embeddinggemma"
	DefaultClassifierModel = "qwen2.5:3b"
	DefaultMaxAttempts     = 3

	// localToken is sent to servers that do not check credentials.
	localToken = "none"
)

// ErrInvalidConfig wraps every Config validation failure.
var ErrInvalidConfig = errors.New("invalid ai config")

var validate = validator.New()

// Config selects the OpenAI-compatible servers and models behind the
// embedder, the sentiment classifier and the query interpreter. The
// classifier model serves both chat-based services.
type Config struct {
	EmbeddingHost   string `yaml:"embedding_host" validate:"required,url"`
	ClassifierHost  string `yaml:"classifier_host" validate:"required,url"`
	EmbeddingModel  string `yaml:"embedding_model" validate:"required"`
	ClassifierModel string `yaml:"classifier_model" validate:"required"`

	// APIKey is optional; local servers accept any token.
	APIKey string `yaml:"api_key"`

	// MaxAttempts bounds how often a chat completion is retried when the
	// model answers with JSON that cannot be decoded.
	MaxAttempts int `yaml:"max_attempts" validate:"gte=1,lte=10"`
}

type ConfigOption func(*Config)

func WithEmbeddingHost(host string) ConfigOption {
	return func(c *Config) { c.EmbeddingHost = host }
}

func WithClassifierHost(host string) ConfigOption {
	return func(c *Config) { c.ClassifierHost = host }
}

// WithHost points both services at one server.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
		c.ClassifierHost = host
	}
}

func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) { c.EmbeddingModel = model }
}

func WithClassifierModel(model string) ConfigOption {
	return func(c *Config) { c.ClassifierModel = model }
}

func WithAPIKey(key string) ConfigOption {
	return func(c *Config) { c.APIKey = key }
}

func WithMaxAttempts(n int) ConfigOption {
	return func(c *Config) { c.MaxAttempts = n }
}

// DefaultConfig targets a local Ollama server.
func DefaultConfig() *Config {
	return &Config{
		EmbeddingHost:   DefaultHost,
		ClassifierHost:  DefaultHost,
		EmbeddingModel:  DefaultEmbeddingModel,
		ClassifierModel: DefaultClassifierModel,
		MaxAttempts:     DefaultMaxAttempts,
	}
}

// NewConfig applies opts on top of DefaultConfig.
//
//	cfg := NewConfig(
//	    WithEmbeddingHost("http://localhost:11434"),
//	    WithClassifierHost("http://gpu-box:8000/v1"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	cfg.apply(opts)
	return cfg
}

// LoadConfig reads a YAML config file. Keys missing from the file keep their
// defaults, and opts are applied after the file.
func LoadConfig(path string, opts ...ConfigOption) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ai config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
	}
	cfg.apply(opts)
	return cfg, nil
}

func (c *Config) apply(opts []ConfigOption) {
	for _, opt := range opts {
		opt(c)
	}
}

// Token returns the bearer token to send, substituting a placeholder when no
// key is configured.
func (c *Config) Token() string {
	if c.APIKey == "" {
		return localToken
	}
	return c.APIKey
}

// Normalize appends the /v1 path OpenAI-compatible servers expect to any
// host that lacks it.
func (c *Config) Normalize() {
	c.EmbeddingHost = normalizeHost(c.EmbeddingHost)
	c.ClassifierHost = normalizeHost(c.ClassifierHost)
}

func normalizeHost(host string) string {
	host = strings.TrimSpace(host)
	if host == "" || strings.HasSuffix(host, "/v1") {
		return host
	}
	return strings.TrimSuffix(host, "/") + "/v1"
}

// Validate normalizes the config, then checks it.
func (c *Config) Validate() error {
	c.Normalize()

	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	problems := make([]string, len(fieldErrs))
	for i, fe := range fieldErrs {
		problems[i] = fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag())
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, ", "))
}
