package ai

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := NewConfig()
		assert.Equal(t, DefaultConfig(), cfg)
		assert.Equal(t, DefaultHost, cfg.EmbeddingHost)
		assert.Equal(t, DefaultHost, cfg.ClassifierHost)
		assert.Equal(t, "embeddinggemma", cfg.EmbeddingModel)
		assert.Equal(t, "qwen2.5:3b", cfg.ClassifierModel)
		assert.Equal(t, 3, cfg.MaxAttempts)
	})

	t.Run("options apply in order", func(t *testing.T) {
		cfg := NewConfig(
			WithHost("http://shared:8080/v1"),
			WithClassifierHost("http://chat:9000/v1"),
			WithEmbeddingModel("nomic-embed-text"),
			WithClassifierModel("llama3.2"),
			WithAPIKey("sk-test"),
			WithMaxAttempts(5),
		)
		assert.Equal(t, "http://shared:8080/v1", cfg.EmbeddingHost)
		assert.Equal(t, "http://chat:9000/v1", cfg.ClassifierHost)
		assert.Equal(t, "nomic-embed-text", cfg.EmbeddingModel)
		assert.Equal(t, "llama3.2", cfg.ClassifierModel)
		assert.Equal(t, "sk-test", cfg.APIKey)
		assert.Equal(t, 5, cfg.MaxAttempts)
	})
}

func TestConfigToken(t *testing.T) {
	assert.Equal(t, "none", NewConfig().Token())
	assert.Equal(t, "sk-live", NewConfig(WithAPIKey("sk-live")).Token())
}

func TestConfigNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"http://localhost:11434", "http://localhost:11434/v1"},
		{"http://localhost:11434/", "http://localhost:11434/v1"},
		{"http://localhost:11434/v1", "http://localhost:11434/v1"},
		{"  https://api.example.com  ", "https://api.example.com/v1"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			cfg := NewConfig(WithHost(tt.in))
			cfg.Normalize()
			assert.Equal(t, tt.want, cfg.EmbeddingHost)
			assert.Equal(t, tt.want, cfg.ClassifierHost)
		})
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    []ConfigOption
		wantErr string
	}{
		{name: "defaults"},
		{name: "host without v1", opts: []ConfigOption{WithHost("http://localhost:11434")}},
		{name: "attempts at lower bound", opts: []ConfigOption{WithMaxAttempts(1)}},
		{name: "attempts at upper bound", opts: []ConfigOption{WithMaxAttempts(10)}},
		{name: "missing embedding host", opts: []ConfigOption{WithEmbeddingHost("")}, wantErr: "EmbeddingHost"},
		{name: "missing classifier host", opts: []ConfigOption{WithClassifierHost("")}, wantErr: "ClassifierHost"},
		{name: "host is not a url", opts: []ConfigOption{WithEmbeddingHost("not a host")}, wantErr: "EmbeddingHost"},
		{name: "missing embedding model", opts: []ConfigOption{WithEmbeddingModel("")}, wantErr: "EmbeddingModel"},
		{name: "missing classifier model", opts: []ConfigOption{WithClassifierModel("")}, wantErr: "ClassifierModel"},
		{name: "attempts too low", opts: []ConfigOption{WithMaxAttempts(0)}, wantErr: "MaxAttempts"},
		{name: "attempts too high", opts: []ConfigOption{WithMaxAttempts(11)}, wantErr: "MaxAttempts"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewConfig(tt.opts...).Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateNormalizes(t *testing.T) {
	cfg := NewConfig(WithEmbeddingHost("http://embed:8080/"), WithClassifierHost("http://chat:9000"))
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "http://embed:8080/v1", cfg.EmbeddingHost)
	assert.Equal(t, "http://chat:9000/v1", cfg.ClassifierHost)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	t.Run("partial file keeps defaults", func(t *testing.T) {
		path := filepath.Join(dir, "ai.yaml")
		content := "embedding_host: http://embed:8080\nclassifier_model: llama3.2\napi_key: sk-file\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		cfg, err := LoadConfig(path, WithMaxAttempts(4))
		require.NoError(t, err)
		assert.Equal(t, "http://embed:8080", cfg.EmbeddingHost)
		assert.Equal(t, DefaultHost, cfg.ClassifierHost)
		assert.Equal(t, DefaultEmbeddingModel, cfg.EmbeddingModel)
		assert.Equal(t, "llama3.2", cfg.ClassifierModel)
		assert.Equal(t, "sk-file", cfg.Token())
		assert.Equal(t, 4, cfg.MaxAttempts)
		require.NoError(t, cfg.Validate())
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("max_attempts: [1, 2\n"), 0o644))

		_, err := LoadConfig(path)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(dir, "missing.yaml"))
		assert.Error(t, err)
	})
}
