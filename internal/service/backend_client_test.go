package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"studyaid/internal/config"
)

func TestBackendClientConfigured(t *testing.T) {
	longToken := "abcdefghijklmnopqrstuvwxyz"

	tests := []struct {
		name string
		cfg  config.BackendConfig
		want bool
	}{
		{name: "empty", cfg: config.BackendConfig{}, want: false},
		{name: "valid", cfg: config.BackendConfig{URL: "https://sync.example.com", Token: longToken}, want: true},
		{name: "insecure scheme", cfg: config.BackendConfig{URL: "http://sync.example.com", Token: longToken}, want: false},
		{name: "short token", cfg: config.BackendConfig{URL: "https://sync.example.com", Token: "short"}, want: false},
		{name: "token at threshold", cfg: config.BackendConfig{URL: "https://sync.example.com", Token: longToken[:20]}, want: false},
		{name: "token just over threshold", cfg: config.BackendConfig{URL: "https://sync.example.com", Token: longToken[:21]}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewBackendClient(tt.cfg)
			assert.Equal(t, tt.want, c.Configured())
			if tt.want {
				assert.NotNil(t, c.HTTPClient())
				assert.Equal(t, "Cloud sync: configured", c.StatusLabel())
			} else {
				assert.Nil(t, c.HTTPClient())
				assert.Equal(t, "Cloud sync: offline mode", c.StatusLabel())
			}
		})
	}
}
