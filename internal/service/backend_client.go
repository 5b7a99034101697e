package service

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"golang.org/x/oauth2"

	"studyaid/internal/config"
)

const (
	backendURLRule   = "required,startswith=https://"
	backendTokenRule = "gt=20"
)

// BackendClient is the cloud sync integration point. It is built from
// config and reports whether the service is configured; it never sends requests.
type BackendClient struct {
	configured bool
	httpClient *http.Client
}

// NewBackendClient builds the client. An incomplete or invalid config
// yields an unconfigured client rather than an error.
func NewBackendClient(cfg config.BackendConfig) *BackendClient {
	c := &BackendClient{}
	if !backendConfigValid(cfg) {
		return c
	}
	c.configured = true
	c.httpClient = oauth2.NewClient(context.Background(), oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: cfg.Token,
		TokenType:   "Bearer",
	}))
	return c
}

func backendConfigValid(cfg config.BackendConfig) bool {
	v := validator.New()
	if err := v.Var(cfg.URL, backendURLRule); err != nil {
		return false
	}
	return v.Var(cfg.Token, backendTokenRule) == nil
}

// Configured reports whether both the URL and token passed validation.
// A nil client is unconfigured.
func (c *BackendClient) Configured() bool {
	return c != nil && c.configured
}

// StatusLabel is the text shown in the page's status element
func (c *BackendClient) StatusLabel() string {
	if c.Configured() {
		return "Cloud sync: configured"
	}
	return "Cloud sync: offline mode"
}

// HTTPClient returns the bearer-authenticated client, or nil when unconfigured
func (c *BackendClient) HTTPClient() *http.Client {
	return c.httpClient
}
