// Package identity adapts the external identity provider's admin API.
// The core only ever writes role claims back; verification of identities
// happens at the HTTP boundary via signed tokens.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/projectpulse/project-system/internal/core/domain"
)

const requestTimeout = 10 * time.Second

// HTTPProvider propagates role claims via the provider's REST admin API:
// PATCH <baseURL>/users/<externalID>/metadata with a bearer API key.
type HTTPProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
	log     zerolog.Logger
}

// NewHTTPProvider returns a provider adapter for the given admin API.
func NewHTTPProvider(baseURL, apiKey string, log zerolog.Logger) *HTTPProvider {
	return &HTTPProvider{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: requestTimeout},
		log:     log,
	}
}

type metadataPayload struct {
	PublicMetadata map[string]string `json:"public_metadata"`
}

// SetRoleClaim writes the stored role into the subject's public metadata.
func (p *HTTPProvider) SetRoleClaim(ctx context.Context, externalID string, role domain.Role) error {
	body, err := json.Marshal(metadataPayload{
		PublicMetadata: map[string]string{"role": string(role)},
	})
	if err != nil {
		return fmt.Errorf("identity provider: %w", err)
	}

	url := fmt.Sprintf("%s/users/%s/metadata", p.baseURL, externalID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("identity provider: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("identity provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("identity provider: unexpected status %d for %s", resp.StatusCode, externalID)
	}
	return nil
}

// NoopProvider is used when no provider admin API is configured (local
// credential deployments). Claims live only in the record store.
type NoopProvider struct{}

func (NoopProvider) SetRoleClaim(context.Context, string, domain.Role) error {
	return nil
}
