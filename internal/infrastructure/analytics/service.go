// Package analytics provides the default analytics collaborator. Identify
// calls are recorded on the structured logger, and forwarded to the
// configured collection endpoint when one is set.
package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/alexisbeaulieu97/appstart/pkg/startup"
)

var errNotConfigured = errors.New("analytics service not configured")

// Service implements startup.AnalyticsService.
type Service struct {
	mu       sync.Mutex
	logger   startup.Logger
	endpoint string
	client   *http.Client
	ready    bool
}

// New creates an unconfigured Service. Identify calls fail until the
// analytics phase wiring runs Configure.
func New(logger startup.Logger) *Service {
	return &Service{logger: logger}
}

// Configure implements startup.AnalyticsService. It receives the collection
// endpoint from the resolved settings and the authenticated HTTP client
// established by the auth phase.
func (s *Service) Configure(_ context.Context, cfg startup.AnalyticsConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cfg.Config != nil {
		s.endpoint = cfg.Config.AnalyticsURL
	}
	s.client = cfg.HTTPClient
	s.ready = true
	return nil
}

// IdentifyAuthenticatedUser implements startup.AnalyticsService.
func (s *Service) IdentifyAuthenticatedUser(ctx context.Context, userID string) error {
	endpoint, client, err := s.snapshot()
	if err != nil {
		return err
	}
	if s.logger != nil {
		s.logger.Info(ctx, "identify authenticated user", "user_id", userID)
	}
	return post(ctx, client, endpoint, map[string]interface{}{
		"type":    "identify",
		"user_id": userID,
	})
}

// IdentifyAnonymousUser implements startup.AnalyticsService.
func (s *Service) IdentifyAnonymousUser(ctx context.Context) error {
	endpoint, client, err := s.snapshot()
	if err != nil {
		return err
	}
	if s.logger != nil {
		s.logger.Info(ctx, "identify anonymous user")
	}
	return post(ctx, client, endpoint, map[string]interface{}{
		"type":      "identify",
		"anonymous": true,
	})
}

func (s *Service) snapshot() (string, *http.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return "", nil, errNotConfigured
	}
	return s.endpoint, s.client, nil
}

// post ships the payload to the collection endpoint. With no endpoint
// configured the call is log-only and succeeds.
func post(ctx context.Context, client *http.Client, endpoint string, payload map[string]interface{}) error {
	if endpoint == "" {
		return nil
	}
	if client == nil {
		client = http.DefaultClient
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("analytics endpoint returned status %d", resp.StatusCode)
	}
	return nil
}

var _ startup.AnalyticsService = (*Service)(nil)
