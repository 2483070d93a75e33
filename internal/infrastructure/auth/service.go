// Package auth provides the default authentication collaborator: an
// in-process session holder that hosts seed from their own session source
// (cookie, keychain, test fixture). It satisfies the sequencer's contract,
// including the forced-login redirect and the authenticated HTTP client.
package auth

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"sync"

	"github.com/alexisbeaulieu97/appstart/pkg/startup"
)

var errNoSession = errors.New("no authenticated session")

// Service implements startup.AuthService.
type Service struct {
	mu      sync.Mutex
	cfg     startup.AuthConfig
	user    *startup.AuthenticatedUser
	token   string
	profile map[string]string
}

// New creates a Service with no session.
func New() *Service {
	return &Service{}
}

// SeedSession installs a session token and user record, as a host would
// after reading its session cookie.
func (s *Service) SeedSession(token string, user *startup.AuthenticatedUser) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = user
}

// SeedProfile installs the extra account fields that hydration fetches.
func (s *Service) SeedProfile(profile map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = profile
}

// Configure implements startup.AuthService.
func (s *Service) Configure(_ context.Context, cfg startup.AuthConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
	return nil
}

// EnsureAuthenticatedUser implements startup.AuthService. Without a session
// it fails with a redirect marker pointing at the login flow, carrying
// returnURL as the post-login target; navigation away is the intended
// outcome, not a fault.
func (s *Service) EnsureAuthenticatedUser(_ context.Context, returnURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user != nil {
		return nil
	}
	return startup.NewRedirectError(s.loginLocation(returnURL), errNoSession)
}

// FetchAuthenticatedUser implements startup.AuthService. It resolves whether
// or not a session exists.
func (s *Service) FetchAuthenticatedUser(_ context.Context) error {
	return nil
}

// HydrateAuthenticatedUser implements startup.AuthService. It copies the
// seeded profile fields onto the resolved user.
func (s *Service) HydrateAuthenticatedUser(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	if email, ok := s.profile["email"]; ok && s.user.Email == "" {
		s.user.Email = email
	}
	if username, ok := s.profile["username"]; ok && s.user.Username == "" {
		s.user.Username = username
	}
	return nil
}

// AuthenticatedUser implements startup.AuthService. Callers treat the record
// as a read-only snapshot.
func (s *Service) AuthenticatedUser() *startup.AuthenticatedUser {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	snapshot := *s.user
	return &snapshot
}

// AuthenticatedHTTPClient implements startup.AuthService. The returned
// client attaches the session token to every request.
func (s *Service) AuthenticatedHTTPClient() *http.Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &http.Client{Transport: &bearerTransport{token: s.token}}
}

func (s *Service) loginLocation(returnURL string) string {
	loginURL := "/login"
	if s.cfg.Config != nil && s.cfg.Config.LoginURL != "" {
		loginURL = s.cfg.Config.LoginURL
	}
	if returnURL == "" {
		return loginURL
	}
	return loginURL + "?next=" + url.QueryEscape(returnURL)
}

// bearerTransport injects the session token as a bearer credential.
type bearerTransport struct {
	token string
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.token != "" {
		clone := req.Clone(req.Context())
		clone.Header.Set("Authorization", "Bearer "+t.token)
		req = clone
	}
	return http.DefaultTransport.RoundTrip(req)
}

var _ startup.AuthService = (*Service)(nil)
