package service

import (
	"context"
	"errors"
	"time"

	"github.com/xolan/tasktime/internal/secret"
)

// TokenService manages the API token.
type TokenService struct {
	store  secret.Store
	client TaskClient
}

// NewTokenService creates a new TokenService
func NewTokenService(store secret.Store, client TaskClient) *TokenService {
	return &TokenService{store: store, client: client}
}

// Set stores a new token.
func (s *TokenService) Set(token string) error {
	return s.store.Set(token)
}

// Clear removes the stored token.
func (s *TokenService) Clear() error {
	return s.store.Delete()
}

// Token returns the active token. A missing token is reported as an empty
// string so the API client can return its own error.
func (s *TokenService) Token() (string, error) {
	token, err := s.store.Get()
	if errors.Is(err, secret.ErrNoToken) {
		return "", nil
	}
	return token, err
}

// Status reports whether a token is set. When verify is true and a token
// is set, the tracker is asked to accept it.
func (s *TokenService) Status(ctx context.Context, verify bool) (TokenStatus, error) {
	var status TokenStatus

	token, err := s.store.Get()
	switch {
	case errors.Is(err, secret.ErrNoToken):
		return status, nil
	case err != nil:
		return status, err
	}

	status.Set = true
	status.Masked = secret.Mask(token)
	if env, ok := s.store.(interface{ FromEnv() bool }); ok {
		status.FromEnv = env.FromEnv()
	}
	if c, ok := s.client.(interface{ BaseURL() string }); ok {
		status.Tracker = c.BaseURL()
	}

	if verify {
		status.Checked = true
		status.CheckedAt = time.Now()
		status.CheckErr = s.client.Ping(ctx)
		status.Verified = status.CheckErr == nil
	}
	return status, nil
}
