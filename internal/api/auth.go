package api

import (
	"context"
	"net/http"

	"github.com/slm-1056101/raven/internal/domain"
)

type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type SignupRequest struct {
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone"`
	Password   string   `json:"password"`
	CompanyIDs []string `json:"companyIds,omitempty"`
}

type SignupResponse struct {
	Access  string
	Refresh string
	User    domain.User
}

// Login exchanges credentials for a JWT access/refresh pair.
func (c *Client) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	var tokens TokenPair
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/api/auth/token/",
		body:   map[string]string{"email": email, "password": password},
	}, &tokens)
	if err != nil {
		return nil, err
	}
	return &tokens, nil
}

// RefreshToken exchanges a refresh token for a fresh access token.
func (c *Client) RefreshToken(ctx context.Context, refresh string) (*TokenPair, error) {
	var tokens TokenPair
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/api/auth/token/refresh/",
		body:   map[string]string{"refresh": refresh},
	}, &tokens)
	if err != nil {
		return nil, err
	}
	return &tokens, nil
}

// Me returns the authenticated user's profile, including the active
// company and the full membership list.
func (c *Client) Me(ctx context.Context, token string) (*domain.User, error) {
	var wire userWire
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/api/auth/me/",
		token:  token,
	}, &wire)
	if err != nil {
		return nil, err
	}
	user := wire.toDomain()
	return &user, nil
}

// Signup creates a client account and returns tokens plus the created user.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (*SignupResponse, error) {
	var wire struct {
		Access  string   `json:"access"`
		Refresh string   `json:"refresh"`
		User    userWire `json:"user"`
	}
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/api/auth/signup/",
		body:   req,
	}, &wire)
	if err != nil {
		return nil, err
	}
	return &SignupResponse{
		Access:  wire.Access,
		Refresh: wire.Refresh,
		User:    wire.User.toDomain(),
	}, nil
}

// SetActiveCompany switches the user's active tenant scope and returns the
// updated profile.
func (c *Client) SetActiveCompany(ctx context.Context, token, companyID string) (*domain.User, error) {
	var wire userWire
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/api/auth/active-company/",
		token:  token,
		body:   map[string]string{"companyId": companyID},
	}, &wire)
	if err != nil {
		return nil, err
	}
	user := wire.toDomain()
	return &user, nil
}

// Health probes backend liveness.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, request{
		method: http.MethodGet,
		path:   "/api/health/",
	}, nil)
}
