package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/slm-1056101/raven/internal/domain"
)

// Precheck tells the public wizard which submission branch to take.
type Precheck struct {
	UserExists     bool `json:"userExists"`
	AlreadyApplied bool `json:"alreadyApplied"`
}

// PublicCompanies lists all companies for unauthenticated marketplace
// browsing and signup company selection.
func (c *Client) PublicCompanies(ctx context.Context) ([]domain.Company, error) {
	var wires []companyWire
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/public/companies/"}, &wires); err != nil {
		return nil, err
	}
	return companiesToDomain(wires), nil
}

// PublicProperties lists available inventory without authentication.
func (c *Client) PublicProperties(ctx context.Context) ([]domain.Property, error) {
	var wires []propertyWire
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/public/properties/"}, &wires); err != nil {
		return nil, err
	}
	return propertiesToDomain(wires), nil
}

// PrecheckApplication looks up whether the email already has an account
// and whether it already applied for the property.
func (c *Client) PrecheckApplication(ctx context.Context, email, propertyID, companyID string) (*Precheck, error) {
	query := url.Values{}
	query.Set("email", email)
	query.Set("propertyId", propertyID)
	query.Set("companyId", companyID)

	var precheck Precheck
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/api/public/applications/precheck/",
		query:  query,
	}, &precheck)
	if err != nil {
		return nil, err
	}
	return &precheck, nil
}

// CreatePublicApplication submits a fully anonymous application.
func (c *Client) CreatePublicApplication(ctx context.Context, form *Form) (*domain.Application, error) {
	var wire applicationWire
	if err := c.do(ctx, request{method: http.MethodPost, path: "/api/public/applications/", body: form}, &wire); err != nil {
		return nil, err
	}
	application := wire.toDomain()
	return &application, nil
}
