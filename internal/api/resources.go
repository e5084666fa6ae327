package api

import (
	"context"
	"net/http"

	"github.com/slm-1056101/raven/internal/domain"
)

// CRUD endpoints for the four tenant-scoped collections. Updates use PATCH
// and every collection path carries the backend's trailing slash. Create
// and update payloads may be any JSON-encodable value or a *Form for
// multipart uploads (property images, application documents).

func (c *Client) ListCompanies(ctx context.Context, token string) ([]domain.Company, error) {
	var wires []companyWire
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/companies/", token: token}, &wires); err != nil {
		return nil, err
	}
	return companiesToDomain(wires), nil
}

func (c *Client) CreateCompany(ctx context.Context, token string, payload any) (*domain.Company, error) {
	var wire companyWire
	if err := c.do(ctx, request{method: http.MethodPost, path: "/api/companies/", token: token, body: payload}, &wire); err != nil {
		return nil, err
	}
	company := wire.toDomain()
	return &company, nil
}

func (c *Client) UpdateCompany(ctx context.Context, token, id string, payload any) (*domain.Company, error) {
	var wire companyWire
	if err := c.do(ctx, request{method: http.MethodPatch, path: "/api/companies/" + id + "/", token: token, body: payload}, &wire); err != nil {
		return nil, err
	}
	company := wire.toDomain()
	return &company, nil
}

func (c *Client) DeleteCompany(ctx context.Context, token, id string) error {
	return c.do(ctx, request{method: http.MethodDelete, path: "/api/companies/" + id + "/", token: token}, nil)
}

func (c *Client) ListProperties(ctx context.Context, token string) ([]domain.Property, error) {
	var wires []propertyWire
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/properties/", token: token}, &wires); err != nil {
		return nil, err
	}
	return propertiesToDomain(wires), nil
}

func (c *Client) CreateProperty(ctx context.Context, token string, payload any) (*domain.Property, error) {
	var wire propertyWire
	if err := c.do(ctx, request{method: http.MethodPost, path: "/api/properties/", token: token, body: payload}, &wire); err != nil {
		return nil, err
	}
	property := wire.toDomain()
	return &property, nil
}

func (c *Client) UpdateProperty(ctx context.Context, token, id string, payload any) (*domain.Property, error) {
	var wire propertyWire
	if err := c.do(ctx, request{method: http.MethodPatch, path: "/api/properties/" + id + "/", token: token, body: payload}, &wire); err != nil {
		return nil, err
	}
	property := wire.toDomain()
	return &property, nil
}

func (c *Client) DeleteProperty(ctx context.Context, token, id string) error {
	return c.do(ctx, request{method: http.MethodDelete, path: "/api/properties/" + id + "/", token: token}, nil)
}

func (c *Client) ListApplications(ctx context.Context, token string) ([]domain.Application, error) {
	var wires []applicationWire
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/applications/", token: token}, &wires); err != nil {
		return nil, err
	}
	return applicationsToDomain(wires), nil
}

func (c *Client) CreateApplication(ctx context.Context, token string, payload any) (*domain.Application, error) {
	var wire applicationWire
	if err := c.do(ctx, request{method: http.MethodPost, path: "/api/applications/", token: token, body: payload}, &wire); err != nil {
		return nil, err
	}
	application := wire.toDomain()
	return &application, nil
}

func (c *Client) UpdateApplication(ctx context.Context, token, id string, payload any) (*domain.Application, error) {
	var wire applicationWire
	if err := c.do(ctx, request{method: http.MethodPatch, path: "/api/applications/" + id + "/", token: token, body: payload}, &wire); err != nil {
		return nil, err
	}
	application := wire.toDomain()
	return &application, nil
}

func (c *Client) ListUsers(ctx context.Context, token string) ([]domain.User, error) {
	var wires []userWire
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/users/", token: token}, &wires); err != nil {
		return nil, err
	}
	return usersToDomain(wires), nil
}

func (c *Client) UpdateUser(ctx context.Context, token, id string, payload any) (*domain.User, error) {
	var wire userWire
	if err := c.do(ctx, request{method: http.MethodPatch, path: "/api/users/" + id + "/", token: token, body: payload}, &wire); err != nil {
		return nil, err
	}
	user := wire.toDomain()
	return &user, nil
}
