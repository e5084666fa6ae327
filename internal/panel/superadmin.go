package panel

import (
	"context"
	"fmt"

	"github.com/slm-1056101/raven/internal/domain"
	"github.com/slm-1056101/raven/internal/session"
	"github.com/slm-1056101/raven/pkg/validator"
)

// SuperAdmin manages tenant companies and accounts across the whole
// platform; it always operates on the unscoped cache.
type SuperAdmin struct {
	store    *session.Store
	validate *validator.Validator
}

func NewSuperAdmin(store *session.Store, v *validator.Validator) *SuperAdmin {
	return &SuperAdmin{store: store, validate: v}
}

type CompanyInput struct {
	Name             string `json:"name" validate:"required"`
	Logo             string `json:"logo"`
	Description      string `json:"description"`
	PrimaryColor     string `json:"primaryColor"`
	SubscriptionPlan string `json:"subscriptionPlan"`
	MaxPlots         int    `json:"maxPlots"`
	ContactEmail     string `json:"contactEmail" validate:"required,email"`
	ContactPhone     string `json:"contactPhone"`
	Address          string `json:"address"`
}

func (in *CompanyInput) payload(status domain.CompanyStatus) map[string]any {
	logo := in.Logo
	if logo == "" {
		logo = domain.DefaultCompanyLogo
	}
	payload := map[string]any{
		"name":         in.Name,
		"logo":         logo,
		"description":  in.Description,
		"contactEmail": in.ContactEmail,
		"contactPhone": in.ContactPhone,
		"address":      in.Address,
	}
	if in.PrimaryColor != "" {
		payload["primaryColor"] = in.PrimaryColor
	}
	if in.SubscriptionPlan != "" {
		payload["subscriptionPlan"] = in.SubscriptionPlan
	}
	if in.MaxPlots > 0 {
		payload["maxPlots"] = in.MaxPlots
	}
	if status != "" {
		payload["status"] = status
	}
	return payload
}

// RegisterCompany creates a tenant in the Pending state; approval is a
// separate step.
func (sa *SuperAdmin) RegisterCompany(ctx context.Context, in CompanyInput) (*domain.Company, error) {
	token := sa.store.AuthToken()
	if token == "" {
		return nil, ErrNotAuthenticated
	}
	if err := sa.validate.Validate(&in); err != nil {
		return nil, err
	}
	return sa.store.CreateCompany(ctx, token, in.payload(domain.CompanyStatusPending))
}

func (sa *SuperAdmin) UpdateCompany(ctx context.Context, id string, in CompanyInput) (*domain.Company, error) {
	token := sa.store.AuthToken()
	if token == "" {
		return nil, ErrNotAuthenticated
	}
	if err := sa.validate.Validate(&in); err != nil {
		return nil, err
	}
	return sa.store.UpdateCompany(ctx, token, id, in.payload(""))
}

func (sa *SuperAdmin) ApproveCompany(ctx context.Context, id string) (*domain.Company, error) {
	return sa.setCompanyStatus(ctx, id, domain.CompanyStatusActive)
}

func (sa *SuperAdmin) ReactivateCompany(ctx context.Context, id string) (*domain.Company, error) {
	return sa.setCompanyStatus(ctx, id, domain.CompanyStatusActive)
}

func (sa *SuperAdmin) DeactivateCompany(ctx context.Context, id string) (*domain.Company, error) {
	return sa.setCompanyStatus(ctx, id, domain.CompanyStatusInactive)
}

func (sa *SuperAdmin) setCompanyStatus(ctx context.Context, id string, status domain.CompanyStatus) (*domain.Company, error) {
	token := sa.store.AuthToken()
	if token == "" {
		return nil, ErrNotAuthenticated
	}
	return sa.store.UpdateCompany(ctx, token, id, map[string]string{"status": string(status)})
}

func (sa *SuperAdmin) DeleteCompany(ctx context.Context, id string) error {
	token := sa.store.AuthToken()
	if token == "" {
		return ErrNotAuthenticated
	}
	return sa.store.DeleteCompany(ctx, token, id)
}

// SetUserRole changes an account's role. Promoting to SuperAdmin drops the
// tenant binding: super admins are never scoped to a company.
func (sa *SuperAdmin) SetUserRole(ctx context.Context, id string, role domain.Role) (*domain.User, error) {
	token := sa.store.AuthToken()
	if token == "" {
		return nil, ErrNotAuthenticated
	}
	switch role {
	case domain.RoleClient, domain.RoleAdmin, domain.RoleSuperAdmin:
	default:
		return nil, fmt.Errorf("invalid role %q", role)
	}
	payload := map[string]any{"role": role}
	if role == domain.RoleSuperAdmin {
		payload["companyId"] = nil
		payload["companyIds"] = []string{}
	}
	return sa.store.UpdateUser(ctx, token, id, payload)
}

func (sa *SuperAdmin) SetUserStatus(ctx context.Context, id string, status domain.UserStatus) (*domain.User, error) {
	token := sa.store.AuthToken()
	if token == "" {
		return nil, ErrNotAuthenticated
	}
	if status != domain.UserStatusActive && status != domain.UserStatusInactive {
		return nil, fmt.Errorf("invalid user status %q", status)
	}
	return sa.store.UpdateUser(ctx, token, id, map[string]string{"status": string(status)})
}
