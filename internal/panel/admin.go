// Package panel is the operation surface behind the dashboard screens:
// plain CRUD over the session store's mutators with required-field checks
// on submit, nothing more.
package panel

import (
	"context"
	"errors"
	"fmt"

	"github.com/slm-1056101/raven/internal/domain"
	"github.com/slm-1056101/raven/internal/session"
	"github.com/slm-1056101/raven/pkg/validator"
)

var ErrNotAuthenticated = errors.New("not authenticated")

// Admin manages the inventory, applications and users of the active
// company.
type Admin struct {
	store    *session.Store
	validate *validator.Validator
}

func NewAdmin(store *session.Store, v *validator.Validator) *Admin {
	return &Admin{store: store, validate: v}
}

// PropertyInput is the create/edit form for a property. Which optional
// fields are required depends on the property type.
type PropertyInput struct {
	Title            string                `json:"title" validate:"required"`
	Description      string                `json:"description"`
	Location         string                `json:"location" validate:"required"`
	PlotNumber       string                `json:"plotNumber"`
	RoomNumber       string                `json:"roomNumber"`
	Price            float64               `json:"price" validate:"required,gt=0"`
	Size             float64               `json:"size"`
	Status           domain.PropertyStatus `json:"status"`
	Type             domain.PropertyType   `json:"type" validate:"required"`
	ImageURL         string                `json:"imageUrl"`
	Features         []string              `json:"features"`
	FinancingMethods []string              `json:"financingMethods"`
}

// checkProperty runs the static tags plus the type-dependent rules: land
// inventory carries a plot number and size, rental units a room number,
// vehicles neither.
func (a *Admin) checkProperty(in *PropertyInput) error {
	if err := a.validate.Validate(in); err != nil {
		return err
	}
	switch in.Type {
	case domain.PropertyTypeLandForSale, domain.PropertyTypeAgricultural:
		if in.PlotNumber == "" {
			return errors.New("plotNumber is required for land inventory")
		}
		if in.Size <= 0 {
			return errors.New("size is required for land inventory")
		}
	case domain.PropertyTypeResidentialRental, domain.PropertyTypeCommercialRental:
		if in.RoomNumber == "" {
			return errors.New("roomNumber is required for rental units")
		}
	}
	return nil
}

func (a *Admin) propertyPayload(in *PropertyInput) map[string]any {
	status := in.Status
	if status == "" {
		status = domain.PropertyStatusAvailable
	}
	payload := map[string]any{
		"title":       in.Title,
		"description": in.Description,
		"location":    in.Location,
		"price":       in.Price,
		"size":        in.Size,
		"status":      status,
		"type":        in.Type,
	}
	if in.PlotNumber != "" {
		payload["plotNumber"] = in.PlotNumber
	}
	if in.RoomNumber != "" {
		payload["roomNumber"] = in.RoomNumber
	}
	if in.ImageURL != "" {
		payload["imageUrl"] = in.ImageURL
	}
	if in.Features != nil {
		payload["features"] = in.Features
	}
	if in.FinancingMethods != nil {
		payload["financingMethods"] = in.FinancingMethods
	}
	if company := a.store.CurrentCompany(); company != nil {
		payload["companyId"] = company.ID
	}
	return payload
}

func (a *Admin) CreateProperty(ctx context.Context, in PropertyInput) (*domain.Property, error) {
	token := a.store.AuthToken()
	if token == "" {
		return nil, ErrNotAuthenticated
	}
	if err := a.checkProperty(&in); err != nil {
		return nil, err
	}
	return a.store.CreateProperty(ctx, token, a.propertyPayload(&in))
}

func (a *Admin) UpdateProperty(ctx context.Context, id string, in PropertyInput) (*domain.Property, error) {
	token := a.store.AuthToken()
	if token == "" {
		return nil, ErrNotAuthenticated
	}
	if err := a.checkProperty(&in); err != nil {
		return nil, err
	}
	return a.store.UpdateProperty(ctx, token, id, a.propertyPayload(&in))
}

func (a *Admin) DeleteProperty(ctx context.Context, id string) error {
	token := a.store.AuthToken()
	if token == "" {
		return ErrNotAuthenticated
	}
	return a.store.DeleteProperty(ctx, token, id)
}

// ApproveApplication and RejectApplication are the only transitions the
// review screen offers; both are terminal.
func (a *Admin) ApproveApplication(ctx context.Context, id string) (*domain.Application, error) {
	return a.review(ctx, id, domain.ApplicationStatusApproved)
}

func (a *Admin) RejectApplication(ctx context.Context, id string) (*domain.Application, error) {
	return a.review(ctx, id, domain.ApplicationStatusRejected)
}

func (a *Admin) review(ctx context.Context, id string, status domain.ApplicationStatus) (*domain.Application, error) {
	token := a.store.AuthToken()
	if token == "" {
		return nil, ErrNotAuthenticated
	}
	return a.store.ReviewApplication(ctx, token, id, status)
}

// SetUserStatus activates or deactivates an account within the company
// scope.
func (a *Admin) SetUserStatus(ctx context.Context, id string, status domain.UserStatus) (*domain.User, error) {
	token := a.store.AuthToken()
	if token == "" {
		return nil, ErrNotAuthenticated
	}
	if status != domain.UserStatusActive && status != domain.UserStatusInactive {
		return nil, fmt.Errorf("invalid user status %q", status)
	}
	return a.store.UpdateUser(ctx, token, id, map[string]string{"status": string(status)})
}
