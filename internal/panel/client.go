package panel

import (
	"context"
	"errors"

	"github.com/slm-1056101/raven/internal/domain"
	"github.com/slm-1056101/raven/internal/session"
	"github.com/slm-1056101/raven/internal/view"
)

// ClientPortal is the signed-in applicant's surface: their applications
// joined to the property cache, and company selection for multi-tenant
// memberships.
type ClientPortal struct {
	store *session.Store
}

func NewClientPortal(store *session.Store) *ClientPortal {
	return &ClientPortal{store: store}
}

// ApplicationEntry joins an application to its property. Property is nil
// when the application references inventory that no longer exists; the
// title then reads as a placeholder instead of blowing up the listing.
type ApplicationEntry struct {
	Application domain.Application
	Property    *domain.Property
}

func (e *ApplicationEntry) PropertyTitle() string {
	if e.Property == nil {
		return "(property not found)"
	}
	return e.Property.Title
}

// MyApplications lists the current user's applications in the active
// company scope.
func (c *ClientPortal) MyApplications() ([]ApplicationEntry, error) {
	user := c.store.CurrentUser()
	if user == nil {
		return nil, ErrNotAuthenticated
	}

	var entries []ApplicationEntry
	for _, app := range c.store.CompanyApplications() {
		if app.UserID != user.ID && app.ApplicantEmail != user.Email {
			continue
		}
		entry := ApplicationEntry{Application: app}
		if property, err := c.store.PropertyByID(app.PropertyID); err == nil {
			entry.Property = property
		} else if !errors.Is(err, session.ErrNotFound) {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// SelectCompany switches the active tenant and routes into the portal.
func (c *ClientPortal) SelectCompany(ctx context.Context, companyID string) error {
	if err := c.store.SwitchCompany(ctx, companyID); err != nil {
		return err
	}
	c.store.Navigate(view.Client)
	return nil
}
