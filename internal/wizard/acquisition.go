package wizard

import (
	"context"
	"errors"
	"strconv"

	"github.com/slm-1056101/raven/internal/api"
	"github.com/slm-1056101/raven/internal/domain"
	"github.com/slm-1056101/raven/internal/session"
	"github.com/slm-1056101/raven/internal/view"
	"github.com/slm-1056101/raven/pkg/validator"
)

// Acquisition is the in-portal application form against an already
// identified company and property. Unlike the public flow there is no
// precheck: an authenticated submission goes through the session token,
// an unauthenticated one falls back to the public endpoint and sends the
// visitor to login afterwards.
type Acquisition struct {
	*Wizard

	store    *session.Store
	client   *api.Client
	notify   Notifier
	property *domain.Property
}

func NewAcquisition(store *session.Store, client *api.Client, v *validator.Validator, notify Notifier, property *domain.Property) *Acquisition {
	if notify == nil {
		notify = NopNotifier{}
	}
	user := store.CurrentUser()
	w := New(v, user == nil)
	w.Prefill(user)
	return &Acquisition{
		Wizard:   w,
		store:    store,
		client:   client,
		notify:   notify,
		property: property,
	}
}

func (f *Acquisition) Submit(ctx context.Context) error {
	if f.property == nil {
		f.notify.Error("Missing property")
		return ErrMissingProperty
	}

	companyID := f.property.CompanyID
	if company := f.store.CurrentCompany(); company != nil {
		companyID = company.ID
	}
	if companyID == "" {
		f.notify.Error("Missing company")
		return errors.New("missing company")
	}

	data := f.Form()
	if data.FinancingMethod == "" {
		f.notify.Error("Financing method is required")
		return errors.New("financing method is required")
	}
	if data.IDDocument == nil {
		f.notify.Error("ID Document is required")
		return errors.New("id document is required")
	}
	if data.ProofOfFunds == nil {
		f.notify.Error("Proof of Funds is required")
		return errors.New("proof of funds is required")
	}

	form := api.NewForm()
	form.Set("companyId", companyID)
	form.Set("propertyId", f.property.ID)
	if user := f.store.CurrentUser(); user != nil && user.ID != "" {
		form.Set("userId", user.ID)
	}
	form.Set("applicantName", data.FullName)
	form.Set("applicantEmail", data.Email)
	form.Set("applicantPhone", data.Phone)
	form.Set("applicantAddress", data.Address)
	form.Set("offerAmount", strconv.FormatFloat(data.OfferAmount, 'f', -1, 64))
	form.Set("financingMethod", data.FinancingMethod)
	form.Set("intendedUse", data.IntendedUse)
	form.Set("status", string(domain.ApplicationStatusPending))
	form.AddFile("idDocument", data.IDDocument.Filename, data.IDDocument.Content)
	form.AddFile("proofOfFunds", data.ProofOfFunds.Filename, data.ProofOfFunds.Content)

	if token := f.store.AuthToken(); token != "" {
		if _, err := f.store.CreateApplication(ctx, token, form); err != nil {
			f.notify.Error(err.Error())
			return err
		}
		f.notify.Success("Application submitted successfully!")
		return nil
	}

	if _, err := f.client.CreatePublicApplication(ctx, form); err != nil {
		f.notify.Error(err.Error())
		return err
	}
	f.notify.Success("Application submitted successfully!")
	f.notify.Info("Create an account or log in to manage your properties and applications.")
	f.store.Navigate(view.Login)
	return nil
}
