package wizard

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/slm-1056101/raven/internal/api"
	"github.com/slm-1056101/raven/internal/domain"
	"github.com/slm-1056101/raven/internal/session"
	"github.com/slm-1056101/raven/internal/view"
	"github.com/slm-1056101/raven/pkg/validator"
)

var (
	ErrMissingProperty = errors.New("missing property")

	// ErrOrphanedSignup marks the known gap in the public submission
	// chain: the inline signup succeeded but a later call failed, leaving
	// an account with no application. There is no client-side
	// compensation; the backend owns cleanup.
	ErrOrphanedSignup = errors.New("account created but application submission failed")
)

// PublicFlow is the marketplace application form: the visitor picked a
// company and property without being logged in, so submission uses the
// public precheck to pick one of three branches (already applied,
// existing account, or inline signup).
type PublicFlow struct {
	*Wizard

	store  *session.Store
	client *api.Client
	notify Notifier
}

func NewPublicFlow(store *session.Store, client *api.Client, v *validator.Validator, notify Notifier) *PublicFlow {
	if notify == nil {
		notify = NopNotifier{}
	}
	user := store.CurrentUser()
	w := New(v, user == nil)
	w.Prefill(user)
	return &PublicFlow{
		Wizard: w,
		store:  store,
		client: client,
		notify: notify,
	}
}

// Submit runs the full pipeline: business-rule checks, precheck, optional
// inline signup, multipart POST, cache refresh and routing. Every failure
// surfaces as a single notification; nothing is retried automatically.
func (f *PublicFlow) Submit(ctx context.Context) error {
	property := f.store.PublicProperty()
	if property == nil {
		f.notify.Error("Missing property")
		return ErrMissingProperty
	}

	data := f.Form()
	user := f.store.CurrentUser()

	if err := f.checkSubmittable(property, data, user); err != nil {
		return err
	}

	email := strings.ToLower(strings.TrimSpace(f.applicantEmail(data, user)))

	targetCompanyID := f.store.PublicCompanyID()
	if targetCompanyID == "" {
		targetCompanyID = property.CompanyID
	}

	precheck, err := f.client.PrecheckApplication(ctx, email, property.ID, targetCompanyID)
	if err != nil {
		f.notify.Error(err.Error())
		return err
	}

	if precheck.AlreadyApplied {
		if targetCompanyID != "" {
			f.store.SetIntendedCompanyID(targetCompanyID)
		}
		f.notify.Info("Already applied for the inventory, please login to track progress")
		if user == nil {
			f.store.Navigate(view.Login)
		}
		return nil
	}

	var effectiveToken string
	signedUp := false

	if user == nil && !precheck.UserExists {
		token, err := f.signupInline(ctx, data, email)
		if err != nil {
			f.notify.Error(err.Error())
			return err
		}
		effectiveToken = token
		signedUp = true
	} else {
		effectiveToken = f.store.AuthToken()
	}

	form := f.buildForm(property, targetCompanyID, email, data)

	if effectiveToken != "" {
		if _, err := f.store.CreateApplication(ctx, effectiveToken, form); err != nil {
			// The store mutator and the raw endpoint hit the same path;
			// the retry mirrors the original client's defensive fallback.
			if _, err := f.client.CreateApplication(ctx, effectiveToken, form); err != nil {
				if signedUp {
					err = fmt.Errorf("%w: %s", ErrOrphanedSignup, err)
				}
				f.notify.Error(err.Error())
				return err
			}
		}
		if snap, err := f.store.RefreshAll(ctx, effectiveToken, session.RefreshOptions{}); err == nil {
			f.store.Hydrate(snap)
		}
	} else {
		if _, err := f.client.CreatePublicApplication(ctx, form); err != nil {
			f.notify.Error(err.Error())
			return err
		}
	}

	if targetCompanyID != "" {
		f.store.SetIntendedCompanyID(targetCompanyID)
	}

	if user == nil && precheck.UserExists {
		// Existing client: send them to login after submitting.
		f.notify.Success("Application submitted, please login to track application")
		f.store.Navigate(view.Login)
		return nil
	}

	f.notify.Success("Application submitted")

	// Newly signed-up or already authenticated: straight to the portal.
	f.store.Navigate(view.Client)
	return nil
}

// checkSubmittable enforces the type-dependent requirements before any
// network call goes out.
func (f *PublicFlow) checkSubmittable(property *domain.Property, data *Form, user *domain.User) error {
	if data.FinancingMethod == "" {
		f.notify.Error("Financing method is required")
		return errors.New("financing method is required")
	}
	if !validFinancingMethod(data.FinancingMethod, property.Type) {
		f.notify.Error("Financing method is not offered for this inventory")
		return fmt.Errorf("financing method %q not offered for %s", data.FinancingMethod, property.Type)
	}
	if data.IDDocument == nil {
		f.notify.Error("ID Document is required")
		return errors.New("id document is required")
	}
	if f.applicantEmail(data, user) == "" {
		f.notify.Error("Please enter your email")
		return errors.New("email is required")
	}
	if user == nil && data.Password == "" {
		f.notify.Error("Please enter your password")
		return errors.New("password is required")
	}
	if property.Type.IsRentalType() {
		if data.StartDate == "" {
			f.notify.Error("Start date is required")
			return errors.New("start date is required")
		}
		if data.EndDate == "" {
			f.notify.Error("End date is required")
			return errors.New("end date is required")
		}
	}
	if property.Type.IsCarRental() && data.PickupTime == "" {
		f.notify.Error("Pickup time is required")
		return errors.New("pickup time is required")
	}
	return nil
}

func (f *PublicFlow) applicantEmail(data *Form, user *domain.User) string {
	if user != nil && user.Email != "" {
		return user.Email
	}
	if data.Username != "" {
		return data.Username
	}
	return data.Email
}

// signupInline registers the visitor mid-submission, adopts the returned
// token as the session token and hydrates the fresh account's data.
func (f *PublicFlow) signupInline(ctx context.Context, data *Form, email string) (string, error) {
	resp, err := f.client.Signup(ctx, api.SignupRequest{
		Name:     strings.TrimSpace(data.FullName),
		Email:    email,
		Phone:    strings.TrimSpace(data.Phone),
		Password: data.Password,
	})
	if err != nil {
		return "", err
	}

	f.store.SetAuthToken(resp.Access)

	me, err := f.client.Me(ctx, resp.Access)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrOrphanedSignup, err)
	}
	snap, err := f.store.RefreshAll(ctx, resp.Access, session.RefreshOptions{
		IncludeUsers: me.Role != domain.RoleClient,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrOrphanedSignup, err)
	}
	f.store.Hydrate(snap)
	f.store.SetCurrentUser(me)

	return resp.Access, nil
}

func (f *PublicFlow) buildForm(property *domain.Property, companyID, email string, data *Form) *api.Form {
	form := api.NewForm()
	form.Set("propertyId", property.ID)
	form.Set("companyId", companyID)
	form.Set("applicantName", data.FullName)
	if data.Surname != "" {
		form.Set("surname", data.Surname)
	}
	form.Set("applicantEmail", email)
	form.Set("applicantPhone", data.Phone)
	form.Set("applicantAddress", data.Address)
	form.Set("offerAmount", strconv.FormatFloat(data.OfferAmount, 'f', -1, 64))
	form.Set("financingMethod", data.FinancingMethod)
	form.Set("intendedUse", data.IntendedUse)

	if property.Type.IsRentalType() {
		if data.StartDate != "" {
			form.Set("startDate", data.StartDate)
		}
		if data.EndDate != "" {
			form.Set("endDate", data.EndDate)
		}
	}
	if property.Type.IsCarRental() && data.PickupTime != "" {
		form.Set("pickupTime", data.PickupTime)
	}

	if data.IDDocument != nil {
		form.AddFile("idDocument", data.IDDocument.Filename, data.IDDocument.Content)
	}
	if data.ProofOfFunds != nil {
		form.AddFile("proofOfFunds", data.ProofOfFunds.Filename, data.ProofOfFunds.Content)
	}
	return form
}
