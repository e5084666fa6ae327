// Package wizard is the multi-step application form: a four-step machine
// that validates only the current step's fields before advancing, plus the
// two submission flows built on it (the in-portal acquisition form and the
// public marketplace form with its precheck branching).
package wizard

import (
	"strconv"
	"strings"

	"github.com/slm-1056101/raven/internal/domain"
	"github.com/slm-1056101/raven/pkg/validator"
)

type Step int

const (
	StepPersonalInfo Step = 1
	StepProperty     Step = 2
	StepFinancial    Step = 3
	StepDocuments    Step = 4
)

// Attachment is a file picked for upload.
type Attachment struct {
	Filename string
	Content  []byte
}

// Form holds every field across the four steps. Rental period and pickup
// time are validated at submit because their required-ness depends on the
// property type, not on the step.
type Form struct {
	FullName        string  `json:"fullName" validate:"required"`
	Surname         string  `json:"surname" validate:"required"`
	Email           string  `json:"email" validate:"omitempty,email"`
	Username        string  `json:"username" validate:"required,email"`
	Password        string  `json:"password" validate:"required"`
	Phone           string  `json:"phone" validate:"required"`
	Address         string  `json:"address" validate:"required"`
	IntendedUse     string  `json:"intendedUse" validate:"required"`
	OfferAmount     float64 `json:"offerAmount" validate:"required"`
	FinancingMethod string  `json:"financingMethod" validate:"required"`
	StartDate       string  `json:"startDate"`
	EndDate         string  `json:"endDate"`
	PickupTime      string  `json:"pickupTime"`

	IDDocument   *Attachment `json:"-"`
	ProofOfFunds *Attachment `json:"-"`
}

// Wizard advances a Form through the four steps, one step at a time.
type Wizard struct {
	validate *validator.Validator
	form     Form
	step     Step

	// requireAccount adds the password field to step one for visitors
	// without an account.
	requireAccount bool
}

func New(v *validator.Validator, requireAccount bool) *Wizard {
	return &Wizard{
		validate:       v,
		step:           StepPersonalInfo,
		requireAccount: requireAccount,
	}
}

func (w *Wizard) Form() *Form {
	return &w.form
}

func (w *Wizard) Step() Step {
	return w.step
}

// Prefill copies applicant fields from an authenticated user.
func (w *Wizard) Prefill(u *domain.User) {
	if u == nil {
		return
	}
	if u.Name != "" {
		w.form.FullName = u.Name
	}
	if u.Email != "" {
		w.form.Email = u.Email
		w.form.Username = u.Email
	}
	if u.Phone != "" {
		w.form.Phone = u.Phone
	}
}

// SyncValues applies raw input values that bypassed the reactive change
// path (the browser-autofill problem in the original UI). Empty values
// never clobber what is already set.
func (w *Wizard) SyncValues(values map[string]string) {
	for name, value := range values {
		if value == "" {
			continue
		}
		switch name {
		case "fullName":
			w.form.FullName = value
		case "surname":
			w.form.Surname = value
		case "phone":
			w.form.Phone = value
		case "address":
			w.form.Address = value
		case "intendedUse":
			w.form.IntendedUse = value
		case "offerAmount":
			if n, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
				w.form.OfferAmount = n
			}
		}
	}
}

// Next validates the current step's fields and advances on success. On
// failure the step is unchanged and the returned error is a
// *validator.FieldErrors keyed by field, first invalid field first.
func (w *Wizard) Next() error {
	if w.step >= StepDocuments {
		return nil
	}
	if err := w.validate.ValidatePartial(&w.form, stepFields(w.step, w.requireAccount)...); err != nil {
		return err
	}
	w.step++
	return nil
}

// Prev steps back one step, never below the first.
func (w *Wizard) Prev() {
	if w.step > StepPersonalInfo {
		w.step--
	}
}

func stepFields(step Step, requireAccount bool) []string {
	switch step {
	case StepPersonalInfo:
		fields := []string{"FullName", "Surname", "Username", "Phone", "Address"}
		if requireAccount {
			fields = append(fields, "Password")
		}
		return fields
	case StepProperty:
		return []string{"IntendedUse"}
	case StepFinancial:
		return []string{"OfferAmount", "FinancingMethod"}
	}
	return nil
}

func validFinancingMethod(method string, t domain.PropertyType) bool {
	for _, option := range domain.FinancingOptions(t) {
		if method == option {
			return true
		}
	}
	return false
}
