package wizard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slm-1056101/raven/internal/domain"
	"github.com/slm-1056101/raven/internal/wizard"
	"github.com/slm-1056101/raven/pkg/validator"
)

func fillPersonalInfo(form *wizard.Form) {
	form.FullName = "Jane"
	form.Surname = "Doe"
	form.Username = "jane@example.com"
	form.Phone = "+26771234567"
	form.Address = "Plot 12, Gaborone"
}

func TestWizard_NextValidatesCurrentStep(t *testing.T) {
	w := wizard.New(validator.NewValidator(), false)
	assert.Equal(t, wizard.StepPersonalInfo, w.Step())

	err := w.Next()
	require.Error(t, err, "empty personal info must not advance")
	assert.Equal(t, wizard.StepPersonalInfo, w.Step(), "step unchanged on validation failure")

	var fieldErrs *validator.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs.Fields, "fullName")

	fillPersonalInfo(w.Form())
	require.NoError(t, w.Next())
	assert.Equal(t, wizard.StepProperty, w.Step())

	// Step two only needs the intended use.
	require.Error(t, w.Next())
	w.Form().IntendedUse = "Farming"
	require.NoError(t, w.Next())
	assert.Equal(t, wizard.StepFinancial, w.Step())

	require.Error(t, w.Next())
	w.Form().OfferAmount = 125000
	w.Form().FinancingMethod = "Cash"
	require.NoError(t, w.Next())
	assert.Equal(t, wizard.StepDocuments, w.Step())

	// The last step never advances further.
	require.NoError(t, w.Next())
	assert.Equal(t, wizard.StepDocuments, w.Step())
}

func TestWizard_PasswordRequiredForNewAccounts(t *testing.T) {
	w := wizard.New(validator.NewValidator(), true)
	fillPersonalInfo(w.Form())

	err := w.Next()
	require.Error(t, err)
	var fieldErrs *validator.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs.Fields, "password")

	w.Form().Password = "hunter22"
	require.NoError(t, w.Next())
}

func TestWizard_PasswordSkippedForAuthenticated(t *testing.T) {
	w := wizard.New(validator.NewValidator(), false)
	fillPersonalInfo(w.Form())
	require.NoError(t, w.Next(), "password not demanded when an account exists")
}

func TestWizard_Prev(t *testing.T) {
	w := wizard.New(validator.NewValidator(), false)
	fillPersonalInfo(w.Form())
	require.NoError(t, w.Next())

	w.Prev()
	assert.Equal(t, wizard.StepPersonalInfo, w.Step())
	w.Prev()
	assert.Equal(t, wizard.StepPersonalInfo, w.Step(), "never below the first step")
}

func TestWizard_Prefill(t *testing.T) {
	w := wizard.New(validator.NewValidator(), false)
	w.Prefill(&domain.User{
		Name:  "Jane Doe",
		Email: "jane@example.com",
		Phone: "+26771234567",
	})

	form := w.Form()
	assert.Equal(t, "Jane Doe", form.FullName)
	assert.Equal(t, "jane@example.com", form.Username)
	assert.Equal(t, "jane@example.com", form.Email)
	assert.Equal(t, "+26771234567", form.Phone)
}

func TestWizard_SyncValues(t *testing.T) {
	w := wizard.New(validator.NewValidator(), false)
	w.Form().FullName = "Jane"

	w.SyncValues(map[string]string{
		"fullName":    "",
		"surname":     "Doe",
		"offerAmount": " 95000.50 ",
	})

	form := w.Form()
	assert.Equal(t, "Jane", form.FullName, "empty value never clobbers")
	assert.Equal(t, "Doe", form.Surname)
	assert.Equal(t, 95000.50, form.OfferAmount)
}
