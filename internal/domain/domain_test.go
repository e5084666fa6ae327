package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slm-1056101/raven/internal/domain"
)

func TestPropertyType_Categories(t *testing.T) {
	assert.True(t, domain.PropertyTypeResidentialRental.IsRentalType())
	assert.True(t, domain.PropertyTypeCommercialRental.IsRentalType())
	assert.True(t, domain.PropertyTypeCarRental.IsRentalType())
	assert.False(t, domain.PropertyTypeLandForSale.IsRentalType())
	assert.False(t, domain.PropertyTypeAgricultural.IsRentalType())

	assert.True(t, domain.PropertyTypeCarRental.IsCarRental())
	assert.False(t, domain.PropertyTypeResidentialRental.IsCarRental())
}

func TestFinancingOptions(t *testing.T) {
	assert.Equal(t, []string{"Cash", "CreditCard", "Wave"}, domain.FinancingOptions(domain.PropertyTypeCarRental))
	assert.Equal(t, []string{"Cash", "Mortgage", "Bank Loan", "Other"}, domain.FinancingOptions(domain.PropertyTypeLandForSale))
}

func TestApplication_Decided(t *testing.T) {
	app := domain.Application{Status: domain.ApplicationStatusPending}
	assert.False(t, app.Decided())

	app.Status = domain.ApplicationStatusApproved
	assert.True(t, app.Decided())

	app.Status = domain.ApplicationStatusRejected
	assert.True(t, app.Decided())
}

func TestUser_Memberships(t *testing.T) {
	u := domain.User{CompanyIDs: []string{"c-1", "c-2"}}
	assert.Equal(t, []string{"c-1", "c-2"}, u.Memberships())

	u = domain.User{CompanyID: "c-1"}
	assert.Equal(t, []string{"c-1"}, u.Memberships(), "active company stands in for a missing list")

	u = domain.User{}
	assert.Nil(t, u.Memberships())
}
