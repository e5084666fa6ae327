package domain

// ApplicationStatus represents the review state of an application
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "Pending"
	ApplicationStatusApproved ApplicationStatus = "Approved"
	ApplicationStatusRejected ApplicationStatus = "Rejected"
)

// Documents holds the attachment references of an application. Rental
// periods ride along here because the backend stores them with the
// supporting documents.
type Documents struct {
	IDDocument   string `json:"idDocument,omitempty"`
	ProofOfFunds string `json:"proofOfFunds,omitempty"`
	StartDate    string `json:"startDate,omitempty"`
	EndDate      string `json:"endDate,omitempty"`
	PickupTime   string `json:"pickupTime,omitempty"`
}

// Application is a submission by a prospective client against a property.
// UserID is empty for public submissions that never attached to an account.
type Application struct {
	ID               string            `json:"id"`
	PropertyID       string            `json:"propertyId"`
	UserID           string            `json:"userId,omitempty"`
	ApplicantName    string            `json:"applicantName"`
	ApplicantEmail   string            `json:"applicantEmail"`
	ApplicantPhone   string            `json:"applicantPhone"`
	ApplicantAddress string            `json:"applicantAddress"`
	OfferAmount      float64           `json:"offerAmount"`
	FinancingMethod  string            `json:"financingMethod"`
	IntendedUse      string            `json:"intendedUse"`
	Status           ApplicationStatus `json:"status"`
	DateApplied      string            `json:"dateApplied"`
	Documents        Documents         `json:"documents"`
	CompanyID        string            `json:"companyId"`
}

// Decided reports whether the application has reached a terminal state.
// Decided applications are immutable in every review surface.
func (a *Application) Decided() bool {
	return a.Status == ApplicationStatusApproved || a.Status == ApplicationStatusRejected
}
