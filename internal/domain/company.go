package domain

// CompanyStatus represents the lifecycle state of a tenant company
type CompanyStatus string

const (
	CompanyStatusActive   CompanyStatus = "Active"
	CompanyStatusPending  CompanyStatus = "Pending"
	CompanyStatusInactive CompanyStatus = "Inactive"
)

// DefaultCompanyLogo is the glyph assigned to self-registered companies
// until they upload their own branding.
const DefaultCompanyLogo = "🏢"

// Company is a tenant. Properties, applications and users are scoped to a
// company; self-registered companies start Pending until a super admin
// approves them.
type Company struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	Logo             string        `json:"logo"`
	Description      string        `json:"description"`
	PrimaryColor     string        `json:"primaryColor,omitempty"`
	Status           CompanyStatus `json:"status"`
	RegisteredDate   string        `json:"registeredDate"`
	SubscriptionPlan string        `json:"subscriptionPlan,omitempty"`
	MaxPlots         int           `json:"maxPlots,omitempty"`
	ContactEmail     string        `json:"contactEmail"`
	ContactPhone     string        `json:"contactPhone"`
	Address          string        `json:"address"`
}
