package domain

// PropertyStatus represents the listing status of a property
type PropertyStatus string

const (
	PropertyStatusAvailable PropertyStatus = "Available"
	PropertyStatusReserved  PropertyStatus = "Reserved"
	PropertyStatusSold      PropertyStatus = "Sold"
)

// PropertyType represents the inventory category of a property
type PropertyType string

const (
	PropertyTypeResidentialRental PropertyType = "Property Rentals"
	PropertyTypeCommercialRental  PropertyType = "Commercial Rentals"
	PropertyTypeAgricultural      PropertyType = "Agricultural"
	PropertyTypeLandForSale       PropertyType = "Land For Sale"
	PropertyTypeCarRental         PropertyType = "Car Rentals"
	PropertyTypeOther             PropertyType = "Other"
)

// IsRentalType reports whether applications against this type carry a
// rental period (start and end dates).
func (t PropertyType) IsRentalType() bool {
	switch t {
	case PropertyTypeResidentialRental, PropertyTypeCommercialRental, PropertyTypeCarRental:
		return true
	}
	return false
}

// IsCarRental reports whether applications against this type additionally
// carry a pickup time.
func (t PropertyType) IsCarRental() bool {
	return t == PropertyTypeCarRental
}

// Property is a listed inventory item (land parcel, rental unit or vehicle)
// owned by a single company.
type Property struct {
	ID               string         `json:"id"`
	Title            string         `json:"title"`
	Description      string         `json:"description"`
	Location         string         `json:"location"`
	PlotNumber       string         `json:"plotNumber,omitempty"`
	RoomNumber       string         `json:"roomNumber,omitempty"`
	Price            float64        `json:"price"`
	Size             float64        `json:"size"`
	Status           PropertyStatus `json:"status"`
	Type             PropertyType   `json:"type"`
	ImageURL         string         `json:"imageUrl"`
	ImageURLs        []string       `json:"imageUrls,omitempty"`
	LayoutImageURL   string         `json:"layoutImageUrl,omitempty"`
	Features         []string       `json:"features"`
	FinancingMethods []string       `json:"financingMethods,omitempty"`
	CompanyID        string         `json:"companyId"`
}

// FinancingOptions returns the financing methods offered for a property
// type. Rental inventory settles per period, everything else is a purchase.
func FinancingOptions(t PropertyType) []string {
	if t.IsRentalType() {
		return []string{"Cash", "CreditCard", "Wave"}
	}
	return []string{"Cash", "Mortgage", "Bank Loan", "Other"}
}
