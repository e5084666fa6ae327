package api

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/slm-1056101/raven/internal/domain"
)

// The backend serializes some numbers as strings and some foreign keys
// under bare names (company instead of companyId). Everything crossing the
// wire is decoded through the types below so one canonical shape leaves
// this package.

// flexString accepts a JSON string or number and stores it as a string.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == "" {
		*s = ""
		return nil
	}
	if trimmed[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = flexString(n.String())
	return nil
}

// flexFloat accepts a JSON number or a numeric string.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == "" {
		*f = 0
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*f = 0
			return nil
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("parse number %q: %w", s, err)
		}
		*f = flexFloat(n)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexFloat(n)
	return nil
}

func firstNonEmpty(values ...flexString) string {
	for _, v := range values {
		if v != "" {
			return string(v)
		}
	}
	return ""
}

type propertyWire struct {
	ID               flexString            `json:"id"`
	Title            string                `json:"title"`
	Description      string                `json:"description"`
	Location         string                `json:"location"`
	PlotNumber       string                `json:"plotNumber"`
	RoomNumber       string                `json:"roomNumber"`
	Price            flexFloat             `json:"price"`
	Size             flexFloat             `json:"size"`
	Status           domain.PropertyStatus `json:"status"`
	Type             domain.PropertyType   `json:"type"`
	ImageURL         string                `json:"imageUrl"`
	ImageURLs        []string              `json:"imageUrls"`
	LayoutImageURL   string                `json:"layoutImageUrl"`
	Features         []string              `json:"features"`
	FinancingMethods []string              `json:"financingMethods"`
	CompanyID        flexString            `json:"companyId"`
	Company          flexString            `json:"company"`
}

func (w *propertyWire) toDomain() domain.Property {
	return domain.Property{
		ID:               string(w.ID),
		Title:            w.Title,
		Description:      w.Description,
		Location:         w.Location,
		PlotNumber:       w.PlotNumber,
		RoomNumber:       w.RoomNumber,
		Price:            float64(w.Price),
		Size:             float64(w.Size),
		Status:           w.Status,
		Type:             w.Type,
		ImageURL:         w.ImageURL,
		ImageURLs:        w.ImageURLs,
		LayoutImageURL:   w.LayoutImageURL,
		Features:         w.Features,
		FinancingMethods: w.FinancingMethods,
		CompanyID:        firstNonEmpty(w.CompanyID, w.Company),
	}
}

type applicationWire struct {
	ID               flexString               `json:"id"`
	PropertyID       flexString               `json:"propertyId"`
	Property         flexString               `json:"property"`
	UserID           flexString               `json:"userId"`
	User             flexString               `json:"user"`
	ApplicantName    string                   `json:"applicantName"`
	ApplicantEmail   string                   `json:"applicantEmail"`
	ApplicantPhone   string                   `json:"applicantPhone"`
	ApplicantAddress string                   `json:"applicantAddress"`
	OfferAmount      flexFloat                `json:"offerAmount"`
	FinancingMethod  string                   `json:"financingMethod"`
	IntendedUse      string                   `json:"intendedUse"`
	Status           domain.ApplicationStatus `json:"status"`
	DateApplied      string                   `json:"dateApplied"`
	Documents        domain.Documents         `json:"documents"`
	CompanyID        flexString               `json:"companyId"`
	Company          flexString               `json:"company"`
}

func (w *applicationWire) toDomain() domain.Application {
	return domain.Application{
		ID:               string(w.ID),
		PropertyID:       firstNonEmpty(w.PropertyID, w.Property),
		UserID:           firstNonEmpty(w.UserID, w.User),
		ApplicantName:    w.ApplicantName,
		ApplicantEmail:   w.ApplicantEmail,
		ApplicantPhone:   w.ApplicantPhone,
		ApplicantAddress: w.ApplicantAddress,
		OfferAmount:      float64(w.OfferAmount),
		FinancingMethod:  w.FinancingMethod,
		IntendedUse:      w.IntendedUse,
		Status:           w.Status,
		DateApplied:      w.DateApplied,
		Documents:        w.Documents,
		CompanyID:        firstNonEmpty(w.CompanyID, w.Company),
	}
}

type userWire struct {
	ID             flexString        `json:"id"`
	Name           string            `json:"name"`
	Email          string            `json:"email"`
	Phone          string            `json:"phone"`
	Role           domain.Role       `json:"role"`
	Status         domain.UserStatus `json:"status"`
	RegisteredDate string            `json:"registeredDate"`
	CompanyID      flexString        `json:"companyId"`
	Company        flexString        `json:"company"`
	CompanyIDs     []flexString      `json:"companyIds"`
}

func (w *userWire) toDomain() domain.User {
	var memberships []string
	for _, id := range w.CompanyIDs {
		if id != "" {
			memberships = append(memberships, string(id))
		}
	}
	return domain.User{
		ID:             string(w.ID),
		Name:           w.Name,
		Email:          w.Email,
		Phone:          w.Phone,
		Role:           w.Role,
		Status:         w.Status,
		RegisteredDate: w.RegisteredDate,
		CompanyID:      firstNonEmpty(w.CompanyID, w.Company),
		CompanyIDs:     memberships,
	}
}

type companyWire struct {
	ID               flexString           `json:"id"`
	Name             string               `json:"name"`
	Logo             string               `json:"logo"`
	Description      string               `json:"description"`
	PrimaryColor     string               `json:"primaryColor"`
	Status           domain.CompanyStatus `json:"status"`
	RegisteredDate   string               `json:"registeredDate"`
	SubscriptionPlan string               `json:"subscriptionPlan"`
	MaxPlots         flexFloat            `json:"maxPlots"`
	ContactEmail     string               `json:"contactEmail"`
	ContactPhone     string               `json:"contactPhone"`
	Address          string               `json:"address"`
}

func (w *companyWire) toDomain() domain.Company {
	return domain.Company{
		ID:               string(w.ID),
		Name:             w.Name,
		Logo:             w.Logo,
		Description:      w.Description,
		PrimaryColor:     w.PrimaryColor,
		Status:           w.Status,
		RegisteredDate:   w.RegisteredDate,
		SubscriptionPlan: w.SubscriptionPlan,
		MaxPlots:         int(w.MaxPlots),
		ContactEmail:     w.ContactEmail,
		ContactPhone:     w.ContactPhone,
		Address:          w.Address,
	}
}

func propertiesToDomain(wires []propertyWire) []domain.Property {
	out := make([]domain.Property, 0, len(wires))
	for i := range wires {
		out = append(out, wires[i].toDomain())
	}
	return out
}

func applicationsToDomain(wires []applicationWire) []domain.Application {
	out := make([]domain.Application, 0, len(wires))
	for i := range wires {
		out = append(out, wires[i].toDomain())
	}
	return out
}

func usersToDomain(wires []userWire) []domain.User {
	out := make([]domain.User, 0, len(wires))
	for i := range wires {
		out = append(out, wires[i].toDomain())
	}
	return out
}

func companiesToDomain(wires []companyWire) []domain.Company {
	out := make([]domain.Company, 0, len(wires))
	for i := range wires {
		out = append(out, wires[i].toDomain())
	}
	return out
}
