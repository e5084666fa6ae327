// Package view is the finite set of screens the frontend can show. There
// is no URL or history integration; selection is a plain string-keyed
// switch with an auth guard in front of the protected views.
package view

import "github.com/slm-1056101/raven/internal/domain"

type View string

const (
	Landing           View = "landing"
	CompaniesLanding  View = "companies-landing"
	CompanyLanding    View = "company-landing"
	PublicApplication View = "public-application"
	Login             View = "login"
	Signup            View = "signup"
	CompanySelection  View = "company-selection"
	Client            View = "client"
	Admin             View = "admin"
	SuperAdmin        View = "super-admin"
)

// Protected reports whether the view requires an authenticated user.
func (v View) Protected() bool {
	switch v {
	case CompanySelection, Client, Admin, SuperAdmin:
		return true
	}
	return false
}

// Resolve redirects protected views to login when unauthenticated.
func Resolve(v View, authenticated bool) View {
	if v.Protected() && !authenticated {
		return Login
	}
	return v
}

// ForRole picks the post-authentication view for a user. Clients with more
// than one company membership get the company selector first.
func ForRole(user *domain.User) View {
	if user == nil {
		return Login
	}
	switch user.Role {
	case domain.RoleSuperAdmin:
		return SuperAdmin
	case domain.RoleAdmin:
		return Admin
	case domain.RoleClient:
		if len(user.Memberships()) > 1 {
			return CompanySelection
		}
		return Client
	}
	return Login
}
