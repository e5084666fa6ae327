package domain

// Role represents the role of a user
type Role string

const (
	RoleClient     Role = "Client"
	RoleAdmin      Role = "Admin"
	RoleSuperAdmin Role = "SuperAdmin"
)

// UserStatus represents the status of a user account
type UserStatus string

const (
	UserStatusActive   UserStatus = "Active"
	UserStatusInactive UserStatus = "Inactive"
)

// User is an account. CompanyID is the active tenant scope, CompanyIDs the
// full membership list for multi-company clients. SuperAdmin accounts carry
// no tenant binding at all.
type User struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone"`
	Role           Role       `json:"role"`
	Status         UserStatus `json:"status"`
	RegisteredDate string     `json:"registeredDate"`
	CompanyID      string     `json:"companyId,omitempty"`
	CompanyIDs     []string   `json:"companyIds,omitempty"`
}

// Memberships returns every company the user belongs to, falling back to
// the active company when the membership list is absent.
func (u *User) Memberships() []string {
	if len(u.CompanyIDs) > 0 {
		return u.CompanyIDs
	}
	if u.CompanyID != "" {
		return []string{u.CompanyID}
	}
	return nil
}
