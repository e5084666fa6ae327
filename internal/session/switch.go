package session

import (
	"context"
	"errors"
)

var ErrNotAuthenticated = errors.New("not authenticated")

// SwitchCompany changes the active tenant scope server-side and mirrors
// the result locally. Used by multi-company clients and admins.
func (s *Store) SwitchCompany(ctx context.Context, companyID string) error {
	token := s.AuthToken()
	if token == "" {
		return ErrNotAuthenticated
	}

	user, err := s.api.SetActiveCompany(ctx, token, companyID)
	if err != nil {
		return err
	}
	s.SetCurrentUser(user)

	if company, err := s.CompanyByID(companyID); err == nil {
		s.SetCurrentCompany(company)
	} else {
		s.SetCurrentCompany(nil)
	}
	return nil
}
