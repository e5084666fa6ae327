package session

import (
	"fmt"

	"github.com/slm-1056101/raven/internal/domain"
)

// Company-scoped read helpers. With no tenant selected (super admin views)
// the full cache comes back unfiltered.

func (s *Store) CompanyProperties() []domain.Property {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentCompany == nil {
		return s.properties
	}
	var scoped []domain.Property
	for _, p := range s.properties {
		if p.CompanyID == s.currentCompany.ID {
			scoped = append(scoped, p)
		}
	}
	return scoped
}

func (s *Store) CompanyApplications() []domain.Application {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentCompany == nil {
		return s.applications
	}
	var scoped []domain.Application
	for _, a := range s.applications {
		if a.CompanyID == s.currentCompany.ID {
			scoped = append(scoped, a)
		}
	}
	return scoped
}

func (s *Store) CompanyUsers() []domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentCompany == nil {
		return s.users
	}
	var scoped []domain.User
	for _, u := range s.users {
		if u.CompanyID == s.currentCompany.ID {
			scoped = append(scoped, u)
		}
	}
	return scoped
}

// PropertyByID resolves a property reference from the cache. Applications
// can reference deleted properties, so a miss is an ErrNotFound, never a
// panic.
func (s *Store) PropertyByID(id string) (*domain.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.properties {
		if s.properties[i].ID == id {
			p := s.properties[i]
			return &p, nil
		}
	}
	return nil, fmt.Errorf("property %s: %w", id, ErrNotFound)
}

// CompanyByID resolves a company from the cache.
func (s *Store) CompanyByID(id string) (*domain.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.companies {
		if s.companies[i].ID == id {
			c := s.companies[i]
			return &c, nil
		}
	}
	return nil, fmt.Errorf("company %s: %w", id, ErrNotFound)
}
