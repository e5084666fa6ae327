package session

import (
	"context"
	"fmt"

	"github.com/slm-1056101/raven/internal/domain"
)

// Mutators call the backend first and only touch the cache on success:
// create prepends, update replaces by id, delete filters out. There is no
// rollback path because the cache is never changed before the call lands;
// the caller surfaces the error and the user retries manually.

func (s *Store) CreateProperty(ctx context.Context, token string, payload any) (*domain.Property, error) {
	created, err := s.api.CreateProperty(ctx, token, payload)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.properties = append([]domain.Property{*created}, s.properties...)
	s.mu.Unlock()
	return created, nil
}

func (s *Store) UpdateProperty(ctx context.Context, token, id string, payload any) (*domain.Property, error) {
	updated, err := s.api.UpdateProperty(ctx, token, id, payload)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	for i := range s.properties {
		if s.properties[i].ID == id {
			s.properties[i] = *updated
		}
	}
	s.mu.Unlock()
	return updated, nil
}

func (s *Store) DeleteProperty(ctx context.Context, token, id string) error {
	if err := s.api.DeleteProperty(ctx, token, id); err != nil {
		return err
	}
	s.mu.Lock()
	kept := s.properties[:0]
	for _, p := range s.properties {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.properties = kept
	s.mu.Unlock()
	return nil
}

func (s *Store) CreateApplication(ctx context.Context, token string, payload any) (*domain.Application, error) {
	created, err := s.api.CreateApplication(ctx, token, payload)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.applications = append([]domain.Application{*created}, s.applications...)
	s.mu.Unlock()
	return created, nil
}

func (s *Store) UpdateApplication(ctx context.Context, token, id string, payload any) (*domain.Application, error) {
	updated, err := s.api.UpdateApplication(ctx, token, id, payload)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	for i := range s.applications {
		if s.applications[i].ID == id {
			s.applications[i] = *updated
		}
	}
	s.mu.Unlock()
	return updated, nil
}

func (s *Store) UpdateUser(ctx context.Context, token, id string, payload any) (*domain.User, error) {
	updated, err := s.api.UpdateUser(ctx, token, id, payload)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	for i := range s.users {
		if s.users[i].ID == id {
			s.users[i] = *updated
		}
	}
	s.mu.Unlock()
	return updated, nil
}

func (s *Store) CreateCompany(ctx context.Context, token string, payload any) (*domain.Company, error) {
	created, err := s.api.CreateCompany(ctx, token, payload)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.companies = append([]domain.Company{*created}, s.companies...)
	s.mu.Unlock()
	return created, nil
}

func (s *Store) UpdateCompany(ctx context.Context, token, id string, payload any) (*domain.Company, error) {
	updated, err := s.api.UpdateCompany(ctx, token, id, payload)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	for i := range s.companies {
		if s.companies[i].ID == id {
			s.companies[i] = *updated
		}
	}
	s.mu.Unlock()
	return updated, nil
}

func (s *Store) DeleteCompany(ctx context.Context, token, id string) error {
	if err := s.api.DeleteCompany(ctx, token, id); err != nil {
		return err
	}
	s.mu.Lock()
	kept := s.companies[:0]
	for _, c := range s.companies {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	s.companies = kept
	s.mu.Unlock()
	return nil
}

// ReviewApplication moves a pending application to Approved or Rejected.
// Decided applications are terminal, and a second decision for the same id
// is refused while the first is still in flight (double-click guard).
func (s *Store) ReviewApplication(ctx context.Context, token, id string, status domain.ApplicationStatus) (*domain.Application, error) {
	if status != domain.ApplicationStatusApproved && status != domain.ApplicationStatusRejected {
		return nil, fmt.Errorf("invalid review status %q", status)
	}

	s.mu.Lock()
	var target *domain.Application
	for i := range s.applications {
		if s.applications[i].ID == id {
			target = &s.applications[i]
			break
		}
	}
	if target == nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("application %s: %w", id, ErrNotFound)
	}
	if target.Decided() {
		s.mu.Unlock()
		return nil, ErrAlreadyDecided
	}
	if _, busy := s.inflightDecisions[id]; busy {
		s.mu.Unlock()
		return nil, ErrDecisionInFlight
	}
	s.inflightDecisions[id] = struct{}{}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.inflightDecisions, id)
		s.mu.Unlock()
	}()

	return s.UpdateApplication(ctx, token, id, map[string]string{"status": string(status)})
}
