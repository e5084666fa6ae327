package session

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/slm-1056101/raven/internal/domain"
	"github.com/slm-1056101/raven/internal/view"
)

// Rehydrate restores a session from a persisted token: fetch the profile,
// refresh all collections, select the active company and route to the view
// for the user's role. Any failure discards the token and resets to login.
// A no-op when there is no token or a user is already loaded.
func (s *Store) Rehydrate(ctx context.Context) error {
	token := s.AuthToken()
	if token == "" || s.CurrentUser() != nil {
		return nil
	}

	if tokenExpired(token) {
		log.Printf("[SESSION] persisted token expired, clearing")
		s.Logout()
		return ErrSessionExpired
	}

	me, err := s.api.Me(ctx, token)
	if err != nil {
		s.Logout()
		return fmt.Errorf("restore session: %w", err)
	}

	snap, err := s.RefreshAll(ctx, token, RefreshOptions{
		IncludeUsers: me.Role != domain.RoleClient,
	})
	if err != nil {
		s.Logout()
		return fmt.Errorf("restore session: %w", err)
	}
	s.Hydrate(snap)

	s.SetCurrentUser(me)

	if me.CompanyID != "" {
		for i := range snap.Companies {
			if snap.Companies[i].ID == me.CompanyID {
				company := snap.Companies[i]
				s.SetCurrentCompany(&company)
				break
			}
		}
	}

	// An application submitted before authenticating staged the company it
	// was meant for; adopt that scope now. Consuming the staging is
	// unconditional, the switch itself is best-effort and falls back to the
	// profile's own active company.
	if intended := s.IntendedCompanyID(); intended != "" {
		s.SetIntendedCompanyID("")
		current := s.CurrentCompany()
		if current == nil || current.ID != intended {
			if err := s.SwitchCompany(ctx, intended); err != nil {
				log.Printf("[SESSION] intended company switch failed: %v", err)
			}
		}
	}

	s.Navigate(view.ForRole(s.CurrentUser()))
	return nil
}

// tokenExpired peeks at the exp claim without verifying the signature; the
// token was issued and gets verified server-side, the client only wants to
// skip a doomed round trip. Unreadable tokens fall through to the network
// path so the backend stays the authority.
func tokenExpired(token string) bool {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	return claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now())
}
