// Package session owns the in-memory cache of server data for the lifetime
// of an authenticated session, the durable auth token, and every mutator
// the screens go through to reach the backend.
package session

import (
	"context"
	"errors"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/slm-1056101/raven/internal/api"
	"github.com/slm-1056101/raven/internal/domain"
	"github.com/slm-1056101/raven/internal/view"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrSessionExpired   = errors.New("session expired")
	ErrAlreadyDecided   = errors.New("application already decided")
	ErrDecisionInFlight = errors.New("decision already in progress")
)

// Navigator receives view changes. The CLI plugs its screen switch in
// here; tests plug in a recorder.
type Navigator func(view.View)

type Store struct {
	api      *api.Client
	tokens   TokenStorage
	navigate Navigator

	mu             sync.Mutex
	currentView    view.View
	currentUser    *domain.User
	currentCompany *domain.Company
	authToken      string

	companies    []domain.Company
	properties   []domain.Property
	applications []domain.Application
	users        []domain.User

	// Staging fields carrying context across unauthenticated flows
	// (a visitor applies before creating an account).
	intendedCompanyID string
	publicCompanyID   string
	publicProperty    *domain.Property

	inflightDecisions map[string]struct{}
}

func NewStore(client *api.Client, tokens TokenStorage) *Store {
	s := &Store{
		api:               client,
		tokens:            tokens,
		currentView:       view.Landing,
		inflightDecisions: make(map[string]struct{}),
	}
	if tokens != nil {
		if token, err := tokens.Load(); err == nil {
			s.authToken = token
		} else {
			log.Printf("[SESSION] token load failed: %v", err)
		}
	}
	if staging, ok := tokens.(IntendedCompanyStorage); ok {
		if id, err := staging.LoadIntendedCompany(); err == nil {
			s.intendedCompanyID = id
		} else {
			log.Printf("[SESSION] intended company load failed: %v", err)
		}
	}
	return s
}

// OnNavigate registers the view change callback.
func (s *Store) OnNavigate(fn Navigator) {
	s.mu.Lock()
	s.navigate = fn
	s.mu.Unlock()
}

// Navigate switches the current view, redirecting protected views to
// login when no user is authenticated.
func (s *Store) Navigate(v view.View) {
	s.mu.Lock()
	resolved := view.Resolve(v, s.currentUser != nil)
	s.currentView = resolved
	fn := s.navigate
	s.mu.Unlock()

	if fn != nil {
		fn(resolved)
	}
}

func (s *Store) CurrentView() view.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentView
}

func (s *Store) CurrentUser() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentUser
}

func (s *Store) SetCurrentUser(u *domain.User) {
	s.mu.Lock()
	s.currentUser = u
	s.mu.Unlock()
}

func (s *Store) CurrentCompany() *domain.Company {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentCompany
}

func (s *Store) SetCurrentCompany(c *domain.Company) {
	s.mu.Lock()
	s.currentCompany = c
	s.mu.Unlock()
}

func (s *Store) AuthToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authToken
}

// SetAuthToken updates the in-memory token and mirrors it to durable
// storage. Storage failures are logged, never surfaced: the session keeps
// working, it just will not survive a restart.
func (s *Store) SetAuthToken(token string) {
	s.mu.Lock()
	s.authToken = token
	s.mu.Unlock()

	if s.tokens == nil {
		return
	}
	var err error
	if token != "" {
		err = s.tokens.Save(token)
	} else {
		err = s.tokens.Clear()
	}
	if err != nil {
		log.Printf("[SESSION] token persist failed: %v", err)
	}
}

// SetIntendedCompanyID stages (or, with an empty id, clears) the company an
// unauthenticated application was submitted against. The value is mirrored
// to durable storage so a later login in another process can adopt it;
// storage failures are logged, never surfaced.
func (s *Store) SetIntendedCompanyID(id string) {
	s.mu.Lock()
	s.intendedCompanyID = id
	s.mu.Unlock()

	staging, ok := s.tokens.(IntendedCompanyStorage)
	if !ok {
		return
	}
	var err error
	if id != "" {
		err = staging.SaveIntendedCompany(id)
	} else {
		err = staging.ClearIntendedCompany()
	}
	if err != nil {
		log.Printf("[SESSION] intended company persist failed: %v", err)
	}
}

func (s *Store) IntendedCompanyID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.intendedCompanyID
}

func (s *Store) SetPublicCompanyID(id string) {
	s.mu.Lock()
	s.publicCompanyID = id
	s.mu.Unlock()
}

func (s *Store) PublicCompanyID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.publicCompanyID
}

func (s *Store) SetPublicProperty(p *domain.Property) {
	s.mu.Lock()
	s.publicProperty = p
	s.mu.Unlock()
}

func (s *Store) PublicProperty() *domain.Property {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.publicProperty
}

func (s *Store) Companies() []domain.Company {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.companies
}

func (s *Store) Properties() []domain.Property {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.properties
}

func (s *Store) Applications() []domain.Application {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applications
}

func (s *Store) Users() []domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users
}

// Snapshot is the result of a full refresh. UsersFetched distinguishes
// "no users returned" from "users were not requested or not permitted".
type Snapshot struct {
	Companies    []domain.Company
	Properties   []domain.Property
	Applications []domain.Application
	Users        []domain.User
	UsersFetched bool
}

type RefreshOptions struct {
	IncludeUsers bool
}

// RefreshAll fetches companies, properties and applications in parallel.
// Any of the three failing fails the whole refresh. Users are fetched
// afterwards when requested; that fetch failing is tolerated because plain
// clients lack the permission.
func (s *Store) RefreshAll(ctx context.Context, token string, opts RefreshOptions) (*Snapshot, error) {
	snap := &Snapshot{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		companies, err := s.api.ListCompanies(gctx, token)
		if err != nil {
			return err
		}
		snap.Companies = companies
		return nil
	})
	g.Go(func() error {
		properties, err := s.api.ListProperties(gctx, token)
		if err != nil {
			return err
		}
		snap.Properties = properties
		return nil
	})
	g.Go(func() error {
		applications, err := s.api.ListApplications(gctx, token)
		if err != nil {
			return err
		}
		snap.Applications = applications
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if opts.IncludeUsers {
		users, err := s.api.ListUsers(ctx, token)
		if err != nil {
			log.Printf("[SESSION] users fetch skipped: %v", err)
		} else {
			snap.Users = users
			snap.UsersFetched = true
		}
	}

	return snap, nil
}

// Hydrate replaces whichever collections the snapshot carries. Replacement
// is wholesale, not a merge by id.
func (s *Store) Hydrate(snap *Snapshot) {
	if snap == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if snap.Companies != nil {
		s.companies = snap.Companies
	}
	if snap.Properties != nil {
		s.properties = snap.Properties
	}
	if snap.Applications != nil {
		s.applications = snap.Applications
	}
	if snap.UsersFetched {
		s.users = snap.Users
	}
}

// Logout clears the token (including durable storage), the user, the
// tenant scope, the staging fields and all cached collections, then forces
// navigation to the login view.
func (s *Store) Logout() {
	s.SetAuthToken("")
	s.SetIntendedCompanyID("")

	s.mu.Lock()
	s.currentUser = nil
	s.currentCompany = nil
	s.companies = nil
	s.properties = nil
	s.applications = nil
	s.users = nil
	s.publicCompanyID = ""
	s.publicProperty = nil
	s.mu.Unlock()

	s.Navigate(view.Login)
}
