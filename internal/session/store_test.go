package session_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slm-1056101/raven/internal/api"
	"github.com/slm-1056101/raven/internal/domain"
	"github.com/slm-1056101/raven/internal/session"
	"github.com/slm-1056101/raven/internal/view"
)

func tokenFile(t *testing.T) (*session.FileTokenStorage, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "token")
	storage, err := session.NewFileTokenStorage(path)
	require.NoError(t, err)
	return storage, path
}

func TestNewStore_LoadsPersistedToken(t *testing.T) {
	storage, _ := tokenFile(t)
	require.NoError(t, storage.Save("persisted-token"))

	store := session.NewStore(api.New("http://localhost"), storage)
	assert.Equal(t, "persisted-token", store.AuthToken())
}

func TestStore_SetAuthToken_PersistsAndClears(t *testing.T) {
	storage, path := tokenFile(t)
	store := session.NewStore(api.New("http://localhost"), storage)

	store.SetAuthToken("tok-1")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", string(data))

	store.SetAuthToken("")
	_, err = os.ReadFile(path)
	assert.True(t, os.IsNotExist(err))
}

func TestStore_Navigate_GuardsProtectedViews(t *testing.T) {
	store := session.NewStore(api.New("http://localhost"), nil)

	var visited []view.View
	store.OnNavigate(func(v view.View) { visited = append(visited, v) })

	store.Navigate(view.Admin)
	assert.Equal(t, view.Login, store.CurrentView(), "protected view redirects to login when unauthenticated")

	store.SetCurrentUser(&domain.User{ID: "u-1", Role: domain.RoleAdmin})
	store.Navigate(view.Admin)
	assert.Equal(t, view.Admin, store.CurrentView())

	assert.Equal(t, []view.View{view.Login, view.Admin}, visited)
}

func TestStore_Logout_ClearsEverything(t *testing.T) {
	storage, path := tokenFile(t)
	require.NoError(t, storage.Save("tok"))

	store := session.NewStore(api.New("http://localhost"), storage)
	store.SetCurrentUser(&domain.User{ID: "u-1", Role: domain.RoleClient})
	store.SetCurrentCompany(&domain.Company{ID: "c-1"})
	store.Hydrate(&session.Snapshot{
		Companies:  []domain.Company{{ID: "c-1"}},
		Properties: []domain.Property{{ID: "p-1"}},
	})
	store.SetIntendedCompanyID("c-1")
	store.SetPublicProperty(&domain.Property{ID: "p-1"})

	store.Logout()

	assert.Empty(t, store.AuthToken())
	assert.Nil(t, store.CurrentUser())
	assert.Nil(t, store.CurrentCompany())
	assert.Empty(t, store.Companies())
	assert.Empty(t, store.Properties())
	assert.Empty(t, store.IntendedCompanyID())
	assert.Nil(t, store.PublicProperty())
	assert.Equal(t, view.Login, store.CurrentView())

	_, err := os.ReadFile(path)
	assert.True(t, os.IsNotExist(err), "token file removed")
}

func TestStore_Hydrate_PartialSnapshot(t *testing.T) {
	store := session.NewStore(api.New("http://localhost"), nil)
	store.Hydrate(&session.Snapshot{
		Users:        []domain.User{{ID: "u-1"}},
		UsersFetched: true,
	})

	// A later snapshot without users must not clobber the user cache.
	store.Hydrate(&session.Snapshot{
		Properties: []domain.Property{{ID: "p-1"}},
	})

	assert.Len(t, store.Users(), 1)
	assert.Len(t, store.Properties(), 1)
}

func TestStore_Mutators_KeepCacheInSync(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost:
			json.NewEncoder(w).Encode(map[string]any{"id": "p-new", "title": "New Plot"})
		case r.Method == http.MethodPatch:
			json.NewEncoder(w).Encode(map[string]any{"id": "p-1", "title": "Renamed"})
		case r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer server.Close()

	store := session.NewStore(api.New(server.URL), nil)
	store.Hydrate(&session.Snapshot{Properties: []domain.Property{
		{ID: "p-1", Title: "Old"},
		{ID: "p-2", Title: "Other"},
	}})
	ctx := context.Background()

	created, err := store.CreateProperty(ctx, "tok", map[string]string{"title": "New Plot"})
	require.NoError(t, err)
	properties := store.Properties()
	require.Len(t, properties, 3)
	assert.Equal(t, created.ID, properties[0].ID, "create prepends")

	_, err = store.UpdateProperty(ctx, "tok", "p-1", map[string]string{"title": "Renamed"})
	require.NoError(t, err)
	for _, p := range store.Properties() {
		if p.ID == "p-1" {
			assert.Equal(t, "Renamed", p.Title)
		}
	}

	require.NoError(t, store.DeleteProperty(ctx, "tok", "p-2"))
	for _, p := range store.Properties() {
		assert.NotEqual(t, "p-2", p.ID)
	}
}

func TestStore_Mutators_CacheUntouchedOnFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"detail": "nope"})
	}))
	defer server.Close()

	store := session.NewStore(api.New(server.URL), nil)
	store.Hydrate(&session.Snapshot{Properties: []domain.Property{{ID: "p-1"}}})

	_, err := store.CreateProperty(context.Background(), "tok", map[string]string{})
	require.Error(t, err)
	assert.Len(t, store.Properties(), 1)
}

func TestStore_ReviewApplication(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"id": "a-1", "status": "Approved"})
	}))
	defer server.Close()

	store := session.NewStore(api.New(server.URL), nil)
	store.Hydrate(&session.Snapshot{Applications: []domain.Application{
		{ID: "a-1", Status: domain.ApplicationStatusPending},
		{ID: "a-2", Status: domain.ApplicationStatusRejected},
	}})
	ctx := context.Background()

	app, err := store.ReviewApplication(ctx, "tok", "a-1", domain.ApplicationStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationStatusApproved, app.Status)
	assert.Equal(t, domain.ApplicationStatusApproved, store.Applications()[0].Status)

	// Decisions are terminal.
	_, err = store.ReviewApplication(ctx, "tok", "a-1", domain.ApplicationStatusRejected)
	assert.ErrorIs(t, err, session.ErrAlreadyDecided)

	_, err = store.ReviewApplication(ctx, "tok", "a-2", domain.ApplicationStatusApproved)
	assert.ErrorIs(t, err, session.ErrAlreadyDecided)

	_, err = store.ReviewApplication(ctx, "tok", "missing", domain.ApplicationStatusApproved)
	assert.ErrorIs(t, err, session.ErrNotFound)

	_, err = store.ReviewApplication(ctx, "tok", "a-1", domain.ApplicationStatusPending)
	assert.Error(t, err, "only Approved and Rejected are review outcomes")
}

func TestStore_ReviewApplication_ConcurrentDecisionRefused(t *testing.T) {
	arrived := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		once.Do(func() { close(arrived) })
		<-release
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"id": "a-1", "status": "Approved"})
	}))
	defer server.Close()

	store := session.NewStore(api.New(server.URL), nil)
	store.Hydrate(&session.Snapshot{Applications: []domain.Application{
		{ID: "a-1", Status: domain.ApplicationStatusPending},
	}})

	firstDone := make(chan error, 1)
	go func() {
		_, err := store.ReviewApplication(context.Background(), "tok", "a-1", domain.ApplicationStatusApproved)
		firstDone <- err
	}()

	// The first decision holds the in-flight slot once its PATCH reaches
	// the server; a second decision for the same id is refused without a
	// network call.
	<-arrived
	_, err := store.ReviewApplication(context.Background(), "tok", "a-1", domain.ApplicationStatusRejected)
	assert.ErrorIs(t, err, session.ErrDecisionInFlight)

	close(release)
	require.NoError(t, <-firstDone)
	assert.Equal(t, domain.ApplicationStatusApproved, store.Applications()[0].Status)
}

func TestStore_IntendedCompanyPersists(t *testing.T) {
	storage, _ := tokenFile(t)

	store := session.NewStore(api.New("http://localhost"), storage)
	store.SetIntendedCompanyID("c-2")

	reopened := session.NewStore(api.New("http://localhost"), storage)
	assert.Equal(t, "c-2", reopened.IntendedCompanyID())

	reopened.Logout()
	assert.Empty(t, reopened.IntendedCompanyID())

	next := session.NewStore(api.New("http://localhost"), storage)
	assert.Empty(t, next.IntendedCompanyID(), "logout clears the staged company durably")
}

func TestStore_CompanyScopedReads(t *testing.T) {
	store := session.NewStore(api.New("http://localhost"), nil)
	store.Hydrate(&session.Snapshot{
		Properties: []domain.Property{
			{ID: "p-1", CompanyID: "c-1"},
			{ID: "p-2", CompanyID: "c-2"},
		},
		Applications: []domain.Application{
			{ID: "a-1", CompanyID: "c-1"},
			{ID: "a-2", CompanyID: "c-2"},
		},
		Users:        []domain.User{{ID: "u-1", CompanyID: "c-1"}},
		UsersFetched: true,
	})

	// No tenant selected: the full cache comes back.
	assert.Len(t, store.CompanyProperties(), 2)
	assert.Len(t, store.CompanyApplications(), 2)

	store.SetCurrentCompany(&domain.Company{ID: "c-1"})
	properties := store.CompanyProperties()
	require.Len(t, properties, 1)
	assert.Equal(t, "p-1", properties[0].ID)
	require.Len(t, store.CompanyApplications(), 1)
	require.Len(t, store.CompanyUsers(), 1)
}

func TestStore_PropertyByID(t *testing.T) {
	store := session.NewStore(api.New("http://localhost"), nil)
	store.Hydrate(&session.Snapshot{Properties: []domain.Property{{ID: "p-1", Title: "Plot"}}})

	p, err := store.PropertyByID("p-1")
	require.NoError(t, err)
	assert.Equal(t, "Plot", p.Title)

	_, err = store.PropertyByID("gone")
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestStore_RefreshAll(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/companies/":
			w.Write([]byte(`[{"id": "c-1"}]`))
		case "/api/properties/":
			w.Write([]byte(`[{"id": "p-1"}, {"id": "p-2"}]`))
		case "/api/applications/":
			w.Write([]byte(`[]`))
		case "/api/users/":
			w.WriteHeader(http.StatusForbidden)
		}
	}))
	defer server.Close()

	store := session.NewStore(api.New(server.URL), nil)
	snap, err := store.RefreshAll(context.Background(), "tok", session.RefreshOptions{IncludeUsers: true})

	require.NoError(t, err, "forbidden users fetch is tolerated")
	assert.Len(t, snap.Companies, 1)
	assert.Len(t, snap.Properties, 2)
	assert.NotNil(t, snap.Applications)
	assert.False(t, snap.UsersFetched)
}

func TestStore_RefreshAll_CollectionFailureFailsRefresh(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/api/properties/" {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"detail": "boom"})
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	store := session.NewStore(api.New(server.URL), nil)
	_, err := store.RefreshAll(context.Background(), "tok", session.RefreshOptions{})
	require.Error(t, err)
}
