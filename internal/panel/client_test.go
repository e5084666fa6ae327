package panel_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slm-1056101/raven/internal/api"
	"github.com/slm-1056101/raven/internal/domain"
	"github.com/slm-1056101/raven/internal/panel"
	"github.com/slm-1056101/raven/internal/session"
	"github.com/slm-1056101/raven/internal/view"
)

func TestClientPortal_MyApplications(t *testing.T) {
	store := session.NewStore(api.New("http://localhost"), nil)
	store.SetCurrentUser(&domain.User{ID: "u-1", Email: "jane@example.com", Role: domain.RoleClient})
	store.Hydrate(&session.Snapshot{
		Properties: []domain.Property{{ID: "p-1", Title: "Plot 12"}},
		Applications: []domain.Application{
			{ID: "a-1", UserID: "u-1", PropertyID: "p-1"},
			{ID: "a-2", ApplicantEmail: "jane@example.com", PropertyID: "p-gone"},
			{ID: "a-3", UserID: "someone-else", ApplicantEmail: "other@example.com"},
		},
	})

	portal := panel.NewClientPortal(store)
	entries, err := portal.MyApplications()
	require.NoError(t, err)
	require.Len(t, entries, 2, "only the user's own applications")

	assert.Equal(t, "Plot 12", entries[0].PropertyTitle())
	assert.Equal(t, "(property not found)", entries[1].PropertyTitle(), "dangling reference renders a placeholder")
}

func TestClientPortal_MyApplications_RequiresUser(t *testing.T) {
	store := session.NewStore(api.New("http://localhost"), nil)
	portal := panel.NewClientPortal(store)

	_, err := portal.MyApplications()
	assert.ErrorIs(t, err, panel.ErrNotAuthenticated)
}

func TestClientPortal_SelectCompany(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"id": "u-1", "role": "Client", "companyId": "c-2"})
	}))
	defer server.Close()

	store := session.NewStore(api.New(server.URL), nil)
	store.SetAuthToken("tok")
	store.SetCurrentUser(&domain.User{ID: "u-1", Role: domain.RoleClient, CompanyIDs: []string{"c-1", "c-2"}})
	store.Hydrate(&session.Snapshot{Companies: []domain.Company{
		{ID: "c-1", Name: "First"},
		{ID: "c-2", Name: "Second"},
	}})

	portal := panel.NewClientPortal(store)
	require.NoError(t, portal.SelectCompany(context.Background(), "c-2"))

	company := store.CurrentCompany()
	require.NotNil(t, company)
	assert.Equal(t, "Second", company.Name)
	assert.Equal(t, view.Client, store.CurrentView())
}
