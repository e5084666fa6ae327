package session_test

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
	"github.com/slm-1056101/raven/internal/session"
)

func TestSwitchCompany(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/active-company/", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "c-2", body["companyId"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":        "u-1",
			"role":      "Client",
			"companyId": "c-2",
		})
	}))
	defer server.Close()

	store := session.NewStore(api.New(server.URL), nil)
	store.SetAuthToken("tok")
	store.Hydrate(&session.Snapshot{Companies: []domain.Company{
		{ID: "c-1", Name: "First"},
		{ID: "c-2", Name: "Second"},
	}})

	require.NoError(t, store.SwitchCompany(context.Background(), "c-2"))

	user := store.CurrentUser()
	require.NotNil(t, user)
	assert.Equal(t, "c-2", user.CompanyID)

	company := store.CurrentCompany()
	require.NotNil(t, company)
	assert.Equal(t, "Second", company.Name)
}

func TestSwitchCompany_RequiresToken(t *testing.T) {
	store := session.NewStore(api.New("http://localhost"), nil)
	err := store.SwitchCompany(context.Background(), "c-1")
	assert.ErrorIs(t, err, session.ErrNotAuthenticated)
}
