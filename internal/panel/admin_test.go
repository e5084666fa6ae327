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
	"github.com/slm-1056101/raven/pkg/validator"
)

// echoServer answers every mutation with a canned resource and records the
// last JSON body it saw.
type echoServer struct {
	*httptest.Server
	lastBody map[string]any
}

func newEchoServer(t *testing.T, response map[string]any) *echoServer {
	t.Helper()
	es := &echoServer{}
	es.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Body != nil {
			var body map[string]any
			if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
				es.lastBody = body
			}
		}
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		json.NewEncoder(w).Encode(response)
	}))
	return es
}

func adminFixture(t *testing.T, serverURL string) (*panel.Admin, *session.Store) {
	t.Helper()
	store := session.NewStore(api.New(serverURL), nil)
	store.SetAuthToken("tok")
	store.SetCurrentUser(&domain.User{ID: "u-1", Role: domain.RoleAdmin, CompanyID: "c-1"})
	store.SetCurrentCompany(&domain.Company{ID: "c-1"})
	return panel.NewAdmin(store, validator.NewValidator()), store
}

func landInput() panel.PropertyInput {
	return panel.PropertyInput{
		Title:      "Plot 12",
		Location:   "Gaborone",
		Price:      125000,
		Type:       domain.PropertyTypeLandForSale,
		PlotNumber: "12",
		Size:       900,
	}
}

func TestAdmin_CreateProperty_TypeRules(t *testing.T) {
	server := newEchoServer(t, map[string]any{"id": "p-1", "title": "Plot 12"})
	defer server.Close()

	admin, _ := adminFixture(t, server.URL)
	ctx := context.Background()

	t.Run("land needs plot number and size", func(t *testing.T) {
		in := landInput()
		in.PlotNumber = ""
		_, err := admin.CreateProperty(ctx, in)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "plotNumber")

		in = landInput()
		in.Size = 0
		_, err = admin.CreateProperty(ctx, in)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "size")
	})

	t.Run("rental units need a room number", func(t *testing.T) {
		in := panel.PropertyInput{
			Title:    "Unit 4B",
			Location: "CBD",
			Price:    900,
			Type:     domain.PropertyTypeResidentialRental,
		}
		_, err := admin.CreateProperty(ctx, in)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "roomNumber")
	})

	t.Run("vehicles need neither", func(t *testing.T) {
		in := panel.PropertyInput{
			Title:    "Hilux",
			Location: "Depot",
			Price:    450,
			Type:     domain.PropertyTypeCarRental,
		}
		_, err := admin.CreateProperty(ctx, in)
		require.NoError(t, err)
	})

	t.Run("valid land listing carries company and default status", func(t *testing.T) {
		_, err := admin.CreateProperty(ctx, landInput())
		require.NoError(t, err)
		assert.Equal(t, "c-1", server.lastBody["companyId"])
		assert.Equal(t, string(domain.PropertyStatusAvailable), server.lastBody["status"])
	})
}

func TestAdmin_RequiresToken(t *testing.T) {
	store := session.NewStore(api.New("http://localhost"), nil)
	admin := panel.NewAdmin(store, validator.NewValidator())

	_, err := admin.CreateProperty(context.Background(), landInput())
	assert.ErrorIs(t, err, panel.ErrNotAuthenticated)

	_, err = admin.ApproveApplication(context.Background(), "a-1")
	assert.ErrorIs(t, err, panel.ErrNotAuthenticated)
}

func TestAdmin_ReviewApplications(t *testing.T) {
	server := newEchoServer(t, map[string]any{"id": "a-1", "status": "Rejected"})
	defer server.Close()

	admin, store := adminFixture(t, server.URL)
	store.Hydrate(&session.Snapshot{Applications: []domain.Application{
		{ID: "a-1", Status: domain.ApplicationStatusPending, CompanyID: "c-1"},
	}})

	app, err := admin.RejectApplication(context.Background(), "a-1")
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationStatusRejected, app.Status)
	assert.Equal(t, "Rejected", server.lastBody["status"])

	// Terminal: a second decision is refused locally.
	_, err = admin.ApproveApplication(context.Background(), "a-1")
	assert.ErrorIs(t, err, session.ErrAlreadyDecided)
}

func TestAdmin_SetUserStatus(t *testing.T) {
	server := newEchoServer(t, map[string]any{"id": "u-2", "status": "Inactive"})
	defer server.Close()

	admin, _ := adminFixture(t, server.URL)

	u, err := admin.SetUserStatus(context.Background(), "u-2", domain.UserStatusInactive)
	require.NoError(t, err)
	assert.Equal(t, domain.UserStatusInactive, u.Status)

	_, err = admin.SetUserStatus(context.Background(), "u-2", "Suspended")
	assert.Error(t, err, "only Active and Inactive are settable")
}
