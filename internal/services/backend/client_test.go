package backend_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentdesk/console-service/internal/domain/models"
	"github.com/agentdesk/console-service/internal/services/backend"
)

// staticTokens is a fixed TokenProvider for tests.
type staticTokens string

func (s staticTokens) Token() string { return string(s) }

func newClient(t *testing.T, handler http.Handler) (backend.Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := backend.NewClient(&backend.ClientConfig{BaseURL: srv.URL})
	require.NoError(t, err)
	return client, srv
}

func TestNewClient_NilConfig(t *testing.T) {
	// Act
	client, err := backend.NewClient(nil)

	// Assert
	assert.Error(t, err)
	assert.Nil(t, client)
}

func TestNewClient_MissingBaseURL(t *testing.T) {
	// Act
	client, err := backend.NewClient(&backend.ClientConfig{})

	// Assert
	assert.Error(t, err)
	assert.Nil(t, client)
	assert.Contains(t, err.Error(), "base URL is required")
}

func TestLogin_FormEncodedGrant(t *testing.T) {
	// Arrange
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/token", r.URL.Path)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		assert.Empty(t, r.Header.Get("Authorization"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "agent1", r.PostForm.Get("username"))
		assert.Equal(t, "secret", r.PostForm.Get("password"))

		json.NewEncoder(w).Encode(backend.TokenGrant{AccessToken: "tok-123", TokenType: "bearer"})
	}))

	// Act
	grant, err := client.Login(context.Background(), "agent1", "secret")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "tok-123", grant.AccessToken)
	assert.Equal(t, "bearer", grant.TokenType)
}

func TestLogin_BadCredentials(t *testing.T) {
	// Arrange
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Incorrect username or password"})
	}))

	// Act
	grant, err := client.Login(context.Background(), "agent1", "wrong")

	// Assert
	assert.Nil(t, grant)
	var apiErr *backend.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Incorrect username or password", apiErr.Detail)
}

func TestGetCurrentUser_ExplicitToken(t *testing.T) {
	// Arrange
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/me", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(models.User{Username: "agent1", Role: "agent"})
	}))

	// Act
	user, err := client.GetCurrentUser(context.Background(), "tok-123")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "agent1", user.Username)
}

func TestCreateSession_FillsCustomerID(t *testing.T) {
	// Arrange: backend response omits customer_id
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/sessions", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "cust-1", body["customer_id"])

		json.NewEncoder(w).Encode(models.Session{SessionID: "sess-1", Active: true})
	}))

	// Act
	session, err := client.CreateSession(context.Background(), "cust-1")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "sess-1", session.SessionID)
	assert.Equal(t, "cust-1", session.CustomerID)
}

func TestSubmitServiceRequest_SessionScopedWithBearer(t *testing.T) {
	// Arrange
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/billing/requests", r.URL.Path)
		assert.Equal(t, "sess-1", r.URL.Query().Get("session_id"))
		assert.Equal(t, "Bearer tok-bound", r.Header.Get("Authorization"))

		var sub backend.ServiceRequestSubmission
		require.NoError(t, json.NewDecoder(r.Body).Decode(&sub))
		assert.Equal(t, "cust-1", sub.CustomerID)
		assert.Equal(t, "dispute", sub.RequestType)

		json.NewEncoder(w).Encode(backend.SubmissionAck{RequestID: "req-1", Status: "pending", Message: "queued"})
	}))
	backend.BindAuth(client, staticTokens("tok-bound"), nil)

	// Act
	ack, err := client.SubmitServiceRequest(context.Background(), "/billing/requests", "sess-1", &backend.ServiceRequestSubmission{
		CustomerID:  "cust-1",
		RequestType: "dispute",
		Details:     map[string]any{"amount": 12.5},
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "req-1", ack.RequestID)
	assert.Equal(t, "pending", ack.Status)
}

func TestUnauthorized_FiresHook(t *testing.T) {
	// Arrange
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Could not validate credentials"})
	}))

	fired := 0
	backend.BindAuth(client, staticTokens("stale"), func() { fired++ })

	// Act
	_, err := client.GetSession(context.Background(), "sess-1")

	// Assert
	require.Error(t, err)
	assert.Equal(t, 1, fired)
}

func TestEndSession_NoBody(t *testing.T) {
	// Arrange
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/sessions/sess-1/end", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))

	// Act
	err := client.EndSession(context.Background(), "sess-1")

	// Assert
	require.NoError(t, err)
}

func TestGetServiceResponse(t *testing.T) {
	// Arrange
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/responses/req-1", r.URL.Path)
		json.NewEncoder(w).Encode(models.ServiceResponse{
			RequestID: "req-1",
			Status:    models.StatusResolved,
			Response:  map[string]any{"approved": true},
		})
	}))

	// Act
	resp, err := client.GetServiceResponse(context.Background(), "req-1")

	// Assert
	require.NoError(t, err)
	assert.False(t, resp.Pending())
	assert.Equal(t, true, resp.Response["approved"])
}

func TestGetSnapshot_RawJSON(t *testing.T) {
	// Arrange
	payload := `[{"bill_id":"b1","amount":42}]`
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/customers/cust-1/bills", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	}))

	// Act
	raw, err := client.GetSnapshot(context.Background(), "/customers/cust-1/bills")

	// Assert
	require.NoError(t, err)
	assert.JSONEq(t, payload, string(raw))
}

func TestErrorDetail(t *testing.T) {
	// APIError surfaces its backend detail
	apiErr := &backend.APIError{StatusCode: 404, Detail: "Customer not found"}
	assert.Equal(t, "Customer not found", backend.ErrorDetail(apiErr))

	// Wrapped APIError still resolves
	wrapped := errors.Join(errors.New("outer"), apiErr)
	assert.Equal(t, "Customer not found", backend.ErrorDetail(wrapped))

	// Plain errors fall back to their message
	assert.Equal(t, "connection refused", backend.ErrorDetail(errors.New("connection refused")))
}

func TestAPIError_NonJSONBody(t *testing.T) {
	// Arrange
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))

	// Act
	_, err := client.GetCustomer(context.Background(), "cust-1")

	// Assert
	var apiErr *backend.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "upstream exploded", apiErr.Detail)
}
