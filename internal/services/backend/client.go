// Package backend provides the REST client for the call-center backend API.
//
// All authenticated requests carry a bearer token obtained from the bound
// TokenProvider. A 401 from any endpoint fires the unauthorized hook exactly
// once per response, which the wiring uses to log the agent out implicitly.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/agentdesk/console-service/internal/domain/models"
)

// DefaultTimeout bounds every backend call; there is no application-level
// cancellation beyond the request context.
const DefaultTimeout = 10 * time.Second

// TokenProvider supplies the current bearer token. An empty string means
// the console is not authenticated and no Authorization header is sent.
type TokenProvider interface {
	Token() string
}

// Client defines the interface for the backend API client.
type Client interface {
	// Login exchanges credentials for an access token via a form-encoded
	// credential grant. No bearer token is attached.
	Login(ctx context.Context, username, password string) (*TokenGrant, error)

	// GetCurrentUser fetches the profile of the user the given token belongs
	// to. The token is passed explicitly so the profile can be fetched before
	// the grant is committed to auth state.
	GetCurrentUser(ctx context.Context, token string) (*models.User, error)

	// CreateSession creates a new session for the customer.
	CreateSession(ctx context.Context, customerID string) (*models.Session, error)

	// GetSession fetches an existing session by id.
	GetSession(ctx context.Context, sessionID string) (*models.Session, error)

	// EndSession marks a session as ended on the backend.
	EndSession(ctx context.Context, sessionID string) error

	// GetCustomer fetches a customer profile by id.
	GetCustomer(ctx context.Context, customerID string) (*models.Customer, error)

	// SubmitServiceRequest posts a domain request to the given endpoint path,
	// scoped by the session id as a query parameter.
	SubmitServiceRequest(ctx context.Context, path, sessionID string, sub *ServiceRequestSubmission) (*SubmissionAck, error)

	// GetServiceResponse polls the status/result of a submitted request.
	GetServiceResponse(ctx context.Context, requestID string) (*models.ServiceResponse, error)

	// GetSnapshot fetches a customer- or domain-scoped snapshot (bill
	// history, usage, plan or package catalogs) as raw JSON.
	GetSnapshot(ctx context.Context, path string) (json.RawMessage, error)
}

// ClientConfig holds the configuration for the backend client.
type ClientConfig struct {
	// BaseURL is the backend API root, e.g. "http://localhost:8000/api".
	BaseURL string
	// Timeout bounds each request; DefaultTimeout when zero.
	Timeout time.Duration
	// HTTPClient overrides the internal client, mainly for tests.
	HTTPClient *http.Client
}

// client implements the Client interface.
type client struct {
	baseURL        string
	httpClient     *http.Client
	tokens         TokenProvider
	onUnauthorized func()
}

// NewClient creates a new backend API client.
func NewClient(cfg *ClientConfig) (Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: httpClient,
	}, nil
}

// BindAuth attaches the token provider and the hook invoked on 401 responses.
// Called once during wiring; the provider is typically the auth service, which
// itself depends on this client for login.
func BindAuth(c Client, tokens TokenProvider, onUnauthorized func()) {
	if impl, ok := c.(*client); ok {
		impl.tokens = tokens
		impl.onUnauthorized = onUnauthorized
	}
}

// Login exchanges credentials for an access token.
func (c *client) Login(ctx context.Context, username, password string) (*TokenGrant, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/token", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	var grant TokenGrant
	if err := c.execute(req, &grant); err != nil {
		return nil, err
	}
	return &grant, nil
}

// GetCurrentUser fetches the authenticated user's profile.
func (c *client) GetCurrentUser(ctx context.Context, token string) (*models.User, error) {
	req, err := c.newJSONRequest(ctx, http.MethodGet, "/users/me", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	var user models.User
	if err := c.execute(req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateSession creates a new session for the customer.
func (c *client) CreateSession(ctx context.Context, customerID string) (*models.Session, error) {
	body := map[string]string{"customer_id": customerID}
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/sessions", body)
	if err != nil {
		return nil, err
	}
	c.attachToken(req)

	var session models.Session
	if err := c.execute(req, &session); err != nil {
		return nil, err
	}
	if session.CustomerID == "" {
		session.CustomerID = customerID
	}
	return &session, nil
}

// GetSession fetches an existing session by id.
func (c *client) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	req, err := c.newJSONRequest(ctx, http.MethodGet, "/sessions/"+sessionID, nil)
	if err != nil {
		return nil, err
	}
	c.attachToken(req)

	var session models.Session
	if err := c.execute(req, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// EndSession marks a session as ended on the backend.
func (c *client) EndSession(ctx context.Context, sessionID string) error {
	req, err := c.newJSONRequest(ctx, http.MethodPut, "/sessions/"+sessionID+"/end", nil)
	if err != nil {
		return err
	}
	c.attachToken(req)
	return c.execute(req, nil)
}

// GetCustomer fetches a customer profile by id.
func (c *client) GetCustomer(ctx context.Context, customerID string) (*models.Customer, error) {
	req, err := c.newJSONRequest(ctx, http.MethodGet, "/customers/"+customerID, nil)
	if err != nil {
		return nil, err
	}
	c.attachToken(req)

	var customer models.Customer
	if err := c.execute(req, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

// SubmitServiceRequest posts a domain request scoped by session id.
func (c *client) SubmitServiceRequest(ctx context.Context, path, sessionID string, sub *ServiceRequestSubmission) (*SubmissionAck, error) {
	req, err := c.newJSONRequest(ctx, http.MethodPost, path, sub)
	if err != nil {
		return nil, err
	}
	q := req.URL.Query()
	q.Set("session_id", sessionID)
	req.URL.RawQuery = q.Encode()
	c.attachToken(req)

	var ack SubmissionAck
	if err := c.execute(req, &ack); err != nil {
		return nil, err
	}
	return &ack, nil
}

// GetServiceResponse polls the status/result of a submitted request.
func (c *client) GetServiceResponse(ctx context.Context, requestID string) (*models.ServiceResponse, error) {
	req, err := c.newJSONRequest(ctx, http.MethodGet, "/responses/"+requestID, nil)
	if err != nil {
		return nil, err
	}
	c.attachToken(req)

	var resp models.ServiceResponse
	if err := c.execute(req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetSnapshot fetches a snapshot endpoint as raw JSON.
func (c *client) GetSnapshot(ctx context.Context, path string) (json.RawMessage, error) {
	req, err := c.newJSONRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	c.attachToken(req)

	var raw json.RawMessage
	if err := c.execute(req, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// newJSONRequest builds a request against the base URL with a JSON body.
func (c *client) newJSONRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// attachToken sets the Authorization header from the bound token provider.
func (c *client) attachToken(req *http.Request) {
	if c.tokens == nil {
		return
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// execute runs the request and decodes the response into out when non-nil.
func (c *client) execute(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Detail: decodeDetail(resp.Body)}
		if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// decodeDetail pulls the "detail" field out of a backend error body.
func decodeDetail(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 64*1024))
	if err != nil || len(data) == 0 {
		return ""
	}

	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(data, &payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}
	return strings.TrimSpace(string(data))
}
