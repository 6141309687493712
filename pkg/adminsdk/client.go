package adminsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// SDKClient is a typed client for the identity admin registry. Registry
// calls carry the bearer token the IdP issued to the administrator.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client

	// Token is sent as "Authorization: Bearer <Token>" on every request.
	Token string
}

// NewSDKClient creates a client for the registry at baseURL.
func NewSDKClient(baseURL, token string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		Token: token,
	}
}

// APIError is a non-2xx response. For validation failures (status 400) the
// registry answers with a JSON array of messages, surfaced in Messages.
type APIError struct {
	StatusCode int
	Messages   []string
}

func (e *APIError) Error() string {
	if len(e.Messages) > 0 {
		return fmt.Sprintf("admin api: status %d: %s", e.StatusCode, strings.Join(e.Messages, "; "))
	}
	return fmt.Sprintf("admin api: status %d", e.StatusCode)
}

// ListQuery is the paging/filter triple accepted by every list endpoint.
// A zero Amount is not sent, which the registry reads as "no page size cap";
// an explicit amount=0 on the wire yields an empty page.
type ListQuery struct {
	From   int
	Amount int
	Filter string
}

func (q ListQuery) encode() string {
	v := url.Values{}
	v.Set("from", strconv.Itoa(q.From))
	if q.Amount > 0 {
		v.Set("amount", strconv.Itoa(q.Amount))
	}
	if q.Filter != "" {
		v.Set("filter", q.Filter)
	}
	return v.Encode()
}

func (c *SDKClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var msgs []string
		if json.NewDecoder(resp.Body).Decode(&msgs) == nil {
			apiErr.Messages = msgs
		}
		return apiErr
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (c *SDKClient) ListClients(ctx context.Context, q ListQuery) (ListResponse[Client], error) {
	var out ListResponse[Client]
	err := c.do(ctx, http.MethodGet, "/Clients?"+q.encode(), nil, &out)
	return out, err
}

func (c *SDKClient) CreateClient(ctx context.Context, client Client) (Client, error) {
	var out Client
	err := c.do(ctx, http.MethodPost, "/Clients", client, &out)
	return out, err
}

func (c *SDKClient) UpdateClient(ctx context.Context, client Client) (Client, error) {
	var out Client
	err := c.do(ctx, http.MethodPut, "/Clients", client, &out)
	return out, err
}

func (c *SDKClient) DeleteClient(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete,
		"/Clients?id="+strconv.FormatInt(id, 10), nil, nil)
}

func (c *SDKClient) ListResources(ctx context.Context, q ListQuery) (ListResponse[Resource], error) {
	var out ListResponse[Resource]
	err := c.do(ctx, http.MethodGet, "/Resources?"+q.encode(), nil, &out)
	return out, err
}

func (c *SDKClient) CreateResource(ctx context.Context, r Resource) (Resource, error) {
	var out Resource
	err := c.do(ctx, http.MethodPost, "/Resources", r, &out)
	return out, err
}

func (c *SDKClient) UpdateResource(ctx context.Context, r Resource) (Resource, error) {
	var out Resource
	err := c.do(ctx, http.MethodPut, "/Resources", r, &out)
	return out, err
}

func (c *SDKClient) DeleteResource(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete,
		"/Resources?id="+strconv.FormatInt(id, 10), nil, nil)
}

func (c *SDKClient) ListScopes(ctx context.Context, q ListQuery) (ListResponse[Scope], error) {
	var out ListResponse[Scope]
	err := c.do(ctx, http.MethodGet, "/Scopes?"+q.encode(), nil, &out)
	return out, err
}

func (c *SDKClient) CreateScope(ctx context.Context, s Scope) (Scope, error) {
	var out Scope
	err := c.do(ctx, http.MethodPost, "/Scopes", s, &out)
	return out, err
}

func (c *SDKClient) UpdateScope(ctx context.Context, s Scope) (Scope, error) {
	var out Scope
	err := c.do(ctx, http.MethodPut, "/Scopes", s, &out)
	return out, err
}

func (c *SDKClient) DeleteScope(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete,
		"/Scopes?id="+strconv.FormatInt(id, 10), nil, nil)
}

func (c *SDKClient) ListIdentityResources(
	ctx context.Context,
	q ListQuery,
) (ListResponse[IdentityResource], error) {
	var out ListResponse[IdentityResource]
	err := c.do(ctx, http.MethodGet, "/IdentityResources?"+q.encode(), nil, &out)
	return out, err
}

func (c *SDKClient) CreateIdentityResource(
	ctx context.Context,
	ir IdentityResource,
) (IdentityResource, error) {
	var out IdentityResource
	err := c.do(ctx, http.MethodPost, "/IdentityResources", ir, &out)
	return out, err
}

func (c *SDKClient) UpdateIdentityResource(
	ctx context.Context,
	ir IdentityResource,
) (IdentityResource, error) {
	var out IdentityResource
	err := c.do(ctx, http.MethodPut, "/IdentityResources", ir, &out)
	return out, err
}

func (c *SDKClient) DeleteIdentityResource(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete,
		"/IdentityResources?id="+strconv.FormatInt(id, 10), nil, nil)
}

func (c *SDKClient) ListUsers(ctx context.Context, q ListQuery) (ListResponse[User], error) {
	var out ListResponse[User]
	err := c.do(ctx, http.MethodGet, "/Users?"+q.encode(), nil, &out)
	return out, err
}

func (c *SDKClient) CreateUser(ctx context.Context, u User) (User, error) {
	var out User
	err := c.do(ctx, http.MethodPost, "/Users", u, &out)
	return out, err
}

func (c *SDKClient) UpdateUser(ctx context.Context, u User) (User, error) {
	var out User
	err := c.do(ctx, http.MethodPut, "/Users", u, &out)
	return out, err
}

func (c *SDKClient) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete,
		"/Users?id="+url.QueryEscape(id), nil, nil)
}

func (c *SDKClient) ListAgentTypes(ctx context.Context) ([]AgentType, error) {
	var out []AgentType
	err := c.do(ctx, http.MethodGet, "/AgentTypes", nil, &out)
	return out, err
}

func (c *SDKClient) BecomeAdmin(ctx context.Context) (BecomeAdminResponse, error) {
	var out BecomeAdminResponse
	err := c.do(ctx, http.MethodGet, "/BecomeAdmin", nil, &out)
	return out, err
}

func (c *SDKClient) ConfirmEmail(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost,
		"/ConfirmEmail?id="+url.QueryEscape(id), nil, nil)
}

func (c *SDKClient) GetLiveness(ctx context.Context) (HealthResponse, error) {
	var out HealthResponse
	err := c.do(ctx, http.MethodGet, "/livez", nil, &out)
	return out, err
}

func (c *SDKClient) GetReadiness(ctx context.Context) (HealthResponse, error) {
	var out HealthResponse
	err := c.do(ctx, http.MethodGet, "/readyz", nil, &out)
	return out, err
}
