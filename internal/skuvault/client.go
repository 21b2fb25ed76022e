package skuvault

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrUnavailable marks network/HTTP failures reaching the SkuVault API.
// Callers must treat it as upstream-unavailable, not a local data error:
// it aborts the remaining stages for a customer and maps to a distinct
// HTTP status on manual sync endpoints.
var ErrUnavailable = errors.New("skuvault: upstream unavailable")

const defaultBaseURL = "https://app.skuvault.com/api"

// Client is a JSON-over-HTTP client for the SkuVault API. All endpoints are
// POST with the token pair in the request body.
type Client struct {
	BaseURL    string
	HttpClient *http.Client
}

// NewClient creates a new SkuVault client
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		BaseURL:    baseURL,
		HttpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// post performs one API call and decodes the response into result.
func (c *Client) post(ctx context.Context, path string, body interface{}, result interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUnavailable, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: %s returned %d: %s", ErrUnavailable, path, resp.StatusCode, string(data))
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

// GetTokens exchanges an account email/password for the token pair.
func (c *Client) GetTokens(ctx context.Context, email, password string) (Credentials, error) {
	req := map[string]string{"Email": email, "Password": password}
	var creds Credentials
	if err := c.post(ctx, "/getTokens", req, &creds); err != nil {
		return Credentials{}, err
	}
	if creds.TenantToken == "" || creds.UserToken == "" {
		return Credentials{}, fmt.Errorf("getTokens returned empty token pair")
	}
	return creds, nil
}

// GetProducts fetches the full product catalog for the account.
func (c *Client) GetProducts(ctx context.Context, creds Credentials) ([]Product, error) {
	req := struct {
		Credentials
		PageNumber int `json:"PageNumber"`
		PageSize   int `json:"PageSize"`
	}{Credentials: creds, PageNumber: 0, PageSize: 10000}

	var resp struct {
		Products []Product `json:"Products"`
	}
	if err := c.post(ctx, "/products/getProducts", req, &resp); err != nil {
		return nil, err
	}
	return resp.Products, nil
}

// GetLocations fetches all warehouse locations for the account.
func (c *Client) GetLocations(ctx context.Context, creds Credentials) ([]Location, error) {
	var resp struct {
		Items []Location `json:"Items"`
	}
	if err := c.post(ctx, "/inventory/getLocations", creds, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// GetInventory fetches the current per-location quantity snapshot.
func (c *Client) GetInventory(ctx context.Context, creds Credentials) ([]InventoryItem, error) {
	req := struct {
		Credentials
		PageNumber int `json:"PageNumber"`
		PageSize   int `json:"PageSize"`
	}{Credentials: creds, PageNumber: 0, PageSize: 10000}

	var resp struct {
		Items []InventoryItem `json:"Items"`
	}
	if err := c.post(ctx, "/inventory/getInventoryByLocation", req, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// GetInventoryMovements fetches movement records inside [from, to].
func (c *Client) GetInventoryMovements(ctx context.Context, creds Credentials, from, to time.Time) ([]Movement, error) {
	req := struct {
		Credentials
		FromDate time.Time `json:"FromDate"`
		ToDate   time.Time `json:"ToDate"`
	}{Credentials: creds, FromDate: from.UTC(), ToDate: to.UTC()}

	var resp struct {
		Movements []Movement `json:"Transactions"`
	}
	if err := c.post(ctx, "/inventory/getInventoryMovements", req, &resp); err != nil {
		return nil, err
	}
	return resp.Movements, nil
}

// GetTransactions fetches transaction history inside [from, to].
func (c *Client) GetTransactions(ctx context.Context, creds Credentials, from, to time.Time) ([]Transaction, error) {
	req := struct {
		Credentials
		FromDate time.Time `json:"FromDate"`
		ToDate   time.Time `json:"ToDate"`
	}{Credentials: creds, FromDate: from.UTC(), ToDate: to.UTC()}

	var resp struct {
		Transactions []Transaction `json:"Transactions"`
	}
	if err := c.post(ctx, "/inventory/getTransactions", req, &resp); err != nil {
		return nil, err
	}
	return resp.Transactions, nil
}
