// Package supabase is a thin client for the Supabase PostgREST and auth
// endpoints. It speaks the REST dialect directly rather than going through a
// SQL driver so that row-level security and the service-role key behave the
// same way they do for the dashboard frontend.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to a Supabase project over its REST API.
type Client struct {
	URL        string
	ServiceKey string
	HTTPClient *http.Client
}

// NewClient creates a client authenticated with the service-role key.
func NewClient(url, serviceKey string) *Client {
	return &Client{
		URL:        url,
		ServiceKey: serviceKey,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) authorize(req *http.Request, userToken string) {
	req.Header.Set("apikey", c.ServiceKey)
	if userToken != "" {
		req.Header.Set("Authorization", "Bearer "+userToken)
	} else {
		req.Header.Set("Authorization", "Bearer "+c.ServiceKey)
	}
}

// Query fetches rows from a table. The query map uses PostgREST operators,
// e.g. {"status": "eq.active", "order": "created_at.desc", "limit": 50}.
func (c *Client) Query(ctx context.Context, table string, query map[string]interface{}) ([]byte, error) {
	return c.QueryWithToken(ctx, table, query, "")
}

// QueryWithToken fetches rows with an optional user JWT so row-level security
// applies to the calling user instead of the service role.
func (c *Client) QueryWithToken(ctx context.Context, table string, query map[string]interface{}, userToken string) ([]byte, error) {
	url := fmt.Sprintf("%s/rest/v1/%s", c.URL, table)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &QueryError{Table: table, Err: err}
	}

	q := req.URL.Query()
	for key, value := range query {
		q.Add(key, fmt.Sprintf("%v", value))
	}
	req.URL.RawQuery = q.Encode()
	c.authorize(req, userToken)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &QueryError{Table: table, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &QueryError{Table: table, Err: err}
	}

	if resp.StatusCode >= 400 {
		return nil, &QueryError{Table: table, StatusCode: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}

// Insert inserts one record (or a slice of records) into a table and returns
// the representation PostgREST echoes back.
func (c *Client) Insert(ctx context.Context, table string, data interface{}) ([]byte, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, &WriteError{Table: table, Err: err}
	}

	url := fmt.Sprintf("%s/rest/v1/%s", c.URL, table)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, &WriteError{Table: table, Err: err}
	}

	c.authorize(req, "")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation")

	return c.doWrite(req, table)
}

// Update patches records matching the query map and returns the updated rows.
func (c *Client) Update(ctx context.Context, table string, query map[string]interface{}, data interface{}) ([]byte, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, &WriteError{Table: table, Err: err}
	}

	url := fmt.Sprintf("%s/rest/v1/%s", c.URL, table)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, &WriteError{Table: table, Err: err}
	}

	q := req.URL.Query()
	for key, value := range query {
		q.Add(key, fmt.Sprintf("%v", value))
	}
	req.URL.RawQuery = q.Encode()

	c.authorize(req, "")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation")

	return c.doWrite(req, table)
}

// UpdateByID patches a single record by primary key.
func (c *Client) UpdateByID(ctx context.Context, table, id string, data interface{}) ([]byte, error) {
	return c.Update(ctx, table, map[string]interface{}{"id": "eq." + id}, data)
}

// Upsert inserts records, merging into existing rows on conflict. onConflict
// names the conflict columns, e.g. "source_id,alert_type".
func (c *Client) Upsert(ctx context.Context, table string, data interface{}, onConflict string) ([]byte, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, &WriteError{Table: table, Err: err}
	}

	url := fmt.Sprintf("%s/rest/v1/%s", c.URL, table)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, &WriteError{Table: table, Err: err}
	}

	q := req.URL.Query()
	q.Add("on_conflict", onConflict)
	req.URL.RawQuery = q.Encode()

	c.authorize(req, "")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation,resolution=merge-duplicates")

	return c.doWrite(req, table)
}

// Delete removes a record by primary key.
func (c *Client) Delete(ctx context.Context, table, id string) error {
	url := fmt.Sprintf("%s/rest/v1/%s?id=eq.%s", c.URL, table, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return &WriteError{Table: table, Err: err}
	}

	c.authorize(req, "")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return &WriteError{Table: table, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return &WriteError{Table: table, StatusCode: resp.StatusCode, Body: string(body)}
	}

	return nil
}

func (c *Client) doWrite(req *http.Request, table string) ([]byte, error) {
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &WriteError{Table: table, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &WriteError{Table: table, Err: err}
	}

	if resp.StatusCode >= 400 {
		return nil, &WriteError{Table: table, StatusCode: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}

// User is the subset of the Supabase auth user the API cares about.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// VerifyToken checks a user JWT against the Supabase auth endpoint and
// returns the user it belongs to.
func (c *Client) VerifyToken(ctx context.Context, token string) (*User, error) {
	url := fmt.Sprintf("%s/auth/v1/user", c.URL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("apikey", c.ServiceKey)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to verify token: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("token verification failed (status %d): %s", resp.StatusCode, string(body))
	}

	var user User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}

	return &user, nil
}
