package client

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

	"github.com/umalmyha/contacts/internal/model"
)

const defaultTimeout = 10 * time.Second

// APIError is error response returned by contacts API
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("contacts api responded with %d - %s", e.StatusCode, e.Message)
}

// NewContact is payload of contact creation
type NewContact struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Company   string `json:"company,omitempty"`
	JobTitle  string `json:"jobTitle,omitempty"`
}

// UpdateContact is payload of contact update, nil fields are left untouched
type UpdateContact struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Company   *string `json:"company,omitempty"`
	JobTitle  *string `json:"jobTitle,omitempty"`
}

// Client talks to contacts API over http
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New builds Client for API located at baseURL
func New(baseURL string) *Client {
	return NewWithHTTPClient(baseURL, &http.Client{Timeout: defaultTimeout})
}

// NewWithHTTPClient builds Client which sends requests with provided http client
func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// List fetches all contacts
func (c *Client) List(ctx context.Context) ([]model.Contact, error) {
	contacts := make([]model.Contact, 0)
	if err := c.do(ctx, http.MethodGet, "/api/contacts", nil, &contacts); err != nil {
		return nil, err
	}
	return contacts, nil
}

// Get fetches single contact
func (c *Client) Get(ctx context.Context, id string) (model.Contact, error) {
	var contact model.Contact
	err := c.do(ctx, http.MethodGet, c.contactPath(id), nil, &contact)
	return contact, err
}

// Create creates contact and returns it with assigned id
func (c *Client) Create(ctx context.Context, nc NewContact) (model.Contact, error) {
	var contact model.Contact
	err := c.do(ctx, http.MethodPost, "/api/contacts", nc, &contact)
	return contact, err
}

// Update updates provided fields of contact and returns stored result
func (c *Client) Update(ctx context.Context, id string, uc UpdateContact) (model.Contact, error) {
	var contact model.Contact
	err := c.do(ctx, http.MethodPut, c.contactPath(id), uc, &contact)
	return contact, err
}

// Delete deletes contact
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, c.contactPath(id), nil, nil)
}

func (c *Client) contactPath(id string) string {
	return "/api/contacts/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, method, path string, payload, dst any) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request payload - %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request - %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request to contacts api - %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return c.apiError(res)
	}

	if dst == nil {
		return nil
	}

	if err := json.NewDecoder(res.Body).Decode(dst); err != nil {
		return fmt.Errorf("failed to decode response - %w", err)
	}
	return nil
}

func (c *Client) apiError(res *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}

	if err := json.NewDecoder(res.Body).Decode(&body); err != nil || body.Error == "" {
		body.Error = http.StatusText(res.StatusCode)
	}
	return &APIError{StatusCode: res.StatusCode, Message: body.Error}
}
