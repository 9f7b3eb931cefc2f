// API service for making raw HTTP requests to the GoBarber backend
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
)

// APIService provides methods for making raw HTTP requests to the GoBarber API.
//
// Default headers set via [APIService.SetDefaultHeader] are attached to every
// subsequent request. Only the session store mutates the authorization header.
type APIService struct {
	baseURL    string
	httpClient *http.Client

	mu             sync.RWMutex
	defaultHeaders map[string]string
}

// NewAPIService creates a new API service instance for the GoBarber backend.
func NewAPIService(baseURL string, client *http.Client) *APIService {
	if baseURL == "" {
		baseURL = "http://localhost:3333"
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &APIService{
		baseURL:        baseURL,
		httpClient:     client,
		defaultHeaders: make(map[string]string),
	}
}

// APIResponse represents a raw API response with status and body.
type APIResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	IsJSON     bool
	JSONData   any
}

// SetDefaultHeader sets a header attached to all subsequent requests.
func (a *APIService) SetDefaultHeader(key, value string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.defaultHeaders[key] = value
}

// UnsetDefaultHeader removes a previously set default header. No-op if absent.
func (a *APIService) UnsetDefaultHeader(key string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.defaultHeaders, key)
}

// DefaultHeader returns the current value of a default header, if set.
func (a *APIService) DefaultHeader(key string) (string, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	v, ok := a.defaultHeaders[key]
	return v, ok
}

func (a *APIService) applyDefaultHeaders(req *http.Request) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	for k, v := range a.defaultHeaders {
		req.Header.Set(k, v)
	}
}

// Get performs a GET request to the specified path and returns the raw response.
func (a *APIService) Get(ctx context.Context, path string) (*APIResponse, error) {
	return a.do(ctx, http.MethodGet, path, nil, "")
}

// Post performs a POST request with the given JSON data and returns the raw response.
func (a *APIService) Post(ctx context.Context, path string, data []byte) (*APIResponse, error) {
	return a.do(ctx, http.MethodPost, path, data, "application/json")
}

// Put performs a PUT request with the given JSON data and returns the raw response.
func (a *APIService) Put(ctx context.Context, path string, data []byte) (*APIResponse, error) {
	return a.do(ctx, http.MethodPut, path, data, "application/json")
}

// Patch performs a PATCH request and returns the raw response. The content
// type is caller-supplied since avatar uploads are multipart rather than JSON.
func (a *APIService) Patch(ctx context.Context, path string, data []byte, contentType string) (*APIResponse, error) {
	return a.do(ctx, http.MethodPatch, path, data, contentType)
}

func (a *APIService) do(ctx context.Context, method, path string, data []byte, contentType string) (*APIResponse, error) {
	fullURL := a.baseURL + path

	var body io.Reader
	if data != nil {
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	a.applyDefaultHeaders(req)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	apiResp := &APIResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       respBody,
	}

	var jsonData any
	if err := json.Unmarshal(respBody, &jsonData); err == nil {
		apiResp.IsJSON = true
		apiResp.JSONData = jsonData
	}

	return apiResp, nil
}
