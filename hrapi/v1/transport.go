package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// TokenSource supplies the bearer credentials for authenticated calls. The
// transport writes a refreshed access token back through SetAccessToken so
// the session keeps it.
type TokenSource interface {
	Token() string
	RefreshToken() string
	SetAccessToken(token string)
}

// StaticToken is a TokenSource with a fixed access token and no refresh
// path. Handy for tests and one-shot scripts.
type StaticToken string

func (s StaticToken) Token() string         { return string(s) }
func (s StaticToken) RefreshToken() string  { return "" }
func (s StaticToken) SetAccessToken(string) {}

type Response struct {
	StatusCode int
	Data       []byte
}

// Transport handles low-level HTTP and authentication
type Transport struct {
	BaseURL    string
	Tokens     TokenSource
	HTTPClient *http.Client
}

// NewTransport creates a transport with base URL and token source
func NewTransport(baseURL string, tokens TokenSource) *Transport {
	return &Transport{
		BaseURL:    baseURL,
		Tokens:     tokens,
		HTTPClient: &http.Client{},
	}
}

// helper: build full URL with query params
func (t *Transport) buildURL(path string, query map[string]string) string {
	u, _ := url.Parse(t.BaseURL + path)
	q := u.Query()
	for k, v := range query {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func (t *Transport) token() string {
	if t.Tokens == nil {
		return ""
	}
	return t.Tokens.Token()
}

// Do sends one JSON request. A 401 answer triggers a single token refresh
// and retry; any remaining non-2xx status comes back as an *APIError.
func (t *Transport) Do(ctx context.Context, method, path string, payload any, query map[string]string) (*Response, error) {
	resp, err := t.send(ctx, method, path, payload, query, t.token())
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized && t.Tokens != nil && t.Tokens.RefreshToken() != "" {
		access, err := t.refresh(ctx)
		if err != nil {
			return nil, err
		}
		resp, err = t.send(ctx, method, path, payload, query, access)
		if err != nil {
			return nil, err
		}
	}

	if resp.StatusCode >= 300 {
		return nil, newStatusError(resp.StatusCode, resp.Data)
	}
	return resp, nil
}

func (t *Transport) send(ctx context.Context, method, path string, payload any, query map[string]string, token string) (*Response, error) {
	fullURL := t.buildURL(path, query)

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal %s %s body: %w", method, path, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}

	resp, err := t.HTTPClient.Do(req)
	if err != nil {
		return nil, networkError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, networkError(err)
	}

	return &Response{StatusCode: resp.StatusCode, Data: data}, nil
}

// refresh trades the refresh token for a new access token and stores it.
func (t *Transport) refresh(ctx context.Context) (string, error) {
	payload := map[string]string{"refresh": t.Tokens.RefreshToken()}

	resp, err := t.send(ctx, http.MethodPost, "/token/refresh/", payload, nil, "")
	if err != nil {
		return "", err
	}
	if resp.StatusCode >= 300 {
		return "", &APIError{
			Kind:       KindAuthentication,
			StatusCode: resp.StatusCode,
			Message:    "session expired, please sign in again",
		}
	}

	var result struct {
		Access string `json:"access"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return "", fmt.Errorf("decode refresh response: %w", err)
	}
	if result.Access == "" {
		return "", &APIError{Kind: KindAuthentication, Message: "refresh response carried no access token"}
	}

	t.Tokens.SetAccessToken(result.Access)
	return result.Access, nil
}

// Get sends a GET request
func (t *Transport) Get(ctx context.Context, path string, query map[string]string) (*Response, error) {
	return t.Do(ctx, http.MethodGet, path, nil, query)
}

// Post sends a POST request with JSON body
func (t *Transport) Post(ctx context.Context, path string, payload any) (*Response, error) {
	return t.Do(ctx, http.MethodPost, path, payload, nil)
}

func (t *Transport) Patch(ctx context.Context, path string, payload any) (*Response, error) {
	return t.Do(ctx, http.MethodPatch, path, payload, nil)
}

func (t *Transport) Put(ctx context.Context, path string, payload any) (*Response, error) {
	return t.Do(ctx, http.MethodPut, path, payload, nil)
}

func (t *Transport) Delete(ctx context.Context, path string) (*Response, error) {
	return t.Do(ctx, http.MethodDelete, path, nil, nil)
}
