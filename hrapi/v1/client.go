package v1

import "encoding/json"

type Client struct {
	Transport    *Transport
	Auth         *AuthEndpoint
	Users        *UserEndpoint
	Pointages    *PointageEndpoint
	Employes     *EmployeEndpoint
	Departements *DepartementEndpoint
}

// NewClient initializes the API client against a base URL like
// "http://localhost:8000/api".
func NewClient(baseURL string, tokens TokenSource) *Client {
	t := NewTransport(baseURL, tokens)
	return &Client{
		Transport:    t,
		Auth:         &AuthEndpoint{transport: t},
		Users:        &UserEndpoint{transport: t},
		Pointages:    &PointageEndpoint{transport: t},
		Employes:     &EmployeEndpoint{transport: t},
		Departements: &DepartementEndpoint{transport: t},
	}
}

// decodeList accepts every list shape the backend is known to produce: a
// bare array, {"results": [...]}, {"data": [...]} and
// {"data": {"results": [...]}}.
func decodeList[T any](data []byte) ([]T, error) {
	var direct []T
	if err := json.Unmarshal(data, &direct); err == nil {
		return direct, nil
	}

	var wrapped struct {
		Results []T             `json:"results"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, err
	}
	if wrapped.Results != nil {
		return wrapped.Results, nil
	}
	if wrapped.Data != nil {
		var inner []T
		if err := json.Unmarshal(wrapped.Data, &inner); err == nil {
			return inner, nil
		}
		var innerWrapped struct {
			Results []T `json:"results"`
		}
		if err := json.Unmarshal(wrapped.Data, &innerWrapped); err == nil && innerWrapped.Results != nil {
			return innerWrapped.Results, nil
		}
	}
	return []T{}, nil
}
