package v1

import (
	"context"
	"encoding/json"

	"ortm.io/hrportal/hrapi/v1/common"
)

type AuthEndpoint struct {
	transport *Transport
}

// Login exchanges credentials for an access/refresh token pair. The caller
// stores the pair in its session; this call itself goes out unauthenticated.
func (e *AuthEndpoint) Login(ctx context.Context, email, password string) (*common.TokenPairDTO, error) {
	payload := map[string]string{"email": email, "password": password}

	resp, err := e.transport.Post(ctx, "/token/", payload)
	if err != nil {
		return nil, err
	}

	var pair common.TokenPairDTO
	if err := json.Unmarshal(resp.Data, &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}

// Refresh trades a refresh token for a fresh access token.
func (e *AuthEndpoint) Refresh(ctx context.Context, refreshToken string) (string, error) {
	payload := map[string]string{"refresh": refreshToken}

	resp, err := e.transport.Post(ctx, "/token/refresh/", payload)
	if err != nil {
		return "", err
	}

	var result struct {
		Access string `json:"access"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return "", err
	}
	return result.Access, nil
}

func (e *AuthEndpoint) Register(ctx context.Context, dto *common.RegisterDTO) (*common.UserDTO, error) {
	resp, err := e.transport.Post(ctx, "/register/", dto)
	if err != nil {
		return nil, err
	}

	var user common.UserDTO
	if err := json.Unmarshal(resp.Data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

type UserEndpoint struct {
	transport *Transport
}

// Me returns the authenticated user, the authorization context for
// client-side permission hints.
func (e *UserEndpoint) Me(ctx context.Context) (*common.UserDTO, error) {
	resp, err := e.transport.Get(ctx, "/users/me/", nil)
	if err != nil {
		return nil, err
	}

	var user common.UserDTO
	if err := json.Unmarshal(resp.Data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
