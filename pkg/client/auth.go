package client

import "context"

// AuthService handles authentication-related API calls
type AuthService struct {
	client *Client
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest represents a request to create a user account
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// Login authenticates against the server and stores the returned token
// on the client for subsequent requests.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	if err := s.client.doRequest(ctx, "POST", "/api/v1/auth/login", LoginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}

	s.client.SetToken(resp.AccessToken)
	return &resp, nil
}

// Register creates a new user account. Requires an admin token.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	var u User
	if err := s.client.doRequest(ctx, "POST", "/api/v1/auth/register", req, &u); err != nil {
		return nil, err
	}

	return &u, nil
}

// Me returns the account behind the current token
func (s *AuthService) Me(ctx context.Context) (*User, error) {
	var u User
	if err := s.client.doRequest(ctx, "GET", "/api/v1/auth/me", nil, &u); err != nil {
		return nil, err
	}

	return &u, nil
}
