package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// AuthService talks to the external auth microservice. Authentication and
// role resolution both live there; this service only consumes the answers.
type AuthService struct {
	authURL string
	client  *http.Client
}

type AuthUser struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
	Login       string   `json:"login"`
	Enabled     bool     `json:"enabled"`
}

// Role is the storefront role chrome wraps around the order panel. The
// panel itself is role-agnostic.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleVendor   Role = "vendor"
	RoleDriver   Role = "driver"
	RoleNone     Role = "none"
)

func NewAuthService(authURL string) *AuthService {
	return &AuthService{
		authURL: authURL,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// ResolveRole maps the user's permissions to a storefront role.
func (a *AuthService) ResolveRole(user *AuthUser) Role {
	if user == nil || !user.Enabled {
		return RoleNone
	}
	for _, perm := range user.Permissions {
		switch perm {
		case "driver":
			return RoleDriver
		case "vendor":
			return RoleVendor
		}
	}
	return RoleCustomer
}

// IsSupport reports whether the user may read orders across customers.
func (a *AuthService) IsSupport(user *AuthUser) bool {
	for _, perm := range user.Permissions {
		if perm == "support" || perm == "admin" {
			return true
		}
	}
	return false
}

// ValidateToken resolves the bearer token against /users/current on the
// auth service.
func (a *AuthService) ValidateToken(token string) (*AuthUser, error) {
	req, err := http.NewRequest("GET", fmt.Sprintf("%s/users/current", a.authURL), nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("auth request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New("invalid token")
	}

	var user AuthUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, err
	}

	if !user.Enabled {
		return nil, errors.New("user disabled")
	}

	return &user, nil
}
