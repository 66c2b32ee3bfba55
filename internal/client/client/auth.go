package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/contractlens/internal/client/models"
)

// ErrNoAccessToken is returned when a 2xx login response lacks a token.
var ErrNoAccessToken = errors.New("login response carries no access token")

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login exchanges credentials for a bearer token. The backend expects an
// OAuth2 password form, so the email goes in the username field.
func (c *HTTPClient) Login(ctx context.Context, username, password string) (string, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req := request{
		method:      http.MethodPost,
		path:        "/auth/login",
		body:        strings.NewReader(form.Encode()),
		contentType: "application/x-www-form-urlencoded",
	}

	var resp tokenResponse
	if err := c.do(ctx, req, &resp); err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	if resp.AccessToken == "" {
		return "", ErrNoAccessToken
	}
	return resp.AccessToken, nil
}

func (c *HTTPClient) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, request{method: http.MethodGet, path: "/auth/me"}, &user); err != nil {
		return nil, fmt.Errorf("fetch profile: %w", err)
	}
	return &user, nil
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// Signup registers a new account. It does not log the user in.
func (c *HTTPClient) Signup(ctx context.Context, email, password, fullName string) (*models.User, error) {
	req, err := jsonRequest(http.MethodPost, "/auth/signup", signupRequest{
		Email:    email,
		Password: password,
		FullName: fullName,
	})
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := c.do(ctx, req, &user); err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}
	return &user, nil
}
