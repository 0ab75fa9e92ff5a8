package tasklist

import (
	"context"
	"net/http"
	"strings"
)

// Registration is the sign-up form sent to the service.
type Registration struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	AcceptTerms     bool   `json:"acceptTerms"`
}

// Tokens is a signed-in session.
type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

// Register creates an account.
func Register(ctx context.Context, client Doer, baseURL string, reg Registration) error {
	if client == nil {
		client = http.DefaultClient
	}
	return send(ctx, client, http.MethodPost, strings.TrimRight(baseURL, "/")+"/api/auth/register", "", reg, nil)
}

// Login exchanges credentials for tokens.
func Login(ctx context.Context, client Doer, baseURL, email, password string) (Tokens, error) {
	if client == nil {
		client = http.DefaultClient
	}
	body := map[string]string{"email": email, "password": password}
	var tokens Tokens
	err := send(ctx, client, http.MethodPost, strings.TrimRight(baseURL, "/")+"/api/auth/login", "", body, &tokens)
	return tokens, err
}
