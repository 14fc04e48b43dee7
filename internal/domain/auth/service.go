package auth

import "context"

type AuthService interface {
	AdminLogin(ctx context.Context, req AdminLoginRequest) (TokenResponse, error)
	EmployeeLogin(ctx context.Context, req EmployeeLoginRequest) (TokenResponse, error)
	Logout(ctx context.Context, token string) error
	// SSEToken issues a short-lived token accepted by the event stream.
	SSEToken(ctx context.Context, claims Claims) (SSETokenResponse, error)
}
