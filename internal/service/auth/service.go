package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/wasabi-works/shift-payroll-backend/internal/domain/auth"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/employee"
	"github.com/wasabi-works/shift-payroll-backend/internal/domain/settings"
	"github.com/wasabi-works/shift-payroll-backend/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

const tokenTypeBearer = "Bearer"

var compareHashAndPassword = bcrypt.CompareHashAndPassword

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// spendComparison runs a comparison that always fails so unknown ids cost as much as a wrong password.
func spendComparison(password string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("unknown-employee"), bcrypt.DefaultCost)
	})
	_ = compareHashAndPassword(dummyHash, []byte(password))
}

type AuthServiceImpl struct {
	employee.EmployeeRepository
	settings.SettingsService
	jwt.Service
}

func NewAuthService(employeeRepository employee.EmployeeRepository, settingsService settings.SettingsService, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		EmployeeRepository: employeeRepository,
		SettingsService:    settingsService,
		Service:            jwtService,
	}
}

// AdminLogin implements auth.AuthService.
func (a *AuthServiceImpl) AdminLogin(ctx context.Context, req auth.AdminLoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	current, err := a.SettingsService.Current(ctx)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to load settings: %w", err)
	}

	if current.AdminPasswordHash == "" {
		slog.Warn("admin login attempted before the admin password was seeded")
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := compareHashAndPassword([]byte(current.AdminPasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	claims := auth.Claims{Subject: auth.AdminSubject, Role: auth.RoleAdmin}
	return a.issue(claims, "")
}

// EmployeeLogin implements auth.AuthService.
func (a *AuthServiceImpl) EmployeeLogin(ctx context.Context, req auth.EmployeeLoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	e, err := a.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			spendComparison(req.Password)
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	if err := compareHashAndPassword([]byte(e.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	claims := auth.Claims{Subject: e.ID, Role: auth.RoleEmployee, EmployeeID: e.ID}
	return a.issue(claims, e.Name)
}

func (a *AuthServiceImpl) issue(claims auth.Claims, name string) (auth.TokenResponse, error) {
	token, expiresAt, err := a.Service.GenerateAccessToken(claims)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}
	return auth.TokenResponse{
		AccessToken: token,
		TokenType:   tokenTypeBearer,
		ExpiresAt:   expiresAt,
		Role:        claims.Role,
		EmployeeID:  claims.EmployeeID,
		Name:        name,
	}, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, token string) error {
	if token == "" {
		return auth.ErrInvalidToken
	}
	a.Service.RevokeToken(token)
	return nil
}

// SSEToken implements auth.AuthService.
func (a *AuthServiceImpl) SSEToken(ctx context.Context, claims auth.Claims) (auth.SSETokenResponse, error) {
	token, expiresIn, err := a.Service.GenerateSSEToken(claims)
	if err != nil {
		return auth.SSETokenResponse{}, fmt.Errorf("failed to generate sse token: %w", err)
	}
	return auth.SSETokenResponse{Token: token, ExpiresIn: expiresIn}, nil
}
