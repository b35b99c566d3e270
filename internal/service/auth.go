package service

import (
	"context"
	"fmt"
	"strings"

	"fintrack/internal/domain"
	"fintrack/internal/metrics"
	"fintrack/internal/storage"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// AuthService validates credentials against the user store and creates
// self-registered accounts.
type AuthService struct {
	store storage.Store
}

// NewAuthService creates an authenticator backed by the given store.
func NewAuthService(store storage.Store) *AuthService {
	return &AuthService{store: store}
}

// Authenticate checks the email/password pair and returns the session
// principal. An unknown email and a wrong password both yield
// domain.ErrInvalidCredentials so callers cannot enumerate accounts. The
// password hash is never returned or logged.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.Identity, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	logrus.WithFields(logrus.Fields{
		"user_id": user.ID,
		"email":   user.Email,
	}).Info("User authenticated")

	return &domain.Identity{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}, nil
}

// Register creates a self-service account with role member and balance 0.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return nil, domain.ErrValidation
	}

	// Check up front so the caller gets the duplicate error rather than a
	// raw unique-constraint failure.
	if _, err := s.store.GetUserByEmail(ctx, email); err == nil {
		return nil, domain.ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
		Role:     domain.RoleMember,
		Balance:  0,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	metrics.UsersCreatedTotal.Inc()
	logrus.WithFields(logrus.Fields{
		"user_id": user.ID,
		"email":   user.Email,
	}).Info("User registered")
	return user, nil
}

// normalizeEmail lowercases the address so lookups and the unique index
// agree regardless of how the caller typed it.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
