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

// defaultPassword is assigned to admin-created accounts. There is no
// forced rotation on first login; see DESIGN.md.
const defaultPassword = "12345678"

// UserService implements the admin-facing user management operations.
type UserService struct {
	store storage.Store
}

// NewUserService creates the user admin service backed by the given store.
func NewUserService(store storage.Store) *UserService {
	return &UserService{store: store}
}

// Create adds a user on behalf of an administrator. Balance starts at 0
// and the password is the bcrypt hash of the default password.
func (s *UserService) Create(ctx context.Context, name, email, role string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" {
		return nil, domain.ErrValidation
	}
	role, err := normalizeRole(role)
	if err != nil {
		return nil, err
	}

	if _, err := s.store.GetUserByEmail(ctx, email); err == nil {
		return nil, domain.ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(defaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
		Role:     role,
		Balance:  0,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	metrics.UsersCreatedTotal.Inc()
	logrus.WithFields(logrus.Fields{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
	}).Info("User created")
	return user, nil
}

// Update edits a user's profile fields and balance. The duplicate-email
// check excludes the user itself.
func (s *UserService) Update(ctx context.Context, id uint, name, email, role string, balance int64) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" {
		return nil, domain.ErrValidation
	}
	role, err := normalizeRole(role)
	if err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if other, err := s.store.GetUserByEmail(ctx, email); err == nil && other.ID != id {
		return nil, domain.ErrDuplicateEmail
	}

	user.Name = name
	user.Email = email
	user.Role = role
	user.Balance = balance
	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id": user.ID,
		"email":   user.Email,
	}).Info("User updated")
	return user, nil
}

// Delete removes a user. Deletion is refused while any ledger entry still
// references the user, as subject or performer, so the ledger stays
// resolvable for audit.
func (s *UserService) Delete(ctx context.Context, id uint) error {
	count, err := s.store.CountUserHistory(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrUserHasHistory
	}
	if err := s.store.DeleteUser(ctx, id); err != nil {
		return err
	}

	logrus.WithField("user_id", id).Info("User deleted")
	return nil
}

// List returns all users in stable id order.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.store.ListUsers(ctx)
}

// normalizeRole defaults an empty role to member and rejects unknown
// values.
func normalizeRole(role string) (string, error) {
	switch role {
	case "":
		return domain.RoleMember, nil
	case domain.RoleAdmin, domain.RoleMember:
		return role, nil
	default:
		return "", domain.ErrValidation
	}
}
