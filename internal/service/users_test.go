package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"fintrack/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

func TestCreateUser_DefaultPasswordAndZeroBalance(t *testing.T) {
	store := newStubStore()
	svc := NewUserService(store)

	user, err := svc.Create(context.Background(), "Carol", "Carol@Example.com", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if user.Email != "carol@example.com" {
		t.Fatalf("expected lowercased email, got %q", user.Email)
	}
	if user.Balance != 0 {
		t.Fatalf("expected zero starting balance, got %d", user.Balance)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(defaultPassword)); err != nil {
		t.Fatalf("expected default password hash: %v", err)
	}
}

func TestCreateUser_RoleHandling(t *testing.T) {
	store := newStubStore()
	svc := NewUserService(store)

	user, err := svc.Create(context.Background(), "Dave", "dave@example.com", "")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if user.Role != domain.RoleMember {
		t.Fatalf("expected empty role to default to member, got %q", user.Role)
	}

	if _, err := svc.Create(context.Background(), "Eve", "eve@example.com", "root"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown role, got %v", err)
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	store := newStubStore()
	store.seedUser(domain.User{Name: "Alice", Email: "alice@example.com", Role: domain.RoleMember})
	svc := NewUserService(store)

	if _, err := svc.Create(context.Background(), "Other", "alice@example.com", ""); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestUpdateUser_DuplicateEmailExcludesSelf(t *testing.T) {
	store := newStubStore()
	alice := store.seedUser(domain.User{Name: "Alice", Email: "alice@example.com", Role: domain.RoleMember})
	store.seedUser(domain.User{Name: "Bob", Email: "bob@example.com", Role: domain.RoleMember})
	svc := NewUserService(store)

	// Keeping her own email is not a duplicate.
	if _, err := svc.Update(context.Background(), alice.ID, "Alice R", "alice@example.com", domain.RoleAdmin, 900); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	updated, err := store.GetUserByID(context.Background(), alice.ID)
	if err != nil {
		t.Fatalf("GetUserByID returned error: %v", err)
	}
	if updated.Name != "Alice R" || updated.Role != domain.RoleAdmin || updated.Balance != 900 {
		t.Fatalf("update not applied: %+v", updated)
	}

	// Taking another user's email is.
	if _, err := svc.Update(context.Background(), alice.ID, "Alice R", "bob@example.com", domain.RoleAdmin, 900); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestUpdateUser_Missing(t *testing.T) {
	store := newStubStore()
	svc := NewUserService(store)

	if _, err := svc.Update(context.Background(), 42, "Ghost", "ghost@example.com", "", 0); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestDeleteUser_ForbiddenWithHistory(t *testing.T) {
	store := newStubStore()
	member := store.seedUser(domain.User{Name: "Member", Email: "m@example.com", Role: domain.RoleMember})
	store.seedTransaction(member.ID, 1000, time.Now())
	svc := NewUserService(store)

	// Referenced as subject.
	if err := svc.Delete(context.Background(), member.ID); !errors.Is(err, domain.ErrUserHasHistory) {
		t.Fatalf("expected ErrUserHasHistory for subject, got %v", err)
	}
	if _, err := store.GetUserByID(context.Background(), member.ID); err != nil {
		t.Fatalf("user should still exist: %v", err)
	}

	// Referenced as performer only.
	store2 := newStubStore()
	performer := store2.seedUser(domain.User{Name: "Admin", Email: "admin@example.com", Role: domain.RoleAdmin})
	subject := store2.seedUser(domain.User{Name: "Member", Email: "m@example.com", Role: domain.RoleMember})
	store2.mu.Lock()
	store2.ledger = append(store2.ledger, domain.Transaction{ID: 99, UserID: subject.ID, Amount: 5, Reason: "x", PerformedBy: performer.ID, CreatedAt: time.Now()})
	store2.mu.Unlock()
	if err := NewUserService(store2).Delete(context.Background(), performer.ID); !errors.Is(err, domain.ErrUserHasHistory) {
		t.Fatalf("expected ErrUserHasHistory for performer, got %v", err)
	}
}

func TestDeleteUser_WithoutHistory(t *testing.T) {
	store := newStubStore()
	member := store.seedUser(domain.User{Name: "Member", Email: "m@example.com", Role: domain.RoleMember})
	svc := NewUserService(store)

	if err := svc.Delete(context.Background(), member.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := store.GetUserByID(context.Background(), member.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected user to be gone, got %v", err)
	}
}
