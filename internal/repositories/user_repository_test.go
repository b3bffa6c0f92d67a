package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/biyonik/atom/pkg/auth"
	"github.com/biyonik/atom/pkg/testutil"
	"golang.org/x/crypto/bcrypt"
)

func newRepo(t *testing.T) *UserRepository {
	t.Helper()
	db := testutil.SQLiteDatabase(t, UsersTableSQLite)
	return NewUserRepository(db, auth.NewHasher(bcrypt.MinCost))
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	user, err := repo.Create(ctx, "Ali", "ali@example.com", "secret123")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if user.ID != 1 {
		t.Errorf("Expected ID 1, got %d", user.ID)
	}
	if user.Password == "secret123" {
		t.Error("Password must be stored hashed")
	}

	found, err := repo.Find(ctx, user.ID)
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if found.Email != "ali@example.com" || found.Password != user.Password {
		t.Errorf("Unexpected user: %+v", found)
	}

	if _, err := repo.Find(ctx, 42); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepository_All(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	repo.Create(ctx, "Ali", "ali@example.com", "pw")
	repo.Create(ctx, "Ayşe", "ayse@example.com", "pw")

	users, err := repo.All(ctx)
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(users) != 2 || users[1].Name != "Ayşe" {
		t.Errorf("Unexpected users: %+v", users)
	}
}

func TestUserRepository_Update(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	user, _ := repo.Create(ctx, "Ali", "ali@example.com", "old-password")

	name := "Ali Veli"
	password := "new-password"
	updated, err := repo.Update(ctx, user.ID, UserUpdate{Name: &name, Password: &password})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Name != "Ali Veli" || updated.Email != "ali@example.com" {
		t.Errorf("Unexpected user: %+v", updated)
	}

	if _, err := repo.Authenticate(ctx, "ali@example.com", "new-password"); err != nil {
		t.Errorf("Expected new password to authenticate, got %v", err)
	}
	if _, err := repo.Authenticate(ctx, "ali@example.com", "old-password"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Expected old password to fail, got %v", err)
	}

	if _, err := repo.Update(ctx, user.ID, UserUpdate{}); !errors.Is(err, ErrNothingToUpdate) {
		t.Errorf("Expected ErrNothingToUpdate, got %v", err)
	}
	if _, err := repo.Update(ctx, 99, UserUpdate{Name: &name}); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepository_Delete(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	user, _ := repo.Create(ctx, "Ali", "ali@example.com", "pw")

	if err := repo.Delete(ctx, user.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := repo.Delete(ctx, user.ID); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound on second delete, got %v", err)
	}
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	if _, err := repo.Create(ctx, "Ali", "ali@example.com", "pw"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := repo.Create(ctx, "Ali 2", "ali@example.com", "pw"); err == nil {
		t.Error("Expected unique constraint error")
	}
}
