package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sekolahvote/pemira-api/internal/domain"
	"github.com/sekolahvote/pemira-api/internal/repository"
)

type fakeAdminRepo struct {
	admins []domain.Admin
}

func (f *fakeAdminRepo) Create(_ context.Context, admin domain.Admin) (domain.Admin, error) {
	for _, a := range f.admins {
		if a.Username == admin.Username {
			return domain.Admin{}, repository.ErrAdminUsernameExists
		}
	}
	admin.ID = uint(len(f.admins) + 1)
	f.admins = append(f.admins, admin)

	return admin, nil
}

func (f *fakeAdminRepo) FindByID(_ context.Context, id uint) (domain.Admin, error) {
	for _, a := range f.admins {
		if a.ID == id {
			return a, nil
		}
	}

	return domain.Admin{}, repository.ErrAdminNotFound
}

func (f *fakeAdminRepo) FindByUsername(_ context.Context, username string) (domain.Admin, error) {
	for _, a := range f.admins {
		if a.Username == username {
			return a, nil
		}
	}

	return domain.Admin{}, repository.ErrAdminNotFound
}

func (f *fakeAdminRepo) ListAll(_ context.Context) ([]domain.Admin, error) {
	return f.admins, nil
}

func (f *fakeAdminRepo) Delete(_ context.Context, id uint) error {
	for i, a := range f.admins {
		if a.ID == id {
			f.admins = append(f.admins[:i], f.admins[i+1:]...)

			return nil
		}
	}

	return repository.ErrAdminNotFound
}

func TestAuthService_CreateAdmin(t *testing.T) {
	repo := &fakeAdminRepo{}
	svc := NewAuthService(repo)

	created, err := svc.CreateAdmin(context.Background(), domain.Admin{
		Username: "admin",
		Password: "secret123",
	})
	require.NoError(t, err)

	assert.NotEqual(t, "secret123", created.Password, "passwords are never stored in plaintext")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("secret123")))
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	repo := &fakeAdminRepo{}
	svc := NewAuthService(repo)

	_, err := svc.CreateAdmin(ctx, domain.Admin{Username: "admin", Password: "secret123"})
	require.NoError(t, err)

	t.Run("correct credentials", func(t *testing.T) {
		admin, err := svc.Login(ctx, "admin", "secret123")
		require.NoError(t, err)
		assert.Equal(t, "admin", admin.Username)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "admin", "wrong-password")
		assert.ErrorIs(t, err, ErrWrongPassword)
	})

	t.Run("unknown username", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody", "secret123")
		assert.ErrorIs(t, err, ErrAdminNotFound)
	})
}
