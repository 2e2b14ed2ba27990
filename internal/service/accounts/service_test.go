package accounts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dkoval/barbershop-booking/internal/domain"
	userRepo "github.com/dkoval/barbershop-booking/internal/infra/storage/user"
	"github.com/dkoval/barbershop-booking/internal/service/accounts/models"
)

// Mock repository for testing

type mockUserRepository struct {
	createFunc     func(ctx context.Context, user *domain.User) (*domain.User, error)
	getByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	created := *user
	created.ID = 1
	return &created, nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.getByEmailFunc != nil {
		return m.getByEmailFunc(ctx, email)
	}
	return nil, userRepo.ErrUserNotFound
}

type mockTokenIssuer struct {
	issueFunc func(userID int64, email, role string) (string, error)
}

func (m *mockTokenIssuer) Issue(userID int64, email, role string) (string, error) {
	if m.issueFunc != nil {
		return m.issueFunc(userID, email, role)
	}
	return "test-token", nil
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

func validRegisterRequest() *models.RegisterRequest {
	return &models.RegisterRequest{
		Name:     "Петр Петров",
		Email:    "petr@example.com",
		Password: "secret123",
	}
}

// Tests

func TestRegister(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var createdUser *domain.User
		repo := &mockUserRepository{
			createFunc: func(ctx context.Context, user *domain.User) (*domain.User, error) {
				createdUser = user
				created := *user
				created.ID = 42
				return &created, nil
			},
		}
		svc := NewService(repo, &mockTokenIssuer{}, noopLogger{})

		resp, err := svc.Register(context.Background(), validRegisterRequest())
		require.NoError(t, err)

		assert.Equal(t, "test-token", resp.Token)
		assert.Equal(t, int64(42), resp.User.ID)
		assert.Equal(t, "petr@example.com", resp.User.Email)
		assert.Equal(t, string(domain.RoleCustomer), resp.User.Role)

		require.NotNil(t, createdUser)
		assert.Equal(t, domain.RoleCustomer, createdUser.Role)
		// Пароль хранится только в виде bcrypt-хеша
		assert.NotEqual(t, "secret123", createdUser.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(createdUser.PasswordHash), []byte("secret123")))
	})

	t.Run("normalizes email", func(t *testing.T) {
		var createdUser *domain.User
		repo := &mockUserRepository{
			createFunc: func(ctx context.Context, user *domain.User) (*domain.User, error) {
				createdUser = user
				created := *user
				created.ID = 1
				return &created, nil
			},
		}
		svc := NewService(repo, &mockTokenIssuer{}, noopLogger{})

		req := validRegisterRequest()
		req.Email = "  Petr@Example.COM "
		_, err := svc.Register(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "petr@example.com", createdUser.Email)
	})

	t.Run("email taken", func(t *testing.T) {
		repo := &mockUserRepository{
			createFunc: func(ctx context.Context, user *domain.User) (*domain.User, error) {
				return nil, userRepo.ErrEmailTaken
			},
		}
		svc := NewService(repo, &mockTokenIssuer{}, noopLogger{})

		_, err := svc.Register(context.Background(), validRegisterRequest())
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("validation", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(req *models.RegisterRequest)
		}{
			{"empty name", func(req *models.RegisterRequest) { req.Name = "  " }},
			{"empty email", func(req *models.RegisterRequest) { req.Email = "" }},
			{"email without @", func(req *models.RegisterRequest) { req.Email = "petr.example.com" }},
			{"short password", func(req *models.RegisterRequest) { req.Password = "12345" }},
		}

		svc := NewService(&mockUserRepository{}, &mockTokenIssuer{}, noopLogger{})

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				req := validRegisterRequest()
				tt.mutate(req)

				_, err := svc.Register(context.Background(), req)
				assert.ErrorIs(t, err, ErrInvalidInput)
			})
		}
	})
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	storedUser := &domain.User{
		ID:           42,
		Name:         "Петр Петров",
		Email:        "petr@example.com",
		PasswordHash: string(hash),
		Role:         domain.RoleCustomer,
	}

	repo := &mockUserRepository{
		getByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			if email == storedUser.Email {
				return storedUser, nil
			}
			return nil, userRepo.ErrUserNotFound
		},
	}

	t.Run("success", func(t *testing.T) {
		tokens := &mockTokenIssuer{
			issueFunc: func(userID int64, email, role string) (string, error) {
				assert.Equal(t, int64(42), userID)
				assert.Equal(t, "petr@example.com", email)
				assert.Equal(t, "customer", role)
				return "issued-token", nil
			},
		}
		svc := NewService(repo, tokens, noopLogger{})

		resp, err := svc.Login(context.Background(), &models.LoginRequest{
			Email:    "Petr@Example.com",
			Password: "secret123",
		})
		require.NoError(t, err)
		assert.Equal(t, "issued-token", resp.Token)
		assert.Equal(t, int64(42), resp.User.ID)
	})

	t.Run("unknown email", func(t *testing.T) {
		svc := NewService(repo, &mockTokenIssuer{}, noopLogger{})

		_, err := svc.Login(context.Background(), &models.LoginRequest{
			Email:    "ghost@example.com",
			Password: "secret123",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc := NewService(repo, &mockTokenIssuer{}, noopLogger{})

		_, err := svc.Login(context.Background(), &models.LoginRequest{
			Email:    "petr@example.com",
			Password: "wrong-password",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("empty credentials", func(t *testing.T) {
		svc := NewService(repo, &mockTokenIssuer{}, noopLogger{})

		_, err := svc.Login(context.Background(), &models.LoginRequest{})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
