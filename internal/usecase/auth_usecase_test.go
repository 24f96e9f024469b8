package usecase

import (
	"testing"

	"chitrashala/internal/entity"
	"chitrashala/internal/repo/persistent"
	"chitrashala/pkg/jwt"
	"chitrashala/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of persistent.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *entity.User) error {
	args := m.Called(user)
	if args.Error(0) == nil && user.ID == "" {
		user.ID = "user-123"
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id string) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*entity.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(username string) (*entity.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

var _ persistent.UserRepository = (*MockUserRepository)(nil)

func newTestAuthUseCase(userRepo *MockUserRepository) AuthUseCase {
	return NewAuthUseCase(userRepo, jwt.NewService("test-secret-key"), logger.New())
}

func TestRegister_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newTestAuthUseCase(userRepo)

	userRepo.On("GetByEmail", "new@example.com").Return(nil, persistent.ErrNotFound)
	userRepo.On("GetByUsername", "newuser").Return(nil, persistent.ErrNotFound)
	userRepo.On("Create", mock.AnythingOfType("*entity.User")).Return(nil)

	user, token, err := uc.Register("new@example.com", "newuser", "password123")

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "user-123", user.ID)
	assert.Empty(t, user.Password)
	userRepo.AssertExpectations(t)
}

func TestRegister_EmailTaken(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newTestAuthUseCase(userRepo)

	existing := &entity.User{ID: "user-1", Email: "taken@example.com"}
	userRepo.On("GetByEmail", "taken@example.com").Return(existing, nil)

	_, _, err := uc.Register("taken@example.com", "newuser", "password123")

	assert.Error(t, err)
	userRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestLogin_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newTestAuthUseCase(userRepo)

	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	stored := &entity.User{
		ID:       "user-1",
		Email:    "user@example.com",
		Username: "user",
		Password: string(hash),
		Role:     entity.RoleViewer,
	}
	userRepo.On("GetByEmail", "user@example.com").Return(stored, nil)

	user, token, err := uc.Login("user@example.com", "password123")

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "user-1", user.ID)
	assert.Empty(t, user.Password)
}

func TestLogin_WrongPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newTestAuthUseCase(userRepo)

	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	stored := &entity.User{ID: "user-1", Email: "user@example.com", Password: string(hash)}
	userRepo.On("GetByEmail", "user@example.com").Return(stored, nil)

	_, _, err := uc.Login("user@example.com", "wrong-password")

	assert.Error(t, err)
}

func TestLogin_UnknownEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newTestAuthUseCase(userRepo)

	userRepo.On("GetByEmail", "nobody@example.com").Return(nil, persistent.ErrNotFound)

	_, _, err := uc.Login("nobody@example.com", "password123")

	assert.Error(t, err)
}
