package service

import (
	"errors"
	"testing"
	"time"

	"yumzy/internal/domain/user/model"
	baseModel "yumzy/pkg/model"
	"yumzy/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// MockUserRepository is a mock of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id string) (*model.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*model.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func newTokens() *utils.TokenManager {
	return utils.NewTokenManager("user-service-test-secret-0123456789", time.Hour)
}

func createTestUser(id, email, password string) *model.User {
	hash, _ := utils.HashPassword(password)
	return &model.User{
		BaseModel: baseModel.BaseModel{ID: id},
		FullName:  "Test User",
		Email:     email,
		Password:  hash,
	}
}

func TestRegister(t *testing.T) {
	tokens := newTokens()

	t.Run("New user registration success", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo, tokens)

		mockRepo.On("GetByEmail", "new@example.com").Return(nil, gorm.ErrRecordNotFound)
		mockRepo.On("Create", mock.AnythingOfType("*model.User")).Run(func(args mock.Arguments) {
			args.Get(0).(*model.User).ID = "user-1"
		}).Return(nil)

		result, err := service.Register(" New User ", " New@Example.com ", "secret123")

		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)
		assert.Equal(t, "new@example.com", result.User.Email)
		assert.Equal(t, "New User", result.User.FullName)
		assert.NotEqual(t, "secret123", result.User.Password)

		claims, err := tokens.ParseTokenForRole(result.Token, utils.RoleUser)
		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.SubjectID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Existing email", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo, tokens)

		mockRepo.On("GetByEmail", "taken@example.com").Return(createTestUser("u", "taken@example.com", "x"), nil)

		_, err := service.Register("Taken", "taken@example.com", "secret123")

		assert.ErrorIs(t, err, ErrUserExists)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("Unique index race", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo, tokens)

		mockRepo.On("GetByEmail", "race@example.com").Return(nil, gorm.ErrRecordNotFound)
		mockRepo.On("Create", mock.AnythingOfType("*model.User")).Return(gorm.ErrDuplicatedKey)

		_, err := service.Register("Race", "race@example.com", "secret123")

		assert.ErrorIs(t, err, ErrUserExists)
	})
}

func TestLogin(t *testing.T) {
	tokens := newTokens()
	mockRepo := new(MockUserRepository)
	service := NewUserService(mockRepo, tokens)

	user := createTestUser("user-2", "login@example.com", "secret123")
	mockRepo.On("GetByEmail", "login@example.com").Return(user, nil)
	mockRepo.On("GetByEmail", "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)
	mockRepo.On("GetByEmail", "broken@example.com").Return(nil, errors.New("connection refused"))

	t.Run("Success", func(t *testing.T) {
		result, err := service.Login("LOGIN@example.com", "secret123")

		require.NoError(t, err)
		assert.Equal(t, "user-2", result.User.ID)
		assert.NotNil(t, result.ExpireAt)
	})

	t.Run("Wrong password", func(t *testing.T) {
		_, err := service.Login("login@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Unknown email", func(t *testing.T) {
		_, err := service.Login("ghost@example.com", "secret123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Repository failure", func(t *testing.T) {
		_, err := service.Login("broken@example.com", "secret123")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestGetUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := NewUserService(mockRepo, newTokens())

	mockRepo.On("GetByID", "user-3").Return(createTestUser("user-3", "a@example.com", "x"), nil)
	mockRepo.On("GetByID", "missing").Return(nil, gorm.ErrRecordNotFound)

	user, err := service.GetUser("user-3")
	require.NoError(t, err)
	assert.Equal(t, "user-3", user.ID)

	_, err = service.GetUser("missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
