package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"yumzy/internal/domain/user/model"
	"yumzy/internal/domain/user/repository"
	"yumzy/pkg/utils"

	"gorm.io/gorm"
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// AuthResult 登录/注册结果
type AuthResult struct {
	User     *model.User
	Token    string
	ExpireAt *time.Time
}

// UserService 用户服务接口
type UserService interface {
	Register(fullName, email, password string) (*AuthResult, error)
	Login(email, password string) (*AuthResult, error)
	GetUser(id string) (*model.User, error)
}

// userService 实现
type userService struct {
	repo   repository.UserRepository
	tokens *utils.TokenManager
}

// NewUserService 创建用户服务
func NewUserService(repo repository.UserRepository, tokens *utils.TokenManager) UserService {
	return &userService{repo: repo, tokens: tokens}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register 注册并直接登录
func (s *userService) Register(fullName, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)

	_, err := s.repo.GetByEmail(email)
	if err == nil {
		return nil, ErrUserExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		FullName: strings.TrimSpace(fullName),
		Email:    email,
		Password: hash,
	}
	if err := s.repo.Create(user); err != nil {
		// 并发注册时由唯一索引兜底
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.issueToken(user)
}

// Login 邮箱密码登录
func (s *userService) Login(email, password string) (*AuthResult, error) {
	user, err := s.repo.GetByEmail(normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	if !utils.CheckPassword(user.Password, password) {
		return nil, ErrInvalidCredentials
	}

	return s.issueToken(user)
}

// GetUser 获取单个用户
func (s *userService) GetUser(id string) (*model.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) issueToken(user *model.User) (*AuthResult, error) {
	token, expireAt, err := s.tokens.GenerateToken(user.ID, utils.RoleUser)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &AuthResult{User: user, Token: token, ExpireAt: expireAt}, nil
}
