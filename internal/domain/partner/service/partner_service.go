package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"yumzy/internal/domain/partner/model"
	"yumzy/internal/domain/partner/repository"
	"yumzy/pkg/utils"

	"gorm.io/gorm"
)

var (
	ErrPartnerExists      = errors.New("food partner already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPartnerNotFound    = errors.New("food partner not found")
)

// RegisterParams 商家注册参数
type RegisterParams struct {
	Name        string
	ContactName string
	Phone       string
	Email       string
	Password    string
	Address     string
}

// ProfileParams 商家资料更新，nil 字段不修改
type ProfileParams struct {
	Lat     *float64
	Lng     *float64
	Address *string
	Logo    *string
}

type AuthResult struct {
	Partner  *model.FoodPartner
	Token    string
	ExpireAt *time.Time
}

type PartnerService interface {
	Register(params RegisterParams) (*AuthResult, error)
	Login(email, password string) (*AuthResult, error)
	GetPartner(id string) (*model.FoodPartner, error)
	UpdateProfile(id string, params ProfileParams) (*model.FoodPartner, error)
}

type partnerService struct {
	repo   repository.PartnerRepository
	tokens *utils.TokenManager
}

func NewPartnerService(repo repository.PartnerRepository, tokens *utils.TokenManager) PartnerService {
	return &partnerService{repo: repo, tokens: tokens}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *partnerService) Register(params RegisterParams) (*AuthResult, error) {
	email := normalizeEmail(params.Email)

	_, err := s.repo.GetByEmail(email)
	if err == nil {
		return nil, ErrPartnerExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find partner by email: %w", err)
	}

	hash, err := utils.HashPassword(params.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	partner := &model.FoodPartner{
		Name:        strings.TrimSpace(params.Name),
		ContactName: strings.TrimSpace(params.ContactName),
		Phone:       strings.TrimSpace(params.Phone),
		Email:       email,
		Password:    hash,
		Location:    model.Location{Address: strings.TrimSpace(params.Address)},
	}
	if err := s.repo.Create(partner); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrPartnerExists
		}
		return nil, fmt.Errorf("create partner: %w", err)
	}

	return s.issueToken(partner)
}

func (s *partnerService) Login(email, password string) (*AuthResult, error) {
	partner, err := s.repo.GetByEmail(normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find partner by email: %w", err)
	}

	if !utils.CheckPassword(partner.Password, password) {
		return nil, ErrInvalidCredentials
	}

	return s.issueToken(partner)
}

func (s *partnerService) GetPartner(id string) (*model.FoodPartner, error) {
	partner, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPartnerNotFound
		}
		return nil, err
	}
	return partner, nil
}

// UpdateProfile 更新门店位置与 logo
func (s *partnerService) UpdateProfile(id string, params ProfileParams) (*model.FoodPartner, error) {
	updates := map[string]interface{}{}
	if params.Lat != nil {
		updates["location_lat"] = *params.Lat
	}
	if params.Lng != nil {
		updates["location_lng"] = *params.Lng
	}
	if params.Address != nil {
		updates["location_address"] = strings.TrimSpace(*params.Address)
	}
	if params.Logo != nil {
		updates["logo"] = strings.TrimSpace(*params.Logo)
	}

	if len(updates) > 0 {
		if err := s.repo.UpdateProfile(id, updates); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrPartnerNotFound
			}
			return nil, fmt.Errorf("update partner profile: %w", err)
		}
	}

	return s.GetPartner(id)
}

func (s *partnerService) issueToken(partner *model.FoodPartner) (*AuthResult, error) {
	token, expireAt, err := s.tokens.GenerateToken(partner.ID, utils.RolePartner)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &AuthResult{Partner: partner, Token: token, ExpireAt: expireAt}, nil
}
