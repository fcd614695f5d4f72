package handler

import (
	"errors"
	"net/http"
	"time"

	"yumzy/internal/domain/partner/model"
	"yumzy/internal/domain/partner/service"
	"yumzy/internal/pkg/middleware"
	"yumzy/pkg/logger"
	"yumzy/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PartnerHandler struct {
	service      service.PartnerService
	cookieSecure bool
}

func NewPartnerHandler(service service.PartnerService, cookieSecure bool) *PartnerHandler {
	return &PartnerHandler{service: service, cookieSecure: cookieSecure}
}

type RegisterInput struct {
	Name        string `json:"name" binding:"required"`
	ContactName string `json:"contactName" binding:"required"`
	Phone       string `json:"phone" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	Address     string `json:"address"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ProfileInput struct {
	Lat     *float64 `json:"lat"`
	Lng     *float64 `json:"lng"`
	Address *string  `json:"address"`
	Logo    *string  `json:"logo"`
}

type AuthResponse struct {
	Partner *model.FoodPartner `json:"partner"`
	Token   string             `json:"token"`
}

func (h *PartnerHandler) setCookie(c *gin.Context, result *service.AuthResult) {
	maxAge := 0
	if result.ExpireAt != nil {
		maxAge = int(time.Until(*result.ExpireAt).Seconds())
	}
	middleware.SetAuthCookie(c, middleware.PartnerTokenCookie, result.Token, maxAge, h.cookieSecure)
}

// Register 商家注册
// @Summary 商家注册
// @Tags Partner
// @Accept json
// @Produce json
// @Param input body RegisterInput true "注册信息"
// @Success 201 {object} response.Response{data=AuthResponse}
// @Failure 400 {object} response.Response
// @Router /api/auth/food-partner/register [post]
func (h *PartnerHandler) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	result, err := h.service.Register(service.RegisterParams{
		Name:        input.Name,
		ContactName: input.ContactName,
		Phone:       input.Phone,
		Email:       input.Email,
		Password:    input.Password,
		Address:     input.Address,
	})
	if err != nil {
		if errors.Is(err, service.ErrPartnerExists) {
			response.Error(c, http.StatusBadRequest, response.ErrPartnerExists, "Food partner already exists")
			return
		}
		logger.Log.Error("register partner failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Internal server error")
		return
	}

	h.setCookie(c, result)
	response.Created(c, "Food partner registered successfully", AuthResponse{Partner: result.Partner, Token: result.Token})
}

// Login 商家登录
// @Summary 商家登录
// @Tags Partner
// @Accept json
// @Produce json
// @Param input body LoginInput true "登录信息"
// @Success 200 {object} response.Response{data=AuthResponse}
// @Failure 400 {object} response.Response
// @Router /api/auth/food-partner/login [post]
func (h *PartnerHandler) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	result, err := h.service.Login(input.Email, input.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Error(c, http.StatusBadRequest, response.ErrAuthFailed, "Invalid credentials")
			return
		}
		logger.Log.Error("login partner failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Internal server error")
		return
	}

	h.setCookie(c, result)
	response.Message(c, "Food partner logged in successfully", AuthResponse{Partner: result.Partner, Token: result.Token})
}

// Logout 商家登出
// @Summary 商家登出
// @Tags Partner
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/auth/food-partner/logout [post]
func (h *PartnerHandler) Logout(c *gin.Context) {
	middleware.ClearAuthCookie(c, middleware.PartnerTokenCookie, h.cookieSecure)
	response.Message(c, "Food partner logged out successfully", nil)
}

// Verify 校验商家登录态
// @Summary 校验商家登录态
// @Tags Partner
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/auth/verify-partner [get]
func (h *PartnerHandler) Verify(c *gin.Context) {
	partner, err := h.service.GetPartner(middleware.CurrentPartnerID(c))
	if err != nil {
		if errors.Is(err, service.ErrPartnerNotFound) {
			response.Error(c, http.StatusUnauthorized, response.ErrPartnerNotFound, "Food partner not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Internal server error")
		return
	}

	response.Success(c, gin.H{
		"authenticated": true,
		"partner":       partner,
	})
}

// UpdateProfile 更新门店资料
// @Summary 更新门店位置与 logo
// @Tags Partner
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param input body ProfileInput true "门店资料"
// @Success 200 {object} response.Response{data=model.FoodPartner}
// @Failure 404 {object} response.Response
// @Router /api/food-partner/profile [put]
func (h *PartnerHandler) UpdateProfile(c *gin.Context) {
	var input ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	partner, err := h.service.UpdateProfile(middleware.CurrentPartnerID(c), service.ProfileParams{
		Lat:     input.Lat,
		Lng:     input.Lng,
		Address: input.Address,
		Logo:    input.Logo,
	})
	if err != nil {
		if errors.Is(err, service.ErrPartnerNotFound) {
			response.Error(c, http.StatusNotFound, response.ErrPartnerNotFound, "Food partner not found")
			return
		}
		logger.Log.Error("update partner profile failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Internal server error")
		return
	}

	response.Message(c, "Profile updated successfully", partner)
}
