package handler

import (
	"errors"
	"net/http"
	"time"

	"yumzy/internal/domain/user/service"
	"yumzy/internal/pkg/middleware"
	"yumzy/pkg/logger"
	"yumzy/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler 用户处理器
type UserHandler struct {
	service      service.UserService
	cookieSecure bool
}

// NewUserHandler 创建处理器
func NewUserHandler(service service.UserService, cookieSecure bool) *UserHandler {
	return &UserHandler{service: service, cookieSecure: cookieSecure}
}

// RegisterInput 注册输入
type RegisterInput struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginInput 登录输入
type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse 登录/注册响应
type AuthResponse struct {
	User  UserView `json:"user"`
	Token string   `json:"token"`
}

// UserView 对外暴露的用户信息
type UserView struct {
	ID            string `json:"id"`
	FullName      string `json:"fullName"`
	Email         string `json:"email"`
	LoyaltyPoints int    `json:"loyaltyPoints"`
}

func (h *UserHandler) setCookie(c *gin.Context, result *service.AuthResult) {
	maxAge := 0
	if result.ExpireAt != nil {
		maxAge = int(time.Until(*result.ExpireAt).Seconds())
	}
	middleware.SetAuthCookie(c, middleware.UserTokenCookie, result.Token, maxAge, h.cookieSecure)
}

func toAuthResponse(result *service.AuthResult) AuthResponse {
	return AuthResponse{
		User: UserView{
			ID:            result.User.ID,
			FullName:      result.User.FullName,
			Email:         result.User.Email,
			LoyaltyPoints: result.User.LoyaltyPoints,
		},
		Token: result.Token,
	}
}

// Register 用户注册
// @Summary 用户注册
// @Tags Auth
// @Accept json
// @Produce json
// @Param input body RegisterInput true "注册信息"
// @Success 201 {object} response.Response{data=AuthResponse}
// @Failure 400 {object} response.Response
// @Router /api/auth/user/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	result, err := h.service.Register(input.FullName, input.Email, input.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			response.Error(c, http.StatusBadRequest, response.ErrUserExists, "User already exists")
			return
		}
		logger.Log.Error("register user failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Internal server error")
		return
	}

	h.setCookie(c, result)
	response.Created(c, "User registered successfully", toAuthResponse(result))
}

// Login 用户登录
// @Summary 用户登录
// @Tags Auth
// @Accept json
// @Produce json
// @Param input body LoginInput true "登录信息"
// @Success 200 {object} response.Response{data=AuthResponse}
// @Failure 400 {object} response.Response
// @Router /api/auth/user/login [post]
func (h *UserHandler) Login(c *gin.Context) {
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
		logger.Log.Error("login user failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Internal server error")
		return
	}

	h.setCookie(c, result)
	response.Message(c, "User logged in successfully", toAuthResponse(result))
}

// Logout 用户登出
// @Summary 用户登出
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/auth/user/logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	middleware.ClearAuthCookie(c, middleware.UserTokenCookie, h.cookieSecure)
	response.Message(c, "User logged out successfully", nil)
}

// Verify 校验当前用户登录态
// @Summary 校验用户登录态
// @Tags Auth
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} response.Response{data=UserView}
// @Failure 401 {object} response.Response
// @Router /api/auth/verify [get]
func (h *UserHandler) Verify(c *gin.Context) {
	user, err := h.service.GetUser(middleware.CurrentUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.Error(c, http.StatusUnauthorized, response.ErrUserNotFound, "User not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Internal server error")
		return
	}

	response.Success(c, gin.H{
		"authenticated": true,
		"user": UserView{
			ID:            user.ID,
			FullName:      user.FullName,
			Email:         user.Email,
			LoyaltyPoints: user.LoyaltyPoints,
		},
	})
}

// Health 认证服务存活检查
// @Summary 认证服务健康检查
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/auth/health [get]
func (h *UserHandler) Health(c *gin.Context) {
	response.Message(c, "Auth service is running", gin.H{"timestamp": time.Now().UTC()})
}
