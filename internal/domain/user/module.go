package user

import (
	"yumzy/internal/domain/user/handler"
	"yumzy/internal/domain/user/repository"
	"yumzy/internal/domain/user/service"
	"yumzy/internal/pkg/middleware"
	"yumzy/internal/pkg/registry"
	"yumzy/pkg/utils"

	"github.com/gin-gonic/gin"
)

// UserModule 用户模块
type UserModule struct{}

func init() {
	// 自动注册模块
	registry.Register(&UserModule{})
}

func (m *UserModule) Name() string {
	return "user"
}

func (m *UserModule) Priority() int {
	// 用户模块优先级最高，订单模块依赖用户积分
	return 1
}

func (m *UserModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入
	userRepo := repository.NewUserRepository(ctx.DB)
	userService := service.NewUserService(userRepo, ctx.Tokens)
	userHandler := handler.NewUserHandler(userService, ctx.Config.Server.CookieSecure)

	// 2. 路由注册
	setupRoutes(ctx.Router, userHandler, ctx.Tokens)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.UserHandler, tokens *utils.TokenManager) {
	authGroup := r.Group("/api/auth")
	{
		authGroup.GET("/health", h.Health)
		authGroup.POST("/user/register", h.Register)
		authGroup.POST("/user/login", h.Login)
		authGroup.POST("/user/logout", h.Logout)
		authGroup.GET("/user/logout", h.Logout)
		authGroup.GET("/verify", middleware.UserAuthMiddleware(tokens), h.Verify)
	}
}
