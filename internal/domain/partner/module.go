package partner

import (
	"yumzy/internal/domain/partner/handler"
	"yumzy/internal/domain/partner/repository"
	"yumzy/internal/domain/partner/service"
	"yumzy/internal/pkg/middleware"
	"yumzy/internal/pkg/registry"
	"yumzy/pkg/utils"

	"github.com/gin-gonic/gin"
)

// PartnerModule 商家模块
type PartnerModule struct{}

func init() {
	registry.Register(&PartnerModule{})
}

func (m *PartnerModule) Name() string {
	return "partner"
}

func (m *PartnerModule) Priority() int {
	return 2
}

func (m *PartnerModule) Init(ctx *registry.ModuleContext) error {
	partnerRepo := repository.NewPartnerRepository(ctx.DB)
	partnerService := service.NewPartnerService(partnerRepo, ctx.Tokens)
	partnerHandler := handler.NewPartnerHandler(partnerService, ctx.Config.Server.CookieSecure)

	setupRoutes(ctx.Router, partnerHandler, ctx.Tokens)
	return nil
}

func setupRoutes(r *gin.Engine, h *handler.PartnerHandler, tokens *utils.TokenManager) {
	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/food-partner/register", h.Register)
		authGroup.POST("/food-partner/login", h.Login)
		authGroup.POST("/food-partner/logout", h.Logout)
		authGroup.GET("/food-partner/logout", h.Logout)
		authGroup.GET("/verify-partner", middleware.PartnerAuthMiddleware(tokens), h.Verify)
	}

	partnerGroup := r.Group("/api/food-partner")
	partnerGroup.Use(middleware.PartnerAuthMiddleware(tokens))
	{
		partnerGroup.PUT("/profile", h.UpdateProfile)
	}
}
