package food

import (
	"yumzy/internal/domain/food/handler"
	"yumzy/internal/domain/food/repository"
	"yumzy/internal/domain/food/service"
	partnerRepo "yumzy/internal/domain/partner/repository"
	"yumzy/internal/pkg/middleware"
	"yumzy/internal/pkg/registry"
	"yumzy/pkg/utils"

	"github.com/gin-gonic/gin"
)

// FoodModule 菜品信息流与点赞
type FoodModule struct{}

func init() {
	registry.Register(&FoodModule{})
}

func (m *FoodModule) Name() string {
	return "food"
}

func (m *FoodModule) Priority() int {
	return 10
}

func (m *FoodModule) Init(ctx *registry.ModuleContext) error {
	foodService := service.NewFoodService(
		repository.NewFoodRepository(ctx.DB),
		repository.NewLikeRepository(ctx.DB),
		partnerRepo.NewPartnerRepository(ctx.DB),
		ctx.Cache,
		ctx.Uploader,
		ctx.Metrics,
	)
	foodHandler := handler.NewFoodHandler(foodService)

	setupRoutes(ctx.Router, foodHandler, ctx.Tokens)
	return nil
}

func setupRoutes(r *gin.Engine, h *handler.FoodHandler, tokens *utils.TokenManager) {
	foodGroup := r.Group("/api/food")
	{
		foodGroup.POST("", middleware.PartnerAuthMiddleware(tokens), h.CreateFood)
		foodGroup.GET("", h.GetAllFood)
		foodGroup.GET("/my-food", middleware.PartnerAuthMiddleware(tokens), h.GetMyFood)
		foodGroup.GET("/partner/:id", h.GetPartnerStore)
		foodGroup.GET("/:id/like-status", middleware.OptionalUserAuth(tokens), h.GetLikeStatus)
		foodGroup.GET("/:id", h.GetFoodByID)
		foodGroup.POST("/:id/like", middleware.UserAuthMiddleware(tokens), h.ToggleLike)
	}
}
