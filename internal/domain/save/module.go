package save

import (
	foodRepo "yumzy/internal/domain/food/repository"
	"yumzy/internal/domain/save/handler"
	"yumzy/internal/domain/save/repository"
	"yumzy/internal/domain/save/service"
	"yumzy/internal/pkg/middleware"
	"yumzy/internal/pkg/registry"
)

type SaveModule struct{}

func init() {
	registry.Register(&SaveModule{})
}

func (m *SaveModule) Name() string {
	return "save"
}

func (m *SaveModule) Priority() int {
	return 20
}

func (m *SaveModule) Init(ctx *registry.ModuleContext) error {
	saveService := service.NewSaveService(
		repository.NewSaveRepository(ctx.DB),
		foodRepo.NewFoodRepository(ctx.DB),
	)
	h := handler.NewSaveHandler(saveService)

	saveGroup := ctx.Router.Group("/api/saves")
	saveGroup.Use(middleware.UserAuthMiddleware(ctx.Tokens))
	{
		saveGroup.GET("", h.GetSavedFoods)
		saveGroup.POST("/:foodId", h.ToggleSave)
	}
	return nil
}
