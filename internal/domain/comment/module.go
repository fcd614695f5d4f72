package comment

import (
	"yumzy/internal/domain/comment/handler"
	"yumzy/internal/domain/comment/repository"
	"yumzy/internal/domain/comment/service"
	foodRepo "yumzy/internal/domain/food/repository"
	"yumzy/internal/pkg/middleware"
	"yumzy/internal/pkg/registry"
	"yumzy/pkg/utils"

	"github.com/gin-gonic/gin"
)

type CommentModule struct{}

func init() {
	registry.Register(&CommentModule{})
}

func (m *CommentModule) Name() string {
	return "comment"
}

func (m *CommentModule) Priority() int {
	return 20
}

func (m *CommentModule) Init(ctx *registry.ModuleContext) error {
	commentService := service.NewCommentService(
		repository.NewCommentRepository(ctx.DB),
		foodRepo.NewFoodRepository(ctx.DB),
	)
	setupRoutes(ctx.Router, handler.NewCommentHandler(commentService), ctx.Tokens)
	return nil
}

func setupRoutes(r *gin.Engine, h *handler.CommentHandler, tokens *utils.TokenManager) {
	commentGroup := r.Group("/api/comments")
	{
		commentGroup.GET("/:foodId", h.GetComments)
		commentGroup.POST("/:foodId", middleware.UserAuthMiddleware(tokens), h.AddComment)
	}
}
