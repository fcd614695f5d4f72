package common

import (
	_ "yumzy/docs"
	commonHandler "yumzy/internal/pkg/common"
	"yumzy/internal/pkg/middleware"
	"yumzy/internal/pkg/registry"
	"yumzy/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// CommonModule 通用功能模块
type CommonModule struct{}

func init() {
	registry.Register(&CommonModule{})
}

func (m *CommonModule) Name() string {
	return "common"
}

func (m *CommonModule) Priority() int {
	return 100 // 最后初始化
}

func (m *CommonModule) Init(ctx *registry.ModuleContext) error {
	h := commonHandler.NewCommonHandler(ctx.Uploader, ctx.DB)
	setupRoutes(ctx.Router, h, ctx.Tokens)
	return nil
}

func setupRoutes(r *gin.Engine, h *commonHandler.CommonHandler, tokens *utils.TokenManager) {
	r.GET("/", h.Hello)
	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 文件上传接口，用户与商家均可使用
	r.POST("/upload", middleware.AnyAuthMiddleware(tokens), h.UploadFile)
}
