package order

import (
	foodRepo "yumzy/internal/domain/food/repository"
	"yumzy/internal/domain/order/handler"
	"yumzy/internal/domain/order/pricing"
	"yumzy/internal/domain/order/repository"
	"yumzy/internal/domain/order/service"
	userRepo "yumzy/internal/domain/user/repository"
	"yumzy/internal/pkg/middleware"
	"yumzy/internal/pkg/registry"
	"yumzy/internal/pkg/worker"
	"yumzy/pkg/utils"

	"github.com/gin-gonic/gin"
)

// OrderModule 下单、订单状态与积分。持有积分流水 worker 池，退出时需 Close
type OrderModule struct {
	pool *worker.WorkerPool
}

func init() {
	registry.Register(&OrderModule{})
}

func (m *OrderModule) Name() string {
	return "order"
}

func (m *OrderModule) Priority() int {
	return 30
}

func (m *OrderModule) Init(ctx *registry.ModuleContext) error {
	ledger := repository.NewLoyaltyRepository(ctx.DB)

	cfg := ctx.Config.Worker
	m.pool = worker.NewWorkerPool(ledger, cfg.Num, cfg.BufferSize, cfg.MaxRetry)
	m.pool.Observe = ctx.Metrics.RecordWorkerTask
	m.pool.Start()

	orderService := service.NewOrderService(
		repository.NewOrderRepository(ctx.DB),
		ledger,
		foodRepo.NewFoodRepository(ctx.DB),
		userRepo.NewUserRepository(ctx.DB),
		pricing.NewEngine(pricing.DefaultConfig()),
		m.pool,
		ctx.Notifier,
		ctx.Metrics,
	)
	orderHandler := handler.NewOrderHandler(orderService)

	setupRoutes(ctx.Router, orderHandler, ctx.Tokens)
	return nil
}

// Close 停止 worker 池，等待队列中的流水写完
func (m *OrderModule) Close() error {
	if m.pool != nil {
		m.pool.Stop()
	}
	return nil
}

func setupRoutes(r *gin.Engine, h *handler.OrderHandler, tokens *utils.TokenManager) {
	userAuth := middleware.UserAuthMiddleware(tokens)
	partnerAuth := middleware.PartnerAuthMiddleware(tokens)

	orderGroup := r.Group("/api/orders")
	{
		orderGroup.POST("", userAuth, h.CreateOrder)
		orderGroup.POST("/validate-coupon", userAuth, h.ValidateCoupon)
		orderGroup.GET("/loyalty", userAuth, h.GetLoyalty)
		orderGroup.GET("/user/all", userAuth, h.GetUserOrders)
		orderGroup.GET("/partner/all", partnerAuth, h.GetPartnerOrders)
		orderGroup.GET("/:orderId", userAuth, h.GetOrder)
		orderGroup.PATCH("/:orderId/status", partnerAuth, h.UpdateStatus)
		orderGroup.PATCH("/:orderId/confirm-receipt", userAuth, h.ConfirmReceipt)
	}
}
