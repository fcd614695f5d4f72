package handler

import (
	"errors"
	"fmt"
	"net/http"

	"yumzy/internal/domain/order/model"
	"yumzy/internal/domain/order/service"
	"yumzy/internal/pkg/middleware"
	"yumzy/pkg/logger"
	"yumzy/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type OrderHandler struct {
	service service.OrderService
}

func NewOrderHandler(service service.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// CreateOrderRequest 下单请求
type CreateOrderRequest struct {
	FoodID            string        `json:"foodId"`
	Quantity          int           `json:"quantity"`
	Address           model.Address `json:"address"`
	PaymentOption     string        `json:"paymentOption"`
	CouponCode        string        `json:"couponCode"`
	LoyaltyPointsUsed int           `json:"loyaltyPointsUsed"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type ValidateCouponRequest struct {
	CouponCode string  `json:"couponCode"`
	Amount     float64 `json:"amount"`
}

// fail 统一处理 service 错误
func (h *OrderHandler) fail(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, service.ErrMissingFields):
		response.Error(c, http.StatusBadRequest, response.ErrMissingOrderFields, "Missing required fields")
	case errors.Is(err, service.ErrInvalidPoints):
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "Invalid loyalty points")
	case errors.Is(err, service.ErrInsufficientPoints):
		response.Error(c, http.StatusBadRequest, response.ErrInsufficientPoints, "Insufficient loyalty points")
	case errors.Is(err, service.ErrInvalidStatus):
		response.Error(c, http.StatusBadRequest, response.ErrInvalidStatus, "Invalid status")
	case errors.Is(err, service.ErrCouponRequired):
		response.Error(c, http.StatusBadRequest, response.ErrCouponRequired, "Coupon code is required")
	case errors.Is(err, service.ErrInvalidCoupon):
		response.Error(c, http.StatusNotFound, response.ErrCouponInvalid, "Invalid coupon code")
	case errors.Is(err, service.ErrFoodNotFound):
		response.Error(c, http.StatusNotFound, response.ErrFoodNotFound, "Food item not found")
	case errors.Is(err, service.ErrUserNotFound):
		response.Error(c, http.StatusNotFound, response.ErrUserNotFound, "User not found")
	case errors.Is(err, service.ErrOrderNotFound):
		response.Error(c, http.StatusNotFound, response.ErrOrderNotFound, "Order not found")
	case errors.Is(err, service.ErrOrderForbidden):
		response.Error(c, http.StatusForbidden, response.ErrOrderForbidden, "Unauthorized access")
	default:
		logger.Log.Error(action+" failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Internal server error")
	}
}

// CreateOrder 下单
// @Summary 下单
// @Description 计算优惠券与积分抵扣，扣减积分并创建订单
// @Tags Order
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body CreateOrderRequest true "订单信息"
// @Success 201 {object} response.Response{data=service.PlacedOrder}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "Invalid request body")
		return
	}

	placed, err := h.service.CreateOrder(middleware.CurrentUserID(c), service.CreateOrderParams{
		FoodID:            req.FoodID,
		Quantity:          req.Quantity,
		Address:           req.Address,
		PaymentOption:     req.PaymentOption,
		CouponCode:        req.CouponCode,
		LoyaltyPointsUsed: req.LoyaltyPointsUsed,
	})
	if err != nil {
		h.fail(c, err, "create order")
		return
	}
	response.Created(c, "Order placed successfully", placed)
}

// GetOrder 订单详情
// @Summary 订单详情
// @Tags Order
// @Produce json
// @Security ApiKeyAuth
// @Param orderId path string true "订单ID"
// @Success 200 {object} response.Response{data=model.Order}
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/orders/{orderId} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.service.GetOrder(middleware.CurrentUserID(c), c.Param("orderId"))
	if err != nil {
		h.fail(c, err, "get order")
		return
	}
	response.Success(c, gin.H{"order": order})
}

// GetUserOrders 我的订单
// @Summary 用户订单列表
// @Tags Order
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} response.Response
// @Router /api/orders/user/all [get]
func (h *OrderHandler) GetUserOrders(c *gin.Context) {
	orders, err := h.service.UserOrders(middleware.CurrentUserID(c))
	if err != nil {
		h.fail(c, err, "list user orders")
		return
	}
	response.Success(c, gin.H{"orders": orders})
}

// GetPartnerOrders 商家订单
// @Summary 商家订单列表
// @Tags Order
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} response.Response
// @Router /api/orders/partner/all [get]
func (h *OrderHandler) GetPartnerOrders(c *gin.Context) {
	orders, err := h.service.PartnerOrders(middleware.CurrentPartnerID(c))
	if err != nil {
		h.fail(c, err, "list partner orders")
		return
	}
	response.Success(c, gin.H{"orders": orders})
}

// UpdateStatus 商家更新订单状态
// @Summary 更新订单状态
// @Tags Order
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param orderId path string true "订单ID"
// @Param request body UpdateStatusRequest true "新状态"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/orders/{orderId}/status [patch]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidStatus, "Invalid status")
		return
	}

	order, err := h.service.UpdateStatus(middleware.CurrentPartnerID(c), c.Param("orderId"), req.Status)
	if err != nil {
		h.fail(c, err, "update order status")
		return
	}
	response.Message(c, "Order status updated", gin.H{"order": order})
}

// ConfirmReceipt 用户确认收货
// @Summary 确认收货
// @Tags Order
// @Produce json
// @Security ApiKeyAuth
// @Param orderId path string true "订单ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/orders/{orderId}/confirm-receipt [patch]
func (h *OrderHandler) ConfirmReceipt(c *gin.Context) {
	order, err := h.service.ConfirmReceipt(middleware.CurrentUserID(c), c.Param("orderId"))
	if err != nil {
		h.fail(c, err, "confirm receipt")
		return
	}
	response.Message(c, "Order marked as received", gin.H{"order": order})
}

// ValidateCoupon 优惠券预览
// @Summary 校验优惠券
// @Tags Order
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body ValidateCouponRequest true "优惠码与金额"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/orders/validate-coupon [post]
func (h *OrderHandler) ValidateCoupon(c *gin.Context) {
	var req ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrCouponRequired, "Coupon code is required")
		return
	}

	preview, err := h.service.ValidateCoupon(req.CouponCode, req.Amount)
	if err != nil {
		h.fail(c, err, "validate coupon")
		return
	}
	response.Success(c, gin.H{
		"valid":    true,
		"discount": preview.Discount,
		"message":  fmt.Sprintf("Coupon applied successfully! You saved ₹%.2f", preview.Discount),
	})
}

// GetLoyalty 积分余额与流水
// @Summary 积分余额
// @Tags Order
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} response.Response{data=service.LoyaltySummary}
// @Router /api/orders/loyalty [get]
func (h *OrderHandler) GetLoyalty(c *gin.Context) {
	summary, err := h.service.Loyalty(middleware.CurrentUserID(c))
	if err != nil {
		h.fail(c, err, "get loyalty")
		return
	}
	response.Success(c, summary)
}
