package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"yumzy/internal/domain/food/service"
	"yumzy/internal/pkg/middleware"
	"yumzy/internal/pkg/uploader"
	"yumzy/pkg/logger"
	"yumzy/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// 视频字段名，兼容前端历史拼写
var videoFields = []string{"video", "vedio", "videoFile"}

type FoodHandler struct {
	service service.FoodService
}

func NewFoodHandler(service service.FoodService) *FoodHandler {
	return &FoodHandler{service: service}
}

// pickVideo 按字段名优先级选取视频文件，都不存在时取第一个文件
func pickVideo(form *multipart.Form) *multipart.FileHeader {
	if form == nil {
		return nil
	}
	for _, field := range videoFields {
		if files := form.File[field]; len(files) > 0 {
			return files[0]
		}
	}
	for _, files := range form.File {
		if len(files) > 0 {
			return files[0]
		}
	}
	return nil
}

// CreateFood 商家发布菜品
// @Summary 发布视频菜品
// @Tags Food
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param name formData string true "菜品名称"
// @Param price formData number true "价格"
// @Param description formData string false "描述"
// @Param video formData file true "视频文件"
// @Success 201 {object} response.Response{data=model.Food}
// @Failure 400 {object} response.Response
// @Router /api/food [post]
func (h *FoodHandler) CreateFood(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrVideoRequired, "Video file is required")
		return
	}

	video := pickVideo(form)
	if video == nil {
		response.Error(c, http.StatusBadRequest, response.ErrVideoRequired, "Video file is required")
		return
	}

	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "Invalid price")
		return
	}

	food, err := h.service.CreateFood(c.Request.Context(), middleware.CurrentPartnerID(c), service.CreateFoodParams{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Price:       price,
		Video:       video,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrVideoRequired):
			response.Error(c, http.StatusBadRequest, response.ErrVideoRequired, "Video file is required")
		case errors.Is(err, service.ErrInvalidFood):
			response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "Name is required and price must not be negative")
		case errors.Is(err, uploader.ErrNotConfigured):
			response.Error(c, http.StatusServiceUnavailable, response.ErrStorageDisabled, "Object storage is not configured")
		default:
			logger.Log.Error("create food failed", zap.Error(err))
			response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Internal server error")
		}
		return
	}

	response.Created(c, "Food created successfully", food)
}

// GetAllFood 信息流
// @Summary 菜品信息流
// @Tags Food
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/food [get]
func (h *FoodHandler) GetAllFood(c *gin.Context) {
	foods, err := h.service.Feed(c.Request.Context())
	if err != nil {
		logger.Log.Error("load feed failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Internal server error")
		return
	}
	response.Success(c, gin.H{"foodItems": foods})
}

// GetMyFood 当前商家的菜品
// @Summary 我的菜品
// @Tags Food
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} response.Response
// @Router /api/food/my-food [get]
func (h *FoodHandler) GetMyFood(c *gin.Context) {
	foods, err := h.service.MyFood(middleware.CurrentPartnerID(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Internal server error")
		return
	}
	response.Success(c, gin.H{"foodItems": foods})
}

// GetPartnerStore 商家店铺页
// @Summary 商家店铺
// @Tags Food
// @Produce json
// @Param id path string true "商家ID"
// @Success 200 {object} response.Response{data=service.Store}
// @Failure 404 {object} response.Response
// @Router /api/food/partner/{id} [get]
func (h *FoodHandler) GetPartnerStore(c *gin.Context) {
	store, err := h.service.PartnerStore(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrStoreNotFound) {
			response.Error(c, http.StatusNotFound, response.ErrPartnerNotFound, "Store not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Internal server error")
		return
	}
	response.Success(c, store)
}

// GetFoodByID 菜品详情
// @Summary 菜品详情
// @Tags Food
// @Produce json
// @Param id path string true "菜品ID"
// @Success 200 {object} response.Response{data=model.Food}
// @Failure 404 {object} response.Response
// @Router /api/food/{id} [get]
func (h *FoodHandler) GetFoodByID(c *gin.Context) {
	food, err := h.service.GetFood(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrFoodNotFound) {
			response.Error(c, http.StatusNotFound, response.ErrFoodNotFound, "Food item not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Internal server error")
		return
	}
	response.Success(c, gin.H{"foodItem": food})
}

// GetLikeStatus 点赞状态，未登录时 liked 为 false
// @Summary 点赞状态
// @Tags Food
// @Produce json
// @Param id path string true "菜品ID"
// @Success 200 {object} response.Response{data=service.LikeState}
// @Router /api/food/{id}/like-status [get]
func (h *FoodHandler) GetLikeStatus(c *gin.Context) {
	state, err := h.service.LikeStatus(middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Internal server error")
		return
	}
	response.Success(c, state)
}

// ToggleLike 点赞/取消点赞
// @Summary 点赞或取消点赞
// @Tags Food
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "菜品ID"
// @Success 200 {object} response.Response{data=service.LikeState} "取消点赞"
// @Success 201 {object} response.Response{data=service.LikeState} "点赞"
// @Failure 404 {object} response.Response
// @Router /api/food/{id}/like [post]
func (h *FoodHandler) ToggleLike(c *gin.Context) {
	state, err := h.service.ToggleLike(middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrFoodNotFound) {
			response.Error(c, http.StatusNotFound, response.ErrFoodNotFound, "Food item not found")
			return
		}
		logger.Log.Error("toggle like failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Internal server error")
		return
	}

	if state.Liked {
		response.Created(c, "Liked", state)
		return
	}
	response.Message(c, "Unliked", state)
}
