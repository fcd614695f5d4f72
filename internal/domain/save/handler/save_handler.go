package handler

import (
	"errors"
	"net/http"

	"yumzy/internal/domain/save/service"
	"yumzy/internal/pkg/middleware"
	"yumzy/pkg/logger"
	"yumzy/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SaveHandler struct {
	service service.SaveService
}

func NewSaveHandler(service service.SaveService) *SaveHandler {
	return &SaveHandler{service: service}
}

// ToggleSave 收藏/取消收藏
// @Summary 收藏或取消收藏
// @Tags Save
// @Produce json
// @Security ApiKeyAuth
// @Param foodId path string true "菜品ID"
// @Success 200 {object} response.Response "取消收藏"
// @Success 201 {object} response.Response "收藏"
// @Failure 404 {object} response.Response
// @Router /api/saves/{foodId} [post]
func (h *SaveHandler) ToggleSave(c *gin.Context) {
	saved, err := h.service.ToggleSave(middleware.CurrentUserID(c), c.Param("foodId"))
	if err != nil {
		if errors.Is(err, service.ErrFoodNotFound) {
			response.Error(c, http.StatusNotFound, response.ErrFoodNotFound, "Food item not found")
			return
		}
		logger.Log.Error("toggle save failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Internal server error")
		return
	}

	if saved {
		response.Created(c, "Saved", gin.H{"saved": true})
		return
	}
	response.Message(c, "Unsaved", gin.H{"saved": false})
}

// GetSavedFoods 我的收藏
// @Summary 收藏的菜品
// @Tags Save
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} response.Response
// @Router /api/saves [get]
func (h *SaveHandler) GetSavedFoods(c *gin.Context) {
	foods, err := h.service.SavedFoods(middleware.CurrentUserID(c))
	if err != nil {
		logger.Log.Error("list saved foods failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Internal server error")
		return
	}
	response.Success(c, gin.H{"foodItems": foods})
}
