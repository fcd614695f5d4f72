package handler

import (
	"errors"
	"net/http"

	"yumzy/internal/domain/comment/service"
	"yumzy/internal/pkg/middleware"
	"yumzy/pkg/logger"
	"yumzy/pkg/response"
	"yumzy/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CommentHandler struct {
	service service.CommentService
}

func NewCommentHandler(service service.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

type AddCommentInput struct {
	Text string `json:"text"`
}

// GetComments 菜品评论列表
// @Summary 评论列表
// @Tags Comment
// @Produce json
// @Param foodId path string true "菜品ID"
// @Param page query int false "页码"
// @Param limit query int false "每页数量，最大 100"
// @Success 200 {object} response.Response{data=utils.PageResult}
// @Router /api/comments/{foodId} [get]
func (h *CommentHandler) GetComments(c *gin.Context) {
	var page utils.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	result, err := h.service.ListComments(c.Param("foodId"), page)
	if err != nil {
		logger.Log.Error("list comments failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Internal server error")
		return
	}
	response.Success(c, result)
}

// AddComment 发表评论
// @Summary 发表评论
// @Tags Comment
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param foodId path string true "菜品ID"
// @Param input body AddCommentInput true "评论内容"
// @Success 201 {object} response.Response{data=model.Comment}
// @Failure 400 {object} response.Response
// @Router /api/comments/{foodId} [post]
func (h *CommentHandler) AddComment(c *gin.Context) {
	var input AddCommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrCommentInvalid, "Comment cannot be empty")
		return
	}

	comment, err := h.service.AddComment(middleware.CurrentUserID(c), c.Param("foodId"), input.Text)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyComment):
			response.Error(c, http.StatusBadRequest, response.ErrCommentInvalid, "Comment cannot be empty")
		case errors.Is(err, service.ErrCommentTooLong):
			response.Error(c, http.StatusBadRequest, response.ErrCommentInvalid, "Comment cannot exceed 500 characters")
		case errors.Is(err, service.ErrFoodNotFound):
			response.Error(c, http.StatusNotFound, response.ErrFoodNotFound, "Food item not found")
		default:
			logger.Log.Error("add comment failed", zap.Error(err))
			response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Internal server error")
		}
		return
	}

	response.Created(c, "Comment added", comment)
}
