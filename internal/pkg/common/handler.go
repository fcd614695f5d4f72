package handler

import (
	"errors"
	"net/http"

	"yumzy/internal/pkg/uploader"
	"yumzy/pkg/logger"
	"yumzy/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// 批量上传的最大并发数
const maxConcurrentUploads = 5

type CommonHandler struct {
	uploader uploader.Uploader
	db       *gorm.DB
}

func NewCommonHandler(up uploader.Uploader, db *gorm.DB) *CommonHandler {
	return &CommonHandler{uploader: up, db: db}
}

// Hello 根路径
// @Summary 服务信息
// @Tags Common
// @Produce plain
// @Success 200 {string} string
// @Router / [get]
func (h *CommonHandler) Hello(c *gin.Context) {
	c.String(http.StatusOK, "Yumzy API is running")
}

// Health 存活检查，数据库不可用时返回 503
// @Summary 健康检查
// @Tags Common
// @Produce json
// @Success 200 {object} response.Response
// @Failure 503 {object} response.Response
// @Router /health [get]
func (h *CommonHandler) Health(c *gin.Context) {
	if h.db != nil {
		sqlDB, err := h.db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			logger.Log.Warn("Health check: database unreachable", zap.Error(err))
			response.Error(c, http.StatusServiceUnavailable, response.ErrServerInternal, "Database unavailable")
			return
		}
	}
	response.Success(c, gin.H{"status": "ok"})
}

// UploadFile 上传文件 (支持批量)
// @Summary 上传文件到 OSS (支持批量)
// @Tags Common
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param files formData file true "Files"
// @Success 200 {object} response.Response{data=[]string} "URLs"
// @Failure 503 {object} response.Response "未配置对象存储"
// @Router /upload [post]
func (h *CommonHandler) UploadFile(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "Invalid form data")
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "No files uploaded")
		return
	}

	// 按索引写入，保证与请求顺序一致
	urls := make([]string, len(files))
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.SetLimit(maxConcurrentUploads)

	for i, file := range files {
		g.Go(func() error {
			// 已有文件失败时跳过剩余文件
			if ctx.Err() != nil {
				return ctx.Err()
			}
			url, err := h.uploader.UploadFile(file, uploader.FolderUploads)
			if err != nil {
				return err
			}
			urls[i] = url
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if errors.Is(err, uploader.ErrNotConfigured) {
			response.Error(c, http.StatusServiceUnavailable, response.ErrStorageDisabled, "File storage is not configured")
			return
		}
		logger.Log.Error("upload failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Upload failed: "+err.Error())
		return
	}

	response.Success(c, urls)
}
