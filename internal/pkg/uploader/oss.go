package uploader

import (
	"errors"
	"fmt"
	"mime/multipart"
	"path"
	"path/filepath"
	"strings"
	"time"
	"yumzy/internal/pkg/config"
	"yumzy/pkg/logger"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// 对象存储目录
const (
	FolderFoods   = "foods"
	FolderUploads = "uploads"
)

type Uploader interface {
	// UploadFile 上传文件到 folder 目录，返回公开访问 URL
	UploadFile(file *multipart.FileHeader, folder string) (string, error)
}

// ErrNotConfigured 未配置对象存储
var ErrNotConfigured = errors.New("object storage is not configured")

type AliyunOSSUploader struct {
	bucket *oss.Bucket
	config config.OSSConfig
}

func NewAliyunOSSUploader(cfg config.OSSConfig) (*AliyunOSSUploader, error) {
	if cfg.Endpoint == "" || cfg.BucketName == "" || cfg.AccessKeyID == "" {
		return nil, fmt.Errorf("oss config is missing")
	}

	client, err := oss.New(cfg.Endpoint, cfg.AccessKeyID, cfg.AccessKeySecret)
	if err != nil {
		return nil, err
	}

	bucket, err := client.Bucket(cfg.BucketName)
	if err != nil {
		return nil, err
	}

	return &AliyunOSSUploader{
		bucket: bucket,
		config: cfg,
	}, nil
}

func (u *AliyunOSSUploader) UploadFile(file *multipart.FileHeader, folder string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	key := ObjectKey(folder, file.Filename, time.Now())

	var opts []oss.Option
	if ct := file.Header.Get("Content-Type"); ct != "" {
		opts = append(opts, oss.ContentType(ct))
	}

	if err := u.bucket.PutObject(key, src, opts...); err != nil {
		return "", fmt.Errorf("oss put object: %w", err)
	}

	return PublicURL(u.config, key), nil
}

// ObjectKey 生成对象键: folder/YYYYMMDD/uuid-原文件名
func ObjectKey(folder, filename string, now time.Time) string {
	base := strings.ReplaceAll(filepath.Base(filename), " ", "_")
	return path.Join(folder, now.Format("20060102"), uuid.New().String()+"-"+base)
}

// PublicURL 拼接公开访问地址，bucket 需为公共读或走 CDN
func PublicURL(cfg config.OSSConfig, key string) string {
	if cfg.PublicURL != "" {
		return strings.TrimRight(cfg.PublicURL, "/") + "/" + key
	}
	return fmt.Sprintf("https://%s.%s/%s", cfg.BucketName, cfg.Endpoint, key)
}

// DisabledUploader 未配置 OSS 时使用，所有上传返回 ErrNotConfigured
type DisabledUploader struct{}

func (DisabledUploader) UploadFile(file *multipart.FileHeader, folder string) (string, error) {
	return "", ErrNotConfigured
}

// NewUploader 按配置选择实现
func NewUploader(cfg config.OSSConfig) Uploader {
	u, err := NewAliyunOSSUploader(cfg)
	if err != nil {
		logger.Log.Warn("Object storage disabled", zap.Error(err))
		return DisabledUploader{}
	}
	return u
}
