package push

import (
	"encoding/json"
	"fmt"
	"yumzy/internal/pkg/config"
	"yumzy/pkg/logger"

	"github.com/aliyun/alibaba-cloud-sdk-go/sdk/requests"
	"github.com/aliyun/alibaba-cloud-sdk-go/services/push"
	"go.uber.org/zap"
)

// PushService 推送通知。账号维度推送，账号为用户或商家 ID
type PushService interface {
	PushToAccount(accountID string, title, body string, extParameters map[string]string) error
}

type AliyunPushService struct {
	client *push.Client
	appKey int64
}

func NewAliyunPushService(cfg config.PushConfig) (*AliyunPushService, error) {
	if cfg.AccessKeyID == "" || cfg.AppKey == 0 {
		return nil, fmt.Errorf("push config is missing")
	}

	client, err := push.NewClientWithAccessKey(
		cfg.RegionID,
		cfg.AccessKeyID,
		cfg.AccessKeySecret,
	)
	if err != nil {
		return nil, err
	}

	return &AliyunPushService{
		client: client,
		appKey: cfg.AppKey,
	}, nil
}

func (s *AliyunPushService) PushToAccount(accountID string, title, body string, extParameters map[string]string) error {
	request := push.CreatePushRequest()
	request.AppKey = requests.NewInteger64(s.appKey)
	request.Target = "ACCOUNT"
	request.TargetValue = accountID
	request.Title = title
	request.Body = body
	request.DeviceType = "ALL"
	request.PushType = "NOTICE"

	if len(extParameters) > 0 {
		extJSON, err := json.Marshal(extParameters)
		if err != nil {
			return err
		}
		request.AndroidExtParameters = string(extJSON)
		request.IOSExtParameters = string(extJSON)
	}

	_, err := s.client.Push(request)
	return err
}

// LogPushService 未配置推送时使用，只记录日志
type LogPushService struct{}

func (LogPushService) PushToAccount(accountID string, title, body string, extParameters map[string]string) error {
	logger.Log.Debug("push skipped (not configured)",
		zap.String("account", accountID),
		zap.String("title", title),
		zap.String("body", body),
	)
	return nil
}

// NewPushService 按配置选择实现
func NewPushService(cfg config.PushConfig) PushService {
	svc, err := NewAliyunPushService(cfg)
	if err != nil {
		logger.Log.Warn("Push service disabled", zap.Error(err))
		return LogPushService{}
	}
	return svc
}
