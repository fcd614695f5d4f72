package registry

import (
	"fmt"
	"sort"
	"yumzy/internal/pkg/config"
	"yumzy/internal/pkg/push"
	"yumzy/internal/pkg/uploader"
	"yumzy/pkg/cache"
	"yumzy/pkg/metrics"
	"yumzy/pkg/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ModuleContext 模块初始化所需的上下文
type ModuleContext struct {
	Config   config.Config
	DB       *gorm.DB
	Cache    cache.CacheService
	Router   *gin.Engine
	Tokens   *utils.TokenManager
	Uploader uploader.Uploader
	Notifier push.PushService
	Metrics  *metrics.MetricsCollector
}

// Module 模块接口
type Module interface {
	// Name 返回模块名称
	Name() string

	// Init 初始化模块（依赖注入、路由注册等）
	Init(ctx *ModuleContext) error

	// Priority 返回初始化优先级（数字越小越先初始化）
	Priority() int
}

// Closer 持有后台资源的模块实现该接口，在服务退出时释放
type Closer interface {
	Close() error
}

// Registry 模块注册表
type Registry struct {
	modules map[string]Module
	order   []Module
}

func New() *Registry {
	return &Registry{modules: make(map[string]Module)}
}

// Register 注册模块，同名模块覆盖
func (r *Registry) Register(module Module) {
	r.modules[module.Name()] = module
}

// InitModules 按优先级初始化所有模块
func (r *Registry) InitModules(ctx *ModuleContext) error {
	modules := make([]Module, 0, len(r.modules))
	for _, m := range r.modules {
		modules = append(modules, m)
	}

	// 同优先级按名称排序，保证初始化顺序稳定
	sort.Slice(modules, func(i, j int) bool {
		if modules[i].Priority() != modules[j].Priority() {
			return modules[i].Priority() < modules[j].Priority()
		}
		return modules[i].Name() < modules[j].Name()
	})

	for _, module := range modules {
		if err := module.Init(ctx); err != nil {
			return fmt.Errorf("init module %s: %w", module.Name(), err)
		}
		r.order = append(r.order, module)
	}
	return nil
}

// CloseModules 逆序关闭已初始化的模块
func (r *Registry) CloseModules() error {
	var firstErr error
	for i := len(r.order) - 1; i >= 0; i-- {
		if c, ok := r.order[i].(Closer); ok {
			if err := c.Close(); err != nil && firstErr == nil {
				firstErr = fmt.Errorf("close module %s: %w", r.order[i].Name(), err)
			}
		}
	}
	r.order = nil
	return firstErr
}

// moduleRegistry 全局模块注册表，各模块在 init 中自动注册
var moduleRegistry = New()

// Register 注册模块
func Register(module Module) {
	moduleRegistry.Register(module)
}

// InitModules 按优先级初始化所有模块
func InitModules(ctx *ModuleContext) error {
	return moduleRegistry.InitModules(ctx)
}

// CloseModules 关闭所有模块
func CloseModules() error {
	return moduleRegistry.CloseModules()
}
