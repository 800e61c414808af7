package app

import (
	"context"
	"errors"
	"net"

	"github.com/vitrine-next/internal/config"
	"github.com/vitrine-next/internal/provider"
	"github.com/vitrine-next/internal/router"
)

// BuildRunner 构建服务运行器
// 容器在启动时恢复购物车与会话，退出时随运行器一起关闭
func BuildRunner(ctx context.Context, cfg *config.Config) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	container, err := provider.NewContainer(ctx, cfg)
	if err != nil {
		return nil, err
	}

	engine := router.SetupRouter(cfg, container)
	httpService := NewHTTPService(listenAddr(cfg), engine)
	return NewRunner(newContainerService(container), httpService), nil
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	runner, err := BuildRunner(context.Background(), opts.Config)
	if err != nil {
		return err
	}

	opts.Logger.Infow("app_start",
		"addr", listenAddr(opts.Config),
		"store_driver", opts.Config.Store.Driver,
		"backend", opts.Config.Backend.BaseURL,
	)
	return RunWithOptions(runner, opts)
}

func listenAddr(cfg *config.Config) string {
	return net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)
}
