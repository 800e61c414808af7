package app

import (
	"context"

	"github.com/vitrine-next/internal/provider"
)

// containerService 持有本地存储连接，停止时释放
type containerService struct {
	container *provider.Container
}

func newContainerService(c *provider.Container) *containerService {
	return &containerService{container: c}
}

func (s *containerService) Name() string {
	return "store"
}

// Start 阻塞到运行器退出
func (s *containerService) Start(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

func (s *containerService) Stop(ctx context.Context) error {
	if s == nil || s.container == nil {
		return nil
	}
	return s.container.Close()
}
