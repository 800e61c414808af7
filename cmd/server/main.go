package main

import (
	"fmt"
	"os"
	"syscall"

	"github.com/vitrine-next/internal/app"
	"github.com/vitrine-next/internal/config"
	"github.com/vitrine-next/internal/constants"
	"github.com/vitrine-next/internal/logger"

	"github.com/gin-gonic/gin"
)

const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiDim   = "\033[2m"
	ansiGreen = "\033[32m"
	ansiCyan  = "\033[36m"
)

func main() {
	printStartupBanner()

	// 加载配置
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if cfg.Store.Driver == constants.StoreDriverMemory && cfg.Server.Mode == "release" {
		stdLog.Printf("警告: store.driver=memory，购物车与会话在重启后丢失")
	}

	// 设置 Gin 模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
	}); err != nil {
		stdLog.Fatalf("服务运行失败: %v", err)
	}
}

func printStartupBanner() {
	fmt.Println(ansiCyan + "╔══════════════════════════════════════════════════╗" + ansiReset)
	fmt.Println(ansiCyan + "║            Vitrine storefront shell              ║" + ansiReset)
	fmt.Println(ansiCyan + "╚══════════════════════════════════════════════════╝" + ansiReset)
	fmt.Println(ansiGreen + ansiBold + "API:     /api/v1" + ansiReset)
	fmt.Println(ansiGreen + "Health:  /health" + ansiReset)
	fmt.Println(ansiDim + "----------------------------------------------------" + ansiReset)
}
