package shell

import (
	handlershared "github.com/vitrine-next/internal/http/handlers/shared"
	"github.com/vitrine-next/internal/provider"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 本地壳接口处理器，前端只做展示并把用户操作转发到这里
type Handler struct {
	*provider.Container
}

// New 创建处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func respondErrorWithMsg(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondErrorWithMsg(c, code, msg, err)
}
