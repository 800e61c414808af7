package shared

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// ParsePageQuery 读取 ?page，非法或缺省时为 1
func ParsePageQuery(c *gin.Context) int {
	raw := strings.TrimSpace(c.Query("page"))
	if raw == "" {
		return 1
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// ParsePathID 读取正整数路径参数
func ParsePathID(c *gin.Context, key string) (int64, bool) {
	raw := strings.TrimSpace(c.Param(key))
	if raw == "" {
		return 0, false
	}
	parsed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
