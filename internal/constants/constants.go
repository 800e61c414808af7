package constants

// 持久化存储键（每个键只有一个写入方）
const (
	StoreKeyToken       = "token"
	StoreKeyCart        = "cart"
	StoreKeyChatHistory = "chatHistory"
	StoreKeyChatUserID  = "chatUserId"
)

// 存储驱动
const (
	StoreDriverSQLite   = "sqlite"
	StoreDriverPostgres = "postgres"
	StoreDriverRedis    = "redis"
	StoreDriverMemory   = "memory"
)

// 支付方式
const (
	PaymentMethodCash = "dinheiro"
	PaymentMethodCard = "cartao"
	PaymentMethodPix  = "pix"
)

// 订单提交流程状态
const (
	OrderFlowIdle       = "idle"
	OrderFlowSubmitting = "submitting"
	OrderFlowConfirmed  = "confirmed"
	OrderFlowFailed     = "failed"
)

// 会话相关
const (
	// SessionDefaultName token 缺少 sub 声明时使用的显示名
	SessionDefaultName = "Vendedor"
)

// 聊天消息发送方
const (
	ChatSenderUser = "user"
	ChatSenderBot  = "bot"
)

// 界面导航目标
const (
	NavigateHome = "/"
)
