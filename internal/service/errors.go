package service

import "errors"

// 会话
var (
	ErrTokenInvalid        = errors.New("session token invalid")
	ErrCredentialsRequired = errors.New("username and password required")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrBackendUnreachable  = errors.New("backend unreachable")
	ErrLoginUnexpected     = errors.New("unexpected login failure")
	ErrLogoutNotConfirmed  = errors.New("logout not confirmed")
)

// 购物车
var (
	ErrInvalidProduct = errors.New("invalid product")
	ErrCartPersist    = errors.New("cart persist failed")
)

// 订单
var (
	ErrNotAuthenticated     = errors.New("not authenticated")
	ErrCartEmpty            = errors.New("cart is empty")
	ErrCustomerRequired     = errors.New("customer required")
	ErrPaymentMethodInvalid = errors.New("payment method invalid")
	ErrOrderInFlight        = errors.New("order submission in flight")
	ErrOrderSubmitFailed    = errors.New("order submission failed")
)

// 目录与后台数据
var (
	ErrCategoryNameRequired = errors.New("category name required")
	ErrCustomerNameRequired = errors.New("customer name required")
	ErrUsernameRequired     = errors.New("username required")
	ErrPasswordRequired     = errors.New("password required")
	ErrInvalidID            = errors.New("invalid id")
	ErrCatalogUnavailable   = errors.New("catalog unavailable")
)

// 聊天
var (
	ErrChatMessageEmpty = errors.New("chat message empty")
	ErrChatbotFailed    = errors.New("chatbot request failed")
)

// BackendMessageError 附带后端返回文案的错误
type BackendMessageError struct {
	Err     error
	Message string
}

func (e *BackendMessageError) Error() string {
	if e.Message == "" {
		return e.Err.Error()
	}
	return e.Err.Error() + ": " + e.Message
}

func (e *BackendMessageError) Unwrap() error {
	return e.Err
}

// BackendMessage 提取后端返回的文案
func BackendMessage(err error) string {
	var msgErr *BackendMessageError
	if errors.As(err, &msgErr) {
		return msgErr.Message
	}
	return ""
}
