package shell

import (
	"errors"

	"github.com/vitrine-next/internal/http/response"
	"github.com/vitrine-next/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

// respondWithMappedError 命中规则时优先使用后端返回的文案
func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			if msg := service.BackendMessage(err); msg != "" {
				respondErrorWithMsg(c, rule.code, msg, nil)
				return
			}
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

var loginErrorRules = []mappedHandlerError{
	{target: service.ErrCredentialsRequired, code: response.CodeBadRequest, key: "error.credentials_required"},
	{target: service.ErrInvalidCredentials, code: response.CodeUnauthorized, key: "error.invalid_credentials"},
	{target: service.ErrBackendUnreachable, code: response.CodeBadGateway, key: "error.backend_unreachable"},
	{target: service.ErrTokenInvalid, code: response.CodeUnauthorized, key: "error.token_invalid"},
	{target: service.ErrLoginUnexpected, code: response.CodeInternal, key: "error.login_unexpected"},
}

var logoutErrorRules = []mappedHandlerError{
	{target: service.ErrLogoutNotConfirmed, code: response.CodeBadRequest, key: "error.logout_not_confirmed"},
}

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidProduct, code: response.CodeBadRequest, key: "error.product_invalid"},
	{target: service.ErrInvalidID, code: response.CodeBadRequest, key: "error.invalid_id"},
	{target: service.ErrCatalogUnavailable, code: response.CodeBadGateway, key: "error.catalog_unavailable"},
	{target: service.ErrCartPersist, code: response.CodeInternal, key: "error.cart_persist_failed"},
}

var orderSubmitErrorRules = []mappedHandlerError{
	{target: service.ErrNotAuthenticated, code: response.CodeUnauthorized, key: "error.not_authenticated"},
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, key: "error.cart_empty"},
	{target: service.ErrCustomerRequired, code: response.CodeBadRequest, key: "error.customer_required"},
	{target: service.ErrPaymentMethodInvalid, code: response.CodeBadRequest, key: "error.payment_method_invalid"},
	{target: service.ErrOrderInFlight, code: response.CodeConflict, key: "error.order_in_flight"},
	{target: service.ErrOrderSubmitFailed, code: response.CodeBadGateway, key: "error.order_submit_failed"},
}

var catalogErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidID, code: response.CodeBadRequest, key: "error.invalid_id"},
	{target: service.ErrInvalidProduct, code: response.CodeNotFound, key: "error.not_found"},
	{target: service.ErrCategoryNameRequired, code: response.CodeBadRequest, key: "error.category_name_required"},
	{target: service.ErrCustomerNameRequired, code: response.CodeBadRequest, key: "error.customer_name_required"},
	{target: service.ErrUsernameRequired, code: response.CodeBadRequest, key: "error.username_required"},
	{target: service.ErrPasswordRequired, code: response.CodeBadRequest, key: "error.password_required"},
	{target: service.ErrCatalogUnavailable, code: response.CodeBadGateway, key: "error.catalog_unavailable"},
}

var chatErrorRules = []mappedHandlerError{
	{target: service.ErrChatMessageEmpty, code: response.CodeBadRequest, key: "error.chat_message_empty"},
	{target: service.ErrChatbotFailed, code: response.CodeBadGateway, key: "error.chatbot_failed"},
}
