package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/vitrine-next/internal/constants"
	"github.com/vitrine-next/internal/logger"
	"github.com/vitrine-next/internal/models"
)

const (
	orderSubmitFailedKey    = "error.order_submit_failed"
	orderCartClearFailedKey = "error.order_cart_clear_failed"
)

// OrderSubmitter 向后端提交订单
type OrderSubmitter interface {
	CreateOrder(ctx context.Context, token string, payload models.OrderPayload) (*models.OrderConfirmation, error)
}

// SubmitOrderInput 提交订单输入
type SubmitOrderInput struct {
	CustomerID int64
	Payment    models.PaymentMethod
	Note       string
}

// OrderState 订单提交流程状态
type OrderState struct {
	Status       string                    `json:"status"`
	Confirmation *models.OrderConfirmation `json:"confirmation,omitempty"`
	ErrorKey     string                    `json:"error_key,omitempty"`
}

// OrderService 订单提交流程
// idle -> submitting -> confirmed | failed，失败后可重新提交
type OrderService struct {
	mu        sync.Mutex
	session   *SessionService
	cart      *CartService
	submitter OrderSubmitter
	signals   *UISignals
	state     OrderState
}

// NewOrderService 创建订单服务
func NewOrderService(session *SessionService, cart *CartService, submitter OrderSubmitter, signals *UISignals) *OrderService {
	if signals == nil {
		signals = NewUISignals()
	}
	return &OrderService{
		session:   session,
		cart:      cart,
		submitter: submitter,
		signals:   signals,
		state:     OrderState{Status: constants.OrderFlowIdle},
	}
}

// ParsePaymentMethod 校验支付方式，空值使用现金
func ParsePaymentMethod(raw string) (models.PaymentMethod, error) {
	switch method := strings.ToLower(strings.TrimSpace(raw)); method {
	case "":
		return constants.PaymentMethodCash, nil
	case constants.PaymentMethodCash, constants.PaymentMethodCard, constants.PaymentMethodPix:
		return models.PaymentMethod(method), nil
	default:
		return "", ErrPaymentMethodInvalid
	}
}

// Submit 提交当前购物车
// 校验失败时不发起网络请求，状态不变
func (s *OrderService) Submit(ctx context.Context, input SubmitOrderInput) (*models.OrderConfirmation, error) {
	if !s.session.IsAuthenticated() {
		s.signals.Emit(SignalCloseCart)
		s.signals.Emit(SignalOpenLogin)
		return nil, ErrNotAuthenticated
	}
	cart := s.cart.Snapshot()
	if len(cart) == 0 {
		return nil, ErrCartEmpty
	}
	if input.CustomerID <= 0 {
		return nil, ErrCustomerRequired
	}
	payment, err := ParsePaymentMethod(string(input.Payment))
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.state.Status == constants.OrderFlowSubmitting {
		s.mu.Unlock()
		return nil, ErrOrderInFlight
	}
	s.state = OrderState{Status: constants.OrderFlowSubmitting}
	s.mu.Unlock()

	seller := constants.SessionDefaultName
	if current := s.session.Current(); current != nil {
		seller = current.Name
	}
	payload := models.BuildOrderPayload(seller, input.CustomerID, cart, payment, strings.TrimSpace(input.Note))

	log := logger.SW("customer_id", input.CustomerID, "payment", payment, "items", len(payload.Items))
	confirmation, err := s.submitter.CreateOrder(ctx, s.session.Token(), payload)
	if err != nil {
		s.mu.Lock()
		s.state = OrderState{Status: constants.OrderFlowFailed, ErrorKey: orderSubmitFailedKey}
		s.mu.Unlock()
		log.Warnw("order_submit_failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrOrderSubmitFailed, err)
	}

	s.mu.Lock()
	s.state = OrderState{Status: constants.OrderFlowConfirmed, Confirmation: confirmation}
	s.mu.Unlock()
	log.Infow("order_submit_confirmed", "order_id", confirmation.ID.String(), "total", confirmation.Total.String())

	if err := s.cart.Clear(ctx); err != nil {
		// 订单已创建，购物车仍是旧内容，留在 confirmed 并提示界面
		log.Errorw("order_cart_clear_failed", "error", err)
		s.mu.Lock()
		s.state.ErrorKey = orderCartClearFailedKey
		s.mu.Unlock()
	}
	return confirmation, nil
}

// Reset 从 confirmed 或 failed 回到 idle
// 下单后购物车未能清空时先重试清空，仍失败则保持 confirmed
func (s *OrderService) Reset(ctx context.Context) OrderState {
	s.mu.Lock()
	status, errorKey := s.state.Status, s.state.ErrorKey
	s.mu.Unlock()
	if status != constants.OrderFlowConfirmed && status != constants.OrderFlowFailed {
		return s.State()
	}

	if status == constants.OrderFlowConfirmed && errorKey == orderCartClearFailedKey {
		if err := s.cart.Clear(ctx); err != nil {
			logger.Errorw("order_cart_clear_retry_failed", "error", err)
			return s.State()
		}
		logger.Infow("order_cart_clear_retried")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Status == status {
		s.state = OrderState{Status: constants.OrderFlowIdle}
	}
	return s.state
}

// State 当前流程状态
func (s *OrderService) State() OrderState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}
