package service

import (
	"sync"

	"github.com/vitrine-next/internal/constants"
)

// Signal 发给界面的副作用信号
type Signal string

const (
	SignalOpenCart     Signal = "open_cart"
	SignalCloseCart    Signal = "close_cart"
	SignalOpenLogin    Signal = "open_login"
	SignalNavigateHome Signal = "navigate_home"
)

// PanelState 界面面板与导航状态
type PanelState struct {
	CartOpen  bool   `json:"cart_open"`
	LoginOpen bool   `json:"login_open"`
	Navigate  string `json:"navigate,omitempty"`
}

// UISignals 记录最近一次信号产生的界面状态，供前端轮询或订阅
type UISignals struct {
	mu       sync.Mutex
	state    PanelState
	notifier notifier[Signal]
}

// NewUISignals 创建界面信号
func NewUISignals() *UISignals {
	return &UISignals{}
}

// Emit 发出信号
func (u *UISignals) Emit(signal Signal) {
	u.mu.Lock()
	switch signal {
	case SignalOpenCart:
		u.state.CartOpen = true
	case SignalCloseCart:
		u.state.CartOpen = false
	case SignalOpenLogin:
		u.state.LoginOpen = true
	case SignalNavigateHome:
		u.state.Navigate = constants.NavigateHome
		u.state.CartOpen = false
	}
	u.mu.Unlock()
	u.notifier.publish(signal)
}

// SetCartOpen 用户主动开关购物车面板
func (u *UISignals) SetCartOpen(open bool) {
	u.mu.Lock()
	u.state.CartOpen = open
	u.mu.Unlock()
}

// SetLoginOpen 用户主动开关登录框
func (u *UISignals) SetLoginOpen(open bool) {
	u.mu.Lock()
	u.state.LoginOpen = open
	u.mu.Unlock()
}

// AckNavigation 前端完成跳转后清除导航信号
func (u *UISignals) AckNavigation() {
	u.mu.Lock()
	u.state.Navigate = ""
	u.mu.Unlock()
}

// State 当前界面状态
func (u *UISignals) State() PanelState {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.state
}

// Subscribe 订阅信号，返回取消函数
func (u *UISignals) Subscribe(fn func(Signal)) func() {
	return u.notifier.subscribe(fn)
}
