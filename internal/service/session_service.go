package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/vitrine-next/internal/backend"
	"github.com/vitrine-next/internal/constants"
	"github.com/vitrine-next/internal/logger"
	"github.com/vitrine-next/internal/models"
	"github.com/vitrine-next/internal/store"

	"github.com/golang-jwt/jwt/v5"
)

var errTokenExpired = errors.New("token expired")

// Authenticator 账号密码换取 token
type Authenticator interface {
	Login(ctx context.Context, input backend.LoginInput) (string, error)
}

// CartClearer 登出时清空购物车
type CartClearer interface {
	Clear(ctx context.Context) error
}

// SessionService 会话管理
// token 的本地解码只用于展示名字，鉴权始终由后端完成
type SessionService struct {
	mu       sync.RWMutex
	store    *store.Store
	auth     Authenticator
	cart     CartClearer
	signals  *UISignals
	now      func() time.Time
	token    string
	session  *models.Session
	notifier notifier[*models.Session]
}

// NewSessionService 创建会话服务
func NewSessionService(st *store.Store, auth Authenticator, cart CartClearer, signals *UISignals) *SessionService {
	if signals == nil {
		signals = NewUISignals()
	}
	return &SessionService{
		store:   st,
		auth:    auth,
		cart:    cart,
		signals: signals,
		now:     time.Now,
	}
}

// Restore 启动时从存储恢复会话，不向外返回错误
func (s *SessionService) Restore(ctx context.Context) {
	var token string
	if !s.store.Get(ctx, constants.StoreKeyToken, &token) || strings.TrimSpace(token) == "" {
		s.setSession("", nil)
		return
	}

	session, err := s.decode(token)
	if err != nil {
		logger.Warnw("session_restore_token_invalid", "error", err)
		if err := s.store.Remove(ctx, constants.StoreKeyToken); err != nil {
			logger.Warnw("session_token_purge_failed", "error", err)
		}
		s.setSession("", nil)
		return
	}
	s.setSession(token, session)
	logger.Infow("session_restored", "name", session.Name)
}

// Login 使用已获得的 token 建立会话
// 解码失败时清除 token，会话保持为空
func (s *SessionService) Login(ctx context.Context, token string) (*models.Session, error) {
	token = strings.TrimSpace(token)
	session, err := s.decode(token)
	if err != nil {
		logger.Warnw("session_login_token_invalid", "error", err)
		if rmErr := s.store.Remove(ctx, constants.StoreKeyToken); rmErr != nil {
			logger.Warnw("session_token_purge_failed", "error", rmErr)
		}
		s.setSession("", nil)
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	if err := s.store.Set(ctx, constants.StoreKeyToken, token); err != nil {
		return nil, err
	}
	s.setSession(token, session)
	s.signals.SetLoginOpen(false)
	logger.Infow("session_login", "name", session.Name)
	return cloneSession(session), nil
}

// Authenticate 账号密码登录
func (s *SessionService) Authenticate(ctx context.Context, username, password string) (*models.Session, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" || password == "" {
		return nil, ErrCredentialsRequired
	}
	if s.auth == nil {
		return nil, ErrLoginUnexpected
	}

	token, err := s.auth.Login(ctx, backend.LoginInput{Username: username, Password: password})
	if err != nil {
		logger.Warnw("session_authenticate_failed", "username", username, "error", err)
		return nil, classifyLoginError(err)
	}
	return s.Login(ctx, token)
}

// Logout 登出，需要调用方先取得用户确认
func (s *SessionService) Logout(ctx context.Context, confirmed bool) error {
	if !confirmed {
		return ErrLogoutNotConfirmed
	}

	s.setSession("", nil)

	var errs []error
	if err := s.store.Remove(ctx, constants.StoreKeyToken); err != nil {
		errs = append(errs, err)
	}
	if s.cart != nil {
		if err := s.cart.Clear(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	s.signals.Emit(SignalNavigateHome)

	if err := errors.Join(errs...); err != nil {
		logger.Errorw("session_logout_purge_failed", "error", err)
		return err
	}
	logger.Infow("session_logout")
	return nil
}

// IsAuthenticated 是否存在会话
func (s *SessionService) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session != nil
}

// Current 当前会话，未登录返回 nil
func (s *SessionService) Current() *models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSession(s.session)
}

// Token 当前 bearer token，未登录返回空串
func (s *SessionService) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Subscribe 订阅会话变化，返回取消函数
func (s *SessionService) Subscribe(fn func(*models.Session)) func() {
	return s.notifier.subscribe(fn)
}

func (s *SessionService) setSession(token string, session *models.Session) {
	s.mu.Lock()
	s.token = token
	s.session = session
	s.mu.Unlock()
	s.notifier.publish(cloneSession(session))
}

// decode 不校验签名，只读取 sub 与 exp
func (s *SessionService) decode(token string) (*models.Session, error) {
	if token == "" {
		return nil, errors.New("empty token")
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return nil, err
	}
	if exp != nil && !exp.After(s.now()) {
		return nil, errTokenExpired
	}

	name := constants.SessionDefaultName
	if sub, err := claims.GetSubject(); err == nil && strings.TrimSpace(sub) != "" {
		name = strings.TrimSpace(sub)
	}
	return &models.Session{Name: name}, nil
}

func classifyLoginError(err error) error {
	if statusErr, ok := backend.AsStatusError(err); ok {
		return &BackendMessageError{Err: ErrInvalidCredentials, Message: statusErr.Message}
	}
	if errors.Is(err, backend.ErrRequestFailed) {
		return ErrBackendUnreachable
	}
	return ErrLoginUnexpected
}

func cloneSession(session *models.Session) *models.Session {
	if session == nil {
		return nil
	}
	copied := *session
	return &copied
}
