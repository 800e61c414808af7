package shell

import (
	"github.com/vitrine-next/internal/http/response"
	"github.com/vitrine-next/internal/i18n"
	"github.com/vitrine-next/internal/models"

	"github.com/gin-gonic/gin"
)

// LoginRequest 账号密码登录
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenLoginRequest 直接使用 token 登录
type TokenLoginRequest struct {
	Token string `json:"token" binding:"required"`
}

// LogoutRequest 登出请求，confirmed 为用户确认结果
type LogoutRequest struct {
	Confirmed bool `json:"confirmed"`
}

// SessionResponse 会话响应
type SessionResponse struct {
	Authenticated bool            `json:"authenticated"`
	Session       *models.Session `json:"session"`
}

// GetSession 获取当前会话
func (h *Handler) GetSession(c *gin.Context) {
	session := h.SessionService.Current()
	response.Success(c, SessionResponse{Authenticated: session != nil, Session: session})
}

// Login 账号密码登录
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	session, err := h.SessionService.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondWithMappedError(c, err, loginErrorRules, response.CodeInternal, "error.login_unexpected")
		return
	}
	response.Success(c, SessionResponse{Authenticated: true, Session: session})
}

// LoginWithToken 使用已有 token 建立会话
func (h *Handler) LoginWithToken(c *gin.Context) {
	var req TokenLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	session, err := h.SessionService.Login(c.Request.Context(), req.Token)
	if err != nil {
		respondWithMappedError(c, err, loginErrorRules, response.CodeInternal, "error.store_unavailable")
		return
	}
	response.Success(c, SessionResponse{Authenticated: true, Session: session})
}

// Logout 登出
func (h *Handler) Logout(c *gin.Context) {
	var req LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if err := h.SessionService.Logout(c.Request.Context(), req.Confirmed); err != nil {
		respondWithMappedError(c, err, logoutErrorRules, response.CodeInternal, "error.store_unavailable")
		return
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "message.logout_success"), h.shellState())
}
