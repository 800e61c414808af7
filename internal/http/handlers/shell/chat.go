package shell

import (
	"errors"

	"github.com/vitrine-next/internal/http/response"
	"github.com/vitrine-next/internal/i18n"
	"github.com/vitrine-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ChatMessageRequest 发送聊天消息
type ChatMessageRequest struct {
	Message string `json:"message"`
}

// GetChatHistory 聊天记录
func (h *Handler) GetChatHistory(c *gin.Context) {
	response.Success(c, h.ChatService.History(c.Request.Context()))
}

// SendChatMessage 发送消息，机器人失败时仍返回带错误回复的记录
func (h *Handler) SendChatMessage(c *gin.Context) {
	var req ChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	history, err := h.ChatService.Send(c.Request.Context(), req.Message)
	if err != nil {
		if errors.Is(err, service.ErrChatbotFailed) && history != nil {
			requestLog(c).Warnw("chat_reply_failed", "error", err)
			msg := i18n.T(i18n.ResolveLocale(c), "error.chatbot_failed")
			response.ErrorWithData(c, response.CodeBadGateway, msg, gin.H{"messages": history})
			return
		}
		respondWithMappedError(c, err, chatErrorRules, response.CodeInternal, "error.store_unavailable")
		return
	}
	response.Success(c, gin.H{"messages": history})
}

// ClearChatHistory 清空聊天记录
func (h *Handler) ClearChatHistory(c *gin.Context) {
	if err := h.ChatService.Clear(c.Request.Context()); err != nil {
		respondError(c, response.CodeInternal, "error.store_unavailable", err)
		return
	}
	response.Success(c, nil)
}
