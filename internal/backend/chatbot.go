package backend

import (
	"context"
	"net/http"
	"strings"
)

// DefaultChatReply 机器人未返回内容时的回复
const DefaultChatReply = "Desculpe, não consegui processar sua mensagem."

type chatRequest struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// SendChat 发送聊天消息到机器人服务
func (c *Client) SendChat(ctx context.Context, message, userID string) (string, error) {
	var resp chatResponse
	body := chatRequest{Message: message, UserID: userID}
	if err := c.doJSON(ctx, http.MethodPost, c.chatbotURL+"/chat", c.currentToken(), body, &resp); err != nil {
		return "", err
	}
	reply := strings.TrimSpace(resp.Reply)
	if reply == "" {
		return DefaultChatReply, nil
	}
	return reply, nil
}
