package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/vitrine-next/internal/constants"
	"github.com/vitrine-next/internal/logger"
	"github.com/vitrine-next/internal/models"
	"github.com/vitrine-next/internal/store"

	"github.com/google/uuid"
)

// ChatErrorReply 机器人调用失败时追加的回复
const ChatErrorReply = "Desculpe, houve um erro ao processar sua mensagem. Tente novamente."

// ChatClient 聊天机器人接口
type ChatClient interface {
	SendChat(ctx context.Context, message, userID string) (string, error)
}

// ChatService 聊天机器人协作方，独立持有 chatHistory 与 chatUserId
type ChatService struct {
	mu     sync.Mutex
	store  *store.Store
	client ChatClient
	now    func() time.Time
}

// NewChatService 创建聊天服务
func NewChatService(st *store.Store, client ChatClient) *ChatService {
	return &ChatService{store: st, client: client, now: time.Now}
}

// History 聊天记录
func (s *ChatService) History(ctx context.Context) []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

// Send 发送消息，返回追加后的完整记录
// 机器人失败时追加一条错误回复并返回 ErrChatbotFailed
func (s *ChatService) Send(ctx context.Context, text string) ([]models.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrChatMessageEmpty
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	history := append(s.loadLocked(ctx), s.newMessage(text, constants.ChatSenderUser))
	if err := s.store.Set(ctx, constants.StoreKeyChatHistory, history); err != nil {
		return nil, err
	}

	reply, sendErr := s.client.SendChat(ctx, text, s.userIDLocked(ctx))
	if sendErr != nil {
		logger.Warnw("chat_send_failed", "error", sendErr)
		reply = ChatErrorReply
	}
	history = append(history, s.newMessage(reply, constants.ChatSenderBot))
	if err := s.store.Set(ctx, constants.StoreKeyChatHistory, history); err != nil {
		return nil, err
	}
	if sendErr != nil {
		return history, fmt.Errorf("%w: %v", ErrChatbotFailed, sendErr)
	}
	return history, nil
}

// Clear 清空聊天记录
func (s *ChatService) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Remove(ctx, constants.StoreKeyChatHistory)
}

// UserID 匿名聊天用户标识，首次使用时生成并保存
func (s *ChatService) UserID(ctx context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userIDLocked(ctx)
}

func (s *ChatService) userIDLocked(ctx context.Context) string {
	var userID string
	if s.store.Get(ctx, constants.StoreKeyChatUserID, &userID) && strings.TrimSpace(userID) != "" {
		return userID
	}
	userID = fmt.Sprintf("user_%d_%s", s.now().UnixMilli(), uuid.NewString()[:7])
	if err := s.store.Set(ctx, constants.StoreKeyChatUserID, userID); err != nil {
		logger.Warnw("chat_user_id_persist_failed", "error", err)
	}
	return userID
}

func (s *ChatService) loadLocked(ctx context.Context) []models.ChatMessage {
	var history []models.ChatMessage
	if !s.store.Get(ctx, constants.StoreKeyChatHistory, &history) || history == nil {
		return []models.ChatMessage{}
	}
	return history
}

func (s *ChatService) newMessage(text, sender string) models.ChatMessage {
	return models.ChatMessage{
		ID:        uuid.NewString(),
		Text:      text,
		Sender:    sender,
		Timestamp: s.now().UTC(),
	}
}
