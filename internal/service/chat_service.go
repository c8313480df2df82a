package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ai-summarizer-be/internal/config"
	"ai-summarizer-be/internal/constant"
	"ai-summarizer-be/internal/dto"
	"ai-summarizer-be/internal/entity"
	"ai-summarizer-be/internal/pkg/apperror"
	"ai-summarizer-be/internal/pkg/logger"
	"ai-summarizer-be/internal/repository/unitofwork"
	"ai-summarizer-be/pkg/assistant"
	"ai-summarizer-be/pkg/chat/history"
	"ai-summarizer-be/pkg/chat/session"
	"ai-summarizer-be/pkg/events"
	"ai-summarizer-be/pkg/extractor"
	"ai-summarizer-be/pkg/metrics"

	"github.com/google/uuid"
)

const chatModule = "CHAT"

type IChatService interface {
	CreateSession(ctx context.Context, userId uuid.UUID, title string) (*dto.SessionResponse, error)
	GetUserSessions(ctx context.Context, userId uuid.UUID) ([]*dto.SessionResponse, error)
	GetSession(ctx context.Context, userId, sessionId uuid.UUID) (*dto.SessionResponse, error)
	GetHistory(ctx context.Context, userId, sessionId uuid.UUID, limit int) (*dto.HistoryResponse, error)
	SendMessage(ctx context.Context, userId, sessionId uuid.UUID, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	SendMessageWithFile(ctx context.Context, userId, sessionId uuid.UUID, message string, file *dto.UploadedFile) (*dto.SendMessageResponse, error)
	UpdateTitle(ctx context.Context, userId, sessionId uuid.UUID, title string) (*dto.SessionResponse, error)
	DeleteSession(ctx context.Context, userId, sessionId uuid.UUID) error
}

type chatService struct {
	sessions  *session.Manager
	history   *history.Loader
	titles    *session.TitlePolicy
	gateway   assistant.Gateway
	files     extractor.FileExtractor
	publisher IPublisherService
	metrics   *metrics.Metrics
	cfg       config.ChatConfig
	log       logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	gateway assistant.Gateway,
	files extractor.FileExtractor,
	publisher IPublisherService,
	m *metrics.Metrics,
	cfg config.ChatConfig,
	log logger.ILogger,
) IChatService {
	if cfg.HistoryWindow <= 0 {
		cfg.HistoryWindow = 10
	}
	if cfg.FileContextPrefix == "" {
		cfg.FileContextPrefix = "[File: %s]"
	}
	if m == nil {
		m = metrics.NewNop()
	}
	return &chatService{
		sessions:  session.NewManager(uowFactory, cfg.SessionListLimit),
		history:   history.NewLoader(uowFactory),
		titles:    session.NewTitlePolicy(cfg.DefaultTitles, cfg.TitleMaxLength),
		gateway:   gateway,
		files:     files,
		publisher: publisher,
		metrics:   m,
		cfg:       cfg,
		log:       log,
	}
}

func (cs *chatService) CreateSession(ctx context.Context, userId uuid.UUID, title string) (*dto.SessionResponse, error) {
	chatSession, err := cs.sessions.Create(ctx, userId, title)
	if err != nil {
		return nil, err
	}

	publishEvent(ctx, cs.publisher, cs.log, chatModule, events.New(events.TypeChatSessionCreated, map[string]interface{}{
		"user_id":    userId.String(),
		"session_id": chatSession.Id.String(),
	}))
	return toSessionResponse(chatSession), nil
}

func (cs *chatService) GetUserSessions(ctx context.Context, userId uuid.UUID) ([]*dto.SessionResponse, error) {
	chatSessions, err := cs.sessions.ListByUser(ctx, userId)
	if err != nil {
		return nil, err
	}

	resp := make([]*dto.SessionResponse, 0, len(chatSessions))
	for _, s := range chatSessions {
		resp = append(resp, toSessionResponse(s))
	}
	return resp, nil
}

func (cs *chatService) GetSession(ctx context.Context, userId, sessionId uuid.UUID) (*dto.SessionResponse, error) {
	chatSession, err := cs.sessions.Resolve(ctx, userId, sessionId)
	if err != nil {
		return nil, err
	}
	return toSessionResponse(chatSession), nil
}

func (cs *chatService) GetHistory(ctx context.Context, userId, sessionId uuid.UUID, limit int) (*dto.HistoryResponse, error) {
	chatSession, err := cs.sessions.Resolve(ctx, userId, sessionId)
	if err != nil {
		return nil, err
	}

	messages, err := cs.history.Messages(ctx, sessionId, limit)
	if err != nil {
		return nil, err
	}

	resp := &dto.HistoryResponse{
		SessionId: chatSession.Id,
		Title:     chatSession.Title,
		Messages:  make([]*dto.MessageResponse, 0, len(messages)),
	}
	for _, m := range messages {
		resp.Messages = append(resp.Messages, toMessageResponse(m))
	}
	return resp, nil
}

func (cs *chatService) SendMessage(ctx context.Context, userId, sessionId uuid.UUID, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	chatSession, err := cs.sessions.Resolve(ctx, userId, sessionId)
	if err != nil {
		return nil, err
	}
	return cs.turn(ctx, chatSession, req.Message, req.Context, nil)
}

// SendMessageWithFile extracts the upload before anything is written, so a
// bad file leaves the session untouched.
func (cs *chatService) SendMessageWithFile(ctx context.Context, userId, sessionId uuid.UUID, message string, file *dto.UploadedFile) (*dto.SendMessageResponse, error) {
	chatSession, err := cs.sessions.Resolve(ctx, userId, sessionId)
	if err != nil {
		return nil, err
	}

	text, err := cs.files.Extract(ctx, file.Filename, file.Data)
	if err != nil {
		cs.metrics.ExtractionFailures.WithLabelValues("chat_file").Inc()
		cs.log.Warn(chatModule, "File extraction failed", map[string]interface{}{
			"session_id": sessionId.String(),
			"filename":   file.Filename,
			"error":      err.Error(),
		})
		return nil, extractionError(file.Filename, err)
	}
	if text == "" {
		cs.metrics.ExtractionFailures.WithLabelValues("chat_file").Inc()
		return nil, apperror.WithMessage(apperror.ErrExtractionFailure, "Could not extract text from file", errors.New("empty document"))
	}

	docContext := fmt.Sprintf(cs.cfg.FileContextPrefix, file.Filename) + "\n" + text
	attachment := &entity.Attachment{
		Filename:    file.Filename,
		ContentType: extractor.ContentType(file.Data),
		Chars:       len([]rune(text)),
	}
	return cs.turn(ctx, chatSession, message, docContext, attachment)
}

// turn runs one conversation turn: auto-title, store the user message, ask the
// model with the recent window, store the reply. Once the session is resolved
// only storage failures are returned; a model failure becomes the fallback reply.
func (cs *chatService) turn(ctx context.Context, chatSession *entity.ChatSession, message, docContext string, attachment *entity.Attachment) (*dto.SendMessageResponse, error) {
	cs.autoTitle(ctx, chatSession, message)

	sent := &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: chatSession.Id,
		Role:          entity.MessageRoleUser,
		Content:       message,
		Attachment:    attachment,
		CreatedAt:     session.Now(),
	}
	if err := cs.sessions.Append(ctx, sent); err != nil {
		return nil, err
	}

	window, err := cs.history.Messages(ctx, chatSession.Id, cs.cfg.HistoryWindow)
	if err != nil {
		return nil, err
	}
	llmHistory := history.ToLLM(history.WithoutCurrent(window))

	started := time.Now()
	reply, err := cs.gateway.Reply(ctx, message, docContext, llmHistory)
	cs.metrics.ObserveGateway("chat", started)
	outcome := metrics.TurnOutcomeReply
	if err != nil {
		cs.log.Error(chatModule, "LLM gateway failed, using fallback reply", map[string]interface{}{
			"session_id": chatSession.Id.String(),
			"error":      err.Error(),
		})
		reply = constant.ChatFallbackReply
		outcome = metrics.TurnOutcomeFallback
	}
	cs.metrics.ChatTurns.WithLabelValues(outcome).Inc()

	replyAt := session.Now()
	if !replyAt.After(sent.CreatedAt) {
		replyAt = sent.CreatedAt.Add(time.Microsecond)
	}
	answer := &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: chatSession.Id,
		Role:          entity.MessageRoleAssistant,
		Content:       reply,
		CreatedAt:     replyAt,
	}
	if err := cs.sessions.Append(ctx, answer); err != nil {
		return nil, err
	}
	chatSession.UpdatedAt = replyAt

	publishEvent(ctx, cs.publisher, cs.log, chatModule, events.New(events.TypeChatTurnCompleted, map[string]interface{}{
		"user_id":    chatSession.UserId.String(),
		"session_id": chatSession.Id.String(),
		"outcome":    outcome,
		"history":    len(llmHistory),
	}))

	return &dto.SendMessageResponse{
		SessionId: chatSession.Id,
		Title:     chatSession.Title,
		Response:  reply,
		Sent:      toMessageResponse(sent),
		Reply:     toMessageResponse(answer),
	}, nil
}

// autoTitle names a session after its first message. Failures never block the turn.
func (cs *chatService) autoTitle(ctx context.Context, chatSession *entity.ChatSession, message string) {
	if !cs.titles.IsSentinel(chatSession.Title, chatSession.CreatedAt) {
		return
	}
	count, err := cs.sessions.MessageCount(ctx, chatSession.Id)
	if err != nil {
		cs.log.Warn(chatModule, "Could not count messages for auto title", map[string]interface{}{
			"session_id": chatSession.Id.String(),
			"error":      err.Error(),
		})
		return
	}
	if count > 0 {
		return
	}

	if err := cs.sessions.UpdateTitle(ctx, chatSession, cs.titles.Derive(message)); err != nil {
		cs.log.Warn(chatModule, "Auto title failed", map[string]interface{}{
			"session_id": chatSession.Id.String(),
			"error":      err.Error(),
		})
	}
}

func (cs *chatService) UpdateTitle(ctx context.Context, userId, sessionId uuid.UUID, title string) (*dto.SessionResponse, error) {
	chatSession, err := cs.sessions.Resolve(ctx, userId, sessionId)
	if err != nil {
		return nil, err
	}
	if err := cs.sessions.UpdateTitle(ctx, chatSession, title); err != nil {
		return nil, err
	}
	return toSessionResponse(chatSession), nil
}

func (cs *chatService) DeleteSession(ctx context.Context, userId, sessionId uuid.UUID) error {
	chatSession, err := cs.sessions.Resolve(ctx, userId, sessionId)
	if err != nil {
		return err
	}
	if err := cs.sessions.Delete(ctx, chatSession); err != nil {
		return err
	}

	cs.log.Info(chatModule, "Chat session deleted", map[string]interface{}{
		"user_id":    userId.String(),
		"session_id": sessionId.String(),
	})
	publishEvent(ctx, cs.publisher, cs.log, chatModule, events.New(events.TypeChatSessionDeleted, map[string]interface{}{
		"user_id":    userId.String(),
		"session_id": sessionId.String(),
	}))
	return nil
}

func extractionError(filename string, err error) error {
	if errors.Is(err, extractor.ErrUnsupportedType) {
		return apperror.WithMessage(apperror.ErrExtractionFailure, "Unsupported file type: "+filename, err)
	}
	return apperror.WithMessage(apperror.ErrExtractionFailure, "Could not extract text from file", err)
}

func toSessionResponse(s *entity.ChatSession) *dto.SessionResponse {
	return &dto.SessionResponse{
		Id:        s.Id,
		Title:     s.Title,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func toMessageResponse(m *entity.ChatMessage) *dto.MessageResponse {
	resp := &dto.MessageResponse{
		Id:        m.Id,
		Role:      string(m.Role),
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
	if m.Attachment != nil {
		resp.Attachment = &dto.AttachmentDTO{
			Filename:    m.Attachment.Filename,
			ContentType: m.Attachment.ContentType,
			Chars:       m.Attachment.Chars,
		}
	}
	return resp
}
