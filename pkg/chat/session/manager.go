package session

import (
	"context"
	"errors"
	"strings"
	"time"

	"ai-summarizer-be/internal/entity"
	"ai-summarizer-be/internal/pkg/apperror"
	"ai-summarizer-be/internal/repository/specification"
	"ai-summarizer-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Now is the clock every chat write uses: UTC, microsecond precision.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// Manager owns the session lifecycle. Ownership checks happen in Resolve;
// the other operations trust the caller to have resolved the session first.
type Manager struct {
	uowFactory unitofwork.RepositoryFactory
	listLimit  int
}

func NewManager(uowFactory unitofwork.RepositoryFactory, listLimit int) *Manager {
	return &Manager{uowFactory: uowFactory, listLimit: listLimit}
}

func (m *Manager) Create(ctx context.Context, userId uuid.UUID, title string) (*entity.ChatSession, error) {
	now := Now()
	title = strings.TrimSpace(title)
	if title == "" {
		title = DefaultTitle(now)
	}

	session := &entity.ChatSession{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	uow := m.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ChatSessionRepository().Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Get loads a session regardless of owner.
func (m *Manager) Get(ctx context.Context, sessionId uuid.UUID) (*entity.ChatSession, error) {
	uow := m.uowFactory.NewUnitOfWork(ctx)
	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.ErrSessionNotFound
	}
	return session, nil
}

// Resolve loads a session for userId. Existence is checked before ownership.
func (m *Manager) Resolve(ctx context.Context, userId, sessionId uuid.UUID) (*entity.ChatSession, error) {
	session, err := m.Get(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if !session.OwnedBy(userId) {
		return nil, apperror.ErrAccessDenied
	}
	return session, nil
}

// ListByUser returns the most recently updated sessions first.
func (m *Manager) ListByUser(ctx context.Context, userId uuid.UUID) ([]*entity.ChatSession, error) {
	uow := m.uowFactory.NewUnitOfWork(ctx)
	return uow.ChatSessionRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "updated_at", Desc: true},
		specification.Pagination{Limit: m.listLimit},
	)
}

func (m *Manager) UpdateTitle(ctx context.Context, session *entity.ChatSession, title string) error {
	updated := *session
	updated.Title = title
	updated.UpdatedAt = Now()

	uow := m.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ChatSessionRepository().Update(ctx, &updated); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrSessionNotFound
		}
		return err
	}
	*session = updated
	return nil
}

// Append stores a message and bumps the session's updated_at to the
// message time in one transaction.
func (m *Manager) Append(ctx context.Context, message *entity.ChatMessage) (err error) {
	uow := m.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		if err != nil {
			uow.Rollback()
		}
	}()

	if err := uow.ChatMessageRepository().Create(ctx, message); err != nil {
		return err
	}
	if err := uow.ChatSessionRepository().Touch(ctx, message.ChatSessionId, message.CreatedAt); err != nil {
		return err
	}
	return uow.Commit()
}

// Delete removes the session and all of its messages in one transaction.
func (m *Manager) Delete(ctx context.Context, session *entity.ChatSession) (err error) {
	uow := m.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		if err != nil {
			uow.Rollback()
		}
	}()

	if err := uow.ChatMessageRepository().DeleteByChatSessionId(ctx, session.Id); err != nil {
		return err
	}
	if err := uow.ChatSessionRepository().Delete(ctx, session.Id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrSessionNotFound
		}
		return err
	}
	return uow.Commit()
}

func (m *Manager) MessageCount(ctx context.Context, sessionId uuid.UUID) (int64, error) {
	uow := m.uowFactory.NewUnitOfWork(ctx)
	return uow.ChatMessageRepository().Count(ctx, specification.ByChatSessionID{ChatSessionID: sessionId})
}
