package unitofwork

import (
	"context"
	"os"
	"testing"
	"time"

	"ai-summarizer-be/internal/entity"
	"ai-summarizer-be/internal/model"
	"ai-summarizer-be/internal/repository/specification"
	"ai-summarizer-be/pkg/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newFactory(t *testing.T) RepositoryFactory {
	t.Helper()
	db, err := database.NewInMemoryDB()
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db, model.AllModels()...))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return NewRepositoryFactory(db)
}

func seedSession(t *testing.T, ctx context.Context, uow UnitOfWork, userId uuid.UUID, title string, updatedAt time.Time) *entity.ChatSession {
	t.Helper()
	s := &entity.ChatSession{Id: uuid.New(), UserId: userId, Title: title, CreatedAt: updatedAt, UpdatedAt: updatedAt}
	require.NoError(t, uow.ChatSessionRepository().Create(ctx, s))
	return s
}

func TestChatSessionRepository_OwnerListing(t *testing.T) {
	ctx := context.Background()
	uow := newFactory(t).NewUnitOfWork(ctx)

	alice, bob := uuid.New(), uuid.New()
	base := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	older := seedSession(t, ctx, uow, alice, "older", base)
	newer := seedSession(t, ctx, uow, alice, "newer", base.Add(time.Minute))
	seedSession(t, ctx, uow, bob, "bob's", base.Add(2*time.Minute))

	sessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: alice},
		specification.OrderBy{Field: "updated_at", Desc: true},
		specification.Pagination{Limit: 50},
	)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, newer.Id, sessions[0].Id)
	assert.Equal(t, older.Id, sessions[1].Id)

	none, err := uow.ChatSessionRepository().FindAll(ctx, specification.UserOwnedBy{UserID: uuid.New()})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestChatSessionRepository_UpdateAndDeleteMissing(t *testing.T) {
	ctx := context.Background()
	uow := newFactory(t).NewUnitOfWork(ctx)

	missing := &entity.ChatSession{Id: uuid.New(), Title: "x", UpdatedAt: time.Now().UTC()}
	assert.ErrorIs(t, uow.ChatSessionRepository().Update(ctx, missing), gorm.ErrRecordNotFound)
	assert.ErrorIs(t, uow.ChatSessionRepository().Delete(ctx, missing.Id), gorm.ErrRecordNotFound)

	s := seedSession(t, ctx, uow, uuid.New(), "before", time.Now().UTC())
	s.Title = "after"
	require.NoError(t, uow.ChatSessionRepository().Update(ctx, s))

	found, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: s.Id})
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "after", found.Title)
}

func TestChatMessageRepository_RejectsUnknownRole(t *testing.T) {
	ctx := context.Background()
	uow := newFactory(t).NewUnitOfWork(ctx)
	s := seedSession(t, ctx, uow, uuid.New(), "t", time.Now().UTC())

	err := uow.ChatMessageRepository().Create(ctx, &entity.ChatMessage{
		ChatSessionId: s.Id,
		Role:          "system",
		Content:       "nope",
		CreatedAt:     time.Now().UTC(),
	})
	assert.ErrorIs(t, err, entity.ErrInvalidRole)

	count, err := uow.ChatMessageRepository().Count(ctx, specification.ByChatSessionID{ChatSessionID: s.Id})
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestUnitOfWork_RollbackDiscardsWrites(t *testing.T) {
	ctx := context.Background()
	factory := newFactory(t)

	uow := factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.Begin(ctx))
	seedSession(t, ctx, uow, uuid.New(), "discarded", time.Now().UTC())
	require.NoError(t, uow.Rollback())
	// A second rollback after the transaction ended is harmless.
	require.NoError(t, uow.Rollback())

	count, err := factory.NewUnitOfWork(ctx).ChatSessionRepository().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestUnitOfWork_CommitPersistsAttachment(t *testing.T) {
	ctx := context.Background()
	factory := newFactory(t)

	uow := factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.Begin(ctx))
	s := seedSession(t, ctx, uow, uuid.New(), "kept", time.Now().UTC())
	require.NoError(t, uow.ChatMessageRepository().Create(ctx, &entity.ChatMessage{
		ChatSessionId: s.Id,
		Role:          entity.MessageRoleUser,
		Content:       "see attached",
		Attachment:    &entity.Attachment{Filename: "a.txt", ContentType: "text/plain", Chars: 12},
		CreatedAt:     time.Now().UTC(),
	}))
	require.NoError(t, uow.Commit())

	msgs, err := factory.NewUnitOfWork(ctx).ChatMessageRepository().FindAll(ctx, specification.ByChatSessionID{ChatSessionID: s.Id})
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	require.NotNil(t, msgs[0].Attachment)
	assert.Equal(t, "a.txt", msgs[0].Attachment.Filename)
	assert.Equal(t, 12, msgs[0].Attachment.Chars)
}

func TestUserRepository_FindByLogin(t *testing.T) {
	ctx := context.Background()
	uow := newFactory(t).NewUnitOfWork(ctx)

	u := &entity.User{Id: uuid.New(), Email: "ana@example.com", Username: "ana_b", PasswordHash: "x", IsActive: true}
	require.NoError(t, uow.UserRepository().Create(ctx, u))

	byName, err := uow.UserRepository().FindOne(ctx, specification.ByLogin{Login: "ana_b"})
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, u.Id, byName.Id)

	byEmail, err := uow.UserRepository().FindOne(ctx, specification.ByLogin{Login: "ANA@example.com"})
	require.NoError(t, err)
	require.NotNil(t, byEmail)

	missing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: "nobody@example.com"})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

// Runs against a real PostgreSQL when DB_CONNECTION_STRING is set.
func TestPostgresConnection(t *testing.T) {
	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(gormDB, model.AllModels()...))

	uow := NewRepositoryFactory(gormDB).NewUnitOfWork(context.Background())
	_, err = uow.UserRepository().Count(context.Background())
	assert.NoError(t, err)
	_, err = uow.ChatSessionRepository().Count(context.Background())
	assert.NoError(t, err)
}
