package conversations

import (
	"context"
	"testing"
	"time"

	"github.com/angelmondragon/homefinderz-backend/pkg/db/models"
	"github.com/angelmondragon/homefinderz-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupConversationsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	conversations := `
CREATE TABLE IF NOT EXISTS conversations (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  system_prompt_id TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	messages := `
CREATE TABLE IF NOT EXISTS messages (
  id TEXT PRIMARY KEY,
  conversation_id TEXT NOT NULL,
  sender TEXT NOT NULL,
  content TEXT NOT NULL,
  is_visible INTEGER NOT NULL,
  created_at DATETIME
);`
	prompts := `
CREATE TABLE IF NOT EXISTS system_prompts (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  content TEXT NOT NULL,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(conversations).Error)
	require.NoError(t, db.Exec(messages).Error)
	require.NoError(t, db.Exec(prompts).Error)
	return db
}

func newConversation(t *testing.T, db *gorm.DB, active bool, promptID *uuid.UUID) *models.Conversation {
	t.Helper()

	conv := &models.Conversation{
		ID:             uuid.New(),
		UserID:         uuid.New(),
		SystemPromptID: promptID,
		IsActive:       true,
	}
	require.NoError(t, db.Create(conv).Error)
	if !active {
		require.NoError(t, db.Model(conv).UpdateColumn("is_active", false).Error)
		conv.IsActive = false
	}
	return conv
}

func newMessage(t *testing.T, db *gorm.DB, convID uuid.UUID, sender enums.MessageSender, content string, visible bool, at time.Time) *models.Message {
	t.Helper()

	msg := &models.Message{
		ID:             uuid.New(),
		ConversationID: convID,
		Sender:         sender,
		Content:        content,
		IsVisible:      visible,
		CreatedAt:      at,
	}
	require.NoError(t, db.Create(msg).Error)
	return msg
}

func TestRepositoryListActive(t *testing.T) {
	db := setupConversationsTestDB(t)
	repo := NewRepository(db)

	first := newConversation(t, db, true, nil)
	second := newConversation(t, db, true, nil)
	inactive := newConversation(t, db, false, nil)

	got, err := repo.ListActive(context.Background())
	require.NoError(t, err)

	ids := map[uuid.UUID]bool{}
	for _, c := range got {
		ids[c.ID] = true
	}
	assert.True(t, ids[first.ID])
	assert.True(t, ids[second.ID])
	assert.False(t, ids[inactive.ID])
}

func TestRepositoryFindHiddenSystemMessage(t *testing.T) {
	db := setupConversationsTestDB(t)
	repo := NewRepository(db)

	conv := newConversation(t, db, true, nil)
	now := time.Now().UTC()

	newMessage(t, db, conv.ID, enums.MessageSenderUser, "hi", true, now.Add(-3*time.Hour))
	newMessage(t, db, conv.ID, enums.MessageSenderSystem, "visible system note", true, now.Add(-2*time.Hour))
	hidden := newMessage(t, db, conv.ID, enums.MessageSenderSystem, "context", false, now.Add(-time.Hour))
	newMessage(t, db, conv.ID, enums.MessageSenderSystem, "later context", false, now)

	got, err := repo.FindHiddenSystemMessage(context.Background(), conv.ID)
	require.NoError(t, err)
	assert.Equal(t, hidden.ID, got.ID)
	assert.Equal(t, "context", got.Content)

	other := newConversation(t, db, true, nil)
	_, err = repo.FindHiddenSystemMessage(context.Background(), other.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryUpdateMessageContent(t *testing.T) {
	db := setupConversationsTestDB(t)
	repo := NewRepository(db)

	conv := newConversation(t, db, true, nil)
	msg := newMessage(t, db, conv.ID, enums.MessageSenderSystem, "before", false, time.Now().UTC())

	require.NoError(t, repo.UpdateMessageContent(context.Background(), msg.ID, "before\n\nafter"))

	got, err := repo.FindHiddenSystemMessage(context.Background(), conv.ID)
	require.NoError(t, err)
	assert.Equal(t, "before\n\nafter", got.Content)
}

func TestRepositoryCreateMessageKeepsHiddenFlag(t *testing.T) {
	db := setupConversationsTestDB(t)
	repo := NewRepository(db)

	conv := newConversation(t, db, true, nil)
	created, err := repo.CreateMessage(context.Background(), &models.Message{
		ID:             uuid.New(),
		ConversationID: conv.ID,
		Sender:         enums.MessageSenderSystem,
		Content:        "hidden context",
		IsVisible:      false,
	})
	require.NoError(t, err)

	var reloaded models.Message
	require.NoError(t, db.First(&reloaded, "id = ?", created.ID).Error)
	assert.False(t, reloaded.IsVisible)
}

func TestRepositoryListMessagesOrdered(t *testing.T) {
	db := setupConversationsTestDB(t)
	repo := NewRepository(db)

	conv := newConversation(t, db, true, nil)
	now := time.Now().UTC()

	second := newMessage(t, db, conv.ID, enums.MessageSenderAI, "reply", true, now.Add(-time.Minute))
	first := newMessage(t, db, conv.ID, enums.MessageSenderUser, "question", true, now.Add(-2*time.Minute))
	third := newMessage(t, db, conv.ID, enums.MessageSenderSystem, "context", false, now)

	got, err := repo.ListMessages(context.Background(), conv.ID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, first.ID, got[0].ID)
	assert.Equal(t, second.ID, got[1].ID)
	assert.Equal(t, third.ID, got[2].ID)
}

func TestRepositoryFindSystemPrompt(t *testing.T) {
	db := setupConversationsTestDB(t)
	repo := NewRepository(db)

	prompt := &models.SystemPrompt{
		ID:      uuid.New(),
		Name:    "listing-assistant",
		Content: "You help buyers find listings.",
	}
	require.NoError(t, db.Create(prompt).Error)

	got, err := repo.FindSystemPrompt(context.Background(), prompt.ID)
	require.NoError(t, err)
	assert.Equal(t, prompt.Content, got.Content)

	_, err = repo.FindSystemPrompt(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
