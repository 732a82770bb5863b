package conversations

import (
	"context"

	"github.com/angelmondragon/homefinderz-backend/pkg/db/models"
	"github.com/angelmondragon/homefinderz-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes the conversation, message, and system-prompt persistence
// the assistant sync needs. The chat product surface owns these tables; this
// service only reads them and plants hidden context messages.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a conversations repo bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListActive returns every conversation still marked active.
func (r *Repository) ListActive(ctx context.Context) ([]models.Conversation, error) {
	var rows []models.Conversation
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindHiddenSystemMessage returns the conversation's hidden context message,
// the earliest one when several exist. gorm.ErrRecordNotFound when absent.
func (r *Repository) FindHiddenSystemMessage(ctx context.Context, conversationID uuid.UUID) (*models.Message, error) {
	var msg models.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ? AND sender = ? AND is_visible = ?", conversationID, enums.MessageSenderSystem, false).
		Order("created_at ASC").
		First(&msg).
		Error
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// UpdateMessageContent overwrites a message's content.
func (r *Repository) UpdateMessageContent(ctx context.Context, messageID uuid.UUID, content string) error {
	return r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("id = ?", messageID).
		UpdateColumn("content", content).Error
}

// CreateMessage inserts a message row and returns the persisted model.
func (r *Repository) CreateMessage(ctx context.Context, msg *models.Message) (*models.Message, error) {
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return nil, err
	}
	return msg, nil
}

// ListMessages returns a conversation's full history, hidden rows included,
// ordered by creation time.
func (r *Repository) ListMessages(ctx context.Context, conversationID uuid.UUID) ([]models.Message, error) {
	var rows []models.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindSystemPrompt loads a system prompt by ID.
func (r *Repository) FindSystemPrompt(ctx context.Context, id uuid.UUID) (*models.SystemPrompt, error) {
	var prompt models.SystemPrompt
	if err := r.db.WithContext(ctx).First(&prompt, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &prompt, nil
}
