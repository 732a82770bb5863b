package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/homefinderz-backend/pkg/enums"
)

// Message is one utterance inside a conversation. Hidden rows
// (is_visible=false) carry assistant context and never reach the UI.
// IsVisible carries no default tag: hidden rows are inserted with an explicit
// false, which a column default would swallow on create.
type Message struct {
	ID             uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ConversationID uuid.UUID           `gorm:"column:conversation_id;type:uuid;not null;index:messages_conversation_id_idx"`
	Sender         enums.MessageSender `gorm:"column:sender;type:message_sender;not null"`
	Content        string              `gorm:"column:content;not null"`
	IsVisible      bool                `gorm:"column:is_visible;not null"`
	CreatedAt      time.Time           `gorm:"column:created_at;autoCreateTime"`
}
