package assistant

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/angelmondragon/homefinderz-backend/pkg/db/models"
	"github.com/angelmondragon/homefinderz-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/homefinderz-backend/pkg/errors"
	"github.com/angelmondragon/homefinderz-backend/pkg/genai"
	"github.com/angelmondragon/homefinderz-backend/pkg/logger"
	"github.com/angelmondragon/homefinderz-backend/pkg/metrics"
)

// ConversationStore is the slice of conversation persistence the sync needs.
type ConversationStore interface {
	ListActive(ctx context.Context) ([]models.Conversation, error)
	FindHiddenSystemMessage(ctx context.Context, conversationID uuid.UUID) (*models.Message, error)
	UpdateMessageContent(ctx context.Context, messageID uuid.UUID, content string) error
	CreateMessage(ctx context.Context, msg *models.Message) (*models.Message, error)
	ListMessages(ctx context.Context, conversationID uuid.UUID) ([]models.Message, error)
	FindSystemPrompt(ctx context.Context, id uuid.UUID) (*models.SystemPrompt, error)
}

// SessionFactory opens replacement chat sessions seeded with history.
type SessionFactory interface {
	StartChat(ctx context.Context, history []genai.Turn) (*genai.Session, error)
}

// Service pushes verified-listing context into every active assistant
// conversation and rebuilds any live chat session so the assistant picks the
// new context up without a restart.
type Service interface {
	SyncVerifiedListing(ctx context.Context, property *models.Property, imageCount int, history []models.PricingHistory) error
}

// ServiceParams groups the sync dependencies.
type ServiceParams struct {
	Conversations ConversationStore
	Sessions      Registry
	Factory       SessionFactory
	Logger        *logger.Logger
	Metrics       *metrics.AssistantMetrics
}

type service struct {
	conversations ConversationStore
	sessions      Registry
	factory       SessionFactory
	logg          *logger.Logger
	metrics       *metrics.AssistantMetrics
}

// NewService wires the assistant sync. Metrics are optional.
func NewService(params ServiceParams) (Service, error) {
	if params.Conversations == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "conversation store required")
	}
	if params.Sessions == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "session registry required")
	}
	if params.Factory == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "session factory required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &service{
		conversations: params.Conversations,
		sessions:      params.Sessions,
		factory:       params.Factory,
		logg:          params.Logger,
		metrics:       params.Metrics,
	}, nil
}

// SyncVerifiedListing walks every active conversation and plants or extends
// its hidden context message with the listing summary. Per-conversation
// failures are logged, counted, and collected; one conversation never blocks
// the rest.
func (s *service) SyncVerifiedListing(ctx context.Context, property *models.Property, imageCount int, history []models.PricingHistory) error {
	start := time.Now()
	defer func() {
		s.metrics.ObserveSyncDuration(time.Since(start))
	}()

	summary := BuildListingSummary(property, imageCount, history)

	convos, err := s.conversations.ListActive(ctx)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list active conversations")
	}

	var errs []error
	for _, convo := range convos {
		if err := s.syncConversation(ctx, convo, summary); err != nil {
			errs = append(errs, err)
		}
	}
	return multierr.Combine(errs...)
}

func (s *service) syncConversation(ctx context.Context, convo models.Conversation, summary string) error {
	ctx = s.logg.WithConversationID(ctx, convo.ID.String())

	if convo.SystemPromptID == nil {
		s.logg.Info(ctx, "conversation has no system prompt, skipping context sync")
		s.metrics.IncSkipped()
		return nil
	}

	hidden, err := s.conversations.FindHiddenSystemMessage(ctx, convo.ID)
	switch {
	case err == nil:
		// Grow-only context log: each verified listing appends.
		if uerr := s.conversations.UpdateMessageContent(ctx, hidden.ID, hidden.Content+"\n\n"+summary); uerr != nil {
			s.logg.Error(ctx, "appending listing context failed", uerr)
			s.metrics.IncFailed()
			return uerr
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		prompt, perr := s.conversations.FindSystemPrompt(ctx, *convo.SystemPromptID)
		if errors.Is(perr, gorm.ErrRecordNotFound) {
			s.logg.Warn(ctx, "system prompt missing, skipping context sync")
			s.metrics.IncSkipped()
			return nil
		}
		if perr != nil {
			s.logg.Error(ctx, "loading system prompt failed", perr)
			s.metrics.IncFailed()
			return perr
		}
		if _, cerr := s.conversations.CreateMessage(ctx, &models.Message{
			ConversationID: convo.ID,
			Sender:         enums.MessageSenderSystem,
			Content:        prompt.Content + "\n\n" + summary,
			IsVisible:      false,
		}); cerr != nil {
			s.logg.Error(ctx, "planting hidden context message failed", cerr)
			s.metrics.IncFailed()
			return cerr
		}
	default:
		s.logg.Error(ctx, "looking up hidden context message failed", err)
		s.metrics.IncFailed()
		return err
	}

	if err := s.rebuildSession(ctx, convo.ID); err != nil {
		s.logg.Error(ctx, "rebuilding chat session failed", err)
		s.metrics.IncFailed()
		return err
	}

	s.metrics.IncApplied()
	return nil
}

// rebuildSession replaces a live chat session with one seeded from the full
// persisted history, hidden context included. Conversations without a live
// session are left alone.
func (s *service) rebuildSession(ctx context.Context, conversationID uuid.UUID) error {
	if _, ok := s.sessions.Get(conversationID); !ok {
		return nil
	}

	msgs, err := s.conversations.ListMessages(ctx, conversationID)
	if err != nil {
		return err
	}

	turns := make([]genai.Turn, 0, len(msgs))
	for _, msg := range msgs {
		role := genai.RoleUser
		if msg.Sender == enums.MessageSenderAI {
			role = genai.RoleModel
		}
		turns = append(turns, genai.Turn{Role: role, Text: msg.Content})
	}

	session, err := s.factory.StartChat(ctx, turns)
	if err != nil {
		return err
	}
	s.sessions.Set(conversationID, session)
	return nil
}
