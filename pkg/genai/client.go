package genai

import (
	"context"
	"errors"
	"fmt"

	googlegenai "google.golang.org/genai"

	"github.com/angelmondragon/homefinderz-backend/pkg/config"
	"github.com/angelmondragon/homefinderz-backend/pkg/logger"
)

const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Turn is one role-tagged entry in a chat history.
type Turn struct {
	Role string
	Text string
}

// Client wraps the Gemini SDK for chat-session management.
type Client struct {
	api             *googlegenai.Client
	model           string
	maxOutputTokens int32
}

// Session is an opaque live chat handle.
type Session struct {
	chat *googlegenai.Chat
}

// New builds a Gemini client from configuration.
func New(ctx context.Context, cfg config.GenAIConfig, logg *logger.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("genai api key is required")
	}
	if cfg.Model == "" {
		return nil, errors.New("genai model is required")
	}

	api, err := googlegenai.NewClient(ctx, &googlegenai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: googlegenai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	if logg != nil {
		logg.Info(logg.WithField(ctx, "model", cfg.Model), "genai client initialized")
	}

	return &Client{
		api:             api,
		model:           cfg.Model,
		maxOutputTokens: cfg.MaxOutputTokens,
	}, nil
}

// StartChat opens a fresh chat session seeded with the provided history.
// Replies are capped at the configured MaxOutputTokens.
func (c *Client) StartChat(ctx context.Context, history []Turn) (*Session, error) {
	if c == nil || c.api == nil {
		return nil, errors.New("genai client not initialized")
	}

	chat, err := c.api.Chats.Create(
		ctx,
		c.model,
		&googlegenai.GenerateContentConfig{MaxOutputTokens: c.maxOutputTokens},
		buildContents(history),
	)
	if err != nil {
		return nil, fmt.Errorf("starting chat session: %w", err)
	}

	return &Session{chat: chat}, nil
}

// Send submits a user message on the session and returns the model's text reply.
func (s *Session) Send(ctx context.Context, text string) (string, error) {
	if s == nil || s.chat == nil {
		return "", errors.New("chat session not initialized")
	}
	resp, err := s.chat.SendMessage(ctx, googlegenai.Part{Text: text})
	if err != nil {
		return "", fmt.Errorf("sending chat message: %w", err)
	}
	return resp.Text(), nil
}

func buildContents(history []Turn) []*googlegenai.Content {
	if len(history) == 0 {
		return nil
	}
	contents := make([]*googlegenai.Content, 0, len(history))
	for _, turn := range history {
		role := turn.Role
		if role != RoleModel {
			role = RoleUser
		}
		contents = append(contents, &googlegenai.Content{
			Role:  role,
			Parts: []*googlegenai.Part{{Text: turn.Text}},
		})
	}
	return contents
}
