package views

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	pubsub "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"

	"github.com/angelmondragon/homefinderz-backend/pkg/db/models"
	"github.com/angelmondragon/homefinderz-backend/pkg/logger"
	"github.com/angelmondragon/homefinderz-backend/pkg/metrics"
)

type recorder interface {
	Create(ctx context.Context, view *models.PropertyView) error
}

// Consumer drains property view events off the views subscription and appends
// them to the view log. Duplicate delivery is tolerated: a double-counted
// view is harmless and the log carries no unique key to violate.
type Consumer struct {
	repo         recorder
	subscription *pubsub.Subscriber
	logg         *logger.Logger
	metrics      *metrics.ViewWorkerMetrics
}

// NewConsumer builds a view-event consumer. Metrics are optional.
func NewConsumer(repo recorder, subscription *pubsub.Subscriber, logg *logger.Logger, m *metrics.ViewWorkerMetrics) (*Consumer, error) {
	if repo == nil {
		return nil, fmt.Errorf("views repository required")
	}
	if subscription == nil {
		return nil, fmt.Errorf("views subscription required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Consumer{
		repo:         repo,
		subscription: subscription,
		logg:         logg,
		metrics:      m,
	}, nil
}

// Run starts the consumer loop until the context is canceled.
func (c *Consumer) Run(ctx context.Context) error {
	return c.subscription.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		result := c.process(ctx, msg.ID, msg.Data)
		if result.nack {
			msg.Nack()
			return
		}
		msg.Ack()
	})
}

type processResult struct {
	ack  bool
	nack bool
}

type viewEventPayload struct {
	PropertyID uuid.UUID  `json:"propertyId"`
	ViewerID   *uuid.UUID `json:"viewerId,omitempty"`
	ViewedAt   time.Time  `json:"viewedAt"`
}

func (c *Consumer) process(ctx context.Context, msgID string, data []byte) processResult {
	logCtx := c.logg.WithField(ctx, "message_id", msgID)

	var payload viewEventPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		// Poison message: acking avoids redelivery loops.
		c.logg.Error(logCtx, "failed to decode view event", err)
		c.metrics.IncFailed()
		return processResult{ack: true}
	}
	if payload.PropertyID == uuid.Nil {
		c.logg.Warn(logCtx, "view event missing property id")
		c.metrics.IncFailed()
		return processResult{ack: true}
	}

	logCtx = c.logg.WithPropertyID(logCtx, payload.PropertyID.String())

	viewedAt := payload.ViewedAt
	if viewedAt.IsZero() {
		viewedAt = time.Now().UTC()
	}

	view := &models.PropertyView{
		PropertyID: payload.PropertyID,
		ViewerID:   payload.ViewerID,
		ViewedAt:   viewedAt,
	}
	if err := c.repo.Create(ctx, view); err != nil {
		c.logg.Error(logCtx, "failed to record view", err)
		c.metrics.IncFailed()
		return processResult{nack: true}
	}

	c.metrics.IncRecorded()
	return processResult{ack: true}
}
