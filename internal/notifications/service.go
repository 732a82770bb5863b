package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/homefinderz-backend/pkg/db/models"
	"github.com/angelmondragon/homefinderz-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/homefinderz-backend/pkg/errors"
	"github.com/angelmondragon/homefinderz-backend/pkg/pagination"
	"github.com/google/uuid"
)

// Service defines the in-app notification feed: list/read operations for the
// viewing user plus the write paths the listing flows record into it.
type Service interface {
	List(ctx context.Context, params ListParams) (*ListResult, error)
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
	RecordPriceChange(ctx context.Context, userIDs []uuid.UUID, propertyID uuid.UUID, notice PriceChange) error
	RecordListingVerified(ctx context.Context, ownerID, propertyID uuid.UUID, propertyName string) error
}

type service struct {
	repo Repository
}

// ListParams configures pagination for the viewer's feed.
type ListParams struct {
	UserID     uuid.UUID
	Limit      int
	Cursor     string
	UnreadOnly bool
}

// NotificationDTO is one feed entry.
type NotificationDTO struct {
	ID         uuid.UUID  `json:"id"`
	Type       string     `json:"type"`
	Title      string     `json:"title"`
	Message    string     `json:"message"`
	PropertyID *uuid.UUID `json:"property_id,omitempty"`
	IsRead     bool       `json:"is_read"`
	CreatedAt  time.Time  `json:"created_at"`
}

// ListResult wraps a feed page, the cursor for the next page, and the
// viewer's unread total.
type ListResult struct {
	Items       []NotificationDTO `json:"items"`
	Cursor      string            `json:"cursor"`
	UnreadCount int64             `json:"unread_count"`
}

// NewService wires notifications dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notifications repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	if params.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}

	query := listNotificationsParams{
		UserID:     params.UserID,
		Limit:      params.Limit,
		UnreadOnly: params.UnreadOnly,
	}
	if params.Cursor != "" {
		cursor, err := pagination.ParseCursor(params.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		query.Cursor = cursor
	}

	rows, next, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list notifications")
	}
	unread, err := s.repo.UnreadCount(ctx, params.UserID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count unread notifications")
	}

	cursor := ""
	if next != nil {
		cursor = next.Encode()
	}

	items := make([]NotificationDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, NotificationDTO{
			ID:         row.ID,
			Type:       string(row.Type),
			Title:      row.Title,
			Message:    row.Message,
			PropertyID: row.PropertyID,
			IsRead:     row.ReadAt != nil,
			CreatedAt:  row.CreatedAt,
		})
	}

	return &ListResult{
		Items:       items,
		Cursor:      cursor,
		UnreadCount: unread,
	}, nil
}

func (s *service) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if notificationID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "notification id required")
	}

	result, err := s.repo.MarkRead(ctx, userID, notificationID, time.Now().UTC())
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark notification read")
	}
	if !result.Found {
		return pkgerrors.New(pkgerrors.CodeNotFound, "notification not found")
	}
	return nil
}

func (s *service) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	if userID == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}

	count, err := s.repo.MarkAllRead(ctx, userID, time.Now().UTC())
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark notifications read")
	}
	return count, nil
}

// RecordPriceChange writes one feed row per wishing user, mirroring the mail
// copy so both channels tell the same story.
func (s *service) RecordPriceChange(ctx context.Context, userIDs []uuid.UUID, propertyID uuid.UUID, notice PriceChange) error {
	if len(userIDs) == 0 {
		return nil
	}

	title := fmt.Sprintf("Price update: %s", notice.PropertyName)
	message := fmt.Sprintf(
		"The price for %s (%s) changed from %s %s to %s %s.",
		notice.PropertyName, notice.Address,
		notice.OldPrice.StringFixed(2), notice.Currency,
		notice.NewPrice.StringFixed(2), notice.Currency,
	)

	rows := make([]models.Notification, 0, len(userIDs))
	for _, userID := range userIDs {
		rows = append(rows, models.Notification{
			UserID:     userID,
			Type:       enums.NotificationTypePriceChange,
			Title:      title,
			Message:    message,
			PropertyID: &propertyID,
		})
	}
	if err := s.repo.CreateBatch(ctx, rows); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record price change notifications")
	}
	return nil
}

// RecordListingVerified drops the owner a feed row when their listing clears
// verification.
func (s *service) RecordListingVerified(ctx context.Context, ownerID, propertyID uuid.UUID, propertyName string) error {
	row := []models.Notification{{
		UserID:     ownerID,
		Type:       enums.NotificationTypeListingVerified,
		Title:      fmt.Sprintf("Listing verified: %s", propertyName),
		Message:    fmt.Sprintf("Your listing %s passed verification and is now visible in search.", propertyName),
		PropertyID: &propertyID,
	}}
	if err := s.repo.CreateBatch(ctx, row); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record listing verified notification")
	}
	return nil
}
