package listings

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/angelmondragon/homefinderz-backend/internal/notifications"
	"github.com/angelmondragon/homefinderz-backend/internal/wishlist"
	"github.com/angelmondragon/homefinderz-backend/pkg/cache"
	"github.com/angelmondragon/homefinderz-backend/pkg/db/models"
	"github.com/angelmondragon/homefinderz-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/homefinderz-backend/pkg/errors"
	"github.com/angelmondragon/homefinderz-backend/pkg/logger"
)

// cacheNamespace versions every cached listing read. Any listing write bumps
// it, so stale entries are never served past the write.
const cacheNamespace = "properties"

// Service exposes the property listing operations.
type Service interface {
	ListProperties(ctx context.Context, input ListInput) ([]PropertyDTO, error)
	GetProperty(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*PropertyDTO, error)
	CreateProperty(ctx context.Context, input CreateInput) (*PropertyDTO, error)
	UpdateProperty(ctx context.Context, id uuid.UUID, input UpdateInput) (*PropertyDTO, error)
	DeleteProperty(ctx context.Context, id uuid.UUID) error
	VerifyProperty(ctx context.Context, id uuid.UUID) (*PropertyDTO, error)
}

// ListInput narrows the catalog scan. Status accepts the recognized filter
// values; anything else returns the whole catalog. ViewerID, when present,
// resolves per-property wish flags.
type ListInput struct {
	Status   string
	ViewerID *uuid.UUID
}

// CreateInput holds the validated payload to publish a listing.
type CreateInput struct {
	OwnerID         uuid.UUID
	Title           string
	Description     string
	PropertyType    enums.PropertyType
	TransactionType enums.TransactionType
	Price           decimal.Decimal
	Currency        string
	Size            float64
	Rooms           int
	Address         string
	Facilities      []string
	DocumentURL     *string
	Images          []ImageInput
}

// UpdateInput holds optional mutation values for a listing. Nil fields stay
// untouched; a non-nil Images pointer replaces the gallery wholesale, empty
// slice included.
type UpdateInput struct {
	Title                *string
	Description          *string
	PropertyType         *enums.PropertyType
	TransactionType      *enums.TransactionType
	Price                *decimal.Decimal
	Currency             *string
	Size                 *float64
	Rooms                *int
	Address              *string
	Facilities           *[]string
	Status               *enums.PropertyStatus
	DocumentURL          *string
	VerificationComments *string
	Images               *[]ImageInput
}

// ImageInput is one gallery entry in a create or replace payload.
type ImageInput struct {
	ImageURL  string
	IsPrimary bool
}

type ownerStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.User, error)
	DecrementListingLimit(ctx context.Context, id uuid.UUID) error
}

type wishReader interface {
	IsWished(ctx context.Context, userID, propertyID uuid.UUID) (bool, error)
	MembershipForUser(ctx context.Context, userID uuid.UUID, propertyIDs []uuid.UUID) (map[uuid.UUID]bool, error)
	WishersForProperty(ctx context.Context, propertyID uuid.UUID) ([]wishlist.Wisher, error)
}

type priceChangeNotifier interface {
	DispatchPriceChange(ctx context.Context, recipients []string, notice notifications.PriceChange) error
}

type feedWriter interface {
	RecordPriceChange(ctx context.Context, userIDs []uuid.UUID, propertyID uuid.UUID, notice notifications.PriceChange) error
	RecordListingVerified(ctx context.Context, ownerID, propertyID uuid.UUID, propertyName string) error
}

type contextSyncer interface {
	SyncVerifiedListing(ctx context.Context, property *models.Property, imageCount int, history []models.PricingHistory) error
}

// ServiceParams groups the listing service dependencies.
type ServiceParams struct {
	Repo      Repository
	Owners    ownerStore
	Wishes    wishReader
	Notifier  priceChangeNotifier
	Feed      feedWriter
	Assistant contextSyncer
	Cache     *cache.Client
	Logger    *logger.Logger
}

type service struct {
	repo      Repository
	owners    ownerStore
	wishes    wishReader
	notifier  priceChangeNotifier
	feed      feedWriter
	assistant contextSyncer
	cache     *cache.Client
	logg      *logger.Logger
}

// NewService wires the listing service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "listings repository required")
	}
	if params.Owners == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "owner store required")
	}
	if params.Wishes == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "wishlist reader required")
	}
	if params.Notifier == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "price change notifier required")
	}
	if params.Feed == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notification feed required")
	}
	if params.Assistant == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "assistant syncer required")
	}
	if params.Cache == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "cache client required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &service{
		repo:      params.Repo,
		owners:    params.Owners,
		wishes:    params.Wishes,
		notifier:  params.Notifier,
		feed:      params.Feed,
		assistant: params.Assistant,
		cache:     params.Cache,
		logg:      params.Logger,
	}, nil
}

// ListProperties returns the catalog as full aggregates. Child rows, owners,
// and wish flags are each loaded with one batched query across the whole page
// and partitioned in memory.
func (s *service) ListProperties(ctx context.Context, input ListInput) ([]PropertyDTO, error) {
	viewer := "anonymous"
	if input.ViewerID != nil {
		viewer = input.ViewerID.String()
	}
	cacheParts := []string{"list", "status:" + input.Status, "viewer:" + viewer}

	var cached []PropertyDTO
	if s.cache.GetJSON(ctx, cacheNamespace, cacheParts, &cached) {
		return cached, nil
	}

	properties, err := s.repo.List(ctx, input.Status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list properties")
	}

	rel, err := s.loadBatchRelations(ctx, properties, input.ViewerID)
	if err != nil {
		return nil, err
	}

	out := make([]PropertyDTO, 0, len(properties))
	for i := range properties {
		property := &properties[i]

		var owner *models.User
		if row, ok := rel.owners[property.OwnerID]; ok {
			owner = &row
		}

		out = append(out, *NewPropertyDTO(
			property,
			rel.images[property.ID],
			rel.views[property.ID],
			rel.history[property.ID],
			owner,
			rel.wished[property.ID],
		))
	}

	s.cache.SetJSON(ctx, cacheNamespace, cacheParts, out)
	return out, nil
}

// GetProperty returns one aggregate. Missing listings fail before any
// relation query runs.
func (s *service) GetProperty(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*PropertyDTO, error) {
	property, err := s.findProperty(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.assemble(ctx, property, viewerID)
}

// CreateProperty publishes a listing: quota check, the property row, its
// gallery, and the opening price-history point.
func (s *service) CreateProperty(ctx context.Context, input CreateInput) (*PropertyDTO, error) {
	owner, err := s.owners.FindByID(ctx, input.OwnerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "owner not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load owner")
	}
	if owner.Role == enums.UserRolePrivateSeller && owner.ListingLimit != nil && *owner.ListingLimit <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeQuotaExceeded, "listing limit reached")
	}

	property := &models.Property{
		OwnerID:         owner.ID,
		Title:           strings.TrimSpace(input.Title),
		Description:     input.Description,
		PropertyType:    input.PropertyType,
		TransactionType: input.TransactionType,
		Price:           input.Price,
		Currency:        input.Currency,
		Size:            input.Size,
		Rooms:           input.Rooms,
		Address:         input.Address,
		Facilities:      append([]string{}, input.Facilities...),
		Status:          enums.PropertyStatusActive,
		DocumentURL:     input.DocumentURL,
	}
	created, err := s.repo.Create(ctx, property)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert property")
	}

	// Unlimited (nil) and zeroed allowances are never decremented.
	if owner.Role == enums.UserRolePrivateSeller && owner.ListingLimit != nil && *owner.ListingLimit != 0 {
		if err := s.owners.DecrementListingLimit(ctx, owner.ID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: decrement listing limit")
		}
	}

	images := buildImageRows(created.ID, input.Images)
	if err := s.repo.CreateImages(ctx, images); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert property images")
	}

	opening := &models.PricingHistory{
		PropertyID:    created.ID,
		Price:         created.Price,
		Currency:      created.Currency,
		EffectiveDate: time.Now().UTC(),
	}
	if err := s.repo.AppendHistory(ctx, opening); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: append pricing history")
	}

	s.cache.Bump(ctx, cacheNamespace)

	return NewPropertyDTO(created, images, nil, []models.PricingHistory{*opening}, owner, false), nil
}

// UpdateProperty applies a partial update, replaces the gallery when one was
// supplied, extends the price history on any price or currency change, and
// notifies wishing users when the price moved. The returned aggregate always
// carries is_wished=false.
func (s *service) UpdateProperty(ctx context.Context, id uuid.UUID, input UpdateInput) (*PropertyDTO, error) {
	property, err := s.findProperty(ctx, id)
	if err != nil {
		return nil, err
	}

	previousPrice := property.Price
	applyUpdateToProperty(property, input)

	saved, err := s.repo.Save(ctx, property)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update property")
	}

	if input.Price != nil && !saved.Price.Equal(previousPrice) {
		s.notifyPriceChange(ctx, saved, previousPrice)
	}

	if input.Images != nil {
		rows := buildImageRows(saved.ID, *input.Images)
		if err := s.repo.ReplaceImages(ctx, saved.ID, rows); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: replace property images")
		}
	}

	if input.Price != nil || input.Currency != nil {
		entry := &models.PricingHistory{
			PropertyID:    saved.ID,
			Price:         saved.Price,
			Currency:      saved.Currency,
			EffectiveDate: time.Now().UTC(),
		}
		if err := s.repo.AppendHistory(ctx, entry); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: append pricing history")
		}
	}

	s.cache.Bump(ctx, cacheNamespace)

	return s.assemble(ctx, saved, nil)
}

// DeleteProperty removes the listing. A missing id fails lookup and never
// issues a delete.
func (s *service) DeleteProperty(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findProperty(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDeleteFailed, err, "delete property")
	}
	s.cache.Bump(ctx, cacheNamespace)
	return nil
}

// VerifyProperty flips the listing to verified and pushes the fresh summary
// into every active assistant conversation. A sync failure is logged, never
// surfaced; verification has already committed.
func (s *service) VerifyProperty(ctx context.Context, id uuid.UUID) (*PropertyDTO, error) {
	property, err := s.findProperty(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.MarkVerified(ctx, id); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: mark property verified")
	}
	property.IsVerified = true

	s.cache.Bump(ctx, cacheNamespace)

	rel, err := s.loadRelations(ctx, property, nil)
	if err != nil {
		return nil, err
	}

	ctx = s.logg.WithPropertyID(ctx, property.ID.String())
	if err := s.assistant.SyncVerifiedListing(ctx, property, len(rel.images), rel.history); err != nil {
		s.logg.Error(ctx, "assistant context sync incomplete", err)
	}
	if err := s.feed.RecordListingVerified(ctx, property.OwnerID, property.ID, property.Title); err != nil {
		s.logg.Error(ctx, "verification feed entry not recorded", err)
	}

	return NewPropertyDTO(property, rel.images, rel.views, rel.history, rel.owner, rel.wished), nil
}

func (s *service) findProperty(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	property, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "property not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load property")
	}
	return property, nil
}

// notifyPriceChange fans the price move out to every wishing user by mail and
// drops a feed row per user. Both paths are best-effort: failures are logged
// and the update proceeds.
func (s *service) notifyPriceChange(ctx context.Context, property *models.Property, oldPrice decimal.Decimal) {
	ctx = s.logg.WithPropertyID(ctx, property.ID.String())

	wishers, err := s.wishes.WishersForProperty(ctx, property.ID)
	if err != nil {
		s.logg.Error(ctx, "load wishers failed", err)
		return
	}
	if len(wishers) == 0 {
		return
	}

	notice := notifications.PriceChange{
		PropertyName: property.Title,
		Address:      property.Address,
		OldPrice:     oldPrice,
		NewPrice:     property.Price,
		Currency:     property.Currency,
	}

	recipients := make([]string, 0, len(wishers))
	userIDs := make([]uuid.UUID, 0, len(wishers))
	for _, wisher := range wishers {
		recipients = append(recipients, wisher.Email)
		userIDs = append(userIDs, wisher.UserID)
	}

	if err := s.notifier.DispatchPriceChange(ctx, recipients, notice); err != nil {
		s.logg.Error(ctx, "price change fan-out incomplete", err)
	}
	if err := s.feed.RecordPriceChange(ctx, userIDs, property.ID, notice); err != nil {
		s.logg.Error(ctx, "price change feed write failed", err)
	}
}

// propertyRelations carries the child rows of a single listing.
type propertyRelations struct {
	images  []models.PropertyImage
	views   []models.PropertyView
	history []models.PricingHistory
	owner   *models.User
	wished  bool
}

// loadRelations fetches a single listing's relations concurrently. A missing
// owner row degrades to nil; every other failure surfaces.
func (s *service) loadRelations(ctx context.Context, property *models.Property, viewerID *uuid.UUID) (*propertyRelations, error) {
	var (
		rel  propertyRelations
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	record := func(err error) {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	}
	ids := []uuid.UUID{property.ID}

	wg.Add(1)
	go func() {
		defer wg.Done()
		byID, err := s.repo.ImagesByPropertyIDs(ctx, ids)
		if err != nil {
			record(err)
			return
		}
		rel.images = byID[property.ID]
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		byID, err := s.repo.ViewsByPropertyIDs(ctx, ids)
		if err != nil {
			record(err)
			return
		}
		rel.views = byID[property.ID]
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		byID, err := s.repo.HistoryByPropertyIDs(ctx, ids)
		if err != nil {
			record(err)
			return
		}
		rel.history = byID[property.ID]
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		owner, err := s.owners.FindByID(ctx, property.OwnerID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				record(err)
			}
			return
		}
		rel.owner = owner
	}()

	if viewerID != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			wished, err := s.wishes.IsWished(ctx, *viewerID, property.ID)
			if err != nil {
				record(err)
				return
			}
			rel.wished = wished
		}()
	}

	wg.Wait()
	if err := multierr.Combine(errs...); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load property relations")
	}
	return &rel, nil
}

func (s *service) assemble(ctx context.Context, property *models.Property, viewerID *uuid.UUID) (*PropertyDTO, error) {
	rel, err := s.loadRelations(ctx, property, viewerID)
	if err != nil {
		return nil, err
	}
	return NewPropertyDTO(property, rel.images, rel.views, rel.history, rel.owner, rel.wished), nil
}

// batchRelations carries the partitioned child rows for a page of listings.
type batchRelations struct {
	images  map[uuid.UUID][]models.PropertyImage
	views   map[uuid.UUID][]models.PropertyView
	history map[uuid.UUID][]models.PricingHistory
	owners  map[uuid.UUID]models.User
	wished  map[uuid.UUID]bool
}

// loadBatchRelations runs the page-wide child queries concurrently, one IN
// query per relation regardless of page size.
func (s *service) loadBatchRelations(ctx context.Context, properties []models.Property, viewerID *uuid.UUID) (*batchRelations, error) {
	ids := make([]uuid.UUID, 0, len(properties))
	ownerIDs := make([]uuid.UUID, 0, len(properties))
	seenOwners := make(map[uuid.UUID]struct{}, len(properties))
	for i := range properties {
		ids = append(ids, properties[i].ID)
		if _, ok := seenOwners[properties[i].OwnerID]; !ok {
			seenOwners[properties[i].OwnerID] = struct{}{}
			ownerIDs = append(ownerIDs, properties[i].OwnerID)
		}
	}

	rel := &batchRelations{wished: map[uuid.UUID]bool{}}
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	record := func(err error) {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		byID, err := s.repo.ImagesByPropertyIDs(ctx, ids)
		if err != nil {
			record(err)
			return
		}
		rel.images = byID
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		byID, err := s.repo.ViewsByPropertyIDs(ctx, ids)
		if err != nil {
			record(err)
			return
		}
		rel.views = byID
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		byID, err := s.repo.HistoryByPropertyIDs(ctx, ids)
		if err != nil {
			record(err)
			return
		}
		rel.history = byID
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		byID, err := s.owners.FindByIDs(ctx, ownerIDs)
		if err != nil {
			record(err)
			return
		}
		rel.owners = byID
	}()

	if viewerID != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			membership, err := s.wishes.MembershipForUser(ctx, *viewerID, ids)
			if err != nil {
				record(err)
				return
			}
			rel.wished = membership
		}()
	}

	wg.Wait()
	if err := multierr.Combine(errs...); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load listing relations")
	}
	return rel, nil
}

func buildImageRows(propertyID uuid.UUID, inputs []ImageInput) []models.PropertyImage {
	rows := make([]models.PropertyImage, 0, len(inputs))
	for _, input := range inputs {
		rows = append(rows, models.PropertyImage{
			PropertyID: propertyID,
			ImageURL:   input.ImageURL,
			IsPrimary:  input.IsPrimary,
		})
	}
	return rows
}

func applyUpdateToProperty(property *models.Property, input UpdateInput) {
	if input.Title != nil {
		property.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		property.Description = *input.Description
	}
	if input.PropertyType != nil {
		property.PropertyType = *input.PropertyType
	}
	if input.TransactionType != nil {
		property.TransactionType = *input.TransactionType
	}
	if input.Price != nil {
		property.Price = *input.Price
	}
	if input.Currency != nil {
		property.Currency = *input.Currency
	}
	if input.Size != nil {
		property.Size = *input.Size
	}
	if input.Rooms != nil {
		property.Rooms = *input.Rooms
	}
	if input.Address != nil {
		property.Address = *input.Address
	}
	if input.Facilities != nil {
		property.Facilities = append([]string{}, *input.Facilities...)
	}
	if input.Status != nil {
		property.Status = *input.Status
	}
	if input.DocumentURL != nil {
		property.DocumentURL = input.DocumentURL
	}
	if input.VerificationComments != nil {
		property.VerificationComments = input.VerificationComments
	}
}
