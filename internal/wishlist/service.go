package wishlist

import (
	"context"
	"errors"

	"github.com/angelmondragon/homefinderz-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/homefinderz-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service exposes wishlist management for the authenticated viewer.
type Service interface {
	Add(ctx context.Context, userID, propertyID uuid.UUID) error
	Remove(ctx context.Context, userID, propertyID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type entryStore interface {
	Add(ctx context.Context, userID, propertyID uuid.UUID) error
	Remove(ctx context.Context, userID, propertyID uuid.UUID) error
	ListPropertyIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type propertyFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Property, error)
}

// ServiceParams groups dependencies for the wishlist service.
type ServiceParams struct {
	Repo       entryStore
	Properties propertyFinder
}

type service struct {
	repo       entryStore
	properties propertyFinder
}

// NewService builds a wishlist service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "wishlist repository required")
	}
	if params.Properties == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "property finder required")
	}
	return &service{
		repo:       params.Repo,
		properties: params.Properties,
	}, nil
}

// Add ensures the property exists and saves it for the user. Duplicate adds
// are absorbed by the store, so retries are safe.
func (s *service) Add(ctx context.Context, userID, propertyID uuid.UUID) error {
	if err := validateEntryIDs(userID, propertyID); err != nil {
		return err
	}
	if _, err := s.properties.FindByID(ctx, propertyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "property not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load property")
	}
	if err := s.repo.Add(ctx, userID, propertyID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save wishlist entry")
	}
	return nil
}

// Remove drops the entry regardless of prior state.
func (s *service) Remove(ctx context.Context, userID, propertyID uuid.UUID) error {
	if err := validateEntryIDs(userID, propertyID); err != nil {
		return err
	}
	if err := s.repo.Remove(ctx, userID, propertyID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove wishlist entry")
	}
	return nil
}

// List returns the ids of every property the user has saved, newest first.
func (s *service) List(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	ids, err := s.repo.ListPropertyIDs(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load wishlist")
	}
	if ids == nil {
		ids = []uuid.UUID{}
	}
	return ids, nil
}

func validateEntryIDs(userID, propertyID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if propertyID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "property id required")
	}
	return nil
}
