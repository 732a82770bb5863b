package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/homefinderz-backend/api/middleware"
	"github.com/angelmondragon/homefinderz-backend/api/responses"
	"github.com/angelmondragon/homefinderz-backend/api/validators"
	"github.com/angelmondragon/homefinderz-backend/internal/listings"
	"github.com/angelmondragon/homefinderz-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/homefinderz-backend/pkg/errors"
	"github.com/angelmondragon/homefinderz-backend/pkg/logger"
)

// ListProperties returns the catalog, optionally narrowed by status, with
// wish flags resolved for an authenticated viewer.
func ListProperties(svc listings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "listing service unavailable"))
			return
		}

		viewerID, err := optionalViewerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := listings.ListInput{
			Status:   strings.TrimSpace(r.URL.Query().Get("status")),
			ViewerID: viewerID,
		}

		properties, err := svc.ListProperties(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, properties)
	}
}

// GetProperty returns one listing aggregate by id.
func GetProperty(svc listings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "listing service unavailable"))
			return
		}

		propertyID, err := propertyIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		viewerID, err := optionalViewerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		property, err := svc.GetProperty(r.Context(), propertyID, viewerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, property)
	}
}

// CreateProperty publishes a listing owned by the authenticated user.
func CreateProperty(svc listings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "listing service unavailable"))
			return
		}

		ownerID, err := requiredUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createPropertyRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toCreateInput(ownerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		property, err := svc.CreateProperty(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, property)
	}
}

// UpdateProperty applies a partial update to a listing.
func UpdateProperty(svc listings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "listing service unavailable"))
			return
		}

		propertyID, err := propertyIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updatePropertyRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toUpdateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		property, err := svc.UpdateProperty(r.Context(), propertyID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, property)
	}
}

// DeleteProperty removes a listing and its dependent rows.
func DeleteProperty(svc listings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "listing service unavailable"))
			return
		}

		propertyID, err := propertyIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteProperty(r.Context(), propertyID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}

// VerifyProperty marks a listing verified and returns the fresh aggregate.
func VerifyProperty(svc listings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "listing service unavailable"))
			return
		}

		propertyID, err := propertyIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		property, err := svc.VerifyProperty(r.Context(), propertyID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, property)
	}
}

type propertyImageRequest struct {
	ImageURL  string `json:"image_url" validate:"required,url"`
	IsPrimary bool   `json:"is_primary"`
}

type createPropertyRequest struct {
	Title           string                 `json:"title" validate:"required"`
	Description     string                 `json:"description" validate:"required"`
	PropertyType    string                 `json:"property_type" validate:"required"`
	TransactionType string                 `json:"transaction_type" validate:"required"`
	Price           decimal.Decimal        `json:"price" validate:"required"`
	Currency        string                 `json:"currency,omitempty"`
	Size            float64                `json:"size,omitempty" validate:"omitempty,gte=0"`
	Rooms           int                    `json:"rooms,omitempty" validate:"omitempty,gte=0"`
	Address         string                 `json:"address" validate:"required"`
	Facilities      []string               `json:"facilities,omitempty"`
	DocumentURL     *string                `json:"document_url,omitempty"`
	Images          []propertyImageRequest `json:"images,omitempty" validate:"omitempty,dive"`
}

func (r createPropertyRequest) toCreateInput(ownerID uuid.UUID) (listings.CreateInput, error) {
	propertyType, err := enums.ParsePropertyType(strings.TrimSpace(r.PropertyType))
	if err != nil {
		return listings.CreateInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid property type")
	}

	transactionType, err := enums.ParseTransactionType(strings.TrimSpace(r.TransactionType))
	if err != nil {
		return listings.CreateInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid transaction type")
	}

	if r.Price.IsNegative() {
		return listings.CreateInput{}, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}

	return listings.CreateInput{
		OwnerID:         ownerID,
		Title:           strings.TrimSpace(r.Title),
		Description:     r.Description,
		PropertyType:    propertyType,
		TransactionType: transactionType,
		Price:           r.Price,
		Currency:        strings.ToUpper(strings.TrimSpace(r.Currency)),
		Size:            r.Size,
		Rooms:           r.Rooms,
		Address:         strings.TrimSpace(r.Address),
		Facilities:      r.Facilities,
		DocumentURL:     r.DocumentURL,
		Images:          toImageInputs(r.Images),
	}, nil
}

type updatePropertyRequest struct {
	Title                *string                 `json:"title,omitempty"`
	Description          *string                 `json:"description,omitempty"`
	PropertyType         *string                 `json:"property_type,omitempty"`
	TransactionType      *string                 `json:"transaction_type,omitempty"`
	Price                *decimal.Decimal        `json:"price,omitempty"`
	Currency             *string                 `json:"currency,omitempty"`
	Size                 *float64                `json:"size,omitempty" validate:"omitempty,gte=0"`
	Rooms                *int                    `json:"rooms,omitempty" validate:"omitempty,gte=0"`
	Address              *string                 `json:"address,omitempty"`
	Facilities           *[]string               `json:"facilities,omitempty"`
	Status               *string                 `json:"status,omitempty"`
	DocumentURL          *string                 `json:"document_url,omitempty"`
	VerificationComments *string                 `json:"verification_comments,omitempty"`
	Images               *[]propertyImageRequest `json:"images,omitempty" validate:"omitempty,dive"`
}

func (r updatePropertyRequest) toUpdateInput() (listings.UpdateInput, error) {
	input := listings.UpdateInput{
		Title:                r.Title,
		Description:          r.Description,
		Price:                r.Price,
		Size:                 r.Size,
		Rooms:                r.Rooms,
		Address:              r.Address,
		Facilities:           r.Facilities,
		DocumentURL:          r.DocumentURL,
		VerificationComments: r.VerificationComments,
	}

	if r.PropertyType != nil {
		parsed, err := enums.ParsePropertyType(strings.TrimSpace(*r.PropertyType))
		if err != nil {
			return listings.UpdateInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid property type")
		}
		input.PropertyType = &parsed
	}

	if r.TransactionType != nil {
		parsed, err := enums.ParseTransactionType(strings.TrimSpace(*r.TransactionType))
		if err != nil {
			return listings.UpdateInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid transaction type")
		}
		input.TransactionType = &parsed
	}

	if r.Status != nil {
		parsed, err := enums.ParsePropertyStatus(strings.TrimSpace(*r.Status))
		if err != nil {
			return listings.UpdateInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status")
		}
		input.Status = &parsed
	}

	if r.Price != nil && r.Price.IsNegative() {
		return listings.UpdateInput{}, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}

	if r.Currency != nil {
		normalized := strings.ToUpper(strings.TrimSpace(*r.Currency))
		if normalized == "" {
			return listings.UpdateInput{}, pkgerrors.New(pkgerrors.CodeValidation, "currency cannot be empty")
		}
		input.Currency = &normalized
	}

	if r.Images != nil {
		images := toImageInputs(*r.Images)
		input.Images = &images
	}

	return input, nil
}

func toImageInputs(images []propertyImageRequest) []listings.ImageInput {
	result := make([]listings.ImageInput, 0, len(images))
	for _, image := range images {
		result = append(result, listings.ImageInput{
			ImageURL:  strings.TrimSpace(image.ImageURL),
			IsPrimary: image.IsPrimary,
		})
	}
	return result
}

func propertyIDParam(r *http.Request) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "propertyId"))
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "property id is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid property id")
	}
	return id, nil
}

func requiredUserID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id")
	}
	return id, nil
}

func optionalViewerID(r *http.Request) (*uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id")
	}
	return &id, nil
}
