package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/estatekeeper/internal/client/api"
	"github.com/dmitrijs2005/estatekeeper/internal/client/models"
	"github.com/dmitrijs2005/estatekeeper/internal/logging"
)

// PropertyService covers the listing CRUD surface of the backend.
//
// List normalizes a bare-object response into a one-element slice; the
// backend has been observed to answer both ways. Get/Update/Delete report a
// missing id as common.ErrorNotFound (via the gateway's status mapping).
type PropertyService interface {
	List(ctx context.Context) ([]models.Property, error)
	ListByUser(ctx context.Context, userID string) ([]models.Property, error)
	Get(ctx context.Context, id string) (*models.Property, error)
	Create(ctx context.Context, draft models.Draft) (*models.Property, error)
	Update(ctx context.Context, id string, patch models.Patch) (*models.Property, error)
	Delete(ctx context.Context, id string) (*models.Property, error)
}

type propertyService struct {
	api *api.Client
	log logging.Logger
}

// NewPropertyService constructs a PropertyService over the given gateway.
func NewPropertyService(client *api.Client, log logging.Logger) PropertyService {
	return &propertyService{api: client, log: log.With("service", "properties")}
}

func (s *propertyService) List(ctx context.Context) ([]models.Property, error) {
	var raw json.RawMessage
	if err := s.api.Get(ctx, "/properties", &raw); err != nil {
		s.log.Error(ctx, "listing properties failed", "error", err)
		return nil, err
	}

	list, err := decodePropertyList(raw)
	if err != nil {
		s.log.Error(ctx, "properties response unreadable", "error", err)
		return nil, err
	}
	return list, nil
}

// decodePropertyList accepts either an array of records or a single bare
// record, which it wraps into a one-element slice.
func decodePropertyList(raw json.RawMessage) ([]models.Property, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var list []models.Property
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("decode property list: %w", err)
		}
		return list, nil
	}

	var one models.Property
	if err := json.Unmarshal(trimmed, &one); err != nil {
		return nil, fmt.Errorf("decode property: %w", err)
	}
	return []models.Property{one}, nil
}

func (s *propertyService) ListByUser(ctx context.Context, userID string) ([]models.Property, error) {
	var list []models.Property
	if err := s.api.Get(ctx, "/properties/user/"+userID, &list); err != nil {
		s.log.Error(ctx, "listing user properties failed", "userId", userID, "error", err)
		return nil, err
	}
	return list, nil
}

func (s *propertyService) Get(ctx context.Context, id string) (*models.Property, error) {
	var p models.Property
	if err := s.api.Get(ctx, "/properties/"+id, &p); err != nil {
		s.log.Error(ctx, "fetching property failed", "id", id, "error", err)
		return nil, err
	}
	return &p, nil
}

func (s *propertyService) Create(ctx context.Context, draft models.Draft) (*models.Property, error) {
	var p models.Property
	if err := s.api.Post(ctx, "/properties", draft, &p); err != nil {
		s.log.Error(ctx, "creating property failed", "error", err)
		return nil, err
	}
	return &p, nil
}

func (s *propertyService) Update(ctx context.Context, id string, patch models.Patch) (*models.Property, error) {
	var p models.Property
	if err := s.api.Put(ctx, "/properties/"+id, patch, &p); err != nil {
		s.log.Error(ctx, "updating property failed", "id", id, "error", err)
		return nil, err
	}
	return &p, nil
}

func (s *propertyService) Delete(ctx context.Context, id string) (*models.Property, error) {
	var p models.Property
	if err := s.api.Delete(ctx, "/properties/"+id, &p); err != nil {
		s.log.Error(ctx, "deleting property failed", "id", id, "error", err)
		return nil, err
	}
	return &p, nil
}
