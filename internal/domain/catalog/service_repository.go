package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/smartbill/backend/internal/domain/shared"
)

// ServiceRepository defines the persistence interface for catalog services
type ServiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Service, error)
	// FindByNameInsensitive matches the service name ignoring case.
	// Returns shared.ErrNotFound when no service carries the name.
	FindByNameInsensitive(ctx context.Context, name string) (*Service, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*Service, error)
	Save(ctx context.Context, service *Service) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
