package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/smartbill/backend/internal/domain/catalog"
	"github.com/smartbill/backend/internal/domain/shared"
)

// GormServiceRepository implements catalog.ServiceRepository using GORM
type GormServiceRepository struct {
	db *gorm.DB
}

// NewGormServiceRepository creates a new GormServiceRepository
func NewGormServiceRepository(db *gorm.DB) *GormServiceRepository {
	return &GormServiceRepository{db: db}
}

// FindByID finds a service by its ID
func (r *GormServiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Service, error) {
	var service catalog.Service
	if err := r.db.WithContext(ctx).First(&service, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &service, nil
}

// FindByNameInsensitive finds a service by name ignoring case
func (r *GormServiceRepository) FindByNameInsensitive(ctx context.Context, name string) (*catalog.Service, error) {
	var service catalog.Service
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", strings.TrimSpace(name)).
		First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &service, nil
}

// FindAll finds all services matching the filter
func (r *GormServiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*catalog.Service, error) {
	var services []*catalog.Service
	query := r.applyFilter(r.db.WithContext(ctx).Model(&catalog.Service{}), filter)

	if err := query.Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

// Save creates or updates a service
func (r *GormServiceRepository) Save(ctx context.Context, service *catalog.Service) error {
	return r.db.WithContext(ctx).Save(service).Error
}

// Delete deletes a service
func (r *GormServiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Service{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts services matching the filter
func (r *GormServiceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&catalog.Service{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormServiceRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	// Apply pagination
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	// Apply ordering with whitelist validation to prevent SQL injection
	if filter.OrderBy != "" {
		sortField := ValidateSortField(filter.OrderBy, ServiceSortFields, "")
		if sortField != "" {
			sortOrder := ValidateSortOrder(filter.OrderDir)
			query = query.Order(sortField + " " + sortOrder)
		} else {
			query = query.Order("name ASC")
		}
	} else {
		// Default ordering
		query = query.Order("name ASC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormServiceRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	// Apply search
	if filter.Search != "" {
		searchPattern := "%" + strings.TrimSpace(filter.Search) + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?",
			searchPattern, searchPattern)
	}

	// Apply additional filters
	for key, value := range filter.Filters {
		switch key {
		case "min_price":
			if d, ok := value.(decimal.Decimal); ok {
				query = query.Where("unit_price >= ?", d)
			}
		case "max_price":
			if d, ok := value.(decimal.Decimal); ok {
				query = query.Where("unit_price <= ?", d)
			}
		}
	}

	return query
}

// Ensure GormServiceRepository implements ServiceRepository
var _ catalog.ServiceRepository = (*GormServiceRepository)(nil)
