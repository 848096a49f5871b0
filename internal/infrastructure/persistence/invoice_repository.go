package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/smartbill/backend/internal/domain/billing"
	"github.com/smartbill/backend/internal/domain/shared"
)

// GormInvoiceRepository implements billing.InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// FindByID finds an invoice by its ID with line items loaded
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	var invoice billing.Invoice
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&invoice, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// FindAll finds invoices with filtering and pagination
func (r *GormInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*billing.Invoice, error) {
	var invoices []*billing.Invoice
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&billing.Invoice{}).Preload("Items"),
		filter,
	)

	if err := query.Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// FindUnpaidByCustomer finds unpaid invoices for a customer, oldest first
func (r *GormInvoiceRepository) FindUnpaidByCustomer(ctx context.Context, customerID uuid.UUID) ([]*billing.Invoice, error) {
	var invoices []*billing.Invoice
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("customer_id = ? AND status = ?", customerID, billing.InvoiceStatusUnpaid).
		Order("invoice_date ASC").
		Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// FindByCustomer finds invoices for a customer with filtering
func (r *GormInvoiceRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]*billing.Invoice, error) {
	var invoices []*billing.Invoice
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&billing.Invoice{}).Preload("Items").
			Where("customer_id = ?", customerID),
		filter,
	)

	if err := query.Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// ExistsForCustomerOnDate checks whether the customer already has an
// invoice dated on the given day
func (r *GormInvoiceRepository) ExistsForCustomerOnDate(ctx context.Context, customerID uuid.UUID, date time.Time) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&billing.Invoice{}).
		Where("customer_id = ? AND invoice_date = ?", customerID, date.Format("2006-01-02")).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountByCustomer counts invoices for a customer
func (r *GormInvoiceRepository) CountByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&billing.Invoice{}).
		Where("customer_id = ?", customerID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByService counts line items referencing a catalog service
func (r *GormInvoiceRepository) CountByService(ctx context.Context, serviceID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&billing.InvoiceLineItem{}).
		Where("service_id = ?", serviceID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an invoice together with its line items
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *billing.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Save the invoice header. Items are reconciled by hand below,
		// so the association is excluded here.
		if err := tx.Omit("Items").Save(invoice).Error; err != nil {
			return err
		}

		// Handle items: delete removed items and save/update existing ones
		if invoice.ID != uuid.Nil {
			currentItemIDs := make([]uuid.UUID, len(invoice.Items))
			for i, item := range invoice.Items {
				currentItemIDs[i] = item.ID
			}

			// Delete items not in the current list
			if len(currentItemIDs) > 0 {
				if err := tx.Where("invoice_id = ? AND id NOT IN ?", invoice.ID, currentItemIDs).
					Delete(&billing.InvoiceLineItem{}).Error; err != nil {
					return err
				}
			} else {
				// Delete all items if no items remain
				if err := tx.Where("invoice_id = ?", invoice.ID).
					Delete(&billing.InvoiceLineItem{}).Error; err != nil {
					return err
				}
			}

			// Save/update remaining items
			for i := range invoice.Items {
				invoice.Items[i].InvoiceID = invoice.ID
				if err := tx.Save(&invoice.Items[i]).Error; err != nil {
					return err
				}
			}
		}

		return nil
	})
}

// Count counts invoices matching the filter
func (r *GormInvoiceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&billing.Invoice{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// existsByNumber checks if an invoice number is already taken
func (r *GormInvoiceRepository) existsByNumber(ctx context.Context, number string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&billing.Invoice{}).
		Where("number = ?", number).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GenerateNumber generates a unique invoice number.
// Format: INV-YYYY-NNNNN (e.g., INV-2026-00001)
func (r *GormInvoiceRepository) GenerateNumber(ctx context.Context) (string, error) {
	year := time.Now().Year()
	prefix := fmt.Sprintf("INV-%d-", year)

	// Get the highest invoice number for this year
	var lastInvoice billing.Invoice
	err := r.db.WithContext(ctx).
		Model(&billing.Invoice{}).
		Where("number LIKE ?", prefix+"%").
		Order("number DESC").
		First(&lastInvoice).Error

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var nextNum int64 = 1
	if err == nil && lastInvoice.Number != "" {
		// Parse the sequence from the last invoice number
		parts := strings.Split(lastInvoice.Number, "-")
		if len(parts) == 3 {
			var num int64
			_, parseErr := fmt.Sscanf(parts[2], "%d", &num)
			if parseErr == nil {
				nextNum = num + 1
			}
		}
	}

	number := fmt.Sprintf("%s%05d", prefix, nextNum)

	// Verify uniqueness
	exists, err := r.existsByNumber(ctx, number)
	if err != nil {
		return "", err
	}
	if exists {
		// If taken, try incrementing until a free number is found
		for i := 0; i < 100; i++ {
			nextNum++
			number = fmt.Sprintf("%s%05d", prefix, nextNum)
			exists, err = r.existsByNumber(ctx, number)
			if err != nil {
				return "", err
			}
			if !exists {
				break
			}
		}
	}

	return number, nil
}

// applyFilter applies filter options to the query
func (r *GormInvoiceRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	// Apply pagination
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	// Apply ordering with whitelist validation to prevent SQL injection
	if filter.OrderBy != "" {
		sortField := ValidateSortField(filter.OrderBy, InvoiceSortFields, "")
		if sortField != "" {
			sortOrder := ValidateSortOrder(filter.OrderDir)
			query = query.Order(sortField + " " + sortOrder)
		} else {
			query = query.Order("created_at ASC")
		}
	} else {
		// Default ordering preserves entry order
		query = query.Order("created_at ASC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormInvoiceRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	// Apply search
	if filter.Search != "" {
		searchPattern := "%" + strings.TrimSpace(filter.Search) + "%"
		query = query.Where("number ILIKE ? OR customer_name ILIKE ?",
			searchPattern, searchPattern)
	}

	// Apply additional filters
	for key, value := range filter.Filters {
		switch key {
		case "customer_id":
			query = query.Where("customer_id = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("invoice_date >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("invoice_date <= ?", t)
			}
		}
	}

	return query
}

// Ensure GormInvoiceRepository implements InvoiceRepository
var _ billing.InvoiceRepository = (*GormInvoiceRepository)(nil)
