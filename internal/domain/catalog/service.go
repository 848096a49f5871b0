package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/smartbill/backend/internal/domain/shared"
	"github.com/smartbill/backend/internal/domain/shared/valueobject"
)

// Service represents a billable catalog offering
// It is the aggregate root for catalog operations
type Service struct {
	shared.BaseAggregateRoot
	Name        string          `gorm:"type:varchar(200);not null;index"`
	Description string          `gorm:"type:varchar(300)"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (Service) TableName() string {
	return "services"
}

// NewService creates a new catalog service
func NewService(name, description string, unitPrice valueobject.Money) (*Service, error) {
	if err := validateServiceName(name); err != nil {
		return nil, err
	}
	if err := validateDescription(description); err != nil {
		return nil, err
	}
	if err := validateUnitPrice(unitPrice); err != nil {
		return nil, err
	}

	return &Service{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Description:       strings.TrimSpace(description),
		UnitPrice:         unitPrice.Amount(),
	}, nil
}

// Update replaces the service's name, description and unit price
func (s *Service) Update(name, description string, unitPrice valueobject.Money) error {
	if err := validateServiceName(name); err != nil {
		return err
	}
	if err := validateDescription(description); err != nil {
		return err
	}
	if err := validateUnitPrice(unitPrice); err != nil {
		return err
	}

	s.Name = strings.TrimSpace(name)
	s.Description = strings.TrimSpace(description)
	s.UnitPrice = unitPrice.Amount()

	return nil
}

// UnitPriceMoney returns the unit price as a Money value object
func (s *Service) UnitPriceMoney() valueobject.Money {
	return valueobject.NewMoneyINR(s.UnitPrice)
}

// NameEqualsFold reports whether the service name matches the given
// name ignoring case. Catalog names are unique case-insensitively.
func (s *Service) NameEqualsFold(name string) bool {
	return strings.EqualFold(s.Name, strings.TrimSpace(name))
}

func validateServiceName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Service name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Service name cannot exceed 200 characters")
	}
	return nil
}

func validateDescription(description string) error {
	if len(strings.TrimSpace(description)) > 300 {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 300 characters")
	}
	return nil
}

func validateUnitPrice(unitPrice valueobject.Money) error {
	if !unitPrice.IsPositive() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price must be positive")
	}
	return nil
}
