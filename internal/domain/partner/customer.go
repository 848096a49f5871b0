package partner

import (
	"regexp"
	"strings"

	"github.com/smartbill/backend/internal/domain/shared"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Customer represents a billed customer in the partner context
// It is the aggregate root for customer-related operations
type Customer struct {
	shared.BaseAggregateRoot
	Name    string `gorm:"type:varchar(200);not null"`
	Email   string `gorm:"type:varchar(200);not null;index"`
	Phone   string `gorm:"type:varchar(50);index"`
	Address string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer with required fields
func NewCustomer(name, email, phone, address string) (*Customer, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	return &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Email:             strings.TrimSpace(email),
		Phone:             strings.TrimSpace(phone),
		Address:           strings.TrimSpace(address),
	}, nil
}

// Update replaces the customer's contact information
func (c *Customer) Update(name, email, phone, address string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if err := validateEmail(email); err != nil {
		return err
	}

	c.Name = strings.TrimSpace(name)
	c.Email = strings.TrimSpace(email)
	c.Phone = strings.TrimSpace(phone)
	c.Address = strings.TrimSpace(address)

	return nil
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot exceed 200 characters")
	}
	return nil
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Customer email cannot be empty")
	}
	if !emailPattern.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Customer email format is invalid")
	}
	return nil
}
