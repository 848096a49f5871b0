package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartbill/backend/internal/domain/shared/valueobject"
)

// ============================================================================
// Service Creation Tests
// ============================================================================

func TestNewService(t *testing.T) {
	price := valueobject.NewMoneyINRFromFloat(450.00)

	svc, err := NewService("Grooming", "Full grooming session", price)

	require.NoError(t, err)
	assert.NotEqual(t, "", svc.GetID().String())
	assert.Equal(t, "Grooming", svc.Name)
	assert.Equal(t, "Full grooming session", svc.Description)
	assert.True(t, price.Amount().Equal(svc.UnitPrice))
	assert.Equal(t, 1, svc.GetVersion())
}

func TestNewService_TrimsWhitespace(t *testing.T) {
	svc, err := NewService("  Vaccination  ", "  Annual shots  ", valueobject.NewMoneyINRFromFloat(800))

	require.NoError(t, err)
	assert.Equal(t, "Vaccination", svc.Name)
	assert.Equal(t, "Annual shots", svc.Description)
}

func TestNewService_Validation(t *testing.T) {
	validPrice := valueobject.NewMoneyINRFromFloat(100)

	tests := []struct {
		name        string
		svcName     string
		description string
		price       valueobject.Money
		wantCode    string
	}{
		{
			name:     "empty name",
			svcName:  "",
			price:    validPrice,
			wantCode: "INVALID_NAME",
		},
		{
			name:     "whitespace only name",
			svcName:  "   ",
			price:    validPrice,
			wantCode: "INVALID_NAME",
		},
		{
			name:     "name too long",
			svcName:  strings.Repeat("a", 201),
			price:    validPrice,
			wantCode: "INVALID_NAME",
		},
		{
			name:        "description too long",
			svcName:     "Boarding",
			description: strings.Repeat("d", 301),
			price:       validPrice,
			wantCode:    "INVALID_DESCRIPTION",
		},
		{
			name:     "zero price",
			svcName:  "Boarding",
			price:    valueobject.ZeroINR(),
			wantCode: "INVALID_PRICE",
		},
		{
			name:     "negative price",
			svcName:  "Boarding",
			price:    valueobject.NewMoneyINRFromFloat(-10),
			wantCode: "INVALID_PRICE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewService(tt.svcName, tt.description, tt.price)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantCode)
		})
	}
}

// ============================================================================
// Service Update Tests
// ============================================================================

func TestService_Update(t *testing.T) {
	svc, err := NewService("Grooming", "Basic", valueobject.NewMoneyINRFromFloat(450))
	require.NoError(t, err)

	newPrice := valueobject.NewMoneyINRFromFloat(550)
	err = svc.Update("Premium Grooming", "Extended session", newPrice)

	require.NoError(t, err)
	assert.Equal(t, "Premium Grooming", svc.Name)
	assert.Equal(t, "Extended session", svc.Description)
	assert.True(t, newPrice.Amount().Equal(svc.UnitPrice))
}

func TestService_Update_InvalidPriceKeepsState(t *testing.T) {
	svc, err := NewService("Grooming", "Basic", valueobject.NewMoneyINRFromFloat(450))
	require.NoError(t, err)

	err = svc.Update("Grooming", "Basic", valueobject.ZeroINR())

	require.Error(t, err)
	assert.Equal(t, "Grooming", svc.Name)
	assert.True(t, valueobject.NewMoneyINRFromFloat(450).Amount().Equal(svc.UnitPrice))
}

// ============================================================================
// Name Matching Tests
// ============================================================================

func TestService_NameEqualsFold(t *testing.T) {
	svc, err := NewService("Grooming", "", valueobject.NewMoneyINRFromFloat(450))
	require.NoError(t, err)

	assert.True(t, svc.NameEqualsFold("grooming"))
	assert.True(t, svc.NameEqualsFold("  GROOMING  "))
	assert.False(t, svc.NameEqualsFold("Boarding"))
}
