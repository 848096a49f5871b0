package csvimport

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func customerRules() []FieldRule {
	return []FieldRule{
		Field("name").Required().MaxLength(200).Build(),
		Field("email").Required().Email().Unique().Build(),
		Field("phone").MaxLength(20).Build(),
		Field("address").MaxLength(500).Build(),
	}
}

func TestProcessorProcess(t *testing.T) {
	t.Run("All rows imported", func(t *testing.T) {
		csv := "name,email,phone,address\n" +
			"Asha Rao,asha@example.com,9876543210,12 Lake View Road\n" +
			"Rohan Mehta,rohan@example.com,9123456780,4 Hill Street"

		var applied []string
		report, err := NewProcessor().Process(context.Background(), strings.NewReader(csv), customerRules(), func(row *Row) error {
			applied = append(applied, row.Get("name"))
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 2, report.TotalRows)
		assert.Equal(t, 2, report.ImportedRows)
		assert.Equal(t, 0, report.SkippedRows)
		assert.Empty(t, report.Errors)
		assert.Equal(t, []string{"Asha Rao", "Rohan Mehta"}, applied)
	})

	t.Run("Invalid rows skipped, valid rows still applied", func(t *testing.T) {
		csv := "name,email\n" +
			"Asha Rao,asha@example.com\n" +
			",missing-name@example.com\n" +
			"Rohan Mehta,not-an-email"

		var applied []string
		report, err := NewProcessor().Process(context.Background(), strings.NewReader(csv),
			[]FieldRule{
				Field("name").Required().Build(),
				Field("email").Required().Email().Build(),
			},
			func(row *Row) error {
				applied = append(applied, row.Get("name"))
				return nil
			})

		require.NoError(t, err)
		assert.Equal(t, 3, report.TotalRows)
		assert.Equal(t, 1, report.ImportedRows)
		assert.Equal(t, 2, report.SkippedRows)
		assert.Equal(t, 2, report.TotalErrors)
		assert.Equal(t, []string{"Asha Rao"}, applied)
	})

	t.Run("Apply error rejects only that row", func(t *testing.T) {
		csv := "name,email\n" +
			"Asha Rao,asha@example.com\n" +
			"Rohan Mehta,rohan@example.com"

		report, err := NewProcessor().Process(context.Background(), strings.NewReader(csv),
			[]FieldRule{Field("name").Required().Build(), Field("email").Required().Email().Build()},
			func(row *Row) error {
				if row.Get("name") == "Asha Rao" {
					return errors.New("customer already exists")
				}
				return nil
			})

		require.NoError(t, err)
		assert.Equal(t, 1, report.ImportedRows)
		assert.Equal(t, 1, report.SkippedRows)
		require.Len(t, report.Errors, 1)
		assert.Equal(t, ErrCodeImportRowRejected, report.Errors[0].Code)
		assert.Contains(t, report.Errors[0].Message, "already exists")
	})

	t.Run("Duplicate within file rejected", func(t *testing.T) {
		csv := "name,email\n" +
			"Asha Rao,asha@example.com\n" +
			"Asha Rao Again,asha@example.com"

		report, err := NewProcessor().Process(context.Background(), strings.NewReader(csv),
			[]FieldRule{Field("name").Required().Build(), Field("email").Required().Email().Unique().Build()},
			func(row *Row) error { return nil })

		require.NoError(t, err)
		assert.Equal(t, 1, report.ImportedRows)
		assert.Equal(t, 1, report.SkippedRows)
		require.NotEmpty(t, report.Errors)
		assert.Equal(t, ErrCodeImportDuplicateInFile, report.Errors[0].Code)
	})

	t.Run("Empty rows ignored", func(t *testing.T) {
		csv := "name,email\nAsha Rao,asha@example.com\n,\n"

		report, err := NewProcessor().Process(context.Background(), strings.NewReader(csv),
			[]FieldRule{Field("name").Required().Build()},
			func(row *Row) error { return nil })

		require.NoError(t, err)
		assert.Equal(t, 1, report.TotalRows)
		assert.Equal(t, 1, report.ImportedRows)
	})

	t.Run("Missing required column fails fast", func(t *testing.T) {
		csv := "name,phone\nAsha Rao,9876543210"

		report, err := NewProcessor().Process(context.Background(), strings.NewReader(csv),
			customerRules(), func(row *Row) error { return nil })

		assert.Nil(t, report)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingHeader)
		assert.Contains(t, err.Error(), "email")
	})

	t.Run("Row limit enforced", func(t *testing.T) {
		csv := "name\nA\nB\nC"

		report, err := NewProcessor(WithMaxRows(2)).Process(context.Background(), strings.NewReader(csv),
			[]FieldRule{Field("name").Required().Build()},
			func(row *Row) error { return nil })

		require.NoError(t, err)
		assert.Equal(t, 2, report.ImportedRows)
		require.NotEmpty(t, report.Errors)
		assert.Equal(t, ErrCodeImportTooManyRows, report.Errors[0].Code)
	})

	t.Run("Cancelled context aborts", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		report, err := NewProcessor().Process(ctx, strings.NewReader("name\nAsha Rao"),
			[]FieldRule{Field("name").Required().Build()},
			func(row *Row) error { return nil })

		assert.Nil(t, report)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("Unit price rules for catalog import", func(t *testing.T) {
		csv := "name,description,unit_price\n" +
			"Grooming,Full grooming session,450\n" +
			"Vaccination,Annual shots,0"

		rules := []FieldRule{
			Field("name").Required().Unique().MaxLength(200).Build(),
			Field("description").MaxLength(500).Build(),
			Field("unit_price").Required().Decimal().MinValue(decimal.NewFromFloat(0.01)).Build(),
		}

		report, err := NewProcessor().Process(context.Background(), strings.NewReader(csv), rules,
			func(row *Row) error { return nil })

		require.NoError(t, err)
		assert.Equal(t, 1, report.ImportedRows)
		assert.Equal(t, 1, report.SkippedRows)
		assert.Equal(t, ErrCodeImportInvalidRange, report.Errors[0].Code)
	})
}
