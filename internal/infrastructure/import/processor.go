package csvimport

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// ApplyFunc persists a single validated row. A returned error rejects
// the row without aborting the rest of the import.
type ApplyFunc func(row *Row) error

// Processor runs a header-validated, row-by-row CSV import
type Processor struct {
	maxRows   int
	maxErrors int
}

// ProcessorOption is a functional option for Processor
type ProcessorOption func(*Processor)

// WithMaxRows sets the maximum number of data rows
func WithMaxRows(rows int) ProcessorOption {
	return func(p *Processor) {
		p.maxRows = rows
	}
}

// WithMaxErrors sets the maximum number of errors to collect
func WithMaxErrors(errors int) ProcessorOption {
	return func(p *Processor) {
		p.maxErrors = errors
	}
}

// NewProcessor creates a new import processor
func NewProcessor(opts ...ProcessorOption) *Processor {
	p := &Processor{
		maxRows:   10000,
		maxErrors: 100,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Process parses the CSV stream, validates every data row against rules
// and hands each valid row to apply. Invalid and rejected rows are
// recorded in the report; valid rows are applied as they are read.
func (p *Processor) Process(ctx context.Context, reader io.Reader, rules []FieldRule, apply ApplyFunc) (*Report, error) {
	parser, err := NewCSVParser(reader)
	if err != nil {
		return nil, err
	}

	if err := parser.ParseHeader(); err != nil {
		return nil, err
	}

	var required []string
	for _, rule := range rules {
		if rule.Required {
			required = append(required, rule.Column)
		}
	}
	if missing := parser.ValidateHeaders(required); len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing column(s) %s", ErrMissingHeader, strings.Join(missing, ", "))
	}

	validator := NewFieldValidator(rules, p.maxErrors)
	rowErrors := NewErrorCollection(p.maxErrors)
	report := &Report{}

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		row, err := parser.ReadRow()
		if err == io.EOF {
			break
		}
		if err != nil {
			rowErrors.Add(NewRowError(parser.CurrentRow(), "", ErrCodeImportCSVParsing, err.Error()))
			report.SkippedRows++
			continue
		}

		if row.IsEmpty() {
			continue
		}

		report.TotalRows++
		if report.TotalRows > p.maxRows {
			rowErrors.Add(NewRowError(row.LineNumber, "", ErrCodeImportTooManyRows,
				fmt.Sprintf("exceeded maximum of %d rows", p.maxRows)))
			report.SkippedRows++
			break
		}

		if !validator.ValidateRow(row) {
			report.SkippedRows++
			continue
		}

		if err := apply(row); err != nil {
			rowErrors.Add(NewRowError(row.LineNumber, "", ErrCodeImportRowRejected, err.Error()))
			report.SkippedRows++
			continue
		}

		report.ImportedRows++
	}

	merged := NewErrorCollection(p.maxErrors)
	for _, e := range rowErrors.Errors() {
		merged.Add(e)
	}
	for _, e := range validator.Errors().Errors() {
		merged.Add(e)
	}
	merged.totalCount = rowErrors.TotalCount() + validator.Errors().TotalCount()

	report.SetErrors(merged)

	return report, nil
}
