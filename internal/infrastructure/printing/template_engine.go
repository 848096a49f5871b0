package printing

import (
	"bytes"
	"context"
	"html/template"
	"maps"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TemplateEngine renders HTML document templates with billing data.
// It uses Go's html/template package with custom formatting functions.
type TemplateEngine struct {
	funcMap template.FuncMap
}

// NewTemplateEngine creates a new template engine with the default
// formatting helpers
func NewTemplateEngine() *TemplateEngine {
	e := &TemplateEngine{}

	e.funcMap = template.FuncMap{
		// Money formatting
		"formatMoney":    formatMoney,
		"formatMoneyRaw": formatMoneyRaw,

		// Date formatting
		"formatDate":     formatDate,
		"formatDateTime": formatDateTime,

		// Number formatting
		"formatDecimal": formatDecimal,

		// String utilities
		"upper": strings.ToUpper,
		"lower": strings.ToLower,
		"title": titleCase,
		"trim":  strings.TrimSpace,

		// Arithmetic
		"add": func(a, b int) int { return a + b },

		// Status display
		"statusText": statusText,

		// Safe HTML
		"safeHTML": safeHTML,

		// Misc
		"now": time.Now,
	}

	return e
}

// RenderString renders a template string with the provided data
func (e *TemplateEngine) RenderString(ctx context.Context, name, content string, data interface{}) (string, error) {
	if content == "" {
		return "", NewRenderError(ErrCodeInvalidHTML, "template content is empty", nil)
	}

	tmpl, err := template.New(name).Funcs(e.funcMap).Parse(content)
	if err != nil {
		return "", NewRenderError(ErrCodeInvalidHTML, "failed to parse template", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", NewRenderError(ErrCodeRenderFailed, "failed to execute template", err)
	}

	return buf.String(), nil
}

// GetFuncMap returns a copy of the template function map
func (e *TemplateEngine) GetFuncMap() template.FuncMap {
	funcMap := make(template.FuncMap, len(e.funcMap))
	maps.Copy(funcMap, e.funcMap)
	return funcMap
}

// =============================================================================
// Template Functions
// =============================================================================

// formatMoney formats a decimal value as rupees
// Example: 1234.5 -> "Rs. 1,234.50"
func formatMoney(v interface{}) string {
	return "Rs. " + formatMoneyRaw(v)
}

// formatMoneyRaw formats a decimal value with thousand separators
// Example: 1234.5 -> "1,234.50"
func formatMoneyRaw(v interface{}) string {
	d := toDecimal(v)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	parts := strings.Split(d.StringFixed(2), ".")
	intPart := parts[0]
	decPart := "00"
	if len(parts) > 1 {
		decPart = parts[1]
	}

	var result strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(c)
	}

	return sign + result.String() + "." + decPart
}

// formatDate formats a time as a calendar date
func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02 Jan 2006")
}

// formatDateTime formats a time with the clock included
func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02 Jan 2006 15:04")
}

// formatDecimal formats a decimal to two places without separators
func formatDecimal(v interface{}) string {
	return toDecimal(v).StringFixed(2)
}

// titleCase converts a string to title case
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

// statusText converts a status code to display text
// Example: "UNPAID" -> "Unpaid"
func statusText(status string) string {
	return cases.Title(language.English).String(strings.ToLower(status))
}

// safeHTML marks a string as safe HTML content
func safeHTML(s string) template.HTML {
	return template.HTML(s)
}

// toDecimal converts supported template values to decimal
func toDecimal(v interface{}) decimal.Decimal {
	switch val := v.(type) {
	case decimal.Decimal:
		return val
	case *decimal.Decimal:
		if val == nil {
			return decimal.Zero
		}
		return *val
	case int:
		return decimal.NewFromInt(int64(val))
	case int64:
		return decimal.NewFromInt(val)
	case float64:
		return decimal.NewFromFloat(val)
	case string:
		d, err := decimal.NewFromString(val)
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}
