package printing

import (
	"time"

	"github.com/shopspring/decimal"
)

// Business identity printed on every document header.
const (
	CompanyName    = "Pet Care Services"
	CompanyAddress = "123 Pet Street, Pet City"
	CompanyContact = "Phone: +91 98765 43210 | Email: info@petcare.com"
	CompanyGSTNo   = "GST No: 29AABCP9621L1ZK"
)

// InvoiceDocument carries the data rendered into the invoice template
type InvoiceDocument struct {
	Number          string
	InvoiceDate     time.Time
	Status          string
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	CustomerAddress string
	Items           []InvoiceDocumentItem
	Subtotal        decimal.Decimal
	CGST            decimal.Decimal
	SGST            decimal.Decimal
	TaxAmount       decimal.Decimal
	GrandTotal      decimal.Decimal
}

// InvoiceDocumentItem is a single service line on the invoice
type InvoiceDocumentItem struct {
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
	Total     decimal.Decimal
}

// ReportDocument carries the data rendered into the business report template
type ReportDocument struct {
	PeriodStart  time.Time
	PeriodEnd    time.Time
	TotalRevenue decimal.Decimal
	TotalTax     decimal.Decimal
	CGST         decimal.Decimal
	SGST         decimal.Decimal
	InvoiceCount int
	PaymentCount int
	Invoices     []ReportInvoiceRow
	Payments     []ReportPaymentRow
	Services     []ReportServiceRow
}

// ReportInvoiceRow is one invoice line in the report invoices table
type ReportInvoiceRow struct {
	Number       string
	InvoiceDate  time.Time
	CustomerName string
	GrandTotal   decimal.Decimal
	Status       string
}

// ReportPaymentRow is one payment line in the report payments table
type ReportPaymentRow struct {
	InvoiceNumber string
	PaymentDate   time.Time
	CustomerName  string
	Method        string
	Amount        decimal.Decimal
}

// ReportServiceRow is one service line in the performance table
type ReportServiceRow struct {
	ServiceName string
	TimesBilled int
	Revenue     decimal.Decimal
}

// documentBaseCSS is shared between the invoice and report templates
const documentBaseCSS = `
    body { font-family: Arial, Helvetica, sans-serif; font-size: 10pt; color: #1a1a1a; }
    .company-name { font-size: 16pt; font-weight: bold; text-align: center; margin-bottom: 2mm; }
    .company-line { font-size: 9pt; text-align: center; margin: 0.5mm 0; }
    .header-rule { border: none; border-top: 1px solid #1a1a1a; margin: 3mm 0; }
    .doc-title { font-size: 12pt; font-weight: bold; margin: 4mm 0 2mm; }
    table.grid { width: 100%; border-collapse: collapse; margin-top: 2mm; }
    table.grid th, table.grid td { border: 1px solid #1a1a1a; padding: 1.5mm 2mm; }
    table.grid th { font-weight: bold; text-align: center; background: #f0f0f0; }
    td.num, th.num { text-align: right; }
    td.ctr { text-align: center; }
    .section-title { font-weight: bold; margin: 4mm 0 1mm; }
    .footer { font-size: 8pt; font-style: italic; text-align: center; margin-top: 8mm; color: #555; }
`

// InvoiceTemplateHTML is the built-in A4 invoice template
const InvoiceTemplateHTML = `<style>` + documentBaseCSS + `
    .totals { width: 70mm; margin-left: auto; margin-top: 4mm; }
    .totals td { padding: 1mm 0; }
    .totals .label { text-align: left; }
    .totals .amount { text-align: right; }
    .totals .indent { padding-left: 4mm; }
    .totals .grand td { font-weight: bold; border-top: 1px solid #1a1a1a; padding-top: 2mm; }
    .status { float: right; }
    .terms { margin-top: 12mm; }
    .terms p { margin: 1mm 0; }
</style>

<div class="company-name">` + CompanyName + `</div>
<div class="company-line">` + CompanyAddress + `</div>
<div class="company-line">` + CompanyContact + `</div>
<div class="company-line">` + CompanyGSTNo + `</div>
<hr class="header-rule">

<div class="doc-title">Invoice {{.Number}}</div>
<div>
    Date: {{formatDate .InvoiceDate}}
    <span class="status">Status: {{upper .Status}}</span>
</div>

<div class="section-title">Bill To:</div>
<div>{{.CustomerName}}</div>
{{if .CustomerEmail}}<div>Email: {{.CustomerEmail}}</div>{{end}}
{{if .CustomerPhone}}<div>Phone: {{.CustomerPhone}}</div>{{end}}
{{if .CustomerAddress}}<div>Address: {{.CustomerAddress}}</div>{{end}}

<table class="grid">
    <thead>
        <tr>
            <th style="width: 50%">Service</th>
            <th style="width: 17%">Unit Price</th>
            <th style="width: 16%">Quantity</th>
            <th style="width: 17%">Total</th>
        </tr>
    </thead>
    <tbody>
        {{range .Items}}
        <tr>
            <td>{{.Name}}</td>
            <td class="num">{{formatMoney .UnitPrice}}</td>
            <td class="ctr">{{.Quantity}}</td>
            <td class="num">{{formatMoney .Total}}</td>
        </tr>
        {{end}}
    </tbody>
</table>

<table class="totals">
    <tr>
        <td class="label">Subtotal:</td>
        <td class="amount">{{formatMoney .Subtotal}}</td>
    </tr>
    <tr>
        <td class="label" colspan="2"><strong>Tax Breakdown:</strong></td>
    </tr>
    <tr>
        <td class="label indent">CGST (5%):</td>
        <td class="amount">{{formatMoney .CGST}}</td>
    </tr>
    <tr>
        <td class="label indent">SGST (5%):</td>
        <td class="amount">{{formatMoney .SGST}}</td>
    </tr>
    <tr>
        <td class="label"><strong>Total Tax:</strong></td>
        <td class="amount">{{formatMoney .TaxAmount}}</td>
    </tr>
    <tr class="grand">
        <td class="label">Grand Total:</td>
        <td class="amount">{{formatMoney .GrandTotal}}</td>
    </tr>
</table>

<div class="terms">
    <div class="section-title">Terms &amp; Conditions:</div>
    <p>1. Payment is due within 15 days</p>
    <p>2. Please include invoice number in your payment</p>
    <p>3. Make all checks payable to ` + CompanyName + `</p>
</div>

<div class="footer">Thank you for your business!</div>
`

// ReportTemplateHTML is the built-in A4 business report template
const ReportTemplateHTML = `<style>` + documentBaseCSS + `
    .summary p { margin: 1mm 0; }
    .summary .indent { padding-left: 6mm; }
</style>

<div class="company-name">` + CompanyName + `</div>
<div class="company-line">` + CompanyAddress + `</div>
<div class="company-line">` + CompanyContact + `</div>
<div class="company-line">` + CompanyGSTNo + `</div>
<hr class="header-rule">

<div class="doc-title">Business Report</div>
<div>Date Range: {{formatDate .PeriodStart}} to {{formatDate .PeriodEnd}}</div>

<div class="section-title">Summary:</div>
<div class="summary">
    <p>Total Revenue: {{formatMoney .TotalRevenue}}</p>
    <p>Total Tax (GST): {{formatMoney .TotalTax}}</p>
    <p class="indent">- CGST (5%): {{formatMoney .CGST}}</p>
    <p class="indent">- SGST (5%): {{formatMoney .SGST}}</p>
    <p>Total Invoices: {{.InvoiceCount}}</p>
    <p>Total Payments: {{.PaymentCount}}</p>
</div>

<div class="section-title">Invoices:</div>
<table class="grid">
    <thead>
        <tr>
            <th style="width: 18%">Invoice #</th>
            <th style="width: 16%">Date</th>
            <th style="width: 32%">Customer</th>
            <th style="width: 18%">Amount</th>
            <th style="width: 16%">Status</th>
        </tr>
    </thead>
    <tbody>
        {{range .Invoices}}
        <tr>
            <td>{{.Number}}</td>
            <td>{{formatDate .InvoiceDate}}</td>
            <td>{{.CustomerName}}</td>
            <td class="num">{{formatMoney .GrandTotal}}</td>
            <td class="ctr">{{statusText .Status}}</td>
        </tr>
        {{else}}
        <tr><td colspan="5" class="ctr">No invoices in this period</td></tr>
        {{end}}
    </tbody>
</table>

{{if .Payments}}
<div class="section-title">Payments:</div>
<table class="grid">
    <thead>
        <tr>
            <th style="width: 16%">Date</th>
            <th style="width: 18%">Invoice #</th>
            <th style="width: 32%">Customer</th>
            <th style="width: 16%">Method</th>
            <th style="width: 18%">Amount</th>
        </tr>
    </thead>
    <tbody>
        {{range .Payments}}
        <tr>
            <td>{{formatDate .PaymentDate}}</td>
            <td>{{.InvoiceNumber}}</td>
            <td>{{.CustomerName}}</td>
            <td class="ctr">{{.Method}}</td>
            <td class="num">{{formatMoney .Amount}}</td>
        </tr>
        {{end}}
    </tbody>
</table>
{{end}}

{{if .Services}}
<div class="section-title">Service Performance:</div>
<table class="grid">
    <thead>
        <tr>
            <th style="width: 48%">Service</th>
            <th style="width: 26%">Usage Count</th>
            <th style="width: 26%">Revenue</th>
        </tr>
    </thead>
    <tbody>
        {{range .Services}}
        <tr>
            <td>{{.ServiceName}}</td>
            <td class="ctr">{{.TimesBilled}}</td>
            <td class="num">{{formatMoney .Revenue}}</td>
        </tr>
        {{end}}
    </tbody>
</table>
{{end}}

<div class="footer">Generated by ` + CompanyName + `</div>
`
