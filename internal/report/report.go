// Package report renders billing and access reports as CSV.
package report

import (
	"bytes"
	"fmt"

	"github.com/gocarina/gocsv"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	ierr "github.com/thrivecorp/platform/internal/errors"
	"github.com/thrivecorp/platform/internal/model"
	"github.com/thrivecorp/platform/pkg/config"
)

// utf8BOM lets spreadsheet tools detect the encoding of the billing export
const utf8BOM = "\xEF\xBB\xBF"

const timestampLayout = "2006-01-02 15:04:05"

// ContentType of every CSV export
const ContentType = "text/csv; charset=utf-8"

// BillingCSV is one line of the monthly billing export
type BillingCSV struct {
	Company       string `csv:"Company"`
	TotalAccesses int64  `csv:"Total Accesses"`
	TotalCost     string `csv:"Total Cost"`
	Status        string `csv:"Status"`
}

// CompanyAccessCSV is one access of the company detail export
type CompanyAccessCSV struct {
	DateTime  string `csv:"Date/Time"`
	FirstName string `csv:"First Name"`
	LastName  string `csv:"Last Name"`
	Gym       string `csv:"Gym"`
	Cost      string `csv:"Cost"`
}

type Exporter struct {
	printer *message.Printer
	symbol  string
	// decimal separator of the locale, e.g. "," for pt-BR
	decimalSep string
}

// NewExporter formats money with the configured locale and currency symbol.
// An unparseable locale falls back to pt-BR.
func NewExporter(cfg config.BillingConfig) *Exporter {
	tag, err := language.Parse(cfg.Locale)
	if err != nil {
		tag = language.BrazilianPortuguese
	}
	printer := message.NewPrinter(tag)
	return &Exporter{
		printer:    printer,
		symbol:     cfg.CurrencySymbol,
		decimalSep: string([]rune(printer.Sprintf("%.1f", 1.5))[1]),
	}
}

// FormatMoney renders amount with two decimals, e.g. "R$ 1.234,50" for pt-BR.
// Only the integer part goes through the locale printer so the cents stay
// exact.
func (e *Exporter) FormatMoney(amount decimal.Decimal) string {
	cents := amount.Round(2).Shift(2).IntPart()
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	units := e.printer.Sprintf("%d", cents/100)
	return fmt.Sprintf("%s %s%s%s%02d", e.symbol, sign, units, e.decimalSep, cents%100)
}

// Billing renders the monthly billing report, prefixed with a UTF-8 BOM
func (e *Exporter) Billing(rows []*model.BillingReportRow) ([]byte, error) {
	records := lo.Map(rows, func(r *model.BillingReportRow, _ int) *BillingCSV {
		return &BillingCSV{
			Company:       r.CompanyName,
			TotalAccesses: r.TotalAccesses,
			TotalCost:     e.FormatMoney(r.TotalCost),
			Status:        r.BillingStatus.Label(),
		}
	})

	var buf bytes.Buffer
	buf.WriteString(utf8BOM)
	if err := gocsv.Marshal(records, &buf); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Falha ao gerar o relatório").
			Mark(ierr.ErrInternal)
	}
	return buf.Bytes(), nil
}

// CompanyAccesses renders one line per access. Accesses at providers without
// a plan have an empty cost.
func (e *Exporter) CompanyAccesses(rows []*model.AccessDetailRow) ([]byte, error) {
	records := lo.Map(rows, func(r *model.AccessDetailRow, _ int) *CompanyAccessCSV {
		return &CompanyAccessCSV{
			DateTime:  r.Timestamp.UTC().Format(timestampLayout),
			FirstName: r.FirstName,
			LastName:  r.LastName,
			Gym:       r.GymName,
			Cost:      lo.Ternary(r.PricePerAccess.Valid, e.FormatMoney(r.PricePerAccess.Decimal), ""),
		}
	})

	var buf bytes.Buffer
	if err := gocsv.Marshal(records, &buf); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Falha ao gerar o relatório").
			Mark(ierr.ErrInternal)
	}
	return buf.Bytes(), nil
}

func BillingFilename(year, month int) string {
	return fmt.Sprintf("billing-report-%d-%d.csv", year, month)
}

func CompanyFilename(year, month int) string {
	return fmt.Sprintf("report-%d-%d.csv", year, month)
}
