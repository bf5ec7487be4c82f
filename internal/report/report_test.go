package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thrivecorp/platform/internal/model"
	"github.com/thrivecorp/platform/pkg/config"
)

// parseMoney accepts either decimal separator convention, e.g. "R$ 1.234,50"
// or "$ 1,234.50".
func parseMoney(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	digits := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' {
			return r
		}
		return -1
	}, s)
	sep := strings.LastIndexAny(digits, ",.")
	if sep >= 0 && len(digits)-sep-1 == 2 {
		intPart := strings.NewReplacer(",", "", ".", "").Replace(digits[:sep])
		digits = intPart + "." + digits[sep+1:]
	} else {
		digits = strings.NewReplacer(",", "", ".", "").Replace(digits)
	}
	d, err := decimal.NewFromString(digits)
	require.NoError(t, err, s)
	return d
}

func scenarioRows() []*model.BillingReportRow {
	return []*model.BillingReportRow{{
		CompanyID:     1,
		CompanyName:   "Company A",
		TotalAccesses: 5,
		TotalCost:     decimal.RequireFromString("75.00"),
		BillingStatus: model.BillingStatusPending,
	}}
}

func TestExporter_BillingRoundTrip(t *testing.T) {
	for _, cfg := range []config.BillingConfig{
		{Locale: "pt-BR", CurrencySymbol: "R$"},
		{Locale: "en-US", CurrencySymbol: "$"},
		{Locale: "de-DE", CurrencySymbol: "€"},
	} {
		t.Run(cfg.Locale, func(t *testing.T) {
			out, err := NewExporter(cfg).Billing(scenarioRows())
			require.NoError(t, err)
			require.True(t, bytes.HasPrefix(out, []byte(utf8BOM)))

			var records []*BillingCSV
			require.NoError(t, gocsv.UnmarshalBytes(bytes.TrimPrefix(out, []byte(utf8BOM)), &records))
			require.Len(t, records, 1)
			assert.Equal(t, "Company A", records[0].Company)
			assert.Equal(t, int64(5), records[0].TotalAccesses)
			assert.Equal(t, "Pending", records[0].Status)
			assert.True(t, decimal.RequireFromString("75").Equal(parseMoney(t, records[0].TotalCost)), records[0].TotalCost)
		})
	}
}

func TestExporter_BillingHeaderAndLabels(t *testing.T) {
	rows := scenarioRows()
	rows = append(rows, &model.BillingReportRow{
		CompanyName:   "Zeta",
		TotalAccesses: 1200,
		TotalCost:     decimal.RequireFromString("18000.5"),
		BillingStatus: model.BillingStatusSent,
	})

	out, err := NewExporter(config.BillingConfig{Locale: "pt-BR", CurrencySymbol: "R$"}).Billing(rows)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(strings.TrimPrefix(string(out), utf8BOM)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Company,Total Accesses,Total Cost,Status", lines[0])
	assert.Contains(t, lines[1], "R$ 75,00")
	assert.True(t, strings.HasSuffix(lines[2], ",Billed"))

	var records []*BillingCSV
	require.NoError(t, gocsv.UnmarshalString(strings.TrimPrefix(string(out), utf8BOM), &records))
	assert.True(t, decimal.RequireFromString("18000.50").Equal(parseMoney(t, records[1].TotalCost)))
}

func TestExporter_EmptyBillingHasHeader(t *testing.T) {
	out, err := NewExporter(config.BillingConfig{Locale: "pt-BR", CurrencySymbol: "R$"}).Billing(nil)
	require.NoError(t, err)
	assert.Equal(t, utf8BOM+"Company,Total Accesses,Total Cost,Status", strings.TrimSpace(string(out)))
}

func TestExporter_CompanyAccesses(t *testing.T) {
	ts := time.Date(2024, 3, 6, 7, 30, 0, 0, time.UTC)
	rows := []*model.AccessDetailRow{
		{
			AccessID:       10,
			Timestamp:      ts,
			FirstName:      "Ana",
			LastName:       "Souza",
			GymName:        "Gym X",
			PricePerAccess: decimal.NewNullDecimal(decimal.NewFromInt(15)),
		},
		{
			AccessID:  9,
			Timestamp: ts.Add(-time.Hour),
			FirstName: "Bruno",
			LastName:  "Lima",
			GymName:   "Sem Plano",
		},
	}

	out, err := NewExporter(config.BillingConfig{Locale: "en-US", CurrencySymbol: "$"}).CompanyAccesses(rows)
	require.NoError(t, err)
	assert.False(t, bytes.HasPrefix(out, []byte(utf8BOM)))

	var records []*CompanyAccessCSV
	require.NoError(t, gocsv.UnmarshalBytes(out, &records))
	require.Len(t, records, 2)
	assert.Equal(t, "2024-03-06 07:30:00", records[0].DateTime)
	assert.Equal(t, "Gym X", records[0].Gym)
	assert.Equal(t, "$ 15.00", records[0].Cost)
	assert.Empty(t, records[1].Cost)
}

func TestFilenames(t *testing.T) {
	assert.Equal(t, "billing-report-2024-3.csv", BillingFilename(2024, 3))
	assert.Equal(t, "report-2024-12.csv", CompanyFilename(2024, 12))
}

func TestNewExporter_InvalidLocale(t *testing.T) {
	e := NewExporter(config.BillingConfig{Locale: "??", CurrencySymbol: "R$"})
	assert.Equal(t, "R$ 75,00", e.FormatMoney(decimal.NewFromInt(75)))
}

func TestExporter_FormatMoney(t *testing.T) {
	ptBR := NewExporter(config.BillingConfig{Locale: "pt-BR", CurrencySymbol: "R$"})
	enUS := NewExporter(config.BillingConfig{Locale: "en-US", CurrencySymbol: "$"})

	tests := []struct {
		name     string
		exporter *Exporter
		amount   string
		want     string
	}{
		{"zero", ptBR, "0", "R$ 0,00"},
		{"rounds half up", ptBR, "10.005", "R$ 10,01"},
		{"grouping", ptBR, "1234.5", "R$ 1.234,50"},
		{"large total keeps cents", ptBR, "99999999999999.99", "R$ 99.999.999.999.999,99"},
		{"en-US large total", enUS, "99999999999999.99", "$ 99,999,999,999,999.99"},
		{"negative", enUS, "-0.5", "$ -0.50"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.exporter.FormatMoney(decimal.RequireFromString(tt.amount)))
		})
	}
}
