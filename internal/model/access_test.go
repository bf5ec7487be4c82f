package model

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBillingReportRow_MarshalJSON(t *testing.T) {
	row := &BillingReportRow{
		CompanyID:     7,
		CompanyName:   "Company A",
		TotalAccesses: 5,
		TotalCost:     decimal.NewFromInt(75),
		BillingStatus: BillingStatusPending,
	}

	raw, err := json.Marshal(row)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"company_id":7,"company_name":"Company A","total_accesses":5,"total_cost":75.00,"billing_status":"pending"}`,
		string(raw))
	assert.Contains(t, string(raw), `"total_cost":75.00`)

	var decoded BillingReportRow
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.True(t, row.TotalCost.Equal(decoded.TotalCost))
}

func TestCollaboratorUsageRow_MarshalJSON(t *testing.T) {
	raw, err := json.Marshal(CollaboratorUsageRow{
		UserID:        3,
		FirstName:     "Ana",
		LastName:      "Souza",
		TotalAccesses: 3,
		TotalCost:     decimal.RequireFromString("45.5"),
	})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"total_cost":45.50`)
	assert.Contains(t, string(raw), `"first_name":"Ana"`)
}
