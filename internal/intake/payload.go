package intake

import (
	"strings"

	"bizplan-intake/internal/models"
)

// FormatStartDate turns "YYYY-MM-DD" into "MM-DD-YYYY". Input that does not
// split into three non-empty parts yields nil.
func FormatStartDate(raw string) *string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, "-")
	if len(parts) < 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return nil
	}
	s := parts[1] + "-" + parts[2] + "-" + parts[0]
	return &s
}

// BuildPayload maps form values onto the financials body.
func BuildPayload(values map[string]string) models.FinancialsPayload {
	return models.FinancialsPayload{
		BusinessStartDate:                FormatStartDate(values[models.FieldBusinessStartDate]),
		CurrentRevenue:                   ParseNumber(values[models.FieldCurrentRevenue]),
		CurrentCogs:                      ParseNumber(values[models.FieldCurrentCogs]),
		ExpectedRevenueGrowthPctNextYear: values[models.FieldExpectedRevenueGrowthPctNextYear],
		UnitsSoldPerMonth:                ParseNumber(values[models.FieldUnitsSoldPerMonth]),
		MarketingExpense:                 ParseNumber(values[models.FieldMarketingExpense]),
		SgaExpense:                       ParseNumber(values[models.FieldSgaExpense]),
		OtherOperatingExpense:            ParseNumber(values[models.FieldOtherOperatingExpense]),
		CurrentPayroll:                   ParseNumber(values[models.FieldCurrentPayroll]),
		CurrentNumEmployees:              ParseNumber(values[models.FieldCurrentNumEmployees]),
		PlannedNumEmployees5yrs:          ParseNumber(values[models.FieldPlannedNumEmployees5yrs]),
		CurrentCapex:                     ParseNumber(values[models.FieldCurrentCapex]),
		PlannedCapex5yr:                  ParseNumber(values[models.FieldPlannedCapex5yr]),
		TotalDebtOutstanding:             ParseNumber(values[models.FieldTotalDebtOutstanding]),
		AnnualInterestPayment:            ParseNumber(values[models.FieldAnnualInterestPayment]),
		AnnualPrincipalPayment:           ParseNumber(values[models.FieldAnnualPrincipalPayment]),
		CashOnHand:                       ParseNumber(values[models.FieldCashOnHand]),
		UnitDefinition:                   values[models.FieldUnitDefinition],
	}
}
