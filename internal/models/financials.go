// internal/models/financials.go
package models

// FinancialsPayload is the body POSTed to /api/financials.
type FinancialsPayload struct {
	BusinessStartDate                *string  `json:"business_start_date"`
	CurrentRevenue                   *float64 `json:"current_revenue"`
	CurrentCogs                      *float64 `json:"current_cogs"`
	ExpectedRevenueGrowthPctNextYear string   `json:"expected_revenue_growth_pct_next_year"`
	UnitsSoldPerMonth                *float64 `json:"units_sold_per_month"`
	MarketingExpense                 *float64 `json:"marketing_expense"`
	SgaExpense                       *float64 `json:"sga_expense"`
	OtherOperatingExpense            *float64 `json:"other_operating_expense"`
	CurrentPayroll                   *float64 `json:"current_payroll"`
	CurrentNumEmployees              *float64 `json:"current_num_employees"`
	PlannedNumEmployees5yrs          *float64 `json:"planned_num_employees_5yrs"`
	CurrentCapex                     *float64 `json:"current_capex"`
	PlannedCapex5yr                  *float64 `json:"planned_capex_5yr"`
	TotalDebtOutstanding             *float64 `json:"total_debt_outstanding"`
	AnnualInterestPayment            *float64 `json:"annual_interest_payment"`
	AnnualPrincipalPayment           *float64 `json:"annual_principal_payment"`
	CashOnHand                       *float64 `json:"cash_on_hand"`
	UnitDefinition                   string   `json:"unit_definition"`
}

// FieldMapping pairs a payload key with the form field it came from.
type FieldMapping struct {
	Server string
	Form   string
}

// FinancialFieldTable is the one source for both mapping directions.
var FinancialFieldTable = []FieldMapping{
	{Server: "business_start_date", Form: FieldBusinessStartDate},
	{Server: "current_revenue", Form: FieldCurrentRevenue},
	{Server: "current_cogs", Form: FieldCurrentCogs},
	{Server: "expected_revenue_growth_pct_next_year", Form: FieldExpectedRevenueGrowthPctNextYear},
	{Server: "units_sold_per_month", Form: FieldUnitsSoldPerMonth},
	{Server: "marketing_expense", Form: FieldMarketingExpense},
	{Server: "sga_expense", Form: FieldSgaExpense},
	{Server: "other_operating_expense", Form: FieldOtherOperatingExpense},
	{Server: "current_payroll", Form: FieldCurrentPayroll},
	{Server: "current_num_employees", Form: FieldCurrentNumEmployees},
	{Server: "planned_num_employees_5yrs", Form: FieldPlannedNumEmployees5yrs},
	{Server: "current_capex", Form: FieldCurrentCapex},
	{Server: "planned_capex_5yr", Form: FieldPlannedCapex5yr},
	{Server: "total_debt_outstanding", Form: FieldTotalDebtOutstanding},
	{Server: "annual_interest_payment", Form: FieldAnnualInterestPayment},
	{Server: "annual_principal_payment", Form: FieldAnnualPrincipalPayment},
	{Server: "cash_on_hand", Form: FieldCashOnHand},
	{Server: "unit_definition", Form: FieldUnitDefinition},
}

var (
	serverToForm = make(map[string]string, len(FinancialFieldTable))
	formToServer = make(map[string]string, len(FinancialFieldTable))
)

func init() {
	for _, m := range FinancialFieldTable {
		serverToForm[m.Server] = m.Form
		formToServer[m.Form] = m.Server
	}
}

// FormFieldForServer maps a backend error key to its form field.
func FormFieldForServer(server string) (string, bool) {
	f, ok := serverToForm[server]
	return f, ok
}

// ServerFieldForForm maps a form field to its payload key.
func ServerFieldForForm(form string) (string, bool) {
	s, ok := formToServer[form]
	return s, ok
}

// SubmittedFormFields lists the form fields that feed the payload, in table order.
func SubmittedFormFields() []string {
	out := make([]string, len(FinancialFieldTable))
	for i, m := range FinancialFieldTable {
		out[i] = m.Form
	}
	return out
}
