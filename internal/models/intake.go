// internal/models/intake.go
package models

// Intake form field names as the page submits them.
const (
	FieldBusinessName      = "businessName"
	FieldIndustry          = "industry"
	FieldBusinessType      = "businessType"
	FieldDescription       = "description"
	FieldAddress           = "address"
	FieldProductKeywords   = "productKeywords"
	FieldSellingMethod     = "sellingMethod"
	FieldTargetCustomer    = "targetCustomer"
	FieldCustomerType      = "customerType"
	FieldEstimatedRevenue  = "estimatedRevenue"
	FieldStartupCosts      = "startupCosts"
	FieldMonthlyCosts      = "monthlyCosts"
	FieldPricingModel      = "pricingModel"
	FieldFounderBackground = "founderBackground"

	FieldContactName  = "contactName"
	FieldContactEmail = "contactEmail"
	FieldContactPhone = "contactPhone"

	FieldBusinessStartDate                = "businessStartDate"
	FieldCurrentRevenue                   = "currentRevenue"
	FieldCurrentCogs                      = "currentCogs"
	FieldExpectedRevenueGrowthPctNextYear = "expectedRevenueGrowthPctNextYear"
	FieldUnitsSoldPerMonth                = "unitsSoldPerMonth"
	FieldUnitDefinition                   = "unitDefinition"
	FieldMarketingExpense                 = "marketingExpense"
	FieldSgaExpense                       = "sgaExpense"
	FieldOtherOperatingExpense            = "otherOperatingExpense"
	FieldCurrentPayroll                   = "currentPayroll"
	FieldCurrentNumEmployees              = "currentNumEmployees"
	FieldPlannedNumEmployees5yrs          = "plannedNumEmployees5yrs"
	FieldCurrentCapex                     = "currentCapex"
	FieldPlannedCapex5yr                  = "plannedCapex5yr"
	FieldTotalDebtOutstanding             = "totalDebtOutstanding"
	FieldAnnualInterestPayment            = "annualInterestPayment"
	FieldAnnualPrincipalPayment           = "annualPrincipalPayment"
	FieldCashOnHand                       = "cashOnHand"
)

// Derived address fields written by address enrichment.
const (
	FieldBusinessAddress = "business_address"
	FieldAddressStreet   = "address_street"
	FieldAddressCity     = "address_city"
	FieldAddressState    = "address_state"
	FieldAddressCounty   = "address_county"
	FieldAddressZip      = "address_zip"
	FieldAddressCountry  = "address_country"
	FieldAddressLat      = "address_lat"
	FieldAddressLng      = "address_lng"
)

// NarrativeFields are free text.
var NarrativeFields = []string{
	FieldBusinessName,
	FieldIndustry,
	FieldBusinessType,
	FieldDescription,
	FieldAddress,
	FieldProductKeywords,
	FieldSellingMethod,
	FieldTargetCustomer,
	FieldEstimatedRevenue,
	FieldStartupCosts,
	FieldMonthlyCosts,
	FieldFounderBackground,
	FieldUnitDefinition,
	FieldExpectedRevenueGrowthPctNextYear,
	FieldBusinessStartDate,
}

// CategoricalFields take a value from a fixed option list.
var CategoricalFields = []string{
	FieldPricingModel,
	FieldCustomerType,
}

var ClientInfoFields = []string{
	FieldContactName,
	FieldContactEmail,
	FieldContactPhone,
}

// NumericFields hold locale-formatted, non-negative numbers.
var NumericFields = []string{
	FieldCurrentRevenue,
	FieldCurrentCogs,
	FieldUnitsSoldPerMonth,
	FieldMarketingExpense,
	FieldSgaExpense,
	FieldOtherOperatingExpense,
	FieldCurrentPayroll,
	FieldCurrentNumEmployees,
	FieldPlannedNumEmployees5yrs,
	FieldCurrentCapex,
	FieldPlannedCapex5yr,
	FieldTotalDebtOutstanding,
	FieldAnnualInterestPayment,
	FieldAnnualPrincipalPayment,
	FieldCashOnHand,
}

var DerivedAddressFields = []string{
	FieldBusinessAddress,
	FieldAddressStreet,
	FieldAddressCity,
	FieldAddressState,
	FieldAddressCounty,
	FieldAddressZip,
	FieldAddressCountry,
	FieldAddressLat,
	FieldAddressLng,
}

// RevenueDependentFields become required once current revenue is above zero.
var RevenueDependentFields = []string{
	FieldCurrentCogs,
	FieldExpectedRevenueGrowthPctNextYear,
	FieldUnitsSoldPerMonth,
	FieldUnitDefinition,
}

var (
	numericSet = toSet(NumericFields)
	knownSet   = toSet(NarrativeFields, CategoricalFields, ClientInfoFields, NumericFields, DerivedAddressFields)
)

// IsNumericField reports whether name is one of NumericFields.
func IsNumericField(name string) bool {
	return numericSet[name]
}

// IsKnownField reports whether name is any intake or derived address field.
func IsKnownField(name string) bool {
	return knownSet[name]
}

// AllFormFields lists every user-editable field.
func AllFormFields() []string {
	out := make([]string, 0, len(NarrativeFields)+len(CategoricalFields)+len(ClientInfoFields)+len(NumericFields))
	out = append(out, NarrativeFields...)
	out = append(out, CategoricalFields...)
	out = append(out, ClientInfoFields...)
	out = append(out, NumericFields...)
	return out
}

// Option is one entry of a fixed choice list.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var PricingModelOptions = []Option{
	{Value: "flat_fee", Label: "Flat fee"},
	{Value: "tiered", Label: "Tiered pricing"},
	{Value: "hourly", Label: "Hourly"},
	{Value: "subscription", Label: "Subscription"},
	{Value: "retainer", Label: "Retainer"},
	{Value: "usage_based", Label: "Usage-based"},
	{Value: "other", Label: "Other"},
}

var CustomerTypeOptions = []Option{
	{Value: "b2b", Label: "Businesses (B2B)"},
	{Value: "b2c", Label: "Consumers (B2C)"},
	{Value: "b2g", Label: "Government (B2G)"},
	{Value: "mixed", Label: "A mix of these"},
}

// OptionValues returns the Value of each option.
func OptionValues(opts []Option) []string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.Value
	}
	return out
}

// ErrorOrigin tells whether a field error came from local rules or the backend.
type ErrorOrigin string

const (
	OriginClient ErrorOrigin = "client"
	OriginServer ErrorOrigin = "server"
)

// FieldError is the message attached to one field.
type FieldError struct {
	Message string      `json:"message"`
	Origin  ErrorOrigin `json:"origin"`
}

func toSet(lists ...[]string) map[string]bool {
	set := make(map[string]bool)
	for _, l := range lists {
		for _, v := range l {
			set[v] = true
		}
	}
	return set
}
