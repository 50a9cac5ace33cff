package intake

import (
	"bizplan-intake/internal/common/validation"
	"bizplan-intake/internal/models"
)

// Messages shared by every numeric field.
const (
	MsgInvalidNumber = "Enter a valid number."
	MsgNegative      = "Value must be zero or greater."
)

var revenueDependentMessages = map[string]string{
	models.FieldCurrentCogs:                      "Cost of Goods Sold is required when revenue is greater than zero.",
	models.FieldExpectedRevenueGrowthPctNextYear: "Expected Revenue Growth is required when revenue is greater than zero.",
	models.FieldUnitsSoldPerMonth:                "Units Sold Per Month is required when revenue is greater than zero.",
	models.FieldUnitDefinition:                   "Define Your Unit is required when revenue is greater than zero.",
}

var fieldSchema = buildFieldSchema()

func minText(n int, msg string) validation.Property {
	return validation.Property{Type: "string", MinLength: &n, Message: msg}
}

func optionalText() validation.Property {
	return validation.Property{Type: "string", Optional: true}
}

func buildFieldSchema() validation.JSONSchema {
	noDigits := `\d`

	props := map[string]validation.Property{
		models.FieldBusinessName:      minText(2, "Please enter your business name."),
		models.FieldIndustry:          minText(2, "Please describe your industry."),
		models.FieldBusinessType:      minText(2, "Please describe the type of business."),
		models.FieldDescription:       minText(20, "Give us a bit more detail about what you do."),
		models.FieldAddress:           optionalText(),
		models.FieldProductKeywords:   minText(6, "List a few keywords that describe what you sell."),
		models.FieldSellingMethod:     minText(4, "Describe how you expect to sell your product or service."),
		models.FieldTargetCustomer:    minText(10, "Describe your ideal customer or audience."),
		models.FieldEstimatedRevenue:  minText(2, "Share a rough revenue estimate or range."),
		models.FieldStartupCosts:      minText(2, "Share your estimated one-time startup costs."),
		models.FieldMonthlyCosts:      minText(2, "Share your estimated ongoing monthly costs."),
		models.FieldFounderBackground: minText(10, "Share your background and why you're starting this business."),

		models.FieldCustomerType: {
			Type:    "string",
			Enum:    models.OptionValues(models.CustomerTypeOptions),
			Message: "Select the type of customer you serve.",
		},
		models.FieldPricingModel: {
			Type:    "string",
			Enum:    models.OptionValues(models.PricingModelOptions),
			Message: "Select a pricing model.",
		},

		models.FieldContactName:  minText(2, "Please enter your name."),
		models.FieldContactEmail: {Type: "string", Format: "email", Message: "Enter a valid email address."},
		models.FieldContactPhone: {Type: "string", Format: "phone", Optional: true, Message: "Enter a valid phone number."},

		models.FieldBusinessStartDate: minText(1, "Business Start Date is required."),
		models.FieldCurrentRevenue:    minText(1, "Current Revenue is required."),
		models.FieldUnitDefinition: {
			Type:       "string",
			NotPattern: &noDigits,
			Optional:   true,
			Message:    "Define Your Unit cannot contain numbers.",
		},
		models.FieldExpectedRevenueGrowthPctNextYear: optionalText(),
	}

	for _, f := range models.NumericFields {
		if _, ok := props[f]; !ok {
			props[f] = optionalText()
		}
	}

	return validation.JSONSchema{
		Type:                 "object",
		Properties:           props,
		AdditionalProperties: true,
	}
}

// Validate runs every field rule plus the numeric and cross-field checks
// and returns the first message per failing field.
func Validate(values map[string]string) map[string]string {
	result := validation.ValidateStrings(values, fieldSchema)

	for _, f := range models.NumericFields {
		raw := values[f]
		if raw == "" {
			continue
		}
		d, ok := parseNumberText(raw)
		if !ok {
			result.Add(f, MsgInvalidNumber, validation.CodeInvalidFormat)
			continue
		}
		if d.IsNegative() {
			result.Add(f, MsgNegative, validation.CodeMinimum)
		}
	}

	if revenue := ParseNumber(values[models.FieldCurrentRevenue]); revenue != nil && *revenue > 0 {
		for _, f := range models.RevenueDependentFields {
			if values[f] == "" {
				result.Add(f, revenueDependentMessages[f], validation.CodeRequiredFieldMissing)
			}
		}
	}

	return result.FirstErrors()
}
