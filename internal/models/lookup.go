// internal/models/lookup.go
package models

// BusinessType is one row of the business_types list.
type BusinessType struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"display_name"`
}

// IndustryType is one row of the industry_types list.
type IndustryType struct {
	ID          int64  `json:"id"`
	NAICSCode   string `json:"naics_code"`
	DisplayName string `json:"display_name"`
}

// Label implements lookup.Named.
func (b BusinessType) Label() string { return b.DisplayName }

// Label implements lookup.Named.
func (i IndustryType) Label() string { return i.DisplayName }
