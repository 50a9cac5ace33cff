// internal/models/place.go
package models

// AddressComponent is one typed part of a geocoded address.
type AddressComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Geometry struct {
	Location *LatLng `json:"location,omitempty"`
}

// Place is a selected autocomplete result, shaped like a Place Details result.
type Place struct {
	FormattedAddress  string             `json:"formatted_address"`
	AddressComponents []AddressComponent `json:"address_components"`
	Geometry          *Geometry          `json:"geometry,omitempty"`
}

// Address is a Place broken down into the derived form fields.
type Address struct {
	Formatted string   `json:"business_address"`
	Street    string   `json:"address_street"`
	City      string   `json:"address_city"`
	State     string   `json:"address_state"`
	County    string   `json:"address_county"`
	Zip       string   `json:"address_zip"`
	Country   string   `json:"address_country"`
	Lat       *float64 `json:"address_lat,omitempty"`
	Lng       *float64 `json:"address_lng,omitempty"`
}
