// Package places resolves a selected address suggestion into the derived
// address fields of the intake form.
package places

import (
	"strings"

	"bizplan-intake/internal/models"
)

const (
	typeStreetNumber = "street_number"
	typeRoute        = "route"
	typeLocality     = "locality"
	typeSublocality  = "sublocality"
	typePostalTown   = "postal_town"
	typeCounty       = "administrative_area_level_2"
	typeState        = "administrative_area_level_1"
	typePostalCode   = "postal_code"
	typeCountry      = "country"
)

// Decompose breaks a place into street, city, county, state, zip and country.
// A missing component yields "". Coordinates are set only when present.
func Decompose(place models.Place) models.Address {
	get := func(kind string) string {
		for _, c := range place.AddressComponents {
			for _, t := range c.Types {
				if t == kind {
					return c.LongName
				}
			}
		}
		return ""
	}

	addr := models.Address{
		Formatted: place.FormattedAddress,
		Street:    strings.TrimSpace(get(typeStreetNumber) + " " + get(typeRoute)),
		City:      firstNonEmpty(get(typeLocality), get(typeSublocality), get(typePostalTown)),
		State:     get(typeState),
		County:    get(typeCounty),
		Zip:       get(typePostalCode),
		Country:   get(typeCountry),
	}

	if place.Geometry != nil && place.Geometry.Location != nil {
		lat, lng := place.Geometry.Location.Lat, place.Geometry.Location.Lng
		addr.Lat = &lat
		addr.Lng = &lng
	}
	return addr
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
