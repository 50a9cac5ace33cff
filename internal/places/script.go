package places

import (
	"net/url"

	"bizplan-intake/internal/common/logger"
)

const scriptBaseURL = "https://maps.googleapis.com/maps/api/js"

// ScriptURL returns the autocomplete script URL for apiKey, or "" when no
// key is configured.
func ScriptURL(apiKey string, log logger.Logger) string {
	if apiKey == "" {
		log.Warn("Google Places API key is not available. Set GOOGLE_PLACES_API_KEY (or VITE_GOOGLE_PLACES_API_KEY) in your env.", nil)
		return ""
	}

	q := url.Values{}
	q.Set("key", apiKey)
	q.Set("libraries", "places")
	return scriptBaseURL + "?" + q.Encode()
}
