package dashboard

import (
	"strings"
	"time"
)

// NotificationDuration is how long a transient notification stays visible
const NotificationDuration = 3 * time.Second

// GeolocationTimeout bounds the browser position request
const GeolocationTimeout = 10 * time.Second

// Notification messages
const (
	MsgEmptyCity              = "Please enter a city"
	MsgWeatherNotFound        = "Weather data not found."
	MsgGeolocationUnsupported = "Geolocation not supported."
)

// GeolocationError is the browser's PositionError code
type GeolocationError int

const (
	GeoUnknown             GeolocationError = 0
	GeoPermissionDenied    GeolocationError = 1
	GeoPositionUnavailable GeolocationError = 2
	GeoTimeout             GeolocationError = 3
)

var geolocationMessages = map[GeolocationError]string{
	GeoPermissionDenied:    "Location access denied. Please allow location.",
	GeoPositionUnavailable: "Location information is unavailable.",
	GeoTimeout:             "Location request timed out.",
	GeoUnknown:             "Unknown error fetching location.",
}

// Message returns the user-facing text for the failure
func (e GeolocationError) Message() string {
	if msg, ok := geolocationMessages[e]; ok {
		return msg
	}
	return geolocationMessages[GeoUnknown]
}

// ValidateSearch returns the notification for an unusable search input, or "" when
// the search may be issued
func ValidateSearch(city string) string {
	if strings.TrimSpace(city) == "" {
		return MsgEmptyCity
	}
	return ""
}
