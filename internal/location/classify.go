package location

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	latLonPattern  = regexp.MustCompile(`^(-?\d{1,3}(?:\.\d+)?)\s*,\s*(-?\d{1,3}(?:\.\d+)?)$`)
	gridRefPattern = regexp.MustCompile(`(?i)^\d{1,2}[C-X][A-Z]{2}\d{2,10}$`)
)

// Kind tags the shape an input string was classified as.
type Kind int

const (
	// KindCoordinates is a decimal "lat,lon" pair already in range.
	KindCoordinates Kind = iota
	// KindGridReference is a candidate military grid reference.
	KindGridReference
	// KindPlaceName is anything else, destined for geocoding.
	KindPlaceName
)

// Classified is the tagged result of classifying a raw query. Lat/Lon are
// set only for KindCoordinates; Text carries the grid reference or the
// original place-name query.
type Classified struct {
	Kind Kind
	Lat  float64
	Lon  float64
	Text string
}

// Classify applies the ordered classification strategies: decimal pair
// first, then grid reference, then place name. A pair that parses but falls
// outside valid WGS84 ranges is not a failure; it continues down the chain
// so the text can still be geocoded.
func Classify(raw string) Classified {
	trimmed := strings.TrimSpace(raw)

	if m := latLonPattern.FindStringSubmatch(trimmed); m != nil {
		lat, latErr := strconv.ParseFloat(m[1], 64)
		lon, lonErr := strconv.ParseFloat(m[2], 64)
		if latErr == nil && lonErr == nil && inRange(lat, lon) {
			return Classified{Kind: KindCoordinates, Lat: lat, Lon: lon}
		}
	}

	if gridRefPattern.MatchString(trimmed) {
		return Classified{Kind: KindGridReference, Text: trimmed}
	}

	// Geocoding sees the original string, not the trimmed one.
	return Classified{Kind: KindPlaceName, Text: raw}
}

func inRange(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
