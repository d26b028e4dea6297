// Package location turns free-text queries into geographic coordinates.
// Input is classified as a decimal lat/lon pair, a military grid reference,
// or a place name, in that order of precedence; only place names cost a
// network round-trip.
package location

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Resolved is a location in valid WGS84 degrees. DisplayName is set only
// when resolution went through geocoding; callers fall back to formatted
// coordinates when it is empty.
type Resolved struct {
	Lat         float64
	Lon         float64
	DisplayName string
}

// ErrUnresolvable means no classification path produced coordinates.
var ErrUnresolvable = errors.New("unresolvable location")

// Resolver applies the classification chain and finishes grid references
// and place names off to their converters.
type Resolver struct {
	geocoder *Geocoder
	log      *logrus.Logger
}

func NewResolver(geocoder *Geocoder, log *logrus.Logger) *Resolver {
	return &Resolver{geocoder: geocoder, log: log}
}

// Resolve produces coordinates for a raw query. A grid reference that
// matches the pattern but fails conversion is retried as a place name,
// since digit-heavy strings can coincidentally look like one.
func (r *Resolver) Resolve(ctx context.Context, raw string) (*Resolved, error) {
	classified := Classify(raw)

	switch classified.Kind {
	case KindCoordinates:
		r.log.WithFields(logrus.Fields{
			"lat": classified.Lat,
			"lon": classified.Lon,
		}).Debug("parsed as lat/lon pair")
		return &Resolved{Lat: classified.Lat, Lon: classified.Lon}, nil

	case KindGridReference:
		lat, lon, err := GridToLatLon(classified.Text)
		if err == nil {
			r.log.WithFields(logrus.Fields{
				"grid": classified.Text,
				"lat":  lat,
				"lon":  lon,
			}).Debug("parsed grid reference")
			return &Resolved{Lat: lat, Lon: lon}, nil
		}
		r.log.WithError(err).WithField("grid", classified.Text).
			Debug("grid conversion failed, retrying as place name")
		fallthrough

	default:
		resolved, err := r.geocoder.Lookup(ctx, raw)
		if err != nil {
			if errors.Is(err, ErrNoResults) {
				return nil, ErrUnresolvable
			}
			return nil, err
		}
		return resolved, nil
	}
}
