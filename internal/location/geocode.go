package location

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// geocodeResponse mirrors the fields we read from the geocoding API.
type geocodeResponse struct {
	Results []struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Name      string  `json:"name"`
		Admin1    string  `json:"admin1"`
		Country   string  `json:"country"`
	} `json:"results"`
}

// ErrNoResults is returned when the geocoder answered successfully but
// found nothing for the query.
var ErrNoResults = errors.New("no geocoding results")

// Geocoder resolves free-text place names through the geocoding API,
// requesting exactly one best match.
type Geocoder struct {
	client *resty.Client
	log    *logrus.Logger
}

func NewGeocoder(baseURL string, timeout time.Duration, log *logrus.Logger) *Geocoder {
	return &Geocoder{
		client: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout),
		log: log,
	}
}

// Lookup geocodes a place name. Transport failures and non-2xx responses
// come back as wrapped errors; an empty result set is ErrNoResults.
func (g *Geocoder) Lookup(ctx context.Context, name string) (*Resolved, error) {
	var out geocodeResponse

	resp, err := g.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"name":     name,
			"count":    "1",
			"language": "en",
			"format":   "json",
		}).
		SetResult(&out).
		Get("")
	if err != nil {
		return nil, errors.Wrapf(err, "geocoding request for %q", name)
	}
	if !resp.IsSuccess() {
		return nil, errors.Errorf("geocoding API returned status %d", resp.StatusCode())
	}

	if len(out.Results) == 0 {
		g.log.WithField("query", name).Debug("no geocoding results found")
		return nil, ErrNoResults
	}

	r := out.Results[0]
	displayName := r.Name
	if r.Admin1 != "" && r.Admin1 != r.Name {
		displayName += ", " + r.Admin1
	}
	if r.Country != "" {
		displayName += ", " + r.Country
	}

	g.log.WithFields(logrus.Fields{
		"query": name,
		"name":  displayName,
		"lat":   r.Latitude,
		"lon":   r.Longitude,
	}).Debug("geocoded place name")

	return &Resolved{Lat: r.Latitude, Lon: r.Longitude, DisplayName: displayName}, nil
}
