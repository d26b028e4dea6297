package meteo

import (
	"context"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ErrMalformedResponse means the API answered 2xx but the expected section
// of the payload was missing.
var ErrMalformedResponse = errors.New("malformed API response")

// Client talks to the Open-Meteo forecast and air-quality APIs. Each report
// variant issues exactly one request with a fixed field list; nothing is
// retried or cached.
type Client struct {
	forecast   *resty.Client
	airQuality *resty.Client
	log        *logrus.Logger
}

func NewClient(forecastURL, airQualityURL string, timeout time.Duration, log *logrus.Logger) *Client {
	return &Client{
		forecast:   resty.New().SetBaseURL(forecastURL).SetTimeout(timeout),
		airQuality: resty.New().SetBaseURL(airQualityURL).SetTimeout(timeout),
		log:        log,
	}
}

func coord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (c *Client) get(ctx context.Context, client *resty.Client, params map[string]string, out any) error {
	resp, err := client.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(out).
		Get("")
	if err != nil {
		return errors.Wrap(err, "weather API request failed")
	}
	if !resp.IsSuccess() {
		return errors.Errorf("weather API returned status %d", resp.StatusCode())
	}
	return nil
}

// CurrentBrief fetches the compact current_weather block.
func (c *Client) CurrentBrief(ctx context.Context, lat, lon float64) (*BriefConditions, error) {
	var payload struct {
		CurrentWeather *BriefConditions `json:"current_weather"`
	}
	params := map[string]string{
		"latitude":           coord(lat),
		"longitude":          coord(lon),
		"current_weather":    "true",
		"temperature_unit":   "celsius",
		"windspeed_unit":     "kmh",
		"precipitation_unit": "mm",
	}
	if err := c.get(ctx, c.forecast, params, &payload); err != nil {
		return nil, err
	}
	if payload.CurrentWeather == nil {
		return nil, errors.Wrap(ErrMalformedResponse, "current_weather section missing")
	}
	return payload.CurrentWeather, nil
}

// Current fetches the detailed current conditions.
func (c *Client) Current(ctx context.Context, lat, lon float64) (*CurrentConditions, error) {
	var payload struct {
		Current *CurrentConditions `json:"current"`
	}
	params := map[string]string{
		"latitude":  coord(lat),
		"longitude": coord(lon),
		"current": "temperature_2m,relative_humidity_2m,apparent_temperature," +
			"precipitation,weather_code,cloud_cover,pressure_msl,surface_pressure," +
			"wind_speed_10m,wind_direction_10m,wind_gusts_10m,uv_index",
		"temperature_unit":   "celsius",
		"wind_speed_unit":    "kmh",
		"precipitation_unit": "mm",
	}
	if err := c.get(ctx, c.forecast, params, &payload); err != nil {
		return nil, err
	}
	if payload.Current == nil {
		return nil, errors.Wrap(ErrMalformedResponse, "current section missing")
	}
	return payload.Current, nil
}

// Hourly fetches the 2-day hourly series used for the 12-hour forecast.
func (c *Client) Hourly(ctx context.Context, lat, lon float64) (*HourlySeries, error) {
	var payload struct {
		Hourly *HourlySeries `json:"hourly"`
	}
	params := map[string]string{
		"latitude":  coord(lat),
		"longitude": coord(lon),
		"hourly": "temperature_2m,precipitation_probability,precipitation," +
			"weather_code,wind_speed_10m,uv_index",
		"temperature_unit":   "celsius",
		"wind_speed_unit":    "kmh",
		"precipitation_unit": "mm",
		"forecast_days":      "2",
		"timezone":           "auto",
	}
	if err := c.get(ctx, c.forecast, params, &payload); err != nil {
		return nil, err
	}
	if payload.Hourly == nil {
		return nil, errors.Wrap(ErrMalformedResponse, "hourly section missing")
	}
	return payload.Hourly, nil
}

// Daily fetches the 7-day daily series.
func (c *Client) Daily(ctx context.Context, lat, lon float64) (*DailySeries, error) {
	var payload struct {
		Daily *DailySeries `json:"daily"`
	}
	params := map[string]string{
		"latitude":  coord(lat),
		"longitude": coord(lon),
		"daily": "weather_code,temperature_2m_max,temperature_2m_min," +
			"precipitation_sum,precipitation_probability_max,wind_speed_10m_max," +
			"wind_gusts_10m_max,sunrise,sunset,uv_index_max",
		"temperature_unit":   "celsius",
		"wind_speed_unit":    "kmh",
		"precipitation_unit": "mm",
		"forecast_days":      "7",
		"timezone":           "auto",
	}
	if err := c.get(ctx, c.forecast, params, &payload); err != nil {
		return nil, err
	}
	if payload.Daily == nil {
		return nil, errors.Wrap(ErrMalformedResponse, "daily section missing")
	}
	return payload.Daily, nil
}

// AirQuality fetches the current air-quality snapshot.
func (c *Client) AirQuality(ctx context.Context, lat, lon float64) (*AirQualitySnapshot, error) {
	var payload struct {
		Current *AirQualitySnapshot `json:"current"`
	}
	params := map[string]string{
		"latitude":  coord(lat),
		"longitude": coord(lon),
		"current": "european_aqi,us_aqi,pm10,pm2_5,carbon_monoxide," +
			"nitrogen_dioxide,sulphur_dioxide,ozone",
	}
	if err := c.get(ctx, c.airQuality, params, &payload); err != nil {
		return nil, err
	}
	if payload.Current == nil {
		return nil, errors.Wrap(ErrMalformedResponse, "current section missing")
	}
	return payload.Current, nil
}
