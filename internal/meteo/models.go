// Package meteo fetches and interprets weather, forecast, and air-quality
// data from the Open-Meteo APIs. Every numeric field in a response is
// individually optional; absent values stay nil and are never zero-filled.
package meteo

// BriefConditions is the compact current_weather block used by the brief
// report variant.
type BriefConditions struct {
	Temperature   *float64 `json:"temperature"`
	WindSpeed     *float64 `json:"windspeed"`
	WindDirection *float64 `json:"winddirection"`
	WeatherCode   *int     `json:"weathercode"`
	IsDay         int      `json:"is_day"`
}

// CurrentConditions is the full current-weather projection.
type CurrentConditions struct {
	Temperature         *float64 `json:"temperature_2m"`
	ApparentTemperature *float64 `json:"apparent_temperature"`
	Humidity            *float64 `json:"relative_humidity_2m"`
	Precipitation       *float64 `json:"precipitation"`
	CloudCover          *float64 `json:"cloud_cover"`
	PressureMSL         *float64 `json:"pressure_msl"`
	SurfacePressure     *float64 `json:"surface_pressure"`
	WindSpeed           *float64 `json:"wind_speed_10m"`
	WindDirection       *float64 `json:"wind_direction_10m"`
	WindGusts           *float64 `json:"wind_gusts_10m"`
	WeatherCode         *int     `json:"weather_code"`
	UVIndex             *float64 `json:"uv_index"`
}

// HourlySeries holds parallel per-hour arrays. Individual slots may be nil
// when the API returns null for an hour.
type HourlySeries struct {
	Time                     []string   `json:"time"`
	Temperature              []*float64 `json:"temperature_2m"`
	PrecipitationProbability []*float64 `json:"precipitation_probability"`
	Precipitation            []*float64 `json:"precipitation"`
	WeatherCode              []*int     `json:"weather_code"`
	WindSpeed                []*float64 `json:"wind_speed_10m"`
	UVIndex                  []*float64 `json:"uv_index"`
}

// DailySeries holds parallel per-day arrays.
type DailySeries struct {
	Time                        []string   `json:"time"`
	WeatherCode                 []*int     `json:"weather_code"`
	TemperatureMax              []*float64 `json:"temperature_2m_max"`
	TemperatureMin              []*float64 `json:"temperature_2m_min"`
	PrecipitationSum            []*float64 `json:"precipitation_sum"`
	PrecipitationProbabilityMax []*float64 `json:"precipitation_probability_max"`
	WindSpeedMax                []*float64 `json:"wind_speed_10m_max"`
	WindGustsMax                []*float64 `json:"wind_gusts_10m_max"`
	Sunrise                     []string   `json:"sunrise"`
	Sunset                      []string   `json:"sunset"`
	UVIndexMax                  []*float64 `json:"uv_index_max"`
}

// AirQualitySnapshot is the current air-quality projection.
type AirQualitySnapshot struct {
	EuropeanAQI     *float64 `json:"european_aqi"`
	USAQI           *float64 `json:"us_aqi"`
	PM10            *float64 `json:"pm10"`
	PM2_5           *float64 `json:"pm2_5"`
	CarbonMonoxide  *float64 `json:"carbon_monoxide"`
	NitrogenDioxide *float64 `json:"nitrogen_dioxide"`
	SulphurDioxide  *float64 `json:"sulphur_dioxide"`
	Ozone           *float64 `json:"ozone"`
}
