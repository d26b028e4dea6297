// Package report renders weather snapshots into the reply text. Rendering
// is pure string assembly: only fields present in the snapshot appear in
// the output, and formatting the same snapshot twice yields identical text.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/radiowx/weatherbot/internal/location"
	"github.com/radiowx/weatherbot/internal/meteo"
)

const (
	hourlyWindow = 12
	dailyWindow  = 7
	separator    = "========================================"
)

type Formatter struct{}

func NewFormatter() *Formatter {
	return &Formatter{}
}

// num renders a float the way the upstream JSON carried it, without forcing
// a decimal point onto integral values.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func f1(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func f0(v float64) string {
	return strconv.FormatFloat(v, 'f', 0, 64)
}

func header(prefix string, loc location.Resolved) string {
	if loc.DisplayName != "" {
		return fmt.Sprintf("%s for %s:\n", prefix, loc.DisplayName)
	}
	return fmt.Sprintf("%s for %.2f, %.2f:\n", prefix, loc.Lat, loc.Lon)
}

// splitTimestamp turns "2026-08-28T14:00" into "2026-08-28 14:00".
func splitTimestamp(ts string) string {
	if date, clock, ok := strings.Cut(ts, "T"); ok {
		return date + " " + clock
	}
	return ts
}

// clockPart extracts the time-of-day from an ISO timestamp.
func clockPart(ts string) string {
	if _, clock, ok := strings.Cut(ts, "T"); ok {
		return clock
	}
	return ts
}

// Brief renders the compact three-line current report.
func (f *Formatter) Brief(loc location.Resolved, cw *meteo.BriefConditions) string {
	desc := meteo.DescribeWeatherCode(cw.WeatherCode, cw.IsDay != 0)

	tempC, tempF := "N/A", "N/A"
	if cw.Temperature != nil {
		tempC = num(*cw.Temperature) + "°C"
		tempF = f1(meteo.CelsiusToFahrenheit(*cw.Temperature)) + "°F"
	}

	windKmh, windMph := "N/A", "N/A"
	if cw.WindSpeed != nil {
		windKmh = num(*cw.WindSpeed) + " kmh"
		windMph = f1(meteo.KmhToMph(*cw.WindSpeed)) + " mph"
	}

	windDir := "N/A"
	if cw.WindDirection != nil {
		windDir = num(*cw.WindDirection)
	}

	return header("Weather", loc) +
		fmt.Sprintf("- Temp: %s (%s)\n", tempC, tempF) +
		fmt.Sprintf("- Wind: %s (%s) from %s°\n", windKmh, windMph, windDir) +
		fmt.Sprintf("- Condition: %s", desc)
}

// Current renders the detailed current-conditions report.
func (f *Formatter) Current(loc location.Resolved, curr *meteo.CurrentConditions) string {
	out := []string{header("Weather", loc)}
	out = append(out, fmt.Sprintf("Condition: %s\n", meteo.DescribeWeatherCode(curr.WeatherCode, true)))

	if curr.Temperature != nil {
		out = append(out, fmt.Sprintf("Temperature: %s°C (%s°F)",
			f1(*curr.Temperature), f1(meteo.CelsiusToFahrenheit(*curr.Temperature))))
	}
	if curr.ApparentTemperature != nil {
		out = append(out, fmt.Sprintf("Feels like: %s°C (%s°F)",
			f1(*curr.ApparentTemperature), f1(meteo.CelsiusToFahrenheit(*curr.ApparentTemperature))))
	}
	if curr.Humidity != nil {
		out = append(out, fmt.Sprintf("Humidity: %s%%", num(*curr.Humidity)))
	}
	if curr.WindSpeed != nil {
		wind := fmt.Sprintf("Wind: %s km/h (%s mph)",
			f1(*curr.WindSpeed), f1(meteo.KmhToMph(*curr.WindSpeed)))
		if curr.WindDirection != nil {
			wind += fmt.Sprintf(" from %s°", num(*curr.WindDirection))
		}
		out = append(out, wind)
	}
	if curr.WindGusts != nil {
		out = append(out, fmt.Sprintf("Gusts: %s km/h (%s mph)",
			f1(*curr.WindGusts), f1(meteo.KmhToMph(*curr.WindGusts))))
	}
	if curr.CloudCover != nil {
		out = append(out, fmt.Sprintf("Cloud cover: %s%%", num(*curr.CloudCover)))
	}
	if curr.Precipitation != nil && *curr.Precipitation > 0 {
		out = append(out, fmt.Sprintf("Precipitation: %s mm", num(*curr.Precipitation)))
	}
	if curr.PressureMSL != nil {
		out = append(out, fmt.Sprintf("Pressure: %s hPa", f1(*curr.PressureMSL)))
	}
	if curr.UVIndex != nil {
		out = append(out, fmt.Sprintf("UV Index: %s (%s)",
			f1(*curr.UVIndex), meteo.UVCategory(*curr.UVIndex)))
	}

	return strings.Join(out, "\n")
}

// Hourly renders the first 12 hours of the series, or fewer when the API
// returned a shorter window.
func (f *Formatter) Hourly(loc location.Resolved, hourly *meteo.HourlySeries) string {
	out := []string{header("12-Hour Forecast", loc)}

	n := len(hourly.Time)
	if n > hourlyWindow {
		n = hourlyWindow
	}

	for i := 0; i < n; i++ {
		line := splitTimestamp(hourly.Time[i]) + ":\n  "

		condition := meteo.DescribeWeatherCode(hourlyCode(hourly, i), true)
		if temp := slot(hourly.Temperature, i); temp != nil {
			line += fmt.Sprintf("%s°C (%s°F), %s",
				f1(*temp), f1(meteo.CelsiusToFahrenheit(*temp)), condition)
		} else {
			line += condition
		}

		if prob := slot(hourly.PrecipitationProbability, i); prob != nil && *prob > 0 {
			line += fmt.Sprintf("\n  Precip: %s%%", num(*prob))
			if prec := slot(hourly.Precipitation, i); prec != nil && *prec > 0 {
				line += fmt.Sprintf(" (%s mm)", f1(*prec))
			}
		}
		if wind := slot(hourly.WindSpeed, i); wind != nil {
			line += fmt.Sprintf("\n  Wind: %s km/h (%s mph)",
				f0(*wind), f0(meteo.KmhToMph(*wind)))
		}
		if uv := slot(hourly.UVIndex, i); uv != nil && *uv > 0 {
			line += fmt.Sprintf("\n  UV: %s", f1(*uv))
		}

		out = append(out, line)
	}

	return strings.Join(out, "\n")
}

// Daily renders the first 7 days of the series.
func (f *Formatter) Daily(loc location.Resolved, daily *meteo.DailySeries) string {
	out := []string{header("7-Day Forecast", loc)}

	n := len(daily.Time)
	if n > dailyWindow {
		n = dailyWindow
	}

	for i := 0; i < n; i++ {
		line := fmt.Sprintf("%s: %s", daily.Time[i],
			meteo.DescribeWeatherCode(dailyCode(daily, i), true))

		tMax := slot(daily.TemperatureMax, i)
		tMin := slot(daily.TemperatureMin, i)
		if tMax != nil && tMin != nil {
			line += fmt.Sprintf("\n  High: %s°C (%s°F), Low: %s°C (%s°F)",
				f1(*tMax), f1(meteo.CelsiusToFahrenheit(*tMax)),
				f1(*tMin), f1(meteo.CelsiusToFahrenheit(*tMin)))
		}
		if i < len(daily.Sunrise) && i < len(daily.Sunset) && daily.Sunrise[i] != "" && daily.Sunset[i] != "" {
			line += fmt.Sprintf("\n  Sun: %s - %s", clockPart(daily.Sunrise[i]), clockPart(daily.Sunset[i]))
		}
		if uv := slot(daily.UVIndexMax, i); uv != nil && *uv > 0 {
			line += fmt.Sprintf("\n  Max UV: %s (%s)", f1(*uv), meteo.UVCategory(*uv))
		}
		if prob := slot(daily.PrecipitationProbabilityMax, i); prob != nil && *prob > 0 {
			line += fmt.Sprintf("\n  Precip: %s%%", num(*prob))
			if sum := slot(daily.PrecipitationSum, i); sum != nil && *sum > 0 {
				line += fmt.Sprintf(" (%s mm)", f1(*sum))
			}
		}
		if wind := slot(daily.WindSpeedMax, i); wind != nil {
			line += fmt.Sprintf("\n  Max wind: %s km/h (%s mph)",
				f0(*wind), f0(meteo.KmhToMph(*wind)))
		}

		out = append(out, line)
	}

	return strings.Join(out, "\n")
}

// AirQuality renders the air-quality report.
func (f *Formatter) AirQuality(loc location.Resolved, air *meteo.AirQualitySnapshot) string {
	out := []string{header("Air Quality", loc)}

	if air.USAQI != nil {
		out = append(out, fmt.Sprintf("US AQI: %s (%s)", num(*air.USAQI), meteo.USAQICategory(*air.USAQI)))
	}
	if air.EuropeanAQI != nil {
		out = append(out, fmt.Sprintf("European AQI: %s (%s)", num(*air.EuropeanAQI), meteo.EUAQICategory(*air.EuropeanAQI)))
	}

	out = append(out, "\nPollutants:")
	if air.PM2_5 != nil {
		out = append(out, fmt.Sprintf("  PM2.5: %s μg/m³", f1(*air.PM2_5)))
	}
	if air.PM10 != nil {
		out = append(out, fmt.Sprintf("  PM10: %s μg/m³", f1(*air.PM10)))
	}
	if air.NitrogenDioxide != nil {
		out = append(out, fmt.Sprintf("  NO₂: %s μg/m³", f1(*air.NitrogenDioxide)))
	}
	if air.SulphurDioxide != nil {
		out = append(out, fmt.Sprintf("  SO₂: %s μg/m³", f1(*air.SulphurDioxide)))
	}
	if air.Ozone != nil {
		out = append(out, fmt.Sprintf("  O₃: %s μg/m³", f1(*air.Ozone)))
	}
	if air.CarbonMonoxide != nil {
		out = append(out, fmt.Sprintf("  CO: %s μg/m³", f0(*air.CarbonMonoxide)))
	}

	return strings.Join(out, "\n")
}

// Detailed concatenates the constituent reports in order, separated
// visually, skipping any constituent that produced no output. Returns ""
// when every constituent is empty.
func (f *Formatter) Detailed(current, air, hourly, daily string) string {
	var parts []string
	if current != "" {
		parts = append(parts, current)
	}
	for _, section := range []string{air, hourly, daily} {
		if section != "" {
			parts = append(parts, "\n"+separator+"\n"+section)
		}
	}
	return strings.Join(parts, "\n")
}

func slot(values []*float64, i int) *float64 {
	if i < len(values) {
		return values[i]
	}
	return nil
}

func hourlyCode(h *meteo.HourlySeries, i int) *int {
	if i < len(h.WeatherCode) {
		return h.WeatherCode[i]
	}
	return nil
}

func dailyCode(d *meteo.DailySeries, i int) *int {
	if i < len(d.WeatherCode) {
		return d.WeatherCode[i]
	}
	return nil
}
