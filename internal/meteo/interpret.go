package meteo

import "fmt"

// weatherCodeDescriptions maps WMO weather codes to short phrases.
var weatherCodeDescriptions = map[int]string{
	0:  "Clear sky",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Fog",
	48: "Depositing rime fog",
	51: "Drizzle",
	53: "Drizzle",
	55: "Drizzle",
	56: "Freezing Drizzle",
	57: "Freezing Drizzle",
	61: "Rain",
	63: "Rain",
	65: "Rain",
	66: "Freezing Rain",
	67: "Freezing Rain",
	71: "Snow fall",
	73: "Snow fall",
	75: "Snow fall",
	77: "Snow grains",
	80: "Rain showers",
	81: "Rain showers",
	82: "Rain showers",
	85: "Snow showers",
	86: "Snow showers",
	95: "Thunderstorm",
	96: "Thunderstorm with hail",
	99: "Thunderstorm with hail",
}

// DescribeWeatherCode maps a WMO code to a description. The day flag is
// accepted for interface symmetry but does not change the output; the
// descriptions are not day/night specific.
func DescribeWeatherCode(code *int, isDay bool) string {
	if code == nil {
		return "Unknown"
	}
	if desc, ok := weatherCodeDescriptions[*code]; ok {
		return desc
	}
	return fmt.Sprintf("Unknown code (%d)", *code)
}

// UVCategory classifies a UV index value.
func UVCategory(uv float64) string {
	switch {
	case uv < 3:
		return "Low"
	case uv < 6:
		return "Moderate"
	case uv < 8:
		return "High"
	case uv < 11:
		return "Very High"
	default:
		return "Extreme"
	}
}

// USAQICategory classifies a US air-quality index value.
func USAQICategory(aqi float64) string {
	switch {
	case aqi <= 50:
		return "Good"
	case aqi <= 100:
		return "Moderate"
	case aqi <= 150:
		return "Unhealthy for Sensitive Groups"
	case aqi <= 200:
		return "Unhealthy"
	case aqi <= 300:
		return "Very Unhealthy"
	default:
		return "Hazardous"
	}
}

// EUAQICategory classifies a European air-quality index value.
func EUAQICategory(aqi float64) string {
	switch {
	case aqi <= 20:
		return "Good"
	case aqi <= 40:
		return "Fair"
	case aqi <= 60:
		return "Moderate"
	case aqi <= 80:
		return "Poor"
	case aqi <= 100:
		return "Very Poor"
	default:
		return "Extremely Poor"
	}
}
