package meteo

// CelsiusToFahrenheit converts a temperature in °C to °F.
func CelsiusToFahrenheit(c float64) float64 {
	return c*9/5 + 32
}

// KmhToMph converts a speed in km/h to mph.
func KmhToMph(kmh float64) float64 {
	return kmh * 0.621371
}
